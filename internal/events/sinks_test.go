package events

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/iac-studio/converge/internal/models"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("debug", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

type panickingSink struct{}

func (panickingSink) Progress(ProgressInfo) { panic("listener down") }
func (panickingSink) Log(EngineEvent)       { panic("listener down") }

func TestFanoutSurvivesPanickingSink(t *testing.T) {
	rec := &Recorder{}
	f := Fanout{panickingSink{}, rec}

	require.NotPanics(t, func() {
		f.Progress(ProgressInfo{Status: DeploymentInProgress, Message: "deploying"})
		f.Log(Info(appErr.EventDetails{}, "hello"))
	})
	assert.Len(t, rec.ProgressEvents(), 1)
	assert.Len(t, rec.LogEvents(), 1)
}

func TestZapSinkLogsSafeMessageOnly(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := NewZapSink(zap.New(core))

	ce := appErr.NewCommandError("helm failed", "token=abcd", map[string]string{"TOKEN": "abcd"})
	ee := appErr.WrapEngine(appErr.TagHelmChartsUpgradeError, appErr.EventDetails{ExecutionID: "e1"}, "upgrade failed", ce)
	sink.Log(Error(ee, ""))

	entries := logs.All()
	require.Len(t, entries, 2)
	for _, e := range entries {
		for _, f := range e.Context {
			assert.NotContains(t, f.String, "abcd")
		}
	}
	assert.Equal(t, "upgrade failed", entries[1].Message)
	assert.Equal(t, "HelmChartsUpgradeError", entries[1].ContextMap()["tag"])
}

func TestStatusForAction(t *testing.T) {
	tests := []struct {
		action   models.Action
		progress Status
		failure  Status
	}{
		{models.ActionCreate, DeploymentInProgress, DeploymentError},
		{models.ActionPause, PauseInProgress, PauseError},
		{models.ActionDelete, DeleteInProgress, DeleteError},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.progress, InProgressStatus(tt.action))
			assert.Equal(t, tt.failure, ErrorStatus(tt.action))
		})
	}
}
