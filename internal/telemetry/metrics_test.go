package telemetry

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErr "github.com/iac-studio/converge/pkg/errors"
)

func TestPipelineFinishedCountsOutcomeAndTag(t *testing.T) {
	m := NewMetrics("converge_test")

	m.PipelineStarted()
	m.PipelineFinished("application", "CREATE", 2*time.Second, nil)
	m.PipelineStarted()
	m.PipelineFinished("application", "CREATE", time.Second,
		appErr.NewEngine(appErr.TagK8sPodIsNotReady, appErr.EventDetails{}, "not ready"))
	m.PipelineStarted()
	m.PipelineFinished("router", "DELETE", time.Second, errors.New("plain"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues("application", "CREATE", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.pipelineRuns.WithLabelValues("application", "CREATE", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsByTag.WithLabelValues(appErr.TagK8sPodIsNotReady.String())))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.errorsByTag.WithLabelValues(appErr.TagUnknown.String())))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.activePipelines))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.PipelineStarted()
	m.PipelineFinished("application", "CREATE", time.Second, nil)
	m.ObserveReadinessWait(time.Second, true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerServesRegistry(t *testing.T) {
	m := NewMetrics("converge_test")
	m.ObserveReadinessWait(3*time.Second, true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "converge_test_readiness_wait_seconds")
}
