package diagnostics

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port/porttest"
	"github.com/iac-studio/converge/pkg/logger"
)

func TestMain(m *testing.M) {
	if _, err := logger.Init("info", "json"); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	os.Exit(m.Run())
}

func TestCollectGathersEveryPiece(t *testing.T) {
	client := new(porttest.ClusterClient)
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	client.On("GetLogs", mock.Anything, "ns1", "app=x", int64(defaultTailLines)).
		Return([]string{"panic: boom"}, nil)
	client.On("GetPods", mock.Anything, "ns1", "app=x").Return([]models.Pod{{
		Name: "x-0",
		Conditions: []models.PodCondition{
			{Type: "Ready", Status: "False", Reason: "ContainersNotReady", Message: "containers with unready status: [x]"},
			{Type: "PodScheduled", Status: "True"},
		},
		ContainerStatuses: []models.ContainerStatus{{
			Name:           "x",
			LastTerminated: &models.ContainerTerminated{ExitCode: 137, Message: "OOMKilled"},
			LastWaiting:    &models.ContainerWaiting{Reason: "CrashLoopBackOff", Message: "back-off 5m0s"},
		}},
	}}, nil)
	client.On("GetEvents", mock.Anything, "ns1").Return([]models.KubeEvent{
		{Type: "Warning", Reason: "BackOff", Message: "Back-off restarting failed container", LastTimestamp: ts.Add(time.Minute)},
		{Type: "Normal", Reason: "Pulled", Message: "image pulled", LastTimestamp: ts},
		{Type: "Warning", Reason: "FailedScheduling", Message: "0/3 nodes are available", LastTimestamp: ts},
	}, nil)

	lines, err := NewCollector(client).Collect(context.Background(), "ns1", "app=x")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"panic: boom",
		"Condition not met to start the container: Ready -> ContainersNotReady: containers with unready status: [x]",
		"terminated state message: OOMKilled",
		"terminated state exit code: 137",
		"waiting state message: back-off 5m0s",
		"2026-01-02T03:04:05Z Warning FailedScheduling: 0/3 nodes are available",
		"2026-01-02T03:05:05Z Warning BackOff: Back-off restarting failed container",
	}, lines)
}

func TestCollectIsBestEffort(t *testing.T) {
	client := new(porttest.ClusterClient)
	client.On("GetLogs", mock.Anything, "ns1", "app=x", mock.Anything).Return(nil, errors.New("forbidden"))
	client.On("GetPods", mock.Anything, "ns1", "app=x").Return(nil, errors.New("forbidden"))
	client.On("GetEvents", mock.Anything, "ns1").Return(nil, errors.New("forbidden"))

	lines, err := NewCollector(client).Collect(context.Background(), "ns1", "app=x")
	require.Error(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, NoDebugLogs, Render(lines))
}

func TestCollectWithoutSelectorOnlyReadsEvents(t *testing.T) {
	client := new(porttest.ClusterClient)
	client.On("GetEvents", mock.Anything, "ns1").Return([]models.KubeEvent{}, nil)

	lines, err := NewCollector(client).Collect(context.Background(), "ns1", "")
	require.NoError(t, err)
	assert.Empty(t, lines)
	client.AssertNotCalled(t, "GetLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRender(t *testing.T) {
	assert.Equal(t, "a\nb", Render([]string{"a", "b"}))
}
