// Package diagnostics gathers the evidence attached to a failed pipeline.
package diagnostics

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
)

// NoDebugLogs replaces the evidence when nothing could be collected.
const NoDebugLogs = "<no debug logs>"

const defaultTailLines = 100

type Collector struct {
	client    port.ClusterClient
	tailLines int64
}

func NewCollector(client port.ClusterClient) *Collector {
	return &Collector{client: client, tailLines: defaultTailLines}
}

// Collect returns pod logs, unmet pod conditions, container states and abnormal events.
// Every source is best-effort: the returned error joins the sources that failed,
// the lines are whatever could be gathered.
func (c *Collector) Collect(ctx context.Context, namespace, selector string) ([]string, error) {
	var (
		lines []string
		errs  []error
	)

	if selector != "" {
		logs, err := c.client.GetLogs(ctx, namespace, selector, c.tailLines)
		if err != nil {
			errs = append(errs, fmt.Errorf("get logs: %w", err))
		}
		lines = append(lines, logs...)

		pods, err := c.client.GetPods(ctx, namespace, selector)
		if err != nil {
			errs = append(errs, fmt.Errorf("get pods: %w", err))
		}
		for _, pod := range pods {
			lines = append(lines, podLines(pod)...)
		}
	}

	evts, err := c.client.GetEvents(ctx, namespace)
	if err != nil {
		errs = append(errs, fmt.Errorf("get events: %w", err))
	}
	lines = append(lines, eventLines(evts)...)

	if len(errs) > 0 {
		logger.L().Warn("diagnostics partially collected",
			zap.String("namespace", namespace),
			zap.String("selector", selector),
			zap.Error(errors.Join(errs...)))
	}
	return lines, errors.Join(errs...)
}

// Render joins collected lines, or returns NoDebugLogs.
func Render(lines []string) string {
	if len(lines) == 0 {
		return NoDebugLogs
	}
	return strings.Join(lines, "\n")
}

func podLines(pod models.Pod) []string {
	var lines []string
	for _, cond := range pod.Conditions {
		if strings.EqualFold(cond.Status, "false") {
			lines = append(lines, fmt.Sprintf("Condition not met to start the container: %s -> %s: %s",
				cond.Type, cond.Reason, cond.Message))
		}
	}
	for _, cs := range pod.ContainerStatuses {
		if t := cs.LastTerminated; t != nil {
			lines = append(lines,
				fmt.Sprintf("terminated state message: %s", t.Message),
				fmt.Sprintf("terminated state exit code: %d", t.ExitCode))
		}
		if w := cs.LastWaiting; w != nil {
			lines = append(lines, fmt.Sprintf("waiting state message: %s", w.Message))
		}
	}
	return lines
}

func eventLines(evts []models.KubeEvent) []string {
	abnormal := lo.Filter(evts, func(e models.KubeEvent, _ int) bool {
		return !strings.EqualFold(e.Type, "normal")
	})
	slices.SortStableFunc(abnormal, func(a, b models.KubeEvent) int {
		return a.LastTimestamp.Compare(b.LastTimestamp)
	})
	return lo.Map(abnormal, func(e models.KubeEvent, _ int) string {
		return fmt.Sprintf("%s %s %s: %s", e.LastTimestamp.UTC().Format("2006-01-02T15:04:05Z"), e.Type, e.Reason, e.Message)
	})
}
