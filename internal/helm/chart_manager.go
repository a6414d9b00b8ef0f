// Package helm installs and removes releases with the Helm SDK.
package helm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"helm.sh/helm/v3/pkg/action"
	"helm.sh/helm/v3/pkg/chart"
	"helm.sh/helm/v3/pkg/chart/loader"
	"helm.sh/helm/v3/pkg/release"
	"helm.sh/helm/v3/pkg/storage/driver"
	"helm.sh/helm/v3/pkg/strvals"

	"github.com/iac-studio/converge/internal/kubernetes"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/pkg/logger"
)

var _ port.ChartManager = (*ChartManager)(nil)

// ConfigFactory builds the action configuration of one namespace.
type ConfigFactory func(kube port.KubeAccess, namespace string) (*action.Configuration, error)

type ChartManager struct {
	newConfig ConfigFactory
}

// NewChartManager stores releases with the given helm storage driver ("secret" when empty).
func NewChartManager(storageDriver string) *ChartManager {
	if storageDriver == "" {
		storageDriver = "secret"
	}
	return &ChartManager{newConfig: kubeConfigFactory(storageDriver)}
}

// NewChartManagerWithConfig is used when the action configuration is built elsewhere.
func NewChartManagerWithConfig(f ConfigFactory) *ChartManager {
	return &ChartManager{newConfig: f}
}

func kubeConfigFactory(storageDriver string) ConfigFactory {
	return func(kube port.KubeAccess, namespace string) (*action.Configuration, error) {
		getter, err := kubernetes.NewRESTClientGetter(kube, namespace)
		if err != nil {
			return nil, fmt.Errorf("build helm client config: %w", err)
		}

		cfg := new(action.Configuration)
		debug := func(format string, v ...interface{}) {
			logger.L().Debug(fmt.Sprintf(format, v...), zap.String("namespace", namespace))
		}
		if err := cfg.Init(getter, namespace, storageDriver, debug); err != nil {
			return nil, fmt.Errorf("init helm configuration: %w", err)
		}
		return cfg, nil
	}
}

// Upgrade installs the release when it has no history yet, upgrades it otherwise.
func (m *ChartManager) Upgrade(ctx context.Context, kube port.KubeAccess, info models.ChartInfo) (models.ReleaseStatus, error) {
	cfg, err := m.newConfig(kube, info.Namespace)
	if err != nil {
		return models.ReleaseStatus{}, err
	}
	ch, err := loader.Load(info.Path)
	if err != nil {
		return models.ReleaseStatus{}, fmt.Errorf("load chart %s: %w", info.Path, err)
	}
	values, err := mergeValues(info)
	if err != nil {
		return models.ReleaseStatus{}, err
	}

	installed, err := hasHistory(cfg, info.Name)
	if err != nil {
		return models.ReleaseStatus{}, err
	}

	log := logger.L().With(
		zap.String("release", info.Name),
		zap.String("namespace", info.Namespace),
		zap.Duration("timeout", info.Timeout()),
	)

	var rel *release.Release
	if installed {
		log.Info("upgrading helm release")
		rel, err = upgrade(ctx, cfg, info, ch, values)
	} else {
		log.Info("installing helm release")
		rel, err = install(ctx, cfg, info, ch, values)
	}
	if err != nil {
		return models.ReleaseStatus{}, classify(err)
	}

	return models.ReleaseStatus{
		Name:      rel.Name,
		Namespace: rel.Namespace,
		Revision:  rel.Version,
		Status:    rel.Info.Status.String(),
	}, nil
}

func install(ctx context.Context, cfg *action.Configuration, info models.ChartInfo, ch *chart.Chart, values map[string]any) (*release.Release, error) {
	client := action.NewInstall(cfg)
	client.ReleaseName = info.Name
	client.Namespace = info.Namespace
	client.CreateNamespace = true
	client.Atomic = info.Atomic
	client.Wait = info.Atomic
	client.Timeout = info.Timeout()
	return client.RunWithContext(ctx, ch, values)
}

func upgrade(ctx context.Context, cfg *action.Configuration, info models.ChartInfo, ch *chart.Chart, values map[string]any) (*release.Release, error) {
	client := action.NewUpgrade(cfg)
	client.Namespace = info.Namespace
	client.Atomic = info.Atomic
	client.Wait = info.Atomic
	client.Timeout = info.Timeout()
	return client.RunWithContext(ctx, info.Name, ch, values)
}

// Uninstall removes the release. A release that does not exist is already uninstalled.
func (m *ChartManager) Uninstall(ctx context.Context, kube port.KubeAccess, info models.ChartInfo) error {
	cfg, err := m.newConfig(kube, info.Namespace)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	client := action.NewUninstall(cfg)
	client.Timeout = info.Timeout()
	client.IgnoreNotFound = true

	logger.L().Info("uninstalling helm release",
		zap.String("release", info.Name),
		zap.String("namespace", info.Namespace),
	)
	if _, err := client.Run(info.Name); err != nil && !errors.Is(err, driver.ErrReleaseNotFound) {
		return classify(err)
	}
	return nil
}

func hasHistory(cfg *action.Configuration, name string) (bool, error) {
	history := action.NewHistory(cfg)
	history.Max = 1
	_, err := history.Run(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, driver.ErrReleaseNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("read history of release %s: %w", name, err)
	}
}

// mergeValues applies the values files in order, then the --set style values.
func mergeValues(info models.ChartInfo) (map[string]any, error) {
	base := map[string]any{}
	for _, path := range info.ValuesFiles {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values file %s: %w", path, err)
		}
		current := map[string]any{}
		if err := yaml.Unmarshal(raw, &current); err != nil {
			return nil, fmt.Errorf("parse values file %s: %w", path, err)
		}
		base = mergeMaps(base, current)
	}
	for _, v := range info.Values {
		if err := strvals.ParseInto(v.Key+"="+v.Value, base); err != nil {
			return nil, fmt.Errorf("parse value %s: %w", v.Key, err)
		}
	}
	return base, nil
}

func mergeMaps(a, b map[string]any) map[string]any {
	out := make(map[string]any, len(a))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		if nested, ok := v.(map[string]any); ok {
			if existing, ok := out[k].(map[string]any); ok {
				out[k] = mergeMaps(existing, nested)
				continue
			}
		}
		out[k] = v
	}
	return out
}

func classify(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "timed out waiting for the condition") {
		return fmt.Errorf("%w: %w", port.ErrReleaseTimeout, err)
	}
	return err
}
