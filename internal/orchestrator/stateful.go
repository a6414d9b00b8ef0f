package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/logger"
)

const (
	// ValuesOverrideFile is rendered from the values chart of a container database.
	ValuesOverrideFile = "values-override.yaml"
	// ExternalNameServiceSubdir holds the rendered ExternalName chart of a managed database.
	ExternalNameServiceSubdir = "external-name-svc"
)

// ContainerDatabase is a database running as a statefulset in the cluster.
type ContainerDatabase interface {
	service.DatabaseService
	HelmChartValuesDir() string
	StorageSizeInGiB() int
	// StatefulsetSelector addresses the database statefulset, PVCSelector its volume claims.
	StatefulsetSelector() string
	PVCSelector() string
}

// ManagedDatabase is a database operated by the cloud vendor and reached through an ExternalName service.
type ManagedDatabase interface {
	service.DatabaseService
	service.TerraformDeployable
	HelmChartExternalNameServiceDir() string
}

// DeployStatefulService deploys a database through the pipeline matching its mode.
func DeployStatefulService(ctx context.Context, target *service.DeploymentTarget, db service.DatabaseService) error {
	if db.IsManagedService() {
		m, ok := db.(ManagedDatabase)
		if !ok {
			return modeMismatch(target, db)
		}
		return deployManagedDatabase(ctx, target, m)
	}
	c, ok := db.(ContainerDatabase)
	if !ok {
		return modeMismatch(target, db)
	}
	return deployContainerDatabase(ctx, target, c)
}

// DeleteStatefulService removes a database through the pipeline matching its mode.
func DeleteStatefulService(ctx context.Context, target *service.DeploymentTarget, db service.DatabaseService) error {
	if db.IsManagedService() {
		m, ok := db.(ManagedDatabase)
		if !ok {
			return modeMismatch(target, db)
		}
		return deleteManagedDatabase(ctx, target, m)
	}
	return DeleteStatelessService(ctx, target, db)
}

// ScaleDownDatabase scales the statefulset of a container database. Managed databases are left to the vendor.
func ScaleDownDatabase(ctx context.Context, target *service.DeploymentTarget, db service.DatabaseService, replicas int32) error {
	if db.IsManagedService() {
		return nil
	}
	details := target.EventDetails(appErr.StageScaleDown, db)
	ns := target.Namespace()
	selector := DatabaseStatefulsetSelector(db.ID())
	if err := target.Cluster.Client.ScaleReplicas(ctx, ns, models.ScalingStatefulSet, selector, replicas); err != nil {
		return appErr.NewK8sScaleReplicas(details, selector, ns, replicas, err)
	}
	return nil
}

// DatabaseStatefulsetSelector is the label the database charts put on their statefulset.
func DatabaseStatefulsetSelector(id string) string {
	return "databaseId=" + id
}

func modeMismatch(target *service.DeploymentTarget, db service.DatabaseService) error {
	details := target.EventDetails(appErr.StageDeploy, db)
	return appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidConfig, db.DBType().Name(),
		fmt.Sprintf("database %s does not implement the pipeline of its mode (managed=%t)", db.ID(), db.IsManagedService()))
}

func deployContainerDatabase(ctx context.Context, target *service.DeploymentTarget, db ContainerDatabase) error {
	details := target.EventDetails(appErr.StageDeploy, db)
	workspace := db.WorkspaceDirectory()

	data, err := db.TemplateContext(target)
	if err != nil {
		return err
	}
	if err := render(target, details, db.HelmChartDir(), workspace, data); err != nil {
		return err
	}
	if err := render(target, details, db.HelmChartValuesDir(), workspace, data); err != nil {
		return err
	}
	if err := ensureNamespace(ctx, target, details); err != nil {
		return err
	}

	invalid, err := CheckStatefulsetStorage(ctx, target, db)
	if err != nil {
		return err
	}
	if invalid != nil {
		if err := applyStorageResize(ctx, target, details, invalid); err != nil {
			return err
		}
	}

	chart := models.NewChartInfo(db.HelmReleaseName(), workspace, target.Namespace())
	chart.ValuesFiles = []string{filepath.Join(workspace, ValuesOverrideFile)}
	chart.Selector = db.Selector()

	upgradeStartedAt := time.Now()
	if err := upgradeChart(ctx, target, details, chart); err != nil {
		return err
	}
	deletePendingPods(ctx, target, details, db.Selector(), upgradeStartedAt)

	if err := waitForPodsReady(ctx, target, db.Selector()); err != nil {
		return appErr.NewDatabaseFailedToStartAfterSeveralRetries(details, db.ID(), db.DBType().Name(), err)
	}
	return nil
}

// renderManagedTemplates renders the common and engine terraform modules and the ExternalName chart.
// Apply and destroy both go through it so they see identical module inputs.
func renderManagedTemplates(target *service.DeploymentTarget, details appErr.EventDetails, db ManagedDatabase) error {
	workspace := db.WorkspaceDirectory()
	data, err := db.TemplateContext(target)
	if err != nil {
		return err
	}
	if err := render(target, details, db.TerraformCommonResourceDirPath(), workspace, data); err != nil {
		return err
	}
	if err := render(target, details, db.TerraformResourceDirPath(), workspace, data); err != nil {
		return err
	}
	return render(target, details, db.HelmChartExternalNameServiceDir(),
		filepath.Join(workspace, ExternalNameServiceSubdir), data)
}

func deployManagedDatabase(ctx context.Context, target *service.DeploymentTarget, db ManagedDatabase) error {
	details := target.EventDetails(appErr.StageDeploy, db)
	workspace := db.WorkspaceDirectory()

	if err := ensureNamespace(ctx, target, details); err != nil {
		return err
	}
	if err := renderManagedTemplates(target, details, db); err != nil {
		return err
	}

	env := target.CloudProvider.CredentialsEnvironmentVariables()
	if err := target.Infra.InitValidatePlanApply(ctx, workspace, env, target.Context.DryRunDeploy); err != nil {
		return withCredentials(appErr.NewTerraformErrorWhileExecutingPipeline(details, err), target)
	}

	cfg, err := readDatabaseTerraformConfig(details, workspace)
	if err != nil {
		return err
	}
	if cfg == nil {
		logger.L().Debug("no database terraform config, routing handled by terraform",
			zap.String("database_id", db.ID()))
		return nil
	}

	chart := models.NewChartInfo(cfg.TargetID+"-externalname", filepath.Join(workspace, ExternalNameServiceSubdir), target.Namespace())
	chart.Values = []models.ChartSetValue{
		{Key: "target_hostname", Value: cfg.TargetHostname},
		{Key: "source_fqdn", Value: cfg.TargetFQDN},
		{Key: "app_id", Value: db.ID()},
		{Key: "service_name", Value: cfg.TargetFQDNID},
		{Key: "publicly_accessible", Value: strconv.FormatBool(target.Cluster.AdvancedSettings.PubliclyAccessible(db.DBType(), db.PubliclyAccessible()))},
	}
	return upgradeChart(ctx, target, details, chart)
}

// readDatabaseTerraformConfig returns nil when terraform did not write the file.
func readDatabaseTerraformConfig(details appErr.EventDetails, workspace string) (*models.DatabaseTerraformConfig, error) {
	path := filepath.Join(workspace, models.DatabaseTerraformConfigFile)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, appErr.NewTerraformConfigMismatch(details, path, err)
	}
	var cfg models.DatabaseTerraformConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, appErr.NewTerraformConfigMismatch(details, path, err)
	}
	return &cfg, nil
}

func deleteManagedDatabase(ctx context.Context, target *service.DeploymentTarget, db ManagedDatabase) error {
	details := target.EventDetails(appErr.StageDelete, db)

	if err := renderManagedTemplates(target, details, db); err != nil {
		return err
	}

	env := target.CloudProvider.CredentialsEnvironmentVariables()
	if err := target.Infra.InitValidateDestroy(ctx, db.WorkspaceDirectory(), env, true); err != nil {
		return withCredentials(appErr.NewTerraformErrorWhileExecutingDestroyPipeline(details, err), target)
	}

	target.Log(events.Info(details, "Deleting secret containing tfstates"))
	ns := target.Namespace()
	secret := TerraformStateSecretName(db.ID())
	if err := target.Cluster.Client.DeleteSecret(ctx, ns, secret); err != nil {
		target.Log(events.Warning(details, appErr.NewK8sCannotDeleteSecret(details, secret, ns, err).Error()))
	}
	return nil
}

// TerraformStateSecretName is the secret the terraform kubernetes backend keeps a service state in.
func TerraformStateSecretName(serviceID string) string {
	return "tfstate-default-" + serviceID
}
