// Package database is the generic database entity: one runtime type parameterized by
// cloud provider, deployment mode and engine.
package database

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/iac-studio/converge/internal/cloudprovider"
	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/orchestrator"
	"github.com/iac-studio/converge/internal/service"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/utils"
)

var (
	_ service.DatabaseService        = (*Database)(nil)
	_ orchestrator.ContainerDatabase = (*Database)(nil)
	_ orchestrator.ManagedDatabase   = (*Database)(nil)
	_ orchestrator.VersionedService  = (*Database)(nil)
)

// Options are the engine specific connection and disk settings.
type Options struct {
	Login            string
	Password         string
	Host             string
	Port             uint16
	DatabaseDiskType string
	EncryptDisk      bool
}

// Params is the declaration a Database is built from.
type Params struct {
	LongID             uuid.UUID
	Action             models.Action
	Name               string
	Version            string
	CreatedAt          time.Time
	FQDN               string
	FQDNID             string
	TotalCPUs          string
	CPUBurst           string
	TotalRAMInMiB      uint32
	TotalDiskSizeInGB  int
	InstanceType       string
	PubliclyAccessible bool
	PrivatePort        uint16
	Options            Options
}

type Database struct {
	provider   models.CloudProviderKind
	mode       models.DatabaseMode
	descriptor typeDescriptor
	libRoot    string

	id                 string
	longID             uuid.UUID
	action             models.Action
	name               string
	kubeName           string
	version            string
	createdAt          time.Time
	fqdn               string
	fqdnID             string
	totalCPUs          string
	cpuBurst           string
	totalRAMInMiB      uint32
	totalDiskSizeInGB  int
	instanceType       cloudprovider.DatabaseInstanceType
	publiclyAccessible bool
	privatePort        uint16
	options            Options
	workspace          string
}

// New validates the provider, mode and engine combination and creates the workspace directory.
// Every check runs before the workspace is touched.
func New(execCtx models.Context, mode models.DatabaseMode, engine models.DatabaseEngine, p Params) (*Database, error) {
	provider := execCtx.ProviderKind
	details := execCtx.EventDetails(appErr.StageLoadConfiguration, appErr.Transmitter{
		Kind: appErr.TransmitterDatabase, ID: p.LongID.String(), Name: p.Name,
	})

	descriptor, err := lookupDescriptor(mode, engine)
	if err != nil {
		return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidConfig, engine.Name(), err.Error())
	}
	if mode == models.ModeManaged && !cloudprovider.SupportsManagedDatabase(provider, engine) {
		return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrUnsupportedManagedMode, engine.Name(),
			fmt.Sprintf("%s does not offer managed %s", provider, engine.Name()))
	}

	var instanceType cloudprovider.DatabaseInstanceType
	if p.InstanceType != "" {
		instanceType, err = cloudprovider.ParseDatabaseInstanceType(p.InstanceType)
		if err != nil {
			return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidInstance, engine.Name(), err.Error())
		}
		if instanceType.CloudProvider() != provider {
			return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInstanceTypeMismatchCloudProvider, engine.Name(),
				fmt.Sprintf("instance type %s is for %s, database is deployed on %s", p.InstanceType, instanceType.CloudProvider(), provider))
		}
		if !instanceType.IsInstanceAllowed() {
			return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidInstance, engine.Name(),
				fmt.Sprintf("instance type %s is not allowed", p.InstanceType))
		}
		if !instanceType.IsInstanceCompatibleWith(engine) {
			return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInstanceTypeMismatchDatabaseType, engine.Name(),
				fmt.Sprintf("instance type %s cannot run %s", p.InstanceType, engine.Name()))
		}
	} else if mode == models.ModeManaged {
		return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidInstance, engine.Name(),
			"an instance type is required for a managed database")
	}

	workspace, err := service.WorkspaceDirectory(execCtx.WorkspaceRootDir, execCtx.ExecutionID, service.DatabasesSubpath, p.Name, utils.ToShortID(p.LongID))
	if err != nil {
		return nil, appErr.NewDatabaseError(details, appErr.DatabaseErrInvalidConfig, engine.Name(), err.Error())
	}

	port := p.PrivatePort
	if port == 0 {
		port = descriptor.defaultPort
	}
	return &Database{
		provider:           provider,
		mode:               mode,
		descriptor:         descriptor,
		libRoot:            execCtx.LibRootDir,
		id:                 utils.ToShortID(p.LongID),
		longID:             p.LongID,
		action:             p.Action,
		name:               p.Name,
		kubeName:           utils.SanitizeName(p.Name),
		version:            p.Version,
		createdAt:          p.CreatedAt,
		fqdn:               p.FQDN,
		fqdnID:             p.FQDNID,
		totalCPUs:          p.TotalCPUs,
		cpuBurst:           p.CPUBurst,
		totalRAMInMiB:      p.TotalRAMInMiB,
		totalDiskSizeInGB:  p.TotalDiskSizeInGB,
		instanceType:       instanceType,
		publiclyAccessible: p.PubliclyAccessible,
		privatePort:        port,
		options:            p.Options,
		workspace:          workspace,
	}, nil
}

func (d *Database) ID() string                      { return d.id }
func (d *Database) LongID() uuid.UUID               { return d.longID }
func (d *Database) Name() string                    { return d.name }
func (d *Database) KubeName() string                { return d.kubeName }
func (d *Database) Action() models.Action           { return d.action }
func (d *Database) Version() string                 { return d.version }
func (d *Database) CreatedAt() time.Time            { return d.createdAt }
func (d *Database) ServiceType() models.ServiceType { return models.DatabaseServiceType(d.descriptor.engine) }
func (d *Database) DBType() models.DatabaseEngine   { return d.descriptor.engine }
func (d *Database) Mode() models.DatabaseMode       { return d.mode }
func (d *Database) IsManagedService() bool          { return d.mode == models.ModeManaged }
func (d *Database) PubliclyAccessible() bool        { return d.publiclyAccessible }
func (d *Database) WorkspaceDirectory() string      { return d.workspace }
func (d *Database) StorageSizeInGiB() int           { return d.totalDiskSizeInGB }
func (d *Database) MinInstances() uint32            { return 1 }
func (d *Database) MaxInstances() uint32            { return 1 }

func (d *Database) PrivatePort() *uint16 {
	p := d.privatePort
	return &p
}

func (d *Database) TotalCPUs() string     { return d.descriptor.cpuValidate(d.totalCPUs) }
func (d *Database) CPUBurst() string      { return d.descriptor.cpuBurstValue(d.totalCPUs, d.cpuBurst) }
func (d *Database) TotalRAMInMiB() uint32 { return d.descriptor.memoryValidate(d.totalRAMInMiB) }

func (d *Database) Selector() string            { return service.SelectorFor(d.longID) }
func (d *Database) StatefulsetSelector() string { return orchestrator.DatabaseStatefulsetSelector(d.id) }
func (d *Database) PVCSelector() string         { return "app=" + d.kubeName }

func (d *Database) ProgressScope() events.Scope {
	return events.Scope{Kind: models.KindDatabase, ID: d.longID.String()}
}

// FQDN is the address applications reach the database at.
func (d *Database) FQDN(target *service.DeploymentTarget) string {
	return service.FQDN(d.publiclyAccessible, d.fqdn, d.IsManagedService(), d.id, d.kubeName, target.Namespace())
}

func (d *Database) providerLib() string { return cloudprovider.LibDirectoryName(d.provider) }

func (d *Database) HelmReleaseName() string {
	return fmt.Sprintf("%s-%s", d.descriptor.libDirectory, d.id)
}

func (d *Database) HelmChartDir() string {
	return filepath.Join(d.libRoot, "common", "services", d.descriptor.libDirectory)
}

func (d *Database) HelmChartValuesDir() string {
	return filepath.Join(d.libRoot, d.providerLib(), "chart_values", d.descriptor.libDirectory)
}

func (d *Database) HelmChartExternalNameServiceDir() string {
	return filepath.Join(d.libRoot, "common", "charts", "external-name-svc")
}

func (d *Database) TerraformCommonResourceDirPath() string {
	return filepath.Join(d.libRoot, d.providerLib(), "services", "common")
}

func (d *Database) TerraformResourceDirPath() string {
	return filepath.Join(d.libRoot, d.providerLib(), "services", d.descriptor.libDirectory)
}

// ResolveVersion matches the requested version against the versions deployable for this mode and provider.
func (d *Database) ResolveVersion() (models.ServiceVersionCheckResult, error) {
	details := appErr.EventDetails{
		ProviderKind: string(d.provider),
		Stage:        appErr.StageDeploy,
		Transmitter:  appErr.Transmitter{Kind: appErr.TransmitterDatabase, ID: d.longID.String(), Name: d.name},
	}
	requested, err := models.ParseVersionsNumber(d.version)
	if err != nil {
		return models.ServiceVersionCheckResult{}, appErr.NewVersionNumberParsingError(details, d.version, err)
	}
	matched, ok := matchVersion(requested, d.descriptor.versions(d.provider))
	if !ok {
		return models.ServiceVersionCheckResult{}, appErr.NewUnsupportedVersionError(details, d.ServiceType().Name(), d.version)
	}
	return models.NewServiceVersionCheckResult(requested, matched, d.ServiceType().Name()), nil
}

func (d *Database) OnCreate(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, d, models.ActionCreate, appErr.StageDeploy, func() error {
		if _, err := orchestrator.CheckServiceVersion(target, d); err != nil {
			return err
		}
		return orchestrator.DeployStatefulService(ctx, target, d)
	})
}

func (d *Database) OnCreateCheck() error { return nil }

// OnPause scales the statefulset of a container database to zero. Managed databases keep running.
func (d *Database) OnPause(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, d, models.ActionPause, appErr.StagePause, func() error {
		return orchestrator.ScaleDownDatabase(ctx, target, d, 0)
	})
}

func (d *Database) OnPauseCheck() error { return nil }

func (d *Database) OnDelete(ctx context.Context, target *service.DeploymentTarget) error {
	return orchestrator.CheckServiceResult(ctx, target, d, models.ActionDelete, appErr.StageDelete, func() error {
		return orchestrator.DeleteStatefulService(ctx, target, d)
	})
}

func (d *Database) OnDeleteCheck() error { return nil }
