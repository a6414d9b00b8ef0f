// Package service defines the contracts shared by every deployable kind and the action dispatch.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	appErr "github.com/iac-studio/converge/pkg/errors"
	"github.com/iac-studio/converge/pkg/utils"
)

type Identity interface {
	ID() string
	LongID() uuid.UUID
	Name() string
	// KubeName is the sanitized name usable as a kubernetes resource or label value.
	KubeName() string
	ServiceType() models.ServiceType
	Action() models.Action
	Version() string
}

// Service is what the pipelines need to render and observe a service.
type Service interface {
	Identity
	PrivatePort() *uint16
	PubliclyAccessible() bool
	TotalCPUs() string
	CPUBurst() string
	TotalRAMInMiB() uint32
	MinInstances() uint32
	MaxInstances() uint32
	// Selector is the label selector of the service pods, empty when it has none to wait on.
	Selector() string
	WorkspaceDirectory() string
	TemplateContext(target *DeploymentTarget) (port.TemplateContext, error)
}

type Lifecycle interface {
	OnCreate(ctx context.Context, target *DeploymentTarget) error
	OnCreateCheck() error
	OnPause(ctx context.Context, target *DeploymentTarget) error
	OnPauseCheck() error
	OnDelete(ctx context.Context, target *DeploymentTarget) error
	OnDeleteCheck() error
}

type HelmDeployable interface {
	HelmReleaseName() string
	HelmChartDir() string
}

type TerraformDeployable interface {
	TerraformCommonResourceDirPath() string
	TerraformResourceDirPath() string
}

// Listenable services report progress under their own scope.
type Listenable interface {
	ProgressScope() events.Scope
}

type StatelessService interface {
	Service
	Lifecycle
	HelmDeployable
	Listenable
	ScalingKind() models.ScalingKind
}

type RouterService interface {
	Service
	Lifecycle
	HelmDeployable
	Listenable
}

type DatabaseService interface {
	Service
	Lifecycle
	HelmDeployable
	Listenable
	IsManagedService() bool
	DBType() models.DatabaseEngine
}

// Deployable is the minimum a value needs to go through ExecAction.
type Deployable interface {
	Identity
	Lifecycle
}

// ExecAction runs the lifecycle hook matching the service action. Nothing is a no-op success.
func ExecAction(ctx context.Context, svc Deployable, target *DeploymentTarget) error {
	switch svc.Action() {
	case models.ActionCreate:
		return svc.OnCreate(ctx, target)
	case models.ActionPause:
		return svc.OnPause(ctx, target)
	case models.ActionDelete:
		return svc.OnDelete(ctx, target)
	case models.ActionNothing:
		return nil
	default:
		return fmt.Errorf("unknown action %q for service %s", svc.Action(), svc.ID())
	}
}

// ExecCheckAction runs the pre-flight check matching the service action.
func ExecCheckAction(svc Deployable) error {
	switch svc.Action() {
	case models.ActionCreate:
		return svc.OnCreateCheck()
	case models.ActionPause:
		return svc.OnPauseCheck()
	case models.ActionDelete:
		return svc.OnDeleteCheck()
	case models.ActionNothing:
		return nil
	default:
		return fmt.Errorf("unknown action %q for service %s", svc.Action(), svc.ID())
	}
}

// FQDN is the address other services reach this one at.
func FQDN(publiclyAccessible bool, fallbackFQDN string, managed bool, id, sanitizedName, namespace string) string {
	switch {
	case publiclyAccessible:
		return fallbackFQDN
	case managed:
		return fmt.Sprintf("%s-dns.%s.svc.cluster.local", id, namespace)
	default:
		return fmt.Sprintf("%s.%s.svc.cluster.local", sanitizedName, namespace)
	}
}

// Workspace subpaths, one per service kind.
const (
	ApplicationsSubpath = "applications"
	DatabasesSubpath    = "databases"
	RoutersSubpath      = "routers"
)

// WorkspaceDirectory creates and returns {root}/{executionID}/{subpath}/{sanitized name}-{id}.
// The id keeps services sharing a name apart; the result never leaves the execution directory.
func WorkspaceDirectory(root, executionID, subpath, name, id string) (string, error) {
	if root == "" || executionID == "" || id == "" {
		return "", fmt.Errorf("workspace root, execution id and service id are required")
	}
	leaf := id
	if sanitized := utils.SanitizeName(name); sanitized != "" {
		leaf = sanitized + "-" + id
	}
	execDir := filepath.Join(root, executionID)
	dir := filepath.Join(execDir, subpath, leaf)
	rel, err := filepath.Rel(execDir, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("workspace %s escapes execution directory %s", dir, execDir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create workspace directory %s: %w", dir, err)
	}
	return dir, nil
}

// Transmitter identifies a service in event details.
func Transmitter(svc Identity) appErr.Transmitter {
	kind := appErr.TransmitterApplication
	switch svc.ServiceType().Kind {
	case models.KindDatabase:
		kind = appErr.TransmitterDatabase
	case models.KindRouter:
		kind = appErr.TransmitterRouter
	}
	return appErr.Transmitter{Kind: kind, ID: svc.LongID().String(), Name: svc.Name()}
}

// SelectorFor is the label selector every service chart puts on its pods.
func SelectorFor(longID uuid.UUID) string {
	return fmt.Sprintf("%s=%s", ServiceIDLabel, longID)
}

const ServiceIDLabel = "converge.dev/service-id"
