package service

import (
	"time"

	"github.com/iac-studio/converge/internal/events"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/telemetry"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

// DefaultReadinessTimeout bounds the wait for a release pods to become ready.
const DefaultReadinessTimeout = 600 * time.Second

// Cluster is the handle of the kubernetes cluster services are deployed to.
type Cluster struct {
	ID               string
	Name             string
	Region           string
	Zone             string
	KubeconfigPath   string
	AdvancedSettings models.ClusterAdvancedSettings
	Client           port.ClusterClient
}

// DeploymentTarget is built per invocation and references everything a pipeline reaches out to.
// It owns none of them.
type DeploymentTarget struct {
	Context       models.Context
	Cluster       *Cluster
	Environment   models.Environment
	CloudProvider port.CloudProvider

	Renderer port.TemplateRenderer
	Charts   port.ChartManager
	Infra    port.InfraManager
	Sink     events.Sink
	Metrics  *telemetry.Metrics

	ReadinessTimeout time.Duration
}

func (t *DeploymentTarget) Namespace() string { return t.Environment.Namespace }

// KubeAccess carries the kubeconfig and the provider credentials to process based collaborators.
func (t *DeploymentTarget) KubeAccess() port.KubeAccess {
	return port.KubeAccess{
		KubeconfigPath: t.Cluster.KubeconfigPath,
		Env:            t.CloudProvider.CredentialsEnvironmentVariables(),
	}
}

func (t *DeploymentTarget) EventDetails(stage appErr.Stage, svc Identity) appErr.EventDetails {
	return t.Context.EventDetails(stage, Transmitter(svc))
}

func (t *DeploymentTarget) Readiness() time.Duration {
	if t.ReadinessTimeout <= 0 {
		return DefaultReadinessTimeout
	}
	return t.ReadinessTimeout
}

// Progress sends a progress notification for svc. A nil sink drops it.
func (t *DeploymentTarget) Progress(svc Identity, status events.Status, level events.Level, msg string) {
	if t.Sink == nil {
		return
	}
	scope := events.Scope{Kind: svc.ServiceType().Kind, ID: svc.LongID().String()}
	if l, ok := svc.(Listenable); ok {
		scope = l.ProgressScope()
	}
	t.Sink.Progress(events.ProgressInfo{
		Scope:       scope,
		Status:      status,
		Level:       level,
		Message:     msg,
		ExecutionID: t.Context.ExecutionID,
		Timestamp:   time.Now().UTC(),
	})
}

func (t *DeploymentTarget) Log(e events.EngineEvent) {
	if t.Sink == nil {
		return
	}
	t.Sink.Log(e)
}

// DefaultTemplateContext holds the keys every service chart is rendered with.
func DefaultTemplateContext(svc Service, target *DeploymentTarget) port.TemplateContext {
	env := target.Environment
	ctx := port.TemplateContext{
		"id":                   svc.ID(),
		"long_id":              svc.LongID().String(),
		"owner_id":             env.OwnerID,
		"project_id":           env.ProjectID,
		"project_long_id":      env.ProjectLongID,
		"organization_id":      env.OrganizationID,
		"organization_long_id": env.OrganizationLongID,
		"environment_id":       env.ID,
		"environment_long_id":  env.LongID,
		"region":               target.Cluster.Region,
		"zone":                 target.Cluster.Zone,
		"name":                 svc.Name(),
		"sanitized_name":       svc.KubeName(),
		"namespace":            env.Namespace,
		"cluster_name":         target.Cluster.Name,
		"total_cpus":           svc.TotalCPUs(),
		"total_ram_in_mib":     svc.TotalRAMInMiB(),
		"min_instances":        svc.MinInstances(),
		"max_instances":        svc.MaxInstances(),
		"is_private_port":      svc.PrivatePort() != nil,
		"version":              svc.Version(),
	}
	if p := svc.PrivatePort(); p != nil {
		ctx["private_port"] = *p
	}
	return ctx
}
