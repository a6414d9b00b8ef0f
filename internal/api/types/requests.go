package types

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/iac-studio/converge/internal/database"
	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/workload"
	appErr "github.com/iac-studio/converge/pkg/errors"
)

// EnvironmentRequest is the declaration of every service of one environment for one execution.
type EnvironmentRequest struct {
	OrganizationID              string               `json:"organization_id" validate:"required"`
	ClusterID                   string               `json:"cluster_id" validate:"required"`
	Action                      models.Action        `json:"action" validate:"required,oneof=CREATE PAUSE DELETE"`
	DryRunDeploy                bool                 `json:"dry_run_deploy"`
	ResourceExpirationInSeconds *int64               `json:"resource_expiration_in_seconds,omitempty" validate:"omitempty,gt=0"`
	Environment                 models.Environment   `json:"environment"`
	Applications                []ApplicationRequest `json:"applications" validate:"dive"`
	Routers                     []RouterRequest      `json:"routers" validate:"dive"`
	Databases                   []DatabaseRequest    `json:"databases" validate:"dive"`
}

type PortRequest struct {
	LongID             string `json:"long_id"`
	Port               uint16 `json:"port" validate:"required"`
	PublicPort         uint16 `json:"public_port,omitempty"`
	PubliclyAccessible bool   `json:"publicly_accessible"`
}

type StorageRequest struct {
	ID          string `json:"id" validate:"required"`
	Name        string `json:"name" validate:"required"`
	StorageType string `json:"storage_type"`
	SizeInGiB   int    `json:"size_in_gib" validate:"gt=0"`
	MountPoint  string `json:"mount_point" validate:"required"`
}

type ApplicationRequest struct {
	LongID        string            `json:"long_id" validate:"required,uuid"`
	Action        models.Action     `json:"action,omitempty" validate:"omitempty,oneof=CREATE PAUSE DELETE NOTHING"`
	Name          string            `json:"name" validate:"required"`
	Version       string            `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	Image         string            `json:"image" validate:"required"`
	Ports         []PortRequest     `json:"ports" validate:"dive"`
	EnvVars       map[string]string `json:"environment_vars"`
	Storage       []StorageRequest  `json:"storage" validate:"dive"`
	TotalCPUs     string            `json:"total_cpus"`
	CPUBurst      string            `json:"cpu_burst"`
	TotalRAMInMiB uint32            `json:"total_ram_in_mib"`
	MinInstances  uint32            `json:"min_instances"`
	MaxInstances  uint32            `json:"max_instances"`
}

type RouteRequest struct {
	Path              string `json:"path" validate:"required"`
	ApplicationLongID string `json:"application_long_id" validate:"required,uuid"`
}

type CustomDomainRequest struct {
	Domain              string `json:"domain" validate:"required"`
	TargetDomain        string `json:"target_domain"`
	GenerateCertificate bool   `json:"generate_certificate"`
}

type RouterRequest struct {
	LongID         string                `json:"long_id" validate:"required,uuid"`
	Action         models.Action         `json:"action,omitempty" validate:"omitempty,oneof=CREATE PAUSE DELETE NOTHING"`
	Name           string                `json:"name" validate:"required"`
	CreatedAt      time.Time             `json:"created_at"`
	DefaultDomain  string                `json:"default_domain" validate:"required"`
	CustomDomains  []CustomDomainRequest `json:"custom_domains" validate:"dive"`
	Routes         []RouteRequest        `json:"routes" validate:"dive"`
	StickySessions bool                  `json:"sticky_sessions_enabled"`
}

type DatabaseRequest struct {
	LongID               string        `json:"long_id" validate:"required,uuid"`
	Action               models.Action `json:"action,omitempty" validate:"omitempty,oneof=CREATE PAUSE DELETE NOTHING"`
	Name                 string        `json:"name" validate:"required"`
	Type                 string        `json:"type" validate:"required,oneof=POSTGRESQL MYSQL MONGODB REDIS"`
	Mode                 string        `json:"mode" validate:"required,oneof=MANAGED CONTAINER"`
	Version              string        `json:"version" validate:"required"`
	CreatedAt            time.Time     `json:"created_at"`
	FQDN                 string        `json:"fqdn"`
	FQDNID               string        `json:"fqdn_id"`
	TotalCPUs            string        `json:"total_cpus"`
	CPUBurst             string        `json:"cpu_burst"`
	TotalRAMInMiB        uint32        `json:"total_ram_in_mib"`
	DiskSizeInGiB        int           `json:"disk_size_in_gib" validate:"gte=0"`
	DatabaseInstanceType string        `json:"database_instance_type,omitempty"`
	DatabaseDiskType     string        `json:"database_disk_type,omitempty"`
	EncryptDisk          bool          `json:"encrypt_disk"`
	PubliclyAccessible   bool          `json:"publicly_accessible"`
	Port                 uint16        `json:"port"`
	Username             string        `json:"username"`
	Password             string        `json:"password"`
}

// ServiceSet holds the domain services of one environment request.
type ServiceSet struct {
	Databases    []*database.Database
	Applications []*workload.Application
	Routers      []*workload.Router
}

// ToDomain builds the services for the cloud provider of execCtx. A service without
// an action inherits the environment action.
func (r EnvironmentRequest) ToDomain(execCtx models.Context) (*ServiceSet, error) {
	details := execCtx.EventDetails(appErr.StageLoadConfiguration, appErr.Transmitter{
		Kind: appErr.TransmitterEnvironment, ID: r.Environment.LongID, Name: r.Environment.Namespace,
	})
	set := &ServiceSet{}

	for _, d := range r.Databases {
		longID, err := parseLongID(details, "database", d.LongID)
		if err != nil {
			return nil, err
		}
		db, err := database.New(execCtx, models.DatabaseMode(d.Mode), models.DatabaseEngine(d.Type), database.Params{
			LongID:             longID,
			Action:             actionOr(d.Action, r.Action),
			Name:               d.Name,
			Version:            d.Version,
			CreatedAt:          d.CreatedAt,
			FQDN:               d.FQDN,
			FQDNID:             d.FQDNID,
			TotalCPUs:          d.TotalCPUs,
			CPUBurst:           d.CPUBurst,
			TotalRAMInMiB:      d.TotalRAMInMiB,
			TotalDiskSizeInGB:  d.DiskSizeInGiB,
			InstanceType:       d.DatabaseInstanceType,
			PubliclyAccessible: d.PubliclyAccessible,
			PrivatePort:        d.Port,
			Options: database.Options{
				Login:            d.Username,
				Password:         d.Password,
				Host:             d.FQDN,
				Port:             d.Port,
				DatabaseDiskType: d.DatabaseDiskType,
				EncryptDisk:      d.EncryptDisk,
			},
		})
		if err != nil {
			return nil, err
		}
		set.Databases = append(set.Databases, db)
	}

	for _, a := range r.Applications {
		longID, err := parseLongID(details, "application", a.LongID)
		if err != nil {
			return nil, err
		}
		app, err := workload.NewApplication(execCtx, workload.ApplicationParams{
			LongID:        longID,
			Action:        actionOr(a.Action, r.Action),
			Name:          a.Name,
			Version:       a.Version,
			CreatedAt:     a.CreatedAt,
			Image:         a.Image,
			Ports:         lo.Map(a.Ports, func(p PortRequest, _ int) models.Port { return models.Port(p) }),
			EnvVars:       envVars(a.EnvVars),
			Storage:       lo.Map(a.Storage, func(s StorageRequest, _ int) models.Storage { return models.Storage(s) }),
			TotalCPUs:     a.TotalCPUs,
			CPUBurst:      a.CPUBurst,
			TotalRAMInMiB: a.TotalRAMInMiB,
			MinInstances:  a.MinInstances,
			MaxInstances:  a.MaxInstances,
		})
		if err != nil {
			return nil, err
		}
		set.Applications = append(set.Applications, app)
	}

	for _, rt := range r.Routers {
		longID, err := parseLongID(details, "router", rt.LongID)
		if err != nil {
			return nil, err
		}
		router, err := workload.NewRouter(execCtx, workload.RouterParams{
			LongID:        longID,
			Action:        actionOr(rt.Action, r.Action),
			Name:          rt.Name,
			CreatedAt:     rt.CreatedAt,
			DefaultDomain: rt.DefaultDomain,
			CustomDomains: lo.Map(rt.CustomDomains, func(d CustomDomainRequest, _ int) models.CustomDomain {
				return models.CustomDomain(d)
			}),
			Routes: lo.Map(rt.Routes, func(route RouteRequest, _ int) models.Route {
				return models.Route{Path: route.Path, ServiceLongID: route.ApplicationLongID}
			}),
			StickySessions: rt.StickySessions,
		}, set.Applications)
		if err != nil {
			return nil, err
		}
		set.Routers = append(set.Routers, router)
	}
	return set, nil
}

func parseLongID(details appErr.EventDetails, kind, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, appErr.NewInvalidEngineAPIInputCannotBeDeserialized(details, fmt.Errorf("%s long_id %q: %w", kind, raw, err))
	}
	return id, nil
}

func actionOr(a, fallback models.Action) models.Action {
	if a == "" {
		return fallback
	}
	return a
}

// envVars is sorted by key so rendered charts are stable.
func envVars(m map[string]string) []models.EnvVar {
	keys := lo.Keys(m)
	sort.Strings(keys)
	return lo.Map(keys, func(k string, _ int) models.EnvVar { return models.EnvVar{Key: k, Value: m[k]} })
}
