package models

import "fmt"

// Action is the lifecycle step requested for a service in one deployment cycle.
type Action string

const (
	ActionCreate  Action = "CREATE"
	ActionPause   Action = "PAUSE"
	ActionDelete  Action = "DELETE"
	ActionNothing Action = "NOTHING"
)

func (a Action) Valid() bool {
	switch a {
	case ActionCreate, ActionPause, ActionDelete, ActionNothing:
		return true
	}
	return false
}

// Verb is the progressive form used in user-facing messages.
func (a Action) Verb() string {
	switch a {
	case ActionCreate:
		return "Deployment"
	case ActionPause:
		return "Pause"
	case ActionDelete:
		return "Deletion"
	default:
		return "Nothing"
	}
}

type DatabaseEngine string

const (
	EnginePostgreSQL DatabaseEngine = "POSTGRESQL"
	EngineMySQL      DatabaseEngine = "MYSQL"
	EngineMongoDB    DatabaseEngine = "MONGODB"
	EngineRedis      DatabaseEngine = "REDIS"
)

// Name is the human readable engine name.
func (e DatabaseEngine) Name() string {
	switch e {
	case EnginePostgreSQL:
		return "PostgreSQL"
	case EngineMySQL:
		return "MySQL"
	case EngineMongoDB:
		return "MongoDB"
	case EngineRedis:
		return "Redis"
	default:
		return string(e)
	}
}

// LibDirectoryName is the chart/module directory name of the engine under the lib root.
func (e DatabaseEngine) LibDirectoryName() string {
	switch e {
	case EnginePostgreSQL:
		return "postgresql"
	case EngineMySQL:
		return "mysql"
	case EngineMongoDB:
		return "mongodb"
	case EngineRedis:
		return "redis"
	default:
		return ""
	}
}

func (e DatabaseEngine) Valid() bool { return e.LibDirectoryName() != "" }

// DatabaseMode selects whether a database runs in the cluster or is operated by the cloud vendor.
type DatabaseMode string

const (
	ModeManaged   DatabaseMode = "MANAGED"
	ModeContainer DatabaseMode = "CONTAINER"
)

type CloudProviderKind string

const (
	ProviderAWS CloudProviderKind = "aws"
	ProviderSCW CloudProviderKind = "scw"
	ProviderGCP CloudProviderKind = "gcp"
)

type ServiceKind string

const (
	KindApplication ServiceKind = "application"
	KindDatabase    ServiceKind = "database"
	KindRouter      ServiceKind = "router"
)

// ServiceType is the kind of a service, with its engine when it is a database.
type ServiceType struct {
	Kind   ServiceKind
	Engine DatabaseEngine
}

var (
	ServiceTypeApplication = ServiceType{Kind: KindApplication}
	ServiceTypeRouter      = ServiceType{Kind: KindRouter}
)

func DatabaseServiceType(engine DatabaseEngine) ServiceType {
	return ServiceType{Kind: KindDatabase, Engine: engine}
}

func (t ServiceType) Name() string {
	switch t.Kind {
	case KindApplication:
		return "Application"
	case KindRouter:
		return "Router"
	case KindDatabase:
		return fmt.Sprintf("%s database", t.Engine.Name())
	default:
		return string(t.Kind)
	}
}

// ScalingKind is the workload controller a service is scaled through.
type ScalingKind string

const (
	ScalingDeployment  ScalingKind = "Deployment"
	ScalingStatefulSet ScalingKind = "StatefulSet"
)

type EnvVar struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Port struct {
	LongID             string `json:"long_id"`
	Port               uint16 `json:"port"`
	PublicPort         uint16 `json:"public_port,omitempty"`
	PubliclyAccessible bool   `json:"publicly_accessible"`
}

type Storage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	StorageType string `json:"storage_type"`
	SizeInGiB   int    `json:"size_in_gib"`
	MountPoint  string `json:"mount_point"`
}

type CustomDomain struct {
	Domain              string `json:"domain"`
	TargetDomain        string `json:"target_domain"`
	GenerateCertificate bool   `json:"generate_certificate"`
}

type Route struct {
	Path          string `json:"path"`
	ServiceLongID string `json:"service_long_id"`
}
