package models

import (
	"strconv"

	appErr "github.com/iac-studio/converge/pkg/errors"
)

// Environment is the deployment target namespace and the identifiers it belongs to.
type Environment struct {
	ID                 string `json:"id"`
	LongID             string `json:"long_id"`
	ProjectID          string `json:"project_id"`
	ProjectLongID      string `json:"project_long_id"`
	OwnerID            string `json:"owner_id"`
	OrganizationID     string `json:"organization_id"`
	OrganizationLongID string `json:"organization_long_id"`
	Namespace          string `json:"namespace"`
}

// Context carries what is shared by every service of one execution.
type Context struct {
	ProviderKind                CloudProviderKind
	OrganizationID              string
	ClusterID                   string
	ExecutionID                 string
	Region                      string
	WorkspaceRootDir            string
	LibRootDir                  string
	DryRunDeploy                bool
	ResourceExpirationInSeconds *int64
}

// EventDetails builds the event details of a transmitter for this execution.
func (c Context) EventDetails(stage appErr.Stage, t appErr.Transmitter) appErr.EventDetails {
	return appErr.EventDetails{
		ProviderKind:   string(c.ProviderKind),
		OrganizationID: c.OrganizationID,
		ClusterID:      c.ClusterID,
		ExecutionID:    c.ExecutionID,
		Region:         c.Region,
		Stage:          stage,
		Transmitter:    t,
	}
}

// NamespaceLabels returns the labels to set on the environment namespace, if any.
func (c Context) NamespaceLabels() map[string]string {
	if c.ResourceExpirationInSeconds == nil {
		return nil
	}
	return map[string]string{"ttl": strconv.FormatInt(*c.ResourceExpirationInSeconds, 10)}
}

// ClusterAdvancedSettings are the cluster wide policies applied to services.
type ClusterAdvancedSettings struct {
	DatabasePostgresqlDenyPublicAccess bool  `json:"database.postgresql.deny_public_access"`
	DatabaseMysqlDenyPublicAccess      bool  `json:"database.mysql.deny_public_access"`
	DatabaseMongodbDenyPublicAccess    bool  `json:"database.mongodb.deny_public_access"`
	DatabaseRedisDenyPublicAccess      bool  `json:"database.redis.deny_public_access"`
	ResourcesTTLSeconds                int64 `json:"pleco.resources_ttl"`
}

// PubliclyAccessible is the exposure a database of the engine gets once the cluster policy is applied.
func (s ClusterAdvancedSettings) PubliclyAccessible(engine DatabaseEngine, requested bool) bool {
	return requested && !s.DenyPublicAccess(engine)
}

// DenyPublicAccess reports whether the cluster forbids public access for a database engine.
func (s ClusterAdvancedSettings) DenyPublicAccess(engine DatabaseEngine) bool {
	switch engine {
	case EnginePostgreSQL:
		return s.DatabasePostgresqlDenyPublicAccess
	case EngineMySQL:
		return s.DatabaseMysqlDenyPublicAccess
	case EngineMongoDB:
		return s.DatabaseMongodbDenyPublicAccess
	case EngineRedis:
		return s.DatabaseRedisDenyPublicAccess
	default:
		return false
	}
}
