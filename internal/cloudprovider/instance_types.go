package cloudprovider

import (
	"fmt"
	"strings"

	"github.com/iac-studio/converge/internal/models"
)

// DatabaseInstanceType is a vendor specific compute class for a managed database.
type DatabaseInstanceType interface {
	CloudProvider() models.CloudProviderKind
	ToCloudProviderFormat() string
	IsInstanceAllowed() bool
	IsInstanceCompatibleWith(engine models.DatabaseEngine) bool
}

type AWSDatabaseInstanceType string

var awsDatabaseInstanceTypes = map[string]struct{}{
	"db.t3.micro":    {}, "db.t3.small": {}, "db.t3.medium": {}, "db.t3.large": {}, "db.t3.xlarge": {},
	"db.t4g.micro":   {}, "db.t4g.small": {}, "db.t4g.medium": {}, "db.t4g.large": {},
	"db.m5.large":    {}, "db.m5.xlarge": {}, "db.m6g.large": {}, "db.r5.large": {}, "db.r6g.large": {},
	"cache.t3.micro": {}, "cache.t3.small": {}, "cache.t3.medium": {},
	"cache.m5.large": {}, "cache.r6g.large": {},
}

func (t AWSDatabaseInstanceType) CloudProvider() models.CloudProviderKind { return models.ProviderAWS }
func (t AWSDatabaseInstanceType) ToCloudProviderFormat() string           { return string(t) }

func (t AWSDatabaseInstanceType) IsInstanceAllowed() bool {
	_, ok := awsDatabaseInstanceTypes[string(t)]
	return ok
}

// IsInstanceCompatibleWith: redis runs on elasticache node types, every other engine on RDS/DocumentDB classes.
func (t AWSDatabaseInstanceType) IsInstanceCompatibleWith(engine models.DatabaseEngine) bool {
	if engine == models.EngineRedis {
		return strings.HasPrefix(string(t), "cache.")
	}
	return strings.HasPrefix(string(t), "db.")
}

type SCWDatabaseInstanceType string

var scwDatabaseInstanceTypes = map[string]struct{}{
	"DB-DEV-S": {}, "DB-DEV-M": {}, "DB-DEV-L": {}, "DB-DEV-XL": {},
	"DB-GP-XS": {}, "DB-GP-S": {}, "DB-GP-M": {}, "DB-GP-L": {}, "DB-GP-XL": {},
}

func (t SCWDatabaseInstanceType) CloudProvider() models.CloudProviderKind { return models.ProviderSCW }
func (t SCWDatabaseInstanceType) ToCloudProviderFormat() string           { return string(t) }

func (t SCWDatabaseInstanceType) IsInstanceAllowed() bool {
	_, ok := scwDatabaseInstanceTypes[string(t)]
	return ok
}

func (t SCWDatabaseInstanceType) IsInstanceCompatibleWith(engine models.DatabaseEngine) bool {
	return engine == models.EnginePostgreSQL || engine == models.EngineMySQL
}

type GCPDatabaseInstanceType string

func (t GCPDatabaseInstanceType) CloudProvider() models.CloudProviderKind { return models.ProviderGCP }
func (t GCPDatabaseInstanceType) ToCloudProviderFormat() string           { return string(t) }
func (t GCPDatabaseInstanceType) IsInstanceAllowed() bool                 { return strings.HasPrefix(string(t), "db-") }

func (t GCPDatabaseInstanceType) IsInstanceCompatibleWith(engine models.DatabaseEngine) bool {
	return engine == models.EnginePostgreSQL || engine == models.EngineMySQL
}

// ParseDatabaseInstanceType reads an instance type in the format of the given provider.
// The vendor is inferred from the format so a mismatching declaration can be reported.
func ParseDatabaseInstanceType(s string) (DatabaseInstanceType, error) {
	switch {
	case s == "":
		return nil, fmt.Errorf("empty database instance type")
	case strings.HasPrefix(s, "db.") || strings.HasPrefix(s, "cache."):
		return AWSDatabaseInstanceType(s), nil
	case strings.HasPrefix(s, "DB-"):
		return SCWDatabaseInstanceType(s), nil
	case strings.HasPrefix(s, "db-"):
		return GCPDatabaseInstanceType(s), nil
	default:
		return nil, fmt.Errorf("unknown database instance type %q", s)
	}
}
