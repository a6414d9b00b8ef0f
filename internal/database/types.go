package database

import (
	"fmt"

	"github.com/iac-studio/converge/internal/models"
)

// typeDescriptor fixes what a (mode, engine) pair deploys and how it normalizes sizing.
type typeDescriptor struct {
	shortName    string
	libDirectory string
	engine       models.DatabaseEngine
	// image coordinates of the container flavor
	repositoryName string
	defaultPort    uint16

	cpuValidate    func(string) string
	cpuBurstValue  func(cpu, burst string) string
	memoryValidate func(uint32) uint32

	versions func(provider models.CloudProviderKind) []string
}

type typeKey struct {
	mode   models.DatabaseMode
	engine models.DatabaseEngine
}

func identityCPU(cpu string) string       { return cpu }
func identityMemory(mib uint32) uint32    { return mib }
func burstOrCPU(cpu, burst string) string { return firstNonEmpty(burst, cpu) }

func atLeastMiB(min uint32) func(uint32) uint32 {
	return func(mib uint32) uint32 { return max(mib, min) }
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func fixed(versions ...string) func(models.CloudProviderKind) []string {
	return func(models.CloudProviderKind) []string { return versions }
}

// Versions are sorted ascending, the last match wins.
var (
	containerPostgresVersions = fixed("10.23.0", "11.22.0", "12.20.0", "13.16.0", "14.13.0", "15.8.0", "16.4.0")
	containerMySQLVersions    = fixed("5.7.44", "8.0.39")
	containerMongoDBVersions  = fixed("4.4.29", "5.0.28", "6.0.16", "7.0.14")
	containerRedisVersions    = fixed("5.0.14", "6.2.14", "7.0.15", "7.2.5")
)

func managedPostgresVersions(p models.CloudProviderKind) []string {
	switch p {
	case models.ProviderAWS:
		return []string{"12.20.0", "13.16.0", "14.13.0", "15.8.0", "16.4.0"}
	case models.ProviderSCW:
		return []string{"12.0.0", "13.0.0", "14.0.0", "15.0.0", "16.0.0"}
	}
	return nil
}

func managedMySQLVersions(p models.CloudProviderKind) []string {
	switch p {
	case models.ProviderAWS:
		return []string{"5.7.44", "8.0.39"}
	case models.ProviderSCW:
		return []string{"8.0.0"}
	}
	return nil
}

func managedMongoDBVersions(p models.CloudProviderKind) []string {
	if p == models.ProviderAWS {
		return []string{"4.0.0", "5.0.0"}
	}
	return nil
}

func managedRedisVersions(p models.CloudProviderKind) []string {
	if p == models.ProviderAWS {
		return []string{"6.2.0", "7.0.0", "7.1.0"}
	}
	return nil
}

var descriptors = map[typeKey]typeDescriptor{
	{models.ModeContainer, models.EnginePostgreSQL}: {
		shortName: "PostgreSQL", libDirectory: "postgresql", engine: models.EnginePostgreSQL,
		repositoryName: "bitnami/postgresql", defaultPort: 5432,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: containerPostgresVersions,
	},
	{models.ModeContainer, models.EngineMySQL}: {
		shortName: "MySQL", libDirectory: "mysql", engine: models.EngineMySQL,
		repositoryName: "bitnami/mysql", defaultPort: 3306,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: containerMySQLVersions,
	},
	{models.ModeContainer, models.EngineMongoDB}: {
		shortName: "MongoDB", libDirectory: "mongodb", engine: models.EngineMongoDB,
		repositoryName: "bitnami/mongodb", defaultPort: 27017,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: atLeastMiB(512),
		versions: containerMongoDBVersions,
	},
	{models.ModeContainer, models.EngineRedis}: {
		shortName: "Redis", libDirectory: "redis", engine: models.EngineRedis,
		repositoryName: "bitnami/redis", defaultPort: 6379,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: containerRedisVersions,
	},
	{models.ModeManaged, models.EnginePostgreSQL}: {
		shortName: "PostgreSQL", libDirectory: "postgresql", engine: models.EnginePostgreSQL, defaultPort: 5432,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: managedPostgresVersions,
	},
	{models.ModeManaged, models.EngineMySQL}: {
		shortName: "MySQL", libDirectory: "mysql", engine: models.EngineMySQL, defaultPort: 3306,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: managedMySQLVersions,
	},
	{models.ModeManaged, models.EngineMongoDB}: {
		shortName: "MongoDB", libDirectory: "mongodb", engine: models.EngineMongoDB, defaultPort: 27017,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: managedMongoDBVersions,
	},
	{models.ModeManaged, models.EngineRedis}: {
		shortName: "Redis", libDirectory: "redis", engine: models.EngineRedis, defaultPort: 6379,
		cpuValidate: identityCPU, cpuBurstValue: burstOrCPU, memoryValidate: identityMemory,
		versions: managedRedisVersions,
	},
}

func lookupDescriptor(mode models.DatabaseMode, engine models.DatabaseEngine) (typeDescriptor, error) {
	d, ok := descriptors[typeKey{mode, engine}]
	if !ok {
		return typeDescriptor{}, fmt.Errorf("no %s database type for engine %q", mode, engine)
	}
	return d, nil
}

// matchVersion returns the highest allowed version satisfying requested.
func matchVersion(requested models.VersionsNumber, allowed []string) (models.VersionsNumber, bool) {
	var (
		matched models.VersionsNumber
		found   bool
	)
	for _, raw := range allowed {
		v := models.MustParseVersionsNumber(raw)
		if requested.Matches(v) {
			matched, found = v, true
		}
	}
	return matched, found
}
