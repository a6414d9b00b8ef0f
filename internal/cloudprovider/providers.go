// Package cloudprovider holds the cloud account handles and their database instance types.
package cloudprovider

import (
	"fmt"

	"github.com/iac-studio/converge/internal/models"
	"github.com/iac-studio/converge/internal/port"
)

var (
	_ port.CloudProvider = (*AWS)(nil)
	_ port.CloudProvider = (*Scaleway)(nil)
	_ port.CloudProvider = (*GCP)(nil)
)

type AWS struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
}

func (p *AWS) Kind() models.CloudProviderKind { return models.ProviderAWS }
func (p *AWS) LibDirectoryName() string       { return LibDirectoryName(models.ProviderAWS) }

func (p *AWS) CredentialsEnvironmentVariables() map[string]string {
	return map[string]string{
		"AWS_ACCESS_KEY_ID":     p.AccessKeyID,
		"AWS_SECRET_ACCESS_KEY": p.SecretAccessKey,
		"AWS_DEFAULT_REGION":    p.Region,
	}
}

func (p *AWS) TemplateContextEnvironmentVariables() map[string]string {
	return map[string]string{
		"aws_access_key": p.AccessKeyID,
		"aws_secret_key": p.SecretAccessKey,
		"aws_region":     p.Region,
	}
}

type Scaleway struct {
	AccessKey string
	SecretKey string
	ProjectID string
	Region    string
	Zone      string
}

func (p *Scaleway) Kind() models.CloudProviderKind { return models.ProviderSCW }
func (p *Scaleway) LibDirectoryName() string       { return LibDirectoryName(models.ProviderSCW) }

func (p *Scaleway) CredentialsEnvironmentVariables() map[string]string {
	return map[string]string{
		"SCW_ACCESS_KEY":         p.AccessKey,
		"SCW_SECRET_KEY":         p.SecretKey,
		"SCW_DEFAULT_PROJECT_ID": p.ProjectID,
		"SCW_DEFAULT_REGION":     p.Region,
		"SCW_DEFAULT_ZONE":       p.Zone,
	}
}

func (p *Scaleway) TemplateContextEnvironmentVariables() map[string]string {
	return map[string]string{
		"scaleway_access_key": p.AccessKey,
		"scaleway_secret_key": p.SecretKey,
		"scaleway_project_id": p.ProjectID,
		"scw_region":          p.Region,
		"scw_zone":            p.Zone,
	}
}

type GCP struct {
	CredentialsJSON string
	ProjectID       string
	Region          string
}

func (p *GCP) Kind() models.CloudProviderKind { return models.ProviderGCP }
func (p *GCP) LibDirectoryName() string       { return LibDirectoryName(models.ProviderGCP) }

func (p *GCP) CredentialsEnvironmentVariables() map[string]string {
	return map[string]string{
		"GOOGLE_CREDENTIALS": p.CredentialsJSON,
		"GOOGLE_PROJECT":     p.ProjectID,
		"GOOGLE_REGION":      p.Region,
	}
}

func (p *GCP) TemplateContextEnvironmentVariables() map[string]string {
	return map[string]string{
		"gcp_project_id": p.ProjectID,
		"gcp_region":     p.Region,
	}
}

// Credentials are the secrets a provider handle can be built from.
type Credentials struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	SCWAccessKey       string
	SCWSecretKey       string
	SCWProjectID       string
	GCPCredentialsJSON string
	GCPProjectID       string
}

// New builds the handle of a provider kind.
func New(kind models.CloudProviderKind, region, zone string, c Credentials) (port.CloudProvider, error) {
	switch kind {
	case models.ProviderAWS:
		return &AWS{AccessKeyID: c.AWSAccessKeyID, SecretAccessKey: c.AWSSecretAccessKey, Region: region}, nil
	case models.ProviderSCW:
		return &Scaleway{AccessKey: c.SCWAccessKey, SecretKey: c.SCWSecretKey, ProjectID: c.SCWProjectID, Region: region, Zone: zone}, nil
	case models.ProviderGCP:
		return &GCP{CredentialsJSON: c.GCPCredentialsJSON, ProjectID: c.GCPProjectID, Region: region}, nil
	default:
		return nil, fmt.Errorf("unsupported cloud provider %q", kind)
	}
}

// LibDirectoryName is the directory of a provider under the lib root.
func LibDirectoryName(kind models.CloudProviderKind) string {
	switch kind {
	case models.ProviderAWS:
		return "aws"
	case models.ProviderSCW:
		return "scaleway"
	case models.ProviderGCP:
		return "gcp"
	default:
		return string(kind)
	}
}

// SupportsManagedDatabase reports whether the provider offers engine as a vendor managed service.
func SupportsManagedDatabase(kind models.CloudProviderKind, engine models.DatabaseEngine) bool {
	switch kind {
	case models.ProviderAWS:
		return engine.Valid()
	case models.ProviderSCW:
		return engine == models.EnginePostgreSQL || engine == models.EngineMySQL
	default:
		return false
	}
}
