package models

import "time"

// DefaultChartTimeoutSeconds bounds every helm release of the pipelines.
const DefaultChartTimeoutSeconds = 600

type ChartSetValue struct {
	Key   string
	Value string
}

// ChartInfo describes one helm release to install, upgrade or uninstall.
type ChartInfo struct {
	Name           string
	Path           string
	Namespace      string
	TimeoutSeconds int
	ValuesFiles    []string
	Values         []ChartSetValue
	Atomic         bool
	Selector       string
}

// NewChartInfo returns an atomic chart with the default timeout.
func NewChartInfo(name, path, namespace string) ChartInfo {
	return ChartInfo{
		Name:           name,
		Path:           path,
		Namespace:      namespace,
		TimeoutSeconds: DefaultChartTimeoutSeconds,
		Atomic:         true,
	}
}

func (c ChartInfo) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ReleaseStatus struct {
	Name      string
	Namespace string
	Revision  int
	Status    string
}

// DatabaseTerraformConfig is written by the managed database terraform module
// when the in-cluster proxy must be deployed with helm.
type DatabaseTerraformConfig struct {
	TargetID       string `json:"database_target_id"`
	TargetHostname string `json:"database_target_hostname"`
	TargetFQDNID   string `json:"database_target_fqdn_id"`
	TargetFQDN     string `json:"database_target_fqdn"`
}

const DatabaseTerraformConfigFile = "database-tf-config.json"
