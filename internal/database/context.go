package database

import (
	"maps"

	"github.com/iac-studio/converge/internal/port"
	"github.com/iac-studio/converge/internal/service"
)

const registryName = "docker.io"

// TemplateContext renders the charts and terraform modules of the database mode.
func (d *Database) TemplateContext(target *service.DeploymentTarget) (port.TemplateContext, error) {
	version, err := d.ResolveVersion()
	if err != nil {
		return nil, err
	}

	ctx := service.DefaultTemplateContext(d, target)
	for k, v := range target.CloudProvider.TemplateContextEnvironmentVariables() {
		ctx[k] = v
	}

	fqdn := d.FQDN(target)
	maps.Copy(ctx, port.TemplateContext{
		"version":                   version.MatchedVersion.String(),
		"kubeconfig_path":           target.Cluster.KubeconfigPath,
		"kubernetes_cluster_id":     target.Cluster.ID,
		"kubernetes_cluster_name":   target.Cluster.Name,
		"fqdn_id":                   d.fqdnID,
		"fqdn":                      fqdn,
		"service_name":              d.fqdnID,
		"database_db_name":          d.kubeName,
		"database_login":            d.options.Login,
		"database_password":         d.options.Password,
		"database_port":             d.privatePort,
		"database_disk_size_in_gib": d.totalDiskSizeInGB,
		"database_disk_type":        d.options.DatabaseDiskType,
		"database_ram_size_in_mib":  d.TotalRAMInMiB(),
		"database_total_cpus":       d.TotalCPUs(),
		"database_total_cpus_burst": d.CPUBurst(),
		"database_fqdn":             fqdn,
		"database_id":               d.id,
		"publicly_accessible":       target.Cluster.AdvancedSettings.PubliclyAccessible(d.DBType(), d.publiclyAccessible),
	})
	if d.instanceType != nil {
		ctx["database_instance_type"] = d.instanceType.ToCloudProviderFormat()
	}
	if ttl := target.Context.ResourceExpirationInSeconds; ttl != nil {
		ctx["resource_expiration_in_seconds"] = *ttl
	}

	if d.IsManagedService() {
		ctx["tfstate_suffix_name"] = d.id
		ctx["database_encrypt_disk"] = d.options.EncryptDisk
		ctx["database_host"] = d.options.Host
		return ctx, nil
	}

	ctx["registry_name"] = registryName
	ctx["repository_name"] = d.descriptor.repositoryName
	ctx["repository_with_registry"] = registryName + "/" + d.descriptor.repositoryName
	return ctx, nil
}
