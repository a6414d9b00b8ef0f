package errors

import (
	"errors"
	"fmt"
)

func NewCannotGetWorkspaceDirectory(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagCannotGetWorkspaceDirectory, details, "Error while trying to get workspace directory.", cause)
}

func NewCannotCopyFilesFromDirectoryToDirectory(details EventDetails, from, to string, cause error) *EngineError {
	return WrapEngine(TagCannotCopyFilesFromDirectoryToDirectory, details,
		fmt.Sprintf("Error while trying to copy all files from `%s` to `%s`.", from, to), cause)
}

func NewK8sCreateNamespace(details EventDetails, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotCreateNamespace, details,
		fmt.Sprintf("Error, cannot create namespace `%s`.", namespace), cause)
}

func NewK8sPodNotReady(details EventDetails, selector, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sPodIsNotReady, details,
		fmt.Sprintf("Error, pod with selector `%s` in namespace `%s` is not ready.", selector, namespace), cause)
}

func NewK8sServiceIssue(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagK8sServiceError, details, "Error while Kubernetes service.", cause)
}

func NewK8sScaleReplicas(details EventDetails, selector, namespace string, replicas int32, cause error) *EngineError {
	return WrapEngine(TagK8sScaleReplicas, details,
		fmt.Sprintf("Error while scaling replicas of `%s` in namespace `%s` to %d.", selector, namespace, replicas), cause)
}

func NewK8sGetLogs(details EventDetails, selector, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sGetLogs, details,
		fmt.Sprintf("Error, unable to retrieve logs for pod with selector `%s` in namespace `%s`.", selector, namespace), cause)
}

func NewK8sCannotGetPods(details EventDetails, selector, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotGetPods, details,
		fmt.Sprintf("Error, cannot get pods with selector `%s` in namespace `%s`.", selector, namespace), cause)
}

func NewK8sCannotDeletePod(details EventDetails, pod, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotDeletePod, details,
		fmt.Sprintf("Error, cannot delete pod `%s` in namespace `%s`.", pod, namespace), cause)
}

func NewK8sGetEvents(details EventDetails, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sGetEvents, details,
		fmt.Sprintf("Error, unable to retrieve events in namespace `%s`.", namespace), cause)
}

func NewK8sCannotGetPVCs(details EventDetails, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotGetPVCs, details,
		fmt.Sprintf("Error, cannot get PVCs in namespace `%s`.", namespace), cause)
}

func NewK8sCannotGetStatefulset(details EventDetails, namespace, selector string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotGetStatefulset, details,
		fmt.Sprintf("Error, cannot get statefulset with selector `%s` in namespace `%s`.", selector, namespace), cause)
}

func NewK8sCannotOrphanDelete(details EventDetails, name, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotOrphanDelete, details,
		fmt.Sprintf("Error, cannot orphan delete `%s` in namespace `%s`.", name, namespace), cause)
}

func NewK8sCannotPVCEdit(details EventDetails, pvc, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotPVCEdit, details,
		fmt.Sprintf("Error, cannot edit PVC `%s` in namespace `%s`.", pvc, namespace), cause)
}

func NewK8sCannotDeleteSecret(details EventDetails, secret, namespace string, cause error) *EngineError {
	return WrapEngine(TagK8sCannotDeleteSecret, details,
		fmt.Sprintf("Error, cannot delete secret `%s` in namespace `%s`.", secret, namespace), cause)
}

func NewHelmChartsUpgradeError(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagHelmChartsUpgradeError, details, "Error while upgrading helm charts.", cause)
}

func NewHelmDeployTimeout(details EventDetails, release string, cause error) *EngineError {
	return WrapEngine(TagHelmDeployTimeout, details,
		fmt.Sprintf("Helm timed out while deploying release `%s`.", release), cause).
		WithHint("Your application or database did not become ready in time, check its logs and resources.")
}

func NewHelmChartUninstallError(details EventDetails, release string, cause error) *EngineError {
	return WrapEngine(TagHelmChartUninstallError, details,
		fmt.Sprintf("Error while uninstalling helm release `%s`.", release), cause)
}

func terraformTag(cause error, fallback Tag) Tag {
	var te *TerraformError
	if errors.As(cause, &te) && te.Tag != TagTerraformUnknownError {
		return te.Tag
	}
	return fallback
}

// NewTerraformErrorWhileExecutingPipeline uses the classified terraform tag when one is known.
func NewTerraformErrorWhileExecutingPipeline(details EventDetails, cause error) *EngineError {
	return WrapEngine(terraformTag(cause, TagTerraformErrorWhileExecutingPipeline), details,
		"Error while executing Terraform pipeline.", cause)
}

// NewTerraformErrorWhileExecutingDestroyPipeline uses the classified terraform tag when one is known.
func NewTerraformErrorWhileExecutingDestroyPipeline(details EventDetails, cause error) *EngineError {
	return WrapEngine(terraformTag(cause, TagTerraformErrorWhileExecutingDestroyPipeline), details,
		"Error while executing Terraform destroy pipeline.", cause)
}

func NewTerraformConfigMismatch(details EventDetails, configFile string, cause error) *EngineError {
	return WrapEngine(TagTerraformConfigMismatch, details,
		fmt.Sprintf("Error while reading the terraform generated config file `%s`.", configFile), cause)
}

func NewDatabaseFailedToStartAfterSeveralRetries(details EventDetails, databaseID, databaseType string, cause error) *EngineError {
	return WrapEngine(TagDatabaseFailedToStartAfterSeveralRetries, details,
		fmt.Sprintf("Database `%s` (id `%s`) failed to start after several retries.", databaseType, databaseID), cause)
}

func NewUnsupportedVersionError(details EventDetails, serviceType, version string) *EngineError {
	return NewEngine(TagUnsupportedVersion, details,
		fmt.Sprintf("Error, %s version `%s` is not supported.", serviceType, version))
}

func NewVersionNumberParsingError(details EventDetails, version string, cause error) *EngineError {
	return WrapEngine(TagVersionNumberParsingError, details,
		fmt.Sprintf("Error while trying to parse `%s` to a version number.", version), cause)
}

func NewInvalidEnginePayload(details EventDetails, message string) *EngineError {
	return NewEngine(TagInvalidEnginePayload, details, message)
}

func NewServiceMissingStorage(details EventDetails, serviceID string) *EngineError {
	return NewEngine(TagServiceMissingStorage, details,
		fmt.Sprintf("Error, service `%s` has no storage declared.", serviceID))
}

func NewCannotParseString(details EventDetails, value string, cause error) *EngineError {
	return WrapEngine(TagCannotParseString, details,
		fmt.Sprintf("Error while trying to parse `%s`.", value), cause)
}

func NewInvalidEngineAPIInputCannotBeDeserialized(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagInvalidEngineApiInputCannotBeDeserialized, details,
		"Input is invalid and cannot be deserialized.", cause)
}

func NewTaskCancelled(details EventDetails) *EngineError {
	return NewEngine(TagTaskCancelled, details, "Task cancelled.")
}

func NewCannotPauseManagedDatabase(details EventDetails) *EngineError {
	return NewEngine(TagCannotPauseManagedDatabase, details, "Cannot pause a managed database.")
}

func NewClientServiceFailedToStart(details EventDetails, serviceID, serviceName string, cause error) *EngineError {
	return WrapEngine(TagClientServiceFailedToStart, details,
		fmt.Sprintf("Client service `%s` (id `%s`) failed to start.", serviceName, serviceID), cause)
}

func NewRouterFailedToDeploy(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagRouterFailedToDeploy, details, "Router failed to deploy.", cause)
}

func NewUnknownError(details EventDetails, cause error) *EngineError {
	return WrapEngine(TagUnknown, details, "Unknown error.", cause)
}

// DatabaseErrorKind refines TagDatabaseError.
type DatabaseErrorKind int

const (
	DatabaseErrInvalidConfig DatabaseErrorKind = iota
	DatabaseErrUnsupportedManagedMode
	DatabaseErrNotFound
	DatabaseErrUnknownVersion
	DatabaseErrUnsupportedVersion
	DatabaseErrInvalidInstance
	DatabaseErrInstanceTypeMismatchCloudProvider
	DatabaseErrInstanceTypeMismatchDatabaseType
	DatabaseErrUnknown
)

// DatabaseError is a construction or validation failure of a database definition.
type DatabaseError struct {
	Kind         DatabaseErrorKind
	DatabaseType string
	Message      string
}

func (e *DatabaseError) Error() string {
	switch e.Kind {
	case DatabaseErrInvalidConfig:
		return fmt.Sprintf("Database configuration is invalid: %s", e.Message)
	case DatabaseErrUnsupportedManagedMode:
		return fmt.Sprintf("Managed mode is not supported for database %s", e.DatabaseType)
	case DatabaseErrNotFound:
		return fmt.Sprintf("Database %s not found: %s", e.DatabaseType, e.Message)
	case DatabaseErrUnknownVersion:
		return fmt.Sprintf("Unknown %s version: %s", e.DatabaseType, e.Message)
	case DatabaseErrUnsupportedVersion:
		return fmt.Sprintf("Unsupported %s version: %s", e.DatabaseType, e.Message)
	case DatabaseErrInvalidInstance:
		return fmt.Sprintf("Database instance type is invalid: %s", e.Message)
	case DatabaseErrInstanceTypeMismatchCloudProvider:
		return fmt.Sprintf("Database instance type doesn't match cloud provider: %s", e.Message)
	case DatabaseErrInstanceTypeMismatchDatabaseType:
		return fmt.Sprintf("Database instance type doesn't match database type %s: %s", e.DatabaseType, e.Message)
	default:
		return fmt.Sprintf("Unknown database error: %s", e.Message)
	}
}

// NewDatabaseError wraps a DatabaseError into an engine error.
func NewDatabaseError(details EventDetails, kind DatabaseErrorKind, databaseType, message string) *EngineError {
	de := &DatabaseError{Kind: kind, DatabaseType: databaseType, Message: message}
	return WrapEngine(TagDatabaseError, details, de.Error(), NewCommandErrorFromCause(de.Error(), de))
}

// DatabaseErrorKindOf extracts the DatabaseError kind from err.
func DatabaseErrorKindOf(err error) (DatabaseErrorKind, bool) {
	var de *DatabaseError
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
