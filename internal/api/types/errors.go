package types

import (
	"errors"

	appErr "github.com/iac-studio/converge/pkg/errors"
)

const unknownTag = "UNKNOWN"

// wireTags is the boundary name of every internal tag.
var wireTags = map[appErr.Tag]string{
	appErr.TagUnknown:                                            "UNKNOWN",
	appErr.TagInvalidEngineApiInputCannotBeDeserialized:          "INVALID_ENGINE_API_INPUT_CANNOT_BE_DESERIALIZED",
	appErr.TagMissingRequiredEnvVariable:                         "MISSING_REQUIRED_ENV_VARIABLE",
	appErr.TagClusterHasNoWorkerNodes:                            "CLUSTER_HAS_NO_WORKER_NODES",
	appErr.TagClusterWorkerNodeNotFound:                          "CLUSTER_WORKER_NODE_NOT_FOUND",
	appErr.TagCannotGetWorkspaceDirectory:                        "CANNOT_GET_WORKSPACE_DIRECTORY",
	appErr.TagUnsupportedInstanceType:                            "UNSUPPORTED_INSTANCE_TYPE",
	appErr.TagCannotRetrieveClusterConfigFile:                    "CANNOT_RETRIEVE_CLUSTER_CONFIG_FILE",
	appErr.TagCannotCreateFile:                                   "CANNOT_CREATE_FILE",
	appErr.TagCannotGetClusterNodes:                              "CANNOT_GET_CLUSTER_NODES",
	appErr.TagNotEnoughNodesAvailableToDeployEnvironment:         "NOT_ENOUGH_NODES_AVAILABLE_TO_DEPLOY_ENVIRONMENT",
	appErr.TagNotEnoughResourcesToDeployEnvironment:              "NOT_ENOUGH_RESOURCES_TO_DEPLOY_ENVIRONMENT",
	appErr.TagCannotUninstallHelmChart:                           "CANNOT_UNINSTALL_HELM_CHART",
	appErr.TagCannotExecuteK8sVersion:                            "CANNOT_EXECUTE_K8S_VERSION",
	appErr.TagCannotDetermineK8sMasterVersion:                    "CANNOT_DETERMINE_K8S_MASTER_VERSION",
	appErr.TagCannotDetermineK8sRequestedUpgradeVersion:          "CANNOT_DETERMINE_K8S_REQUESTED_UPGRADE_VERSION",
	appErr.TagCannotDetermineK8sKubeletWorkerVersion:             "CANNOT_DETERMINE_K8S_KUBELET_WORKER_VERSION",
	appErr.TagCannotDetermineK8sKubeProxyVersion:                 "CANNOT_DETERMINE_K8S_KUBE_PROXY_VERSION",
	appErr.TagCannotExecuteK8sApiCustomMetrics:                   "CANNOT_EXECUTE_K8S_API_CUSTOM_METRICS",
	appErr.TagK8sPodDisruptionBudgetInInvalidState:               "K8S_POD_DISRUPTION_BUDGET_IN_INVALID_STATE",
	appErr.TagK8sPodsDisruptionBudgetCannotBeRetrieved:           "K8S_PODS_DISRUPTION_BUDGET_CANNOT_BE_RETRIEVED",
	appErr.TagK8sCannotDeletePod:                                 "K8S_CANNOT_DELETE_POD",
	appErr.TagK8sCannotDeletePvc:                                 "K8S_CANNOT_DELETE_PVC",
	appErr.TagK8sCannotGetCrashLoopingPods:                       "K8S_CANNOT_GET_CRASH_LOOPING_PODS",
	appErr.TagK8sCannotDeleteCompletedJobs:                       "K8S_CANNOT_DELETE_COMPLETED_JOBS",
	appErr.TagK8sCannotGetPods:                                   "K8S_CANNOT_GET_PODS",
	appErr.TagK8sUpgradeDeployedVsRequestedVersionsInconsistency: "K8S_UPGRADE_DEPLOYED_VS_REQUESTED_VERSIONS_INCONSISTENCY",
	appErr.TagK8sScaleReplicas:                                   "K8S_SCALE_REPLICAS",
	appErr.TagK8sLoadBalancerConfigurationIssue:                  "K8S_LOAD_BALANCER_CONFIGURATION_ISSUE",
	appErr.TagK8sServiceError:                                    "K8S_SERVICE_ERROR",
	appErr.TagK8sGetLogs:                                         "K8S_GET_LOGS",
	appErr.TagK8sGetEvents:                                       "K8S_GET_EVENTS",
	appErr.TagK8sDescribe:                                        "K8S_DESCRIBE",
	appErr.TagK8sHistory:                                         "K8S_HISTORY",
	appErr.TagK8sCannotCreateNamespace:                           "K8S_CANNOT_CREATE_NAMESPACE",
	appErr.TagK8sPodIsNotReady:                                   "K8S_POD_IS_NOT_READY",
	appErr.TagK8sNodeIsNotReadyWithTheRequestedVersion:           "K8S_NODE_IS_NOT_READY_WITH_THE_REQUESTED_VERSION",
	appErr.TagK8sNodeIsNotReady:                                  "K8S_NODE_IS_NOT_READY",
	appErr.TagK8sErrorCopySecret:                                 "K8S_ERROR_COPY_SECRET",
	appErr.TagK8sCannotGetPVCs:                                   "K8S_CANNOT_GET_PVCS",
	appErr.TagK8sCannotBoundPVC:                                  "K8S_CANNOT_BOUND_PVC",
	appErr.TagK8sCannotGetServices:                               "K8S_CANNOT_GET_SERVICES",
	appErr.TagK8sCannotOrphanDelete:                              "K8S_CANNOT_ORPHAN_DELETE",
	appErr.TagK8sCannotPVCEdit:                                   "K8S_CANNOT_PVC_EDIT",
	appErr.TagK8sCannotGetStatefulset:                            "K8S_CANNOT_GET_STATEFULSET",
	appErr.TagK8sCannotRolloutRestartStatefulset:                 "K8S_CANNOT_ROLLOUT_RESTART_STATEFULSET",
	appErr.TagK8sCannotApplyFromFile:                             "K8S_CANNOT_APPLY_FROM_FILE",
	appErr.TagK8sGetDeploymentError:                              "K8S_GET_DEPLOYMENT_ERROR",
	appErr.TagK8sDeleteDeploymentError:                           "K8S_DELETE_DEPLOYMENT_ERROR",
	appErr.TagK8sGetStatefulsetError:                             "K8S_GET_STATEFULSET_ERROR",
	appErr.TagK8sDeleteStatefulsetError:                          "K8S_DELETE_STATEFULSET_ERROR",
	appErr.TagK8sAddonVersionNotSupported:                        "K8S_ADDON_VERSION_NOT_SUPPORTED",
	appErr.TagUnsupportedRegion:                                  "UNSUPPORTED_REGION",
	appErr.TagUnsupportedZone:                                    "UNSUPPORTED_ZONE",
	appErr.TagCannotFindRequiredBinary:                           "CANNOT_FIND_REQUIRED_BINARY",
	appErr.TagSubnetsCountShouldBeEven:                           "SUBNETS_COUNT_SHOULD_BE_EVEN",
	appErr.TagCannotGetOrCreateIamRole:                           "CANNOT_GET_OR_CREATE_IAM_ROLE",
	appErr.TagCannotCopyFilesFromDirectoryToDirectory:            "CANNOT_COPY_FILES_FROM_DIRECTORY_TO_DIRECTORY",
	appErr.TagCannotPauseClusterTasksAreRunning:                  "CANNOT_PAUSE_CLUSTER_TASKS_ARE_RUNNING",
	appErr.TagCannotPauseManagedDatabase:                         "CANNOT_PAUSE_MANAGED_DATABASE",
	appErr.TagTerraformCannotRemoveEntryOut:                      "TERRAFORM_CANNOT_REMOVE_ENTRY_OUT",
	appErr.TagTerraformErrorWhileExecutingPipeline:               "TERRAFORM_ERROR_WHILE_EXECUTING_PIPELINE",
	appErr.TagTerraformErrorWhileExecutingDestroyPipeline:        "TERRAFORM_ERROR_WHILE_EXECUTING_DESTROY_PIPELINE",
	appErr.TagTerraformCannotImportResource:                      "TERRAFORM_CANNOT_IMPORT_RESOURCE",
	appErr.TagHelmChartsSetupError:                               "HELM_CHARTS_SETUP_ERROR",
	appErr.TagHelmChartsDeployError:                              "HELM_CHARTS_DEPLOY_ERROR",
	appErr.TagHelmChartsUpgradeError:                             "HELM_CHARTS_UPGRADE_ERROR",
	appErr.TagHelmChartUninstallError:                            "HELM_CHART_UNINSTALL_ERROR",
	appErr.TagHelmDeployTimeout:                                  "HELM_DEPLOY_TIMEOUT",
	appErr.TagHelmHistoryError:                                   "HELM_HISTORY_ERROR",
	appErr.TagCannotGetAnyAvailableVPC:                           "CANNOT_GET_ANY_AVAILABLE_VPC",
	appErr.TagUnsupportedVersion:                                 "UNSUPPORTED_VERSION",
	appErr.TagUnsupportedClusterKind:                             "UNSUPPORTED_CLUSTER_KIND",
	appErr.TagNotAllowedInstanceType:                             "NOT_ALLOWED_INSTANCE_TYPE",
	appErr.TagCannotGetSupportedVersions:                         "CANNOT_GET_SUPPORTED_VERSIONS",
	appErr.TagCannotGetCluster:                                   "CANNOT_GET_CLUSTER",
	appErr.TagNoClusterFound:                                     "NO_CLUSTER_FOUND",
	appErr.TagOnlyOneClusterExpected:                             "ONLY_ONE_CLUSTER_EXPECTED",
	appErr.TagCloudProviderApiMissingInfo:                        "CLOUD_PROVIDER_API_MISSING_INFO",
	appErr.TagK8sValidateRequiredCPUandBurstableError:            "K8S_VALIDATE_REQUIRED_CPU_AND_BURSTABLE_ERROR",
	appErr.TagClientServiceFailedToStart:                         "CLIENT_SERVICE_FAILED_TO_START",
	appErr.TagClientServiceFailedToDeployBeforeStart:             "CLIENT_SERVICE_FAILED_TO_DEPLOY_BEFORE_START",
	appErr.TagDatabaseFailedToStartAfterSeveralRetries:           "DATABASE_FAILED_TO_START_AFTER_SEVERAL_RETRIES",
	appErr.TagRouterFailedToDeploy:                               "ROUTER_FAILED_TO_DEPLOY",
	appErr.TagCloudProviderClientInvalidCredentials:              "CLOUD_PROVIDER_CLIENT_INVALID_CREDENTIALS",
	appErr.TagVersionNumberParsingError:                          "VERSION_NUMBER_PARSING_ERROR",
	appErr.TagNotImplementedError:                                "NOT_IMPLEMENTED_ERROR",
	appErr.TagTaskCancelled:                                      "TASK_CANCELLED",
	appErr.TagBuilderError:                                       "BUILDER_ERROR",
	appErr.TagBuilderDockerCannotFindAnyDockerfile:               "BUILDER_DOCKER_CANNOT_FIND_ANY_DOCKERFILE",
	appErr.TagBuilderDockerCannotReadDockerfile:                  "BUILDER_DOCKER_CANNOT_READ_DOCKERFILE",
	appErr.TagBuilderDockerCannotExtractEnvVarsFromDockerfile:    "BUILDER_DOCKER_CANNOT_EXTRACT_ENV_VARS_FROM_DOCKERFILE",
	appErr.TagBuilderDockerCannotBuildContainerImage:             "BUILDER_DOCKER_CANNOT_BUILD_CONTAINER_IMAGE",
	appErr.TagBuilderBuildpackInvalidLanguageFormat:              "BUILDER_BUILDPACK_INVALID_LANGUAGE_FORMAT",
	appErr.TagBuilderBuildpackCannotBuildContainerImage:          "BUILDER_BUILDPACK_CANNOT_BUILD_CONTAINER_IMAGE",
	appErr.TagBuilderGetBuildError:                               "BUILDER_GET_BUILD_ERROR",
	appErr.TagBuilderCloningRepositoryError:                      "BUILDER_CLONING_REPOSITORY_ERROR",
	appErr.TagDockerError:                                        "DOCKER_ERROR",
	appErr.TagDockerPushImageError:                               "DOCKER_PUSH_IMAGE_ERROR",
	appErr.TagDockerPullImageError:                               "DOCKER_PULL_IMAGE_ERROR",
	appErr.TagBuilderDockerCannotListImages:                      "BUILDER_DOCKER_CANNOT_LIST_IMAGES",
	appErr.TagContainerRegistryCannotCreateRepository:            "CONTAINER_REGISTRY_CANNOT_CREATE_REPOSITORY",
	appErr.TagContainerRegistryCannotSetRepositoryLifecycleError: "CONTAINER_REGISTRY_CANNOT_SET_REPOSITORY_LIFECYCLE_ERROR",
	appErr.TagContainerRegistryCannotGetCredentials:              "CONTAINER_REGISTRY_CANNOT_GET_CREDENTIALS",
	appErr.TagContainerRegistryImageDoesntExist:                  "CONTAINER_REGISTRY_IMAGE_DOESNT_EXIST",
	appErr.TagContainerRegistryImageUnreachableAfterPush:         "CONTAINER_REGISTRY_IMAGE_UNREACHABLE_AFTER_PUSH",
	appErr.TagContainerRegistryRepositoryDoesntExistInRegistry:   "CONTAINER_REGISTRY_REPOSITORY_DOESNT_EXIST_IN_REGISTRY",
	appErr.TagContainerRegistryCannotDeleteRepository:            "CONTAINER_REGISTRY_CANNOT_DELETE_REPOSITORY",
	appErr.TagContainerRegistryCannotDeleteRegistry:              "CONTAINER_REGISTRY_CANNOT_DELETE_REGISTRY",
	appErr.TagContainerRegistryCannotDeleteImage:                 "CONTAINER_REGISTRY_CANNOT_DELETE_IMAGE",
	appErr.TagContainerRegistryInvalidInformation:                "CONTAINER_REGISTRY_INVALID_INFORMATION",
	appErr.TagContainerRegistryCannotCreateRegistry:              "CONTAINER_REGISTRY_CANNOT_CREATE_REGISTRY",
	appErr.TagContainerRegistryRegistryDoesntExist:               "CONTAINER_REGISTRY_REGISTRY_DOESNT_EXIST",
	appErr.TagContainerRegistryInvalidCredentials:                "CONTAINER_REGISTRY_INVALID_CREDENTIALS",
	appErr.TagContainerRegistryCannotLinkRegistryToCluster:       "CONTAINER_REGISTRY_CANNOT_LINK_REGISTRY_TO_CLUSTER",
	appErr.TagContainerRegistryCannotSetRepositoryTags:           "CONTAINER_REGISTRY_CANNOT_SET_REPOSITORY_TAGS",
	appErr.TagContainerRegistryUnknownError:                      "CONTAINER_REGISTRY_UNKNOWN_ERROR",
	appErr.TagContainerRegistryRepositoryNameInvalid:             "CONTAINER_REGISTRY_REPOSITORY_NAME_INVALID",
	appErr.TagObjectStorageInvalidBucketName:                     "OBJECT_STORAGE_INVALID_BUCKET_NAME",
	appErr.TagObjectStorageCannotEmptyBucket:                     "OBJECT_STORAGE_CANNOT_EMPTY_BUCKET",
	appErr.TagObjectStorageCannotTagBucket:                       "OBJECT_STORAGE_CANNOT_TAG_BUCKET",
	appErr.TagObjectStorageCannotActivateBucketVersioning:        "OBJECT_STORAGE_CANNOT_ACTIVATE_BUCKET_VERSIONING",
	appErr.TagObjectStorageCannotDeleteBucket:                    "OBJECT_STORAGE_CANNOT_DELETE_BUCKET",
	appErr.TagObjectStorageQuotaExceeded:                         "OBJECT_STORAGE_QUOTA_EXCEEDED",
	appErr.TagObjectStorageCannotGetObjectFile:                   "OBJECT_STORAGE_CANNOT_GET_OBJECT_FILE",
	appErr.TagObjectStorageCannotCreateBucket:                    "OBJECT_STORAGE_CANNOT_CREATE_BUCKET",
	appErr.TagObjectStorageCannotPutFileIntoBucket:               "OBJECT_STORAGE_CANNOT_PUT_FILE_INTO_BUCKET",
	appErr.TagObjectStorageCannotDeleteFileIntoBucket:            "OBJECT_STORAGE_CANNOT_DELETE_FILE_INTO_BUCKET",
	appErr.TagKubeconfigFileDoNotPermitToConnectToK8sCluster:     "KUBECONFIG_FILE_DO_NOT_PERMIT_TO_CONNECT_TO_K8S_CLUSTER",
	appErr.TagKubeconfigSecurityCheckError:                       "KUBECONFIG_SECURITY_CHECK_ERROR",
	appErr.TagDeleteLocalKubeconfigFileError:                     "DELETE_LOCAL_KUBECONFIG_FILE_ERROR",
	appErr.TagVaultConnectionError:                               "VAULT_CONNECTION_ERROR",
	appErr.TagVaultSecretCouldNotBeRetrieved:                     "VAULT_SECRET_COULD_NOT_BE_RETRIEVED",
	appErr.TagVaultSecretCouldNotBeCreatedOrUpdated:              "VAULT_SECRET_COULD_NOT_BE_CREATED_OR_UPDATED",
	appErr.TagVaultSecretCouldNotBeDeleted:                       "VAULT_SECRET_COULD_NOT_BE_DELETED",
	appErr.TagJsonDeserializationError:                           "JSON_DESERIALIZATION_ERROR",
	appErr.TagClusterSecretsManipulationError:                    "CLUSTER_SECRETS_MANIPULATION_ERROR",
	appErr.TagCannotGetNodeGroupList:                             "CANNOT_GET_NODE_GROUP_LIST",
	appErr.TagCannotGetNodeGroupInfo:                             "CANNOT_GET_NODE_GROUP_INFO",
	appErr.TagCannotConnectK8sCluster:                            "CANNOT_CONNECT_K8S_CLUSTER",
	appErr.TagNumberOfRequestedMaxNodesIsBelowThanCurrentUsage:   "NUMBER_OF_REQUESTED_MAX_NODES_IS_BELOW_THAN_CURRENT_USAGE",
	appErr.TagDnsProviderInformationError:                        "DNS_PROVIDER_INFORMATION_ERROR",
	appErr.TagCloudProviderInformationError:                      "CLOUD_PROVIDER_INFORMATION_ERROR",
	appErr.TagDnsProviderInvalidCredentials:                      "DNS_PROVIDER_INVALID_CREDENTIALS",
	appErr.TagDnsProviderInvalidApiUrl:                           "DNS_PROVIDER_INVALID_API_URL",
	appErr.TagK8sCannotReachToApi:                                "K8S_CANNOT_REACH_TO_API",
	appErr.TagTerraformUnknownError:                              "TERRAFORM_UNKNOWN_ERROR",
	appErr.TagTerraformConfigFileInvalidContent:                  "TERRAFORM_CONFIG_FILE_INVALID_CONTENT",
	appErr.TagTerraformCannotDeleteLockFile:                      "TERRAFORM_CANNOT_DELETE_LOCK_FILE",
	appErr.TagTerraformInitError:                                 "TERRAFORM_INIT_ERROR",
	appErr.TagTerraformValidateError:                             "TERRAFORM_VALIDATE_ERROR",
	appErr.TagTerraformPlanError:                                 "TERRAFORM_PLAN_ERROR",
	appErr.TagTerraformApplyError:                                "TERRAFORM_APPLY_ERROR",
	appErr.TagTerraformStatelistError:                            "TERRAFORM_STATELIST_ERROR",
	appErr.TagTerraformDestroyError:                              "TERRAFORM_DESTROY_ERROR",
	appErr.TagTerraformCloudProviderQuotasReached:                "TERRAFORM_CLOUD_PROVIDER_QUOTAS_REACHED",
	appErr.TagTerraformCloudProviderActivationRequired:           "TERRAFORM_CLOUD_PROVIDER_ACTIVATION_REQUIRED",
	appErr.TagTerraformInvalidCredentials:                        "TERRAFORM_INVALID_CREDENTIALS",
	appErr.TagTerraformServiceNotActivatedOptInRequired:          "TERRAFORM_SERVICE_NOT_ACTIVATED_OPT_IN_REQUIRED",
	appErr.TagTerraformNotEnoughPermissions:                      "TERRAFORM_NOT_ENOUGH_PERMISSIONS",
	appErr.TagTerraformWaitingTimeoutResource:                    "TERRAFORM_WAITING_TIMEOUT_RESOURCE",
	appErr.TagTerraformAlreadyExistingResource:                   "TERRAFORM_ALREADY_EXISTING_RESOURCE",
	appErr.TagTerraformWrongState:                                "TERRAFORM_WRONG_STATE",
	appErr.TagTerraformResourceDependencyViolation:               "TERRAFORM_RESOURCE_DEPENDENCY_VIOLATION",
	appErr.TagTerraformContextUnsupportedParameterValue:          "TERRAFORM_CONTEXT_UNSUPPORTED_PARAMETER_VALUE",
	appErr.TagTerraformConfigMismatch:                            "TERRAFORM_CONFIG_MISMATCH",
	appErr.TagTerraformInstanceTypeDoesntExist:                   "TERRAFORM_INSTANCE_TYPE_DOESNT_EXIST",
	appErr.TagTerraformMultipleInterruptsReceived:                "TERRAFORM_MULTIPLE_INTERRUPTS_RECEIVED",
	appErr.TagTerraformAccountBlockedByProvider:                  "TERRAFORM_ACCOUNT_BLOCKED_BY_PROVIDER",
	appErr.TagTerraformInstanceVolumeCannotBeReduced:             "TERRAFORM_INSTANCE_VOLUME_CANNOT_BE_REDUCED",
	appErr.TagTerraformInvalidCIDRBlock:                          "TERRAFORM_INVALID_CIDR_BLOCK",
	appErr.TagTerraformStateLocked:                               "TERRAFORM_STATE_LOCKED",
	appErr.TagTerraformClusterUnsupportedVersionUpdate:           "TERRAFORM_CLUSTER_UNSUPPORTED_VERSION_UPDATE",
	appErr.TagTerraformS3BucketCreationErrorAlreadyOwnedByYou:    "TERRAFORM_S3_BUCKET_CREATION_ERROR_ALREADY_OWNED_BY_YOU",
	appErr.TagCloudProviderGetLoadBalancer:                       "CLOUD_PROVIDER_GET_LOAD_BALANCER",
	appErr.TagCloudProviderGetLoadBalancerTags:                   "CLOUD_PROVIDER_GET_LOAD_BALANCER_TAGS",
	appErr.TagCloudProviderDeleteLoadBalancer:                    "CLOUD_PROVIDER_DELETE_LOAD_BALANCER",
	appErr.TagInvalidEnginePayload:                               "INVALID_ENGINE_PAYLOAD",
	appErr.TagJobFailure:                                         "JOB_FAILURE",
	appErr.TagDoNotRespectCloudProviderBestPractices:             "DO_NOT_RESPECT_CLOUD_PROVIDER_BEST_PRACTICES",
	appErr.TagCannotListClusters:                                 "CANNOT_LIST_CLUSTERS",
	appErr.TagCannotParseString:                                  "CANNOT_PARSE_STRING",
	appErr.TagCannotDeleteNodeGroup:                              "CANNOT_DELETE_NODE_GROUP",
	appErr.TagCannotRestartService:                               "CANNOT_RESTART_SERVICE",
	appErr.TagAwsSdkGetClient:                                    "AWS_SDK_GET_CLIENT",
	appErr.TagAwsSdkListRdsInstances:                             "AWS_SDK_LIST_RDS_INSTANCES",
	appErr.TagAwsSdkListElasticacheClusters:                      "AWS_SDK_LIST_ELASTICACHE_CLUSTERS",
	appErr.TagAwsSdkListDocDbClusters:                            "AWS_SDK_LIST_DOC_DB_CLUSTERS",
	appErr.TagAwsCloudwatchRetentionConfigurationError:           "AWS_CLOUDWATCH_RETENTION_CONFIGURATION_ERROR",
	appErr.TagAwsSdkListEC2Volumes:                               "AWS_SDK_LIST_EC2_VOLUMES",
	appErr.TagAwsSdkDetachEC2Volumes:                             "AWS_SDK_DETACH_EC2_VOLUMES",
	appErr.TagAwsSdkListEC2Instances:                             "AWS_SDK_LIST_EC2_INSTANCES",
	appErr.TagBase64DecodeIssue:                                  "BASE64_DECODE_ISSUE",
	appErr.TagCannotReadFile:                                     "CANNOT_READ_FILE",
	appErr.TagInvalidJobOutputCannotBeSerialized:                 "INVALID_JOB_OUTPUT_CANNOT_BE_SERIALIZED",
	appErr.TagDatabaseError:                                      "DATABASE_ERROR",
	appErr.TagServiceMissingStorage:                              "SERVICE_MISSING_STORAGE",
	appErr.TagK8sCannotDeleteSecret:                              "K8S_CANNOT_DELETE_SECRET",
}

// WireTag is the boundary name of tag; tags without a name map to UNKNOWN.
func WireTag(tag appErr.Tag) string {
	if s, ok := wireTags[tag]; ok {
		return s
	}
	return unknownTag
}

// UnderlyingError is the sanitized command failure behind an engine error.
type UnderlyingError struct {
	Message     string `json:"message"`
	FullDetails string `json:"full_details,omitempty"`
}

// EngineErrorResponse is the transport form of an engine error. Raw command output never crosses it.
type EngineErrorResponse struct {
	Tag             string           `json:"tag"`
	UserLogMessage  string           `json:"user_log_message"`
	UnderlyingError *UnderlyingError `json:"underlying_error,omitempty"`
	Link            string           `json:"link,omitempty"`
	HintMessage     string           `json:"hint_message,omitempty"`
}

// FromEngineError translates any error. Errors that are not engine errors become UNKNOWN
// with the generic message; their text only travels as sanitized underlying details.
func FromEngineError(err error) *EngineErrorResponse {
	if err == nil {
		return nil
	}
	ee, ok := appErr.AsEngineError(err)
	if !ok {
		ee = appErr.NewUnknownError(appErr.EventDetails{}, err).Flatten()
	}

	resp := &EngineErrorResponse{
		Tag:            WireTag(ee.Tag),
		UserLogMessage: ee.UserLogMessage,
		HintMessage:    ee.Hint,
	}
	if ee.Link != nil {
		resp.Link = ee.Link.String()
	}
	if u := ee.UnderlyingOrEmpty().Sanitized(); u != nil && (u.MessageSafe != "" || u.FullDetails != "") {
		resp.UnderlyingError = &UnderlyingError{Message: u.MessageSafe, FullDetails: u.FullDetails}
	}
	return resp
}

func FromAppError(err error) *APIError {
	if err == nil {
		return nil
	}
	var e *appErr.AppError
	if errors.As(err, &e) {
		return &APIError{Code: string(e.Code), Message: e.Message}
	}
	return &APIError{Code: string(appErr.CodeUnknown), Message: err.Error()}
}
