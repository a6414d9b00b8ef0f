package errors

import "strconv"

// Tag classifies an EngineError. The set is closed: new failures get a new Tag.
type Tag int

const (
	TagUnknown Tag = iota
	TagInvalidEngineApiInputCannotBeDeserialized
	TagMissingRequiredEnvVariable
	TagClusterHasNoWorkerNodes
	TagClusterWorkerNodeNotFound
	TagCannotGetWorkspaceDirectory
	TagUnsupportedInstanceType
	TagCannotRetrieveClusterConfigFile
	TagCannotCreateFile
	TagCannotGetClusterNodes
	TagNotEnoughNodesAvailableToDeployEnvironment
	TagNotEnoughResourcesToDeployEnvironment
	TagCannotUninstallHelmChart
	TagCannotExecuteK8sVersion
	TagCannotDetermineK8sMasterVersion
	TagCannotDetermineK8sRequestedUpgradeVersion
	TagCannotDetermineK8sKubeletWorkerVersion
	TagCannotDetermineK8sKubeProxyVersion
	TagCannotExecuteK8sApiCustomMetrics
	TagK8sPodDisruptionBudgetInInvalidState
	TagK8sPodsDisruptionBudgetCannotBeRetrieved
	TagK8sCannotDeletePod
	TagK8sCannotDeletePvc
	TagK8sCannotGetCrashLoopingPods
	TagK8sCannotDeleteCompletedJobs
	TagK8sCannotGetPods
	TagK8sUpgradeDeployedVsRequestedVersionsInconsistency
	TagK8sScaleReplicas
	TagK8sLoadBalancerConfigurationIssue
	TagK8sServiceError
	TagK8sGetLogs
	TagK8sGetEvents
	TagK8sDescribe
	TagK8sHistory
	TagK8sCannotCreateNamespace
	TagK8sPodIsNotReady
	TagK8sNodeIsNotReadyWithTheRequestedVersion
	TagK8sNodeIsNotReady
	TagK8sErrorCopySecret
	TagK8sCannotGetPVCs
	TagK8sCannotBoundPVC
	TagK8sCannotGetServices
	TagK8sCannotOrphanDelete
	TagK8sCannotPVCEdit
	TagK8sCannotGetStatefulset
	TagK8sCannotRolloutRestartStatefulset
	TagK8sCannotApplyFromFile
	TagK8sGetDeploymentError
	TagK8sDeleteDeploymentError
	TagK8sGetStatefulsetError
	TagK8sDeleteStatefulsetError
	TagK8sAddonVersionNotSupported
	TagUnsupportedRegion
	TagUnsupportedZone
	TagCannotFindRequiredBinary
	TagSubnetsCountShouldBeEven
	TagCannotGetOrCreateIamRole
	TagCannotCopyFilesFromDirectoryToDirectory
	TagCannotPauseClusterTasksAreRunning
	TagCannotPauseManagedDatabase
	TagTerraformCannotRemoveEntryOut
	TagTerraformErrorWhileExecutingPipeline
	TagTerraformErrorWhileExecutingDestroyPipeline
	TagTerraformCannotImportResource
	TagHelmChartsSetupError
	TagHelmChartsDeployError
	TagHelmChartsUpgradeError
	TagHelmChartUninstallError
	TagHelmDeployTimeout
	TagHelmHistoryError
	TagCannotGetAnyAvailableVPC
	TagUnsupportedVersion
	TagUnsupportedClusterKind
	TagNotAllowedInstanceType
	TagCannotGetSupportedVersions
	TagCannotGetCluster
	TagNoClusterFound
	TagOnlyOneClusterExpected
	TagCloudProviderApiMissingInfo
	TagK8sValidateRequiredCPUandBurstableError
	TagClientServiceFailedToStart
	TagClientServiceFailedToDeployBeforeStart
	TagDatabaseFailedToStartAfterSeveralRetries
	TagRouterFailedToDeploy
	TagCloudProviderClientInvalidCredentials
	TagVersionNumberParsingError
	TagNotImplementedError
	TagTaskCancelled
	TagBuilderError
	TagBuilderDockerCannotFindAnyDockerfile
	TagBuilderDockerCannotReadDockerfile
	TagBuilderDockerCannotExtractEnvVarsFromDockerfile
	TagBuilderDockerCannotBuildContainerImage
	TagBuilderBuildpackInvalidLanguageFormat
	TagBuilderBuildpackCannotBuildContainerImage
	TagBuilderGetBuildError
	TagBuilderCloningRepositoryError
	TagDockerError
	TagDockerPushImageError
	TagDockerPullImageError
	TagBuilderDockerCannotListImages
	TagContainerRegistryCannotCreateRepository
	TagContainerRegistryCannotSetRepositoryLifecycleError
	TagContainerRegistryCannotGetCredentials
	TagContainerRegistryImageDoesntExist
	TagContainerRegistryImageUnreachableAfterPush
	TagContainerRegistryRepositoryDoesntExistInRegistry
	TagContainerRegistryCannotDeleteRepository
	TagContainerRegistryCannotDeleteRegistry
	TagContainerRegistryCannotDeleteImage
	TagContainerRegistryInvalidInformation
	TagContainerRegistryCannotCreateRegistry
	TagContainerRegistryRegistryDoesntExist
	TagContainerRegistryInvalidCredentials
	TagContainerRegistryCannotLinkRegistryToCluster
	TagContainerRegistryCannotSetRepositoryTags
	TagContainerRegistryUnknownError
	TagContainerRegistryRepositoryNameInvalid
	TagObjectStorageInvalidBucketName
	TagObjectStorageCannotEmptyBucket
	TagObjectStorageCannotTagBucket
	TagObjectStorageCannotActivateBucketVersioning
	TagObjectStorageCannotDeleteBucket
	TagObjectStorageQuotaExceeded
	TagObjectStorageCannotGetObjectFile
	TagObjectStorageCannotCreateBucket
	TagObjectStorageCannotPutFileIntoBucket
	TagObjectStorageCannotDeleteFileIntoBucket
	TagKubeconfigFileDoNotPermitToConnectToK8sCluster
	TagKubeconfigSecurityCheckError
	TagDeleteLocalKubeconfigFileError
	TagVaultConnectionError
	TagVaultSecretCouldNotBeRetrieved
	TagVaultSecretCouldNotBeCreatedOrUpdated
	TagVaultSecretCouldNotBeDeleted
	TagJsonDeserializationError
	TagClusterSecretsManipulationError
	TagCannotGetNodeGroupList
	TagCannotGetNodeGroupInfo
	TagCannotConnectK8sCluster
	TagNumberOfRequestedMaxNodesIsBelowThanCurrentUsage
	TagDnsProviderInformationError
	TagCloudProviderInformationError
	TagDnsProviderInvalidCredentials
	TagDnsProviderInvalidApiUrl
	TagK8sCannotReachToApi
	TagTerraformUnknownError
	TagTerraformConfigFileInvalidContent
	TagTerraformCannotDeleteLockFile
	TagTerraformInitError
	TagTerraformValidateError
	TagTerraformPlanError
	TagTerraformApplyError
	TagTerraformStatelistError
	TagTerraformDestroyError
	TagTerraformCloudProviderQuotasReached
	TagTerraformCloudProviderActivationRequired
	TagTerraformInvalidCredentials
	TagTerraformServiceNotActivatedOptInRequired
	TagTerraformNotEnoughPermissions
	TagTerraformWaitingTimeoutResource
	TagTerraformAlreadyExistingResource
	TagTerraformWrongState
	TagTerraformResourceDependencyViolation
	TagTerraformContextUnsupportedParameterValue
	TagTerraformConfigMismatch
	TagTerraformInstanceTypeDoesntExist
	TagTerraformMultipleInterruptsReceived
	TagTerraformAccountBlockedByProvider
	TagTerraformInstanceVolumeCannotBeReduced
	TagTerraformInvalidCIDRBlock
	TagTerraformStateLocked
	TagTerraformClusterUnsupportedVersionUpdate
	TagTerraformS3BucketCreationErrorAlreadyOwnedByYou
	TagCloudProviderGetLoadBalancer
	TagCloudProviderGetLoadBalancerTags
	TagCloudProviderDeleteLoadBalancer
	TagInvalidEnginePayload
	TagJobFailure
	TagDoNotRespectCloudProviderBestPractices
	TagCannotListClusters
	TagCannotParseString
	TagCannotDeleteNodeGroup
	TagCannotRestartService
	TagAwsSdkGetClient
	TagAwsSdkListRdsInstances
	TagAwsSdkListElasticacheClusters
	TagAwsSdkListDocDbClusters
	TagAwsCloudwatchRetentionConfigurationError
	TagAwsSdkListEC2Volumes
	TagAwsSdkDetachEC2Volumes
	TagAwsSdkListEC2Instances
	TagBase64DecodeIssue
	TagCannotReadFile
	TagInvalidJobOutputCannotBeSerialized
	TagDatabaseError
	TagServiceMissingStorage
	TagK8sCannotDeleteSecret

	tagCount
)

var tagNames = [...]string{
	TagUnknown:                                            "Unknown",
	TagInvalidEngineApiInputCannotBeDeserialized:          "InvalidEngineApiInputCannotBeDeserialized",
	TagMissingRequiredEnvVariable:                         "MissingRequiredEnvVariable",
	TagClusterHasNoWorkerNodes:                            "ClusterHasNoWorkerNodes",
	TagClusterWorkerNodeNotFound:                          "ClusterWorkerNodeNotFound",
	TagCannotGetWorkspaceDirectory:                        "CannotGetWorkspaceDirectory",
	TagUnsupportedInstanceType:                            "UnsupportedInstanceType",
	TagCannotRetrieveClusterConfigFile:                    "CannotRetrieveClusterConfigFile",
	TagCannotCreateFile:                                   "CannotCreateFile",
	TagCannotGetClusterNodes:                              "CannotGetClusterNodes",
	TagNotEnoughNodesAvailableToDeployEnvironment:         "NotEnoughNodesAvailableToDeployEnvironment",
	TagNotEnoughResourcesToDeployEnvironment:              "NotEnoughResourcesToDeployEnvironment",
	TagCannotUninstallHelmChart:                           "CannotUninstallHelmChart",
	TagCannotExecuteK8sVersion:                            "CannotExecuteK8sVersion",
	TagCannotDetermineK8sMasterVersion:                    "CannotDetermineK8sMasterVersion",
	TagCannotDetermineK8sRequestedUpgradeVersion:          "CannotDetermineK8sRequestedUpgradeVersion",
	TagCannotDetermineK8sKubeletWorkerVersion:             "CannotDetermineK8sKubeletWorkerVersion",
	TagCannotDetermineK8sKubeProxyVersion:                 "CannotDetermineK8sKubeProxyVersion",
	TagCannotExecuteK8sApiCustomMetrics:                   "CannotExecuteK8sApiCustomMetrics",
	TagK8sPodDisruptionBudgetInInvalidState:               "K8sPodDisruptionBudgetInInvalidState",
	TagK8sPodsDisruptionBudgetCannotBeRetrieved:           "K8sPodsDisruptionBudgetCannotBeRetrieved",
	TagK8sCannotDeletePod:                                 "K8sCannotDeletePod",
	TagK8sCannotDeletePvc:                                 "K8sCannotDeletePvc",
	TagK8sCannotGetCrashLoopingPods:                       "K8sCannotGetCrashLoopingPods",
	TagK8sCannotDeleteCompletedJobs:                       "K8sCannotDeleteCompletedJobs",
	TagK8sCannotGetPods:                                   "K8sCannotGetPods",
	TagK8sUpgradeDeployedVsRequestedVersionsInconsistency: "K8sUpgradeDeployedVsRequestedVersionsInconsistency",
	TagK8sScaleReplicas:                                   "K8sScaleReplicas",
	TagK8sLoadBalancerConfigurationIssue:                  "K8sLoadBalancerConfigurationIssue",
	TagK8sServiceError:                                    "K8sServiceError",
	TagK8sGetLogs:                                         "K8sGetLogs",
	TagK8sGetEvents:                                       "K8sGetEvents",
	TagK8sDescribe:                                        "K8sDescribe",
	TagK8sHistory:                                         "K8sHistory",
	TagK8sCannotCreateNamespace:                           "K8sCannotCreateNamespace",
	TagK8sPodIsNotReady:                                   "K8sPodIsNotReady",
	TagK8sNodeIsNotReadyWithTheRequestedVersion:           "K8sNodeIsNotReadyWithTheRequestedVersion",
	TagK8sNodeIsNotReady:                                  "K8sNodeIsNotReady",
	TagK8sErrorCopySecret:                                 "K8sErrorCopySecret",
	TagK8sCannotGetPVCs:                                   "K8sCannotGetPVCs",
	TagK8sCannotBoundPVC:                                  "K8sCannotBoundPVC",
	TagK8sCannotGetServices:                               "K8sCannotGetServices",
	TagK8sCannotOrphanDelete:                              "K8sCannotOrphanDelete",
	TagK8sCannotPVCEdit:                                   "K8sCannotPVCEdit",
	TagK8sCannotGetStatefulset:                            "K8sCannotGetStatefulset",
	TagK8sCannotRolloutRestartStatefulset:                 "K8sCannotRolloutRestartStatefulset",
	TagK8sCannotApplyFromFile:                             "K8sCannotApplyFromFile",
	TagK8sGetDeploymentError:                              "K8sGetDeploymentError",
	TagK8sDeleteDeploymentError:                           "K8sDeleteDeploymentError",
	TagK8sGetStatefulsetError:                             "K8sGetStatefulsetError",
	TagK8sDeleteStatefulsetError:                          "K8sDeleteStatefulsetError",
	TagK8sAddonVersionNotSupported:                        "K8sAddonVersionNotSupported",
	TagUnsupportedRegion:                                  "UnsupportedRegion",
	TagUnsupportedZone:                                    "UnsupportedZone",
	TagCannotFindRequiredBinary:                           "CannotFindRequiredBinary",
	TagSubnetsCountShouldBeEven:                           "SubnetsCountShouldBeEven",
	TagCannotGetOrCreateIamRole:                           "CannotGetOrCreateIamRole",
	TagCannotCopyFilesFromDirectoryToDirectory:            "CannotCopyFilesFromDirectoryToDirectory",
	TagCannotPauseClusterTasksAreRunning:                  "CannotPauseClusterTasksAreRunning",
	TagCannotPauseManagedDatabase:                         "CannotPauseManagedDatabase",
	TagTerraformCannotRemoveEntryOut:                      "TerraformCannotRemoveEntryOut",
	TagTerraformErrorWhileExecutingPipeline:               "TerraformErrorWhileExecutingPipeline",
	TagTerraformErrorWhileExecutingDestroyPipeline:        "TerraformErrorWhileExecutingDestroyPipeline",
	TagTerraformCannotImportResource:                      "TerraformCannotImportResource",
	TagHelmChartsSetupError:                               "HelmChartsSetupError",
	TagHelmChartsDeployError:                              "HelmChartsDeployError",
	TagHelmChartsUpgradeError:                             "HelmChartsUpgradeError",
	TagHelmChartUninstallError:                            "HelmChartUninstallError",
	TagHelmDeployTimeout:                                  "HelmDeployTimeout",
	TagHelmHistoryError:                                   "HelmHistoryError",
	TagCannotGetAnyAvailableVPC:                           "CannotGetAnyAvailableVPC",
	TagUnsupportedVersion:                                 "UnsupportedVersion",
	TagUnsupportedClusterKind:                             "UnsupportedClusterKind",
	TagNotAllowedInstanceType:                             "NotAllowedInstanceType",
	TagCannotGetSupportedVersions:                         "CannotGetSupportedVersions",
	TagCannotGetCluster:                                   "CannotGetCluster",
	TagNoClusterFound:                                     "NoClusterFound",
	TagOnlyOneClusterExpected:                             "OnlyOneClusterExpected",
	TagCloudProviderApiMissingInfo:                        "CloudProviderApiMissingInfo",
	TagK8sValidateRequiredCPUandBurstableError:            "K8sValidateRequiredCPUandBurstableError",
	TagClientServiceFailedToStart:                         "ClientServiceFailedToStart",
	TagClientServiceFailedToDeployBeforeStart:             "ClientServiceFailedToDeployBeforeStart",
	TagDatabaseFailedToStartAfterSeveralRetries:           "DatabaseFailedToStartAfterSeveralRetries",
	TagRouterFailedToDeploy:                               "RouterFailedToDeploy",
	TagCloudProviderClientInvalidCredentials:              "CloudProviderClientInvalidCredentials",
	TagVersionNumberParsingError:                          "VersionNumberParsingError",
	TagNotImplementedError:                                "NotImplementedError",
	TagTaskCancelled:                                      "TaskCancelled",
	TagBuilderError:                                       "BuilderError",
	TagBuilderDockerCannotFindAnyDockerfile:               "BuilderDockerCannotFindAnyDockerfile",
	TagBuilderDockerCannotReadDockerfile:                  "BuilderDockerCannotReadDockerfile",
	TagBuilderDockerCannotExtractEnvVarsFromDockerfile:    "BuilderDockerCannotExtractEnvVarsFromDockerfile",
	TagBuilderDockerCannotBuildContainerImage:             "BuilderDockerCannotBuildContainerImage",
	TagBuilderBuildpackInvalidLanguageFormat:              "BuilderBuildpackInvalidLanguageFormat",
	TagBuilderBuildpackCannotBuildContainerImage:          "BuilderBuildpackCannotBuildContainerImage",
	TagBuilderGetBuildError:                               "BuilderGetBuildError",
	TagBuilderCloningRepositoryError:                      "BuilderCloningRepositoryError",
	TagDockerError:                                        "DockerError",
	TagDockerPushImageError:                               "DockerPushImageError",
	TagDockerPullImageError:                               "DockerPullImageError",
	TagBuilderDockerCannotListImages:                      "BuilderDockerCannotListImages",
	TagContainerRegistryCannotCreateRepository:            "ContainerRegistryCannotCreateRepository",
	TagContainerRegistryCannotSetRepositoryLifecycleError: "ContainerRegistryCannotSetRepositoryLifecycleError",
	TagContainerRegistryCannotGetCredentials:              "ContainerRegistryCannotGetCredentials",
	TagContainerRegistryImageDoesntExist:                  "ContainerRegistryImageDoesntExist",
	TagContainerRegistryImageUnreachableAfterPush:         "ContainerRegistryImageUnreachableAfterPush",
	TagContainerRegistryRepositoryDoesntExistInRegistry:   "ContainerRegistryRepositoryDoesntExistInRegistry",
	TagContainerRegistryCannotDeleteRepository:            "ContainerRegistryCannotDeleteRepository",
	TagContainerRegistryCannotDeleteRegistry:              "ContainerRegistryCannotDeleteRegistry",
	TagContainerRegistryCannotDeleteImage:                 "ContainerRegistryCannotDeleteImage",
	TagContainerRegistryInvalidInformation:                "ContainerRegistryInvalidInformation",
	TagContainerRegistryCannotCreateRegistry:              "ContainerRegistryCannotCreateRegistry",
	TagContainerRegistryRegistryDoesntExist:               "ContainerRegistryRegistryDoesntExist",
	TagContainerRegistryInvalidCredentials:                "ContainerRegistryInvalidCredentials",
	TagContainerRegistryCannotLinkRegistryToCluster:       "ContainerRegistryCannotLinkRegistryToCluster",
	TagContainerRegistryCannotSetRepositoryTags:           "ContainerRegistryCannotSetRepositoryTags",
	TagContainerRegistryUnknownError:                      "ContainerRegistryUnknownError",
	TagContainerRegistryRepositoryNameInvalid:             "ContainerRegistryRepositoryNameInvalid",
	TagObjectStorageInvalidBucketName:                     "ObjectStorageInvalidBucketName",
	TagObjectStorageCannotEmptyBucket:                     "ObjectStorageCannotEmptyBucket",
	TagObjectStorageCannotTagBucket:                       "ObjectStorageCannotTagBucket",
	TagObjectStorageCannotActivateBucketVersioning:        "ObjectStorageCannotActivateBucketVersioning",
	TagObjectStorageCannotDeleteBucket:                    "ObjectStorageCannotDeleteBucket",
	TagObjectStorageQuotaExceeded:                         "ObjectStorageQuotaExceeded",
	TagObjectStorageCannotGetObjectFile:                   "ObjectStorageCannotGetObjectFile",
	TagObjectStorageCannotCreateBucket:                    "ObjectStorageCannotCreateBucket",
	TagObjectStorageCannotPutFileIntoBucket:               "ObjectStorageCannotPutFileIntoBucket",
	TagObjectStorageCannotDeleteFileIntoBucket:            "ObjectStorageCannotDeleteFileIntoBucket",
	TagKubeconfigFileDoNotPermitToConnectToK8sCluster:     "KubeconfigFileDoNotPermitToConnectToK8sCluster",
	TagKubeconfigSecurityCheckError:                       "KubeconfigSecurityCheckError",
	TagDeleteLocalKubeconfigFileError:                     "DeleteLocalKubeconfigFileError",
	TagVaultConnectionError:                               "VaultConnectionError",
	TagVaultSecretCouldNotBeRetrieved:                     "VaultSecretCouldNotBeRetrieved",
	TagVaultSecretCouldNotBeCreatedOrUpdated:              "VaultSecretCouldNotBeCreatedOrUpdated",
	TagVaultSecretCouldNotBeDeleted:                       "VaultSecretCouldNotBeDeleted",
	TagJsonDeserializationError:                           "JsonDeserializationError",
	TagClusterSecretsManipulationError:                    "ClusterSecretsManipulationError",
	TagCannotGetNodeGroupList:                             "CannotGetNodeGroupList",
	TagCannotGetNodeGroupInfo:                             "CannotGetNodeGroupInfo",
	TagCannotConnectK8sCluster:                            "CannotConnectK8sCluster",
	TagNumberOfRequestedMaxNodesIsBelowThanCurrentUsage:   "NumberOfRequestedMaxNodesIsBelowThanCurrentUsage",
	TagDnsProviderInformationError:                        "DnsProviderInformationError",
	TagCloudProviderInformationError:                      "CloudProviderInformationError",
	TagDnsProviderInvalidCredentials:                      "DnsProviderInvalidCredentials",
	TagDnsProviderInvalidApiUrl:                           "DnsProviderInvalidApiUrl",
	TagK8sCannotReachToApi:                                "K8sCannotReachToApi",
	TagTerraformUnknownError:                              "TerraformUnknownError",
	TagTerraformConfigFileInvalidContent:                  "TerraformConfigFileInvalidContent",
	TagTerraformCannotDeleteLockFile:                      "TerraformCannotDeleteLockFile",
	TagTerraformInitError:                                 "TerraformInitError",
	TagTerraformValidateError:                             "TerraformValidateError",
	TagTerraformPlanError:                                 "TerraformPlanError",
	TagTerraformApplyError:                                "TerraformApplyError",
	TagTerraformStatelistError:                            "TerraformStatelistError",
	TagTerraformDestroyError:                              "TerraformDestroyError",
	TagTerraformCloudProviderQuotasReached:                "TerraformCloudProviderQuotasReached",
	TagTerraformCloudProviderActivationRequired:           "TerraformCloudProviderActivationRequired",
	TagTerraformInvalidCredentials:                        "TerraformInvalidCredentials",
	TagTerraformServiceNotActivatedOptInRequired:          "TerraformServiceNotActivatedOptInRequired",
	TagTerraformNotEnoughPermissions:                      "TerraformNotEnoughPermissions",
	TagTerraformWaitingTimeoutResource:                    "TerraformWaitingTimeoutResource",
	TagTerraformAlreadyExistingResource:                   "TerraformAlreadyExistingResource",
	TagTerraformWrongState:                                "TerraformWrongState",
	TagTerraformResourceDependencyViolation:               "TerraformResourceDependencyViolation",
	TagTerraformContextUnsupportedParameterValue:          "TerraformContextUnsupportedParameterValue",
	TagTerraformConfigMismatch:                            "TerraformConfigMismatch",
	TagTerraformInstanceTypeDoesntExist:                   "TerraformInstanceTypeDoesntExist",
	TagTerraformMultipleInterruptsReceived:                "TerraformMultipleInterruptsReceived",
	TagTerraformAccountBlockedByProvider:                  "TerraformAccountBlockedByProvider",
	TagTerraformInstanceVolumeCannotBeReduced:             "TerraformInstanceVolumeCannotBeReduced",
	TagTerraformInvalidCIDRBlock:                          "TerraformInvalidCIDRBlock",
	TagTerraformStateLocked:                               "TerraformStateLocked",
	TagTerraformClusterUnsupportedVersionUpdate:           "TerraformClusterUnsupportedVersionUpdate",
	TagTerraformS3BucketCreationErrorAlreadyOwnedByYou:    "TerraformS3BucketCreationErrorAlreadyOwnedByYou",
	TagCloudProviderGetLoadBalancer:                       "CloudProviderGetLoadBalancer",
	TagCloudProviderGetLoadBalancerTags:                   "CloudProviderGetLoadBalancerTags",
	TagCloudProviderDeleteLoadBalancer:                    "CloudProviderDeleteLoadBalancer",
	TagInvalidEnginePayload:                               "InvalidEnginePayload",
	TagJobFailure:                                         "JobFailure",
	TagDoNotRespectCloudProviderBestPractices:             "DoNotRespectCloudProviderBestPractices",
	TagCannotListClusters:                                 "CannotListClusters",
	TagCannotParseString:                                  "CannotParseString",
	TagCannotDeleteNodeGroup:                              "CannotDeleteNodeGroup",
	TagCannotRestartService:                               "CannotRestartService",
	TagAwsSdkGetClient:                                    "AwsSdkGetClient",
	TagAwsSdkListRdsInstances:                             "AwsSdkListRdsInstances",
	TagAwsSdkListElasticacheClusters:                      "AwsSdkListElasticacheClusters",
	TagAwsSdkListDocDbClusters:                            "AwsSdkListDocDbClusters",
	TagAwsCloudwatchRetentionConfigurationError:           "AwsCloudwatchRetentionConfigurationError",
	TagAwsSdkListEC2Volumes:                               "AwsSdkListEC2Volumes",
	TagAwsSdkDetachEC2Volumes:                             "AwsSdkDetachEC2Volumes",
	TagAwsSdkListEC2Instances:                             "AwsSdkListEC2Instances",
	TagBase64DecodeIssue:                                  "Base64DecodeIssue",
	TagCannotReadFile:                                     "CannotReadFile",
	TagInvalidJobOutputCannotBeSerialized:                 "InvalidJobOutputCannotBeSerialized",
	TagDatabaseError:                                      "DatabaseError",
	TagServiceMissingStorage:                              "ServiceMissingStorage",
	TagK8sCannotDeleteSecret:                              "K8sCannotDeleteSecret",
}

// String returns the Go-side name of the tag.
func (t Tag) String() string {
	if t < 0 || t >= tagCount {
		return "Tag(" + strconv.Itoa(int(t)) + ")"
	}
	return tagNames[t]
}

// AllTags lists every defined tag in declaration order.
func AllTags() []Tag {
	out := make([]Tag, 0, tagCount)
	for t := Tag(0); t < tagCount; t++ {
		out = append(out, t)
	}
	return out
}
