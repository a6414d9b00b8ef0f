package models

import "time"

type PodPhase string

const (
	PodPending   PodPhase = "Pending"
	PodRunning   PodPhase = "Running"
	PodSucceeded PodPhase = "Succeeded"
	PodFailed    PodPhase = "Failed"
	PodUnknown   PodPhase = "Unknown"
)

// Pod is the part of a cluster pod the pipelines and diagnostics look at.
type Pod struct {
	Name              string
	Namespace         string
	Phase             PodPhase
	CreatedAt         time.Time
	Ready             bool
	Conditions        []PodCondition
	ContainerStatuses []ContainerStatus
}

type PodCondition struct {
	Type    string
	Status  string
	Reason  string
	Message string
}

type ContainerStatus struct {
	Name           string
	Ready          bool
	LastTerminated *ContainerTerminated
	LastWaiting    *ContainerWaiting
}

type ContainerTerminated struct {
	ExitCode int32
	Reason   string
	Message  string
}

type ContainerWaiting struct {
	Reason  string
	Message string
}

type KubeEvent struct {
	Type          string
	Reason        string
	Message       string
	Object        string
	LastTimestamp time.Time
}

// StatefulSetVolumes are the volume claim templates of a statefulset.
type StatefulSetVolumes struct {
	Name         string
	VolumeClaims []VolumeClaim
}

// VolumeClaim is a claim name with its requested storage as a quantity ("10Gi").
type VolumeClaim struct {
	Name           string
	StorageRequest string
}

// InvalidStatefulsetStorage describes the PVCs that need a resize before redeploying a statefulset.
type InvalidStatefulsetStorage struct {
	ServiceType         ServiceType
	ServiceID           string
	StatefulsetSelector string
	StatefulsetName     string
	InvalidPVCs         []InvalidPVCStorage
}

type InvalidPVCStorage struct {
	PVCName               string
	RequiredDiskSizeInGiB int
}
