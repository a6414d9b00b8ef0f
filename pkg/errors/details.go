package errors

// Stage is the pipeline step an event or error belongs to.
type Stage string

const (
	StageLoadConfiguration     Stage = "load_configuration"
	StageDeploy                Stage = "deploy"
	StagePause                 Stage = "pause"
	StageDelete                Stage = "delete"
	StageScaleDown             Stage = "scale_down"
	StageRetrieveClusterConfig Stage = "retrieve_cluster_config"
	StageValidateInput         Stage = "validate_input"
)

// TransmitterKind identifies the kind of entity that emitted an event.
type TransmitterKind string

const (
	TransmitterApplication TransmitterKind = "application"
	TransmitterDatabase    TransmitterKind = "database"
	TransmitterRouter      TransmitterKind = "router"
	TransmitterEnvironment TransmitterKind = "environment"
)

type Transmitter struct {
	Kind TransmitterKind `json:"kind"`
	ID   string          `json:"id"`
	Name string          `json:"name"`
}

// EventDetails correlates events and errors with the organization, cluster and execution they belong to.
type EventDetails struct {
	ProviderKind   string      `json:"provider_kind,omitempty"`
	OrganizationID string      `json:"organization_id"`
	ClusterID      string      `json:"cluster_id"`
	ExecutionID    string      `json:"execution_id"`
	Region         string      `json:"region,omitempty"`
	Stage          Stage       `json:"stage"`
	Transmitter    Transmitter `json:"transmitter"`
}

// WithStage returns a copy of the details for another stage.
func (d EventDetails) WithStage(stage Stage) EventDetails {
	d.Stage = stage
	return d
}
