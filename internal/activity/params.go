package activity

import "github.com/edvin/regionfailover/internal/model"

// CreateDeploymentParams holds the parameters for CreateDeployment.
type CreateDeploymentParams struct {
	ID         string       `json:"id"`
	WorkflowID string       `json:"workflow_id"`
	AppName    string       `json:"app_name"`
	DomainName string       `json:"domain_name"`
	MainRegion model.Region `json:"main_region"`
	TableName  string       `json:"table_name"`
	// Entities are recorded as pending so the ledger shows the whole plan
	// before anything is applied.
	Entities []model.ResourceKey `json:"entities,omitempty"`
}

// UpdateDeploymentStatusParams holds the parameters for UpdateDeploymentStatus.
type UpdateDeploymentStatusParams struct {
	ID            string  `json:"id"`
	Status        string  `json:"status"`
	StatusMessage *string `json:"status_message,omitempty"`
}

// RecordEntityStatusParams holds the parameters for RecordEntityStatus.
type RecordEntityStatusParams struct {
	DeploymentID  string            `json:"deployment_id"`
	Key           model.ResourceKey `json:"key"`
	ExternalID    string            `json:"external_id,omitempty"`
	Status        string            `json:"status"`
	StatusMessage *string           `json:"status_message,omitempty"`
}
