package model

import "time"

// Ledger statuses shared by deployments and their entities. An entity moves
// pending -> provisioning -> active on the happy path; a health check whose
// target did not answer after activation ends in unverified instead of active.
const (
	StatusPending      = "pending"
	StatusProvisioning = "provisioning"
	StatusActive       = "active"
	StatusUnverified   = "unverified"
	StatusFailed       = "failed"
	StatusDeleting     = "deleting"
	StatusDeleted      = "deleted"
)

// Deployment is one provisioning run of a topology, as kept in the ledger.
type Deployment struct {
	ID            string    `json:"id" db:"id"`
	WorkflowID    string    `json:"workflow_id" db:"workflow_id"`
	AppName       string    `json:"app_name" db:"app_name"`
	DomainName    string    `json:"domain_name" db:"domain_name"`
	MainRegion    Region    `json:"main_region" db:"main_region"`
	TableName     string    `json:"table_name" db:"table_name"`
	Status        string    `json:"status" db:"status"`
	StatusMessage *string   `json:"status_message,omitempty" db:"status_message"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// DeploymentEntity tracks one entity of a deployment.
type DeploymentEntity struct {
	DeploymentID  string       `json:"deployment_id" db:"deployment_id"`
	ResourceKey   string       `json:"resource_key" db:"resource_key"`
	Region        Region       `json:"region" db:"region"`
	Kind          ResourceKind `json:"kind" db:"kind"`
	ExternalID    string       `json:"external_id" db:"external_id"`
	Status        string       `json:"status" db:"status"`
	StatusMessage *string      `json:"status_message,omitempty" db:"status_message"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}
