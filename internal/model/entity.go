package model

// Entity is the declarative description of one resource handed to the
// provisioning collaborator. Exactly one payload field is set; domain and
// domain-mapping entities both carry the DomainBinding.
type Entity struct {
	Key         ResourceKey       `json:"key"`
	Role        Role              `json:"role"`
	Table       *TableHandle      `json:"table,omitempty"`
	Endpoint    *RegionalEndpoint `json:"endpoint,omitempty"`
	Certificate *Certificate      `json:"certificate,omitempty"`
	Domain      *DomainBinding    `json:"domain,omitempty"`
	HealthCheck *HealthCheck      `json:"health_check,omitempty"`
	Record      *FailoverRecord   `json:"record,omitempty"`
}

// Outcome is what the provisioning collaborator reports for an applied
// entity.
type Outcome struct {
	Key        ResourceKey `json:"key"`
	ExternalID string      `json:"external_id"`
}
