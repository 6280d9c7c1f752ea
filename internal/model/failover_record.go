package model

// RecordTypeA is the record type of alias failover records.
const RecordTypeA = "A"

// FailoverRecord is the DNS entry for one region under the shared domain
// name. The resolver leaves it out of answers while its health check reports
// UNHEALTHY.
type FailoverRecord struct {
	Key           ResourceKey `json:"key"`
	DomainName    string      `json:"domain_name"`
	HostedZoneID  string      `json:"hosted_zone_id"`
	Region        Region      `json:"region"`
	Type          string      `json:"type"`
	SetIdentifier string      `json:"set_identifier"`
	HealthCheck   ResourceKey `json:"health_check"`
	AliasTarget   ResourceKey `json:"alias_target"`
}
