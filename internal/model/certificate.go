package model

// CertValidationDNS is the only validation method used for regional
// certificates.
const CertValidationDNS = "DNS"

// Certificate is a TLS certificate for the shared domain name, scoped to one
// region.
type Certificate struct {
	Key              ResourceKey `json:"key"`
	DomainName       string      `json:"domain_name"`
	HostedZoneID     string      `json:"hosted_zone_id"`
	Region           Region      `json:"region"`
	ValidationMethod string      `json:"validation_method"`
}

// DomainBinding attaches the shared domain name to one region's endpoint
// through a region-scoped domain-name resource and base path mapping.
type DomainBinding struct {
	Key         ResourceKey `json:"key"`
	MappingKey  ResourceKey `json:"mapping_key"`
	DomainName  string      `json:"domain_name"`
	Region      Region      `json:"region"`
	Certificate ResourceKey `json:"certificate"`
	Endpoint    ResourceKey `json:"endpoint"`
	Stage       string      `json:"stage"`
}
