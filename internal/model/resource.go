package model

import "fmt"

// ResourceKind names the kind of entity in a regional chain.
type ResourceKind string

const (
	KindTable          ResourceKind = "table"
	KindEndpoint       ResourceKind = "endpoint"
	KindCertificate    ResourceKind = "certificate"
	KindDomain         ResourceKind = "domain"
	KindDomainMapping  ResourceKind = "domain-mapping"
	KindHealthCheck    ResourceKind = "health-check"
	KindFailoverRecord ResourceKind = "failover-record"
)

// ProvisionOrder lists resource kinds in dependency order within one region.
var ProvisionOrder = []ResourceKind{
	KindTable,
	KindEndpoint,
	KindCertificate,
	KindDomain,
	KindDomainMapping,
	KindHealthCheck,
	KindFailoverRecord,
}

// ResourceKey identifies an entity by region and kind. Several regions share
// one domain name, so the region is part of every entity's identity.
type ResourceKey struct {
	Region Region       `json:"region"`
	Kind   ResourceKind `json:"kind"`
}

// Key builds a ResourceKey.
func Key(region Region, kind ResourceKind) ResourceKey {
	return ResourceKey{Region: region, Kind: kind}
}

// String formats the key as the identifier handed to the provisioning
// collaborator, e.g. "health-check-eu-west-1".
func (k ResourceKey) String() string {
	return fmt.Sprintf("%s-%s", k.Kind, k.Region)
}

// IsZero reports whether the key is unset.
func (k ResourceKey) IsZero() bool {
	return k.Region == "" && k.Kind == ""
}
