package topology

import (
	"fmt"

	"github.com/edvin/regionfailover/internal/model"
)

// SetIdentifier returns the set identifier of region's failover record.
func SetIdentifier(region model.Region) string {
	return model.Key(region, model.KindFailoverRecord).String()
}

// NewFailoverRecord builds the DNS record that routes domainName to the
// binding's region while hc reports the region healthy. The health check and
// the binding must belong to the same region.
func NewFailoverRecord(domainName, hostedZoneID string, hc model.HealthCheck, binding model.DomainBinding) (model.FailoverRecord, error) {
	if hc.Region != binding.Region {
		return model.FailoverRecord{}, fmt.Errorf("failover record for %s with health check of %s: %w",
			binding.Region, hc.Region, ErrCrossRegionReference)
	}

	return model.FailoverRecord{
		Key:           model.Key(binding.Region, model.KindFailoverRecord),
		DomainName:    domainName,
		HostedZoneID:  hostedZoneID,
		Region:        binding.Region,
		Type:          model.RecordTypeA,
		SetIdentifier: SetIdentifier(binding.Region),
		HealthCheck:   hc.Key,
		AliasTarget:   binding.Key,
	}, nil
}
