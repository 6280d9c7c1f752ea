// Package routing models how the authoritative resolver answers for the
// shared domain name given the current health of each region.
package routing

import "github.com/edvin/regionfailover/internal/model"

// Answer returns the failover records the resolver may choose from for
// domainName. A record is left out while its bound health check reports
// UNHEALTHY; checks that have not reported yet count as eligible. Records for
// other names are ignored. The selection among eligible records (latency,
// weighted, geo) is up to the DNS provider.
func Answer(domainName string, records []model.FailoverRecord, states map[model.ResourceKey]model.HealthState) []model.FailoverRecord {
	var out []model.FailoverRecord
	for _, rec := range records {
		if rec.DomainName != domainName {
			continue
		}
		if states[rec.HealthCheck] == model.HealthUnhealthy {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// HealthyRegions returns the regions of t that currently receive traffic.
func HealthyRegions(t model.Topology, states map[model.ResourceKey]model.HealthState) []model.Region {
	records := make([]model.FailoverRecord, 0, len(t.Regions))
	for _, rt := range t.Regions {
		records = append(records, rt.Record)
	}

	var regions []model.Region
	for _, rec := range Answer(t.DomainName, records, states) {
		regions = append(regions, rec.Region)
	}
	return regions
}
