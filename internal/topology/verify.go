package topology

import (
	"errors"
	"fmt"

	"github.com/edvin/regionfailover/internal/model"
)

// Verify checks the cross-entity invariants of a composed topology: the main
// region comes first and owns the table, every region resolves the same table
// name, each region has exactly one failover record with a unique set
// identifier, and every record, health check and domain binding points at
// entities of its own region.
func Verify(t model.Topology) error {
	if len(t.Regions) == 0 {
		return fmt.Errorf("topology has no regions")
	}

	var errs []error
	main := t.MainRegion()
	if main.Role != model.RoleMain || main.Region() != t.Main {
		errs = append(errs, fmt.Errorf("first region must be main region %s", t.Main))
	}
	if !main.Table.Owned {
		errs = append(errs, fmt.Errorf("main region %s does not own the table", t.Main))
	}

	seenRegions := make(map[model.Region]bool, len(t.Regions))
	seenSetIDs := make(map[string]model.Region, len(t.Regions))

	for _, rt := range t.Regions {
		region := rt.Region()
		if seenRegions[region] {
			errs = append(errs, fmt.Errorf("region %s composed more than once", region))
		}
		seenRegions[region] = true

		if rt.Role == model.RoleSecondary && rt.Table.Owned {
			errs = append(errs, fmt.Errorf("secondary region %s owns a table", region))
		}
		if rt.Table.Name != t.TableName {
			errs = append(errs, fmt.Errorf("region %s binds table %q, want %q", region, rt.Table.Name, t.TableName))
		}
		if rt.Endpoint.Table.Region != region {
			errs = append(errs, fmt.Errorf("endpoint of %s bound to table handle of %s: %w", region, rt.Endpoint.Table.Region, ErrCrossRegionReference))
		}

		hc := rt.HealthCheck
		if hc.Region != region || hc.Endpoint != rt.Endpoint.Key {
			errs = append(errs, fmt.Errorf("health check of %s targets %s: %w", region, hc.Endpoint, ErrCrossRegionReference))
		}
		if hc.FQDN != rt.Endpoint.ExecuteHostname() {
			errs = append(errs, fmt.Errorf("health check of %s polls %s, want %s", region, hc.FQDN, rt.Endpoint.ExecuteHostname()))
		}
		if hc.ResourcePath != rt.Endpoint.StageHealthPath() {
			errs = append(errs, fmt.Errorf("health check of %s polls path %s, want %s", region, hc.ResourcePath, rt.Endpoint.StageHealthPath()))
		}

		d := rt.Domain
		if d.Certificate != rt.Certificate.Key || d.Endpoint != rt.Endpoint.Key {
			errs = append(errs, fmt.Errorf("domain binding of %s: %w", region, ErrCrossRegionReference))
		}

		rec := rt.Record
		if rec.Region != region || rec.HealthCheck != hc.Key || rec.AliasTarget != d.Key {
			errs = append(errs, fmt.Errorf("failover record of %s: %w", region, ErrCrossRegionReference))
		}
		if rec.DomainName != t.DomainName {
			errs = append(errs, fmt.Errorf("failover record of %s is for %q, want %q", region, rec.DomainName, t.DomainName))
		}
		if other, ok := seenSetIDs[rec.SetIdentifier]; ok {
			errs = append(errs, fmt.Errorf("set identifier %q shared by %s and %s", rec.SetIdentifier, other, region))
		}
		seenSetIDs[rec.SetIdentifier] = region
	}

	return errors.Join(errs...)
}
