package model

// RegionTopology is the full entity chain for one region.
type RegionTopology struct {
	Role        Role             `json:"role"`
	Table       TableHandle      `json:"table"`
	Endpoint    RegionalEndpoint `json:"endpoint"`
	Certificate Certificate      `json:"certificate"`
	Domain      DomainBinding    `json:"domain"`
	HealthCheck HealthCheck      `json:"health_check"`
	Record      FailoverRecord   `json:"record"`
}

// Region returns the region the chain belongs to.
func (rt RegionTopology) Region() Region {
	return rt.Endpoint.Region
}

// Entities returns the chain's entity descriptions in dependency order.
func (rt RegionTopology) Entities() []Entity {
	table := rt.Table
	endpoint := rt.Endpoint
	cert := rt.Certificate
	domain := rt.Domain
	hc := rt.HealthCheck
	record := rt.Record

	return []Entity{
		{Key: table.Key, Role: rt.Role, Table: &table},
		{Key: endpoint.Key, Role: rt.Role, Endpoint: &endpoint},
		{Key: cert.Key, Role: rt.Role, Certificate: &cert},
		{Key: domain.Key, Role: rt.Role, Domain: &domain},
		{Key: domain.MappingKey, Role: rt.Role, Domain: &domain},
		{Key: hc.Key, Role: rt.Role, HealthCheck: &hc},
		{Key: record.Key, Role: rt.Role, Record: &record},
	}
}

// Topology is the composed, immutable entity graph of one deployment.
// Regions[0] is always the main region.
type Topology struct {
	AppName      string           `json:"app_name"`
	Stage        string           `json:"stage"`
	DomainName   string           `json:"domain_name"`
	HostedZoneID string           `json:"hosted_zone_id"`
	TableName    string           `json:"table_name"`
	Main         Region           `json:"main"`
	Regions      []RegionTopology `json:"regions"`
}

// MainRegion returns the main region's chain.
func (t Topology) MainRegion() RegionTopology {
	return t.Regions[0]
}

// Secondaries returns the secondary regions' chains in configured order.
func (t Topology) Secondaries() []RegionTopology {
	if len(t.Regions) < 2 {
		return nil
	}
	return t.Regions[1:]
}

// ForRegion returns the chain for region r.
func (t Topology) ForRegion(r Region) (RegionTopology, bool) {
	for _, rt := range t.Regions {
		if rt.Region() == r {
			return rt, true
		}
	}
	return RegionTopology{}, false
}

// Entities lists every entity in provisioning order: the main region's full
// chain first, then the secondary chains.
func (t Topology) Entities() []Entity {
	var out []Entity
	for _, rt := range t.Regions {
		out = append(out, rt.Entities()...)
	}
	return out
}

// TeardownOrder lists every entity in the reverse of provisioning order.
func (t Topology) TeardownOrder() []Entity {
	entities := t.Entities()
	out := make([]Entity, 0, len(entities))
	for i := len(entities) - 1; i >= 0; i-- {
		out = append(out, entities[i])
	}
	return out
}
