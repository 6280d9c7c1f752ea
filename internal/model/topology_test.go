package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chain(role Role, region Region) RegionTopology {
	return RegionTopology{
		Role:        role,
		Table:       TableHandle{Key: Key(region, KindTable), Region: region},
		Endpoint:    RegionalEndpoint{Key: Key(region, KindEndpoint), Region: region, APIID: "abc", Stage: "prod", HealthPath: HealthRoute},
		Certificate: Certificate{Key: Key(region, KindCertificate), Region: region},
		Domain:      DomainBinding{Key: Key(region, KindDomain), MappingKey: Key(region, KindDomainMapping), Region: region},
		HealthCheck: HealthCheck{Key: Key(region, KindHealthCheck), Region: region},
		Record:      FailoverRecord{Key: Key(region, KindFailoverRecord), Region: region},
	}
}

func TestRegion_IsSupported(t *testing.T) {
	for _, r := range SupportedRegions() {
		assert.True(t, r.IsSupported(), r)
	}
	assert.False(t, Region("eu-central-1").IsSupported())
	assert.False(t, Region("").IsSupported())
}

func TestResourceKey_String(t *testing.T) {
	assert.Equal(t, "health-check-eu-west-1", Key(RegionEUWest1, KindHealthCheck).String())
	assert.True(t, ResourceKey{}.IsZero())
	assert.False(t, Key(RegionEUWest1, KindTable).IsZero())
}

func TestRegionalEndpoint_Hostname(t *testing.T) {
	ep := RegionalEndpoint{Region: RegionAPSoutheast2, APIID: "a1b2c3d4e5", Stage: "prod", HealthPath: HealthRoute}

	assert.Equal(t, "a1b2c3d4e5.execute-api.ap-southeast-2.amazonaws.com", ep.ExecuteHostname())
	assert.Equal(t, "/prod/health", ep.StageHealthPath())
}

func TestHealthState_Observe(t *testing.T) {
	s := HealthUnknown
	s = s.Observe(false)
	assert.Equal(t, HealthUnknown, s)
	s = s.Observe(true)
	assert.Equal(t, HealthHealthy, s)
	s = s.Observe(false)
	assert.Equal(t, HealthUnhealthy, s)
	s = s.Observe(true)
	assert.Equal(t, HealthHealthy, s)
	assert.Equal(t, HealthUnknown, HealthUnknown.Observe(false))
	assert.Equal(t, HealthUnhealthy, HealthHealthy.Observe(false))
	assert.Equal(t, HealthUnhealthy, HealthUnhealthy.Observe(false))
}

func TestRegionTopology_EntitiesInDependencyOrder(t *testing.T) {
	entities := chain(RoleMain, RegionUSEast1).Entities()

	require.Len(t, entities, len(ProvisionOrder))
	for i, kind := range ProvisionOrder {
		assert.Equal(t, kind, entities[i].Key.Kind)
		assert.Equal(t, RegionUSEast1, entities[i].Key.Region)
		assert.Equal(t, RoleMain, entities[i].Role)
	}
	assert.NotNil(t, entities[0].Table)
	assert.NotNil(t, entities[4].Domain)
	assert.NotNil(t, entities[6].Record)
}

func TestTopology_EntitiesMainFirst(t *testing.T) {
	topo := Topology{
		Main: RegionUSEast1,
		Regions: []RegionTopology{
			chain(RoleMain, RegionUSEast1),
			chain(RoleSecondary, RegionEUWest1),
		},
	}

	entities := topo.Entities()
	require.Len(t, entities, 2*len(ProvisionOrder))
	assert.Equal(t, Key(RegionUSEast1, KindTable), entities[0].Key)
	assert.Equal(t, Key(RegionEUWest1, KindTable), entities[len(ProvisionOrder)].Key)

	teardown := topo.TeardownOrder()
	require.Len(t, teardown, len(entities))
	assert.Equal(t, Key(RegionEUWest1, KindFailoverRecord), teardown[0].Key)
	assert.Equal(t, Key(RegionUSEast1, KindTable), teardown[len(teardown)-1].Key)
}

func TestTopology_ForRegion(t *testing.T) {
	topo := Topology{Regions: []RegionTopology{chain(RoleMain, RegionUSEast1), chain(RoleSecondary, RegionEUWest1)}}

	rt, ok := topo.ForRegion(RegionEUWest1)
	require.True(t, ok)
	assert.Equal(t, RoleSecondary, rt.Role)

	_, ok = topo.ForRegion(RegionSAEast1)
	assert.False(t, ok)

	assert.Len(t, topo.Secondaries(), 1)
	assert.Nil(t, Topology{Regions: []RegionTopology{chain(RoleMain, RegionUSEast1)}}.Secondaries())
}
