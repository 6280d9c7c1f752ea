package workflow

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"

	"github.com/edvin/regionfailover/internal/activity"
	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

// registerActivities registers activity structs with the test workflow
// environment so that parameter and return types can be deserialized
// correctly. All activities are mocked via OnActivity in unit tests.
func registerActivities(env *testsuite.TestWorkflowEnvironment) {
	env.RegisterActivity(&activity.Ledger{})
	env.RegisterActivity(&activity.Provision{})
	env.RegisterActivity(&activity.HealthVerifier{})
}

func testTopology(t *testing.T) model.Topology {
	t.Helper()
	topo, err := topology.NewOrchestrator(zerolog.Nop()).Compose(context.Background(), topology.Input{
		AppName:      "orders",
		Stage:        "prod",
		Main:         model.RegionUSEast1,
		Secondaries:  []model.Region{model.RegionEUWest1, model.RegionAPSoutheast2},
		HostedZoneID: "Z0123456789ABC",
		DomainName:   "api.example.com",
	})
	require.NoError(t, err)
	return *topo
}

func matchDeploymentStatus(status string) interface{} {
	return mock.MatchedBy(func(params activity.UpdateDeploymentStatusParams) bool {
		return params.Status == status
	})
}

func matchEntityStatus(key model.ResourceKey, status string) interface{} {
	return mock.MatchedBy(func(params activity.RecordEntityStatusParams) bool {
		return params.Key == key && params.Status == status
	})
}
