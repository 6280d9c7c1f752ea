package workflow

import (
	"fmt"
	"strings"

	enumspb "go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/regionfailover/internal/activity"
	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/routing"
	"github.com/edvin/regionfailover/internal/topology"
)

// InvalidTopologyErrorType is the application error type of a topology that
// fails verification.
const InvalidTopologyErrorType = "InvalidTopology"

// TopologyWorkflowID returns the workflow id used to provision t. It only
// depends on the app and domain. Started with ProvisionStartOptions, a second
// start for the same topology is rejected unless the previous run failed.
func TopologyWorkflowID(t model.Topology) string {
	return fmt.Sprintf("topology-%s-%s", t.AppName, strings.ToLower(t.DomainName))
}

// ProvisionStartOptions returns the options the provisioning workflow for t
// is started with.
func ProvisionStartOptions(t model.Topology) client.StartWorkflowOptions {
	return client.StartWorkflowOptions{
		ID:                                       TopologyWorkflowID(t),
		TaskQueue:                                TaskQueue,
		WorkflowIDReusePolicy:                    enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}
}

// HealthVerification is the outcome of activating and probing one region's
// health check.
type HealthVerification struct {
	Region model.Region      `json:"region"`
	Key    model.ResourceKey `json:"key"`
	State  model.HealthState `json:"state"`
}

// ProvisionResult is returned by ProvisionTopologyWorkflow.
type ProvisionResult struct {
	DeploymentID string               `json:"deployment_id"`
	HealthChecks []HealthVerification `json:"health_checks"`
	// ServingRegions are the regions resolvers answer with given the
	// verification results.
	ServingRegions []model.Region `json:"serving_regions"`
}

// ProvisionTopologyWorkflow hands every entity of t to the provisioning
// collaborator. The main region's chain is applied first so its table exists
// before any secondary binds to it by name; the secondary chains then run in
// parallel. Afterwards every health check is explicitly enabled and verified.
// A check whose target does not answer healthy is recorded as unverified
// rather than assumed to recover on its own.
func ProvisionTopologyWorkflow(ctx workflow.Context, t model.Topology) (*ProvisionResult, error) {
	if err := topology.Verify(t); err != nil {
		return nil, temporal.NewNonRetryableApplicationError(err.Error(), InvalidTopologyErrorType, err)
	}

	ctx = workflow.WithActivityOptions(ctx, ledgerActivityOptions())
	info := workflow.GetInfo(ctx)
	deploymentID := info.WorkflowExecution.RunID
	logger := workflow.GetLogger(ctx)

	err := workflow.ExecuteActivity(ctx, "CreateDeployment", activity.CreateDeploymentParams{
		ID:         deploymentID,
		WorkflowID: info.WorkflowExecution.ID,
		AppName:    t.AppName,
		DomainName: t.DomainName,
		MainRegion: t.Main,
		TableName:  t.TableName,
		Entities:   entityKeys(t),
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}

	// Phase 1: main region.
	if err := applyChain(ctx, deploymentID, t.MainRegion()); err != nil {
		_ = setDeploymentFailed(ctx, deploymentID, err)
		return nil, err
	}
	logger.Info("main region provisioned", "region", t.Main, "table", t.TableName)

	// Phase 2: secondary regions, mutually independent.
	err = fanOut(ctx, t.Secondaries(), func(gctx workflow.Context, rt model.RegionTopology) error {
		return applyChain(gctx, deploymentID, rt)
	})
	if err != nil {
		_ = setDeploymentFailed(ctx, deploymentID, err)
		return nil, err
	}

	result := &ProvisionResult{
		DeploymentID: deploymentID,
		HealthChecks: make([]HealthVerification, len(t.Regions)),
	}
	err = fanOut(ctx, indexed(t.Regions), func(gctx workflow.Context, item indexedRegion) error {
		v, err := activateHealthCheck(gctx, deploymentID, item.rt.HealthCheck)
		result.HealthChecks[item.i] = v
		return err
	})
	if err != nil {
		_ = setDeploymentFailed(ctx, deploymentID, err)
		return nil, err
	}

	states := make(map[model.ResourceKey]model.HealthState, len(result.HealthChecks))
	for _, v := range result.HealthChecks {
		states[v.Key] = v.State
	}
	result.ServingRegions = routing.HealthyRegions(t, states)
	logger.Info("topology provisioned", "deployment", deploymentID, "serving", result.ServingRegions)

	err = workflow.ExecuteActivity(ctx, "UpdateDeploymentStatus", activity.UpdateDeploymentStatusParams{
		ID:     deploymentID,
		Status: model.StatusActive,
	}).Get(ctx, nil)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// TeardownParams holds the input of TeardownTopologyWorkflow.
type TeardownParams struct {
	DeploymentID string         `json:"deployment_id"`
	Topology     model.Topology `json:"topology"`
}

// TeardownTopologyWorkflow removes a topology in reverse dependency order.
// Secondary chains go first, in parallel, and the main region's chain last
// because its table is what the secondaries reference.
func TeardownTopologyWorkflow(ctx workflow.Context, params TeardownParams) error {
	ctx = workflow.WithActivityOptions(ctx, ledgerActivityOptions())
	t := params.Topology
	id := params.DeploymentID

	err := workflow.ExecuteActivity(ctx, "UpdateDeploymentStatus", activity.UpdateDeploymentStatusParams{
		ID:     id,
		Status: model.StatusDeleting,
	}).Get(ctx, nil)
	if err != nil {
		return err
	}

	err = fanOut(ctx, t.Secondaries(), func(gctx workflow.Context, rt model.RegionTopology) error {
		return destroyChain(gctx, id, rt)
	})
	if err != nil {
		_ = setDeploymentFailed(ctx, id, err)
		return err
	}

	if len(t.Regions) > 0 {
		if err := destroyChain(ctx, id, t.MainRegion()); err != nil {
			_ = setDeploymentFailed(ctx, id, err)
			return err
		}
	}

	return workflow.ExecuteActivity(ctx, "UpdateDeploymentStatus", activity.UpdateDeploymentStatusParams{
		ID:     id,
		Status: model.StatusDeleted,
	}).Get(ctx, nil)
}

// applyChain applies one region's entities in dependency order.
func applyChain(ctx workflow.Context, deploymentID string, rt model.RegionTopology) error {
	for _, e := range rt.Entities() {
		if err := recordEntity(ctx, deploymentID, e.Key, model.StatusProvisioning, "", nil); err != nil {
			return err
		}

		var out model.Outcome
		err := workflow.ExecuteActivity(provisionActivityCtx(ctx), "ApplyEntity", e).Get(ctx, &out)
		if err != nil {
			_ = recordEntity(ctx, deploymentID, e.Key, model.StatusFailed, "", err)
			return fmt.Errorf("region %s: %w", rt.Region(), err)
		}

		if err := recordEntity(ctx, deploymentID, e.Key, model.StatusActive, out.ExternalID, nil); err != nil {
			return err
		}
	}
	return nil
}

// destroyChain removes one region's entities in reverse dependency order.
func destroyChain(ctx workflow.Context, deploymentID string, rt model.RegionTopology) error {
	entities := rt.Entities()
	for i := len(entities) - 1; i >= 0; i-- {
		e := entities[i]
		if err := recordEntity(ctx, deploymentID, e.Key, model.StatusDeleting, "", nil); err != nil {
			return err
		}

		err := workflow.ExecuteActivity(provisionActivityCtx(ctx), "DestroyEntity", e).Get(ctx, nil)
		if err != nil {
			_ = recordEntity(ctx, deploymentID, e.Key, model.StatusFailed, "", err)
			return fmt.Errorf("region %s: %w", rt.Region(), err)
		}

		if err := recordEntity(ctx, deploymentID, e.Key, model.StatusDeleted, "", nil); err != nil {
			return err
		}
	}
	return nil
}

// activateHealthCheck enables hc and checks its target once.
func activateHealthCheck(ctx workflow.Context, deploymentID string, hc model.HealthCheck) (HealthVerification, error) {
	v := HealthVerification{Region: hc.Region, Key: hc.Key, State: model.HealthUnknown}

	err := workflow.ExecuteActivity(provisionActivityCtx(ctx), "EnableHealthCheck", hc).Get(ctx, nil)
	if err != nil {
		_ = recordEntity(ctx, deploymentID, hc.Key, model.StatusFailed, "", err)
		return v, fmt.Errorf("region %s: %w", hc.Region, err)
	}

	if err := workflow.ExecuteActivity(ctx, "VerifyHealthCheck", hc).Get(ctx, &v.State); err != nil {
		_ = recordEntity(ctx, deploymentID, hc.Key, model.StatusFailed, "", err)
		return v, fmt.Errorf("region %s: %w", hc.Region, err)
	}

	if v.State == model.HealthHealthy {
		return v, recordEntity(ctx, deploymentID, hc.Key, model.StatusActive, "", nil)
	}
	return v, recordEntity(ctx, deploymentID, hc.Key, model.StatusUnverified, "",
		fmt.Errorf("health check target %s%s reported %s after activation", hc.FQDN, hc.ResourcePath, v.State))
}

func entityKeys(t model.Topology) []model.ResourceKey {
	entities := t.Entities()
	keys := make([]model.ResourceKey, len(entities))
	for i, e := range entities {
		keys[i] = e.Key
	}
	return keys
}

type indexedRegion struct {
	i  int
	rt model.RegionTopology
}

func indexed(regions []model.RegionTopology) []indexedRegion {
	out := make([]indexedRegion, len(regions))
	for i, rt := range regions {
		out[i] = indexedRegion{i: i, rt: rt}
	}
	return out
}
