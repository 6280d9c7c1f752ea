package workflow

import (
	"errors"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/edvin/regionfailover/internal/activity"
	"github.com/edvin/regionfailover/internal/model"
)

// TaskQueue is the queue topology workflows and activities run on.
const TaskQueue = "topology-provisioning"

// ledgerActivityOptions is used for ledger bookkeeping.
func ledgerActivityOptions() workflow.ActivityOptions {
	return workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:    3,
			InitialInterval:    1 * time.Second,
			MaximumInterval:    10 * time.Second,
			BackoffCoefficient: 2.0,
		},
	}
}

// provisionActivityCtx returns a context for provisioning-collaborator
// activities. Certificate validation and health-check activation can take
// minutes; this layer only bounds them, it does not poll for completion.
func provisionActivityCtx(ctx workflow.Context) workflow.Context {
	return workflow.WithActivityOptions(ctx, workflow.ActivityOptions{
		StartToCloseTimeout:    15 * time.Minute,
		ScheduleToCloseTimeout: 1 * time.Hour,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts:        5,
			InitialInterval:        5 * time.Second,
			MaximumInterval:        1 * time.Minute,
			BackoffCoefficient:     2.0,
			NonRetryableErrorTypes: []string{activity.ReferenceResolutionErrorType},
		},
	})
}

// setDeploymentFailed marks a deployment failed with the error message. Its
// own error is returned but callers typically ignore it since the primary
// error is more important.
func setDeploymentFailed(ctx workflow.Context, id string, err error) error {
	msg := err.Error()
	return workflow.ExecuteActivity(ctx, "UpdateDeploymentStatus", activity.UpdateDeploymentStatusParams{
		ID:            id,
		Status:        model.StatusFailed,
		StatusMessage: &msg,
	}).Get(ctx, nil)
}

// recordEntity writes an entity status to the ledger.
func recordEntity(ctx workflow.Context, deploymentID string, key model.ResourceKey, status, externalID string, cause error) error {
	params := activity.RecordEntityStatusParams{
		DeploymentID: deploymentID,
		Key:          key,
		ExternalID:   externalID,
		Status:       status,
	}
	if cause != nil {
		msg := cause.Error()
		params.StatusMessage = &msg
	}
	return workflow.ExecuteActivity(ctx, "RecordEntityStatus", params).Get(ctx, nil)
}

// fanOut runs fn once per item in its own workflow coroutine and waits for
// all of them.
func fanOut[T any](ctx workflow.Context, items []T, fn func(workflow.Context, T) error) error {
	if len(items) == 0 {
		return nil
	}

	errs := make([]error, len(items))
	wg := workflow.NewWaitGroup(ctx)
	for i, item := range items {
		wg.Add(1)
		workflow.Go(ctx, func(gctx workflow.Context) {
			defer wg.Done()
			errs[i] = fn(gctx, item)
		})
	}
	wg.Wait(ctx)

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) == 1 {
		return failed[0]
	}
	return errors.Join(failed...)
}
