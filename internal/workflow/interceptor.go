package workflow

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/interceptor"
	"go.temporal.io/sdk/temporal"
)

var activityDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "topology_activity_duration_seconds",
		Help:    "Duration of topology activities by activity and result",
		Buckets: []float64{.05, .25, 1, 5, 30, 120, 600, 1800},
	},
	[]string{"activity", "result"},
)

// ActivityInterceptor times every activity and gives untyped activity errors
// the activity name as their error type, so a failed ApplyEntity shows up as
// "ApplyEntity" rather than a generic ApplicationError.
type ActivityInterceptor struct {
	interceptor.WorkerInterceptorBase
}

func (a *ActivityInterceptor) InterceptActivity(
	ctx context.Context,
	next interceptor.ActivityInboundInterceptor,
) interceptor.ActivityInboundInterceptor {
	return &activityInbound{next: next}
}

type activityInbound struct {
	interceptor.ActivityInboundInterceptorBase
	next interceptor.ActivityInboundInterceptor
}

func (a *activityInbound) Init(outbound interceptor.ActivityOutboundInterceptor) error {
	return a.next.Init(outbound)
}

func (a *activityInbound) ExecuteActivity(
	ctx context.Context,
	in *interceptor.ExecuteActivityInput,
) (interface{}, error) {
	name := activity.GetInfo(ctx).ActivityType.Name
	start := time.Now()

	result, err := a.next.ExecuteActivity(ctx, in)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	activityDuration.WithLabelValues(name, outcome).Observe(time.Since(start).Seconds())

	return result, typeActivityError(name, err)
}

// typeActivityError leaves nil and already-typed application errors alone.
func typeActivityError(name string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if errors.As(err, &appErr) && appErr.Type() != "" {
		return err
	}
	return temporal.NewApplicationErrorWithCause(err.Error(), name, err)
}
