package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.temporal.io/sdk/temporal"

	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

// ReferenceResolutionErrorType is the application error type of a secondary
// table reference that does not resolve. Workflows do not retry it.
const ReferenceResolutionErrorType = "ReferenceResolutionError"

// Provisioner is the provisioning collaborator. It turns entity descriptions
// into real resources; this package never talks to the cloud itself.
type Provisioner interface {
	// Apply creates or updates the resource described by e. Applying a
	// reference-only table whose name does not exist must fail with an error
	// wrapping topology.ErrTableNotFound.
	Apply(ctx context.Context, e model.Entity) (model.Outcome, error)
	// Destroy removes the resource described by e.
	Destroy(ctx context.Context, e model.Entity) error
	// EnableHealthCheck turns on a created health check.
	EnableHealthCheck(ctx context.Context, hc model.HealthCheck) error
}

// Provision contains activities that hand entity descriptions to the
// provisioning collaborator.
type Provision struct {
	provisioner Provisioner
	logger      zerolog.Logger
}

// NewProvision creates a new Provision activity struct.
func NewProvision(provisioner Provisioner, logger zerolog.Logger) *Provision {
	return &Provision{
		provisioner: provisioner,
		logger:      logger.With().Str("component", "provision-activity").Logger(),
	}
}

// ApplyEntity provisions one entity. A secondary table reference that does
// not resolve comes back as a non-retryable ReferenceResolutionError.
func (a *Provision) ApplyEntity(ctx context.Context, e model.Entity) (*model.Outcome, error) {
	a.logger.Info().Str("key", e.Key.String()).Str("role", string(e.Role)).Msg("applying entity")

	out, err := a.provisioner.Apply(ctx, e)
	if err != nil {
		if errors.Is(err, topology.ErrTableNotFound) && e.Table != nil && !e.Table.Owned {
			rre := &topology.ReferenceResolutionError{Table: e.Table.Name, Region: e.Key.Region, Err: err}
			return nil, temporal.NewNonRetryableApplicationError(rre.Error(), ReferenceResolutionErrorType, rre)
		}
		return nil, fmt.Errorf("apply %s: %w", e.Key, err)
	}
	if out.Key.IsZero() {
		out.Key = e.Key
	}
	return &out, nil
}

// DestroyEntity removes one entity.
func (a *Provision) DestroyEntity(ctx context.Context, e model.Entity) error {
	a.logger.Info().Str("key", e.Key.String()).Msg("destroying entity")

	if err := a.provisioner.Destroy(ctx, e); err != nil {
		return fmt.Errorf("destroy %s: %w", e.Key, err)
	}
	return nil
}

// EnableHealthCheck activates a created health check. Creation alone does not
// guarantee the check is enabled.
func (a *Provision) EnableHealthCheck(ctx context.Context, hc model.HealthCheck) error {
	a.logger.Info().Str("key", hc.Key.String()).Str("fqdn", hc.FQDN).Msg("enabling health check")

	if err := a.provisioner.EnableHealthCheck(ctx, hc); err != nil {
		return fmt.Errorf("enable %s: %w", hc.Key, err)
	}
	return nil
}
