package activity

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/edvin/regionfailover/internal/model"
	"github.com/edvin/regionfailover/internal/topology"
)

func tableEntity(region model.Region, owned bool) model.Entity {
	role := model.RoleSecondary
	if owned {
		role = model.RoleMain
	}
	h := topology.BindTable(role, region, "orders-table", nil)
	return model.Entity{Key: h.Key, Role: role, Table: &h}
}

func TestProvision_ApplyEntity(t *testing.T) {
	p := &mockProvisioner{}
	a := NewProvision(p, zerolog.Nop())
	ctx := context.Background()
	e := tableEntity(model.RegionUSEast1, true)

	p.On("Apply", ctx, e).Return(model.Outcome{ExternalID: "arn:table/orders-table"}, nil)

	out, err := a.ApplyEntity(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "arn:table/orders-table", out.ExternalID)
	assert.Equal(t, e.Key, out.Key)
	p.AssertExpectations(t)
}

func TestProvision_ApplyEntity_UnresolvedReference(t *testing.T) {
	p := &mockProvisioner{}
	a := NewProvision(p, zerolog.Nop())
	ctx := context.Background()
	e := tableEntity(model.RegionEUWest1, false)

	p.On("Apply", ctx, e).Return(model.Outcome{}, fmt.Errorf("describe orders-table: %w", topology.ErrTableNotFound))

	_, err := a.ApplyEntity(ctx, e)
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, ReferenceResolutionErrorType, appErr.Type())
	assert.True(t, appErr.NonRetryable())
	assert.Contains(t, err.Error(), "eu-west-1")
}

func TestProvision_ApplyEntity_OtherError(t *testing.T) {
	p := &mockProvisioner{}
	a := NewProvision(p, zerolog.Nop())
	ctx := context.Background()
	e := tableEntity(model.RegionUSEast1, true)

	p.On("Apply", ctx, e).Return(model.Outcome{}, errors.New("throttled"))

	_, err := a.ApplyEntity(ctx, e)
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	assert.False(t, errors.As(err, &appErr))
	assert.Contains(t, err.Error(), "apply table-us-east-1")
}

func TestProvision_DestroyEntity(t *testing.T) {
	p := &mockProvisioner{}
	a := NewProvision(p, zerolog.Nop())
	ctx := context.Background()
	e := tableEntity(model.RegionUSEast1, true)

	p.On("Destroy", ctx, e).Return(errors.New("in use"))

	err := a.DestroyEntity(ctx, e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "destroy table-us-east-1")
}

func TestProvision_EnableHealthCheck(t *testing.T) {
	p := &mockProvisioner{}
	a := NewProvision(p, zerolog.Nop())
	ctx := context.Background()
	hc := model.HealthCheck{Key: model.Key(model.RegionEUWest1, model.KindHealthCheck)}

	p.On("EnableHealthCheck", ctx, hc).Return(nil)

	require.NoError(t, a.EnableHealthCheck(ctx, hc))
	p.AssertExpectations(t)
}
