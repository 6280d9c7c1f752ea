package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/edvin/regionfailover/internal/model"
)

// DB defines the database operations used by activity structs.
// *pgxpool.Pool satisfies this interface.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Ledger contains activities that record deployments and the status of
// their entities.
type Ledger struct {
	db DB
}

// NewLedger creates a new Ledger activity struct.
func NewLedger(db DB) *Ledger {
	return &Ledger{db: db}
}

// CreateDeployment inserts a deployment row in provisioning state and a
// pending row per entity. Running it again for the same id resets the
// deployment status and leaves existing entity rows alone.
func (a *Ledger) CreateDeployment(ctx context.Context, params CreateDeploymentParams) error {
	_, err := a.db.Exec(ctx,
		`INSERT INTO deployments (id, workflow_id, app_name, domain_name, main_region, table_name, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		 ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status, status_message = NULL, updated_at = now()`,
		params.ID, params.WorkflowID, params.AppName, params.DomainName, string(params.MainRegion), params.TableName, model.StatusProvisioning,
	)
	if err != nil {
		return fmt.Errorf("create deployment %s: %w", params.ID, err)
	}

	for _, key := range params.Entities {
		_, err := a.db.Exec(ctx,
			`INSERT INTO deployment_entities (deployment_id, resource_key, region, kind, external_id, status, updated_at)
			 VALUES ($1, $2, $3, $4, '', $5, now())
			 ON CONFLICT (deployment_id, resource_key) DO NOTHING`,
			params.ID, key.String(), string(key.Region), string(key.Kind), model.StatusPending,
		)
		if err != nil {
			return fmt.Errorf("create deployment %s entity %s: %w", params.ID, key, err)
		}
	}
	return nil
}

// UpdateDeploymentStatus sets the status of a deployment.
func (a *Ledger) UpdateDeploymentStatus(ctx context.Context, params UpdateDeploymentStatusParams) error {
	_, err := a.db.Exec(ctx,
		"UPDATE deployments SET status = $1, status_message = $2, updated_at = now() WHERE id = $3",
		params.Status, params.StatusMessage, params.ID,
	)
	if err != nil {
		return fmt.Errorf("update deployment %s status: %w", params.ID, err)
	}
	return nil
}

// RecordEntityStatus upserts the status of one deployment entity. An empty
// ExternalID keeps the stored one.
func (a *Ledger) RecordEntityStatus(ctx context.Context, params RecordEntityStatusParams) error {
	_, err := a.db.Exec(ctx,
		`INSERT INTO deployment_entities (deployment_id, resource_key, region, kind, external_id, status, status_message, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (deployment_id, resource_key) DO UPDATE SET
		   external_id = CASE WHEN EXCLUDED.external_id = '' THEN deployment_entities.external_id ELSE EXCLUDED.external_id END,
		   status = EXCLUDED.status,
		   status_message = EXCLUDED.status_message,
		   updated_at = now()`,
		params.DeploymentID, params.Key.String(), string(params.Key.Region), string(params.Key.Kind),
		params.ExternalID, params.Status, params.StatusMessage,
	)
	if err != nil {
		return fmt.Errorf("record entity %s status: %w", params.Key, err)
	}
	return nil
}

// GetDeployment retrieves a deployment by its ID.
func (a *Ledger) GetDeployment(ctx context.Context, id string) (*model.Deployment, error) {
	var d model.Deployment
	var mainRegion string
	err := a.db.QueryRow(ctx,
		`SELECT id, workflow_id, app_name, domain_name, main_region, table_name, status, status_message, created_at, updated_at
		 FROM deployments WHERE id = $1`, id,
	).Scan(&d.ID, &d.WorkflowID, &d.AppName, &d.DomainName, &mainRegion, &d.TableName, &d.Status, &d.StatusMessage, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("get deployment %s: %w", id, err)
	}
	d.MainRegion = model.Region(mainRegion)
	return &d, nil
}

// ListDeploymentEntities returns the entities of a deployment ordered by
// region and key.
func (a *Ledger) ListDeploymentEntities(ctx context.Context, deploymentID string) ([]model.DeploymentEntity, error) {
	rows, err := a.db.Query(ctx,
		`SELECT deployment_id, resource_key, region, kind, external_id, status, status_message, updated_at
		 FROM deployment_entities WHERE deployment_id = $1 ORDER BY region, resource_key`, deploymentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list deployment entities: %w", err)
	}
	defer rows.Close()

	var entities []model.DeploymentEntity
	for rows.Next() {
		var e model.DeploymentEntity
		var region, kind string
		if err := rows.Scan(&e.DeploymentID, &e.ResourceKey, &region, &kind, &e.ExternalID, &e.Status, &e.StatusMessage, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deployment entity: %w", err)
		}
		e.Region = model.Region(region)
		e.Kind = model.ResourceKind(kind)
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deployment entities: %w", err)
	}
	return entities, nil
}
