package postgres

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/artifact-registry/common"
	"github.com/gaze-network/artifact-registry/common/errs"
	"github.com/gaze-network/artifact-registry/internal/postgres"
	"github.com/gaze-network/artifact-registry/modules/registry/datagateway"
	"github.com/gaze-network/artifact-registry/modules/registry/internal/entity"
	"github.com/jackc/pgx/v5"
)

type Repository struct {
	db postgres.DB
	tx pgx.Tx
}

// queryer is what the repository needs from either the pool or an open
// transaction.
type queryer interface {
	postgres.Queryable
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

var (
	_ datagateway.RegistryDataGateway       = (*Repository)(nil)
	_ datagateway.RegistryDataGatewayWithTx = (*Repository)(nil)
)

func NewRepository(db postgres.DB) *Repository {
	return &Repository{db: db}
}

// queryable returns the active transaction if one is open, the pool otherwise.
func (r *Repository) queryable() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertEvent = `INSERT INTO artifact_events (type, height, block_time, caller, from_address, to_address, artifact_id, trait_commitment, layer_count, payment, holder, spender, operator, approved, royalty_payee, royalty_bps, prev_base_uri, new_base_uri)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
RETURNING sequence`

func (r *Repository) CreateEvents(ctx context.Context, events []*entity.Event) error {
	if len(events) == 0 {
		return nil
	}
	models := make([]eventModel, 0, len(events))
	for _, event := range events {
		model, err := mapEventTypeToModel(event)
		if err != nil {
			return errors.Wrap(err, "failed to map event")
		}
		models = append(models, model)
	}

	batch := &pgx.Batch{}
	for _, model := range models {
		batch.Queue(insertEvent,
			model.Type,
			model.Height,
			model.BlockTime,
			model.Caller,
			model.FromAddress,
			model.ToAddress,
			model.ArtifactId,
			model.TraitCommitment,
			model.LayerCount,
			model.Payment,
			model.Holder,
			model.Spender,
			model.Operator,
			model.Approved,
			model.RoyaltyPayee,
			model.RoyaltyBps,
			model.PrevBaseURI,
			model.NewBaseURI,
		)
	}
	results := r.queryable().SendBatch(ctx, batch)
	defer results.Close()
	for i := range events {
		if err := results.QueryRow().Scan(&events[i].Sequence); err != nil {
			return errors.Wrap(err, "error during batch insert")
		}
	}
	if err := results.Close(); err != nil {
		return errors.Wrap(err, "failed to close batch results")
	}
	return nil
}

const selectEvents = `SELECT sequence, type, height, block_time, caller, from_address, to_address, artifact_id, trait_commitment, layer_count, payment, holder, spender, operator, approved, royalty_payee, royalty_bps, prev_base_uri, new_base_uri
FROM artifact_events`

func (r *Repository) GetEvents(ctx context.Context, filter datagateway.EventFilter, limit int32, offset int32) ([]*entity.Event, error) {
	query, args := buildEventsQuery(filter, limit, offset)
	rows, err := r.queryable().Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()

	events := make([]*entity.Event, 0)
	for rows.Next() {
		var model eventModel
		if err := rows.Scan(
			&model.Sequence,
			&model.Type,
			&model.Height,
			&model.BlockTime,
			&model.Caller,
			&model.FromAddress,
			&model.ToAddress,
			&model.ArtifactId,
			&model.TraitCommitment,
			&model.LayerCount,
			&model.Payment,
			&model.Holder,
			&model.Spender,
			&model.Operator,
			&model.Approved,
			&model.RoyaltyPayee,
			&model.RoyaltyBps,
			&model.PrevBaseURI,
			&model.NewBaseURI,
		); err != nil {
			return nil, errors.Wrap(err, "error during scan")
		}
		event, err := mapEventModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map event")
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return events, nil
}

func (r *Repository) CountEvents(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.queryable().QueryRow(ctx, `SELECT COUNT(*) FROM artifact_events`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return uint64(count), nil
}

const selectArtifact = `SELECT id, owner, trait_commitment, layer_count, issued_height, issued_at FROM artifacts WHERE id = $1`

func (r *Repository) GetArtifact(ctx context.Context, id uint64) (*entity.Artifact, error) {
	var model artifactModel
	err := r.queryable().QueryRow(ctx, selectArtifact, int64(id)).Scan(
		&model.Id,
		&model.Owner,
		&model.TraitCommitment,
		&model.LayerCount,
		&model.IssuedHeight,
		&model.IssuedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.Wrapf(errs.NotFound, "artifact %d", id)
		}
		return nil, errors.Wrap(err, "error during query")
	}
	artifact, err := mapArtifactModelToType(model)
	if err != nil {
		return nil, errors.Wrap(err, "failed to map artifact")
	}
	return artifact, nil
}

func (r *Repository) GetArtifacts(ctx context.Context, owner common.Address, limit int32, offset int32) ([]*entity.Artifact, error) {
	query := `SELECT id, owner, trait_commitment, layer_count, issued_height, issued_at FROM artifacts`
	args := make([]any, 0, 3)
	if !owner.IsZero() {
		args = append(args, owner.String())
		query += ` WHERE owner = $1`
	}
	query += ` ORDER BY id`
	query, args = appendPagination(query, args, limit, offset)

	rows, err := r.queryable().Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error during query")
	}
	defer rows.Close()

	artifacts := make([]*entity.Artifact, 0)
	for rows.Next() {
		var model artifactModel
		if err := rows.Scan(
			&model.Id,
			&model.Owner,
			&model.TraitCommitment,
			&model.LayerCount,
			&model.IssuedHeight,
			&model.IssuedAt,
		); err != nil {
			return nil, errors.Wrap(err, "error during scan")
		}
		artifact, err := mapArtifactModelToType(model)
		if err != nil {
			return nil, errors.Wrap(err, "failed to map artifact")
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error during iteration")
	}
	return artifacts, nil
}

func (r *Repository) CountArtifacts(ctx context.Context) (uint64, error) {
	var count int64
	if err := r.queryable().QueryRow(ctx, `SELECT COUNT(*) FROM artifacts`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "error during query")
	}
	return uint64(count), nil
}

const insertArtifact = `INSERT INTO artifacts (id, owner, trait_commitment, layer_count, issued_height, issued_at)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *Repository) CreateArtifact(ctx context.Context, artifact *entity.Artifact) error {
	model := mapArtifactTypeToModel(artifact)
	if _, err := r.queryable().Exec(ctx, insertArtifact,
		model.Id,
		model.Owner,
		model.TraitCommitment,
		model.LayerCount,
		model.IssuedHeight,
		model.IssuedAt,
	); err != nil {
		return errors.Wrap(err, "error during exec")
	}
	return nil
}

func (r *Repository) UpdateArtifactOwner(ctx context.Context, id uint64, owner common.Address) error {
	tag, err := r.queryable().Exec(ctx, `UPDATE artifacts SET owner = $2 WHERE id = $1`, int64(id), owner.String())
	if err != nil {
		return errors.Wrap(err, "error during exec")
	}
	if tag.RowsAffected() == 0 {
		return errors.Wrapf(errs.NotFound, "artifact %d", id)
	}
	return nil
}
