package repository

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/infra"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type OutboxRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewOutboxRepository(db DBTX, logger *slog.Logger) *OutboxRepository {
	return &OutboxRepository{db: db, logger: logger}
}

func (r *OutboxRepository) Append(ctx context.Context, events ...event.Event) error {
	if len(events) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, e := range events {
		payload, err := e.EncodePayload()
		if err != nil {
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode event payload", err)
		}
		batch.Queue(`INSERT INTO domain_events (id, event_type, aggregate_type, aggregate_id, occurred_at, payload)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, string(e.Type), e.AggregateType, e.AggregateID, e.OccurredAt, payload)
	}
	if err := r.db.SendBatch(ctx, batch).Close(); err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to append events", err)
	}
	return nil
}

// ClaimPending skips rows locked by a concurrent claimer so several relays
// can share the table.
func (r *OutboxRepository) ClaimPending(ctx context.Context, opts shared.ClaimOptions) ([]shared.OutboxRecord, error) {
	rows, err := r.db.Query(ctx, `UPDATE domain_events SET claimed_until = $2
		WHERE sequence IN (
			SELECT sequence FROM domain_events
			WHERE published_at IS NULL
				AND ($3 = 0 OR attempts < $3)
				AND (claimed_until IS NULL OR claimed_until <= $1)
			ORDER BY sequence
			LIMIT $4
			FOR UPDATE SKIP LOCKED)
		RETURNING sequence, id, event_type, aggregate_type, aggregate_id, occurred_at, payload, attempts`,
		opts.Now, opts.Now.Add(opts.Lease), opts.MaxAttempts, opts.Limit,
	)
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to claim events", err)
	}
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (shared.OutboxRecord, error) {
		var (
			rec       shared.OutboxRecord
			eventType string
		)
		err := row.Scan(&rec.Sequence, &rec.ID, &eventType, &rec.AggregateType, &rec.AggregateID,
			&rec.OccurredAt, &rec.Payload, &rec.Attempts)
		rec.Type = event.Type(eventType)
		rec.OccurredAt = rec.OccurredAt.UTC()
		return rec, err
	})
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to scan claimed events", err)
	}
	// RETURNING does not keep the subquery order
	sort.Slice(records, func(i, j int) bool { return records[i].Sequence < records[j].Sequence })
	return records, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.exec(ctx, "failed to mark event published",
		`UPDATE domain_events SET published_at = $2, claimed_until = NULL WHERE id = $1`, id, at)
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	return r.exec(ctx, "failed to mark event failed",
		`UPDATE domain_events SET attempts = attempts + 1, last_error = $2, claimed_until = NULL WHERE id = $1`, id, reason)
}

func (r *OutboxRepository) Release(ctx context.Context, id uuid.UUID) error {
	return r.exec(ctx, "failed to release event",
		`UPDATE domain_events SET claimed_until = NULL WHERE id = $1`, id)
}

func (r *OutboxRepository) exec(ctx context.Context, msg, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, msg, err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, msg, nil)
	}
	return nil
}
