package repository

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/infra"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewNotificationRepository(db DBTX, logger *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, logger: logger}
}

func (r *NotificationRepository) CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	_, err := r.db.Exec(ctx, `INSERT INTO notification_jobs (kind, topic, payload, run_at, status)
		VALUES ($1, $2, $3, $4, 'queued')`, kind, topic, payload, runAt)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create notification job", err)
	}
	return nil
}

type InboxRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewInboxRepository(db DBTX, logger *slog.Logger) *InboxRepository {
	return &InboxRepository{db: db, logger: logger}
}

func (r *InboxRepository) MarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID, at time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `INSERT INTO processed_events (consumer, event_id, processed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (consumer, event_id) DO NOTHING`, consumer, eventID, at)
	if err != nil {
		return false, infra.ClassifyPgErr(r.logger, "failed to record processed event", err)
	}
	return tag.RowsAffected() == 1, nil
}
