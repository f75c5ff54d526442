package eventbus

import (
	"context"
	"log/slog"
	"time"

	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/config"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

const defaultLease = 30 * time.Second

// Relay moves committed outbox rows to the bus. A row is marked published
// only after every handler accepted it, which gives at-least-once delivery.
type Relay struct {
	uow         shared.UnitOfWork
	bus         *Bus
	clock       clock.Clock
	interval    time.Duration
	batchSize   int
	maxAttempts int
	lease       time.Duration
	logger      *slog.Logger
}

func NewRelay(uow shared.UnitOfWork, bus *Bus, clk clock.Clock, cfg config.OutboxConfig, logger *slog.Logger) *Relay {
	r := &Relay{
		uow:         uow,
		bus:         bus,
		clock:       clk,
		interval:    cfg.PollInterval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		lease:       defaultLease,
		logger:      logger,
	}
	if r.interval <= 0 {
		r.interval = time.Second
	}
	if r.batchSize <= 0 {
		r.batchSize = 100
	}
	if r.maxAttempts <= 0 {
		r.maxAttempts = 10
	}
	return r
}

// Start polls until ctx is cancelled.
func (r *Relay) Start(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started", "interval", r.interval, "batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil {
				r.logger.Error("outbox relay pass failed", "error", err.Error())
			}
		}
	}
}

// Drain publishes one batch and reports how many events were delivered.
// Once an event of an aggregate fails, later events of the same aggregate in
// the batch are left for the next pass to keep per-aggregate order.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	var records []shared.OutboxRecord
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var err error
		records, err = tx.Outbox().ClaimPending(ctx, shared.ClaimOptions{
			Limit:       r.batchSize,
			Now:         r.clock.Now(),
			Lease:       r.lease,
			MaxAttempts: r.maxAttempts,
		})
		return err
	})
	if err != nil {
		return 0, err
	}

	blocked := make(map[uuid.UUID]bool)
	delivered := 0
	for _, rec := range records {
		if blocked[rec.AggregateID] {
			r.settle(ctx, rec.ID, func(ctx context.Context, o shared.OutboxRepository) error {
				return o.Release(ctx, rec.ID)
			})
			continue
		}

		if derr := r.deliver(ctx, rec); derr != nil {
			blocked[rec.AggregateID] = true
			r.settle(ctx, rec.ID, func(ctx context.Context, o shared.OutboxRepository) error {
				return o.MarkFailed(ctx, rec.ID, derr.Error())
			})
			continue
		}

		err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			return tx.Outbox().MarkPublished(ctx, rec.ID, r.clock.Now())
		})
		if err != nil {
			// the handlers ran; redelivery is absorbed by their inboxes
			r.logger.Error("failed to mark event published", "event_id", rec.ID, "error", err.Error())
			blocked[rec.AggregateID] = true
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (r *Relay) deliver(ctx context.Context, rec shared.OutboxRecord) error {
	e, err := rec.Event()
	if err != nil {
		return err
	}
	return r.bus.Dispatch(ctx, e)
}

func (r *Relay) settle(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, o shared.OutboxRepository) error) {
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return fn(ctx, tx.Outbox())
	})
	if err != nil {
		r.logger.Error("failed to release outbox event", "event_id", id, "error", err.Error())
	}
}
