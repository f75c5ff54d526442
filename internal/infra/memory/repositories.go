package memory

import (
	"context"
	"sort"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/infra"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type bookingRepo struct{ tx *memTx }

func (r *bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	s := r.tx.state
	if _, ok := s.bookings[b.ID()]; ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "booking already exists", nil)
	}
	if _, ok := s.numbers[b.Number()]; ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "booking number already taken", nil)
	}
	snap := b.Snapshot()
	snap.Version = 1
	s.bookings[b.ID()] = snap
	s.numbers[b.Number()] = b.ID()
	return nil
}

func (r *bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	stored, ok := r.tx.state.bookings[b.ID()]
	if !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "booking not found", nil)
	}
	if stored.Version != b.Version() {
		return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "booking was modified concurrently", nil)
	}
	snap := b.Snapshot()
	snap.Version = stored.Version + 1
	r.tx.state.bookings[b.ID()] = snap
	return nil
}

func (r *bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	snap, ok := r.tx.state.bookings[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "booking not found", nil)
	}
	return booking.Reconstruct(snap), nil
}

func (r *bookingRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.FindByID(ctx, id)
}

type poolRepo struct{ tx *memTx }

func (r *poolRepo) Create(_ context.Context, p *sharedload.Pool) error {
	if _, ok := r.tx.state.pools[p.ID()]; ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "pool already exists", nil)
	}
	snap := p.Snapshot()
	snap.Version = 1
	r.tx.state.pools[p.ID()] = snap
	return nil
}

func (r *poolRepo) Update(_ context.Context, p *sharedload.Pool) error {
	stored, ok := r.tx.state.pools[p.ID()]
	if !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "pool not found", nil)
	}
	if stored.Version != p.Version() {
		return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "pool was modified concurrently", nil)
	}
	snap := p.Snapshot()
	snap.Version = stored.Version + 1
	r.tx.state.pools[p.ID()] = snap
	return nil
}

func (r *poolRepo) FindByID(_ context.Context, id uuid.UUID) (*sharedload.Pool, error) {
	snap, ok := r.tx.state.pools[id]
	if !ok {
		return nil, infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "pool not found", nil)
	}
	return sharedload.Reconstruct(snap), nil
}

func (r *poolRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sharedload.Pool, error) {
	return r.FindByID(ctx, id)
}

func (r *poolRepo) FindOpenForRouteForUpdate(_ context.Context, route sharedload.Route) ([]*sharedload.Pool, error) {
	var pools []*sharedload.Pool
	for _, snap := range r.tx.state.pools {
		if snap.Status == sharedload.StatusOpen && snap.Route.Matches(route) {
			pools = append(pools, sharedload.Reconstruct(snap))
		}
	}
	sort.Slice(pools, func(i, j int) bool {
		return pools[i].CreatedAt().Before(pools[j].CreatedAt())
	})
	return pools, nil
}

type opportunityRepo struct{ tx *memTx }

func (r *opportunityRepo) Create(_ context.Context, o *backload.Opportunity) error {
	s := r.tx.state
	if _, ok := s.opportunities[o.ID()]; ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "opportunity already exists", nil)
	}
	// one Available opportunity per driver
	if o.IsAvailable() {
		for _, other := range s.opportunities {
			if other.DriverID == o.DriverID() && other.Status == backload.StatusAvailable {
				return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "driver already has an available opportunity", nil)
			}
		}
	}
	snap := o.Snapshot()
	snap.Version = 1
	s.opportunities[o.ID()] = snap
	return nil
}

func (r *opportunityRepo) Update(_ context.Context, o *backload.Opportunity) error {
	stored, ok := r.tx.state.opportunities[o.ID()]
	if !ok {
		return infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "opportunity not found", nil)
	}
	if stored.Version != o.Version() {
		return infra.WrapRepoErr(r.tx.logger, infra.KindConflict, "opportunity was modified concurrently", nil)
	}
	snap := o.Snapshot()
	snap.Version = stored.Version + 1
	r.tx.state.opportunities[o.ID()] = snap
	return nil
}

func (r *opportunityRepo) FindAvailableByDriverForUpdate(_ context.Context, driverID uuid.UUID) (*backload.Opportunity, error) {
	for _, snap := range r.tx.state.opportunities {
		if snap.DriverID == driverID && snap.Status == backload.StatusAvailable {
			return backload.Reconstruct(snap), nil
		}
	}
	return nil, infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "no available opportunity for driver", nil)
}

func (r *opportunityRepo) ListAvailable(_ context.Context) ([]*backload.Opportunity, error) {
	var out []*backload.Opportunity
	for _, snap := range r.tx.state.opportunities {
		if snap.Status == backload.StatusAvailable {
			out = append(out, backload.Reconstruct(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

type routeRepo struct{ tx *memTx }

func (r *routeRepo) Save(_ context.Context, route *utilization.Route) error {
	key := newRouteKey(route.OriginCity(), route.DestinationCity(), route.Period().Start)
	if existing, ok := r.tx.state.routes[key]; ok && existing.ID != route.ID() {
		return infra.WrapRepoErr(r.tx.logger, infra.KindDuplicateKey, "route already tracked for period", nil)
	}
	r.tx.state.routes[key] = route.Snapshot()
	return nil
}

func (r *routeRepo) FindForUpdate(_ context.Context, origin, destination string, periodStart time.Time) (*utilization.Route, error) {
	snap, ok := r.tx.state.routes[newRouteKey(origin, destination, periodStart)]
	if !ok {
		return nil, infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "route not found", nil)
	}
	return utilization.Reconstruct(snap), nil
}

func (r *routeRepo) ListByPeriod(_ context.Context, periodStart time.Time) ([]*utilization.Route, error) {
	var out []*utilization.Route
	for key, snap := range r.tx.state.routes {
		if key.periodStart.Equal(periodStart.UTC()) {
			out = append(out, utilization.Reconstruct(snap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OriginCity() != out[j].OriginCity() {
			return out[i].OriginCity() < out[j].OriginCity()
		}
		return out[i].DestinationCity() < out[j].DestinationCity()
	})
	return out, nil
}

type outboxRepo struct{ tx *memTx }

func (r *outboxRepo) Append(_ context.Context, events ...event.Event) error {
	s := r.tx.state
	for _, e := range events {
		payload, err := e.EncodePayload()
		if err != nil {
			return infra.WrapRepoErr(r.tx.logger, infra.KindDBFailure, "failed to encode event payload", err)
		}
		s.seq++
		s.outbox = append(s.outbox, outboxRow{record: shared.OutboxRecord{
			Sequence:      s.seq,
			ID:            e.ID,
			Type:          e.Type,
			AggregateType: e.AggregateType,
			AggregateID:   e.AggregateID,
			OccurredAt:    e.OccurredAt,
			Payload:       payload,
		}})
	}
	return nil
}

func (r *outboxRepo) ClaimPending(_ context.Context, opts shared.ClaimOptions) ([]shared.OutboxRecord, error) {
	var claimed []shared.OutboxRecord
	until := opts.Now.Add(opts.Lease)
	for i := range r.tx.state.outbox {
		if opts.Limit > 0 && len(claimed) >= opts.Limit {
			break
		}
		row := &r.tx.state.outbox[i]
		if row.publishedAt != nil {
			continue
		}
		if opts.MaxAttempts > 0 && row.record.Attempts >= opts.MaxAttempts {
			continue
		}
		if row.claimedUntil != nil && row.claimedUntil.After(opts.Now) {
			continue
		}
		row.claimedUntil = &until
		claimed = append(claimed, row.record)
	}
	return claimed, nil
}

func (r *outboxRepo) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	row, err := r.find(id)
	if err != nil {
		return err
	}
	row.publishedAt = &at
	row.claimedUntil = nil
	return nil
}

func (r *outboxRepo) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	row, err := r.find(id)
	if err != nil {
		return err
	}
	row.record.Attempts++
	row.lastError = reason
	row.claimedUntil = nil
	return nil
}

func (r *outboxRepo) Release(_ context.Context, id uuid.UUID) error {
	row, err := r.find(id)
	if err != nil {
		return err
	}
	row.claimedUntil = nil
	return nil
}

func (r *outboxRepo) find(id uuid.UUID) (*outboxRow, error) {
	for i := range r.tx.state.outbox {
		if r.tx.state.outbox[i].record.ID == id {
			return &r.tx.state.outbox[i], nil
		}
	}
	return nil, infra.WrapRepoErr(r.tx.logger, infra.KindNotFound, "outbox event not found", nil)
}

type inboxRepo struct{ tx *memTx }

func (r *inboxRepo) MarkProcessed(_ context.Context, consumer string, eventID uuid.UUID, at time.Time) (bool, error) {
	key := inboxKey{consumer: consumer, eventID: eventID}
	if _, ok := r.tx.state.inbox[key]; ok {
		return false, nil
	}
	r.tx.state.inbox[key] = at
	return true, nil
}

type notificationRepo struct{ tx *memTx }

func (r *notificationRepo) CreateJob(_ context.Context, kind, topic string, payload []byte, runAt time.Time) error {
	r.tx.state.notifications = append(r.tx.state.notifications, NotificationJob{
		Kind:    kind,
		Topic:   topic,
		Payload: append([]byte(nil), payload...),
		RunAt:   runAt,
	})
	return nil
}
