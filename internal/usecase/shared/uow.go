package shared

import (
	"context"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/event"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/domain/utilization"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for consistent multi-aggregate reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Tx exposes repositories bound to one transaction. Aggregate writes and the
// events they raise go through the same Tx so both commit or neither does.
type Tx interface {
	Bookings() BookingRepository
	Pools() PoolRepository
	Opportunities() OpportunityRepository
	Routes() RouteRepository
	Outbox() OutboxRepository
	Inbox() InboxRepository
	Notifications() NotificationRepository
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	// Update writes b if the stored version still equals b.Version().
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// FindByIDForUpdate locks the row until the transaction ends.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type PoolRepository interface {
	Create(ctx context.Context, p *sharedload.Pool) error
	Update(ctx context.Context, p *sharedload.Pool) error
	FindByID(ctx context.Context, id uuid.UUID) (*sharedload.Pool, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*sharedload.Pool, error)
	// FindOpenForRouteForUpdate returns Open pools on the route oldest first.
	FindOpenForRouteForUpdate(ctx context.Context, route sharedload.Route) ([]*sharedload.Pool, error)
}

type OpportunityRepository interface {
	Create(ctx context.Context, o *backload.Opportunity) error
	Update(ctx context.Context, o *backload.Opportunity) error
	// FindAvailableByDriverForUpdate returns a KindNotFound error when the
	// driver has no Available opportunity.
	FindAvailableByDriverForUpdate(ctx context.Context, driverID uuid.UUID) (*backload.Opportunity, error)
	ListAvailable(ctx context.Context) ([]*backload.Opportunity, error)
}

type RouteRepository interface {
	Save(ctx context.Context, r *utilization.Route) error
	FindForUpdate(ctx context.Context, origin, destination string, periodStart time.Time) (*utilization.Route, error)
	ListByPeriod(ctx context.Context, periodStart time.Time) ([]*utilization.Route, error)
}

type OutboxRepository interface {
	Append(ctx context.Context, events ...event.Event) error
	// ClaimPending leases up to opts.Limit unpublished events in sequence
	// order. Leased rows are invisible to other claims until the lease ends.
	ClaimPending(ctx context.Context, opts ClaimOptions) ([]OutboxRecord, error)
	MarkPublished(ctx context.Context, id uuid.UUID, at time.Time) error
	// MarkFailed releases the lease and counts the attempt.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	// Release gives the lease back without counting an attempt.
	Release(ctx context.Context, id uuid.UUID) error
}

type InboxRepository interface {
	// MarkProcessed records (consumer, eventID); false means it was already there.
	MarkProcessed(ctx context.Context, consumer string, eventID uuid.UUID, at time.Time) (bool, error)
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}
