package memory

import (
	"context"
	"log/slog"
	"maps"
	"strings"
	"sync"
	"time"

	"freight-core/internal/domain/backload"
	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/sharedload"
	"freight-core/internal/domain/utilization"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

type routeKey struct {
	origin      string
	destination string
	periodStart time.Time
}

func newRouteKey(origin, destination string, periodStart time.Time) routeKey {
	return routeKey{
		origin:      strings.ToLower(strings.TrimSpace(origin)),
		destination: strings.ToLower(strings.TrimSpace(destination)),
		periodStart: periodStart.UTC(),
	}
}

type inboxKey struct {
	consumer string
	eventID  uuid.UUID
}

type outboxRow struct {
	record       shared.OutboxRecord
	publishedAt  *time.Time
	claimedUntil *time.Time
	lastError    string
}

type NotificationJob struct {
	Kind    string
	Topic   string
	Payload []byte
	RunAt   time.Time
}

type state struct {
	bookings      map[uuid.UUID]booking.Snapshot
	numbers       map[string]uuid.UUID
	pools         map[uuid.UUID]sharedload.Snapshot
	opportunities map[uuid.UUID]backload.Snapshot
	routes        map[routeKey]utilization.Snapshot
	outbox        []outboxRow
	inbox         map[inboxKey]time.Time
	notifications []NotificationJob
	seq           int64
}

func newState() *state {
	return &state{
		bookings:      map[uuid.UUID]booking.Snapshot{},
		numbers:       map[string]uuid.UUID{},
		pools:         map[uuid.UUID]sharedload.Snapshot{},
		opportunities: map[uuid.UUID]backload.Snapshot{},
		routes:        map[routeKey]utilization.Snapshot{},
		inbox:         map[inboxKey]time.Time{},
	}
}

func (s *state) clone() *state {
	return &state{
		bookings:      maps.Clone(s.bookings),
		numbers:       maps.Clone(s.numbers),
		pools:         maps.Clone(s.pools),
		opportunities: maps.Clone(s.opportunities),
		routes:        maps.Clone(s.routes),
		outbox:        append([]outboxRow(nil), s.outbox...),
		inbox:         maps.Clone(s.inbox),
		notifications: append([]NotificationJob(nil), s.notifications...),
		seq:           s.seq,
	}
}

// Store is a process-local UnitOfWork. Units of work run one at a time and
// operate on a copy of the state that replaces the original only on success,
// so a failed unit leaves nothing behind.
type Store struct {
	mu     sync.Mutex
	state  *state
	logger *slog.Logger
}

func NewStore(logger *slog.Logger) *Store {
	return &Store{state: newState(), logger: logger}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.state.clone()
	if err := fn(ctx, &memTx{state: work, logger: s.logger}); err != nil {
		return err
	}
	s.state = work
	return nil
}

func (s *Store) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	// writes go to a throwaway copy
	return fn(ctx, &memTx{state: s.state.clone(), logger: s.logger})
}

// NotificationJobs returns the queued notification jobs.
func (s *Store) NotificationJobs() []NotificationJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]NotificationJob(nil), s.state.notifications...)
}

// PendingEvents counts outbox rows not yet published.
func (s *Store) PendingEvents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, row := range s.state.outbox {
		if row.publishedAt == nil {
			n++
		}
	}
	return n
}

type memTx struct {
	state  *state
	logger *slog.Logger
}

func (t *memTx) Bookings() shared.BookingRepository          { return &bookingRepo{tx: t} }
func (t *memTx) Pools() shared.PoolRepository                { return &poolRepo{tx: t} }
func (t *memTx) Opportunities() shared.OpportunityRepository { return &opportunityRepo{tx: t} }
func (t *memTx) Routes() shared.RouteRepository              { return &routeRepo{tx: t} }
func (t *memTx) Outbox() shared.OutboxRepository             { return &outboxRepo{tx: t} }
func (t *memTx) Inbox() shared.InboxRepository               { return &inboxRepo{tx: t} }
func (t *memTx) Notifications() shared.NotificationRepository {
	return &notificationRepo{tx: t}
}

var _ shared.UnitOfWork = (*Store)(nil)
