package consumers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/pkg/clock"
	"freight-core/internal/pkg/errs"
	"freight-core/internal/usecase/shared"

	"github.com/google/uuid"
)

const NotificationConsumerName = "notification"

type Audience string

const (
	AudienceCustomer Audience = "customer"
	AudienceDriver   Audience = "driver"
	AudienceOperator Audience = "operator"
)

// audiences maps the events that reach a person to who should hear about them.
var audiences = map[event.Type][]Audience{
	event.TypeBookingCreated:              {AudienceCustomer},
	event.TypeBookingAssigned:             {AudienceCustomer, AudienceDriver},
	event.TypeComplianceCheckFailed:       {AudienceOperator},
	event.TypeBookingAccepted:             {AudienceCustomer},
	event.TypeDriverReached:               {AudienceCustomer},
	event.TypeTransitStarted:              {AudienceCustomer},
	event.TypeBookingDelivered:            {AudienceCustomer},
	event.TypeBookingCompleted:            {AudienceCustomer, AudienceDriver},
	event.TypeBookingCancelled:            {AudienceCustomer, AudienceDriver},
	event.TypeBookingFareAdjusted:         {AudienceCustomer},
	event.TypeLoadRecommendationGenerated: {AudienceDriver},
	event.TypeSharedLoadPoolFull:          {AudienceOperator},
}

type notificationJob struct {
	EventID     uuid.UUID       `json:"eventId"`
	EventType   event.Type      `json:"eventType"`
	AggregateID uuid.UUID       `json:"aggregateId"`
	Audience    Audience        `json:"audience"`
	OccurredAt  time.Time       `json:"occurredAt"`
	Data        json.RawMessage `json:"data"`
}

// Notification turns domain events into jobs for the external notification
// service. Delivery itself happens outside this process.
type Notification struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewNotification(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) *Notification {
	return &Notification{uow: uow, clock: clk, logger: logger}
}

func (n *Notification) Name() string { return NotificationConsumerName }

func (n *Notification) Handle(ctx context.Context, e event.Event) error {
	targets, ok := audiences[e.Type]
	if !ok {
		return nil
	}
	data, err := e.EncodePayload()
	if err != nil {
		return err
	}

	return n.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := n.clock.Now()
		fresh, err := tx.Inbox().MarkProcessed(ctx, NotificationConsumerName, e.ID, now)
		if err != nil || !fresh {
			return err
		}

		for _, audience := range targets {
			body, err := json.Marshal(notificationJob{
				EventID:     e.ID,
				EventType:   e.Type,
				AggregateID: e.AggregateID,
				Audience:    audience,
				OccurredAt:  e.OccurredAt,
				Data:        data,
			})
			if err != nil {
				return errs.Wrap(err, "encode notification job")
			}
			if err := tx.Notifications().CreateJob(ctx, string(audience), string(e.Type), body, now); err != nil {
				return err
			}
		}
		n.logger.Debug("notification jobs queued",
			"event_id", e.ID,
			"event_type", e.Type,
			"jobs", len(targets))
		return nil
	})
}
