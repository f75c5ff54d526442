package event

import (
	"encoding/json"
	"time"

	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBookingCreated              Type = "booking.created"
	TypeBookingAssigned             Type = "booking.assigned"
	TypeComplianceCheckFailed       Type = "booking.compliance_check_failed"
	TypeBookingAccepted             Type = "booking.accepted"
	TypeDriverReached               Type = "booking.driver_reached"
	TypeLoadingStarted              Type = "booking.loading_started"
	TypeTransitStarted              Type = "booking.transit_started"
	TypeBookingDelivered            Type = "booking.delivered"
	TypeBookingCompleted            Type = "booking.completed"
	TypeBookingCancelled            Type = "booking.cancelled"
	TypeBookingFareAdjusted         Type = "booking.fare_adjusted"
	TypeBackloadAvailabilityToggled Type = "backload.availability_toggled"
	TypeLoadRecommendationGenerated Type = "backload.recommendation_generated"
	TypeSharedLoadCapacityUpdated   Type = "sharedload.capacity_updated"
	TypeSharedLoadPoolFull          Type = "sharedload.pool_full"
	TypeSharedLoadPoolClosed        Type = "sharedload.pool_closed"
	TypeRouteUtilizationUpdated     Type = "analytics.route_utilization_updated"
)

const (
	AggregateBooking     = "booking"
	AggregateOpportunity = "backload_opportunity"
	AggregateDriver      = "driver"
	AggregatePool        = "shared_load_pool"
	AggregateRoute       = "route_utilization"
)

var ErrUnknownType = errs.New("unknown event type")

type Payload interface {
	EventType() Type
}

// Event is an immutable fact; ID is the idempotency key for consumers.
type Event struct {
	ID            uuid.UUID
	Type          Type
	AggregateType string
	AggregateID   uuid.UUID
	OccurredAt    time.Time
	Payload       Payload
}

func New(aggregateType string, aggregateID uuid.UUID, occurredAt time.Time, payload Payload) Event {
	return Event{
		ID:            uuid.New(),
		Type:          payload.EventType(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		OccurredAt:    occurredAt.UTC(),
		Payload:       payload,
	}
}

func (e Event) EncodePayload() ([]byte, error) {
	data, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, errs.Wrap(err, "encode event payload")
	}
	return data, nil
}

var registry = map[Type]func() Payload{
	TypeBookingCreated:              func() Payload { return &BookingCreated{} },
	TypeBookingAssigned:             func() Payload { return &BookingAssigned{} },
	TypeComplianceCheckFailed:       func() Payload { return &ComplianceCheckFailed{} },
	TypeBookingAccepted:             func() Payload { return &BookingAccepted{} },
	TypeDriverReached:               func() Payload { return &DriverReached{} },
	TypeLoadingStarted:              func() Payload { return &LoadingStarted{} },
	TypeTransitStarted:              func() Payload { return &TransitStarted{} },
	TypeBookingDelivered:            func() Payload { return &BookingDelivered{} },
	TypeBookingCompleted:            func() Payload { return &BookingCompleted{} },
	TypeBookingCancelled:            func() Payload { return &BookingCancelled{} },
	TypeBookingFareAdjusted:         func() Payload { return &BookingFareAdjusted{} },
	TypeBackloadAvailabilityToggled: func() Payload { return &BackloadAvailabilityToggled{} },
	TypeLoadRecommendationGenerated: func() Payload { return &LoadRecommendationGenerated{} },
	TypeSharedLoadCapacityUpdated:   func() Payload { return &SharedLoadCapacityUpdated{} },
	TypeSharedLoadPoolFull:          func() Payload { return &SharedLoadPoolFull{} },
	TypeSharedLoadPoolClosed:        func() Payload { return &SharedLoadPoolClosed{} },
	TypeRouteUtilizationUpdated:     func() Payload { return &RouteUtilizationUpdated{} },
}

func DecodePayload(t Type, data []byte) (Payload, error) {
	factory, ok := registry[t]
	if !ok {
		return nil, errs.Wrap(ErrUnknownType, string(t))
	}
	p := factory()
	if err := json.Unmarshal(data, p); err != nil {
		return nil, errs.Wrap(err, "decode event payload")
	}
	return p, nil
}
