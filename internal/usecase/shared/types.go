package shared

import (
	"context"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/domain/geo"

	"github.com/google/uuid"
)

// OutboxRecord is a stored event awaiting publication.
type OutboxRecord struct {
	Sequence      int64
	ID            uuid.UUID
	Type          event.Type
	AggregateType string
	AggregateID   uuid.UUID
	OccurredAt    time.Time
	Payload       []byte
	Attempts      int
}

type ClaimOptions struct {
	Limit       int
	Now         time.Time
	Lease       time.Duration
	MaxAttempts int
}

// Event decodes the stored payload back into its typed form.
func (r OutboxRecord) Event() (event.Event, error) {
	payload, err := event.DecodePayload(r.Type, r.Payload)
	if err != nil {
		return event.Event{}, err
	}
	return event.Event{
		ID:            r.ID,
		Type:          r.Type,
		AggregateType: r.AggregateType,
		AggregateID:   r.AggregateID,
		OccurredAt:    r.OccurredAt,
		Payload:       payload,
	}, nil
}

type ComplianceResult struct {
	Compliant        bool     `json:"compliant"`
	ExpiredDocuments []string `json:"expiredDocuments"`
	MissingDocuments []string `json:"missingDocuments"`
	Reason           string   `json:"reason"`
}

// ComplianceGate checks a driver/vehicle pair's documents with the external
// compliance service.
type ComplianceGate interface {
	Check(ctx context.Context, driverID, vehicleID uuid.UUID) (ComplianceResult, error)
}

type FareQuote struct {
	Total      float64
	DistanceKm float64
}

type FareQuoter interface {
	Quote(ctx context.Context, origin, destination geo.Location, vehicleTypeID uuid.UUID) (FareQuote, error)
}

// EventHandler consumes published events. Handlers must tolerate redelivery.
type EventHandler interface {
	Name() string
	Handle(ctx context.Context, e event.Event) error
}
