package event

import (
	"time"

	"github.com/google/uuid"
)

type Place struct {
	Address string  `json:"address"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type BookingCreated struct {
	BookingID     uuid.UUID `json:"bookingId"`
	BookingNumber string    `json:"bookingNumber"`
	BookingType   string    `json:"bookingType"`
	CustomerID    uuid.UUID `json:"customerId"`
	VehicleTypeID uuid.UUID `json:"vehicleTypeId"`
	Origin        Place     `json:"origin"`
	Destination   Place     `json:"destination"`
	PickupAt      time.Time `json:"pickupAt"`
	TotalFare     float64   `json:"totalFare"`
}

type BookingAssigned struct {
	BookingID  uuid.UUID `json:"bookingId"`
	CustomerID uuid.UUID `json:"customerId"`
	VehicleID  uuid.UUID `json:"vehicleId"`
	DriverID   uuid.UUID `json:"driverId"`
}

type ComplianceCheckFailed struct {
	BookingID        uuid.UUID `json:"bookingId"`
	DriverID         uuid.UUID `json:"driverId"`
	VehicleID        uuid.UUID `json:"vehicleId"`
	ExpiredDocuments []string  `json:"expiredDocuments"`
	MissingDocuments []string  `json:"missingDocuments"`
	Reason           string    `json:"reason"`
}

type BookingAccepted struct {
	BookingID uuid.UUID `json:"bookingId"`
	DriverID  uuid.UUID `json:"driverId"`
}

type DriverReached struct {
	BookingID uuid.UUID `json:"bookingId"`
	DriverID  uuid.UUID `json:"driverId"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	PhotoRef  string    `json:"photoRef"`
}

type LoadingStarted struct {
	BookingID uuid.UUID `json:"bookingId"`
	DriverID  uuid.UUID `json:"driverId"`
}

type TransitStarted struct {
	BookingID uuid.UUID `json:"bookingId"`
	DriverID  uuid.UUID `json:"driverId"`
}

type BookingDelivered struct {
	BookingID  uuid.UUID `json:"bookingId"`
	CustomerID uuid.UUID `json:"customerId"`
	DriverID   uuid.UUID `json:"driverId"`
}

type BookingCompleted struct {
	BookingID       uuid.UUID `json:"bookingId"`
	CustomerID      uuid.UUID `json:"customerId"`
	DriverID        uuid.UUID `json:"driverId"`
	TotalFare       float64   `json:"totalFare"`
	OriginCity      string    `json:"originCity"`
	DestinationCity string    `json:"destinationCity"`
	TripKm          float64   `json:"tripKm"`
	CompletedAt     time.Time `json:"completedAt"`
}

type BookingCancelled struct {
	BookingID      uuid.UUID  `json:"bookingId"`
	CustomerID     uuid.UUID  `json:"customerId"`
	DriverID       *uuid.UUID `json:"driverId,omitempty"`
	PreviousStatus string     `json:"previousStatus"`
	Reason         string     `json:"reason"`
}

type BookingFareAdjusted struct {
	BookingID uuid.UUID `json:"bookingId"`
	TotalFare float64   `json:"totalFare"`
	Discount  float64   `json:"discount"`
	FinalFare float64   `json:"finalFare"`
}

type BackloadAvailabilityToggled struct {
	OpportunityID   *uuid.UUID `json:"opportunityId,omitempty"`
	DriverID        uuid.UUID  `json:"driverId"`
	VehicleID       uuid.UUID  `json:"vehicleId"`
	IsAvailable     bool       `json:"isAvailable"`
	OriginCity      string     `json:"originCity"`
	DestinationCity string     `json:"destinationCity"`
	AvailableFrom   time.Time  `json:"availableFrom"`
	AvailableTo     time.Time  `json:"availableTo"`
}

type Recommendation struct {
	OpportunityID     *uuid.UUID `json:"opportunityId,omitempty"`
	OriginCity        string     `json:"originCity"`
	DestinationCity   string     `json:"destinationCity"`
	DistanceKm        float64    `json:"distanceKm"`
	EstimatedEarnings float64    `json:"estimatedEarnings"`
	MatchScore        float64    `json:"matchScore"`
	Reason            string     `json:"reason"`
}

type LoadRecommendationGenerated struct {
	DriverID        uuid.UUID        `json:"driverId"`
	CurrentLocation string           `json:"currentLocation"`
	Recommendations []Recommendation `json:"recommendations"`
}

type SharedLoadCapacityUpdated struct {
	PoolID             uuid.UUID `json:"poolId"`
	UsedCapacity       float64   `json:"usedCapacity"`
	AvailableCapacity  float64   `json:"availableCapacity"`
	UtilizationPercent float64   `json:"utilizationPercent"`
	Status             string    `json:"status"`
}

type SharedLoadPoolFull struct {
	PoolID          uuid.UUID `json:"poolId"`
	OriginCity      string    `json:"originCity"`
	DestinationCity string    `json:"destinationCity"`
	TotalBookings   int       `json:"totalBookings"`
	TotalWeight     float64   `json:"totalWeight"`
}

type SharedLoadPoolClosed struct {
	PoolID        uuid.UUID `json:"poolId"`
	TotalBookings int       `json:"totalBookings"`
	TotalWeight   float64   `json:"totalWeight"`
}

type RouteUtilizationUpdated struct {
	OriginCity         string    `json:"originCity"`
	DestinationCity    string    `json:"destinationCity"`
	OutboundCount      int       `json:"outboundCount"`
	ReturnCount        int       `json:"returnCount"`
	UtilizationPercent float64   `json:"utilizationPercent"`
	PeriodStart        time.Time `json:"periodStart"`
	PeriodEnd          time.Time `json:"periodEnd"`
}

func (BookingCreated) EventType() Type              { return TypeBookingCreated }
func (BookingAssigned) EventType() Type             { return TypeBookingAssigned }
func (ComplianceCheckFailed) EventType() Type       { return TypeComplianceCheckFailed }
func (BookingAccepted) EventType() Type             { return TypeBookingAccepted }
func (DriverReached) EventType() Type               { return TypeDriverReached }
func (LoadingStarted) EventType() Type              { return TypeLoadingStarted }
func (TransitStarted) EventType() Type              { return TypeTransitStarted }
func (BookingDelivered) EventType() Type            { return TypeBookingDelivered }
func (BookingCompleted) EventType() Type            { return TypeBookingCompleted }
func (BookingCancelled) EventType() Type            { return TypeBookingCancelled }
func (BookingFareAdjusted) EventType() Type         { return TypeBookingFareAdjusted }
func (BackloadAvailabilityToggled) EventType() Type { return TypeBackloadAvailabilityToggled }
func (LoadRecommendationGenerated) EventType() Type { return TypeLoadRecommendationGenerated }
func (SharedLoadCapacityUpdated) EventType() Type   { return TypeSharedLoadCapacityUpdated }
func (SharedLoadPoolFull) EventType() Type          { return TypeSharedLoadPoolFull }
func (SharedLoadPoolClosed) EventType() Type        { return TypeSharedLoadPoolClosed }
func (RouteUtilizationUpdated) EventType() Type     { return TypeRouteUtilizationUpdated }
