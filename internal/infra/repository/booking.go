package repository

import (
	"context"
	"log/slog"

	"freight-core/internal/domain/booking"
	"freight-core/internal/domain/geo"
	"freight-core/internal/infra"
	"freight-core/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingColumns = `id, number, customer_id, vehicle_type_id, vehicle_id, driver_id,
	origin_address, origin_city, origin_lat, origin_lng,
	destination_address, destination_city, destination_lat, destination_lng,
	pickup_at, cargo_description, cargo_weight_kg, cargo_volume_m3, cargo_category,
	shipper_name, shipper_phone, receiver_name, receiver_phone,
	booking_type, status, fare_total_minor, fare_discount_minor, fare_final_minor,
	assigned_at, accepted_at, reached_at, loading_started_at, in_transit_at,
	delivered_at, completed_at, cancelled_at, cancellation_reason, shared_pool_id,
	reached_lat, reached_lng, pickup_photo_ref, version, created_at, updated_at`

const insertBooking = `INSERT INTO bookings (` + bookingColumns + `) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22,
	$23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34, $35, $36, $37, $38, $39, $40, $41, 1, $42, $43)`

const updateBooking = `UPDATE bookings SET (
	vehicle_id, driver_id, status, fare_total_minor, fare_discount_minor, fare_final_minor,
	assigned_at, accepted_at, reached_at, loading_started_at, in_transit_at,
	delivered_at, completed_at, cancelled_at, cancellation_reason, shared_pool_id,
	reached_lat, reached_lng, pickup_photo_ref, updated_at, version
) = ($3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, version + 1)
WHERE id = $1 AND version = $2`

type BookingRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewBookingRepository(db DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: db, logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	discount, reachedLat, reachedLng := bookingNullables(s)

	_, err := r.db.Exec(ctx, insertBooking,
		s.ID, s.Number, s.CustomerID, s.VehicleTypeID,
		pgconv.UUIDPtrToPgtype(s.VehicleID), pgconv.UUIDPtrToPgtype(s.DriverID),
		s.Origin.Address(), s.Origin.City(), s.Origin.Coordinates().Lat, s.Origin.Coordinates().Lng,
		s.Destination.Address(), s.Destination.City(), s.Destination.Coordinates().Lat, s.Destination.Coordinates().Lng,
		s.PickupAt, s.Cargo.Description(), s.Cargo.WeightKg(), pgconv.Float64PtrToPgtype(s.Cargo.VolumeM3()), s.Cargo.Category(),
		s.Shipper.Name(), s.Shipper.Phone(), s.Receiver.Name(), s.Receiver.Phone(),
		string(s.Type), string(s.Status), s.Fare.Total().Minor(), discount, s.Fare.Final().Minor(),
		pgconv.TimePtrToPgtype(s.Timeline.AssignedAt), pgconv.TimePtrToPgtype(s.Timeline.AcceptedAt),
		pgconv.TimePtrToPgtype(s.Timeline.ReachedAt), pgconv.TimePtrToPgtype(s.Timeline.LoadingStartedAt),
		pgconv.TimePtrToPgtype(s.Timeline.InTransitAt), pgconv.TimePtrToPgtype(s.Timeline.DeliveredAt),
		pgconv.TimePtrToPgtype(s.Timeline.CompletedAt), pgconv.TimePtrToPgtype(s.Timeline.CancelledAt),
		pgconv.StringPtrToPgtype(s.CancellationReason), pgconv.UUIDPtrToPgtype(s.SharedPoolID),
		reachedLat, reachedLng, pgconv.StringPtrToPgtype(s.PickupPhotoRef),
		s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	s := b.Snapshot()
	discount, reachedLat, reachedLng := bookingNullables(s)

	tag, err := r.db.Exec(ctx, updateBooking,
		s.ID, s.Version,
		pgconv.UUIDPtrToPgtype(s.VehicleID), pgconv.UUIDPtrToPgtype(s.DriverID),
		string(s.Status), s.Fare.Total().Minor(), discount, s.Fare.Final().Minor(),
		pgconv.TimePtrToPgtype(s.Timeline.AssignedAt), pgconv.TimePtrToPgtype(s.Timeline.AcceptedAt),
		pgconv.TimePtrToPgtype(s.Timeline.ReachedAt), pgconv.TimePtrToPgtype(s.Timeline.LoadingStartedAt),
		pgconv.TimePtrToPgtype(s.Timeline.InTransitAt), pgconv.TimePtrToPgtype(s.Timeline.DeliveredAt),
		pgconv.TimePtrToPgtype(s.Timeline.CompletedAt), pgconv.TimePtrToPgtype(s.Timeline.CancelledAt),
		pgconv.StringPtrToPgtype(s.CancellationReason), pgconv.UUIDPtrToPgtype(s.SharedPoolID),
		reachedLat, reachedLng, pgconv.StringPtrToPgtype(s.PickupPhotoRef),
		s.UpdatedAt,
	)
	if err != nil {
		return infra.ClassifyPgErr(r.logger, "failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConflict, "booking version changed", nil)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to find booking", err)
	}
	return b, nil
}

func (r *BookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := scanBooking(r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, infra.ClassifyPgErr(r.logger, "failed to lock booking", err)
	}
	return b, nil
}

func bookingNullables(s booking.Snapshot) (discount pgtype.Int8, lat, lng pgtype.Float8) {
	if d := s.Fare.Discount(); d != nil {
		minor := d.Minor()
		discount = pgconv.Int64PtrToPgtype(&minor)
	}
	if c := s.ReachedCoordinates; c != nil {
		lat = pgconv.Float64PtrToPgtype(&c.Lat)
		lng = pgconv.Float64PtrToPgtype(&c.Lng)
	}
	return discount, lat, lng
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		s                                   booking.Snapshot
		vehicleID, driverID, sharedPoolID   pgtype.UUID
		originAddress, originCity           string
		originLat, originLng                float64
		destAddress, destCity               string
		destLat, destLng                    float64
		cargoDescription, cargoCategory     string
		cargoWeight                         float64
		cargoVolume, reachedLat, reachedLng pgtype.Float8
		shipperName, shipperPhone           string
		receiverName, receiverPhone         string
		bookingType, status                 string
		fareTotal, fareFinal                int64
		fareDiscount                        pgtype.Int8
		assignedAt, acceptedAt, reachedAt   pgtype.Timestamptz
		loadingAt, transitAt, deliveredAt   pgtype.Timestamptz
		completedAt, cancelledAt            pgtype.Timestamptz
		cancelReason, photoRef              pgtype.Text
	)
	err := row.Scan(
		&s.ID, &s.Number, &s.CustomerID, &s.VehicleTypeID, &vehicleID, &driverID,
		&originAddress, &originCity, &originLat, &originLng,
		&destAddress, &destCity, &destLat, &destLng,
		&s.PickupAt, &cargoDescription, &cargoWeight, &cargoVolume, &cargoCategory,
		&shipperName, &shipperPhone, &receiverName, &receiverPhone,
		&bookingType, &status, &fareTotal, &fareDiscount, &fareFinal,
		&assignedAt, &acceptedAt, &reachedAt, &loadingAt, &transitAt,
		&deliveredAt, &completedAt, &cancelledAt, &cancelReason, &sharedPoolID,
		&reachedLat, &reachedLng, &photoRef, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	volume, err := pgconv.Float64PtrFromPgtype(cargoVolume)
	if err != nil {
		return nil, err
	}
	lat, err := pgconv.Float64PtrFromPgtype(reachedLat)
	if err != nil {
		return nil, err
	}
	lng, err := pgconv.Float64PtrFromPgtype(reachedLng)
	if err != nil {
		return nil, err
	}

	s.VehicleID = pgconv.UUIDPtrFromPgtype(vehicleID)
	s.DriverID = pgconv.UUIDPtrFromPgtype(driverID)
	s.SharedPoolID = pgconv.UUIDPtrFromPgtype(sharedPoolID)
	s.Origin = geo.ReconstructLocation(originAddress, originCity, geo.Coordinates{Lat: originLat, Lng: originLng})
	s.Destination = geo.ReconstructLocation(destAddress, destCity, geo.Coordinates{Lat: destLat, Lng: destLng})
	s.PickupAt = s.PickupAt.UTC()
	s.Cargo = booking.ReconstructCargo(cargoDescription, cargoWeight, volume, cargoCategory)
	s.Shipper = booking.ReconstructContact(shipperName, shipperPhone)
	s.Receiver = booking.ReconstructContact(receiverName, receiverPhone)
	s.Type = booking.Type(bookingType)
	s.Status = booking.Status(status)

	var discount *booking.Money
	if d := pgconv.Int64PtrFromPgtype(fareDiscount); d != nil {
		m := booking.NewMoney(*d)
		discount = &m
	}
	s.Fare = booking.ReconstructFare(booking.NewMoney(fareTotal), discount, booking.NewMoney(fareFinal))

	s.Timeline = booking.Timeline{
		AssignedAt:       pgconv.TimePtrFromPgtype(assignedAt),
		AcceptedAt:       pgconv.TimePtrFromPgtype(acceptedAt),
		ReachedAt:        pgconv.TimePtrFromPgtype(reachedAt),
		LoadingStartedAt: pgconv.TimePtrFromPgtype(loadingAt),
		InTransitAt:      pgconv.TimePtrFromPgtype(transitAt),
		DeliveredAt:      pgconv.TimePtrFromPgtype(deliveredAt),
		CompletedAt:      pgconv.TimePtrFromPgtype(completedAt),
		CancelledAt:      pgconv.TimePtrFromPgtype(cancelledAt),
	}
	s.CancellationReason = pgconv.StringPtrFromPgtype(cancelReason)
	s.PickupPhotoRef = pgconv.StringPtrFromPgtype(photoRef)
	if lat != nil && lng != nil {
		s.ReachedCoordinates = &geo.Coordinates{Lat: *lat, Lng: *lng}
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()

	return booking.Reconstruct(s), nil
}
