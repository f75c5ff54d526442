package sharedload

import (
	"sort"
	"time"

	"freight-core/internal/domain/event"
	"freight-core/internal/pkg/errs"

	"github.com/google/uuid"
)

type PackRequest struct {
	BookingID       uuid.UUID
	Route           Route
	Load            Load
	VehicleCapacity float64
	VehicleVolume   *float64
}

type PackResult struct {
	Pool   *Pool
	IsNew  bool
	Events []event.Event
}

// Pack places the request into the first open pool (oldest first) with
// enough room, or opens a new pool sized to the vehicle capacity.
func Pack(candidates []*Pool, req PackRequest, now time.Time) (PackResult, error) {
	if req.VehicleCapacity <= 0 {
		return PackResult{}, ErrInvalidCapacity
	}
	if req.Load.grams() > toGrams(req.VehicleCapacity) {
		return PackResult{}, errs.Wrapf(ErrExceedsCapacity, "requested %.2f kg, vehicle capacity %.2f kg", req.Load.WeightKg, req.VehicleCapacity)
	}
	if req.VehicleVolume != nil && req.Load.VolumeM3 != nil && req.Load.cm3() > toCm3(*req.VehicleVolume) {
		return PackResult{}, errs.Wrapf(ErrExceedsCapacity, "requested %.2f m3, vehicle volume %.2f m3", *req.Load.VolumeM3, *req.VehicleVolume)
	}

	ordered := append([]*Pool(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt().Before(ordered[j].CreatedAt())
	})

	for _, p := range ordered {
		if p.Status() != StatusOpen || !p.Route().Matches(req.Route) || !p.Fits(req.Load) {
			continue
		}
		events, err := p.Add(req.BookingID, req.Load, now)
		if err != nil {
			return PackResult{}, err
		}
		return PackResult{Pool: p, Events: events}, nil
	}

	p, err := NewPool(req.Route, req.VehicleCapacity, req.VehicleVolume, now)
	if err != nil {
		return PackResult{}, err
	}
	events, err := p.Add(req.BookingID, req.Load, now)
	if err != nil {
		return PackResult{}, err
	}
	return PackResult{Pool: p, IsNew: true, Events: events}, nil
}
