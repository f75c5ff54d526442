package geo

import "fmt"

const DefaultGeofenceRadiusKm = 0.5

type GeofenceResult struct {
	Within     bool
	DistanceKm float64
	RadiusKm   float64
}

// Message is the human-readable outcome, distance rounded to two decimals.
func (r GeofenceResult) Message() string {
	if r.Within {
		return fmt.Sprintf("driver is %.2f km from pickup location", r.DistanceKm)
	}
	return fmt.Sprintf("driver is %.2f km from pickup location (max %.2f km)", r.DistanceKm, r.RadiusKm)
}

type Geofence struct {
	radiusKm float64
}

func NewGeofence(radiusKm float64) *Geofence {
	if radiusKm <= 0 {
		radiusKm = DefaultGeofenceRadiusKm
	}
	return &Geofence{radiusKm: radiusKm}
}

func (g *Geofence) RadiusKm() float64 { return g.radiusKm }

func (g *Geofence) Validate(pickup, reported Coordinates) GeofenceResult {
	d := DistanceKm(pickup, reported)
	return GeofenceResult{
		Within:     d <= g.radiusKm,
		DistanceKm: d,
		RadiusKm:   g.radiusKm,
	}
}
