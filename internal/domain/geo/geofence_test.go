//go:build unit

package geo_test

import (
	"math"
	"testing"

	"freight-core/internal/domain/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var riyadh = geo.Coordinates{Lat: 24.7136, Lng: 46.6753}

func TestDistanceKm(t *testing.T) {
	cases := []struct {
		name string
		a, b geo.Coordinates
		want float64
		tol  float64
	}{
		{name: "same point", a: riyadh, b: riyadh, want: 0, tol: 1e-9},
		{name: "riyadh to jeddah", a: riyadh, b: geo.Coordinates{Lat: 21.4858, Lng: 39.1925}, want: 845.1, tol: 0.5},
		{name: "one degree of latitude", a: geo.Coordinates{Lat: 0, Lng: 0}, b: geo.Coordinates{Lat: 1, Lng: 0}, want: 111.19, tol: 0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, geo.DistanceKm(tc.a, tc.b), tc.tol)
			assert.InDelta(t, geo.DistanceKm(tc.a, tc.b), geo.DistanceKm(tc.b, tc.a), 1e-9)
		})
	}
}

func TestGeofence(t *testing.T) {
	fence := geo.NewGeofence(0.5)

	t.Run("inside the radius", func(t *testing.T) {
		reported := geo.Coordinates{Lat: riyadh.Lat + 0.004, Lng: riyadh.Lng}
		res := fence.Validate(riyadh, reported)
		assert.True(t, res.Within)
		assert.InDelta(t, 0.44, res.DistanceKm, 0.01)
		assert.Equal(t, "driver is 0.44 km from pickup location", res.Message())
	})

	t.Run("outside the radius", func(t *testing.T) {
		reported := geo.Coordinates{Lat: riyadh.Lat + 0.005, Lng: riyadh.Lng}
		res := fence.Validate(riyadh, reported)
		assert.False(t, res.Within)
		assert.Equal(t, "driver is 0.56 km from pickup location (max 0.50 km)", res.Message())
	})

	t.Run("several kilometres away across town", func(t *testing.T) {
		reported := geo.Coordinates{Lat: 24.7736, Lng: 46.7353}
		res := fence.Validate(riyadh, reported)
		assert.False(t, res.Within)
		assert.InDelta(t, 9.01, res.DistanceKm, 0.01)
		assert.Equal(t, "driver is 9.01 km from pickup location (max 0.50 km)", res.Message())
	})

	t.Run("exact pickup point", func(t *testing.T) {
		res := fence.Validate(riyadh, riyadh)
		assert.True(t, res.Within)
		assert.Zero(t, res.DistanceKm)
	})

	t.Run("non-positive radius falls back to the default", func(t *testing.T) {
		assert.Equal(t, geo.DefaultGeofenceRadiusKm, geo.NewGeofence(0).RadiusKm())
		assert.Equal(t, geo.DefaultGeofenceRadiusKm, geo.NewGeofence(-3).RadiusKm())
	})
}

func TestCoordinatesAndLocation(t *testing.T) {
	_, err := geo.NewCoordinates(90, 180)
	assert.NoError(t, err)
	_, err = geo.NewCoordinates(-90.0001, 0)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinates)
	_, err = geo.NewCoordinates(0, 180.5)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinates)
	_, err = geo.NewCoordinates(math.NaN(), 0)
	assert.ErrorIs(t, err, geo.ErrInvalidCoordinates)

	loc, err := geo.NewLocation("  Olaya St ", " Riyadh ", riyadh)
	require.NoError(t, err)
	assert.Equal(t, "Olaya St", loc.Address())
	assert.Equal(t, "Riyadh", loc.City())

	_, err = geo.NewLocation("Olaya St", "   ", riyadh)
	assert.ErrorIs(t, err, geo.ErrCityRequired)
}

func TestCityDistanceKm(t *testing.T) {
	dir := geo.NewDefaultCityDirectory()

	d, ok := geo.CityDistanceKm(dir, "riyadh", " JEDDAH ")
	assert.True(t, ok)
	assert.InDelta(t, 845.1, d, 0.5)

	d, ok = geo.CityDistanceKm(dir, "Atlantis", "Atlantis")
	assert.True(t, ok)
	assert.Zero(t, d)

	_, ok = geo.CityDistanceKm(dir, "Riyadh", "Atlantis")
	assert.False(t, ok)
}
