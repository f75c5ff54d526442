package geo

import "strings"

// CityDirectory resolves a city name to a representative coordinate.
type CityDirectory interface {
	Lookup(city string) (Coordinates, bool)
}

type StaticCityDirectory struct {
	cities map[string]Coordinates
}

func NewStaticCityDirectory(cities map[string]Coordinates) *StaticCityDirectory {
	normalized := make(map[string]Coordinates, len(cities))
	for name, c := range cities {
		normalized[normalizeCity(name)] = c
	}
	return &StaticCityDirectory{cities: normalized}
}

// NewDefaultCityDirectory covers the main freight hubs served by the marketplace.
func NewDefaultCityDirectory() *StaticCityDirectory {
	return NewStaticCityDirectory(map[string]Coordinates{
		"Riyadh":   {Lat: 24.7136, Lng: 46.6753},
		"Jeddah":   {Lat: 21.4858, Lng: 39.1925},
		"Mecca":    {Lat: 21.3891, Lng: 39.8579},
		"Medina":   {Lat: 24.5247, Lng: 39.5692},
		"Dammam":   {Lat: 26.4207, Lng: 50.0888},
		"Khobar":   {Lat: 26.2172, Lng: 50.1971},
		"Jubail":   {Lat: 27.0046, Lng: 49.6460},
		"Tabuk":    {Lat: 28.3835, Lng: 36.5662},
		"Abha":     {Lat: 18.2164, Lng: 42.5053},
		"Buraidah": {Lat: 26.3592, Lng: 43.9818},
		"Hail":     {Lat: 27.5114, Lng: 41.7208},
		"Taif":     {Lat: 21.2703, Lng: 40.4158},
		"Jazan":    {Lat: 16.8894, Lng: 42.5706},
		"Najran":   {Lat: 17.4917, Lng: 44.1322},
	})
}

func (d *StaticCityDirectory) Lookup(city string) (Coordinates, bool) {
	c, ok := d.cities[normalizeCity(city)]
	return c, ok
}

// CityDistanceKm returns the distance between two cities; ok is false when either is unknown.
func CityDistanceKm(dir CityDirectory, from, to string) (float64, bool) {
	if SameCity(from, to) {
		return 0, true
	}
	a, ok := dir.Lookup(from)
	if !ok {
		return 0, false
	}
	b, ok := dir.Lookup(to)
	if !ok {
		return 0, false
	}
	return DistanceKm(a, b), true
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
