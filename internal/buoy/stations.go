package buoy

import (
	"math"
	"sort"
	"strings"
)

// DefaultStations returns the San Diego county buoys the service tracks.
func DefaultStations() []Station {
	return []Station{
		{ID: "Scripps", Name: "Scripps Pier", NDBCID: "46254", Latitude: 32.868, Longitude: -117.267},
		{ID: "Torrey_Pines", Name: "Torrey Pines Outer", NDBCID: "46273", Latitude: 32.928, Longitude: -117.281},
		{ID: "Del_Mar", Name: "Del Mar Nearshore", NDBCID: "46266", Latitude: 32.957, Longitude: -117.279},
		{ID: "Imperial_Beach", Name: "Imperial Beach Nearshore", NDBCID: "46235", Latitude: 32.570, Longitude: -117.169},
	}
}

// Registry is the fixed set of stations the service knows about.
// Identifiers are matched case-insensitively.
type Registry struct {
	stations []Station
	byID     map[string]Station
}

// NewRegistry indexes the given stations for lookup.
func NewRegistry(stations []Station) *Registry {
	r := &Registry{
		stations: make([]Station, len(stations)),
		byID:     make(map[string]Station, len(stations)),
	}
	copy(r.stations, stations)
	for _, st := range stations {
		r.byID[strings.ToLower(st.ID)] = st
	}
	return r
}

// Lookup resolves a station identifier, ignoring case.
func (r *Registry) Lookup(id string) (Station, bool) {
	st, ok := r.byID[strings.ToLower(id)]
	return st, ok
}

// All returns the stations in registration order.
func (r *Registry) All() []Station {
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// IDs returns the canonical station identifiers, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.stations))
	for _, st := range r.stations {
		ids = append(ids, st.ID)
	}
	sort.Strings(ids)
	return ids
}

// Nearest returns the station closest to the given coordinates and the
// great-circle distance to it in kilometers.
func (r *Registry) Nearest(lat, lon float64) (Station, float64) {
	var best Station
	bestKm := math.MaxFloat64
	for _, st := range r.stations {
		if d := haversineKm(lat, lon, st.Latitude, st.Longitude); d < bestKm {
			best, bestKm = st, d
		}
	}
	return best, bestKm
}

const earthRadiusKm = 6371.0

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a))
}
