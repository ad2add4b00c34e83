// Package geo holds great-circle distance helpers.
package geo

import (
	"math"
	"solar-cleaning-service/internal/domain"
)

// EarthRadiusKm is the WGS84 mean radius.
const EarthRadiusKm = 6371.0

// HaversineKm returns the great-circle distance in kilometers between two
// points given in degrees.
func HaversineKm(a, b domain.Point) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }

// Haversine implements ports.DistanceProvider with great-circle distance.
type Haversine struct{}

func (Haversine) DistanceKm(from, to domain.Point) float64 { return HaversineKm(from, to) }
