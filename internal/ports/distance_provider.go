package ports

import "solar-cleaning-service/internal/domain"

// Contract for measuring distance between two coordinates.
type DistanceProvider interface {
	// Return the distance in kilometers between two points.
	DistanceKm(from, to domain.Point) float64
}
