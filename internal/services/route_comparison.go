package services

import (
	"math"
	"solar-cleaning-service/internal/domain"
)

// Battery draw grows slightly faster than flight time.
const batteryPerTimeFactor = 1.1

// CompareRoutes reports the savings of optimized over baseline.
// Percentages are rounded to the nearest integer and are zero when the
// baseline has no distance.
func CompareRoutes(baseline, optimized *domain.Route) *domain.RouteComparison {
	c := &domain.RouteComparison{
		Baseline:  baseline,
		Optimized: optimized,
	}
	if baseline == nil || optimized == nil {
		return c
	}

	c.DistanceSavedKm = baseline.TotalDistanceKm - optimized.TotalDistanceKm
	c.TimeSavedMinutes = baseline.EstimatedTimeMinutes - optimized.EstimatedTimeMinutes

	if baseline.TotalDistanceKm > 0 {
		pct := math.Round(c.DistanceSavedKm / baseline.TotalDistanceKm * 100)
		c.TimeSavedPercent = int(pct)
		c.BatterySavedPercent = int(math.Round(pct * batteryPerTimeFactor))
	}
	return c
}
