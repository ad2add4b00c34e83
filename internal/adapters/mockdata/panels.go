package mockdata

import (
	"fmt"
	"math"
	"math/rand/v2"
	"solar-cleaning-service/internal/domain"
)

const (
	DefaultPanelCount = 300
	DefaultRadiusKm   = 5.0
	kmPerDegree       = 111.0
	// Jitter applied to each grid position, in degrees.
	jitterDegrees = 0.005
)

// DefaultCenter is the field centre used when none is configured.
var DefaultCenter = domain.Point{Lat: 12.9716, Lng: 77.5946}

// GeneratePanels lays count panels on a jittered square grid spanning
// radiusKm around center. Statuses are 70% clean, 20% moderate and 10% dirty,
// shuffled; rounding leftovers are clean. IDs run SP-0001, SP-0002, ...
// The same rng state produces the same field.
func GeneratePanels(count int, center domain.Point, radiusKm float64, rng *rand.Rand) ([]domain.PanelSite, error) {
	if count < 0 {
		return nil, domain.Invalid("count", "must be >= 0, got %d", count)
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm < 0 {
		return nil, domain.Invalid("radius_km", "must be a non-negative number, got %v", radiusKm)
	}
	if err := center.Validate("center"); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("generate panels: rng must be non-nil")
	}

	statuses := statusDistribution(count)
	rng.Shuffle(len(statuses), func(i, j int) {
		statuses[i], statuses[j] = statuses[j], statuses[i]
	})

	panels := make([]domain.PanelSite, 0, count)
	if count == 0 {
		return panels, nil
	}

	gridSize := int(math.Ceil(math.Sqrt(float64(count))))
	span := radiusKm / kmPerDegree

	for i := 0; i < count; i++ {
		row := i / gridSize
		col := i % gridSize

		latOffset := (float64(row)/float64(gridSize)-0.5)*span + (rng.Float64()-0.5)*jitterDegrees
		lngOffset := (float64(col)/float64(gridSize)-0.5)*span + (rng.Float64()-0.5)*jitterDegrees

		status := domain.StatusClean
		if i < len(statuses) {
			status = statuses[i]
		}

		panels = append(panels, domain.PanelSite{
			ID:     fmt.Sprintf("SP-%04d", i+1),
			Point:  domain.Point{Lat: center.Lat + latOffset, Lng: center.Lng + lngOffset},
			Status: status,
		})
	}

	return panels, nil
}

func statusDistribution(count int) []domain.SiteStatus {
	clean := count * 7 / 10
	moderate := count * 2 / 10
	dirty := count / 10

	out := make([]domain.SiteStatus, 0, clean+moderate+dirty)
	for range clean {
		out = append(out, domain.StatusClean)
	}
	for range moderate {
		out = append(out, domain.StatusModerate)
	}
	for range dirty {
		out = append(out, domain.StatusDirty)
	}
	return out
}
