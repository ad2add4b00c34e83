package services

import (
	"errors"
	"fmt"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/ports"
)

// AssignSitesToDepots partitions the sites that need cleaning by nearest depot.
//
// Each site goes to exactly one depot; on equal distance the depot listed first
// wins. Sites keep their input order within a partition so every drone's route
// remains deterministic. This is a planning shortcut, not a balanced VRP split.
func AssignSitesToDepots(
	sites []domain.PanelSite,
	depots []domain.Point,
	provider ports.DistanceProvider,
) ([][]domain.PanelSite, error) {
	if len(depots) == 0 {
		return nil, errors.New("assign sites: depot list must not be empty")
	}
	if provider == nil {
		return nil, errors.New("assign sites: distance provider must be non-nil")
	}
	for i, d := range depots {
		if err := d.Validate(fmt.Sprintf("depots[%d]", i)); err != nil {
			return nil, fmt.Errorf("assign sites: %w", err)
		}
	}

	groups := make([][]domain.PanelSite, len(depots))
	for i := range groups {
		groups[i] = []domain.PanelSite{}
	}

	for _, s := range domain.DirtySites(sites) {
		if err := s.Point.Validate("site " + s.ID); err != nil {
			return nil, fmt.Errorf("assign sites: %w", err)
		}

		best := 0
		bestDist := provider.DistanceKm(depots[0], s.Point)
		for i := 1; i < len(depots); i++ {
			if d := provider.DistanceKm(depots[i], s.Point); d < bestDist {
				best, bestDist = i, d
			}
		}
		groups[best] = append(groups[best], s)
	}

	return groups, nil
}
