package ports

import (
	"context"
	"solar-cleaning-service/internal/domain"
)

// Port: a boundary for retrieving PanelSite entities from a data source.
type SiteRepository interface {
	// Retrieve all panel sites known to the field.
	ListSites(ctx context.Context) ([]domain.PanelSite, error)
}
