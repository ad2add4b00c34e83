package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/domain"
)

// Postgres-backed implementation of the SiteRepository port.
type PostgresSiteRepository struct{ DB *sql.DB }

func NewPostgresSiteRepository(db *sql.DB) *PostgresSiteRepository {
	return &PostgresSiteRepository{DB: db}
}

// Return all panel sites stored in the database, ordered by id.
func (s *PostgresSiteRepository) ListSites(ctx context.Context) ([]domain.PanelSite, error) {
	if s.DB == nil {
		return nil, errors.New("postgres site repository: DB is nil")
	}

	query := `
	SELECT
		site_id,
		lat,
		lng,
		status
	FROM panel_sites
	ORDER BY site_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list sites: query panel_sites table: %w", err)
	}
	defer rows.Close()

	sites := make([]domain.PanelSite, 0, 64)
	for rows.Next() {
		var (
			id, status string
			lat, lng   float64
		)
		if err := rows.Scan(&id, &lat, &lng, &status); err != nil {
			return nil, fmt.Errorf("list sites: scan row: %w", err)
		}

		st, err := domain.ParseSiteStatus(status)
		if err != nil {
			return nil, fmt.Errorf("list sites: site_id=%s: %w", id, err)
		}
		sites = append(sites, domain.PanelSite{
			ID:     id,
			Point:  domain.Point{Lat: lat, Lng: lng},
			Status: st,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sites: row iteration: %w", err)
	}

	return sites, nil
}
