package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"solar-cleaning-service/internal/domain"
	"strings"
)

// Initialize the Postgres database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPanelSitesQuery := `
	CREATE TABLE IF NOT EXISTS panel_sites (
		site_id TEXT PRIMARY KEY,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('clean', 'moderate', 'dirty'))
	);
	`

	createRouteRunsQuery := `
	CREATE TABLE IF NOT EXISTS route_runs (
		id UUID PRIMARY KEY,
		depot_lat DOUBLE PRECISION NOT NULL,
		depot_lng DOUBLE PRECISION NOT NULL,
		stops JSONB NOT NULL,
		panel_count INTEGER NOT NULL,
		total_distance_km DOUBLE PRECISION NOT NULL,
		estimated_minutes DOUBLE PRECISION NOT NULL,
		baseline_distance_km DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`

	createAssessmentsQuery := `
	CREATE TABLE IF NOT EXISTS roi_assessments (
		id UUID PRIMARY KEY,
		cleaning_cost DOUBLE PRECISION NOT NULL,
		days_since_cleaning DOUBLE PRECISION NOT NULL,
		soiling_loss_percent DOUBLE PRECISION NOT NULL,
		revenue_recovered DOUBLE PRECISION NOT NULL,
		roi_percent DOUBLE PRECISION NOT NULL,
		payback_days INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createPlanCacheQuery := `
	CREATE TABLE IF NOT EXISTS plan_cache (
		cache_key TEXT PRIMARY KEY,
		payload BYTEA NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_route_runs_created_at
	ON route_runs(created_at);
	`

	statements := []string{
		createPanelSitesQuery,
		createRouteRunsQuery,
		createAssessmentsQuery,
		createPlanCacheQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type SiteSeed struct {
	SiteID string  `json:"site_id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

// ParseSiteSeeds validates seed rows and converts them to panel sites.
func ParseSiteSeeds(data []SiteSeed) ([]domain.PanelSite, error) {
	sites := make([]domain.PanelSite, 0, len(data))
	seen := make(map[string]struct{}, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.SiteID)
		if id == "" {
			return nil, fmt.Errorf("item at index %d: site_id cannot be empty", i+1)
		}
		if _, ok := seen[id]; ok {
			return nil, fmt.Errorf("item at index %d: duplicate site_id %q", i+1, id)
		}
		seen[id] = struct{}{}

		status, err := domain.ParseSiteStatus(item.Status)
		if err != nil {
			return nil, fmt.Errorf("item at index %d: %w", i+1, err)
		}

		p := domain.Point{Lat: item.Lat, Lng: item.Lng}
		if err := p.Validate(id); err != nil {
			return nil, fmt.Errorf("item at index %d: %w", i+1, err)
		}
		sites = append(sites, domain.PanelSite{ID: id, Point: p, Status: status})
	}
	return sites, nil
}

// Populate the database with panel site data from a JSON file.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed sites: read %q: %w", jsonPath, err)
	}

	var data []SiteSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed sites: parse json: %w", err)
	}

	sites, err := ParseSiteSeeds(data)
	if err != nil {
		return fmt.Errorf("seed sites: %w", err)
	}

	return UpsertSites(ctx, db, sites)
}

// UpsertSites inserts or replaces panel sites in one transaction.
func UpsertSites(ctx context.Context, db *sql.DB, sites []domain.PanelSite) error {
	if db == nil {
		return errors.New("upsert sites: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert sites: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO panel_sites (
		site_id,
		lat,
		lng,
		status
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (site_id) DO UPDATE
	SET lat = EXCLUDED.lat,
		lng = EXCLUDED.lng,
		status = EXCLUDED.status;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert sites: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range sites {
		if _, err := stmt.ExecContext(ctx, s.ID, s.Point.Lat, s.Point.Lng, string(s.Status)); err != nil {
			return fmt.Errorf("upsert sites: insert site_id=%s: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert sites: commit tx: %w", err)
	}

	return nil
}
