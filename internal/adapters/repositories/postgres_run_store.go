package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"

	"github.com/google/uuid"
)

// Postgres-backed implementation of the RunStore port.
type PostgresRunStore struct{ DB *sql.DB }

func NewPostgresRunStore(db *sql.DB) *PostgresRunStore {
	return &PostgresRunStore{DB: db}
}

type storedStop struct {
	SiteID        string  `json:"site_id"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	LegDistanceKm float64 `json:"leg_distance_km"`
}

// SavePlan records a cleaning plan with its stops as JSONB.
func (s *PostgresRunStore) SavePlan(ctx context.Context, plan *domain.CleaningPlan) (_ string, err error) {
	defer obs.Time(ctx, "run_store.SavePlan")(&err)

	if s.DB == nil {
		return "", errors.New("postgres run store: DB is nil")
	}
	if plan == nil || plan.Route == nil {
		return "", errors.New("save plan: plan and route must be non-nil")
	}

	stops := make([]storedStop, 0, len(plan.Route.Stops))
	for _, st := range plan.Route.Stops {
		stops = append(stops, storedStop{
			SiteID:        st.SiteID,
			Lat:           st.Point.Lat,
			Lng:           st.Point.Lng,
			LegDistanceKm: st.LegDistanceKm,
		})
	}
	stopsJSON, err := json.Marshal(stops)
	if err != nil {
		return "", fmt.Errorf("save plan: encode stops: %w", err)
	}

	baseline := plan.Route.TotalDistanceKm
	if plan.Comparison != nil && plan.Comparison.Baseline != nil {
		baseline = plan.Comparison.Baseline.TotalDistanceKm
	}

	id := uuid.New().String()
	query := `
	INSERT INTO route_runs (
		id,
		depot_lat,
		depot_lng,
		stops,
		panel_count,
		total_distance_km,
		estimated_minutes,
		baseline_distance_km,
		created_at
	)
	VALUES ($1, $2, $3, $4::jsonb, $5, $6, $7, $8, $9);
	`
	_, err = s.DB.ExecContext(ctx, query,
		id,
		plan.Route.Depot.Lat,
		plan.Route.Depot.Lng,
		string(stopsJSON),
		plan.PanelCount,
		plan.Route.TotalDistanceKm,
		plan.Route.EstimatedTimeMinutes,
		baseline,
		plan.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("save plan: insert route_runs: %w", err)
	}

	return id, nil
}

// SaveAssessment records an ROI assessment. Unreachable payback is stored as NULL.
func (s *PostgresRunStore) SaveAssessment(ctx context.Context, a ports.ROIAssessment) (_ string, err error) {
	defer obs.Time(ctx, "run_store.SaveAssessment")(&err)

	if s.DB == nil {
		return "", errors.New("postgres run store: DB is nil")
	}
	if a.Result == nil {
		return "", errors.New("save assessment: result must be non-nil")
	}

	var payback sql.NullInt64
	if a.Result.PaybackReachable {
		payback = sql.NullInt64{Int64: int64(a.Result.PaybackPeriodDays), Valid: true}
	}

	id := uuid.New().String()
	query := `
	INSERT INTO roi_assessments (
		id,
		cleaning_cost,
		days_since_cleaning,
		soiling_loss_percent,
		revenue_recovered,
		roi_percent,
		payback_days
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = s.DB.ExecContext(ctx, query,
		id,
		a.CleaningCost,
		a.DaysSinceCleaning,
		a.Result.SoilingLossPercent,
		a.Result.RevenueRecovered,
		a.Result.ROIPercent,
		payback,
	)
	if err != nil {
		return "", fmt.Errorf("save assessment: insert roi_assessments: %w", err)
	}

	return id, nil
}
