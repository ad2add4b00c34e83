package dto

import (
	"math"
	"solar-cleaning-service/internal/domain"
	"time"
)

type RouteRequest struct {
	Depot *PointRequest `json:"depot"`
	Sites []SiteRequest `json:"sites"`
}

type FleetRequest struct {
	Depots []PointRequest `json:"depots"`
	Sites  []SiteRequest  `json:"sites"`
}

type RouteStopResponse struct {
	SiteID        string  `json:"site_id"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	LegDistanceKm float64 `json:"leg_distance_km"`
}

// Distances are rounded to metres and times to whole minutes for display.
type RouteResponse struct {
	Depot                domain.Point        `json:"depot"`
	Stops                []RouteStopResponse `json:"stops"`
	Path                 [][2]float64        `json:"path"`
	TotalDistanceKm      float64             `json:"total_distance_km"`
	EstimatedTimeMinutes int                 `json:"estimated_time_minutes"`
}

type ComparisonResponse struct {
	BaselineDistanceKm    float64 `json:"baseline_distance_km"`
	OptimizedDistanceKm   float64 `json:"optimized_distance_km"`
	DistanceSavedKm       float64 `json:"distance_saved_km"`
	TimeSavedMinutes      int     `json:"time_saved_minutes"`
	TimeSavingsPercent    int     `json:"time_savings_percent"`
	BatterySavingsPercent int     `json:"battery_savings_percent"`
}

type PlanResponse struct {
	ID         string             `json:"id,omitempty"`
	PanelCount int                `json:"panel_count"`
	Route      RouteResponse      `json:"route"`
	Comparison ComparisonResponse `json:"comparison"`
	CreatedAt  time.Time          `json:"created_at"`
}

type FleetResponse struct {
	Plans []PlanResponse `json:"plans"`
}

func roundKm(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func NewRouteResponse(r *domain.Route) RouteResponse {
	res := RouteResponse{
		Depot:                r.Depot,
		Stops:                make([]RouteStopResponse, 0, len(r.Stops)),
		Path:                 make([][2]float64, 0, len(r.Stops)+2),
		TotalDistanceKm:      roundKm(r.TotalDistanceKm),
		EstimatedTimeMinutes: int(math.Round(r.EstimatedTimeMinutes)),
	}
	for _, s := range r.Stops {
		res.Stops = append(res.Stops, RouteStopResponse{
			SiteID:        s.SiteID,
			Lat:           s.Point.Lat,
			Lng:           s.Point.Lng,
			LegDistanceKm: roundKm(s.LegDistanceKm),
		})
	}
	for _, p := range r.Path() {
		res.Path = append(res.Path, [2]float64{p.Lat, p.Lng})
	}
	return res
}

func NewPlanResponse(p *domain.CleaningPlan) PlanResponse {
	res := PlanResponse{
		ID:         p.ID,
		PanelCount: p.PanelCount,
		Route:      NewRouteResponse(p.Route),
		CreatedAt:  p.CreatedAt,
	}
	if c := p.Comparison; c != nil && c.Baseline != nil && c.Optimized != nil {
		res.Comparison = ComparisonResponse{
			BaselineDistanceKm:    roundKm(c.Baseline.TotalDistanceKm),
			OptimizedDistanceKm:   roundKm(c.Optimized.TotalDistanceKm),
			DistanceSavedKm:       roundKm(c.DistanceSavedKm),
			TimeSavedMinutes:      int(math.Round(c.TimeSavedMinutes)),
			TimeSavingsPercent:    c.TimeSavedPercent,
			BatterySavingsPercent: c.BatterySavedPercent,
		}
	}
	return res
}
