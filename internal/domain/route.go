package domain

import "time"

// Represents a single visit in a cleaning route.
// LegDistanceKm is the distance flown from the previous position to this site.
type RouteStop struct {
	SiteID        string
	Point         Point
	LegDistanceKm float64
}

// Represents the planned cleaning route for a single drone.
// A Route begins and ends at Depot; Stops holds the visited sites in order.
// It is immutable planning data: each build produces a new value.
type Route struct {
	Depot                Point
	Stops                []RouteStop
	ReturnLegKm          float64
	TotalDistanceKm      float64
	EstimatedTimeMinutes float64
}

// Path returns the full flight path depot -> stops -> depot.
// A route without stops has an empty path.
func (r *Route) Path() []Point {
	if len(r.Stops) == 0 {
		return []Point{}
	}

	path := make([]Point, 0, len(r.Stops)+2)
	path = append(path, r.Depot)
	for _, s := range r.Stops {
		path = append(path, s.Point)
	}
	path = append(path, r.Depot)
	return path
}

// RouteComparison reports how a nearest-neighbour route performs against the
// unoptimised baseline (sites flown in input order).
type RouteComparison struct {
	Baseline            *Route
	Optimized           *Route
	DistanceSavedKm     float64
	TimeSavedMinutes    float64
	TimeSavedPercent    int
	BatterySavedPercent int
}

// CleaningPlan is the persisted outcome of a single planning request.
type CleaningPlan struct {
	ID         string
	Route      *Route
	Comparison *RouteComparison
	PanelCount int
	CreatedAt  time.Time
}
