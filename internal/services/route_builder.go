package services

import (
	"errors"
	"fmt"
	"math"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/geo"
	"solar-cleaning-service/internal/ports"
)

// DefaultSpeedMetersPerSecond is the assumed drone cruise speed.
const DefaultSpeedMetersPerSecond = 15.0

// RouteBuilder plans cleaning routes over panel sites.
// Distance defaults to great-circle distance when nil.
type RouteBuilder struct {
	Distance             ports.DistanceProvider
	SpeedMetersPerSecond float64
}

func NewRouteBuilder(provider ports.DistanceProvider, speedMPS float64) *RouteBuilder {
	if provider == nil {
		provider = geo.Haversine{}
	}
	if speedMPS == 0 {
		speedMPS = DefaultSpeedMetersPerSecond
	}
	return &RouteBuilder{Distance: provider, SpeedMetersPerSecond: speedMPS}
}

// BuildRoute plans a cleaning route using a greedy nearest-neighbor algorithm.
//
// Only sites that need cleaning are visited. At each step the closest unvisited
// site is chosen; on equal distance the site listed first wins. The route closes
// with a return leg to the depot. It does not attempt global optimization.
func (b *RouteBuilder) BuildRoute(sites []domain.PanelSite, depot domain.Point) (*domain.Route, error) {
	eligible, err := b.prepare("build route", sites, depot)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return emptyRoute(depot), nil
	}

	remaining := make([]domain.PanelSite, len(eligible))
	copy(remaining, eligible)

	current := depot
	stops := make([]domain.RouteStop, 0, len(eligible))
	total := 0.0

	for len(remaining) > 0 {
		bestIdx := -1
		minDist := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		for i, s := range remaining {
			d, err := b.distance(current, s.Point)
			if err != nil {
				return nil, fmt.Errorf("build route: %w", err)
			}
			// Strict comparison keeps the earliest site on ties.
			if d < minDist {
				minDist = d
				bestIdx = i
			}
		}

		if bestIdx < 0 {
			return nil, errors.New("build route: failed to select next site")
		}
		best := remaining[bestIdx]

		stops = append(stops, domain.RouteStop{
			SiteID:        best.ID,
			Point:         best.Point,
			LegDistanceKm: minDist,
		})
		total += minDist
		current = best.Point

		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return b.closeRoute("build route", depot, current, stops, total)
}

// BuildBaselineRoute flies the sites that need cleaning in input order.
// It is the unoptimized reference the nearest-neighbor route is compared with.
func (b *RouteBuilder) BuildBaselineRoute(sites []domain.PanelSite, depot domain.Point) (*domain.Route, error) {
	eligible, err := b.prepare("build baseline route", sites, depot)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return emptyRoute(depot), nil
	}

	current := depot
	stops := make([]domain.RouteStop, 0, len(eligible))
	total := 0.0
	for _, s := range eligible {
		d, err := b.distance(current, s.Point)
		if err != nil {
			return nil, fmt.Errorf("build baseline route: %w", err)
		}
		stops = append(stops, domain.RouteStop{SiteID: s.ID, Point: s.Point, LegDistanceKm: d})
		total += d
		current = s.Point
	}

	return b.closeRoute("build baseline route", depot, current, stops, total)
}

// BuildAndCompare builds the optimized route and its input-order baseline.
func (b *RouteBuilder) BuildAndCompare(sites []domain.PanelSite, depot domain.Point) (*domain.RouteComparison, error) {
	optimized, err := b.BuildRoute(sites, depot)
	if err != nil {
		return nil, err
	}
	baseline, err := b.BuildBaselineRoute(sites, depot)
	if err != nil {
		return nil, err
	}
	return CompareRoutes(baseline, optimized), nil
}

func (b *RouteBuilder) prepare(op string, sites []domain.PanelSite, depot domain.Point) ([]domain.PanelSite, error) {
	if b.Distance == nil {
		return nil, fmt.Errorf("%s: distance provider must be non-nil", op)
	}
	speed := b.SpeedMetersPerSecond
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed <= 0 {
		return nil, fmt.Errorf("%s: %w", op, domain.Invalid("speed_mps", "must be a positive finite number, got %v", speed))
	}
	if err := depot.Validate("depot"); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	eligible := domain.DirtySites(sites)
	for _, s := range eligible {
		if err := s.Point.Validate("site " + s.ID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}
	return eligible, nil
}

func (b *RouteBuilder) distance(from, to domain.Point) (float64, error) {
	d := b.Distance.DistanceKm(from, to)
	if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
		return 0, fmt.Errorf("distance provider returned %v between %v and %v", d, from, to)
	}
	return d, nil
}

// closeRoute adds the return leg to the depot and derives the flight time.
func (b *RouteBuilder) closeRoute(
	op string,
	depot, last domain.Point,
	stops []domain.RouteStop,
	total float64,
) (*domain.Route, error) {
	back, err := b.distance(last, depot)
	if err != nil {
		return nil, fmt.Errorf("%s: return leg: %w", op, err)
	}
	total += back

	return &domain.Route{
		Depot:                depot,
		Stops:                stops,
		ReturnLegKm:          back,
		TotalDistanceKm:      total,
		EstimatedTimeMinutes: total * 1000 / b.SpeedMetersPerSecond / 60,
	}, nil
}

func emptyRoute(depot domain.Point) *domain.Route {
	return &domain.Route{
		Depot: depot,
		Stops: []domain.RouteStop{},
	}
}
