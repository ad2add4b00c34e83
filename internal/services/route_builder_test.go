package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"reflect"
	"solar-cleaning-service/internal/adapters/distance"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/geo"
	"testing"
)

func dirty(id string, lat, lng float64) domain.PanelSite {
	return domain.PanelSite{ID: id, Point: domain.Point{Lat: lat, Lng: lng}, Status: domain.StatusDirty}
}

func stopIDs(r *domain.Route) []string {
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		ids = append(ids, s.SiteID)
	}
	return ids
}

func TestBuildRouteVisitsNearestFirst(t *testing.T) {
	depot := domain.Point{Lat: 0, Lng: 0}
	sites := []domain.PanelSite{
		dirty("C", 2, 0),
		dirty("A", 0.5, 0),
		dirty("B", 1, 0),
	}

	route, err := NewRouteBuilder(nil, 0).BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopIDs(route); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Fatalf("order = %v, want [A B C]", got)
	}

	want := 2 * geo.HaversineKm(depot, sites[0].Point)
	if math.Abs(route.TotalDistanceKm-want) > 1e-6 {
		t.Fatalf("distance = %v, want %v", route.TotalDistanceKm, want)
	}

	wantMinutes := route.TotalDistanceKm * 1000 / DefaultSpeedMetersPerSecond / 60
	if route.EstimatedTimeMinutes != wantMinutes {
		t.Fatalf("minutes = %v, want %v", route.EstimatedTimeMinutes, wantMinutes)
	}

	path := route.Path()
	if len(path) != 5 || path[0] != depot || path[4] != depot {
		t.Fatalf("path = %v, want depot-bounded path of 5 points", path)
	}
}

func TestBuildRouteWithMockDistances(t *testing.T) {
	hub := domain.Point{Lat: 10, Lng: 10}
	a := domain.Point{Lat: 10.1, Lng: 10}
	b := domain.Point{Lat: 10.2, Lng: 10}
	c := domain.Point{Lat: 10.3, Lng: 10}

	provider := distance.NewMockDistanceProvider([]distance.MockPair{
		{From: hub, To: a, Km: 1.0},
		{From: hub, To: b, Km: 2.0},
		{From: hub, To: c, Km: 1.5},
		{From: a, To: b, Km: 0.8},
		{From: a, To: c, Km: 0.7},
		{From: b, To: c, Km: 0.9},
	})

	sites := []domain.PanelSite{
		{ID: "A", Point: a, Status: domain.StatusDirty},
		{ID: "B", Point: b, Status: domain.StatusDirty},
		{ID: "C", Point: c, Status: domain.StatusDirty},
	}

	route, err := NewRouteBuilder(provider, 0).BuildRoute(sites, hub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopIDs(route); !reflect.DeepEqual(got, []string{"A", "C", "B"}) {
		t.Fatalf("order = %v, want [A C B]", got)
	}
	if route.ReturnLegKm != 2.0 {
		t.Fatalf("return leg = %v, want 2", route.ReturnLegKm)
	}
	if math.Abs(route.TotalDistanceKm-4.6) > 1e-9 {
		t.Fatalf("distance = %v, want 4.6", route.TotalDistanceKm)
	}
	// 3 + 2 + 1 candidate lookups plus the return leg.
	if got := provider.Calls(); got != 7 {
		t.Fatalf("lookups = %d, want 7", got)
	}
}

func TestBuildRouteSkipsSitesThatDoNotNeedCleaning(t *testing.T) {
	sites := []domain.PanelSite{
		{ID: "clean", Point: domain.Point{Lat: 1, Lng: 1}, Status: domain.StatusClean},
		{ID: "moderate", Point: domain.Point{Lat: 2, Lng: 2}, Status: domain.StatusModerate},
	}
	depot := domain.Point{Lat: 0, Lng: 0}

	route, err := NewRouteBuilder(nil, 0).BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.Stops) != 0 || route.TotalDistanceKm != 0 || route.EstimatedTimeMinutes != 0 {
		t.Fatalf("route = %+v, want empty", route)
	}
	if len(route.Path()) != 0 {
		t.Fatalf("path = %v, want empty", route.Path())
	}

	empty, err := NewRouteBuilder(nil, 0).BuildRoute(nil, depot)
	if err != nil {
		t.Fatalf("unexpected error for empty input: %v", err)
	}
	if len(empty.Stops) != 0 {
		t.Fatalf("stops = %d, want 0", len(empty.Stops))
	}
}

func TestBuildRouteTieGoesToFirstListed(t *testing.T) {
	depot := domain.Point{Lat: 0, Lng: 0}
	sites := []domain.PanelSite{
		dirty("north", 1, 0),
		dirty("south", -1, 0),
	}

	route, err := NewRouteBuilder(nil, 0).BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Stops[0].SiteID != "north" {
		t.Fatalf("first stop = %q, want north", route.Stops[0].SiteID)
	}

	sites[0], sites[1] = sites[1], sites[0]
	route, err = NewRouteBuilder(nil, 0).BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Stops[0].SiteID != "south" {
		t.Fatalf("first stop = %q, want south", route.Stops[0].SiteID)
	}
}

func TestBuildRouteVisitsEachDirtySiteOnce(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	depot := domain.Point{Lat: 12.97, Lng: 77.59}

	sites := make([]domain.PanelSite, 0, 60)
	want := map[string]bool{}
	statuses := []domain.SiteStatus{domain.StatusClean, domain.StatusModerate, domain.StatusDirty}
	for i := 0; i < 60; i++ {
		s := domain.PanelSite{
			ID:     fmt.Sprintf("SP-%04d", i),
			Point:  domain.Point{Lat: depot.Lat + rng.Float64()*0.1 - 0.05, Lng: depot.Lng + rng.Float64()*0.1 - 0.05},
			Status: statuses[rng.IntN(len(statuses))],
		}
		if s.NeedsCleaning() {
			want[s.ID] = true
		}
		sites = append(sites, s)
	}

	b := NewRouteBuilder(nil, 0)
	route, err := b.BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(route.Stops) != len(want) {
		t.Fatalf("stops = %d, want %d", len(route.Stops), len(want))
	}
	seen := map[string]bool{}
	prev := depot
	sum := 0.0
	for _, s := range route.Stops {
		if !want[s.SiteID] {
			t.Fatalf("visited %q which does not need cleaning", s.SiteID)
		}
		if seen[s.SiteID] {
			t.Fatalf("visited %q twice", s.SiteID)
		}
		seen[s.SiteID] = true

		leg := geo.HaversineKm(prev, s.Point)
		if s.LegDistanceKm != leg {
			t.Fatalf("leg to %q = %v, want %v", s.SiteID, s.LegDistanceKm, leg)
		}
		sum += leg
		prev = s.Point
	}
	sum += geo.HaversineKm(prev, depot)
	if math.Abs(route.TotalDistanceKm-sum) > 1e-9 {
		t.Fatalf("total = %v, want %v", route.TotalDistanceKm, sum)
	}

	again, err := b.BuildRoute(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(route, again) {
		t.Fatal("repeated builds differ")
	}
}

func TestBuildRouteRejectsInvalidInput(t *testing.T) {
	good := []domain.PanelSite{dirty("A", 1, 1)}

	tests := []struct {
		name    string
		builder *RouteBuilder
		sites   []domain.PanelSite
		depot   domain.Point
	}{
		{"depot latitude", NewRouteBuilder(nil, 0), good, domain.Point{Lat: 91, Lng: 0}},
		{"depot NaN", NewRouteBuilder(nil, 0), good, domain.Point{Lat: math.NaN(), Lng: 0}},
		{"site longitude", NewRouteBuilder(nil, 0), []domain.PanelSite{dirty("X", 0, 181)}, domain.Point{}},
		{"speed", &RouteBuilder{Distance: geo.Haversine{}, SpeedMetersPerSecond: -1}, good, domain.Point{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder.BuildRoute(tt.sites, tt.depot)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}

	// An invalid clean site is never visited, so it is not rejected.
	ignored := []domain.PanelSite{{ID: "X", Point: domain.Point{Lat: 100}, Status: domain.StatusClean}}
	if _, err := NewRouteBuilder(nil, 0).BuildRoute(ignored, domain.Point{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildRouteRejectsMissingDistance(t *testing.T) {
	provider := distance.NewMockDistanceProvider(nil)
	_, err := NewRouteBuilder(provider, 0).BuildRoute([]domain.PanelSite{dirty("A", 1, 1)}, domain.Point{})
	if err == nil {
		t.Fatal("expected error for unknown distance")
	}
}

func TestCompareRoutesAgainstInputOrder(t *testing.T) {
	depot := domain.Point{Lat: 0, Lng: 0}
	sites := []domain.PanelSite{
		dirty("C", 2, 0),
		dirty("A", 0.5, 0),
		dirty("B", 1, 0),
	}

	cmp, err := NewRouteBuilder(nil, 0).BuildAndCompare(sites, depot)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := stopIDs(cmp.Baseline); !reflect.DeepEqual(got, []string{"C", "A", "B"}) {
		t.Fatalf("baseline order = %v, want [C A B]", got)
	}
	if cmp.DistanceSavedKm <= 0 {
		t.Fatalf("distance saved = %v, want > 0", cmp.DistanceSavedKm)
	}
	// Baseline flies 5 degrees of meridian, optimized 4.
	if cmp.TimeSavedPercent != 20 {
		t.Fatalf("time saved = %d%%, want 20%%", cmp.TimeSavedPercent)
	}
	if cmp.BatterySavedPercent != 22 {
		t.Fatalf("battery saved = %d%%, want 22%%", cmp.BatterySavedPercent)
	}
}

func TestCompareRoutesEmptyBaseline(t *testing.T) {
	empty := &domain.Route{}
	cmp := CompareRoutes(empty, empty)
	if cmp.TimeSavedPercent != 0 || cmp.BatterySavedPercent != 0 || cmp.DistanceSavedKm != 0 {
		t.Fatalf("comparison = %+v, want zero savings", cmp)
	}
}
