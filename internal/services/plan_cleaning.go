package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// EventRoutePlanned is published after a cleaning plan is stored.
const EventRoutePlanned = "route.planned"

const maxConcurrentDepots = 4

type PlanCleaningRequest struct {
	Depot domain.Point
	// When nil, sites are loaded from the repository.
	Sites []domain.PanelSite
}

type PlanFleetRequest struct {
	Depots []domain.Point
	Sites  []domain.PanelSite
}

// Planner orchestrates route building with the optional storage, cache and
// event adapters. Only Builder is required; Repo is needed when requests
// carry no sites.
type Planner struct {
	Builder   *RouteBuilder
	Repo      ports.SiteRepository
	Store     ports.RunStore
	Cache     ports.PlanCache
	Publisher ports.EventPublisher
	CacheTTL  time.Duration
	Now       func() time.Time
}

// PlanCleaning builds the optimized route for one depot, compares it with the
// input-order baseline and records the result.
//
// Cache and publisher failures are logged and do not fail the request.
// A store failure does.
func (p *Planner) PlanCleaning(ctx context.Context, req PlanCleaningRequest) (plan *domain.CleaningPlan, err error) {
	defer obs.Time(ctx, "plan_cleaning")(&err)

	if p.Builder == nil {
		return nil, errors.New("plan cleaning: route builder must be non-nil")
	}

	sites, err := p.sites(ctx, req.Sites)
	if err != nil {
		return nil, fmt.Errorf("plan cleaning: %w", err)
	}

	plan, err = p.planSites(ctx, req.Depot, sites)
	if err != nil {
		return nil, fmt.Errorf("plan cleaning: %w", err)
	}
	return plan, nil
}

// PlanFleet plans one route per depot. Sites are assigned to their nearest
// depot and the routes are built concurrently. Plans are returned in depot order.
func (p *Planner) PlanFleet(ctx context.Context, req PlanFleetRequest) (plans []*domain.CleaningPlan, err error) {
	defer obs.Time(ctx, "plan_fleet")(&err)

	if p.Builder == nil {
		return nil, errors.New("plan fleet: route builder must be non-nil")
	}

	sites, err := p.sites(ctx, req.Sites)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}

	groups, err := AssignSitesToDepots(sites, req.Depots, p.Builder.Distance)
	if err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}

	plans = make([]*domain.CleaningPlan, len(req.Depots))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDepots)

	for i, depot := range req.Depots {
		g.Go(func() error {
			plan, err := p.planSites(gctx, depot, groups[i])
			if err != nil {
				return fmt.Errorf("depot %d: %w", i, err)
			}
			plans[i] = plan
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan fleet: %w", err)
	}
	return plans, nil
}

func (p *Planner) sites(ctx context.Context, given []domain.PanelSite) ([]domain.PanelSite, error) {
	if given != nil {
		return given, nil
	}
	if p.Repo == nil {
		return nil, errors.New("no sites given and no site repository configured")
	}
	sites, err := p.Repo.ListSites(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sites: %w", err)
	}
	return sites, nil
}

func (p *Planner) planSites(ctx context.Context, depot domain.Point, sites []domain.PanelSite) (*domain.CleaningPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := p.cacheKey(depot, sites)
	if plan, ok := p.cached(ctx, key); ok {
		obs.RoutesPlanned.WithLabelValues("cache").Inc()
		return plan, nil
	}

	cmp, err := p.Builder.BuildAndCompare(sites, depot)
	if err != nil {
		return nil, err
	}

	plan := &domain.CleaningPlan{
		Route:      cmp.Optimized,
		Comparison: cmp,
		PanelCount: len(sites),
		CreatedAt:  p.now().UTC(),
	}

	if p.Store != nil {
		id, err := p.Store.SavePlan(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("save plan: %w", err)
		}
		plan.ID = id
	}

	obs.RoutesPlanned.WithLabelValues("computed").Inc()
	obs.RouteDistanceKm.Observe(plan.Route.TotalDistanceKm)

	p.publish(ctx, plan)
	p.store(ctx, key, plan)

	return plan, nil
}

func (p *Planner) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// cacheKey fingerprints everything the route depends on: depot, eligible
// sites in order and speed.
func (p *Planner) cacheKey(depot domain.Point, sites []domain.PanelSite) string {
	h := sha256.New()
	write := func(f float64) {
		h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64)))
		h.Write([]byte{0})
	}
	write(depot.Lat)
	write(depot.Lng)
	write(p.Builder.SpeedMetersPerSecond)
	for _, s := range domain.DirtySites(sites) {
		h.Write([]byte(s.ID))
		h.Write([]byte{0})
		write(s.Point.Lat)
		write(s.Point.Lng)
	}
	return "plan:" + hex.EncodeToString(h.Sum(nil))
}

func (p *Planner) cached(ctx context.Context, key string) (*domain.CleaningPlan, bool) {
	if p.Cache == nil {
		return nil, false
	}

	raw, ok, err := p.Cache.Get(ctx, key)
	if err != nil {
		log.Printf("req_id=%s plan cache get failed key=%s err=%v", obs.RequestID(ctx), key, err)
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var plan domain.CleaningPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		log.Printf("req_id=%s plan cache decode failed key=%s err=%v", obs.RequestID(ctx), key, err)
		return nil, false
	}
	return &plan, true
}

func (p *Planner) store(ctx context.Context, key string, plan *domain.CleaningPlan) {
	if p.Cache == nil {
		return
	}

	raw, err := json.Marshal(plan)
	if err != nil {
		log.Printf("req_id=%s plan cache encode failed key=%s err=%v", obs.RequestID(ctx), key, err)
		return
	}
	if err := p.Cache.Put(ctx, key, raw, p.CacheTTL); err != nil {
		log.Printf("req_id=%s plan cache put failed key=%s err=%v", obs.RequestID(ctx), key, err)
	}
}

func (p *Planner) publish(ctx context.Context, plan *domain.CleaningPlan) {
	if p.Publisher == nil {
		return
	}

	evt := ports.Event{
		Type:       EventRoutePlanned,
		Key:        plan.ID,
		OccurredAt: plan.CreatedAt,
		Data: map[string]any{
			"stops":                  len(plan.Route.Stops),
			"total_distance_km":      plan.Route.TotalDistanceKm,
			"estimated_time_minutes": plan.Route.EstimatedTimeMinutes,
			"time_saved_percent":     plan.Comparison.TimeSavedPercent,
		},
	}
	if err := p.Publisher.Publish(ctx, evt); err != nil {
		log.Printf("req_id=%s publish %s failed plan_id=%s err=%v", obs.RequestID(ctx), evt.Type, plan.ID, err)
	}
}
