package api

import (
	"net/http"
	"solar-cleaning-service/internal/api/handlers"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
	"solar-cleaning-service/internal/services"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// RouterDeps carries everything the HTTP layer needs.
type RouterDeps struct {
	Repo         ports.SiteRepository
	Planner      *services.Planner
	Assessor     *services.Assessor
	DefaultDepot domain.Point
	SeriesSeed   uint64

	RateLimit   float64
	RateBurst   int
	CORSOrigins []string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d RouterDeps) http.Handler {
	obs.RegisterMetrics()

	mux := http.NewServeMux()

	siteHandler := &handlers.SiteHandler{Repo: d.Repo}
	routeHandler := &handlers.RouteHandler{
		Planner:      d.Planner,
		DefaultDepot: d.DefaultDepot,
	}
	econHandler := &handlers.EconomicsHandler{
		Assessor: d.Assessor,
		Seed:     d.SeriesSeed,
	}
	reportHandler := &handlers.ReportHandler{Economics: econHandler}

	routes := map[string]http.HandlerFunc{
		"/health":              handlers.Health,
		"/sites":               siteHandler.List,
		"/routes":              routeHandler.Plan,
		"/routes/fleet":        routeHandler.Fleet,
		"/soiling/loss":        econHandler.Soiling,
		"/economics/roi":       econHandler.ROI,
		"/economics/frequency": econHandler.Frequency,
		"/economics/energy":    econHandler.Energy,
		"/reports/energy.xlsx": reportHandler.EnergyXLSX,
	}

	known := make(map[string]bool, len(routes)+1)
	for path, h := range routes {
		mux.HandleFunc(path, h)
		known[path] = true
	}

	mux.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	known["/metrics"] = true

	c := cors.New(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	var h http.Handler = c.Handler(mux)
	h = rateLimitMiddleware(d.RateLimit, d.RateBurst, h)
	h = metricsMiddleware(known, h)
	h = loggingMiddleware(h)
	return requestIDMiddleware(h)
}
