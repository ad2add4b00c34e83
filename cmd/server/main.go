package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"solar-cleaning-service/internal/adapters/cache"
	"solar-cleaning-service/internal/adapters/events"
	"solar-cleaning-service/internal/adapters/mockdata"
	"solar-cleaning-service/internal/adapters/repositories"
	"solar-cleaning-service/internal/api"
	"solar-cleaning-service/internal/config"
	"solar-cleaning-service/internal/platform/db"
	"solar-cleaning-service/internal/ports"
	"solar-cleaning-service/internal/services"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, Kafka) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.LoadServer()
	tables, err := config.LoadTables(cfg.TablesPath)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		repo      ports.SiteRepository
		store     ports.RunStore
		planCache ports.PlanCache
		publisher ports.EventPublisher
	)

	// Postgres backs sites, runs and the fallback plan cache. Without it the
	// server plans over a generated field and keeps nothing.
	if cfg.DatabaseURL != "" {
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(ctx, sqlDB); err != nil {
			log.Fatal(err)
		}

		repo = repositories.NewPostgresSiteRepository(sqlDB)
		store = repositories.NewPostgresRunStore(sqlDB)

		sqlCache := cache.NewSQLPlanCache(sqlDB)
		planCache = sqlCache
		go purgeExpiredPlans(ctx, sqlCache, cfg.CacheTTL)
	} else {
		rng := rand.New(rand.NewPCG(cfg.MockSeed, cfg.MockSeed))
		panels, err := mockdata.GeneratePanels(cfg.MockPanels, tables.Depot, mockdata.DefaultRadiusKm, rng)
		if err != nil {
			log.Fatal(err)
		}
		repo = repositories.NewMemorySiteRepository(panels)
		log.Printf("DATABASE_URL not set; serving generated field panels=%d seed=%d", len(panels), cfg.MockSeed)
	}

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisPlanCacheFromURL(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("redis plan cache disabled: %v", err)
		} else {
			defer rc.Close()
			planCache = rc
		}
	}

	if len(cfg.KafkaBrokers) > 0 {
		pub := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic))
		defer pub.Close()
		publisher = pub
		log.Printf("publishing plan events brokers=%v topic=%s", cfg.KafkaBrokers, cfg.KafkaTopic)
	}

	model := services.NewEconomicsModel(tables)
	planner := &services.Planner{
		Builder:   services.NewRouteBuilder(nil, tables.DroneSpeedMPS),
		Repo:      repo,
		Store:     store,
		Cache:     planCache,
		Publisher: publisher,
		CacheTTL:  cfg.CacheTTL,
	}

	router := api.NewRouter(api.RouterDeps{
		Repo:         repo,
		Planner:      planner,
		Assessor:     &services.Assessor{Model: model, Store: store},
		DefaultDepot: tables.Depot,
		SeriesSeed:   cfg.MockSeed,
		RateLimit:    cfg.RateLimit,
		RateBurst:    cfg.RateBurst,
		CORSOrigins:  cfg.CORSOrigins,
	})

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server stopped: %v", err)
		}
	case <-ctx.Done():
		log.Println("Shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}
}

// purgeExpiredPlans removes stale plan_cache rows once per ttl.
func purgeExpiredPlans(ctx context.Context, c *cache.SQLPlanCache, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	t := time.NewTicker(ttl)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := c.Purge(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) && !errors.Is(err, sql.ErrConnDone) {
					log.Printf("plan cache purge failed: %v", err)
				}
				continue
			}
			if n > 0 {
				log.Printf("plan cache purged rows=%d", n)
			}
		}
	}
}
