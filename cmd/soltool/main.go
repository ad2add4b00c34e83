package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"solar-cleaning-service/internal/adapters/mockdata"
	"solar-cleaning-service/internal/adapters/report"
	"solar-cleaning-service/internal/adapters/repositories"
	"solar-cleaning-service/internal/config"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/platform/db"
	"solar-cleaning-service/internal/services"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	var err error
	switch os.Args[1] {
	case "init-db":
		err = cmdInitDB(ctx, os.Args[2:])
	case "seed":
		err = cmdSeed(ctx, os.Args[2:])
	case "route":
		err = cmdRoute(os.Args[2:])
	case "roi":
		err = cmdROI(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  soltool init-db")
	fmt.Println("  soltool seed --file data/seeds/sites.json")
	fmt.Println("  soltool seed --generate 300 --seed 42")
	fmt.Println("  soltool route --file data/seeds/sites.json [--depot-lat 12.9716 --depot-lng 77.5946]")
	fmt.Println("  soltool roi --cost 2500 --days 14 [--xlsx results/energy.xlsx]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - init-db and seed read DATABASE_URL")
	fmt.Println("  - every command accepts --tables to override the model tables YAML")
}

func openDB(ctx context.Context) (*sql.DB, error) {
	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return db.Open(ctx, databaseURL)
}

func cmdInitDB(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ExitOnError)
	_ = fs.Parse(args)

	sqlDB, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")
	return nil
}

func cmdSeed(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	file := fs.String("file", config.Get("SEED_PATH", ""), "Path to a sites JSON file")
	generate := fs.Int("generate", 0, "Generate N panels instead of reading a file")
	seed := fs.Uint64("seed", 42, "Seed for generated panels")
	tablesPath := fs.String("tables", config.Get("MODEL_TABLES_PATH", ""), "Path to model tables YAML")
	_ = fs.Parse(args)

	sqlDB, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	log.Println("Seeding database...")
	if *generate > 0 {
		tables, err := config.LoadTables(*tablesPath)
		if err != nil {
			return err
		}
		sites, err := mockdata.GeneratePanels(*generate, tables.Depot, mockdata.DefaultRadiusKm, rand.New(rand.NewPCG(*seed, *seed)))
		if err != nil {
			return err
		}
		if err := repositories.UpsertSites(ctx, sqlDB, sites); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		log.Printf("Seeding complete. sites=%d", len(sites))
		return nil
	}

	if *file == "" {
		return fmt.Errorf("--file or --generate is required")
	}
	if err := repositories.SeedFromJSON(ctx, sqlDB, *file); err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Println("Seeding complete.")
	return nil
}

func cmdRoute(args []string) error {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	file := fs.String("file", "", "Path to a sites JSON file (default: generated field)")
	generate := fs.Int("generate", mockdata.DefaultPanelCount, "Panels to generate when --file is empty")
	seed := fs.Uint64("seed", 42, "Seed for generated panels")
	tablesPath := fs.String("tables", config.Get("MODEL_TABLES_PATH", ""), "Path to model tables YAML")
	depotLat := fs.Float64("depot-lat", 0, "Depot latitude (default from tables)")
	depotLng := fs.Float64("depot-lng", 0, "Depot longitude (default from tables)")
	_ = fs.Parse(args)

	tables, err := config.LoadTables(*tablesPath)
	if err != nil {
		return err
	}

	depot := tables.Depot
	if *depotLat != 0 || *depotLng != 0 {
		depot = domain.Point{Lat: *depotLat, Lng: *depotLng}
	}

	var sites []domain.PanelSite
	if *file != "" {
		sites, err = readSites(*file)
	} else {
		sites, err = mockdata.GeneratePanels(*generate, depot, mockdata.DefaultRadiusKm, rand.New(rand.NewPCG(*seed, *seed)))
	}
	if err != nil {
		return err
	}

	cmp, err := services.NewRouteBuilder(nil, tables.DroneSpeedMPS).BuildAndCompare(sites, depot)
	if err != nil {
		return err
	}

	r := cmp.Optimized
	ids := make([]string, 0, len(r.Stops))
	for _, s := range r.Stops {
		ids = append(ids, s.SiteID)
	}

	fmt.Printf("Sites=%d Dirty=%d\n", len(sites), len(r.Stops))
	fmt.Printf("Route: %s\n", strings.Join(ids, " -> "))
	fmt.Printf("Distance=%.3fkm Time=%.0fmin Baseline=%.3fkm\n", r.TotalDistanceKm, r.EstimatedTimeMinutes, cmp.Baseline.TotalDistanceKm)
	fmt.Printf("Time saved=%d%% Battery saved=%d%%\n", cmp.TimeSavedPercent, cmp.BatterySavedPercent)
	return nil
}

func cmdROI(args []string) error {
	fs := flag.NewFlagSet("roi", flag.ExitOnError)
	cost := fs.Float64("cost", 2500, "Cleaning cost")
	days := fs.Float64("days", 14, "Days since last cleaning")
	tablesPath := fs.String("tables", config.Get("MODEL_TABLES_PATH", ""), "Path to model tables YAML")
	xlsxPath := fs.String("xlsx", "", "Optional: write an energy workbook to this path")
	seriesDays := fs.Int("series-days", 30, "Days of simulated generation in the workbook")
	seed := fs.Uint64("seed", 42, "Seed for the simulated series")
	_ = fs.Parse(args)

	tables, err := config.LoadTables(*tablesPath)
	if err != nil {
		return err
	}
	model := services.NewEconomicsModel(tables)

	res, err := model.EstimateCleaningROI(*cost, tables.Profile, tables.Tariff, *days, tables.Impact)
	if err != nil {
		return err
	}
	freq, err := model.OptimalCleaningFrequency(*cost, tables.Profile, tables.Tariff, tables.Impact)
	if err != nil {
		return err
	}

	fmt.Printf("Soiling loss=%.2f%% Dust=%s\n", res.SoilingLossPercent, res.DustLevel)
	fmt.Printf("Energy recovered=%.1fkWh/day Revenue=%.2f/day\n", res.EnergyRecovered, res.RevenueRecovered)
	if res.PaybackReachable {
		fmt.Printf("Payback=%d days ROI=%.1f%%\n", res.PaybackPeriodDays, res.ROIPercent)
	} else {
		fmt.Printf("Payback=never ROI=%.1f%%\n", res.ROIPercent)
	}
	fmt.Printf("Optimal interval=%d days (%d/year) Annual savings=%.2f\n", freq.OptimalDays, freq.CleaningsPerYear, freq.AnnualSavings)

	if *xlsxPath == "" {
		return nil
	}

	series, err := model.EnergySeries(tables.Profile, *seriesDays, rand.New(rand.NewPCG(*seed, *seed)))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(*xlsxPath), 0o755); err != nil {
		return err
	}
	f, err := os.Create(*xlsxPath)
	if err != nil {
		return err
	}
	defer f.Close()

	err = report.WriteEnergyWorkbook(f, report.EnergyWorkbook{
		Profile:   tables.Profile,
		Series:    series,
		ROI:       res,
		Frequency: freq,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %s at %s\n", *xlsxPath, time.Now().Format(time.RFC3339))
	return nil
}

func readSites(path string) ([]domain.PanelSite, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sites %q: %w", path, err)
	}
	var seeds []repositories.SiteSeed
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse sites %q: %w", path, err)
	}
	sites, err := repositories.ParseSiteSeeds(seeds)
	if err != nil {
		return nil, fmt.Errorf("sites %q: %w", path, err)
	}
	return sites, nil
}
