package config

import (
	"os"
	"path/filepath"
	"solar-cleaning-service/internal/domain"
	"testing"
	"time"
)

func TestDefaultsValidate(t *testing.T) {
	d := Defaults()
	if err := d.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	if len(d.SeasonalMultipliers) != 12 {
		t.Fatalf("seasonal table has %d months, want 12", len(d.SeasonalMultipliers))
	}
	if d.DustRates[domain.DustHigh] != 0.45 {
		t.Fatalf("high dust rate = %v, want 0.45", d.DustRates[domain.DustHigh])
	}
}

func TestLoadTablesOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tables.yaml")
	body := `
dust_rates:
  high: 0.6
seasonal_multipliers:
  6: 0.5
tariff:
  peak_rate: 9.25
drone_speed_mps: 12
depot:
  lat: 26.9
  lng: 75.8
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	tables, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}

	if got := tables.DustRates[domain.DustHigh]; got != 0.6 {
		t.Fatalf("high = %v, want 0.6", got)
	}
	if got := tables.DustRates[domain.DustLow]; got != 0.15 {
		t.Fatalf("low = %v, want default 0.15", got)
	}
	if got := tables.SeasonalMultipliers[6]; got != 0.5 {
		t.Fatalf("june = %v, want 0.5", got)
	}
	if got := tables.SeasonalMultipliers[4]; got != 1.0 {
		t.Fatalf("april = %v, want default 1.0", got)
	}
	if tables.Tariff.PeakRate != 9.25 || tables.Tariff.OffPeakRate != 6.20 {
		t.Fatalf("tariff = %+v", tables.Tariff)
	}
	if tables.DroneSpeedMPS != 12 {
		t.Fatalf("speed = %v, want 12", tables.DroneSpeedMPS)
	}
	if tables.Depot != (domain.Point{Lat: 26.9, Lng: 75.8}) {
		t.Fatalf("depot = %+v", tables.Depot)
	}

	// Defaults must not be mutated by the merge.
	if Defaults().DustRates[domain.DustHigh] != 0.45 {
		t.Fatal("defaults mutated by merge")
	}
}

func TestLoadTablesRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("seasonal_multipliers:\n  13: 1.0\n"), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	if _, err := LoadTables(path); err == nil {
		t.Fatal("expected error for month 13")
	}

	if _, err := LoadTables(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	nonFinite := []struct {
		name string
		yaml string
	}{
		{"nan irradiance", "base_irradiance: .nan\n"},
		{"nan efficiency", "system_efficiency: .nan\n"},
		{"inf billing days", "billing_days: .inf\n"},
		{"nan dust rate", "dust_rates:\n  high: .nan\n"},
		{"inf seasonal multiplier", "seasonal_multipliers:\n  6: .inf\n"},
		{"nan speed", "drone_speed_mps: .nan\n"},
		{"nan tariff", "tariff:\n  peak_rate: .nan\n"},
		{"negative inf demand charge", "tariff:\n  demand_charge: -.inf\n"},
	}
	for _, tt := range nonFinite {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "tables.yaml")
			if err := os.WriteFile(p, []byte(tt.yaml), 0o644); err != nil {
				t.Fatalf("write yaml: %v", err)
			}
			if tables, err := LoadTables(p); err == nil {
				t.Fatalf("LoadTables = %+v, want error", tables)
			}
		})
	}
}

func TestLoadTablesEmptyPath(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tables.DroneSpeedMPS != 15 {
		t.Fatalf("speed = %v, want 15", tables.DroneSpeedMPS)
	}
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOL_TEST_KEY", "  value ")
	if got := Get("SOL_TEST_KEY", "x"); got != "value" {
		t.Fatalf("Get = %q, want value", got)
	}
	if got := Get("SOL_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("Get = %q, want fallback", got)
	}

	t.Setenv("SOL_TEST_FLOAT", "abc")
	if got := GetFloat("SOL_TEST_FLOAT", 2.5); got != 2.5 {
		t.Fatalf("GetFloat = %v, want 2.5", got)
	}

	t.Setenv("SOL_TEST_DUR", "90s")
	if got := GetDuration("SOL_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("GetDuration = %v, want 90s", got)
	}

	t.Setenv("SOL_TEST_LIST", "a, ,b,")
	if got := GetList("SOL_TEST_LIST"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("GetList = %v, want [a b]", got)
	}
}
