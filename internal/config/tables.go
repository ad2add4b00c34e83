package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"solar-cleaning-service/internal/domain"

	"gopkg.in/yaml.v3"
)

// ModelTables holds every named constant the route and soiling models read.
// Defaults reproduce the dashboard's figures; a YAML file may override any
// non-zero subset.
type ModelTables struct {
	// % loss per day by dust level.
	DustRates map[domain.DustLevel]float64 `yaml:"dust_rates"`
	// Month (1..12) -> irradiance multiplier.
	SeasonalMultipliers map[int]float64 `yaml:"seasonal_multipliers"`
	// Used when a month is missing from SeasonalMultipliers.
	FallbackMultiplier float64 `yaml:"fallback_multiplier"`
	// kWh/m²/day.
	BaseIrradiance   float64 `yaml:"base_irradiance"`
	SystemEfficiency float64 `yaml:"system_efficiency"`
	PeakShare        float64 `yaml:"peak_share"`
	MaxSoilingLoss   float64 `yaml:"max_soiling_loss"`
	// Weather factor above which dust is high / medium.
	HighDustWeather   float64 `yaml:"high_dust_weather"`
	MediumDustWeather float64 `yaml:"medium_dust_weather"`
	// Days over which the monthly demand charge is spread.
	BillingDays float64 `yaml:"billing_days"`

	Tariff  domain.TariffStructure    `yaml:"tariff"`
	Profile domain.SystemProfile      `yaml:"profile"`
	Impact  domain.CleaningImpactData `yaml:"impact"`

	DroneSpeedMPS float64      `yaml:"drone_speed_mps"`
	Depot         domain.Point `yaml:"depot"`
}

// Defaults returns a fresh copy of the built-in tables.
func Defaults() ModelTables {
	return ModelTables{
		DustRates: map[domain.DustLevel]float64{
			domain.DustLow:    0.15,
			domain.DustMedium: 0.25,
			domain.DustHigh:   0.45,
		},
		SeasonalMultipliers: map[int]float64{
			1: 0.85, 2: 0.90, 3: 0.95, 4: 1.00, 5: 0.98, 6: 0.75,
			7: 0.70, 8: 0.72, 9: 0.80, 10: 0.88, 11: 0.85, 12: 0.82,
		},
		FallbackMultiplier: 0.85,
		BaseIrradiance:     5.2,
		SystemEfficiency:   0.85,
		PeakShare:          0.70,
		MaxSoilingLoss:     25,
		HighDustWeather:    1.2,
		MediumDustWeather:  0.8,
		BillingDays:        30,
		Tariff: domain.TariffStructure{
			PeakRate:     8.50,
			OffPeakRate:  6.20,
			DemandCharge: 450,
			FixedCharge:  2500,
		},
		Profile: domain.SystemProfile{
			CapacityKW:       1000,
			Location:         "Rajasthan, India",
			TiltAngle:        26,
			Orientation:      "South",
			InstallationDate: "2023-06-15",
			PanelType:        "Monocrystalline",
			ModuleCount:      2500,
		},
		Impact: domain.CleaningImpactData{
			SoilingRate:           0.25,
			CleaningEffectiveness: 97,
			DegradationFactor:     0.6,
			WeatherImpactFactor:   1.0,
			DustAccumulation:      8,
		},
		DroneSpeedMPS: 15,
		Depot:         domain.Point{Lat: 12.9716, Lng: 77.5946},
	}
}

// LoadTables reads a YAML file, overlays it on Defaults and validates the result.
// An empty path returns the defaults.
func LoadTables(path string) (*ModelTables, error) {
	t := Defaults()
	if path == "" {
		return &t, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load tables: read %q: %w", path, err)
	}

	var override ModelTables
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, fmt.Errorf("load tables: parse %q: %w", path, err)
	}

	merged := MergeTables(t, override)
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("load tables: %q: %w", path, err)
	}
	return &merged, nil
}

// MergeTables overlays non-zero fields from override onto base.
// Map entries are merged key by key.
func MergeTables(base, override ModelTables) ModelTables {
	out := base

	out.DustRates = make(map[domain.DustLevel]float64, len(base.DustRates))
	for k, v := range base.DustRates {
		out.DustRates[k] = v
	}
	for k, v := range override.DustRates {
		out.DustRates[k] = v
	}

	out.SeasonalMultipliers = make(map[int]float64, len(base.SeasonalMultipliers))
	for k, v := range base.SeasonalMultipliers {
		out.SeasonalMultipliers[k] = v
	}
	for k, v := range override.SeasonalMultipliers {
		out.SeasonalMultipliers[k] = v
	}

	overlay(&out.FallbackMultiplier, override.FallbackMultiplier)
	overlay(&out.BaseIrradiance, override.BaseIrradiance)
	overlay(&out.SystemEfficiency, override.SystemEfficiency)
	overlay(&out.PeakShare, override.PeakShare)
	overlay(&out.MaxSoilingLoss, override.MaxSoilingLoss)
	overlay(&out.HighDustWeather, override.HighDustWeather)
	overlay(&out.MediumDustWeather, override.MediumDustWeather)
	overlay(&out.BillingDays, override.BillingDays)
	overlay(&out.DroneSpeedMPS, override.DroneSpeedMPS)

	overlay(&out.Tariff.PeakRate, override.Tariff.PeakRate)
	overlay(&out.Tariff.OffPeakRate, override.Tariff.OffPeakRate)
	overlay(&out.Tariff.DemandCharge, override.Tariff.DemandCharge)
	overlay(&out.Tariff.FixedCharge, override.Tariff.FixedCharge)

	overlay(&out.Profile.CapacityKW, override.Profile.CapacityKW)
	overlay(&out.Profile.TiltAngle, override.Profile.TiltAngle)
	if override.Profile.Location != "" {
		out.Profile.Location = override.Profile.Location
	}
	if override.Profile.Orientation != "" {
		out.Profile.Orientation = override.Profile.Orientation
	}
	if override.Profile.InstallationDate != "" {
		out.Profile.InstallationDate = override.Profile.InstallationDate
	}
	if override.Profile.PanelType != "" {
		out.Profile.PanelType = override.Profile.PanelType
	}
	if override.Profile.ModuleCount != 0 {
		out.Profile.ModuleCount = override.Profile.ModuleCount
	}

	overlay(&out.Impact.SoilingRate, override.Impact.SoilingRate)
	overlay(&out.Impact.CleaningEffectiveness, override.Impact.CleaningEffectiveness)
	overlay(&out.Impact.DegradationFactor, override.Impact.DegradationFactor)
	overlay(&out.Impact.WeatherImpactFactor, override.Impact.WeatherImpactFactor)
	overlay(&out.Impact.DustAccumulation, override.Impact.DustAccumulation)

	// A depot at exactly (0,0) cannot be expressed as an override.
	if override.Depot != (domain.Point{}) {
		out.Depot = override.Depot
	}

	return out
}

func overlay(dst *float64, v float64) {
	if v != 0 {
		*dst = v
	}
}

// Validate rejects non-finite values anywhere in the tables, then checks the
// ranges the models rely on.
func (t *ModelTables) Validate() error {
	if t == nil {
		return errors.New("tables are nil")
	}
	if err := t.validateFinite(); err != nil {
		return err
	}
	for _, lvl := range []domain.DustLevel{domain.DustLow, domain.DustMedium, domain.DustHigh} {
		r, ok := t.DustRates[lvl]
		if !ok {
			return fmt.Errorf("dust_rates.%s is required", lvl)
		}
		if r < 0 {
			return fmt.Errorf("dust_rates.%s must be >= 0", lvl)
		}
	}
	for m, v := range t.SeasonalMultipliers {
		if m < 1 || m > 12 {
			return fmt.Errorf("seasonal_multipliers: month %d out of range 1..12", m)
		}
		if v < 0 {
			return fmt.Errorf("seasonal_multipliers.%d must be >= 0", m)
		}
	}
	if t.BaseIrradiance <= 0 {
		return errors.New("base_irradiance must be > 0")
	}
	if t.SystemEfficiency <= 0 || t.SystemEfficiency > 1 {
		return errors.New("system_efficiency must be in (0, 1]")
	}
	if t.PeakShare < 0 || t.PeakShare > 1 {
		return errors.New("peak_share must be in [0, 1]")
	}
	if t.MaxSoilingLoss <= 0 || t.MaxSoilingLoss > 100 {
		return errors.New("max_soiling_loss must be in (0, 100]")
	}
	if t.MediumDustWeather > t.HighDustWeather {
		return errors.New("medium_dust_weather must not exceed high_dust_weather")
	}
	if t.BillingDays <= 0 {
		return errors.New("billing_days must be > 0")
	}
	if t.DroneSpeedMPS <= 0 {
		return errors.New("drone_speed_mps must be > 0")
	}
	if err := t.Depot.Validate("depot"); err != nil {
		return err
	}
	return nil
}

type namedValue struct {
	name string
	v    float64
}

func (t *ModelTables) validateFinite() error {
	fields := []namedValue{
		{"fallback_multiplier", t.FallbackMultiplier},
		{"base_irradiance", t.BaseIrradiance},
		{"system_efficiency", t.SystemEfficiency},
		{"peak_share", t.PeakShare},
		{"max_soiling_loss", t.MaxSoilingLoss},
		{"high_dust_weather", t.HighDustWeather},
		{"medium_dust_weather", t.MediumDustWeather},
		{"billing_days", t.BillingDays},
		{"tariff.peak_rate", t.Tariff.PeakRate},
		{"tariff.off_peak_rate", t.Tariff.OffPeakRate},
		{"tariff.demand_charge", t.Tariff.DemandCharge},
		{"tariff.fixed_charge", t.Tariff.FixedCharge},
		{"profile.capacity_kw", t.Profile.CapacityKW},
		{"profile.tilt_angle", t.Profile.TiltAngle},
		{"impact.soiling_rate", t.Impact.SoilingRate},
		{"impact.cleaning_effectiveness", t.Impact.CleaningEffectiveness},
		{"impact.degradation_factor", t.Impact.DegradationFactor},
		{"impact.weather_impact_factor", t.Impact.WeatherImpactFactor},
		{"impact.dust_accumulation", t.Impact.DustAccumulation},
		{"drone_speed_mps", t.DroneSpeedMPS},
	}
	for lvl, v := range t.DustRates {
		fields = append(fields, namedValue{fmt.Sprintf("dust_rates.%s", lvl), v})
	}
	for m, v := range t.SeasonalMultipliers {
		fields = append(fields, namedValue{fmt.Sprintf("seasonal_multipliers.%d", m), v})
	}

	for _, f := range fields {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be a finite number, got %v", f.name, f.v)
		}
	}
	return nil
}
