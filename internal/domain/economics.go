package domain

import "strings"

// DustLevel selects the per-day soiling rate.
type DustLevel string

const (
	DustLow    DustLevel = "low"
	DustMedium DustLevel = "medium"
	DustHigh   DustLevel = "high"
)

func ParseDustLevel(s string) (DustLevel, error) {
	switch d := DustLevel(strings.ToLower(strings.TrimSpace(s))); d {
	case DustLow, DustMedium, DustHigh:
		return d, nil
	default:
		return "", Invalid("dust_level", "unknown dust level %q", s)
	}
}

// TariffStructure holds commercial electricity rates.
// Energy rates are per kWh, DemandCharge per kW per month, FixedCharge per month.
type TariffStructure struct {
	PeakRate     float64 `yaml:"peak_rate" json:"peak_rate"`
	OffPeakRate  float64 `yaml:"off_peak_rate" json:"off_peak_rate"`
	DemandCharge float64 `yaml:"demand_charge" json:"demand_charge"`
	FixedCharge  float64 `yaml:"fixed_charge" json:"fixed_charge"`
}

// SystemProfile describes a solar plant.
type SystemProfile struct {
	CapacityKW       float64 `yaml:"capacity_kw" json:"capacity_kw"`
	Location         string  `yaml:"location" json:"location"`
	TiltAngle        float64 `yaml:"tilt_angle" json:"tilt_angle"`
	Orientation      string  `yaml:"orientation" json:"orientation"`
	InstallationDate string  `yaml:"installation_date" json:"installation_date"`
	PanelType        string  `yaml:"panel_type" json:"panel_type"`
	ModuleCount      int     `yaml:"module_count" json:"module_count"`
}

// CleaningImpactData carries the environmental inputs of one ROI calculation.
// Units:
// - SoilingRate: % loss per day
// - CleaningEffectiveness: % of lost output restored by cleaning (0..100)
// - DegradationFactor: % per year
// - WeatherImpactFactor: multiplier on soiling (1.0 = neutral)
// - DustAccumulation: % current dust cover
type CleaningImpactData struct {
	SoilingRate           float64 `yaml:"soiling_rate" json:"soiling_rate"`
	CleaningEffectiveness float64 `yaml:"cleaning_effectiveness" json:"cleaning_effectiveness"`
	DegradationFactor     float64 `yaml:"degradation_factor" json:"degradation_factor"`
	WeatherImpactFactor   float64 `yaml:"weather_impact_factor" json:"weather_impact_factor"`
	DustAccumulation      float64 `yaml:"dust_accumulation" json:"dust_accumulation"`
}

// ROIBreakdown splits daily recovered revenue by source.
type ROIBreakdown struct {
	PeakEnergyValue     float64
	OffPeakEnergyValue  float64
	DemandChargeSavings float64
	TotalRevenue        float64
}

// ROIResult is the outcome of a cleaning ROI estimate. Energy is kWh/day,
// revenue is currency/day.
type ROIResult struct {
	SoilingLossPercent float64
	DustLevel          DustLevel
	EnergyRecovered    float64
	RevenueRecovered   float64
	PaybackPeriodDays  int
	// false when the cleaning recovers no revenue and can never pay back.
	PaybackReachable bool
	ROIPercent       float64
	Breakdown        ROIBreakdown
}

// CleaningFrequency is the best cleaning interval found by a frequency scan.
type CleaningFrequency struct {
	OptimalDays      int
	CleaningsPerYear int
	AnnualSavings    float64
	ROIPercent       float64
}

// EnergyDay is one row of a simulated generation series.
type EnergyDay struct {
	Date               string
	PredictedKWh       float64
	ActualKWh          float64
	Irradiance         float64
	SoilingLossPercent float64
	CapacityFactor     float64
}
