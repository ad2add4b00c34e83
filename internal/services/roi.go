package services

import (
	"math"
	"solar-cleaning-service/internal/config"
	"solar-cleaning-service/internal/domain"
	"time"
)

// EconomicsModel estimates the financial value of cleaning a solar plant.
// It is pure given its tables and clock: repeated calls with the same inputs
// in the same month return identical results.
type EconomicsModel struct {
	Tables  *config.ModelTables
	Soiling *SoilingModel
	// Now supplies the current month for irradiance; defaults to time.Now.
	Now func() time.Time
}

func NewEconomicsModel(t *config.ModelTables) *EconomicsModel {
	return &EconomicsModel{
		Tables:  t,
		Soiling: NewSoilingModel(t),
		Now:     time.Now,
	}
}

func (m *EconomicsModel) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

// Irradiance returns the expected daily irradiance (kWh/m²/day) for month.
func (m *EconomicsModel) Irradiance(month time.Month) float64 {
	mult, ok := m.Tables.SeasonalMultipliers[int(month)]
	if !ok {
		mult = m.Tables.FallbackMultiplier
	}
	return m.Tables.BaseIrradiance * mult
}

// DustLevelFor maps a weather impact factor onto a dust level.
func (m *EconomicsModel) DustLevelFor(weatherFactor float64) domain.DustLevel {
	switch {
	case weatherFactor > m.Tables.HighDustWeather:
		return domain.DustHigh
	case weatherFactor > m.Tables.MediumDustWeather:
		return domain.DustMedium
	default:
		return domain.DustLow
	}
}

// CapacityFactor is actual output as a percentage of nameplate output over hours.
func CapacityFactor(actualKWh, capacityKW, hours float64) float64 {
	if capacityKW <= 0 || hours <= 0 {
		return 0
	}
	return actualKWh / (capacityKW * hours) * 100
}

// EstimateCleaningROI estimates the revenue recovered per day by cleaning and
// the resulting payback period and monthly ROI.
//
// Recovered energy is the plant's expected daily generation scaled by soiling
// loss and cleaning effectiveness. It is valued at the peak and off-peak rates
// by PeakShare, plus the demand charge avoided on the soiled capacity.
func (m *EconomicsModel) EstimateCleaningROI(
	cleaningCost float64,
	profile domain.SystemProfile,
	tariff domain.TariffStructure,
	daysSinceCleaning float64,
	impact domain.CleaningImpactData,
) (*domain.ROIResult, error) {
	if err := validateEconomicsInputs(cleaningCost, profile, tariff, impact); err != nil {
		return nil, err
	}

	level := m.DustLevelFor(impact.WeatherImpactFactor)
	loss, err := m.Soiling.EstimateSoilingLoss(daysSinceCleaning, impact.WeatherImpactFactor, level)
	if err != nil {
		return nil, err
	}

	t := m.Tables
	irradiance := m.Irradiance(m.now().Month())
	maxDaily := profile.CapacityKW * irradiance * t.SystemEfficiency
	energy := maxDaily * (loss / 100) * (impact.CleaningEffectiveness / 100)

	peakValue := energy * t.PeakShare * tariff.PeakRate
	offPeakValue := energy * (1 - t.PeakShare) * tariff.OffPeakRate
	demand := profile.CapacityKW * (loss / 100) * tariff.DemandCharge / t.BillingDays
	revenue := peakValue + offPeakValue + demand

	res := &domain.ROIResult{
		SoilingLossPercent: loss,
		DustLevel:          level,
		EnergyRecovered:    energy,
		RevenueRecovered:   revenue,
		ROIPercent:         (revenue*t.BillingDays - cleaningCost) / cleaningCost * 100,
		Breakdown: domain.ROIBreakdown{
			PeakEnergyValue:     peakValue,
			OffPeakEnergyValue:  offPeakValue,
			DemandChargeSavings: demand,
			TotalRevenue:        revenue,
		},
	}

	// Zero revenue never pays back; report it instead of dividing by zero.
	if revenue > 0 {
		days := math.Ceil(cleaningCost / revenue)
		if days <= math.MaxInt32 {
			res.PaybackPeriodDays = int(days)
			res.PaybackReachable = true
		}
	}

	return res, nil
}

func validateEconomicsInputs(
	cleaningCost float64,
	profile domain.SystemProfile,
	tariff domain.TariffStructure,
	impact domain.CleaningImpactData,
) error {
	if !finite(cleaningCost) || cleaningCost <= 0 {
		return domain.Invalid("cleaning_cost", "must be a positive number, got %v", cleaningCost)
	}
	if !finite(profile.CapacityKW) || profile.CapacityKW <= 0 {
		return domain.Invalid("profile.capacity_kw", "must be a positive number, got %v", profile.CapacityKW)
	}
	rates := []struct {
		field string
		v     float64
	}{
		{"tariff.peak_rate", tariff.PeakRate},
		{"tariff.off_peak_rate", tariff.OffPeakRate},
		{"tariff.demand_charge", tariff.DemandCharge},
	}
	for _, r := range rates {
		if !finite(r.v) || r.v < 0 {
			return domain.Invalid(r.field, "must be a non-negative number, got %v", r.v)
		}
	}
	e := impact.CleaningEffectiveness
	if !finite(e) || e < 0 || e > 100 {
		return domain.Invalid("impact.cleaning_effectiveness", "must be within [0, 100], got %v", e)
	}
	return nil
}
