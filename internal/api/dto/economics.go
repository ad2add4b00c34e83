package dto

import "solar-cleaning-service/internal/domain"

type SoilingRequest struct {
	DaysSinceCleaning float64 `json:"days_since_cleaning"`
	WeatherFactor     float64 `json:"weather_factor"`
	DustLevel         string  `json:"dust_level"`
}

type SoilingResponse struct {
	SoilingLossPercent float64 `json:"soiling_loss_percent"`
}

// ROIRequest is decoded over the configured defaults, so callers only send
// the fields they want to change.
type ROIRequest struct {
	CleaningCost      float64                   `json:"cleaning_cost"`
	DaysSinceCleaning float64                   `json:"days_since_cleaning"`
	Profile           domain.SystemProfile      `json:"profile"`
	Tariff            domain.TariffStructure    `json:"tariff"`
	Impact            domain.CleaningImpactData `json:"impact"`
}

type ROIBreakdownResponse struct {
	PeakEnergyValue     float64 `json:"peak_energy_value"`
	OffPeakEnergyValue  float64 `json:"off_peak_energy_value"`
	DemandChargeSavings float64 `json:"demand_charge_savings"`
	TotalRevenue        float64 `json:"total_revenue"`
}

type ROIResponse struct {
	ID                 string               `json:"id,omitempty"`
	SoilingLossPercent float64              `json:"soiling_loss_percent"`
	DustLevel          string               `json:"dust_level"`
	EnergyRecovered    float64              `json:"energy_recovered_kwh"`
	RevenueRecovered   float64              `json:"revenue_recovered"`
	PaybackPeriodDays  *int                 `json:"payback_period_days"`
	ROIPercent         float64              `json:"roi_percent"`
	Breakdown          ROIBreakdownResponse `json:"breakdown"`
}

type FrequencyResponse struct {
	OptimalDays      int     `json:"optimal_days"`
	CleaningsPerYear int     `json:"cleanings_per_year"`
	AnnualSavings    float64 `json:"annual_savings"`
	ROIPercent       float64 `json:"roi_percent"`
}

type EnergyDayResponse struct {
	Date               string  `json:"date"`
	PredictedKWh       float64 `json:"predicted_kwh"`
	ActualKWh          float64 `json:"actual_kwh"`
	Irradiance         float64 `json:"irradiance"`
	SoilingLossPercent float64 `json:"soiling_loss_percent"`
	CapacityFactor     float64 `json:"capacity_factor"`
}

type EnergySeriesResponse struct {
	Days []EnergyDayResponse `json:"days"`
}

// NewROIResponse renders an unreachable payback as null.
func NewROIResponse(id string, r *domain.ROIResult) ROIResponse {
	res := ROIResponse{
		ID:                 id,
		SoilingLossPercent: r.SoilingLossPercent,
		DustLevel:          string(r.DustLevel),
		EnergyRecovered:    r.EnergyRecovered,
		RevenueRecovered:   r.RevenueRecovered,
		ROIPercent:         r.ROIPercent,
		Breakdown: ROIBreakdownResponse{
			PeakEnergyValue:     r.Breakdown.PeakEnergyValue,
			OffPeakEnergyValue:  r.Breakdown.OffPeakEnergyValue,
			DemandChargeSavings: r.Breakdown.DemandChargeSavings,
			TotalRevenue:        r.Breakdown.TotalRevenue,
		},
	}
	if r.PaybackReachable {
		days := r.PaybackPeriodDays
		res.PaybackPeriodDays = &days
	}
	return res
}

func NewFrequencyResponse(f *domain.CleaningFrequency) FrequencyResponse {
	return FrequencyResponse{
		OptimalDays:      f.OptimalDays,
		CleaningsPerYear: f.CleaningsPerYear,
		AnnualSavings:    f.AnnualSavings,
		ROIPercent:       f.ROIPercent,
	}
}

func NewEnergySeriesResponse(days []domain.EnergyDay) EnergySeriesResponse {
	res := EnergySeriesResponse{Days: make([]EnergyDayResponse, 0, len(days))}
	for _, d := range days {
		res.Days = append(res.Days, EnergyDayResponse{
			Date:               d.Date,
			PredictedKWh:       d.PredictedKWh,
			ActualKWh:          d.ActualKWh,
			Irradiance:         d.Irradiance,
			SoilingLossPercent: d.SoilingLossPercent,
			CapacityFactor:     d.CapacityFactor,
		})
	}
	return res
}
