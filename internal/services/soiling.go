package services

import (
	"math"
	"solar-cleaning-service/internal/config"
	"solar-cleaning-service/internal/domain"
)

// SoilingModel estimates output loss from dust accumulation.
type SoilingModel struct {
	Rates   map[domain.DustLevel]float64
	MaxLoss float64
}

func NewSoilingModel(t *config.ModelTables) *SoilingModel {
	return &SoilingModel{Rates: t.DustRates, MaxLoss: t.MaxSoilingLoss}
}

// EstimateSoilingLoss returns the percentage output lost after days without
// cleaning: days * rate(level) * weatherFactor, capped at MaxLoss.
// The result is non-decreasing in both days and weatherFactor.
func (m *SoilingModel) EstimateSoilingLoss(days, weatherFactor float64, level domain.DustLevel) (float64, error) {
	if !finite(days) || days < 0 {
		return 0, domain.Invalid("days_since_cleaning", "must be a non-negative number, got %v", days)
	}
	if !finite(weatherFactor) || weatherFactor < 0 {
		return 0, domain.Invalid("weather_factor", "must be a non-negative number, got %v", weatherFactor)
	}
	rate, ok := m.Rates[level]
	if !ok {
		return 0, domain.Invalid("dust_level", "unknown dust level %q", level)
	}

	loss := days * rate * weatherFactor
	return math.Min(loss, m.MaxLoss), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
