package services

import (
	"fmt"
	"math"
	"math/rand/v2"
	"solar-cleaning-service/internal/domain"
)

// Simulated plants are cleaned on a fixed cycle.
const simulatedCleaningCycleDays = 14

const maxSeriesDays = 3650

// EnergySeries simulates daily generation for the last days days, ending today.
//
// Irradiance follows the seasonal table with ±15% daily variability drawn from
// rng. Soiling is modelled at medium dust with a neutral weather factor. The
// plant is assumed cleaned every 14 days, counted back from today, so loss
// restarts at zero on each cycle boundary instead of growing with the age of
// the day. The same rng seed and clock yield the same series.
func (m *EconomicsModel) EnergySeries(profile domain.SystemProfile, days int, rng *rand.Rand) ([]domain.EnergyDay, error) {
	if rng == nil {
		return nil, fmt.Errorf("energy series: rng must be non-nil")
	}
	if days <= 0 || days > maxSeriesDays {
		return nil, domain.Invalid("days", "must be within [1, %d], got %d", maxSeriesDays, days)
	}
	if !finite(profile.CapacityKW) || profile.CapacityKW <= 0 {
		return nil, domain.Invalid("profile.capacity_kw", "must be a positive number, got %v", profile.CapacityKW)
	}

	today := m.now()
	out := make([]domain.EnergyDay, 0, days)

	for i := days - 1; i >= 0; i-- {
		date := today.AddDate(0, 0, -i)

		variability := 0.85 + rng.Float64()*0.3
		irradiance := m.Irradiance(date.Month()) * variability
		predicted := profile.CapacityKW * irradiance * m.Tables.SystemEfficiency

		loss, err := m.Soiling.EstimateSoilingLoss(float64(i%simulatedCleaningCycleDays), 1.0, domain.DustMedium)
		if err != nil {
			return nil, fmt.Errorf("energy series: %w", err)
		}
		actual := predicted * (1 - loss/100)

		out = append(out, domain.EnergyDay{
			Date:               date.Format("2006-01-02"),
			PredictedKWh:       roundTo(predicted, 1),
			ActualKWh:          roundTo(actual, 1),
			Irradiance:         roundTo(irradiance, 2),
			SoilingLossPercent: roundTo(loss, 1),
			CapacityFactor:     roundTo(CapacityFactor(actual, profile.CapacityKW, 24), 1),
		})
	}

	return out, nil
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
