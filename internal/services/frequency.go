package services

import (
	"fmt"
	"math"
	"solar-cleaning-service/internal/domain"
)

// Scan bounds and acceptance threshold for the cleaning interval search.
const (
	minCleaningIntervalDays     = 7
	maxCleaningIntervalDays     = 60
	defaultCleaningIntervalDays = 30
	minAcceptableROIPercent     = 10.0
)

// OptimalCleaningFrequency scans cleaning intervals of 7 to 60 days and picks
// the one with the highest monthly ROI above 10%. When no interval clears the
// threshold a 30-day interval is reported.
func (m *EconomicsModel) OptimalCleaningFrequency(
	cleaningCost float64,
	profile domain.SystemProfile,
	tariff domain.TariffStructure,
	impact domain.CleaningImpactData,
) (*domain.CleaningFrequency, error) {
	optimal := defaultCleaningIntervalDays
	bestROI := math.Inf(-1)

	for days := minCleaningIntervalDays; days <= maxCleaningIntervalDays; days++ {
		r, err := m.EstimateCleaningROI(cleaningCost, profile, tariff, float64(days), impact)
		if err != nil {
			return nil, fmt.Errorf("optimal cleaning frequency: %d days: %w", days, err)
		}
		if r.ROIPercent > bestROI && r.ROIPercent > minAcceptableROIPercent {
			bestROI = r.ROIPercent
			optimal = days
		}
	}

	final, err := m.EstimateCleaningROI(cleaningCost, profile, tariff, float64(optimal), impact)
	if err != nil {
		return nil, fmt.Errorf("optimal cleaning frequency: %w", err)
	}

	perYear := 365 / optimal
	return &domain.CleaningFrequency{
		OptimalDays:      optimal,
		CleaningsPerYear: perYear,
		AnnualSavings:    (final.RevenueRecovered*float64(optimal) - cleaningCost) * float64(perYear),
		ROIPercent:       final.ROIPercent,
	}, nil
}
