package services

import (
	"context"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
)

type AssessROIRequest struct {
	CleaningCost      float64
	DaysSinceCleaning float64
	Profile           domain.SystemProfile
	Tariff            domain.TariffStructure
	Impact            domain.CleaningImpactData
}

// Assessor runs ROI estimates and records them when a store is configured.
type Assessor struct {
	Model *EconomicsModel
	Store ports.RunStore
}

// AssessROI estimates cleaning ROI and persists the assessment.
// The returned id is empty when no store is configured.
func (a *Assessor) AssessROI(ctx context.Context, req AssessROIRequest) (res *domain.ROIResult, id string, err error) {
	defer obs.Time(ctx, "assess_roi")(&err)

	res, err = a.Model.EstimateCleaningROI(req.CleaningCost, req.Profile, req.Tariff, req.DaysSinceCleaning, req.Impact)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrInvalidInput) {
			outcome = "invalid"
		}
		obs.ROIAssessments.WithLabelValues(outcome).Inc()
		return nil, "", fmt.Errorf("assess roi: %w", err)
	}

	if res.PaybackReachable {
		obs.ROIAssessments.WithLabelValues("payback").Inc()
	} else {
		obs.ROIAssessments.WithLabelValues("no_payback").Inc()
	}

	if a.Store == nil {
		return res, "", nil
	}

	id, err = a.Store.SaveAssessment(ctx, ports.ROIAssessment{
		CleaningCost:      req.CleaningCost,
		DaysSinceCleaning: req.DaysSinceCleaning,
		Result:            res,
	})
	if err != nil {
		return nil, "", fmt.Errorf("assess roi: save assessment: %w", err)
	}
	return res, id, nil
}
