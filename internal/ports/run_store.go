package ports

import (
	"context"
	"solar-cleaning-service/internal/domain"
)

// ROIAssessment is a single persisted ROI calculation and the inputs it used.
type ROIAssessment struct {
	CleaningCost      float64
	DaysSinceCleaning float64
	Result            *domain.ROIResult
}

// Port: durable record of planning runs and ROI assessments.
type RunStore interface {
	// Persist a cleaning plan and return its generated ID.
	SavePlan(ctx context.Context, plan *domain.CleaningPlan) (string, error)
	// Persist an ROI assessment and return its generated ID.
	SaveAssessment(ctx context.Context, a ROIAssessment) (string, error)
}
