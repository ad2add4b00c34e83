package handlers

import (
	"bytes"
	"math/rand/v2"
	"net/http"
	"solar-cleaning-service/internal/adapters/report"
	"solar-cleaning-service/internal/services"
	"strconv"
)

const (
	defaultReportCleaningCost = 2500.0
	defaultReportDaysSince    = 14.0
)

type ReportHandler struct {
	Economics *EconomicsHandler
}

// EnergyXLSX exports the simulated energy series with an ROI and cleaning
// frequency summary as an XLSX workbook.
func (h *ReportHandler) EnergyXLSX(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	days, seed, ok := h.Economics.seriesParams(w, r)
	if !ok {
		return
	}

	cost, ok := floatParam(w, r, "cleaning_cost", defaultReportCleaningCost)
	if !ok {
		return
	}
	daysSince, ok := floatParam(w, r, "days_since_cleaning", defaultReportDaysSince)
	if !ok {
		return
	}

	m := h.Economics.model()
	t := m.Tables

	series, err := m.EnergySeries(t.Profile, days, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		writeServiceError(w, r, "energy report", err)
		return
	}

	roi, _, err := h.Economics.Assessor.AssessROI(r.Context(), services.AssessROIRequest{
		CleaningCost:      cost,
		DaysSinceCleaning: daysSince,
		Profile:           t.Profile,
		Tariff:            t.Tariff,
		Impact:            t.Impact,
	})
	if err != nil {
		writeServiceError(w, r, "energy report", err)
		return
	}

	freq, err := m.OptimalCleaningFrequency(cost, t.Profile, t.Tariff, t.Impact)
	if err != nil {
		writeServiceError(w, r, "energy report", err)
		return
	}

	var buf bytes.Buffer
	err = report.WriteEnergyWorkbook(&buf, report.EnergyWorkbook{
		Profile:   t.Profile,
		Series:    series,
		ROI:       roi,
		Frequency: freq,
	})
	if err != nil {
		writeServiceError(w, r, "energy report", err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="energy.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func floatParam(w http.ResponseWriter, r *http.Request, name string, fallback float64) (float64, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, name+" must be a number")
		return 0, false
	}
	return f, true
}
