package handlers

import (
	"math/rand/v2"
	"net/http"
	"solar-cleaning-service/internal/api/dto"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/services"
	"strconv"
)

const (
	defaultSeriesDays = 30
	maxSeriesDays     = 366
)

// EconomicsHandler serves the soiling and cleaning-economics estimates.
// Request bodies are decoded over the configured tariff, profile and impact
// defaults.
type EconomicsHandler struct {
	Assessor *services.Assessor
	// Seed for the simulated energy series when the request omits one.
	Seed uint64
}

func (h *EconomicsHandler) model() *services.EconomicsModel { return h.Assessor.Model }

func (h *EconomicsHandler) defaultROIRequest() dto.ROIRequest {
	t := h.model().Tables
	return dto.ROIRequest{
		Profile: t.Profile,
		Tariff:  t.Tariff,
		Impact:  t.Impact,
	}
}

func (h *EconomicsHandler) Soiling(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	req := dto.SoilingRequest{WeatherFactor: 1.0, DustLevel: string(domain.DustMedium)}
	if !decodeJSON(w, r, &req) {
		return
	}

	level, err := domain.ParseDustLevel(req.DustLevel)
	if err != nil {
		writeServiceError(w, r, "estimate soiling", err)
		return
	}

	loss, err := h.model().Soiling.EstimateSoilingLoss(req.DaysSinceCleaning, req.WeatherFactor, level)
	if err != nil {
		writeServiceError(w, r, "estimate soiling", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.SoilingResponse{SoilingLossPercent: loss})
}

func (h *EconomicsHandler) ROI(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	req := h.defaultROIRequest()
	if !decodeJSON(w, r, &req) {
		return
	}

	res, id, err := h.Assessor.AssessROI(r.Context(), services.AssessROIRequest{
		CleaningCost:      req.CleaningCost,
		DaysSinceCleaning: req.DaysSinceCleaning,
		Profile:           req.Profile,
		Tariff:            req.Tariff,
		Impact:            req.Impact,
	})
	if err != nil {
		writeServiceError(w, r, "assess roi", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewROIResponse(id, res))
}

func (h *EconomicsHandler) Frequency(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	req := h.defaultROIRequest()
	if !decodeJSON(w, r, &req) {
		return
	}

	f, err := h.model().OptimalCleaningFrequency(req.CleaningCost, req.Profile, req.Tariff, req.Impact)
	if err != nil {
		writeServiceError(w, r, "optimal cleaning frequency", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewFrequencyResponse(f))
}

func (h *EconomicsHandler) Energy(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	days, seed, ok := h.seriesParams(w, r)
	if !ok {
		return
	}

	series, err := h.model().EnergySeries(h.model().Tables.Profile, days, rand.New(rand.NewPCG(seed, seed)))
	if err != nil {
		writeServiceError(w, r, "energy series", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewEnergySeriesResponse(series))
}

// seriesParams reads the days and seed query parameters.
func (h *EconomicsHandler) seriesParams(w http.ResponseWriter, r *http.Request) (int, uint64, bool) {
	q := r.URL.Query()

	days := defaultSeriesDays
	if v := q.Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxSeriesDays {
			writeError(w, r, http.StatusBadRequest, "days must be an integer between 1 and 366")
			return 0, 0, false
		}
		days = n
	}

	seed := h.Seed
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "seed must be a non-negative integer")
			return 0, 0, false
		}
		seed = n
	}

	return days, seed, true
}
