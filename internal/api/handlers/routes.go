package handlers

import (
	"net/http"
	"solar-cleaning-service/internal/api/dto"
	"solar-cleaning-service/internal/domain"
	"solar-cleaning-service/internal/services"
)

const maxFleetDepots = 10

type RouteHandler struct {
	Planner      *services.Planner
	DefaultDepot domain.Point
}

// Plan builds a cleaning route from one depot over the given sites, or over
// the stored sites when none are sent.
func (h *RouteHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	depot := h.DefaultDepot
	if req.Depot != nil {
		d, err := req.Depot.ToPoint("depot")
		if err != nil {
			writeServiceError(w, r, "plan route", err)
			return
		}
		depot = d
	}

	sites, err := dto.ToDomainSites(req.Sites)
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	plan, err := h.Planner.PlanCleaning(r.Context(), services.PlanCleaningRequest{
		Depot: depot,
		Sites: sites,
	})
	if err != nil {
		writeServiceError(w, r, "plan route", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewPlanResponse(plan))
}

// Fleet plans one route per depot, assigning each site to its nearest depot.
func (h *RouteHandler) Fleet(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.FleetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Depots) == 0 || len(req.Depots) > maxFleetDepots {
		writeError(w, r, http.StatusBadRequest, "depots must contain between 1 and 10 points")
		return
	}

	depots, err := dto.ToDomainPoints("depots", req.Depots)
	if err != nil {
		writeServiceError(w, r, "plan fleet", err)
		return
	}

	sites, err := dto.ToDomainSites(req.Sites)
	if err != nil {
		writeServiceError(w, r, "plan fleet", err)
		return
	}

	plans, err := h.Planner.PlanFleet(r.Context(), services.PlanFleetRequest{
		Depots: depots,
		Sites:  sites,
	})
	if err != nil {
		writeServiceError(w, r, "plan fleet", err)
		return
	}

	res := dto.FleetResponse{Plans: make([]dto.PlanResponse, 0, len(plans))}
	for _, p := range plans {
		res.Plans = append(res.Plans, dto.NewPlanResponse(p))
	}
	writeJSON(w, r, http.StatusOK, res)
}
