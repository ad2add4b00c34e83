package handlers

import (
	"log"
	"net/http"
	"solar-cleaning-service/internal/api/dto"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
)

// SiteHandler exposes read-only panel site retrieval endpoints.
type SiteHandler struct {
	Repo ports.SiteRepository
}

func (h *SiteHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	sites, err := h.Repo.ListSites(r.Context())
	if err != nil {
		log.Printf("req_id=%s list sites failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListSitesResponse(sites))
}
