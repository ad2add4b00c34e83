package repositories

import (
	"context"
	"solar-cleaning-service/internal/domain"
	"sync"
)

// In-memory SiteRepository used when no database is configured.
type MemorySiteRepository struct {
	mu    sync.RWMutex
	sites []domain.PanelSite
}

func NewMemorySiteRepository(sites []domain.PanelSite) *MemorySiteRepository {
	r := &MemorySiteRepository{}
	r.Replace(sites)
	return r
}

// Return a copy of the stored sites in insertion order.
func (r *MemorySiteRepository) ListSites(ctx context.Context) ([]domain.PanelSite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.PanelSite, len(r.sites))
	copy(out, r.sites)
	return out, nil
}

// Replace swaps the stored sites for a copy of sites.
func (r *MemorySiteRepository) Replace(sites []domain.PanelSite) {
	cp := make([]domain.PanelSite, len(sites))
	copy(cp, sites)

	r.mu.Lock()
	r.sites = cp
	r.mu.Unlock()
}
