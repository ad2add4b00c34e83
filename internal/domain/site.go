package domain

import "strings"

// SiteStatus is the soiling state of a panel site.
type SiteStatus string

const (
	StatusClean    SiteStatus = "clean"
	StatusModerate SiteStatus = "moderate"
	StatusDirty    SiteStatus = "dirty"
)

// ParseSiteStatus accepts the three known statuses case-insensitively.
func ParseSiteStatus(s string) (SiteStatus, error) {
	switch st := SiteStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusClean, StatusModerate, StatusDirty:
		return st, nil
	default:
		return "", Invalid("status", "unknown site status %q", s)
	}
}

// Represents a single panel (or panel string) in the field.
// Only dirty sites are eligible for a cleaning visit.
type PanelSite struct {
	ID     string
	Point  Point
	Status SiteStatus
}

// NeedsCleaning reports whether the site should be visited by a cleaning run.
func (s PanelSite) NeedsCleaning() bool { return s.Status == StatusDirty }

// DirtySites returns the eligible sites in input order.
func DirtySites(sites []PanelSite) []PanelSite {
	out := make([]PanelSite, 0, len(sites))
	for _, s := range sites {
		if s.NeedsCleaning() {
			out = append(out, s)
		}
	}
	return out
}
