package dto

import (
	"fmt"
	"solar-cleaning-service/internal/domain"
)

type SiteResponse struct {
	SiteID string  `json:"site_id"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Status string  `json:"status"`
}

type ListSitesResponse struct {
	Sites      []SiteResponse `json:"sites"`
	Count      int            `json:"count"`
	DirtyCount int            `json:"dirty_count"`
}

// PointRequest is a caller-supplied coordinate. Both fields are required;
// pointers tell a missing value apart from zero.
type PointRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// ToPoint converts the request into a point, failing when either coordinate
// is missing. field names the argument in the returned error.
func (p PointRequest) ToPoint(field string) (domain.Point, error) {
	if p.Lat == nil || p.Lng == nil {
		return domain.Point{}, domain.Invalid(field, "lat and lng are required")
	}
	return domain.Point{Lat: *p.Lat, Lng: *p.Lng}, nil
}

// SiteRequest is a caller-supplied site in a route request.
type SiteRequest struct {
	SiteID string   `json:"site_id"`
	Lat    *float64 `json:"lat"`
	Lng    *float64 `json:"lng"`
	Status string   `json:"status"`
}

func NewListSitesResponse(sites []domain.PanelSite) ListSitesResponse {
	res := ListSitesResponse{
		Sites: make([]SiteResponse, 0, len(sites)),
		Count: len(sites),
	}
	for _, s := range sites {
		if s.NeedsCleaning() {
			res.DirtyCount++
		}
		res.Sites = append(res.Sites, SiteResponse{
			SiteID: s.ID,
			Lat:    s.Point.Lat,
			Lng:    s.Point.Lng,
			Status: string(s.Status),
		})
	}
	return res
}

// ToDomainSites validates and converts request sites. A nil input stays nil
// so the caller can fall back to stored sites.
func ToDomainSites(in []SiteRequest) ([]domain.PanelSite, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]domain.PanelSite, 0, len(in))
	for i, s := range in {
		if s.SiteID == "" {
			return nil, domain.Invalid("sites", "item %d: site_id is required", i)
		}
		if s.Lat == nil || s.Lng == nil {
			return nil, domain.Invalid("sites", "item %d: lat and lng are required", i)
		}
		status, err := domain.ParseSiteStatus(s.Status)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PanelSite{
			ID:     s.SiteID,
			Point:  domain.Point{Lat: *s.Lat, Lng: *s.Lng},
			Status: status,
		})
	}
	return out, nil
}

// ToDomainPoints converts a list of request points, naming each by index.
func ToDomainPoints(field string, in []PointRequest) ([]domain.Point, error) {
	out := make([]domain.Point, 0, len(in))
	for i, p := range in {
		pt, err := p.ToPoint(fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out = append(out, pt)
	}
	return out, nil
}
