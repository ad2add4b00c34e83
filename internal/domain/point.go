package domain

import "math"

// Immutable geographic coordinate in degrees (WGS84).
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Validate rejects non-finite and out-of-range coordinates.
// field names the argument in the returned error.
func (p Point) Validate(field string) error {
	if math.IsNaN(p.Lat) || math.IsInf(p.Lat, 0) {
		return Invalid(field+".lat", "must be a finite number, got %v", p.Lat)
	}
	if math.IsNaN(p.Lng) || math.IsInf(p.Lng, 0) {
		return Invalid(field+".lng", "must be a finite number, got %v", p.Lng)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return Invalid(field+".lat", "must be within [-90, 90], got %v", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return Invalid(field+".lng", "must be within [-180, 180], got %v", p.Lng)
	}
	return nil
}
