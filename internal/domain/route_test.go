package domain

import (
	"errors"
	"math"
	"testing"
)

func TestRoutePath(t *testing.T) {
	depot := Point{Lat: 12.97, Lng: 77.59}

	empty := &Route{Depot: depot}
	if got := len(empty.Path()); got != 0 {
		t.Fatalf("empty route path len = %d, want 0", got)
	}

	r := &Route{
		Depot: depot,
		Stops: []RouteStop{
			{SiteID: "SP-0001", Point: Point{Lat: 12.98, Lng: 77.59}},
			{SiteID: "SP-0002", Point: Point{Lat: 12.99, Lng: 77.60}},
		},
	}

	path := r.Path()
	if len(path) != 4 {
		t.Fatalf("path len = %d, want 4", len(path))
	}
	if path[0] != depot || path[3] != depot {
		t.Fatalf("path must start and end at depot, got %v", path)
	}
	if path[1] != r.Stops[0].Point || path[2] != r.Stops[1].Point {
		t.Fatalf("path stops out of order: %v", path)
	}
}

func TestPointValidate(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		ok   bool
	}{
		{"origin", Point{}, true},
		{"bangalore", Point{Lat: 12.9716, Lng: 77.5946}, true},
		{"nan lat", Point{Lat: math.NaN()}, false},
		{"inf lng", Point{Lng: math.Inf(1)}, false},
		{"lat out of range", Point{Lat: 91}, false},
		{"lng out of range", Point{Lng: -181}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.p.Validate("depot")
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidInput) {
					t.Fatalf("error %v does not match ErrInvalidInput", err)
				}
				var ie *InvalidInputError
				if !errors.As(err, &ie) {
					t.Fatalf("error %T is not *InvalidInputError", err)
				}
			}
		})
	}
}

func TestDirtySitesKeepsInputOrder(t *testing.T) {
	sites := []PanelSite{
		{ID: "a", Status: StatusDirty},
		{ID: "b", Status: StatusClean},
		{ID: "c", Status: StatusModerate},
		{ID: "d", Status: StatusDirty},
	}

	got := DirtySites(sites)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "d" {
		t.Fatalf("DirtySites = %+v, want [a d]", got)
	}
}

func TestParseEnums(t *testing.T) {
	if s, err := ParseSiteStatus(" Dirty "); err != nil || s != StatusDirty {
		t.Fatalf("ParseSiteStatus = %q, %v", s, err)
	}
	if _, err := ParseSiteStatus("filthy"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ParseSiteStatus(filthy) err = %v, want ErrInvalidInput", err)
	}
	if d, err := ParseDustLevel("HIGH"); err != nil || d != DustHigh {
		t.Fatalf("ParseDustLevel = %q, %v", d, err)
	}
	if _, err := ParseDustLevel(""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("ParseDustLevel(\"\") err = %v, want ErrInvalidInput", err)
	}
}
