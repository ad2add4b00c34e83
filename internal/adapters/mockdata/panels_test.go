package mockdata

import (
	"math"
	"math/rand/v2"
	"reflect"
	"solar-cleaning-service/internal/domain"
	"testing"
)

func TestGeneratePanelsDistribution(t *testing.T) {
	panels, err := GeneratePanels(300, DefaultCenter, DefaultRadiusKm, rand.New(rand.NewPCG(42, 42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(panels) != 300 {
		t.Fatalf("len = %d, want 300", len(panels))
	}

	counts := map[domain.SiteStatus]int{}
	ids := map[string]bool{}
	for _, p := range panels {
		counts[p.Status]++
		if ids[p.ID] {
			t.Fatalf("duplicate id %q", p.ID)
		}
		ids[p.ID] = true

		// Grid spans ±radius/2 plus jitter around the centre.
		if math.Abs(p.Point.Lat-DefaultCenter.Lat) > 0.03 || math.Abs(p.Point.Lng-DefaultCenter.Lng) > 0.03 {
			t.Fatalf("panel %s at %+v is too far from centre", p.ID, p.Point)
		}
	}

	if counts[domain.StatusClean] != 210 || counts[domain.StatusModerate] != 60 || counts[domain.StatusDirty] != 30 {
		t.Fatalf("counts = %v, want 210/60/30", counts)
	}
	if panels[0].ID != "SP-0001" || panels[299].ID != "SP-0300" {
		t.Fatalf("ids %s..%s, want SP-0001..SP-0300", panels[0].ID, panels[299].ID)
	}
}

func TestGeneratePanelsRoundingLeftoversAreClean(t *testing.T) {
	panels, err := GeneratePanels(7, DefaultCenter, 1, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// floor(4.9)=4 clean, floor(1.4)=1 moderate, floor(0.7)=0 dirty, 2 leftovers clean.
	counts := map[domain.SiteStatus]int{}
	for _, p := range panels {
		counts[p.Status]++
	}
	if counts[domain.StatusClean] != 6 || counts[domain.StatusModerate] != 1 || counts[domain.StatusDirty] != 0 {
		t.Fatalf("counts = %v, want 6/1/0", counts)
	}
}

func TestGeneratePanelsIsSeeded(t *testing.T) {
	a, _ := GeneratePanels(50, DefaultCenter, 2, rand.New(rand.NewPCG(9, 9)))
	b, _ := GeneratePanels(50, DefaultCenter, 2, rand.New(rand.NewPCG(9, 9)))
	if !reflect.DeepEqual(a, b) {
		t.Fatal("same seed produced different panels")
	}
}

func TestGeneratePanelsRejectsInvalidInput(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	if _, err := GeneratePanels(-1, DefaultCenter, 1, rng); err == nil {
		t.Fatal("expected error for negative count")
	}
	if _, err := GeneratePanels(10, domain.Point{Lat: 99}, 1, rng); err == nil {
		t.Fatal("expected error for invalid centre")
	}
	if _, err := GeneratePanels(10, DefaultCenter, math.NaN(), rng); err == nil {
		t.Fatal("expected error for NaN radius")
	}
	empty, err := GeneratePanels(0, DefaultCenter, 1, rng)
	if err != nil || len(empty) != 0 {
		t.Fatalf("GeneratePanels(0) = %v, %v", empty, err)
	}
}
