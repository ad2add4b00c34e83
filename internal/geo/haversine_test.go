package geo

import (
	"math"
	"math/rand/v2"
	"solar-cleaning-service/internal/domain"
	"testing"
)

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude along a meridian is R*pi/180.
	got := HaversineKm(domain.Point{Lat: 0, Lng: 0}, domain.Point{Lat: 1, Lng: 0})
	want := EarthRadiusKm * math.Pi / 180
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", got, want)
	}

	// Bangalore -> Chennai, roughly 290 km.
	blr := domain.Point{Lat: 12.9716, Lng: 77.5946}
	maa := domain.Point{Lat: 13.0827, Lng: 80.2707}
	if d := HaversineKm(blr, maa); d < 285 || d > 295 {
		t.Fatalf("BLR->MAA = %.2f km, want ~290", d)
	}
}

func TestHaversineSymmetricAndZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := 0; i < 200; i++ {
		a := domain.Point{Lat: rng.Float64()*180 - 90, Lng: rng.Float64()*360 - 180}
		b := domain.Point{Lat: rng.Float64()*180 - 90, Lng: rng.Float64()*360 - 180}

		if ab, ba := HaversineKm(a, b), HaversineKm(b, a); ab != ba {
			t.Fatalf("asymmetric distance for %v %v: %v != %v", a, b, ab, ba)
		}
		if d := HaversineKm(a, a); d != 0 {
			t.Fatalf("HaversineKm(a, a) = %v, want 0 for %v", d, a)
		}
	}
}

func TestHaversineProvider(t *testing.T) {
	a := domain.Point{Lat: 0, Lng: 0}
	b := domain.Point{Lat: 0, Lng: 2}
	if got, want := (Haversine{}).DistanceKm(a, b), HaversineKm(a, b); got != want {
		t.Fatalf("provider = %v, want %v", got, want)
	}
}
