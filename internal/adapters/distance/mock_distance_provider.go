package distance

import (
	"math"
	"solar-cleaning-service/internal/domain"
)

type MockPair struct {
	From, To domain.Point
	Km       float64
}

// MockDistanceProvider serves fixed distances between known points.
// Pairs are symmetric unless both directions are given. Unknown pairs yield NaN.
type MockDistanceProvider struct {
	m     map[[2]domain.Point]float64
	calls int
}

func NewMockDistanceProvider(pairs []MockPair) *MockDistanceProvider {
	m := make(map[[2]domain.Point]float64, len(pairs)*2)
	for _, p := range pairs {
		if _, ok := m[[2]domain.Point{p.To, p.From}]; !ok {
			m[[2]domain.Point{p.To, p.From}] = p.Km
		}
		m[[2]domain.Point{p.From, p.To}] = p.Km
	}
	return &MockDistanceProvider{m: m}
}

func (p *MockDistanceProvider) DistanceKm(from, to domain.Point) float64 {
	p.calls++
	if from == to {
		return 0
	}
	d, ok := p.m[[2]domain.Point{from, to}]
	if !ok {
		return math.NaN()
	}
	return d
}

// Calls reports how many lookups were made. Not safe for concurrent use.
func (p *MockDistanceProvider) Calls() int { return p.calls }
