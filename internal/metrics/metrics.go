package metrics

import (
	"math"

	"github.com/san-kum/gravlab/internal/engine"
)

// Metric observes a simulation once per frame and reduces what it saw
// to a single value.
type Metric interface {
	Name() string
	Observe(s *engine.Simulation, t float64)
	Value() float64
	Reset()
}

// EnergyDrift tracks the maximum relative deviation of total energy
// from its first observed value. For a symplectic integrator this
// should stay small over long runs.
type EnergyDrift struct {
	initial float64
	max     float64
	samples int
}

func NewEnergyDrift() *EnergyDrift { return &EnergyDrift{} }

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(s *engine.Simulation, t float64) {
	energy := s.TotalEnergy()
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.max = math.Max(e.max, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.max }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.max = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum growth of |total momentum| over its
// first observed value. With no fixed bodies and collisions off this
// measures integrator asymmetry and should sit near zero.
type MomentumDrift struct {
	initial float64
	max     float64
	samples int
}

func NewMomentumDrift() *MomentumDrift { return &MomentumDrift{} }

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(s *engine.Simulation, t float64) {
	p := s.Momentum().Norm()
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.max = math.Max(m.max, math.Abs(p-m.initial))
}

func (m *MomentumDrift) Value() float64 { return m.max }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.max = 0
	m.samples = 0
}

// Population reports the body count at the last observation. In an
// interactive run the difference from the starting count is the number
// of merges.
type Population struct {
	last int
}

func NewPopulation() *Population { return &Population{} }

func (p *Population) Name() string { return "population" }

func (p *Population) Observe(s *engine.Simulation, t float64) {
	p.last = s.Len()
}

func (p *Population) Value() float64 { return float64(p.last) }

func (p *Population) Reset() { p.last = 0 }
