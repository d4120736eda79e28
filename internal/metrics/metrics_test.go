package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/engine"
	"github.com/san-kum/gravlab/internal/vec"
)

func newBinary(t *testing.T) *engine.Simulation {
	t.Helper()
	s := engine.NewInteractive()
	s.SetCollisionsEnabled(false)

	r := 1.5
	v := math.Sqrt(1.0 / (4 * r))
	for _, spec := range []body.Spec{
		{Mass: 1, Position: vec.Vec3{X: -r}, Velocity: vec.Vec3{Z: -v}},
		{Mass: 1, Position: vec.Vec3{X: r}, Velocity: vec.Vec3{Z: v}},
	} {
		if _, err := s.Add(spec); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	return s
}

func TestEnergyDriftStaysSmall(t *testing.T) {
	s := newBinary(t)
	m := NewEnergyDrift()

	for i := 0; i < 600; i++ {
		m.Observe(s, float64(i)/60)
		if err := s.Step(1.0 / 60); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if m.Value() > 0.01 {
		t.Errorf("energy drift too large: %f", m.Value())
	}
}

func TestEnergyDriftReset(t *testing.T) {
	s := newBinary(t)
	m := NewEnergyDrift()

	m.Observe(s, 0)
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	s := newBinary(t)
	m := NewMomentumDrift()

	for i := 0; i < 300; i++ {
		m.Observe(s, float64(i)/60)
		if err := s.Step(1.0 / 60); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}

	if m.Value() > 1e-9 {
		t.Errorf("momentum should be conserved, drifted %g", m.Value())
	}
}

func TestPopulationTracksMerges(t *testing.T) {
	s := engine.NewInteractive()
	s.Add(body.Spec{Mass: 2})
	s.Add(body.Spec{Mass: 3, Position: vec.Vec3{X: 0.01}})

	m := NewPopulation()
	m.Observe(s, 0)
	if m.Value() != 2 {
		t.Fatalf("expected population 2, got %f", m.Value())
	}

	if err := s.Step(1.0 / 60); err != nil {
		t.Fatalf("step failed: %v", err)
	}
	m.Observe(s, 1.0/60)
	if m.Value() != 1 {
		t.Errorf("expected population 1 after merge, got %f", m.Value())
	}
}
