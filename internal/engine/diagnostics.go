package engine

import (
	"math"

	"github.com/san-kum/gravlab/internal/vec"
)

// CenterOfMass returns the mass-weighted mean position, or the origin
// for an empty body set.
func (s *Simulation) CenterOfMass() vec.Vec3 {
	var com vec.Vec3
	total := 0.0
	for _, b := range s.registry.Bodies() {
		com = com.Add(b.Position.Scale(b.Mass))
		total += b.Mass
	}
	if total == 0 {
		return vec.Zero
	}
	return com.Scale(1 / total)
}

// TotalEnergy returns kinetic plus softened pairwise potential energy.
// The integrator never consumes this; it exists for validation and for
// external diagnostics display.
func (s *Simulation) TotalEnergy() float64 {
	bodies := s.registry.Bodies()
	eps2 := s.softening * s.softening

	ke := 0.0
	pe := 0.0
	for i, bi := range bodies {
		ke += 0.5 * bi.Mass * bi.Velocity.NormSq()
		for j := i + 1; j < len(bodies); j++ {
			bj := bodies[j]
			r := math.Sqrt(bi.Position.Sub(bj.Position).NormSq() + eps2)
			pe -= s.g * bi.Mass * bj.Mass / r
		}
	}
	return ke + pe
}

// Momentum returns the total linear momentum of the system.
func (s *Simulation) Momentum() vec.Vec3 {
	var p vec.Vec3
	for _, b := range s.registry.Bodies() {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// SystemExtent returns a camera-framing radius: 1.5 times the largest
// body distance from the center of mass, floored.
func (s *Simulation) SystemExtent() float64 {
	com := s.CenterOfMass()
	max := 0.0
	for _, b := range s.registry.Bodies() {
		if d := b.Position.Dist(com); d > max {
			max = d
		}
	}
	return math.Max(1.5*max, extentFloor)
}
