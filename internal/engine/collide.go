package engine

import (
	"math"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/vec"
)

// resolveCollisions scans every unordered pair once, merging bodies
// whose separation is below the sum of their radii. Removals and
// additions are batched and applied after the full scan: a body
// consumed by one merge cannot match again in the same pass, and a
// triple overlap resolves as one pairwise merge per pass, first come
// first served in registry order.
func (s *Simulation) resolveCollisions() {
	bodies := s.registry.Bodies()

	var removed map[uint64]bool
	var merged []*body.Body

	n := len(bodies)
	for i := 0; i < n; i++ {
		a := bodies[i]
		if removed[a.ID] {
			continue
		}
		for j := i + 1; j < n; j++ {
			b := bodies[j]
			if removed[b.ID] {
				continue
			}
			if a.Position.Dist(b.Position) >= a.Radius+b.Radius {
				continue
			}

			if removed == nil {
				removed = make(map[uint64]bool)
			}
			removed[a.ID] = true
			removed[b.ID] = true
			merged = append(merged, merge(a, b))
			break
		}
	}

	if len(merged) > 0 {
		s.registry.Replace(removed, merged)
	}
}

// merge combines two overlapping bodies. Mass and momentum are
// conserved; a fixed input anchors the result at zero velocity. The
// radius adds by volume rather than re-deriving from the summed mass,
// so repeated merges keep the implicit constant-density assumption.
func merge(a, b *body.Body) *body.Body {
	mass := a.Mass + b.Mass

	pos := a.Position.Scale(a.Mass).
		Add(b.Position.Scale(b.Mass)).
		Scale(1 / mass)

	vel := vec.Zero
	if !a.Fixed && !b.Fixed {
		vel = a.Velocity.Scale(a.Mass).
			Add(b.Velocity.Scale(b.Mass)).
			Scale(1 / mass)
	}

	r3 := a.Radius*a.Radius*a.Radius + b.Radius*b.Radius*b.Radius

	return &body.Body{
		Mass:     mass,
		Position: pos,
		Velocity: vel,
		Radius:   math.Cbrt(r3),
		Kind:     body.Dominant(a.Kind, b.Kind, a.Mass, b.Mass),
		Fixed:    a.Fixed || b.Fixed,
	}
}
