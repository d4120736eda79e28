package preset

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/engine"
	"github.com/san-kum/gravlab/internal/vec"
)

// Builder constructs a fresh simulation in a named initial
// configuration. Randomized presets take their layout from seed.
type Builder func(seed int64) *engine.Simulation

var presets = map[string]Builder{
	"binary":       binary,
	"solar":        solar,
	"figure-eight": figureEight,
	"bh-cluster":   bhCluster,
	"galaxies":     galaxies,
}

// Get returns the builder for name.
func Get(name string) (Builder, error) {
	b, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, Names())
	}
	return b, nil
}

// Names lists the available presets in sorted order.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func mustAdd(s *engine.Simulation, spec body.Spec) {
	if _, err := s.Add(spec); err != nil {
		panic(fmt.Sprintf("preset body rejected: %v", err))
	}
}

// binary places two equal masses on a circular mutual orbit in the
// xz plane. Separation 3, so each orbits the barycenter at r = 1.5
// with v = sqrt(G*m / (4*r)).
func binary(int64) *engine.Simulation {
	s := engine.NewInteractive()
	r := 1.5
	v := math.Sqrt(1.0 / (4 * r))
	mustAdd(s, body.Spec{
		Mass:     1,
		Position: vec.Vec3{X: -r},
		Velocity: vec.Vec3{Z: -v},
	})
	mustAdd(s, body.Spec{
		Mass:     1,
		Position: vec.Vec3{X: r},
		Velocity: vec.Vec3{Z: v},
	})
	return s
}

// solar is a toy system: a fixed central star with planets on circular
// orbits at staggered radii and phases.
func solar(int64) *engine.Simulation {
	s := engine.NewInteractive()
	const starMass = 100.0
	mustAdd(s, body.Spec{Mass: starMass, Fixed: true})

	radii := []float64{4, 6.5, 9, 12.5}
	for i, r := range radii {
		v := math.Sqrt(starMass / r)
		phase := float64(i) * math.Pi / 3
		mustAdd(s, body.Spec{
			Mass:     0.05 + 0.03*float64(i),
			Kind:     body.Planet,
			Position: vec.Vec3{X: r * math.Cos(phase), Z: r * math.Sin(phase)},
			Velocity: vec.Vec3{X: -v * math.Sin(phase), Z: v * math.Cos(phase)},
		})
	}
	return s
}

// figureEight is the Chenciner-Montgomery three-body choreography:
// three unit masses chasing each other around a figure-eight curve.
func figureEight(int64) *engine.Simulation {
	s := engine.NewInteractive()
	s.SetCollisionsEnabled(false)

	px, py := 0.97000436, -0.24308753
	vx, vy := -0.93240737, -0.86473146

	mustAdd(s, body.Spec{
		Mass:     1,
		Position: vec.Vec3{X: px, Y: py},
		Velocity: vec.Vec3{X: -vx / 2, Y: -vy / 2},
	})
	mustAdd(s, body.Spec{
		Mass:     1,
		Position: vec.Vec3{X: -px, Y: -py},
		Velocity: vec.Vec3{X: -vx / 2, Y: -vy / 2},
	})
	mustAdd(s, body.Spec{
		Mass:     1,
		Velocity: vec.Vec3{X: vx, Y: vy},
	})
	return s
}

// bhCluster surrounds a heavy compact object with stars on randomized
// circular orbits.
func bhCluster(seed int64) *engine.Simulation {
	s := engine.NewInteractive()
	rng := rand.New(rand.NewSource(seed))

	const bhMass = 500.0
	mustAdd(s, body.Spec{Mass: bhMass, Kind: body.Compact})

	for i := 0; i < 20; i++ {
		r := 5 + 15*rng.Float64()
		phase := 2 * math.Pi * rng.Float64()
		incl := 0.3 * (rng.Float64() - 0.5)
		v := math.Sqrt(bhMass / r)
		mustAdd(s, body.Spec{
			Mass: 0.5 + rng.Float64(),
			Position: vec.Vec3{
				X: r * math.Cos(phase),
				Y: r * incl,
				Z: r * math.Sin(phase),
			},
			Velocity: vec.Vec3{
				X: -v * math.Sin(phase),
				Z: v * math.Cos(phase),
			},
		})
	}
	return s
}

// galaxies is the cluster-mode preset: a loose field of spirals and
// ellipticals with small random drift velocities.
func galaxies(seed int64) *engine.Simulation {
	s := engine.NewCluster()
	rng := rand.New(rand.NewSource(seed))

	for i := 0; i < 30; i++ {
		kind := body.Spiral
		if rng.Float64() < 0.4 {
			kind = body.Elliptical
		}
		mustAdd(s, body.Spec{
			Mass: 5 + 10*rng.Float64(),
			Kind: kind,
			Position: vec.Vec3{
				X: 40 * (rng.Float64() - 0.5),
				Y: 40 * (rng.Float64() - 0.5),
				Z: 40 * (rng.Float64() - 0.5),
			},
			Velocity: vec.Vec3{
				X: 0.4 * (rng.Float64() - 0.5),
				Y: 0.4 * (rng.Float64() - 0.5),
				Z: 0.4 * (rng.Float64() - 0.5),
			},
		})
	}
	return s
}
