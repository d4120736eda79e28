package engine

import (
	"errors"
	"math"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/vec"
)

// Mode selects the parameterization of the integrator.
type Mode int

const (
	// Interactive is the place-and-watch mode: tight softening, ten
	// substeps, collision merging enabled.
	Interactive Mode = iota
	// Cluster is the galaxy-cluster mode: wide softening, eight
	// substeps, no collisions.
	Cluster
)

func (m Mode) String() string {
	if m == Cluster {
		return "cluster"
	}
	return "interactive"
}

// ErrInvalidTimestep indicates a negative or non-finite dt passed to
// Step. NaNs are rejected here rather than allowed to propagate, since
// a single poisoned substep would corrupt the whole body set.
var ErrInvalidTimestep = errors.New("gravlab: invalid timestep")

const (
	gravityConst = 1.0

	interactiveSoftening = 0.05
	interactiveSubsteps  = 10

	clusterSoftening = 0.5
	clusterSubsteps  = 8

	extentFloor = 10.0
)

// Simulation is a direct-summation gravitational N-body integrator,
// advanced synchronously by Step. It exclusively owns its body set;
// callers read bodies between steps but never mutate them.
type Simulation struct {
	registry   *body.Registry
	mode       Mode
	g          float64
	softening  float64
	substeps   int
	collisions bool

	oldAcc []vec.Vec3 // previous-pass accelerations, reused across steps
}

// Option overrides a simulation parameter at construction time.
type Option func(*Simulation)

// WithCapacity sets the maximum body count.
func WithCapacity(n int) Option {
	return func(s *Simulation) { s.registry = body.NewRegistry(n) }
}

// WithSoftening overrides the softening length.
func WithSoftening(eps float64) Option {
	return func(s *Simulation) { s.softening = eps }
}

// WithSubsteps overrides the fixed substep count.
func WithSubsteps(n int) Option {
	return func(s *Simulation) {
		if n > 0 {
			s.substeps = n
		}
	}
}

// NewInteractive builds a simulation for the interactive mode.
func NewInteractive(opts ...Option) *Simulation {
	s := &Simulation{
		registry:   body.NewRegistry(body.DefaultCapacity),
		mode:       Interactive,
		g:          gravityConst,
		softening:  interactiveSoftening,
		substeps:   interactiveSubsteps,
		collisions: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewCluster builds a simulation for the galaxy-cluster mode.
// Collisions stay off regardless of SetCollisionsEnabled.
func NewCluster(opts ...Option) *Simulation {
	s := &Simulation{
		registry:  body.NewRegistry(body.DefaultCapacity),
		mode:      Cluster,
		g:         gravityConst,
		softening: clusterSoftening,
		substeps:  clusterSubsteps,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Simulation) Mode() Mode { return s.mode }

// Add creates a body. At capacity it returns body.ErrAtCapacity and
// changes nothing; malformed numeric input returns body.ErrInvalidSpec.
// The kind is clamped to the mode's set: stellar kinds in interactive
// mode, galaxy kinds in cluster mode, so the zero-value kind maps to
// the mode's baseline (Star or Spiral).
func (s *Simulation) Add(spec body.Spec) (*body.Body, error) {
	spec.Kind = s.normalizeKind(spec.Kind)
	return s.registry.Add(spec)
}

func (s *Simulation) normalizeKind(k body.Kind) body.Kind {
	if s.mode == Cluster {
		if k != body.Spiral && k != body.Elliptical {
			return body.Spiral
		}
		return k
	}
	if k == body.Spiral || k == body.Elliptical {
		return body.Star
	}
	return k
}

// Remove deletes a body by id; absent ids are a no-op.
func (s *Simulation) Remove(id uint64) {
	s.registry.Remove(id)
}

// Clear empties the body set without resetting the id counter.
func (s *Simulation) Clear() {
	s.registry.Clear()
}

// Bodies returns the current bodies in insertion order.
func (s *Simulation) Bodies() []*body.Body {
	return s.registry.Bodies()
}

func (s *Simulation) Len() int { return s.registry.Len() }

// SetCollisionsEnabled toggles collision merging. Ignored in cluster
// mode, which never merges.
func (s *Simulation) SetCollisionsEnabled(on bool) {
	if s.mode == Interactive {
		s.collisions = on
	}
}

func (s *Simulation) CollisionsEnabled() bool { return s.collisions }

// Step advances the system by dt using the fixed substep count. dt
// must be finite and non-negative; dt == 0 is a valid no-op.
func (s *Simulation) Step(dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrInvalidTimestep
	}
	if dt == 0 {
		return nil
	}
	sub := dt / float64(s.substeps)
	for i := 0; i < s.substeps; i++ {
		s.substep(sub)
	}
	return nil
}

// substep performs one velocity-Verlet step: drift on the current
// accelerations, recompute forces at the new positions, then kick with
// the average of old and new accelerations. Fixed bodies source
// gravity but are never moved.
func (s *Simulation) substep(dt float64) {
	bodies := s.registry.Bodies()

	s.accumulate(bodies)

	dt2 := dt * dt
	for _, b := range bodies {
		if b.Fixed {
			continue
		}
		b.Position = b.Position.
			Add(b.Velocity.Scale(dt)).
			Add(b.Acceleration.Scale(0.5 * dt2))
	}

	if len(s.oldAcc) < len(bodies) {
		s.oldAcc = make([]vec.Vec3, len(bodies))
	}
	for i, b := range bodies {
		s.oldAcc[i] = b.Acceleration
	}

	s.accumulate(bodies)

	halfDt := 0.5 * dt
	for i, b := range bodies {
		if b.Fixed {
			continue
		}
		b.Velocity = b.Velocity.
			Add(s.oldAcc[i].Add(b.Acceleration).Scale(halfDt))
	}

	// Collision scan runs after every substep, not once per Step call.
	// At S=10 this detects overlaps 10x per frame, which changes merge
	// timing for fast close encounters; keep the cadence as-is.
	if s.collisions && s.mode == Interactive {
		s.resolveCollisions()
	}
}

// accumulate recomputes every body's acceleration with a symmetric
// pairwise pass: each unordered pair is visited once and the force
// applied to both sides with opposite sign.
func (s *Simulation) accumulate(bodies []*body.Body) {
	for _, b := range bodies {
		b.Acceleration = vec.Zero
	}

	eps2 := s.softening * s.softening
	n := len(bodies)
	for i := 0; i < n; i++ {
		bi := bodies[i]
		for j := i + 1; j < n; j++ {
			bj := bodies[j]

			d := bj.Position.Sub(bi.Position)
			r2 := d.NormSq() + eps2
			f := s.g / (r2 * math.Sqrt(r2))

			if !bi.Fixed {
				bi.Acceleration = bi.Acceleration.Add(d.Scale(f * bj.Mass))
			}
			if !bj.Fixed {
				bj.Acceleration = bj.Acceleration.Sub(d.Scale(f * bi.Mass))
			}
		}
	}
}
