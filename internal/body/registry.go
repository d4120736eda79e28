package body

import (
	"errors"
	"math"
)

// DefaultCapacity bounds the population of a single registry.
const DefaultCapacity = 50

var (
	// ErrAtCapacity indicates the registry already holds its maximum
	// number of bodies. Routine during interactive placement; callers
	// are expected to handle it, not treat it as fatal.
	ErrAtCapacity = errors.New("gravlab: registry at capacity")

	// ErrInvalidSpec indicates a body spec with a non-positive or
	// non-finite mass, or non-finite position/velocity components.
	ErrInvalidSpec = errors.New("gravlab: invalid body spec")
)

// Registry owns the body set of one simulation instance. Bodies are
// kept in insertion order; that order is load-bearing, since the force
// and collision loops iterate it and merge tie-breaks depend on which
// body was encountered first.
type Registry struct {
	bodies   []*Body
	capacity int
	nextID   uint64
}

func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{
		bodies:   make([]*Body, 0, capacity),
		capacity: capacity,
	}
}

// Add creates a body from spec. It rejects with ErrAtCapacity when the
// registry is full and ErrInvalidSpec on malformed numeric input; in
// both cases the registry is left untouched.
func (r *Registry) Add(spec Spec) (*Body, error) {
	if err := validate(spec); err != nil {
		return nil, err
	}
	if len(r.bodies) >= r.capacity {
		return nil, ErrAtCapacity
	}
	return r.insert(spec), nil
}

func (r *Registry) insert(spec Spec) *Body {
	b := &Body{
		ID:       r.nextID,
		Mass:     spec.Mass,
		Position: spec.Position,
		Velocity: spec.Velocity,
		Radius:   RadiusFor(spec.Kind, spec.Mass),
		Kind:     spec.Kind,
		Fixed:    spec.Fixed,
	}
	r.nextID++
	r.bodies = append(r.bodies, b)
	return b
}

func validate(spec Spec) error {
	if spec.Mass <= 0 || math.IsNaN(spec.Mass) || math.IsInf(spec.Mass, 0) {
		return ErrInvalidSpec
	}
	if !spec.Position.IsFinite() || !spec.Velocity.IsFinite() {
		return ErrInvalidSpec
	}
	return nil
}

// Remove deletes the body with the given id. Absent ids are a no-op.
func (r *Registry) Remove(id uint64) {
	for i, b := range r.bodies {
		if b.ID == id {
			r.bodies = append(r.bodies[:i], r.bodies[i+1:]...)
			return
		}
	}
}

// Clear removes every body. The id counter is not reset, so ids stay
// unique across the lifetime of the registry.
func (r *Registry) Clear() {
	r.bodies = r.bodies[:0]
}

// Bodies returns the live body slice in insertion order. Callers must
// not reorder or resize it.
func (r *Registry) Bodies() []*Body {
	return r.bodies
}

func (r *Registry) Len() int      { return len(r.bodies) }
func (r *Registry) Capacity() int { return r.capacity }

// Replace applies a batch of removals and additions in one pass, in
// support of the collision resolver's mark-then-apply semantics. Added
// bodies arrive with their fields (including a merge-combined radius)
// already set; the registry assigns each a fresh id. The capacity cap
// is deliberately not checked: a merge replaces two bodies with one,
// so it can never grow the population past the cap.
func (r *Registry) Replace(remove map[uint64]bool, add []*Body) {
	if len(remove) > 0 {
		kept := r.bodies[:0]
		for _, b := range r.bodies {
			if !remove[b.ID] {
				kept = append(kept, b)
			}
		}
		for i := len(kept); i < len(r.bodies); i++ {
			r.bodies[i] = nil
		}
		r.bodies = kept
	}
	for _, b := range add {
		b.ID = r.nextID
		r.nextID++
		r.bodies = append(r.bodies, b)
	}
}
