package body

import "github.com/san-kum/gravlab/internal/vec"

// Body is a simulated point mass. Acceleration is a scratch field,
// fully recomputed on every force pass; it carries no meaning between
// steps. Radius is derived from mass and kind at creation and is used
// for collision detection only, never for gravity.
type Body struct {
	ID           uint64
	Mass         float64
	Position     vec.Vec3
	Velocity     vec.Vec3
	Acceleration vec.Vec3
	Radius       float64
	Kind         Kind
	Fixed        bool
}

// Spec describes a body to be created. Velocity defaults to the zero
// vector, Kind to Star, Fixed to false.
type Spec struct {
	Mass     float64
	Position vec.Vec3
	Velocity vec.Vec3
	Kind     Kind
	Fixed    bool
}
