package body

import "math"

// Kind classifies a body. Interactive simulations use the stellar
// kinds, cluster simulations use the galaxy kinds. The kind affects
// the derived radius and, on merge, which side names the result.
type Kind int

const (
	Star Kind = iota
	Planet
	Compact
	Spiral
	Elliptical
)

func (k Kind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case Compact:
		return "compact"
	case Spiral:
		return "spiral"
	case Elliptical:
		return "elliptical"
	default:
		return "unknown"
	}
}

// ParseKind maps a name back to a Kind, defaulting to Star.
func ParseKind(s string) Kind {
	switch s {
	case "planet":
		return Planet
	case "compact":
		return Compact
	case "spiral":
		return Spiral
	case "elliptical":
		return Elliptical
	default:
		return Star
	}
}

// Dominant decides which kind a merge product takes. Compact objects
// always win; otherwise the heavier input names the result, with exact
// ties going to a (the body encountered first).
func Dominant(a, b Kind, massA, massB float64) Kind {
	if a == Compact || b == Compact {
		return Compact
	}
	if massB > massA {
		return b
	}
	return a
}

// densityCoeff maps a kind to the radius scale used by RadiusFor.
// Compact objects are far denser than stars; galaxies are diffuse.
func densityCoeff(k Kind) float64 {
	switch k {
	case Planet:
		return 0.12
	case Compact:
		return 0.04
	case Spiral:
		return 1.8
	case Elliptical:
		return 1.4
	default: // Star
		return 0.25
	}
}

// RadiusFor derives a body radius from mass and kind. Constant-density
// cube-root scaling, with a per-kind coefficient. The radius is fixed
// at creation time and never recomputed from a mutated mass.
func RadiusFor(k Kind, mass float64) float64 {
	return densityCoeff(k) * math.Cbrt(mass)
}
