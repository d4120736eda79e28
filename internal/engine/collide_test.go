package engine

import (
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravlab/internal/body"
	"github.com/san-kum/gravlab/internal/vec"
)

func TestCollisions(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Collision Resolver Suite")
}

var _ = Describe("collision resolver", func() {
	var s *Simulation

	BeforeEach(func() {
		s = NewInteractive()
	})

	overlap := func(massA, massB float64) (*body.Body, *body.Body) {
		a, err := s.Add(body.Spec{Mass: massA})
		Expect(err).NotTo(HaveOccurred())
		b, err := s.Add(body.Spec{Mass: massB, Position: vec.Vec3{X: 0.01}})
		Expect(err).NotTo(HaveOccurred())
		return a, b
	}

	It("conserves mass and momentum", func() {
		a, b := overlap(2, 3)
		a.Velocity = vec.Vec3{X: 1}
		b.Velocity = vec.Vec3{Y: -2}

		momentum := a.Velocity.Scale(a.Mass).Add(b.Velocity.Scale(b.Mass))
		s.resolveCollisions()

		Expect(s.Len()).To(Equal(1))
		m := s.Bodies()[0]
		Expect(m.Mass).To(Equal(5.0))
		p := m.Velocity.Scale(m.Mass)
		Expect(p.X).To(BeNumerically("~", momentum.X, 1e-12))
		Expect(p.Y).To(BeNumerically("~", momentum.Y, 1e-12))
		Expect(p.Z).To(BeNumerically("~", momentum.Z, 1e-12))
	})

	It("places the merged body at the mass-weighted centroid", func() {
		_, _ = overlap(1, 3)
		s.resolveCollisions()

		m := s.Bodies()[0]
		Expect(m.Position.X).To(BeNumerically("~", 0.0075, 1e-12))
	})

	It("combines radii by volume", func() {
		a, b := overlap(2, 3)
		want := math.Cbrt(math.Pow(a.Radius, 3) + math.Pow(b.Radius, 3))

		s.resolveCollisions()
		Expect(s.Bodies()[0].Radius).To(BeNumerically("~", want, 1e-12))
	})

	It("assigns the merged body a fresh id", func() {
		a, b := overlap(1, 1)
		s.resolveCollisions()

		m := s.Bodies()[0]
		Expect(m.ID).To(BeNumerically(">", a.ID))
		Expect(m.ID).To(BeNumerically(">", b.ID))
	})

	It("anchors the result when one input is fixed", func() {
		a, b := overlap(2, 3)
		a.Fixed = true
		b.Velocity = vec.Vec3{X: 4}

		s.resolveCollisions()
		m := s.Bodies()[0]
		Expect(m.Velocity).To(Equal(vec.Zero))
		Expect(m.Fixed).To(BeTrue())
	})

	Describe("kind of the merge product", func() {
		It("follows the heavier body", func() {
			a, _ := overlap(1, 3)
			a.Kind = body.Planet
			// b stays a star and is heavier

			s.resolveCollisions()
			Expect(s.Bodies()[0].Kind).To(Equal(body.Star))
		})

		It("always prefers a compact object regardless of mass", func() {
			a, _ := overlap(1, 1000)
			a.Kind = body.Compact

			s.resolveCollisions()
			Expect(s.Bodies()[0].Kind).To(Equal(body.Compact))
		})
	})

	It("merges at most pairwise in a single pass", func() {
		// Three bodies in a row, all pairwise overlapping: the first
		// pair consumes each other, the third survives the pass.
		for i := 0; i < 3; i++ {
			_, err := s.Add(body.Spec{Mass: 1, Position: vec.Vec3{X: 0.01 * float64(i)}})
			Expect(err).NotTo(HaveOccurred())
		}

		s.resolveCollisions()
		Expect(s.Len()).To(Equal(2))

		masses := []float64{s.Bodies()[0].Mass, s.Bodies()[1].Mass}
		Expect(masses).To(ConsistOf(1.0, 2.0))
	})

	It("still merges when the registry is at capacity", func() {
		s = NewInteractive(WithCapacity(2))
		overlap(1, 1)

		s.resolveCollisions()
		Expect(s.Len()).To(Equal(1))
		Expect(s.Bodies()[0].Mass).To(Equal(2.0))
	})

	It("leaves separated bodies alone", func() {
		s.Add(body.Spec{Mass: 1})
		s.Add(body.Spec{Mass: 1, Position: vec.Vec3{X: 10}})

		s.resolveCollisions()
		Expect(s.Len()).To(Equal(2))
	})
})
