// Package engine implements a direct-summation gravitational N-body
// simulation advanced by fixed-substep velocity-Verlet integration.
//
// A [Simulation] owns its body set and is driven synchronously:
//
//	sim := engine.NewInteractive()
//	sim.Add(body.Spec{Mass: 1, Position: vec.Vec3{X: -1.5}})
//	sim.Add(body.Spec{Mass: 1, Position: vec.Vec3{X: 1.5}})
//	for running {
//	    sim.Step(dt)
//	}
//
// Two parameterizations share the integrator: [NewInteractive] (tight
// softening, ten substeps, collision merging) and [NewCluster] (wide
// softening, eight substeps, no collisions). Pairwise forces use a
// softened Newtonian kernel, G/(r^2 + eps^2)^(3/2), so near-contact
// encounters stay bounded.
//
// # Thread Safety
//
// A Simulation is not safe for concurrent use. Step blocks the caller
// for its whole duration; readers consume body state between steps.
// Cost per Step is O(S*n^2) with n capped at the registry capacity.
package engine
