// Package dynamics provides fixed-step integrators for the simulated
// actuator backend.
package dynamics

import "github.com/san-kum/armctl/internal/joint"

// System is a first-order ODE dx/dt = f(x, u, t) driven by a torque
// input u.
type System interface {
	Derive(x, u joint.Vector, t float64) joint.Vector
	StateDim() int
}

// Integrator advances a system state by one step of duration dt.
type Integrator interface {
	Step(sys System, x, u joint.Vector, t, dt float64) joint.Vector
}
