package trajectory

import "github.com/san-kum/armctl/internal/joint"

// Trajectory produces the desired joint positions and velocities at an
// elapsed time t. Implementations must be pure functions of t; the
// control loop re-evaluates every tick and never passes a negative t.
type Trajectory interface {
	At(t float64) joint.Setpoint
	Dim() int
}

// Constant holds every joint at a fixed position with zero desired
// velocity.
type Constant struct {
	target joint.Vector
}

func NewConstant(target joint.Vector) *Constant {
	return &Constant{target: target.Clone()}
}

func (c *Constant) Dim() int {
	return len(c.target)
}

func (c *Constant) At(t float64) joint.Setpoint {
	return joint.Setpoint{
		Position: c.target.Clone(),
		Velocity: joint.Zero(len(c.target)),
	}
}
