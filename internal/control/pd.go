// Package control implements the proportional-derivative torque law.
package control

import "github.com/san-kum/armctl/internal/joint"

// PD maps a measured state and a desired setpoint to a torque command.
// The law is memoryless: no integral term, no history, no saturation.
// Joints are independent; there is no cross-coupling.
type PD struct {
	gains joint.Gains
}

func NewPD(gains joint.Gains) *PD {
	return &PD{gains: joint.Gains{P: gains.P.Clone(), D: gains.D.Clone()}}
}

func (c *PD) Gains() joint.Gains {
	return c.gains
}

// Torque computes tau[j] = P[j]*(qd[j]-q[j]) + D[j]*(dqd[j]-dq[j]).
// Dimension agreement is established once at loop construction, so no
// per-tick checks happen here.
func (c *PD) Torque(measured joint.State, desired joint.Setpoint) joint.Vector {
	n := len(c.gains.P)
	tau := joint.Zero(n)
	for j := 0; j < n; j++ {
		posErr := desired.Position[j] - measured.Position[j]
		velErr := desired.Velocity[j] - measured.Velocity[j]
		tau[j] = c.gains.P[j]*posErr + c.gains.D[j]*velErr
	}
	return tau
}
