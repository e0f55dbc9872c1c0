package trajectory

import (
	"math"

	"github.com/san-kum/armctl/internal/joint"
)

// Evaluator defines one joint's reference as a scalar function of time
// together with its analytic derivative. Derivatives are supplied
// explicitly, never computed by finite differences.
type Evaluator interface {
	Position(t float64) float64
	Velocity(t float64) float64
}

// Hold keeps a joint at a fixed position.
type Hold struct {
	Target float64
}

func (h Hold) Position(t float64) float64 { return h.Target }
func (h Hold) Velocity(t float64) float64 { return 0 }

// Sine drives a joint along Center + Amplitude*sin(Omega*t + Phase).
type Sine struct {
	Center    float64
	Amplitude float64
	Omega     float64
	Phase     float64
}

func (s Sine) Position(t float64) float64 {
	return s.Center + s.Amplitude*math.Sin(s.Omega*t+s.Phase)
}

func (s Sine) Velocity(t float64) float64 {
	return s.Amplitude * s.Omega * math.Cos(s.Omega*t+s.Phase)
}

// PerJoint combines independent per-joint evaluators into one
// trajectory. Mixing held and time-varying joints is the normal case.
type PerJoint struct {
	joints []Evaluator
}

func NewPerJoint(joints ...Evaluator) *PerJoint {
	return &PerJoint{joints: joints}
}

func (p *PerJoint) Dim() int {
	return len(p.joints)
}

func (p *PerJoint) At(t float64) joint.Setpoint {
	pos := joint.Zero(len(p.joints))
	vel := joint.Zero(len(p.joints))
	for i, ev := range p.joints {
		pos[i] = ev.Position(t)
		vel[i] = ev.Velocity(t)
	}
	return joint.Setpoint{Position: pos, Velocity: vel}
}
