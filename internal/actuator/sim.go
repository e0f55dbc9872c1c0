package actuator

import (
	"fmt"
	"math"

	"github.com/san-kum/armctl/internal/dynamics"
	"github.com/san-kum/armctl/internal/joint"
)

// ArmParams describes the simulated arm. Every joint is an independent
// damped link under gravity.
type ArmParams struct {
	Joints  int
	Mass    float64
	Length  float64
	Damping float64
	Gravity float64
}

func DefaultArmParams(joints int) ArmParams {
	return ArmParams{
		Joints:  joints,
		Mass:    1.0,
		Length:  1.0,
		Damping: 0.1,
		Gravity: 9.81,
	}
}

// armDynamics treats the state as [q0..qN-1, dq0..dqN-1].
type armDynamics struct {
	p ArmParams
}

func (a *armDynamics) StateDim() int {
	return 2 * a.p.Joints
}

func (a *armDynamics) Derive(x, u joint.Vector, t float64) joint.Vector {
	n := a.p.Joints
	dx := joint.Zero(2 * n)
	inertia := a.p.Mass * a.p.Length * a.p.Length
	for j := 0; j < n; j++ {
		q := x[j]
		dq := x[n+j]
		tau := 0.0
		if j < len(u) {
			tau = u[j]
		}
		dx[j] = dq
		dx[n+j] = (tau - a.p.Damping*dq - a.p.Mass*a.p.Gravity*a.p.Length*math.Sin(q)) / inertia
	}
	return dx
}

// Sim is a simulated N-joint backend. A torque sent via SendTorque is
// held and applied over the next Step.
type Sim struct {
	params ArmParams
	sys    *armDynamics
	integ  dynamics.Integrator
	dt     float64
	x      joint.Vector
	tau    joint.Vector
	t      float64
}

func NewSim(params ArmParams, integ dynamics.Integrator, dt float64) (*Sim, error) {
	if params.Joints <= 0 {
		return nil, fmt.Errorf("simulated arm needs at least one joint, got %d", params.Joints)
	}
	if dt <= 0 {
		return nil, joint.ErrInvalidTimestep
	}
	return &Sim{
		params: params,
		sys:    &armDynamics{p: params},
		integ:  integ,
		dt:     dt,
		x:      joint.Zero(2 * params.Joints),
		tau:    joint.Zero(params.Joints),
	}, nil
}

func (s *Sim) Joints() int {
	return s.params.Joints
}

func (s *Sim) Reset(initial joint.Vector) error {
	n := s.params.Joints
	if len(initial) != n {
		return fmt.Errorf("reset position has %d joints, arm has %d: %w", len(initial), n, joint.ErrDimensionMismatch)
	}
	if !initial.IsFinite() {
		return joint.ErrNonFinite
	}
	s.x = joint.Zero(2 * n)
	copy(s.x[:n], initial)
	s.tau = joint.Zero(n)
	s.t = 0
	return nil
}

func (s *Sim) State() (joint.State, error) {
	n := s.params.Joints
	if !s.x.IsFinite() {
		return joint.State{}, fmt.Errorf("simulated state diverged at t=%.4f: %w", s.t, joint.ErrNonFinite)
	}
	return joint.State{
		Position: s.x[:n].Clone(),
		Velocity: s.x[n:].Clone(),
	}, nil
}

func (s *Sim) SendTorque(tau joint.Vector) error {
	if len(tau) != s.params.Joints {
		return fmt.Errorf("torque has %d joints, arm has %d: %w", len(tau), s.params.Joints, joint.ErrDimensionMismatch)
	}
	if !tau.IsFinite() {
		return joint.ErrNonFinite
	}
	copy(s.tau, tau)
	return nil
}

func (s *Sim) Step() error {
	s.x = s.integ.Step(s.sys, s.x, s.tau, s.t, s.dt)
	s.t += s.dt
	return nil
}
