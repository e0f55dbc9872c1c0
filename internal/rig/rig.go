// Package rig assembles a complete run from a configuration: backend,
// trajectory, gains, loop, and the default metric set.
package rig

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/armctl/internal/actuator"
	"github.com/san-kum/armctl/internal/config"
	"github.com/san-kum/armctl/internal/dynamics"
	"github.com/san-kum/armctl/internal/loop"
	"github.com/san-kum/armctl/internal/metrics"
	"github.com/san-kum/armctl/internal/trajectory"
)

var integrators = map[string]func() dynamics.Integrator{
	"euler": func() dynamics.Integrator { return dynamics.NewEuler() },
	"rk4":   func() dynamics.Integrator { return dynamics.NewRK4() },
}

// Rig holds an assembled, not-yet-run control loop.
type Rig struct {
	cfg  *config.Config
	loop *loop.Loop
	traj trajectory.Trajectory
}

// Build wires the configured backend, trajectory, and gains into a
// loop. Configuration problems surface here, before any tick.
func Build(cfg *config.Config) (*Rig, error) {
	mk, ok := integrators[cfg.Backend.Integrator]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Backend.Integrator)
	}

	params := actuator.ArmParams{
		Joints:  cfg.Joints,
		Mass:    cfg.Backend.Mass,
		Length:  cfg.Backend.Length,
		Damping: cfg.Backend.Damping,
		Gravity: cfg.Backend.Gravity,
	}
	arm, err := actuator.NewSim(params, mk(), cfg.Dt)
	if err != nil {
		return nil, err
	}

	var backend actuator.Interface = arm
	if cfg.Paced {
		backend = actuator.NewPaced(arm, time.Duration(cfg.Dt*float64(time.Second)))
	}

	traj, err := cfg.BuildTrajectory()
	if err != nil {
		return nil, err
	}

	l, err := loop.New(backend, traj, loop.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Gains:    cfg.GainSet(),
		Initial:  cfg.InitialPosition(),
	})
	if err != nil {
		return nil, err
	}

	l.AddMetric(metrics.NewTrackingError())
	l.AddMetric(metrics.NewControlEffort())
	l.AddMetric(metrics.NewPeakTorque())

	return &Rig{cfg: cfg, loop: l, traj: traj}, nil
}

func (r *Rig) AddObserver(o loop.Observer) {
	r.loop.AddObserver(o)
}

func (r *Rig) Trajectory() trajectory.Trajectory {
	return r.traj
}

func (r *Rig) Steps() int {
	return r.loop.Steps()
}

// Run executes the loop and returns the recorder plus final metric
// values. On abort the partial recorder comes back with the error.
func (r *Rig) Run(ctx context.Context) (*loop.Recorder, map[string]float64, error) {
	rec, err := r.loop.Run(ctx)
	return rec, r.loop.MetricValues(), err
}
