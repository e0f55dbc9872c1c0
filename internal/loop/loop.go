// Package loop runs the fixed-rate closed-loop joint controller: read
// state, evaluate the trajectory, compute a PD torque, send it, advance
// the backend, record the tick.
package loop

import (
	"context"
	"errors"
	"math"

	"github.com/san-kum/armctl/internal/actuator"
	"github.com/san-kum/armctl/internal/control"
	"github.com/san-kum/armctl/internal/joint"
	"github.com/san-kum/armctl/internal/trajectory"
)

var errAlreadyRun = errors.New("loop has already run")

// Metric observes every tick and reduces it to a single number for the
// run summary. Observation only; nothing feeds back into the loop.
type Metric interface {
	Name() string
	Observe(s joint.Sample, desired joint.Setpoint)
	Value() float64
	Reset()
}

// Observer receives each sample as it is recorded, for streaming
// consumers such as the live view.
type Observer interface {
	OnTick(s joint.Sample)
}

// Config is fixed at construction and never mutated during a run.
type Config struct {
	Dt       float64
	Duration float64
	Gains    joint.Gains
	// Initial is the reset position requested of the actuator before the
	// run starts. Nil skips the reset.
	Initial joint.Vector
}

type runState int

const (
	stateIdle runState = iota
	stateRunning
	stateCompleted
)

// Loop owns one run. Beyond the tick counter everything it touches is
// either immutable configuration or the recorder's append-only series.
type Loop struct {
	act       actuator.Interface
	traj      trajectory.Trajectory
	pd        *control.PD
	cfg       Config
	n         int
	state     runState
	metrics   []Metric
	observers []Observer
}

// New validates the configuration and builds a loop. All dimension
// agreement is settled here; a mismatch is fatal before any tick runs.
func New(act actuator.Interface, traj trajectory.Trajectory, cfg Config) (*Loop, error) {
	if cfg.Dt <= 0 {
		return nil, &joint.ConfigError{Field: "dt", Wrapped: joint.ErrInvalidTimestep}
	}
	if cfg.Duration <= 0 {
		return nil, &joint.ConfigError{Field: "duration", Wrapped: joint.ErrInvalidDuration}
	}
	n := traj.Dim()
	if n <= 0 {
		return nil, &joint.ConfigError{Field: "trajectory", Wrapped: joint.ErrDimensionMismatch}
	}
	if err := cfg.Gains.Validate(n); err != nil {
		return nil, &joint.ConfigError{Field: "gains", Wrapped: err}
	}
	if cfg.Initial != nil && len(cfg.Initial) != n {
		return nil, &joint.ConfigError{Field: "initial", Wrapped: joint.ErrDimensionMismatch}
	}
	return &Loop{
		act:   act,
		traj:  traj,
		pd:    control.NewPD(cfg.Gains),
		cfg:   cfg,
		n:     n,
		state: stateIdle,
	}, nil
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Steps returns the number of ticks a full run executes,
// floor(Duration/Dt) with a small tolerance for binary representation
// error in the quotient (0.3/0.1 is slightly below 3).
func (l *Loop) Steps() int {
	return int(math.Floor(l.cfg.Duration/l.cfg.Dt + 1e-9))
}

// Run executes every tick in order: state, trajectory, torque, send,
// step, record. Any actuator failure or non-finite torque aborts the
// run; the partial recorder is returned alongside the error so the
// caller can keep it for diagnostics.
func (l *Loop) Run(ctx context.Context) (*Recorder, error) {
	if l.state != stateIdle {
		return nil, &joint.ConfigError{Field: "loop", Wrapped: errAlreadyRun}
	}
	l.state = stateRunning

	steps := l.Steps()
	rec := NewRecorder(steps)

	for _, m := range l.metrics {
		m.Reset()
	}

	if l.cfg.Initial != nil {
		if err := l.act.Reset(l.cfg.Initial); err != nil {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "reset", Step: 0, Wrapped: err}
		}
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			l.state = stateCompleted
			return rec, ctx.Err()
		default:
		}

		// Derived, not accumulated, so long runs do not drift.
		t := l.cfg.Dt * float64(i)

		measured, err := l.act.State()
		if err != nil {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "state", Step: i, Wrapped: err}
		}
		if measured.Dim() != l.n || len(measured.Velocity) != l.n {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "state", Step: i, Wrapped: joint.ErrDimensionMismatch}
		}
		if !measured.IsFinite() {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "state", Step: i, Wrapped: joint.ErrNonFinite}
		}

		desired := l.traj.At(t)
		tau := l.pd.Torque(measured, desired)

		if !tau.IsFinite() {
			l.state = stateCompleted
			return rec, &joint.NumericError{Step: i, T: t}
		}

		if err := l.act.SendTorque(tau); err != nil {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "send", Step: i, Wrapped: err}
		}
		if err := l.act.Step(); err != nil {
			l.state = stateCompleted
			return rec, &joint.ActuatorError{Op: "step", Step: i, Wrapped: err}
		}

		// Snapshot the measured vectors: a backend may hand out its
		// internal buffers, and the recorder outlives the tick.
		s := joint.Sample{
			T:        t,
			Position: measured.Position.Clone(),
			Velocity: measured.Velocity.Clone(),
			Torque:   tau,
		}
		rec.Append(s)

		for _, m := range l.metrics {
			m.Observe(s, desired)
		}
		for _, o := range l.observers {
			o.OnTick(s)
		}
	}

	l.state = stateCompleted
	return rec, nil
}

// MetricValues collects the final value of every attached metric.
func (l *Loop) MetricValues() map[string]float64 {
	out := make(map[string]float64, len(l.metrics))
	for _, m := range l.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}
