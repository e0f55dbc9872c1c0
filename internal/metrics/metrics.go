// Package metrics reduces a run to summary numbers stored with its
// metadata.
package metrics

import (
	"math"

	"github.com/san-kum/armctl/internal/joint"
)

// TrackingError accumulates the RMS position error across all joints.
type TrackingError struct {
	sumSq   float64
	samples int
}

func NewTrackingError() *TrackingError {
	return &TrackingError{}
}

func (m *TrackingError) Name() string { return "tracking_error_rms" }

func (m *TrackingError) Observe(s joint.Sample, desired joint.Setpoint) {
	for j := range s.Position {
		e := desired.Position[j] - s.Position[j]
		m.sumSq += e * e
	}
	m.samples += len(s.Position)
}

func (m *TrackingError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return math.Sqrt(m.sumSq / float64(m.samples))
}

func (m *TrackingError) Reset() {
	m.sumSq = 0
	m.samples = 0
}

// ControlEffort is the mean absolute commanded torque.
type ControlEffort struct {
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{}
}

func (m *ControlEffort) Name() string { return "control_effort" }

func (m *ControlEffort) Observe(s joint.Sample, desired joint.Setpoint) {
	for _, v := range s.Torque {
		m.sum += math.Abs(v)
	}
	m.samples += len(s.Torque)
}

func (m *ControlEffort) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *ControlEffort) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakTorque is the largest absolute torque commanded on any joint.
type PeakTorque struct {
	peak float64
}

func NewPeakTorque() *PeakTorque {
	return &PeakTorque{}
}

func (m *PeakTorque) Name() string { return "peak_torque" }

func (m *PeakTorque) Observe(s joint.Sample, desired joint.Setpoint) {
	for _, v := range s.Torque {
		if a := math.Abs(v); a > m.peak {
			m.peak = a
		}
	}
}

func (m *PeakTorque) Value() float64 {
	return m.peak
}

func (m *PeakTorque) Reset() {
	m.peak = 0
}
