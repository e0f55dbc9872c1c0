// Package actuator defines the boundary to the joint hardware, plus a
// simulated backend for running without a robot.
package actuator

import "github.com/san-kum/armctl/internal/joint"

// Interface is the capability set any backend must provide. Backend
// selection is a construction-time choice; the control loop never
// branches on the concrete type.
//
// SendTorque queues a torque that takes effect at the next Step. Step
// advances the backend by one tick of duration dt; on real hardware it
// may also wait out the remainder of the tick period.
//
// State should return vectors the caller may keep; a backend that
// recycles internal buffers must expect callers to snapshot them
// before the next Step.
type Interface interface {
	Reset(initial joint.Vector) error
	State() (joint.State, error)
	SendTorque(tau joint.Vector) error
	Step() error
}
