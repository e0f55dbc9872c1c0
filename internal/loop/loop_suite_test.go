package loop_test

import (
	"context"
	"math"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/armctl/internal/actuator"
	"github.com/san-kum/armctl/internal/dynamics"
	"github.com/san-kum/armctl/internal/joint"
	"github.com/san-kum/armctl/internal/loop"
	"github.com/san-kum/armctl/internal/trajectory"
)

func TestLoop(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Loop Suite")
}

var _ = Describe("Loop", func() {
	newArm := func(joints int, dt float64) *actuator.Sim {
		params := actuator.DefaultArmParams(joints)
		params.Gravity = 0 // pure PD regulation, no steady-state offset
		arm, err := actuator.NewSim(params, dynamics.NewRK4(), dt)
		Expect(err).NotTo(HaveOccurred())
		return arm
	}

	Context("with a simulated arm", func() {
		It("executes exactly floor(duration/dt) ticks with derived timestamps", func() {
			dt := 0.001
			arm := newArm(1, dt)
			l, err := loop.New(arm, trajectory.NewConstant(joint.Vector{0.2}), loop.Config{
				Dt:       dt,
				Duration: 1.0,
				Gains:    joint.Gains{P: joint.Vector{10}, D: joint.Vector{2}},
				Initial:  joint.Vector{0},
			})
			Expect(err).NotTo(HaveOccurred())

			rec, err := l.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.Len()).To(Equal(1000))

			samples := rec.Samples()
			for i, s := range samples {
				Expect(s.T).To(BeNumerically("~", dt*float64(i), 1e-12))
			}
		})

		It("regulates the arm toward a constant setpoint", func() {
			dt := 0.001
			arm := newArm(1, dt)
			l, err := loop.New(arm, trajectory.NewConstant(joint.Vector{0.5}), loop.Config{
				Dt:       dt,
				Duration: 5.0,
				Gains:    joint.Gains{P: joint.Vector{20}, D: joint.Vector{5}},
				Initial:  joint.Vector{0},
			})
			Expect(err).NotTo(HaveOccurred())

			rec, err := l.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			samples := rec.Samples()
			final := samples[len(samples)-1]
			Expect(final.Position[0]).To(BeNumerically("~", 0.5, 0.05))
			Expect(math.Abs(final.Velocity[0])).To(BeNumerically("<", 0.05))
		})

		It("tracks a sinusoidal reference on one joint while holding the others", func() {
			dt := 0.001
			arm := newArm(3, dt)
			traj := trajectory.NewPerJoint(
				trajectory.Hold{Target: 0},
				trajectory.Hold{Target: 0},
				trajectory.Sine{Amplitude: 0.8, Omega: math.Pi},
			)
			l, err := loop.New(arm, traj, loop.Config{
				Dt:       dt,
				Duration: 4.0,
				Gains: joint.Gains{
					P: joint.Vector{50, 50, 50},
					D: joint.Vector{10, 10, 10},
				},
				Initial: joint.Vector{0, 0, 0},
			})
			Expect(err).NotTo(HaveOccurred())

			rec, err := l.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			// After the transient, the held joints stay near zero and the
			// driven joint stays within the reference envelope.
			for _, s := range rec.Samples()[2000:] {
				Expect(math.Abs(s.Position[0])).To(BeNumerically("<", 0.05))
				Expect(math.Abs(s.Position[1])).To(BeNumerically("<", 0.05))
				Expect(math.Abs(s.Position[2])).To(BeNumerically("<", 1.0))
			}
		})
	})

	Context("with an invalid configuration", func() {
		It("rejects mismatched gain dimensions before any tick executes", func() {
			arm := newArm(3, 0.01)
			_, err := loop.New(arm, trajectory.NewConstant(joint.Vector{0, 0, 0}), loop.Config{
				Dt:       0.01,
				Duration: 1.0,
				Gains:    joint.Gains{P: joint.Vector{1, 1}, D: joint.Vector{1, 1}},
			})
			Expect(err).To(MatchError(joint.ErrDimensionMismatch))

			st, stateErr := arm.State()
			Expect(stateErr).NotTo(HaveOccurred())
			Expect(st.Position[0]).To(BeZero())
		})
	})
})
