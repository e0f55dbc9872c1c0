package trajectory

import (
	"math"
	"testing"

	"github.com/san-kum/armctl/internal/joint"
)

func TestConstant(t *testing.T) {
	target := joint.Vector{0, 0, math.Pi / 4}
	traj := NewConstant(target)

	if traj.Dim() != 3 {
		t.Fatalf("expected dim 3, got %d", traj.Dim())
	}

	for _, tm := range []float64{0, 0.5, 1.0, 100.0} {
		sp := traj.At(tm)
		for i := range target {
			if sp.Position[i] != target[i] {
				t.Errorf("t=%.1f joint %d: expected position %f, got %f", tm, i, target[i], sp.Position[i])
			}
			if sp.Velocity[i] != 0 {
				t.Errorf("t=%.1f joint %d: expected zero velocity, got %f", tm, i, sp.Velocity[i])
			}
		}
	}
}

func TestConstantDoesNotAliasTarget(t *testing.T) {
	target := joint.Vector{1.0}
	traj := NewConstant(target)

	sp := traj.At(0)
	sp.Position[0] = 42.0

	if traj.At(0).Position[0] != 1.0 {
		t.Error("setpoint should not alias the stored target")
	}
}

func TestSineDerivative(t *testing.T) {
	// 0.8*sin(pi*t) has velocity 0.8*pi*cos(pi*t).
	s := Sine{Amplitude: 0.8, Omega: math.Pi}

	for _, tm := range []float64{0, 0.5, 1.0, 1.5} {
		wantPos := 0.8 * math.Sin(math.Pi*tm)
		wantVel := 0.8 * math.Pi * math.Cos(math.Pi*tm)

		if got := s.Position(tm); math.Abs(got-wantPos) > 1e-12 {
			t.Errorf("t=%.1f: expected position %f, got %f", tm, wantPos, got)
		}
		if got := s.Velocity(tm); math.Abs(got-wantVel) > 1e-12 {
			t.Errorf("t=%.1f: expected velocity %f, got %f", tm, wantVel, got)
		}
	}
}

func TestPerJointMixed(t *testing.T) {
	traj := NewPerJoint(
		Hold{Target: 0.2},
		Hold{Target: -0.1},
		Sine{Amplitude: 0.8, Omega: math.Pi},
	)

	if traj.Dim() != 3 {
		t.Fatalf("expected dim 3, got %d", traj.Dim())
	}

	sp := traj.At(0.5)

	if sp.Position[0] != 0.2 || sp.Velocity[0] != 0 {
		t.Errorf("held joint 0 moved: %f, %f", sp.Position[0], sp.Velocity[0])
	}
	if sp.Position[1] != -0.1 || sp.Velocity[1] != 0 {
		t.Errorf("held joint 1 moved: %f, %f", sp.Position[1], sp.Velocity[1])
	}

	wantPos := 0.8 * math.Sin(math.Pi*0.5)
	wantVel := 0.8 * math.Pi * math.Cos(math.Pi*0.5)
	if math.Abs(sp.Position[2]-wantPos) > 1e-12 {
		t.Errorf("expected position %f, got %f", wantPos, sp.Position[2])
	}
	if math.Abs(sp.Velocity[2]-wantVel) > 1e-12 {
		t.Errorf("expected velocity %f, got %f", wantVel, sp.Velocity[2])
	}
}

func TestSinePhaseAndCenter(t *testing.T) {
	s := Sine{Center: 1.0, Amplitude: 0.5, Omega: 2.0, Phase: math.Pi / 2}

	if got := s.Position(0); math.Abs(got-1.5) > 1e-12 {
		t.Errorf("expected 1.5 at t=0, got %f", got)
	}
	if got := s.Velocity(0); math.Abs(got) > 1e-12 {
		t.Errorf("expected zero velocity at phase pi/2, got %f", got)
	}
}
