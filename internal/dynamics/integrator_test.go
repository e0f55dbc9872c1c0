package dynamics

import (
	"math"
	"testing"

	"github.com/san-kum/armctl/internal/joint"
)

// decay is dx/dt = -x, with exact solution x(t) = x0 * e^(-t).
type decay struct{}

func (d *decay) Derive(x, u joint.Vector, t float64) joint.Vector {
	return joint.Vector{-x[0]}
}

func (d *decay) StateDim() int { return 1 }

func TestEulerConverges(t *testing.T) {
	integ := NewEuler()
	sys := &decay{}

	x := joint.Vector{1.0}
	dt := 0.001
	for i := 0; i < 1000; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-3 {
		t.Errorf("expected ~%f after 1s, got %f", expected, x[0])
	}
}

func TestRK4Accuracy(t *testing.T) {
	integ := NewRK4()
	sys := &decay{}

	x := joint.Vector{1.0}
	dt := 0.01
	for i := 0; i < 100; i++ {
		x = integ.Step(sys, x, nil, float64(i)*dt, dt)
	}

	expected := math.Exp(-1.0)
	if math.Abs(x[0]-expected) > 1e-8 {
		t.Errorf("rk4 should be near-exact for smooth decay: expected %f, got %f", expected, x[0])
	}
}

func TestRK4DoesNotMutateInput(t *testing.T) {
	integ := NewRK4()
	sys := &decay{}

	x := joint.Vector{1.0}
	integ.Step(sys, x, nil, 0, 0.1)

	if x[0] != 1.0 {
		t.Errorf("input state mutated: %f", x[0])
	}
}
