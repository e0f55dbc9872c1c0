package joint

import "math"

// Vector holds one value per controlled joint.
type Vector []float64

func Zero(n int) Vector {
	return make(Vector, n)
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func (v Vector) Sub(other Vector) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] - other[i]
	}
	return result
}

func (v Vector) Scale(factor float64) Vector {
	result := make(Vector, len(v))
	for i := range v {
		result[i] = v[i] * factor
	}
	return result
}

func (v Vector) Norm() float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

func (v Vector) IsFinite() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// State is a snapshot of measured joint positions (radians) and
// velocities (radians/second), taken once per tick.
type State struct {
	Position Vector
	Velocity Vector
}

func (s State) Dim() int {
	return len(s.Position)
}

func (s State) IsFinite() bool {
	return s.Position.IsFinite() && s.Velocity.IsFinite()
}

// Setpoint is the desired position and velocity of every joint at a
// given instant. Re-evaluated fresh each tick.
type Setpoint struct {
	Position Vector
	Velocity Vector
}

// Gains holds per-joint proportional and derivative gains. Fixed for
// the duration of a run.
type Gains struct {
	P Vector
	D Vector
}

// Validate checks that both gain vectors have dimension n and carry
// finite, non-negative values.
func (g Gains) Validate(n int) error {
	if len(g.P) != n || len(g.D) != n {
		return ErrDimensionMismatch
	}
	for i := 0; i < n; i++ {
		if math.IsNaN(g.P[i]) || math.IsInf(g.P[i], 0) || g.P[i] < 0 {
			return ErrInvalidGain
		}
		if math.IsNaN(g.D[i]) || math.IsInf(g.D[i], 0) || g.D[i] < 0 {
			return ErrInvalidGain
		}
	}
	return nil
}

// Sample is one recorded tick: the measured state the torque was
// computed from and the torque that was sent.
type Sample struct {
	T        float64
	Position Vector
	Velocity Vector
	Torque   Vector
}
