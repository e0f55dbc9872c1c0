package dynamics

import "github.com/san-kum/armctl/internal/joint"

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys System, x, u joint.Vector, t, dt float64) joint.Vector {
	dx := sys.Derive(x, u, t)
	result := joint.Zero(len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
