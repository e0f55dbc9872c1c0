package actuator

import (
	"time"

	"github.com/san-kum/armctl/internal/joint"
)

// Paced wraps a backend and holds each Step to a wall-clock period.
// Simulated backends advance as fast as they can; a paced backend
// matches real time, the way a hardware driver would.
type Paced struct {
	inner  Interface
	period time.Duration
	next   time.Time
}

func NewPaced(inner Interface, period time.Duration) *Paced {
	return &Paced{inner: inner, period: period}
}

func (p *Paced) Reset(initial joint.Vector) error {
	p.next = time.Time{}
	return p.inner.Reset(initial)
}

func (p *Paced) State() (joint.State, error) {
	return p.inner.State()
}

func (p *Paced) SendTorque(tau joint.Vector) error {
	return p.inner.SendTorque(tau)
}

func (p *Paced) Step() error {
	if err := p.inner.Step(); err != nil {
		return err
	}
	now := time.Now()
	if p.next.IsZero() {
		p.next = now
	}
	p.next = p.next.Add(p.period)
	if wait := p.next.Sub(now); wait > 0 {
		time.Sleep(wait)
	} else {
		// Fell behind; re-anchor instead of bursting to catch up.
		p.next = now
	}
	return nil
}
