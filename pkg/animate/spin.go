package animate

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Spin is a camera angle with momentum. Impulses add angular velocity
// (degrees per frame) that a spring bleeds back to zero.
type Spin struct {
	Position float64
	Velocity float64

	friction harmonica.Spring
	accel    float64
}

// NewSpin creates a spin updated at fps frames per second.
func NewSpin(fps int, position float64) Spin {
	return Spin{
		Position: position,
		friction: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Impulse adds velocity.
func (s *Spin) Impulse(v float64) {
	s.Velocity += v
}

// Update applies velocity to position and decays velocity.
func (s *Spin) Update() {
	s.Position += s.Velocity
	s.Velocity, s.accel = s.friction.Update(s.Velocity, s.accel, 0)
	if math.Abs(s.Velocity) < Epsilon && math.Abs(s.accel) < Epsilon {
		s.Velocity, s.accel = 0, 0
	}
}

// Moving reports whether the spin still has velocity.
func (s *Spin) Moving() bool {
	return s.Velocity != 0
}
