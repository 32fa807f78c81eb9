// Package animate drives chart values and the view camera with critically
// damped springs from harmonica.
package animate

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Default spring parameters for value transitions.
const (
	DefaultFrequency = 6.0
	DefaultDamping   = 1.0
	// Values within Epsilon of their target, moving slower than Epsilon per
	// second, are snapped and considered settled.
	Epsilon = 1e-3
)

// Transition moves a slice of values toward a slice of targets, one frame
// per Step. NaN values (empty points) are never interpolated: they jump
// straight to the target.
type Transition struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
	target []float64
	done   bool
}

// NewTransition starts a transition from the values in from to the values
// in to, stepping at fps frames per second.
func NewTransition(fps int, frequency, damping float64, from, to []float64) *Transition {
	t := &Transition{
		spring: harmonica.NewSpring(harmonica.FPS(fps), frequency, damping),
		pos:    append([]float64(nil), from...),
		vel:    make([]float64, len(from)),
	}
	t.Retarget(to)
	return t
}

// Retarget changes the targets while keeping the current positions and
// velocities, so an interrupted transition bends instead of restarting.
// Points added or removed by the new target snap.
func (t *Transition) Retarget(to []float64) {
	t.target = append(t.target[:0], to...)
	if len(t.pos) != len(to) {
		pos := make([]float64, len(to))
		vel := make([]float64, len(to))
		for i := range to {
			if i < len(t.pos) {
				pos[i], vel[i] = t.pos[i], t.vel[i]
			} else {
				pos[i] = to[i]
			}
		}
		t.pos, t.vel = pos, vel
	}
	t.done = false
}

// Step advances every value by one frame and reports whether all of them
// have settled on their targets.
func (t *Transition) Step() bool {
	if t.done {
		return true
	}
	settled := true
	for i, target := range t.target {
		p := t.pos[i]
		if math.IsNaN(p) || math.IsNaN(target) {
			t.pos[i], t.vel[i] = target, 0
			continue
		}
		p, v := t.spring.Update(p, t.vel[i], target)
		if math.Abs(p-target) < Epsilon && math.Abs(v) < Epsilon {
			p, v = target, 0
		} else {
			settled = false
		}
		t.pos[i], t.vel[i] = p, v
	}
	t.done = settled
	return settled
}

// Done reports whether the last Step settled every value.
func (t *Transition) Done() bool {
	return t.done
}

// Values returns a copy of the current positions.
func (t *Transition) Values() []float64 {
	return append([]float64(nil), t.pos...)
}

