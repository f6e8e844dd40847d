// Package tilt provides acceleration sources that stand in for an
// accelerometer. Samples are integer vectors in the engine's input units.
package tilt

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Source yields one acceleration sample per simulation tick.
type Source interface {
	Sample(tick int) (ax, ay, az int)
}

// Fixed is a constant acceleration.
type Fixed struct{ X, Y, Z int }

// Sample returns the constant vector.
func (f Fixed) Sample(int) (int, int, int) { return f.X, f.Y, f.Z }

// Orbit rotates Gravity about Axis, completing one turn every Period ticks.
// A non-positive period or a zero axis leaves Gravity unrotated.
type Orbit struct {
	Gravity r3.Vec
	Axis    r3.Vec
	Period  int
}

// Sample returns the rotated gravity vector for tick.
func (o Orbit) Sample(tick int) (int, int, int) {
	v := o.Gravity
	if o.Period > 0 && r3.Norm(o.Axis) > 0 {
		phase := tick % o.Period
		if phase < 0 {
			phase += o.Period
		}
		alpha := 2 * math.Pi * float64(phase) / float64(o.Period)
		v = r3.NewRotation(alpha, o.Axis).Rotate(v)
	}
	return round(v)
}

// Manual holds a vector adjusted by user input.
type Manual struct {
	v, home r3.Vec
	limit   float64
}

// NewManual starts at (x, y, z). Nudges keep the vector's magnitude within
// the starting magnitude, or 1 if the start is zero.
func NewManual(x, y, z int) *Manual {
	v := r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
	limit := r3.Norm(v)
	if limit == 0 {
		limit = 1
	}
	return &Manual{v: v, home: v, limit: limit}
}

// Nudge shifts the vector in the display plane by (dx, dy).
func (m *Manual) Nudge(dx, dy int) {
	v := r3.Add(m.v, r3.Vec{X: float64(dx), Y: float64(dy)})
	if n := r3.Norm(v); n > m.limit {
		v = r3.Scale(m.limit/n, v)
	}
	m.v = v
}

// Set replaces the vector without touching the magnitude limit.
func (m *Manual) Set(x, y, z int) {
	m.v = r3.Vec{X: float64(x), Y: float64(y), Z: float64(z)}
}

// Home restores the starting vector.
func (m *Manual) Home() { m.v = m.home }

// Sample returns the current vector.
func (m *Manual) Sample(int) (int, int, int) { return round(m.v) }

func round(v r3.Vec) (int, int, int) {
	return int(math.Round(v.X)), int(math.Round(v.Y)), int(math.Round(v.Z))
}
