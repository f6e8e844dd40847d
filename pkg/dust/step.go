package dust

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Step advances the simulation one frame under acceleration (ax, ay, az).
//
// Velocities are updated for every grain first. Grains then move one at a
// time, each against the occupancy left by the grains before it.
func (s *Sim) Step(ax, ay, az int) {
	a := r3.Vec{X: float64(ax), Y: float64(ay), Z: float64(az)}
	for p := range s.frames {
		s.frames[p].project(a, s.scale)
	}

	for i := range s.grains {
		g := &s.grains[i]
		f := &s.frames[g.Plane]
		span := 2*int(f.jitter) + 1
		g.VX += f.ax - f.jitter + int32(s.rnd.IntN(span))
		g.VY += f.ay - f.jitter + int32(s.rnd.IntN(span))
		g.VX, g.VY = clampVelocity(g.VX, g.VY)
	}

	if s.sort {
		s.sortOrder()
	}
	for _, i := range s.order {
		s.move(int(i))
	}
	s.stats.Steps++
}

// clampVelocity limits the velocity vector to 256 subpixels per frame,
// preserving heading. The magnitude is rounded up before dividing so the
// result never exceeds the limit.
func clampVelocity(vx, vy int32) (int32, int32) {
	v2 := int64(vx)*int64(vx) + int64(vy)*int64(vy)
	if v2 <= 256*256 {
		return vx, vy
	}
	v := int64(math.Sqrt(float64(v2))) + 1
	return int32(int64(vx) * 256 / v), int32(int64(vy) * 256 / v)
}

func (s *Sim) bounce(v int32) int32 {
	return -v * s.elasticity / 256
}

// probe reports where a tentative grain would land and whether that pixel is
// taken. Off-plane positions go through the edge crossing.
func (s *Sim) probe(in Grain) (Grain, bool) {
	if s.frames[in.Plane].inside(in.X, in.Y) {
		return in, s.bits.Test(int(in.X>>8), int(in.Y>>8), in.Plane)
	}
	return s.cross(in)
}

func (s *Sim) move(i int) {
	g := &s.grains[i]
	in := *g
	in.X += in.VX
	in.Y += in.VY

	oldX, oldY := g.X>>8, g.Y>>8
	newX, newY := in.X>>8, in.Y>>8
	if newX == oldX && newY == oldY {
		g.X, g.Y = in.X, in.Y
		return
	}

	out, blocked := s.probe(in)
	if blocked {
		dx := abs32(newX - oldX)
		if dx+abs32(newY-oldY) == 1 {
			if dx == 1 {
				g.Y = in.Y
				g.VX = s.bounce(g.VX)
			} else {
				g.X = in.X
				g.VY = s.bounce(g.VY)
			}
			s.stats.Blocks++
			return
		}

		// Diagonal: skid along the faster axis, then the other.
		var ok bool
		if abs32(g.VX) >= abs32(g.VY) {
			out, ok = s.skidX(*g)
			if !ok {
				out, ok = s.skidY(*g)
			}
		} else {
			out, ok = s.skidY(*g)
			if !ok {
				out, ok = s.skidX(*g)
			}
		}
		if !ok {
			g.VX = s.bounce(g.VX)
			g.VY = s.bounce(g.VY)
			s.stats.Stops++
			return
		}
		s.stats.Skids++
	}

	s.bits.Clear(int(oldX), int(oldY), g.Plane)
	if out.Plane != g.Plane {
		s.stats.Crossings++
	}
	*g = out
	s.bits.Set(int(out.X>>8), int(out.Y>>8), out.Plane)
	s.stats.Moves++
}

// skidX tries X motion alone with Y velocity bounced.
func (s *Sim) skidX(g Grain) (Grain, bool) {
	g.X += g.VX
	g.VY = s.bounce(g.VY)
	out, blocked := s.probe(g)
	return out, !blocked
}

// skidY tries Y motion alone with X velocity bounced.
func (s *Sim) skidY(g Grain) (Grain, bool) {
	g.Y += g.VY
	g.VX = s.bounce(g.VX)
	out, blocked := s.probe(g)
	return out, !blocked
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
