// Package dust simulates grains of sand (or snow, or rain) moving over one or
// more connected pixel planes under a changing acceleration vector.
//
// Positions and velocities are fixed point with 256 subpixel units per pixel.
// Terminal velocity is one pixel per frame, so a grain never skips a pixel and
// collisions can be resolved one grain at a time against a shared occupancy
// bitmap. The engine renders nothing and performs no I/O.
package dust

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	maxDimension  = 32767
	maxElasticity = 256
)

var (
	ErrNoPlanes   = errors.New("dust: no planes")
	ErrPlaneSize  = errors.New("dust: bad plane size")
	ErrBadLink    = errors.New("dust: bad edge link")
	ErrGrainCount = errors.New("dust: bad grain count")
	ErrNilRandom  = errors.New("dust: nil random source")
	ErrElasticity = errors.New("dust: elasticity outside [0, 256]")
)

// Random supplies uniform integers in [0, n).
type Random interface {
	IntN(n int) int
}

// Grain is one simulated particle. X and Y are subpixel coordinates within
// Plane; VX and VY are subpixels per frame.
type Grain struct {
	X, Y   int32
	VX, VY int32
	Plane  int
}

// Pixel returns the grain's pixel coordinates.
func (g Grain) Pixel() (int, int) { return int(g.X >> 8), int(g.Y >> 8) }

// Config sets up a simulation. When Planes is empty a single Width×Height
// plane with four walls is used.
type Config struct {
	Width, Height int
	Planes        []Plane

	Grains int
	// Scale multiplies acceleration input by Scale/256.
	Scale int
	// Elasticity sets bounce: velocity is reversed and multiplied by
	// Elasticity/256 on impact. It must lie in [0, 256].
	Elasticity int
	// Sort visits grains furthest along the pull first.
	Sort bool
}

// Stats counts events since the simulation was created.
type Stats struct {
	Steps     uint64
	Moves     uint64 // grain entered a new pixel
	Crossings uint64 // grain entered a new plane
	Blocks    uint64 // straight move blocked, other axis kept
	Skids     uint64 // diagonal move resolved along one axis
	Stops     uint64 // diagonal move fully blocked
}

// Sim holds all grain and occupancy state. It is not safe for concurrent use.
type Sim struct {
	frames []frame
	bits   *Bitmap
	grains []Grain
	placed []bool
	order  []int32
	rnd    Random

	scale      int32
	elasticity int32
	sort       bool

	stats Stats
}

// New allocates a simulation. Grains start at the origin of plane 0 and must be
// placed with Place or Randomize before stepping.
func New(cfg Config, rnd Random) (*Sim, error) {
	if rnd == nil {
		return nil, ErrNilRandom
	}
	planes := cfg.Planes
	if len(planes) == 0 {
		planes = []Plane{Walled(cfg.Width, cfg.Height)}
	}
	if err := validatePlanes(planes); err != nil {
		return nil, err
	}
	pixels := 0
	sizes := make([][2]int, len(planes))
	for i, p := range planes {
		sizes[i] = [2]int{p.Width, p.Height}
		pixels += p.Width * p.Height
	}
	if cfg.Grains < 0 || cfg.Grains > pixels {
		return nil, fmt.Errorf("%d grains for %d pixels: %w", cfg.Grains, pixels, ErrGrainCount)
	}
	if cfg.Elasticity < 0 || cfg.Elasticity > maxElasticity {
		return nil, fmt.Errorf("elasticity %d: %w", cfg.Elasticity, ErrElasticity)
	}

	s := &Sim{
		frames:     make([]frame, len(planes)),
		bits:       newBitmap(sizes),
		grains:     make([]Grain, cfg.Grains),
		placed:     make([]bool, cfg.Grains),
		order:      make([]int32, cfg.Grains),
		rnd:        rnd,
		scale:      int32(cfg.Scale),
		elasticity: int32(cfg.Elasticity),
		sort:       cfg.Sort,
	}
	for i, p := range planes {
		s.frames[i] = newFrame(p)
	}
	for i, p := range planes {
		for e, l := range p.Links {
			var dst *frame
			if !l.IsWall() {
				dst = &s.frames[l.plane]
			}
			s.frames[i].links[e] = newLinkTransform(Edge(e), l, &s.frames[i], dst)
		}
	}
	for i := range s.order {
		s.order[i] = int32(i)
	}
	return s, nil
}

// NumGrains returns the number of grains.
func (s *Sim) NumGrains() int { return len(s.grains) }

// NumPlanes returns the number of planes.
func (s *Sim) NumPlanes() int { return len(s.frames) }

// PlaneSize returns the pixel dimensions of plane p.
func (s *Sim) PlaneSize(p int) (int, int) { return s.frames[p].w, s.frames[p].h }

// Normal returns the unit surface normal of plane p.
func (s *Sim) Normal(p int) r3.Vec { return s.frames[p].z }

// SetElasticity changes the bounce factor for subsequent steps, clamped to
// [0, 256].
func (s *Sim) SetElasticity(e int) { s.elasticity = int32(min(max(e, 0), maxElasticity)) }

// SetScale changes the acceleration scale for subsequent steps.
func (s *Sim) SetScale(scale int) { s.scale = int32(scale) }

// SetSort toggles sorted grain order. Grain indices are never reordered.
func (s *Sim) SetSort(on bool) {
	s.sort = on
	if !on {
		for i := range s.order {
			s.order[i] = int32(i)
		}
	}
}

// Elasticity returns the current bounce factor.
func (s *Sim) Elasticity() int { return int(s.elasticity) }

// Scale returns the current acceleration scale.
func (s *Sim) Scale() int { return int(s.scale) }

// Sorted reports whether sorted grain order is enabled.
func (s *Sim) Sorted() bool { return s.sort }

// Stats returns the event counters.
func (s *Sim) Stats() Stats { return s.stats }

// SetObstacle marks a pixel as a static obstacle. Obstacles should be drawn
// before grains are placed in the same region.
func (s *Sim) SetObstacle(x, y, plane int) { s.bits.Set(x, y, plane) }

// ClearObstacle frees a pixel.
func (s *Sim) ClearObstacle(x, y, plane int) { s.bits.Clear(x, y, plane) }

// Occupied reports whether a pixel holds a grain or an obstacle.
func (s *Sim) Occupied(x, y, plane int) bool { return s.bits.Test(x, y, plane) }

// Clear empties the occupancy bitmap of every plane. Grain state is kept, so
// callers normally redraw obstacles and place grains again afterwards.
func (s *Sim) Clear() {
	s.bits.ClearAll()
	clear(s.placed)
}

// Place puts grain i at the center of pixel (x, y) on plane, at rest. It
// reports false and changes nothing if the pixel is occupied by anything but
// grain i itself. A grain that was already placed gives up its old pixel.
func (s *Sim) Place(i, x, y, plane int) bool {
	if s.placed[i] {
		ox, oy, op := s.Position(i)
		if ox == x && oy == y && op == plane {
			s.grains[i] = Grain{X: int32(x)*256 + 127, Y: int32(y)*256 + 127, Plane: plane}
			return true
		}
	}
	if s.bits.Test(x, y, plane) {
		return false
	}
	if s.placed[i] {
		ox, oy, op := s.Position(i)
		s.bits.Clear(ox, oy, op)
	}
	s.bits.Set(x, y, plane)
	s.placed[i] = true
	s.grains[i] = Grain{X: int32(x)*256 + 127, Y: int32(y)*256 + 127, Plane: plane}
	return true
}

// Randomize places every grain on a uniformly chosen free pixel of any plane.
// It loops forever if fewer free pixels than grains remain.
func (s *Sim) Randomize() {
	total := 0
	for i := range s.frames {
		total += s.frames[i].w * s.frames[i].h
	}
	for i := range s.grains {
		for {
			n := s.rnd.IntN(total)
			p := 0
			for n >= s.frames[p].w*s.frames[p].h {
				n -= s.frames[p].w * s.frames[p].h
				p++
			}
			w := s.frames[p].w
			if s.Place(i, n%w, n/w, p) {
				break
			}
		}
	}
}

// Position returns the pixel and plane of grain i.
func (s *Sim) Position(i int) (x, y, plane int) {
	g := s.grains[i]
	x, y = g.Pixel()
	return x, y, g.Plane
}

// Grain returns the full state of grain i.
func (s *Sim) Grain(i int) Grain { return s.grains[i] }
