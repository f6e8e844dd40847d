package dust

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Edge names one side of a plane.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeRight
	EdgeBottom
)

var edgeNames = [4]string{"top", "left", "right", "bottom"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("Edge(%d)", uint8(e))
}

// ParseEdge converts an edge name ("top", "left", "right", "bottom") to an Edge.
func ParseEdge(s string) (Edge, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range edgeNames {
		if n == name {
			return Edge(i), nil
		}
	}
	return 0, fmt.Errorf("unknown edge %q", s)
}

// Link connects an edge to an edge of another (or the same) plane. The zero
// Link is a wall that grains cannot cross.
type Link struct {
	plane int
	edge  Edge
	ok    bool
}

// To links an edge to the given edge of plane p.
func To(p int, e Edge) Link { return Link{plane: p, edge: e, ok: true} }

// Plane returns the destination plane index.
func (l Link) Plane() int { return l.plane }

// Edge returns the destination edge.
func (l Link) Edge() Edge { return l.edge }

// IsWall reports whether the link leads nowhere.
func (l Link) IsWall() bool { return !l.ok }

// Plane describes one rectangular surface. X and Y give the plane's local +X
// and +Y axes in the acceleration reference frame; they are normalized by New.
// Links is indexed by Edge; unset entries are walls.
type Plane struct {
	Width, Height int
	X, Y          r3.Vec
	Links         [4]Link
}

// Walled returns a single w×h plane with identity axes and four walls.
func Walled(w, h int) Plane {
	return Plane{
		Width:  w,
		Height: h,
		X:      r3.Vec{X: 1},
		Y:      r3.Vec{Y: 1},
	}
}

// frame holds values derived from a Plane at setup.
type frame struct {
	w, h       int
	xMax, yMax int32 // largest subpixel coordinate
	x, y, z    r3.Vec

	links [4]linkTransform

	// Per-step acceleration in plane space.
	ax, ay int32
	jitter int32
}

func newFrame(p Plane) frame {
	f := frame{
		w:    p.Width,
		h:    p.Height,
		xMax: int32(p.Width)*256 - 1,
		yMax: int32(p.Height)*256 - 1,
		x:    unit(p.X),
		y:    unit(p.Y),
	}
	f.z = r3.Cross(f.x, f.y)
	return f
}

// unit normalizes v, leaving a zero vector unchanged.
func unit(v r3.Vec) r3.Vec {
	if r3.Norm(v) == 0 {
		return v
	}
	return r3.Unit(v)
}

func (f *frame) inside(x, y int32) bool {
	return x >= 0 && x <= f.xMax && y >= 0 && y <= f.yMax
}

// project computes the plane's share of acceleration a, scaled by scale/256,
// and the toppling jitter from the component along the surface normal. More
// perpendicular pull means less jitter, never below 1.
func (f *frame) project(a r3.Vec, scale int32) {
	f.ax = int32(r3.Dot(a, f.x)) * scale / 256
	f.ay = int32(r3.Dot(a, f.y)) * scale / 256
	j := int32(r3.Dot(a, f.z)) * scale / 256
	if j < 0 {
		j = -j
	}
	if j >= 4 {
		j = 1
	} else {
		j = 5 - j
	}
	f.jitter = j
}

func validatePlanes(planes []Plane) error {
	if len(planes) == 0 {
		return ErrNoPlanes
	}
	for i, p := range planes {
		if p.Width <= 0 || p.Height <= 0 {
			return fmt.Errorf("plane %d is %dx%d: %w", i, p.Width, p.Height, ErrPlaneSize)
		}
		if p.Width > maxDimension || p.Height > maxDimension {
			return fmt.Errorf("plane %d is %dx%d, limit %d: %w", i, p.Width, p.Height, maxDimension, ErrPlaneSize)
		}
		for e, l := range p.Links {
			if l.IsWall() {
				continue
			}
			if l.plane < 0 || l.plane >= len(planes) || l.edge > EdgeBottom {
				return fmt.Errorf("plane %d %s edge -> plane %d %s: %w", i, Edge(e), l.plane, l.edge, ErrBadLink)
			}
		}
	}
	return nil
}
