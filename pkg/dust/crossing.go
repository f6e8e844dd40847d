package dust

// edgeFrame describes how an edge sits in its plane: which axis points through
// it (depth), whether it lies at the far end of that axis, which axis runs
// along it, and whether the along coordinate is measured from the far end.
// Walking the boundary clockwise on screen (y down) visits top, right, bottom
// and left with increasing along coordinates, so gluing two edges always runs
// their along coordinates in opposite directions.
type edgeFrame struct {
	depth    int
	atMax    bool
	along    int
	reversed bool
}

var edgeFrames = [4]edgeFrame{
	EdgeTop:    {depth: 1, atMax: false, along: 0, reversed: false},
	EdgeLeft:   {depth: 0, atMax: false, along: 1, reversed: true},
	EdgeRight:  {depth: 0, atMax: true, along: 1, reversed: false},
	EdgeBottom: {depth: 1, atMax: true, along: 0, reversed: true},
}

// remap carries subpixel point p, just outside edge src of a plane with
// maxima srcMax, to the matching point just inside edge dst of a plane with
// maxima dstMax. Distance past the source edge becomes distance inside the
// destination edge; the along offset is mirrored across the seam.
func remap(src, dst edgeFrame, srcMax, dstMax, p [2]int32) [2]int32 {
	inward := p[src.depth]
	if src.atMax {
		inward = srcMax[src.depth] - p[src.depth]
	}
	along := p[src.along]
	if src.reversed {
		along = srcMax[src.along] - along
	}
	depth := -1 - inward
	along = dstMax[dst.along] - along

	var q [2]int32
	q[dst.depth] = depth
	if dst.atMax {
		q[dst.depth] = dstMax[dst.depth] - depth
	}
	q[dst.along] = along
	if dst.reversed {
		q[dst.along] = dstMax[dst.along] - along
	}
	return q
}

// edgeMap is the linear part of an edge-to-edge remap: optionally swap X and
// Y, then optionally negate each. Velocities use it as is; positions add the
// per-link offset afterwards.
type edgeMap struct {
	swap, negX, negY bool
}

func (m edgeMap) apply(x, y int32) (int32, int32) {
	if m.swap {
		x, y = y, x
	}
	if m.negX {
		x = -x
	}
	if m.negY {
		y = -y
	}
	return x, y
}

// edgePairs holds the sixteen exit-edge × entry-edge descriptors.
var edgePairs = buildEdgePairs()

func buildEdgePairs() [4][4]edgeMap {
	var t [4][4]edgeMap
	var zero [2]int32
	for s := range edgeFrames {
		for d := range edgeFrames {
			o := remap(edgeFrames[s], edgeFrames[d], zero, zero, [2]int32{0, 0})
			ux := remap(edgeFrames[s], edgeFrames[d], zero, zero, [2]int32{1, 0})
			uy := remap(edgeFrames[s], edgeFrames[d], zero, zero, [2]int32{0, 1})
			ux[0], ux[1] = ux[0]-o[0], ux[1]-o[1]
			uy[0], uy[1] = uy[0]-o[0], uy[1]-o[1]
			var m edgeMap
			if ux[0] != 0 {
				m.negX = ux[0] < 0
				m.negY = uy[1] < 0
			} else {
				m.swap = true
				m.negX = uy[0] < 0
				m.negY = ux[1] < 0
			}
			t[s][d] = m
		}
	}
	return t
}

// linkTransform is an edgeMap bound to a concrete pair of planes.
type linkTransform struct {
	wall       bool
	plane      int
	m          edgeMap
	offX, offY int32
}

func newLinkTransform(from Edge, l Link, src, dst *frame) linkTransform {
	if l.IsWall() {
		return linkTransform{wall: true}
	}
	m := edgePairs[from][l.edge]
	o := remap(edgeFrames[from], edgeFrames[l.edge],
		[2]int32{src.xMax, src.yMax}, [2]int32{dst.xMax, dst.yMax}, [2]int32{0, 0})
	return linkTransform{plane: l.plane, m: m, offX: o[0], offY: o[1]}
}

// cross resolves a tentative grain position outside its plane. It returns the
// grain re-expressed in the destination plane and whether that spot is
// blocked. Walls and moves that leave through a corner (both axes out of
// range) are blocked and leave the grain untouched.
func (s *Sim) cross(in Grain) (Grain, bool) {
	f := &s.frames[in.Plane]
	edge := Edge(0)
	n := 0
	if in.X < 0 {
		edge, n = EdgeLeft, n+1
	} else if in.X > f.xMax {
		edge, n = EdgeRight, n+1
	}
	if in.Y < 0 {
		edge, n = EdgeTop, n+1
	} else if in.Y > f.yMax {
		edge, n = EdgeBottom, n+1
	}
	if n != 1 {
		return in, true
	}
	lt := &f.links[edge]
	if lt.wall {
		return in, true
	}
	dst := &s.frames[lt.plane]
	out := in
	out.Plane = lt.plane
	out.X, out.Y = lt.m.apply(in.X, in.Y)
	out.X = clamp32(out.X+lt.offX, 0, dst.xMax)
	out.Y = clamp32(out.Y+lt.offY, 0, dst.yMax)
	out.VX, out.VY = lt.m.apply(in.VX, in.VY)
	return out, s.bits.Test(int(out.X>>8), int(out.Y>>8), out.Plane)
}

func clamp32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
