package scene

import "math"

// ObstacleSpec draws static pixels. Kinds: rect (filled), ring (outline of
// the rect) and hourglass (two cosine walls spanning the whole plane).
// Plane -1 draws on every plane. Pixels outside a plane are dropped.
type ObstacleSpec struct {
	Kind  string `yaml:"kind"`
	Plane int    `yaml:"plane"`
	X     int    `yaml:"x,omitempty"`
	Y     int    `yaml:"y,omitempty"`
	W     int    `yaml:"w,omitempty"`
	H     int    `yaml:"h,omitempty"`
}

// EachObstacle calls fn for every obstacle pixel. A pixel shared by
// overlapping obstacles may be visited more than once.
func (s *Scene) EachObstacle(fn func(x, y, plane int)) {
	for _, o := range s.Obstacles {
		for p := range s.Planes {
			if o.Plane != -1 && o.Plane != p {
				continue
			}
			w, h := s.Planes[p].Width, s.Planes[p].Height
			put := func(x, y int) {
				if x >= 0 && y >= 0 && x < w && y < h {
					fn(x, y, p)
				}
			}
			switch o.Kind {
			case "rect":
				for y := o.Y; y < o.Y+o.H; y++ {
					for x := o.X; x < o.X+o.W; x++ {
						put(x, y)
					}
				}
			case "ring":
				for x := o.X; x < o.X+o.W; x++ {
					put(x, o.Y)
					put(x, o.Y+o.H-1)
				}
				for y := o.Y + 1; y < o.Y+o.H-1; y++ {
					put(o.X, y)
					put(o.X+o.W-1, y)
				}
			case "hourglass":
				for y := 0; y < h; y++ {
					n := hourglassWidth(y, w, h)
					for x := 0; x <= n; x++ {
						put(x, y)
						put(w-1-x, y)
					}
				}
			}
		}
	}
}

// hourglassWidth is the last wall column at row y, counted from either side.
// It is smallest at the top and bottom rows and largest at the waist.
func hourglassWidth(y, w, h int) int {
	if h < 2 {
		return 0
	}
	t := float64(y) * math.Pi * 2 / float64(h-1)
	return int((1-math.Cos(t))*(float64(w)/4-1) + 0.5)
}
