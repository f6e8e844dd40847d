// Package scene loads plane layouts, obstacles and tilt settings from YAML
// and turns them into a ready dust simulation.
package scene

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"math"
	"os"
	"path"
	"slices"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"

	"pixeldust/internal/tilt"
	"pixeldust/pkg/dust"
)

//go:embed defaults.yaml
var defaultsYAML []byte

//go:embed scenes/*.yaml
var builtins embed.FS

var (
	// ErrUnknownScene is returned by Builtin for names with no embedded file.
	ErrUnknownScene = errors.New("scene: unknown scene")
	// ErrCrowded means the scene holds more grains than free pixels.
	ErrCrowded = errors.New("scene: not enough free pixels for grains")
)

// Scene is a complete simulation setup.
type Scene struct {
	Name          string         `yaml:"name"`
	Grains        int            `yaml:"grains"`
	Scale         int            `yaml:"scale"`
	Elasticity    int            `yaml:"elasticity"`
	Sort          bool           `yaml:"sort"`
	ObstacleColor [3]int         `yaml:"obstacle_color"`
	GrainColors   [][3]int       `yaml:"grain_colors"`
	Tilt          TiltSpec       `yaml:"tilt"`
	Planes        []PlaneSpec    `yaml:"planes"`
	Obstacles     []ObstacleSpec `yaml:"obstacles,omitempty"`
}

// PlaneSpec is one surface. Origin places it on the display canvas; X and Y
// default to the identity axes when left zero.
type PlaneSpec struct {
	Width  int                 `yaml:"width"`
	Height int                 `yaml:"height"`
	X      [3]float64          `yaml:"x,flow"`
	Y      [3]float64          `yaml:"y,flow"`
	Origin [2]int              `yaml:"origin,flow"`
	Links  map[string]LinkSpec `yaml:"links,omitempty"`
}

// LinkSpec names the plane and edge an edge leads to.
type LinkSpec struct {
	Plane int    `yaml:"plane"`
	Edge  string `yaml:"edge"`
}

// TiltSpec selects the acceleration source.
type TiltSpec struct {
	Kind   string     `yaml:"kind"`
	Vector [3]float64 `yaml:"vector,flow"`
	Axis   [3]float64 `yaml:"axis,flow"`
	Period int        `yaml:"period,omitempty"`
}

// Names lists the embedded scenes.
func Names() []string {
	entries, err := fs.ReadDir(builtins, "scenes")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	slices.Sort(names)
	return names
}

// Builtin loads an embedded scene over the defaults.
func Builtin(name string) (*Scene, error) {
	data, err := builtins.ReadFile(path.Join("scenes", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return Parse(data)
}

// Load reads a scene file, merging it over the embedded defaults.
func Load(file string) (*Scene, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes scene YAML over the embedded defaults.
func Parse(data []byte) (*Scene, error) {
	s := &Scene{}
	if err := yaml.Unmarshal(defaultsYAML, s); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing scene: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return s, nil
}

func (s *Scene) validate() error {
	if len(s.Planes) == 0 {
		return dust.ErrNoPlanes
	}
	if _, err := s.EnginePlanes(); err != nil {
		return err
	}
	if s.Elasticity < 0 || s.Elasticity > 256 {
		return fmt.Errorf("elasticity %d: %w", s.Elasticity, dust.ErrElasticity)
	}
	for i, o := range s.Obstacles {
		switch o.Kind {
		case "rect", "ring", "hourglass":
		default:
			return fmt.Errorf("obstacle %d: unknown kind %q", i, o.Kind)
		}
		if o.Plane < -1 || o.Plane >= len(s.Planes) {
			return fmt.Errorf("obstacle %d: plane %d out of range", i, o.Plane)
		}
	}
	_, err := s.Tilt.Source()
	return err
}

// WriteYAML writes the scene to a YAML file.
func (s *Scene) WriteYAML(file string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling scene: %w", err)
	}
	if err := os.WriteFile(file, data, 0644); err != nil {
		return fmt.Errorf("writing scene file: %w", err)
	}
	return nil
}

// Plane converts spec p into the engine's plane description.
func (s *Scene) Plane(p int) (dust.Plane, error) {
	spec := s.Planes[p]
	pl := dust.Walled(spec.Width, spec.Height)
	if spec.X != [3]float64{} {
		pl.X = vec(spec.X)
	}
	if spec.Y != [3]float64{} {
		pl.Y = vec(spec.Y)
	}
	for name, l := range spec.Links {
		from, err := dust.ParseEdge(name)
		if err != nil {
			return dust.Plane{}, fmt.Errorf("plane %d: %w", p, err)
		}
		to, err := dust.ParseEdge(l.Edge)
		if err != nil {
			return dust.Plane{}, fmt.Errorf("plane %d %s link: %w", p, name, err)
		}
		pl.Links[from] = dust.To(l.Plane, to)
	}
	return pl, nil
}

// EnginePlanes converts every plane spec.
func (s *Scene) EnginePlanes() ([]dust.Plane, error) {
	planes := make([]dust.Plane, len(s.Planes))
	for i := range s.Planes {
		pl, err := s.Plane(i)
		if err != nil {
			return nil, err
		}
		planes[i] = pl
	}
	return planes, nil
}

// Config returns the engine configuration for the scene.
func (s *Scene) Config() (dust.Config, error) {
	planes, err := s.EnginePlanes()
	if err != nil {
		return dust.Config{}, err
	}
	return dust.Config{
		Planes:     planes,
		Grains:     s.Grains,
		Scale:      s.Scale,
		Elasticity: s.Elasticity,
		Sort:       s.Sort,
	}, nil
}

// Build creates the simulation, draws obstacles and scatters the grains.
func (s *Scene) Build(rnd dust.Random) (*dust.Sim, error) {
	cfg, err := s.Config()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	sim, err := dust.New(cfg, rnd)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.Reset(sim); err != nil {
		return nil, err
	}
	return sim, nil
}

// Reset redraws obstacles on sim and re-scatters its grains.
func (s *Scene) Reset(sim *dust.Sim) error {
	sim.Clear()
	s.EachObstacle(sim.SetObstacle)
	free := 0
	for p := 0; p < sim.NumPlanes(); p++ {
		w, h := sim.PlaneSize(p)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if !sim.Occupied(x, y, p) {
					free++
				}
			}
		}
	}
	if free < sim.NumGrains() {
		return fmt.Errorf("scene %q: %w (%d grains, %d free)", s.Name, ErrCrowded, sim.NumGrains(), free)
	}
	sim.Randomize()
	return nil
}

// Canvas returns the display size that holds every plane at its origin.
func (s *Scene) Canvas() (w, h int) {
	for _, p := range s.Planes {
		w = max(w, p.Origin[0]+p.Width)
		h = max(h, p.Origin[1]+p.Height)
	}
	return w, h
}

// Palette returns display colors: void, empty, obstacle, then one per grain
// color group.
func (s *Scene) Palette() []color.RGBA {
	pal := []color.RGBA{
		{A: 255},
		{R: 12, G: 12, B: 16, A: 255},
		rgba(s.ObstacleColor),
	}
	for _, c := range s.GrainColors {
		pal = append(pal, rgba(c))
	}
	if len(s.GrainColors) == 0 {
		pal = append(pal, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return pal
}

// Source builds the scene's tilt source.
func (t TiltSpec) Source() (tilt.Source, error) {
	v := vec(t.Vector)
	switch t.Kind {
	case "", "fixed":
		x, y, z := round3(t.Vector)
		return tilt.Fixed{X: x, Y: y, Z: z}, nil
	case "orbit":
		return tilt.Orbit{Gravity: v, Axis: vec(t.Axis), Period: t.Period}, nil
	case "manual":
		x, y, z := round3(t.Vector)
		return tilt.NewManual(x, y, z), nil
	}
	return nil, fmt.Errorf("scene: unknown tilt kind %q", t.Kind)
}

func vec(a [3]float64) r3.Vec { return r3.Vec{X: a[0], Y: a[1], Z: a[2]} }

func round3(a [3]float64) (int, int, int) {
	return int(math.Round(a[0])), int(math.Round(a[1])), int(math.Round(a[2]))
}

func rgba(c [3]int) color.RGBA {
	return color.RGBA{R: channel(c[0]), G: channel(c[1]), B: channel(c[2]), A: 255}
}

func channel(v int) uint8 { return uint8(min(max(v, 0), 255)) }
