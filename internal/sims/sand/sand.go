// Package sand drives a dust simulation from a scene and a tilt source and
// paints it into a display canvas.
package sand

import (
	"fmt"
	"image"

	icore "pixeldust/internal/core"
	"pixeldust/internal/scene"
	"pixeldust/internal/tilt"
	"pixeldust/pkg/core"
	"pixeldust/pkg/dust"
)

// Display cell values. Grain color groups start at CellGrain.
const (
	CellVoid uint8 = iota
	CellEmpty
	CellObstacle
	CellGrain
)

// World is a scene in motion.
type World struct {
	cfg    Config
	scene  *scene.Scene
	sim    *dust.Sim
	rng    *core.RNG
	source tilt.Source
	manual *tilt.Manual

	tick  int
	accel [3]int
	err   error

	base    *icore.ByteGrid
	display *icore.ByteGrid
	groups  []uint8
}

// New loads the configured scene and builds its simulation.
func New(cfg Config) (*World, error) {
	sc, err := loadScene(cfg)
	if err != nil {
		return nil, err
	}
	rng := core.NewRNG(cfg.Seed)
	sim, err := sc.Build(rng)
	if err != nil {
		return nil, err
	}
	src, err := sc.Tilt.Source()
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", sc.Name, err)
	}

	w, h := sc.Canvas()
	world := &World{
		cfg:     cfg,
		scene:   sc,
		sim:     sim,
		rng:     rng,
		source:  src,
		base:    icore.NewByteGrid(w, h),
		display: icore.NewByteGrid(w, h),
		groups:  make([]uint8, sim.NumGrains()),
	}
	colors := max(len(sc.GrainColors), 1)
	for i := range world.groups {
		world.groups[i] = CellGrain + uint8(i*colors/len(world.groups))
	}
	world.paintBase()
	world.paint()
	return world, nil
}

func loadScene(cfg Config) (*scene.Scene, error) {
	var (
		sc  *scene.Scene
		err error
	)
	if cfg.File != "" {
		sc, err = scene.Load(cfg.File)
	} else {
		sc, err = scene.Builtin(cfg.Scene)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Grains > 0 {
		sc.Grains = cfg.Grains
	}
	if cfg.Scale > 0 {
		sc.Scale = cfg.Scale
	}
	if cfg.Elasticity >= 0 {
		sc.Elasticity = cfg.Elasticity
	}
	if cfg.Sort != nil {
		sc.Sort = *cfg.Sort
	}
	return sc, nil
}

// Name returns the scene name.
func (w *World) Name() string { return w.scene.Name }

// Size reports the display canvas dimensions.
func (w *World) Size() icore.Size { return icore.Size{W: w.display.W, H: w.display.H} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Scene returns the loaded scene.
func (w *World) Scene() *scene.Scene { return w.scene }

// Engine exposes the underlying simulation.
func (w *World) Engine() *dust.Sim { return w.sim }

// Stats returns the engine counters.
func (w *World) Stats() dust.Stats { return w.sim.Stats() }

// Err returns the error from the last Reset, if any.
func (w *World) Err() error { return w.err }

// Tick returns the number of steps since the last reset.
func (w *World) Tick() int { return w.tick }

// Tilt returns the acceleration applied by the last step.
func (w *World) Tilt() (ax, ay, az int) { return w.accel[0], w.accel[1], w.accel[2] }

// Reset scatters the grains again. Seed 0 reuses the configured seed. Manual
// tilt is dropped in favor of the scene's source. A failed scatter is kept
// and reported by Err.
func (w *World) Reset(seed int64) {
	if seed == 0 {
		seed = w.cfg.Seed
	}
	w.rng.Reseed(seed)
	w.err = w.scene.Reset(w.sim)
	w.tick = 0
	w.accel = [3]int{}
	w.manual = nil
	w.paint()
}

// Step samples the tilt source and advances the simulation one frame.
func (w *World) Step() {
	var src tilt.Source = w.source
	if w.manual != nil {
		src = w.manual
	}
	ax, ay, az := src.Sample(w.tick)
	w.accel = [3]int{ax, ay, az}
	w.sim.Step(ax, ay, az)
	w.tick++
	w.paint()
}

// Nudge tilts by (dx, dy) in display coordinates. The first nudge freezes
// the scene's tilt source at its last sample and takes over from there.
func (w *World) Nudge(dx, dy int) {
	if w.manual == nil {
		ax, ay, az := w.accel[0], w.accel[1], w.accel[2]
		if ax == 0 && ay == 0 && az == 0 {
			ax, ay, az = w.source.Sample(w.tick)
		}
		w.manual = tilt.NewManual(ax, ay, az)
	}
	w.manual.Nudge(dx, dy)
}

// Release hands tilt control back to the scene's source.
func (w *World) Release() { w.manual = nil }

// Manual reports whether user input currently drives the tilt.
func (w *World) Manual() bool { return w.manual != nil }

// PlaneRects returns each plane's area on the display canvas.
func (w *World) PlaneRects() []image.Rectangle {
	rects := make([]image.Rectangle, len(w.scene.Planes))
	for i, p := range w.scene.Planes {
		rects[i] = image.Rect(p.Origin[0], p.Origin[1], p.Origin[0]+p.Width, p.Origin[1]+p.Height)
	}
	return rects
}

func (w *World) paintBase() {
	w.base.Fill(CellVoid)
	for _, p := range w.scene.Planes {
		for y := 0; y < p.Height; y++ {
			for x := 0; x < p.Width; x++ {
				w.base.Set(p.Origin[0]+x, p.Origin[1]+y, CellEmpty)
			}
		}
	}
	w.scene.EachObstacle(func(x, y, plane int) {
		o := w.scene.Planes[plane].Origin
		w.base.Set(o[0]+x, o[1]+y, CellObstacle)
	})
}

func (w *World) paint() {
	copy(w.display.Cells(), w.base.Cells())
	for i, g := range w.groups {
		x, y, p := w.sim.Position(i)
		o := w.scene.Planes[p].Origin
		w.display.Set(o[0]+x, o[1]+y, g)
	}
}

func init() {
	for _, name := range scene.Names() {
		icore.Register(name, factory(name))
	}
}

func factory(name string) icore.Factory {
	return func(cfg map[string]string) (icore.Sim, error) {
		c := FromMap(cfg)
		if _, ok := cfg["scene"]; !ok {
			c.Scene = name
		}
		w, err := New(c)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}
