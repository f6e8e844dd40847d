package main

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/gocarina/gocsv"

	"pixeldust/internal/render"
	"pixeldust/internal/sims/sand"
)

type paramSet struct {
	elasticity int
	scale      int
	sort       bool
}

func (p paramSet) String() string {
	return fmt.Sprintf("elasticity=%d scale=%d sort=%v", p.elasticity, p.scale, p.sort)
}

func (p paramSet) slug() string {
	s := fmt.Sprintf("e%03d-s%02d", p.elasticity, p.scale)
	if p.sort {
		s += "-sorted"
	}
	return s
}

func grid(elasticities, scales []int, sorts []bool) []paramSet {
	var sets []paramSet
	for _, e := range elasticities {
		for _, s := range scales {
			for _, o := range sorts {
				sets = append(sets, paramSet{elasticity: e, scale: s, sort: o})
			}
		}
	}
	return sets
}

// Result is one row of sweep.csv.
type Result struct {
	Scene      string  `csv:"scene"`
	Elasticity int     `csv:"elasticity"`
	Scale      int     `csv:"scale"`
	Sort       bool    `csv:"sort"`
	Steps      uint64  `csv:"steps"`
	Moves      uint64  `csv:"moves"`
	Crossings  uint64  `csv:"crossings"`
	Blocks     uint64  `csv:"blocks"`
	Skids      uint64  `csv:"skids"`
	Stops      uint64  `csv:"stops"`
	TailMoves  uint64  `csv:"tail_moves"`
	MovesPer   float64 `csv:"moves_per_grain_step"`
	ElapsedMS  int64   `csv:"elapsed_ms"`
}

// runScenario plays base with params for steps ticks. TailMoves counts
// pixel moves over the last tenth of the run, a measure of how settled the
// pile is.
func runScenario(base sand.Config, params paramSet, steps int) (Result, *image.RGBA, error) {
	cfg := base
	cfg.Elasticity = params.elasticity
	cfg.Scale = params.scale
	sorted := params.sort
	cfg.Sort = &sorted

	world, err := sand.New(cfg)
	if err != nil {
		return Result{}, nil, err
	}

	start := time.Now()
	tailFrom := steps - max(steps/10, 1)
	var tailStart uint64
	for i := 0; i < steps; i++ {
		if i == tailFrom {
			tailStart = world.Stats().Moves
		}
		world.Step()
	}
	st := world.Stats()
	grains := world.Engine().NumGrains()

	res := Result{
		Scene:      world.Name(),
		Elasticity: params.elasticity,
		Scale:      params.scale,
		Sort:       params.sort,
		Steps:      st.Steps,
		Moves:      st.Moves,
		Crossings:  st.Crossings,
		Blocks:     st.Blocks,
		Skids:      st.Skids,
		Stops:      st.Stops,
		TailMoves:  st.Moves - tailStart,
		ElapsedMS:  time.Since(start).Milliseconds(),
	}
	if steps > 0 && grains > 0 {
		res.MovesPer = float64(st.Moves) / float64(steps) / float64(grains)
	}
	size := world.Size()
	frame := render.Image(size.W, size.H, world.Cells(), world.Palette())
	return res, frame, nil
}

func writeCSV(path string, rows []Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
