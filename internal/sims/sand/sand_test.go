package sand

import (
	"errors"
	"slices"
	"strings"
	"testing"

	icore "pixeldust/internal/core"
	"pixeldust/internal/scene"
)

func countGrains(cells []uint8) int {
	n := 0
	for _, c := range cells {
		if c >= CellGrain {
			n++
		}
	}
	return n
}

func TestNewPaintsEveryGrain(t *testing.T) {
	for _, name := range []string{"snow", "hourglass", "cube", "loop"} {
		w, err := New(Config{Scene: name, Seed: 3, Elasticity: -1})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		size := w.Size()
		if len(w.Cells()) != size.W*size.H {
			t.Fatalf("%s: %d cells for %dx%d", name, len(w.Cells()), size.W, size.H)
		}
		for i := 0; i < 30; i++ {
			w.Step()
		}
		if got := countGrains(w.Cells()); got != w.Engine().NumGrains() {
			t.Fatalf("%s: %d grain cells, expected %d", name, got, w.Engine().NumGrains())
		}
		if w.Name() != name || w.Tick() != 30 {
			t.Fatalf("%s: name %q tick %d", name, w.Name(), w.Tick())
		}
	}
}

func TestLoopHasVoidGaps(t *testing.T) {
	w, err := New(Config{Scene: "loop", Seed: 1, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	if s := w.Size(); s.W != 134 || s.H != 24 {
		t.Fatalf("canvas %dx%d", s.W, s.H)
	}
	if c := w.Cells()[32]; c != CellVoid {
		t.Fatalf("gap cell = %d, expected void", c)
	}
	rects := w.PlaneRects()
	if len(rects) != 4 || rects[1].Min.X != 34 || rects[3].Max.X != 134 {
		t.Fatalf("plane rects %v", rects)
	}
}

func TestColorGroups(t *testing.T) {
	w, err := New(Config{Scene: "cube", Seed: 1, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	seen := map[uint8]int{}
	for _, c := range w.Cells() {
		if c >= CellGrain {
			seen[c]++
		}
	}
	if len(seen) != 6 {
		t.Fatalf("color groups %v", seen)
	}
	for g, n := range seen {
		if n != 600 {
			t.Fatalf("group %d has %d grains", g, n)
		}
	}
	if len(w.Palette()) != int(CellGrain)+6 {
		t.Fatalf("palette has %d entries", len(w.Palette()))
	}
}

func TestResetIsDeterministic(t *testing.T) {
	a, err := New(Config{Scene: "hourglass", Seed: 9, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(Config{Scene: "hourglass", Seed: 9, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 40; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("same seed diverged")
	}

	a.Nudge(100, 0)
	a.Reset(0)
	b.Reset(9)
	if a.Manual() || a.Tick() != 0 {
		t.Fatal("Reset kept manual tilt or tick")
	}
	for i := 0; i < 10; i++ {
		a.Step()
		b.Step()
	}
	if !slices.Equal(a.Cells(), b.Cells()) {
		t.Fatal("reset with configured seed diverged")
	}
}

func TestResetReportsCrowding(t *testing.T) {
	w, err := New(Config{Scene: "snow", Seed: 2, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	if w.Err() != nil {
		t.Fatalf("fresh world has error %v", w.Err())
	}

	sc := w.Scene()
	sc.Obstacles = append(sc.Obstacles, scene.ObstacleSpec{Kind: "rect", Plane: 0, W: 64, H: 64})
	w.Reset(0)
	if !errors.Is(w.Err(), scene.ErrCrowded) {
		t.Fatalf("Err = %v, expected ErrCrowded", w.Err())
	}
	if p, ok := w.Parameters().Lookup("status"); !ok || !strings.Contains(p.Value, "not enough free pixels") {
		t.Fatalf("status = %+v", p)
	}

	sc.Obstacles = sc.Obstacles[:len(sc.Obstacles)-1]
	w.Reset(0)
	if w.Err() != nil {
		t.Fatalf("Err after uncrowded reset = %v", w.Err())
	}
	if p, _ := w.Parameters().Lookup("status"); p.Value != "ok" {
		t.Fatalf("status = %q, expected ok", p.Value)
	}
}

func TestNudgeTakesOver(t *testing.T) {
	w, err := New(Config{Scene: "loop", Seed: 1, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	w.Step()
	before, _, _ := w.Tilt()
	w.Nudge(-4000, 0)
	w.Step()
	after, _, _ := w.Tilt()
	if !w.Manual() || after >= before {
		t.Fatalf("nudge left did not tilt left: %d -> %d", before, after)
	}
	w.Release()
	w.Step()
	if x, _, _ := w.Tilt(); w.Manual() || x != 6000 {
		t.Fatalf("release kept manual tilt, ax=%d", x)
	}
}

func TestParameters(t *testing.T) {
	on := true
	w, err := New(Config{Scene: "snow", Seed: 1, Grains: 100, Scale: 2, Elasticity: 10, Sort: &on})
	if err != nil {
		t.Fatal(err)
	}
	snap := w.Parameters()
	for key, want := range map[string]string{"grains": "100", "scale": "2", "elasticity": "10", "sort": "1", "scene": "snow"} {
		p, ok := snap.Lookup(key)
		if !ok || p.Value != want {
			t.Fatalf("%s = %+v, expected %s", key, p, want)
		}
	}

	if !w.SetIntParameter("elasticity", 999) || w.Engine().Elasticity() != 256 {
		t.Fatalf("elasticity not clamped: %d", w.Engine().Elasticity())
	}
	if !w.SetIntParameter("sort", 0) || w.Engine().Sorted() {
		t.Fatal("sort not disabled")
	}
	if w.SetIntParameter("width", 3) {
		t.Fatal("unknown key accepted")
	}
	for _, c := range w.ParameterControls() {
		if _, ok := snap.Lookup(c.Key); !ok {
			t.Fatalf("control %q has no parameter", c.Key)
		}
	}
}

func TestFromMap(t *testing.T) {
	c := FromMap(map[string]string{
		"scene": "cube", "seed": "12", "grains": "50", "scale": "3",
		"elasticity": "0", "sort": "false", "file": "x.yaml",
	})
	if c.Scene != "cube" || c.Seed != 12 || c.Grains != 50 || c.Scale != 3 || c.Elasticity != 0 || c.File != "x.yaml" {
		t.Fatalf("config = %+v", c)
	}
	if c.Sort == nil || *c.Sort {
		t.Fatal("sort not parsed")
	}
	d := FromMap(map[string]string{"grains": "-4", "elasticity": "soft", "sort": "maybe"})
	if d.Grains != 0 || d.Elasticity != -1 || d.Sort != nil {
		t.Fatalf("bad values applied: %+v", d)
	}
}

func TestRegisteredFactories(t *testing.T) {
	for _, name := range []string{"snow", "hourglass", "cube", "loop"} {
		f, ok := icore.Sims()[name]
		if !ok {
			t.Fatalf("%s not registered", name)
		}
		sim, err := f(nil)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if sim.Name() != name {
			t.Fatalf("factory %s built %s", name, sim.Name())
		}
	}
	if _, err := icore.Sims()["snow"](map[string]string{"scene": "nope"}); err == nil {
		t.Fatal("unknown scene built")
	}
}
