package term

import (
	"context"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"pixeldust/internal/sims/sand"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func TestDrawPacksTwoRows(t *testing.T) {
	screen := newScreen(t, 10, 5)
	pal := []color.RGBA{{A: 255}, {R: 255, A: 255}, {G: 255, A: 255}}
	r := NewRenderer(screen, pal)
	// 3x3 canvas: rows 0 and 1 share terminal row 0, row 2 sits alone on row 1
	cells := []uint8{
		1, 2, 0,
		2, 1, 9,
		1, 0, 2,
	}
	r.Draw(cells, 3, 3, "hi")
	screen.Show()

	check := func(x, y int, fg, bg tcell.Color) {
		t.Helper()
		ch, _, style, _ := screen.GetContent(x, y)
		if ch != halfBlock {
			t.Fatalf("(%d,%d) rune %q", x, y, ch)
		}
		gotFG, gotBG, _ := style.Decompose()
		if gotFG != fg || gotBG != bg {
			t.Fatalf("(%d,%d) colors %v/%v, expected %v/%v", x, y, gotFG, gotBG, fg, bg)
		}
	}
	red := tcell.NewRGBColor(255, 0, 0)
	green := tcell.NewRGBColor(0, 255, 0)
	black := tcell.NewRGBColor(0, 0, 0)
	check(0, 0, red, green)
	check(1, 0, green, red)
	check(2, 0, black, green)
	check(0, 1, red, tcell.ColorBlack)

	if ch, _, _, _ := screen.GetContent(0, 2); ch != 'h' {
		t.Fatalf("status starts with %q", ch)
	}
	if ch, _, _, _ := screen.GetContent(5, 2); ch != ' ' {
		t.Fatalf("status tail %q", ch)
	}
}

func TestDrawClipsToScreen(t *testing.T) {
	screen := newScreen(t, 2, 1)
	r := NewRenderer(screen, []color.RGBA{{A: 255}})
	r.Draw(make([]uint8, 16), 4, 4, "status")
	screen.Show()
	if ch, _, _, _ := screen.GetContent(1, 0); ch != halfBlock {
		t.Fatalf("clipped cell %q", ch)
	}
}

func TestRunQuitsAndSteers(t *testing.T) {
	screen := newScreen(t, 140, 20)
	world, err := sand.New(sand.Config{Scene: "loop", Seed: 1, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	screen.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- Run(context.Background(), screen, world, Options{TPS: 120}) }()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not quit")
	}
	if !world.Manual() {
		t.Fatal("arrow key did not take over tilt")
	}

	var line strings.Builder
	for x := 0; x < 40; x++ {
		ch, _, _, _ := screen.GetContent(x, 12)
		line.WriteRune(ch)
	}
	if !strings.Contains(line.String(), "[paused]") {
		t.Fatalf("status line %q", line.String())
	}
}

func TestRunStopsOnContext(t *testing.T) {
	screen := newScreen(t, 40, 10)
	world, err := sand.New(sand.Config{Scene: "snow", Seed: 1, Elasticity: -1})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := Run(ctx, screen, world, Options{TPS: 1000}); err != context.DeadlineExceeded {
		t.Fatalf("err = %v", err)
	}
	if world.Tick() == 0 {
		t.Fatal("no steps ran")
	}
}
