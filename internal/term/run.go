package term

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/gdamore/tcell/v2"

	"pixeldust/internal/core"
)

type paletteProvider interface {
	Palette() []color.RGBA
}

type tiltController interface {
	Nudge(dx, dy int)
	Release()
	Tilt() (ax, ay, az int)
}

// Options tune the terminal loop.
type Options struct {
	TPS   int
	Nudge int
	Seed  int64
}

// Run drives sim on screen until q, Escape or Ctrl-C is pressed or ctx is
// done. Space pauses, n steps once, r resets, arrow keys tilt and h hands
// tilt back to the scene. The caller owns screen initialization and Fini.
func Run(ctx context.Context, screen tcell.Screen, sim core.Sim, opts Options) error {
	palette := []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}}
	if p, ok := sim.(paletteProvider); ok {
		palette = p.Palette()
	}
	if opts.Nudge <= 0 {
		opts.Nudge = 800
	}
	r := NewRenderer(screen, palette)
	tc, _ := sim.(tiltController)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	pacer := core.NewFixedStep(opts.TPS)
	paused, once := false, false
	draw := func() {
		size := sim.Size()
		r.Draw(sim.Cells(), size.W, size.H, status(sim, tc, paused))
		screen.Show()
	}
	draw()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q':
					return nil
				case ev.Rune() == ' ':
					paused = !paused
				case ev.Rune() == 'n':
					once = true
				case ev.Rune() == 'r':
					sim.Reset(opts.Seed)
				case tc != nil && ev.Rune() == 'h':
					tc.Release()
				case tc != nil:
					steer(tc, ev.Key(), opts.Nudge)
				}
			}
			draw()
			continue
		default:
		}

		if (!paused || once) && pacer.ShouldStep() {
			sim.Step()
			once = false
			draw()
			continue
		}
		time.Sleep(time.Millisecond)
	}
}

func steer(tc tiltController, k tcell.Key, n int) {
	switch k {
	case tcell.KeyLeft:
		tc.Nudge(-n, 0)
	case tcell.KeyRight:
		tc.Nudge(n, 0)
	case tcell.KeyUp:
		tc.Nudge(0, -n)
	case tcell.KeyDown:
		tc.Nudge(0, n)
	}
}

func status(sim core.Sim, tc tiltController, paused bool) string {
	s := sim.Name()
	if tc != nil {
		ax, ay, az := tc.Tilt()
		s += fmt.Sprintf("  tilt %d,%d,%d", ax, ay, az)
	}
	if paused {
		s += "  [paused]"
	}
	return s + "  q quit, space pause, arrows tilt"
}
