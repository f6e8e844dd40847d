//go:build ebiten

package app

import (
	"image/color"
	"time"

	"pixeldust/internal/core"
	"pixeldust/internal/render"
	"pixeldust/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HUDWidth is the width of the parameter panel in screen pixels.
const HUDWidth = 240

type paletteProvider interface {
	Palette() []color.RGBA
}

type tiltController interface {
	Nudge(dx, dy int)
	Release()
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	palette []color.RGBA

	scale    int
	nudge    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	scale = max(scale, 1)
	size := sim.Size()
	g := &Game{
		sim:     sim,
		painter: render.NewGridPainter(size.W, size.H),
		overlay: ui.NewOverlay(sim, scale),
		hud:     ui.NewHUD(sim, HUDWidth),
		palette: []color.RGBA{{A: 255}, {R: 255, G: 255, B: 255, A: 255}},
		scale:   scale,
		nudge:   400,
		seed:    seed,
	}
	if p, ok := sim.(paletteProvider); ok {
		g.palette = p.Palette()
	}
	return g
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if tc, ok := g.sim.(tiltController); ok {
		g.steer(tc)
	}

	g.overlay.Update()
	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// steer maps held arrow keys onto tilt nudges; H hands tilt back to the scene.
func (g *Game) steer(tc tiltController) {
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx -= g.nudge
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx += g.nudge
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy -= g.nudge
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy += g.nudge
	}
	if dx != 0 || dy != 0 {
		tc.Nudge(dx, dy)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		tc.Release()
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.sim.Cells(), g.palette, g.scale)
	g.overlay.Draw(screen)
	size := g.sim.Size()
	g.hud.Draw(screen, size.W*g.scale, g.screenHeight())
}

func (g *Game) screenHeight() int {
	return max(g.sim.Size().H*g.scale, 480)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hud.Width(), g.screenHeight()
}
