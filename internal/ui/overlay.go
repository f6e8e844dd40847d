//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"

	"pixeldust/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type planeRectProvider interface {
	PlaneRects() []image.Rectangle
}

type tiltProvider interface {
	Tilt() (ax, ay, az int)
}

// Overlay draws optional debugging visuals on top of the base simulation:
// plane borders (key 1) and the current tilt vector (key 2).
type Overlay struct {
	sim        core.Sim
	scale      int
	showPlanes bool
	showTilt   bool

	pixel *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1), showTilt: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showPlanes = !o.showPlanes
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showTilt = !o.showTilt
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	s := float64(o.scale)
	if o.showPlanes {
		if p, ok := o.sim.(planeRectProvider); ok {
			col := color.RGBA{R: 90, G: 130, B: 170, A: 160}
			for _, r := range p.PlaneRects() {
				x0, y0 := float64(r.Min.X)*s, float64(r.Min.Y)*s
				x1, y1 := float64(r.Max.X)*s, float64(r.Max.Y)*s
				o.drawLine(screen, x0, y0, x1, y0, 1, col)
				o.drawLine(screen, x0, y1, x1, y1, 1, col)
				o.drawLine(screen, x0, y0, x0, y1, 1, col)
				o.drawLine(screen, x1, y0, x1, y1, 1, col)
			}
		}
	}
	if o.showTilt {
		if p, ok := o.sim.(tiltProvider); ok {
			o.drawTilt(screen, p)
		}
	}
}

// drawTilt draws the in-screen part of the acceleration as an arrow from the
// top-left corner. Full length is reached at 16384.
func (o *Overlay) drawTilt(screen *ebiten.Image, p tiltProvider) {
	const (
		full      = 16384.0
		radius    = 24.0
		headAngle = math.Pi / 6
	)
	ax, ay, _ := p.Tilt()
	cx, cy := radius+8, radius+8
	col := color.RGBA{R: 240, G: 200, B: 80, A: 200}
	o.drawLine(screen, cx-2, cy, cx+2, cy, 4, color.RGBA{R: 240, G: 200, B: 80, A: 120})
	dx, dy := float64(ax)/full*radius, float64(ay)/full*radius
	length := math.Hypot(dx, dy)
	if length < 1 {
		return
	}
	if length > radius {
		dx, dy = dx/length*radius, dy/length*radius
		length = radius
	}
	tipX, tipY := cx+dx, cy+dy
	o.drawLine(screen, cx, cy, tipX, tipY, 2, col)
	angle := math.Atan2(dy, dx)
	head := math.Min(length*0.4, 8)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*head, tipY-math.Sin(angle+headAngle)*head, 2, col)
	o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*head, tipY-math.Sin(angle-headAngle)*head, 2, col)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}
