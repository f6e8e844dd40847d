// Package term draws a display canvas in a terminal with tcell, packing two
// pixel rows into each character cell with the upper half block.
package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// Renderer paints palette-indexed cells onto a tcell screen.
type Renderer struct {
	screen  tcell.Screen
	palette []tcell.Color
}

// NewRenderer converts the palette once for repeated drawing.
func NewRenderer(screen tcell.Screen, palette []color.RGBA) *Renderer {
	r := &Renderer{screen: screen, palette: make([]tcell.Color, len(palette))}
	for i, c := range palette {
		r.palette[i] = tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
	}
	return r
}

func (r *Renderer) color(v uint8) tcell.Color {
	if len(r.palette) == 0 {
		return tcell.ColorBlack
	}
	return r.palette[min(int(v), len(r.palette)-1)]
}

// Draw paints a w x h canvas from the top-left corner, clipped to the screen,
// followed by a status line. It does not call Show.
func (r *Renderer) Draw(cells []uint8, w, h int, status string) {
	if len(cells) != w*h {
		return
	}
	sw, sh := r.screen.Size()
	rows := (h + 1) / 2
	for row := 0; row < rows && row < sh; row++ {
		for x := 0; x < w && x < sw; x++ {
			top := r.color(cells[2*row*w+x])
			bottom := tcell.ColorBlack
			if 2*row+1 < h {
				bottom = r.color(cells[(2*row+1)*w+x])
			}
			r.screen.SetContent(x, row, halfBlock, nil, tcell.StyleDefault.Foreground(top).Background(bottom))
		}
	}
	if rows >= sh {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	x := 0
	for _, c := range status {
		if x >= sw {
			break
		}
		r.screen.SetContent(x, rows, c, nil, style)
		x++
	}
	for ; x < sw; x++ {
		r.screen.SetContent(x, rows, ' ', nil, tcell.StyleDefault)
	}
}
