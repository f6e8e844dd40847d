package render

import (
	"image/color"
	"slices"
	"testing"
)

func TestFillPaletteRGBA(t *testing.T) {
	pal := []color.RGBA{{A: 255}, {R: 10, G: 20, B: 30, A: 255}}
	buf := make([]byte, 12)
	fillPaletteRGBA(buf, []uint8{0, 1, 7}, pal)
	want := []byte{0, 0, 0, 255, 10, 20, 30, 255, 10, 20, 30, 255}
	if !slices.Equal(buf, want) {
		t.Fatalf("buf = %v, expected %v", buf, want)
	}

	fillPaletteRGBA(buf, []uint8{1, 1, 1}, nil)
	if !slices.Equal(buf, make([]byte, 12)) {
		t.Fatalf("empty palette left %v", buf)
	}
}

func TestImage(t *testing.T) {
	pal := []color.RGBA{{A: 255}, {R: 255, A: 255}}
	img := Image(2, 1, []uint8{0, 1}, pal)
	if got := img.RGBAAt(1, 0); got != pal[1] {
		t.Fatalf("pixel (1,0) = %v", got)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 1 {
		t.Fatalf("bounds %v", b)
	}
}
