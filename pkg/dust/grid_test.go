package dust

import "testing"

func TestBitmapPlanesIndependent(t *testing.T) {
	b := newBitmap([][2]int{{10, 3}, {5, 4}})
	if got := len(b.data); got != 2*3+1*4 {
		t.Fatalf("bitmap bytes = %d, expected 10", got)
	}

	b.Set(9, 2, 0)
	b.Set(0, 0, 1)
	b.Set(4, 3, 1)

	for p, sz := range [][2]int{{10, 3}, {5, 4}} {
		for y := 0; y < sz[1]; y++ {
			for x := 0; x < sz[0]; x++ {
				want := (p == 0 && x == 9 && y == 2) ||
					(p == 1 && x == 0 && y == 0) ||
					(p == 1 && x == 4 && y == 3)
				if got := b.Test(x, y, p); got != want {
					t.Fatalf("plane %d pixel (%d,%d) = %v, expected %v", p, x, y, got, want)
				}
			}
		}
	}
	if got := b.Count(); got != 3 {
		t.Fatalf("Count = %d, expected 3", got)
	}

	b.Clear(9, 2, 0)
	if b.Test(9, 2, 0) {
		t.Fatal("cleared pixel still set")
	}
	if !b.Test(0, 0, 1) || !b.Test(4, 3, 1) {
		t.Fatal("clearing plane 0 disturbed plane 1")
	}

	b.ClearAll()
	if got := b.Count(); got != 0 {
		t.Fatalf("Count after ClearAll = %d", got)
	}
}

func TestBitmapNeighborBitsUntouched(t *testing.T) {
	b := newBitmap([][2]int{{16, 1}})
	for x := 0; x < 16; x++ {
		b.Set(x, 0, 0)
	}
	b.Clear(7, 0, 0)
	b.Clear(8, 0, 0)
	for x := 0; x < 16; x++ {
		want := x != 7 && x != 8
		if got := b.Test(x, 0, 0); got != want {
			t.Fatalf("pixel %d = %v, expected %v", x, got, want)
		}
	}
}
