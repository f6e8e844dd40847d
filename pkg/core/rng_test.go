package core

import "testing"

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(7)
	b := NewRNG(7)
	for i := 0; i < 100; i++ {
		if x, y := a.IntN(1000), b.IntN(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestRNGBounds(t *testing.T) {
	r := NewRNG(1)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d, expected 0", got)
	}
	for i := 0; i < 500; i++ {
		if v := r.IntN(11); v < 0 || v > 10 {
			t.Fatalf("IntN(11) = %d out of range", v)
		}
		if v := r.Between(-3, 3); v < -3 || v > 3 {
			t.Fatalf("Between(-3, 3) = %d out of range", v)
		}
	}
	if got := r.Between(5, 5); got != 5 {
		t.Fatalf("Between(5, 5) = %d", got)
	}
}

func TestRNGReseed(t *testing.T) {
	r := NewRNG(3)
	first := r.IntN(1 << 30)
	r.IntN(10)
	r.Reseed(3)
	if got := r.IntN(1 << 30); got != first {
		t.Fatalf("reseeded draw %d, expected %d", got, first)
	}
}
