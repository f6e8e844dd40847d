package dust

import "math/bits"

// Bitmap records which pixels of every plane are occupied, one bit per pixel.
// Rows are padded to whole bytes and all planes share one backing slice.
type Bitmap struct {
	data   []uint8
	stride []int // bytes per row, per plane
	base   []int // first byte of each plane
}

func newBitmap(sizes [][2]int) *Bitmap {
	b := &Bitmap{
		stride: make([]int, len(sizes)),
		base:   make([]int, len(sizes)),
	}
	total := 0
	for p, sz := range sizes {
		b.base[p] = total
		b.stride[p] = (sz[0] + 7) / 8
		total += b.stride[p] * sz[1]
	}
	b.data = make([]uint8, total)
	return b
}

// index returns the byte offset and bit mask for pixel (x, y) of plane p.
// Coordinates must be inside the plane.
func (b *Bitmap) index(x, y, p int) (int, uint8) {
	return b.base[p] + y*b.stride[p] + x>>3, 0x80 >> (x & 7)
}

// Set marks a pixel occupied.
func (b *Bitmap) Set(x, y, p int) {
	i, m := b.index(x, y, p)
	b.data[i] |= m
}

// Clear marks a pixel free.
func (b *Bitmap) Clear(x, y, p int) {
	i, m := b.index(x, y, p)
	b.data[i] &^= m
}

// Test reports whether a pixel is occupied.
func (b *Bitmap) Test(x, y, p int) bool {
	i, m := b.index(x, y, p)
	return b.data[i]&m != 0
}

// ClearAll zeroes every plane.
func (b *Bitmap) ClearAll() {
	clear(b.data)
}

// Count returns the number of set pixels across all planes.
func (b *Bitmap) Count() int {
	n := 0
	for _, v := range b.data {
		n += bits.OnesCount8(v)
	}
	return n
}
