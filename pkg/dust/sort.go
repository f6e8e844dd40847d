package dust

import (
	"cmp"
	"slices"
)

// sortOrder arranges the visit order so grains furthest along their plane's
// pull move first, clearing the way for the grains behind them. Ties keep the
// previous frame's order.
func (s *Sim) sortOrder() {
	slices.SortStableFunc(s.order, func(a, b int32) int {
		return cmp.Compare(s.pullKey(b), s.pullKey(a))
	})
}

func (s *Sim) pullKey(i int32) int64 {
	g := &s.grains[i]
	f := &s.frames[g.Plane]
	return int64(g.X)*int64(f.ax) + int64(g.Y)*int64(f.ay)
}
