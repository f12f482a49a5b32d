// Package spatialindex implements a uniform-grid bucket: a fixed-cell grid
// over (x, z) for O(1) neighborhood queries. Events are short-lived and
// sparse, so a 9-cell scan beats a k-d tree and per-tick rebuilds stay
// cheap. The grid is a sparse map, not a dense array, since world extent is
// unbounded.
package spatialindex

import (
	"math"

	"tidewatch/vecmath"
)

// CellSize is the bucket edge length. It is a package-level var rather than
// a const so config can override it at bootstrap, before any Index is built.
var CellSize = 100.0

type cellKey struct {
	cx, cz int64
}

// Index is a uniform grid of payload indices, keyed by floor(x/S), floor(z/S).
type Index struct {
	cells map[cellKey][]int
}

// New returns an empty index.
func New() *Index {
	return &Index{cells: make(map[cellKey][]int)}
}

func cellOf(pos vecmath.Vec2) cellKey {
	// NaN coordinates degrade gracefully: int64(NaN) is implementation
	// defined but deterministic per call, and a NaN-keyed cell is simply
	// never queried from a real position, so the entry is effectively
	// invisible.
	return cellKey{
		cx: int64(math.Floor(pos.X / CellSize)),
		cz: int64(math.Floor(pos.Z / CellSize)),
	}
}

// Insert records payloadIndex at pos.
func (idx *Index) Insert(pos vecmath.Vec2, payloadIndex int) {
	k := cellOf(pos)
	idx.cells[k] = append(idx.cells[k], payloadIndex)
}

// Clear empties the index for reuse next tick.
func (idx *Index) Clear() {
	for k := range idx.cells {
		delete(idx.cells, k)
	}
}

// Query returns every payload index stored in the 3x3 cell block centered on
// pos. This is a superset filter: callers must re-test exact distance.
func (idx *Index) Query(pos vecmath.Vec2) []int {
	center := cellOf(pos)
	var out []int
	for dx := int64(-1); dx <= 1; dx++ {
		for dz := int64(-1); dz <= 1; dz++ {
			k := cellKey{cx: center.cx + dx, cz: center.cz + dz}
			out = append(out, idx.cells[k]...)
		}
	}
	return out
}
