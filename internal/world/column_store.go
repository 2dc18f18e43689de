package world

import (
	"sort"
	"sync"

	"chunk-noise/internal/profiling"
)

// ColumnStore holds sampled columns indexed by position.
type ColumnStore struct {
	columns  map[ColumnPos]*Column
	mu       sync.RWMutex
	modCount uint64 // increases on any add/remove
}

// NewColumnStore creates an empty store.
func NewColumnStore() *ColumnStore {
	return &ColumnStore{
		columns: make(map[ColumnPos]*Column),
	}
}

// Get returns the column at pos, or nil.
func (cs *ColumnStore) Get(pos ColumnPos) *Column {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.columns[pos]
}

// Has reports whether a column is stored at pos.
func (cs *ColumnStore) Has(pos ColumnPos) bool {
	cs.mu.RLock()
	_, ok := cs.columns[pos]
	cs.mu.RUnlock()
	return ok
}

// Add stores col unless a column already exists at its position.
// It reports whether col was stored.
func (cs *ColumnStore) Add(col *Column) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.columns[col.Pos]; ok {
		return false
	}
	cs.columns[col.Pos] = col
	cs.modCount++
	return true
}

// MaterialAt returns the material at world coordinates, or MaterialAir when
// the column is not loaded or y is outside it.
func (cs *ColumnStore) MaterialAt(x, y, z int) MaterialID {
	col := cs.Get(ColumnPos{X: floorDiv(x, ColumnWidth), Z: floorDiv(z, ColumnWidth)})
	if col == nil {
		return MaterialAir
	}
	ly := y - col.Shape.MinY
	if ly < 0 || ly >= col.Shape.Height {
		return MaterialAir
	}
	return col.At(mod(x, ColumnWidth), ly, mod(z, ColumnWidth))
}

// Len returns the number of stored columns.
func (cs *ColumnStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.columns)
}

// ModCount returns the modification counter.
func (cs *ColumnStore) ModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// Positions returns all stored positions sorted by X then Z.
func (cs *ColumnStore) Positions() []ColumnPos {
	cs.mu.RLock()
	out := make([]ColumnPos, 0, len(cs.columns))
	for p := range cs.columns {
		out = append(out, p)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].X != out[j].X {
			return out[i].X < out[j].X
		}
		return out[i].Z < out[j].Z
	})
	return out
}

// EvictFar removes columns farther than radius (in columns) from center.
// Returns the number of removed columns.
func (cs *ColumnStore) EvictFar(center ColumnPos, radius int) int {
	defer profiling.Track("world.ColumnStore.EvictFar")()
	removed := 0
	cs.mu.Lock()
	for pos := range cs.columns {
		dx := pos.X - center.X
		dz := pos.Z - center.Z
		if dx*dx+dz*dz > radius*radius {
			delete(cs.columns, pos)
			cs.modCount++
			removed++
		}
	}
	cs.mu.Unlock()
	return removed
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
