package gridfield

import "sync/atomic"

// Occupancy is the width x height per-cell agent count (spec §3). Values
// are maintained incrementally through the movement phase's CAS admission
// test rather than recomputed by scanning agents each step (spec §9, open
// question 4).
type Occupancy struct {
	W, H   int
	counts []atomic.Int32
}

// NewOccupancy allocates a zeroed width x height occupancy grid.
func NewOccupancy(w, h int) *Occupancy {
	return &Occupancy{W: w, H: h, counts: make([]atomic.Int32, w*h)}
}

// Index converts a (row, col) pair into a flat cell index.
func (o *Occupancy) Index(row, col int) int { return row*o.W + col }

// At returns the current count at (row, col).
func (o *Occupancy) At(row, col int) int32 { return o.AtIndex(o.Index(row, col)) }

// AtIndex returns the current count at a flat index.
func (o *Occupancy) AtIndex(idx int) int32 { return o.counts[idx].Load() }

// TryEnter atomically admits one agent into cell idx iff the current count
// is below maxPerCell, incrementing the count on success. This is the
// MAX_PER_CELL admission test of spec §4.4/§4.5/invariant 11: a CAS loop,
// not a mutex, so concurrent entrants to the same cell race fairly and at
// most maxPerCell survive.
func (o *Occupancy) TryEnter(idx int, maxPerCell int32) bool {
	cell := &o.counts[idx]
	for {
		old := cell.Load()
		if old >= maxPerCell {
			return false
		}
		if cell.CompareAndSwap(old, old+1) {
			return true
		}
	}
}

// Leave atomically decrements the count at idx (an agent departing the
// cell).
func (o *Occupancy) Leave(idx int) {
	o.counts[idx].Add(-1)
}

// Sum totals all cell counts, used to check the "sum occupancy == nagents"
// invariant (spec §8 invariant 4).
func (o *Occupancy) Sum() int64 {
	var total int64
	for i := range o.counts {
		total += int64(o.counts[i].Load())
	}
	return total
}

// Seed sets the initial occupancy directly (single-threaded startup use
// only), incrementing cell (row, col) by one.
func (o *Occupancy) Seed(row, col int) {
	o.counts[o.Index(row, col)].Add(1)
}
