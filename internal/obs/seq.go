package obs

import "sync/atomic"

// Sequence generates monotonically increasing IDs for orders and trades.
type Sequence struct {
	next uint64
}

// NewSequence returns a generator whose first Next is seed+1.
func NewSequence(seed uint64) *Sequence {
	return &Sequence{next: seed}
}

// Next returns the next ID.
func (g *Sequence) Next() uint64 {
	if g == nil {
		return 0
	}
	return atomic.AddUint64(&g.next, 1)
}
