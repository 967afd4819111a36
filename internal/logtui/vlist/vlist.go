// Package vlist implements windowed rendering over a long list of
// variable-height rows. Row heights are unknown until a row has been
// rendered once; the list keeps a best-known height per row (a fixed
// estimate until measured), answers total-height and offset queries from an
// incrementally maintained prefix sum, and computes the slice of rows that
// intersects the viewport plus an overscan margin.
package vlist

const (
	// DefaultEstimate is the assumed height of a never-rendered row.
	DefaultEstimate = 1

	// DefaultOverscan is how many extra rows are materialized on each side
	// of the viewport to mask mount/measure latency while scrolling.
	DefaultOverscan = 10
)

// List tracks best-known row heights for one message list. Owned by a
// single view; not safe for concurrent use.
type List struct {
	heights  []int
	measured []bool
	offsets  []int // prefix sums; offsets[i] is the top of row i, offsets[len] the total
	dirty    int   // offsets valid for indices < dirty
	estimate int
	overscan int
}

func New(count int) *List {
	l := &List{
		estimate: DefaultEstimate,
		overscan: DefaultOverscan,
	}
	l.Reset(count)
	return l
}

// Reset discards all measurements and re-sizes the list. Used when the
// underlying message slice is replaced.
func (l *List) Reset(count int) {
	if count < 0 {
		count = 0
	}
	l.heights = make([]int, count)
	l.measured = make([]bool, count)
	for i := range l.heights {
		l.heights[i] = l.estimate
	}
	l.offsets = make([]int, count+1)
	l.dirty = 0
}

func (l *List) Count() int { return len(l.heights) }

// HeightOf returns the best-known height of row i.
func (l *List) HeightOf(i int) int {
	if i < 0 || i >= len(l.heights) {
		return 0
	}
	return l.heights[i]
}

// Measured reports whether row i has been measured at least once.
func (l *List) Measured(i int) bool {
	return i >= 0 && i < len(l.measured) && l.measured[i]
}

// Measure records the actual rendered height of row i and returns the
// delta against the previous best-known height. Offsets of subsequent rows
// shift by the delta; rows before i are unaffected.
func (l *List) Measure(i, height int) (delta int) {
	if i < 0 || i >= len(l.heights) || height <= 0 {
		return 0
	}
	delta = height - l.heights[i]
	if delta == 0 {
		l.measured[i] = true
		return 0
	}
	l.heights[i] = height
	l.measured[i] = true
	if i+1 < l.dirty {
		l.dirty = i + 1
	}
	return delta
}

// OffsetOf returns the top offset of row i.
func (l *List) OffsetOf(i int) int {
	if i < 0 {
		return 0
	}
	if i > len(l.heights) {
		i = len(l.heights)
	}
	l.ensureOffsets(i)
	return l.offsets[i]
}

// TotalHeight is the sum of every row's best-known height. This is the
// scrollable extent the view reserves.
func (l *List) TotalHeight() int {
	return l.OffsetOf(len(l.heights))
}

// RowAt returns the index of the row containing the given offset, clamped
// to the valid range. Binary search over the prefix sums.
func (l *List) RowAt(offset int) int {
	n := len(l.heights)
	if n == 0 {
		return 0
	}
	if offset <= 0 {
		return 0
	}
	l.ensureOffsets(n)
	lo, hi := 0, n-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if l.offsets[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Window returns the half-open index range [start, end) of rows whose
// estimated position intersects the viewport expanded by the overscan
// margin on both sides.
func (l *List) Window(scrollTop, viewportHeight int) (start, end int) {
	n := len(l.heights)
	if n == 0 || viewportHeight <= 0 {
		return 0, 0
	}
	if scrollTop < 0 {
		scrollTop = 0
	}

	start = l.RowAt(scrollTop) - l.overscan
	if start < 0 {
		start = 0
	}
	end = l.RowAt(scrollTop+viewportHeight-1) + 1 + l.overscan
	if end > n {
		end = n
	}
	return start, end
}

// AdjustScroll compensates a scroll offset for a height revision of row i.
// When the revised row sits fully above the current scroll anchor the
// anchor shifts by exactly the delta, so the visible content does not jump
// by more than the revision itself.
func (l *List) AdjustScroll(scrollTop, i, delta int) int {
	if delta == 0 || i < 0 || i >= len(l.heights) {
		return scrollTop
	}
	if l.OffsetOf(i+1) <= scrollTop {
		scrollTop += delta
		if scrollTop < 0 {
			scrollTop = 0
		}
	}
	return scrollTop
}

// MaxScroll is the largest useful scroll offset for a given viewport.
func (l *List) MaxScroll(viewportHeight int) int {
	max := l.TotalHeight() - viewportHeight
	if max < 0 {
		return 0
	}
	return max
}

func (l *List) ensureOffsets(upto int) {
	if l.dirty > upto {
		return
	}
	for i := l.dirty; i <= upto && i <= len(l.heights); i++ {
		if i == 0 {
			l.offsets[0] = 0
			continue
		}
		l.offsets[i] = l.offsets[i-1] + l.heights[i-1]
	}
	if upto >= l.dirty {
		l.dirty = upto + 1
	}
}
