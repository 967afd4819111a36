package vlist

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTotalHeightUsesEstimatesUntilMeasured(t *testing.T) {
	t.Parallel()
	list := New(100)
	require.Equal(t, 100*DefaultEstimate, list.TotalHeight())

	list.Measure(0, 3)
	require.Equal(t, 99*DefaultEstimate+3, list.TotalHeight())
}

func TestTotalHeightExactAfterFullMeasurement(t *testing.T) {
	t.Parallel()
	const n = 50
	list := New(n)

	// Distinct heights per row; measure in a scattered order.
	want := 0
	for i := 0; i < n; i++ {
		want += i + 1
	}
	for i := n - 1; i >= 0; i -= 2 {
		list.Measure(i, i+1)
	}
	for i := 0; i < n; i += 2 {
		list.Measure(i, i+1)
	}

	require.Equal(t, want, list.TotalHeight())
	for i := 0; i < n; i++ {
		require.True(t, list.Measured(i))
		require.Equal(t, i+1, list.HeightOf(i))
	}
}

func TestOffsetsShiftAfterRevision(t *testing.T) {
	t.Parallel()
	list := New(10)
	require.Equal(t, 5, list.OffsetOf(5))

	delta := list.Measure(2, 4)
	require.Equal(t, 3, delta)
	require.Equal(t, 2, list.OffsetOf(2))
	require.Equal(t, 8, list.OffsetOf(5))
	require.Equal(t, 13, list.TotalHeight())
}

func TestRowAt(t *testing.T) {
	t.Parallel()
	list := New(4)
	list.Measure(0, 2)
	list.Measure(1, 3)
	list.Measure(2, 1)
	list.Measure(3, 4)
	// Offsets: 0, 2, 5, 6, total 10.

	tests := []struct {
		offset int
		want   int
	}{
		{-5, 0},
		{0, 0},
		{1, 0},
		{2, 1},
		{4, 1},
		{5, 2},
		{6, 3},
		{9, 3},
		{100, 3},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, list.RowAt(tt.offset), "offset %d", tt.offset)
	}
}

func TestWindowIncludesOverscan(t *testing.T) {
	t.Parallel()
	list := New(200)

	start, end := list.Window(50, 20)
	require.Equal(t, 50-DefaultOverscan, start)
	require.Equal(t, 50+20+DefaultOverscan, end)

	// Clamped at both ends.
	start, end = list.Window(0, 20)
	require.Equal(t, 0, start)
	require.Equal(t, 20+DefaultOverscan, end)

	start, end = list.Window(195, 20)
	require.Equal(t, 195-DefaultOverscan, start)
	require.Equal(t, 200, end)
}

func TestWindowEmptyList(t *testing.T) {
	t.Parallel()
	list := New(0)
	start, end := list.Window(0, 50)
	require.Zero(t, start)
	require.Zero(t, end)
	require.Zero(t, list.TotalHeight())
}

func TestAdjustScrollAnchorsWithinDelta(t *testing.T) {
	t.Parallel()
	list := New(100)
	scrollTop := 50

	// A revision above the anchor shifts the anchor by exactly the delta.
	delta := list.Measure(10, 5)
	require.Equal(t, 4, delta)
	scrollTop = list.AdjustScroll(scrollTop, 10, delta)
	require.Equal(t, 54, scrollTop)

	// A revision below the anchor leaves it alone.
	delta = list.Measure(90, 7)
	scrollTop = list.AdjustScroll(scrollTop, 90, delta)
	require.Equal(t, 54, scrollTop)
}

func TestResetDropsMeasurements(t *testing.T) {
	t.Parallel()
	list := New(5)
	list.Measure(0, 9)
	list.Reset(3)
	require.Equal(t, 3*DefaultEstimate, list.TotalHeight())
	require.False(t, list.Measured(0))
}

func TestMaxScroll(t *testing.T) {
	t.Parallel()
	list := New(30)
	require.Equal(t, 10, list.MaxScroll(20))
	require.Equal(t, 0, list.MaxScroll(40))
}
