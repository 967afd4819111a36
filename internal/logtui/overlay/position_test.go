package overlay

import (
	"strings"
	"testing"
)

func TestPositionPrefersAboveWithRoom(t *testing.T) {
	// Anchor with 200 cells above and 50 below, element 140 tall.
	anchor := Rect{X: 400, Y: 200, W: 20, H: 10}
	geom, ok := Position(anchor, Size{W: 100, H: 140}, Size{W: 1000, H: 260}, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if geom.Placement != PlaceAbove {
		t.Fatalf("placement = %v, want above", geom.Placement)
	}
	if want := 200 - 8 - 140; geom.Y != want {
		t.Errorf("y = %d, want %d", geom.Y, want)
	}
}

func TestPositionFallsBelowWhenAboveIsTight(t *testing.T) {
	// 50 above, 200 below: neither enough room above nor more space above.
	anchor := Rect{X: 400, Y: 50, W: 20, H: 10}
	geom, ok := Position(anchor, Size{W: 100, H: 140}, Size{W: 1000, H: 260}, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if geom.Placement != PlaceBelow {
		t.Fatalf("placement = %v, want below", geom.Placement)
	}
	if want := 50 + 10 + 8; geom.Y != want {
		t.Errorf("y = %d, want %d", geom.Y, want)
	}
}

func TestPositionPrefersLargerSideWhenNeitherFits(t *testing.T) {
	// Element too tall for either side; the roomier side still wins.
	anchor := Rect{X: 0, Y: 60, W: 10, H: 4}
	geom, ok := Position(anchor, Size{W: 20, H: 100}, Size{W: 200, H: 100}, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if geom.Placement != PlaceAbove {
		t.Fatalf("placement = %v, want above (60 above vs 36 below)", geom.Placement)
	}
}

func TestPositionClampsToViewportEdges(t *testing.T) {
	viewport := Size{W: 300, H: 100}
	tip := Size{W: 120, H: 10}

	// Anchor hugging the right edge: centered x would overflow.
	geom, ok := Position(Rect{X: 290, Y: 50, W: 8, H: 2}, tip, viewport, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if !geom.ClampedX {
		t.Error("expected clamped x near right edge")
	}
	if geom.X+tip.W > viewport.W-8 {
		t.Errorf("x+w = %d exceeds right margin bound %d", geom.X+tip.W, viewport.W-8)
	}
	if geom.X < 8 {
		t.Errorf("x = %d below left margin", geom.X)
	}

	// Anchor hugging the left edge.
	geom, ok = Position(Rect{X: 0, Y: 50, W: 8, H: 2}, tip, viewport, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if !geom.ClampedX || geom.X != 8 {
		t.Errorf("x = %d (clamped=%v), want 8 clamped", geom.X, geom.ClampedX)
	}
}

func TestPositionCenteredWhenRoomy(t *testing.T) {
	geom, ok := Position(Rect{X: 100, Y: 50, W: 10, H: 2}, Size{W: 40, H: 6}, Size{W: 300, H: 100}, DefaultInsets)
	if !ok {
		t.Fatal("expected geometry")
	}
	if geom.ClampedX {
		t.Error("unexpected clamp for a centered fit")
	}
	if want := 100 + 5 - 20; geom.X != want {
		t.Errorf("x = %d, want %d", geom.X, want)
	}
}

func TestPositionSkipsUnmeasured(t *testing.T) {
	cases := []struct {
		name     string
		anchor   Rect
		tip      Size
		viewport Size
	}{
		{"zero anchor", Rect{}, Size{W: 10, H: 5}, Size{W: 100, H: 50}},
		{"zero element", Rect{X: 1, Y: 1, W: 4, H: 1}, Size{}, Size{W: 100, H: 50}},
		{"zero viewport", Rect{X: 1, Y: 1, W: 4, H: 1}, Size{W: 10, H: 5}, Size{}},
	}
	for _, tc := range cases {
		if _, ok := Position(tc.anchor, tc.tip, tc.viewport, DefaultInsets); ok {
			t.Errorf("%s: expected skip", tc.name)
		}
	}
}

func TestComposeSplicesBox(t *testing.T) {
	base := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbbbbbbbb",
		"cccccccccc",
	}, "\n")
	got := Compose(base, "XX\nYY", 3, 1)
	want := strings.Join([]string{
		"aaaaaaaaaa",
		"bbbXXbbbbb",
		"cccYYccccc",
	}, "\n")
	if got != want {
		t.Errorf("compose:\n%s\nwant:\n%s", got, want)
	}
}

func TestComposePadsShortBaseLines(t *testing.T) {
	got := Compose("ab\ncd", "Z", 5, 0)
	want := "ab   Z\ncd"
	if got != want {
		t.Errorf("compose = %q, want %q", got, want)
	}
}

func TestComposeDropsOutOfFrameLines(t *testing.T) {
	base := "aaaa\nbbbb"
	got := Compose(base, "X\nY\nZ", 0, 1)
	want := "aaaa\nXbbb"
	if got != want {
		t.Errorf("compose = %q, want %q", got, want)
	}
	if got := Compose(base, "X", 0, -1); got != base {
		t.Errorf("negative y should leave base untouched, got %q", got)
	}
}

func TestComposePadsRaggedBoxLines(t *testing.T) {
	// Box width is the widest line; narrower lines are padded so the
	// overlay presents a clean rectangle.
	got := Compose("aaaaaaaa\nbbbbbbbb", "XXX\nY", 2, 0)
	want := "aaXXXaaa\nbbY  bbb"
	if got != want {
		t.Errorf("compose = %q, want %q", got, want)
	}
}
