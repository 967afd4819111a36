// Package overlay positions floating elements in viewport coordinates and
// composites them over a rendered frame. Children placed here escape any
// scrolling region: they are addressed by absolute viewport cells, not by
// their logical position in the component tree.
package overlay

// Rect is an anchor's bounding box in viewport cells.
type Rect struct {
	X, Y, W, H int
}

// Size is a measured or estimated element size.
type Size struct {
	W, H int
}

// Insets carries the spacing rules for floating placement: Gap between the
// anchor and the element, Margin kept from the viewport edges.
type Insets struct {
	Gap    int
	Margin int
}

// DefaultInsets matches the original placement spacing.
var DefaultInsets = Insets{Gap: 8, Margin: 8}

// EstimatedTooltipSize is used before a tooltip has been rendered once; the
// geometry is recomputed with the true size after first paint.
var EstimatedTooltipSize = Size{W: 32, H: 6}

// Placement is the chosen side relative to the anchor.
type Placement int

const (
	PlaceAbove Placement = iota
	PlaceBelow
)

// Geometry is the resolved absolute position for a floating element.
type Geometry struct {
	Placement Placement
	X, Y      int
	ClampedX  bool // the horizontal center was shifted to stay in view
}

// Position computes where a floating element goes relative to its anchor.
// Preference is above the anchor when there is room for the element plus the
// gap, or when above simply has more space than below; otherwise below.
// Horizontally the element is centered on the anchor's midpoint and then
// shifted (never shrunk) so it keeps the margin from both viewport edges.
// Returns false when any measurement is unavailable; callers skip the
// update and keep the last known geometry.
func Position(anchor Rect, element Size, viewport Size, in Insets) (Geometry, bool) {
	if anchor.W <= 0 || anchor.H <= 0 || element.W <= 0 || element.H <= 0 || viewport.W <= 0 || viewport.H <= 0 {
		return Geometry{}, false
	}

	spaceAbove := anchor.Y
	spaceBelow := viewport.H - (anchor.Y + anchor.H)

	var geom Geometry
	if spaceAbove >= element.H+in.Gap || spaceAbove > spaceBelow {
		geom.Placement = PlaceAbove
		geom.Y = anchor.Y - in.Gap - element.H
	} else {
		geom.Placement = PlaceBelow
		geom.Y = anchor.Y + anchor.H + in.Gap
	}

	centered := anchor.X + anchor.W/2 - element.W/2
	x := centered
	if max := viewport.W - in.Margin - element.W; x > max {
		x = max
	}
	if x < in.Margin {
		x = in.Margin
	}
	geom.X = x
	geom.ClampedX = x != centered

	return geom, true
}
