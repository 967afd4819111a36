package overlay

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Compose splices box into base at viewport cell (x, y). Both arguments are
// rendered multi-line blocks; base lines are cut around the box so styled
// content on either side survives. Box lines outside the base frame are
// dropped rather than growing the frame.
func Compose(base, box string, x, y int) string {
	if box == "" {
		return base
	}
	baseLines := strings.Split(base, "\n")
	boxLines := strings.Split(box, "\n")

	boxW := 0
	for _, l := range boxLines {
		if w := ansi.StringWidth(l); w > boxW {
			boxW = w
		}
	}

	for i, bl := range boxLines {
		row := y + i
		if row < 0 || row >= len(baseLines) {
			continue
		}
		baseLines[row] = spliceLine(baseLines[row], bl, x, boxW)
	}
	return strings.Join(baseLines, "\n")
}

// spliceLine overlays box (padded to boxW cells) onto line starting at cell x.
func spliceLine(line, box string, x, boxW int) string {
	if x < 0 {
		x = 0
	}
	left := ansi.Truncate(line, x, "")
	if pad := x - ansi.StringWidth(left); pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	if pad := boxW - ansi.StringWidth(box); pad > 0 {
		box += strings.Repeat(" ", pad)
	}
	right := ansi.TruncateLeft(line, x+boxW, "")
	return left + box + right
}
