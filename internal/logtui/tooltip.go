package logtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gempir/loggy/internal/logtui/overlay"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/seventv"
)

// tooltipInsets are tighter than the overlay defaults; terminal cells are a
// coarser grid than the spacing the defaults were tuned for.
var tooltipInsets = overlay.Insets{Gap: 1, Margin: 1}

// tooltip tracks the hovered emote and its resolved placement. The box is
// positioned with an estimated size on first show and re-positioned with the
// real size once rendered.
type tooltip struct {
	visible bool
	emote   seventv.Emote
	anchor  overlay.Rect
	size    overlay.Size
}

func (t *tooltip) show(e seventv.Emote, anchor overlay.Rect) {
	if t.visible && t.emote.ID == e.ID && t.anchor == anchor {
		return
	}
	t.visible = true
	t.emote = e
	t.anchor = anchor
	t.size = overlay.Size{}
}

func (t *tooltip) hide() {
	t.visible = false
	t.size = overlay.Size{}
}

// compose renders the tooltip over base. base is the full frame for the
// content pane, viewport its size in cells.
func (t *tooltip) compose(base string, viewport overlay.Size, cs *styles.ChatStyles) string {
	if !t.visible {
		return base
	}

	box := t.renderBox(cs)
	size := overlay.Size{W: lipgloss.Width(box), H: lipgloss.Height(box)}
	if size.W <= 0 || size.H <= 0 {
		size = overlay.EstimatedTooltipSize
	}
	t.size = size

	geom, ok := overlay.Position(t.anchor, size, viewport, tooltipInsets)
	if !ok {
		return base
	}
	return overlay.Compose(base, box, geom.X, geom.Y)
}

func (t *tooltip) renderBox(cs *styles.ChatStyles) string {
	var b strings.Builder
	b.WriteString(cs.Emote.Render(t.emote.Name))
	if t.emote.Animated {
		b.WriteString(" " + cs.System.Render("(animated)"))
	}
	if owner := strings.TrimSpace(t.emote.OwnerDisplayName); owner != "" {
		b.WriteString("\n" + cs.Timestamp.Render("by "+owner))
	}
	if preview := t.emote.PreviewURL(); preview != "" {
		b.WriteString("\n" + cs.Timestamp.Render(preview))
	}
	return cs.TooltipStyle().Render(b.String())
}
