package logtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gempir/loggy/internal/logtui/styles"
)

func (m *Model) renderHeader() string {
	palette := styles.ThemeNamed(string(m.theme))

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Header)).
		Bold(true).
		Padding(0, 1)

	left := "loggy"
	center := m.breadcrumb()
	right := m.deps.API().BaseURL()
	line := joinHeader(left, center, right, m.width)
	return style.Width(maxInt(0, m.width)).Render(line)
}

func (m *Model) renderFooter() string {
	palette := styles.ThemeNamed(string(m.theme))

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(palette.Base.Foreground)).
		Background(lipgloss.Color(palette.Chrome.Footer)).
		Padding(0, 1)

	base := m.footerHints()
	if m.showHelp {
		base = base + "  (q back, O settings, ? toggle hints)"
	}
	return style.Width(maxInt(0, m.width)).Render(truncateVis(base, maxInt(0, m.width-2)))
}

func (m *Model) breadcrumb() string {
	parts := make([]string, 0, len(m.viewStack))
	for _, id := range m.viewStack {
		label := string(id)
		if titler, ok := m.views[id].(interface{ Title() string }); ok {
			if t := strings.TrimSpace(titler.Title()); t != "" {
				label = t
			}
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " > ")
}

func (m *Model) footerHints() string {
	if hinter, ok := m.activeView().(interface{ Hints() string }); ok {
		return hinter.Hints()
	}
	return "[enter] open  [q] back  [?] help"
}

func joinHeader(left, center, right string, width int) string {
	left = strings.TrimSpace(left)
	center = strings.TrimSpace(center)
	right = strings.TrimSpace(right)
	if width <= 0 {
		return left
	}

	space := width - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if space < 2 {
		line := left
		if center != "" {
			line = left + "  " + center
		}
		return truncateVis(line, width)
	}

	leftGap := space / 2
	rightGap := space - leftGap
	return truncateVis(left+strings.Repeat(" ", leftGap)+center+strings.Repeat(" ", rightGap)+right, width)
}

func truncateVis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	out := make([]rune, 0, len(runes))
	total := 0
	for _, r := range runes {
		w := lipgloss.Width(string(r))
		if total+w > width {
			break
		}
		out = append(out, r)
		total += w
	}
	return string(out)
}

// padBlock pads a single status line out to height rows.
func padBlock(first string, height int) string {
	if height < 1 {
		height = 1
	}
	lines := make([]string, height)
	lines[0] = first
	return strings.Join(lines, "\n")
}

// statusBlock word-wraps a status message to width, styles each wrapped line
// and pads the result out to height rows. Error messages carry URLs and
// multi-clause text that would otherwise bleed past the pane edge.
func statusBlock(text string, style lipgloss.Style, width, height int) string {
	if height < 1 {
		height = 1
	}
	wrapped := strings.Split(styles.WrapBody(text, maxInt(1, width)), "\n")
	if len(wrapped) > height {
		wrapped = wrapped[:height]
	}
	lines := make([]string, height)
	for i := range wrapped {
		lines[i] = style.Render(wrapped[i])
	}
	return strings.Join(lines, "\n")
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
