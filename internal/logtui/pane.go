package logtui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logtui/overlay"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/logtui/vlist"
	"github.com/gempir/loggy/internal/seventv"
)

// logPane is the virtualized message list shared by the log-centric views.
// Rows have variable height (wrapped lines), so the pane renders only the
// window around the scroll offset and measures rows as they come into view.
type logPane struct {
	msgs []chatlog.Message // display order
	dict seventv.Dictionary

	list      *vlist.List
	rows      map[int]renderedRow
	rowWidth  int
	scrollTop int

	showDate    bool
	showChannel bool

	cs        *styles.ChatStyles
	themeName Theme

	tip      tooltip
	lineRefs []lineRef
	// top is the terminal row where the pane's first line lands, set by
	// the owning view each render so mouse coordinates can be translated.
	top int
}

type lineRef struct {
	row  int
	line int
}

func newLogPane() *logPane {
	return &logPane{
		list: vlist.New(0),
		rows: make(map[int]renderedRow),
	}
}

func (p *logPane) setMessages(msgs []chatlog.Message) {
	p.msgs = msgs
	p.invalidate()
	p.clampScroll(1)
}

func (p *logPane) setDict(dict seventv.Dictionary) {
	p.dict = dict
	p.invalidate()
}

func (p *logPane) setRowFlags(showDate, showChannel bool) {
	if p.showDate == showDate && p.showChannel == showChannel {
		return
	}
	p.showDate = showDate
	p.showChannel = showChannel
	p.invalidate()
}

func (p *logPane) applyTheme(themeName Theme) {
	if p.themeName == themeName && p.cs != nil {
		return
	}
	p.themeName = themeName
	p.cs = styles.NewChatStyles(styles.ThemeNamed(string(themeName)))
	p.invalidate()
}

func (p *logPane) invalidate() {
	p.rows = make(map[int]renderedRow)
	p.list.Reset(len(p.msgs))
	p.tip.hide()
}

func (p *logPane) scrollBy(delta, height int) {
	p.scrollTop += delta
	p.clampScroll(height)
	p.tip.hide()
}

func (p *logPane) scrollToTop() {
	p.scrollTop = 0
	p.tip.hide()
}

func (p *logPane) scrollToBottom(height int) {
	p.scrollTop = p.list.MaxScroll(height)
	p.tip.hide()
}

func (p *logPane) clampScroll(height int) {
	p.scrollTop = clampInt(p.scrollTop, 0, p.list.MaxScroll(height))
}

// mouse handles wheel scrolling and hover hit-testing. paneOffsetY is the
// pane's first line's offset within the frame later passed to compose.
func (p *logPane) mouse(msg tea.MouseMsg, height, paneOffsetY int) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		p.scrollBy(-3, height)
		return
	case tea.MouseButtonWheelDown:
		p.scrollBy(3, height)
		return
	}
	if msg.Action != tea.MouseActionMotion {
		return
	}

	line := msg.Y - p.top
	col := msg.X
	if line < 0 || line >= len(p.lineRefs) {
		p.tip.hide()
		return
	}
	ref := p.lineRefs[line]
	if ref.row < 0 {
		p.tip.hide()
		return
	}
	row, ok := p.rows[ref.row]
	if !ok {
		p.tip.hide()
		return
	}
	for _, span := range row.spans {
		if span.contains(ref.line, col) {
			p.tip.show(span.emote, overlay.Rect{
				X: span.start,
				Y: line + paneOffsetY,
				W: span.width,
				H: 1,
			})
			return
		}
	}
	p.tip.hide()
}

// render lays out the visible window. emptyText is shown when there are no
// messages at all.
func (p *logPane) render(width, height int, emptyText string) string {
	if height < 1 {
		height = 1
	}
	if p.rowWidth != width {
		p.rowWidth = width
		p.invalidate()
	}
	p.lineRefs = make([]lineRef, 0, height)

	if len(p.msgs) == 0 {
		return p.padLines([]string{emptyText}, height)
	}

	p.clampScroll(height)
	start, end := p.list.Window(p.scrollTop, height)
	p.measureRange(start, end, width)
	// Measurement can shift offsets, so window once more with true heights.
	start, end = p.list.Window(p.scrollTop, height)
	p.measureRange(start, end, width)

	var lines []string
	skip := p.scrollTop - p.list.OffsetOf(start)
	for i := start; i < end && len(lines) < height; i++ {
		row := p.rowFor(i, width)
		for off, rl := range row.lines {
			if skip > 0 {
				skip--
				continue
			}
			if len(lines) >= height {
				break
			}
			lines = append(lines, rl)
			p.lineRefs = append(p.lineRefs, lineRef{row: i, line: off})
		}
	}
	return p.padLines(lines, height)
}

// compose overlays the active tooltip onto the frame rendered by the view.
func (p *logPane) compose(frame string, viewport overlay.Size) string {
	if p.cs == nil {
		return frame
	}
	return p.tip.compose(frame, viewport, p.cs)
}

func (p *logPane) measureRange(start, end, width int) {
	for i := start; i < end; i++ {
		if p.list.Measured(i) {
			continue
		}
		row := p.rowFor(i, width)
		delta := p.list.Measure(i, row.height())
		p.scrollTop = p.list.AdjustScroll(p.scrollTop, i, delta)
	}
}

func (p *logPane) rowFor(i, width int) renderedRow {
	if row, ok := p.rows[i]; ok {
		return row
	}
	row := renderRow(p.msgs[i], p.dict, p.cs, rowOptions{
		width:       width,
		showDate:    p.showDate,
		showChannel: p.showChannel,
	})
	p.rows[i] = row
	return row
}

func (p *logPane) padLines(lines []string, height int) string {
	for len(lines) < height {
		lines = append(lines, "")
	}
	for len(p.lineRefs) < len(lines) {
		p.lineRefs = append(p.lineRefs, lineRef{row: -1})
	}
	return strings.Join(lines[:height], "\n")
}
