package logtui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/seventv"
)

// emoteSpan records where an emote token landed inside a rendered row, in
// content cells. The logs view translates mouse coordinates into this space
// for hover hit-testing.
type emoteSpan struct {
	line  int
	start int
	width int
	emote seventv.Emote
}

func (s emoteSpan) contains(line, col int) bool {
	return line == s.line && col >= s.start && col < s.start+s.width
}

type renderedRow struct {
	lines []string
	spans []emoteSpan
}

func (r renderedRow) height() int {
	return len(r.lines)
}

type rowOptions struct {
	width       int
	showDate    bool
	showChannel bool
}

const minRowWidth = 16

// renderRow lays out one message into wrapped lines, tracking the cell
// position of every emote token. Emote tokens never split across lines;
// oversized plain words hard-break.
func renderRow(msg chatlog.Message, dict seventv.Dictionary, cs *styles.ChatStyles, opts rowOptions) renderedRow {
	width := opts.width
	if width < minRowWidth {
		width = minRowWidth
	}

	l := rowLayout{width: width}

	if opts.showDate {
		l.append(cs.RenderDate(msg.Timestamp))
		l.append(" ")
	}
	l.append(cs.RenderTimestamp(msg.Timestamp))
	l.append(" ")
	if opts.showChannel {
		l.append(cs.RenderChannel(msg.Channel))
		l.append(" ")
	}
	l.append(cs.RenderUsername(msg.Name(), msg.Color()))
	l.append(" ")

	// Continuation lines align under the message body unless the prefix
	// eats too much of the row.
	l.indent = l.col
	if l.indent > width/2 {
		l.indent = 2
	}

	for _, part := range chatlog.Tokenize(msg.Text, dict) {
		if part.Kind == chatlog.PartEmote {
			w := lipgloss.Width(part.Content)
			l.fit(w)
			l.spans = append(l.spans, emoteSpan{
				line:  l.line,
				start: l.col,
				width: w,
				emote: *part.Emote,
			})
			l.append(cs.Emote.Render(part.Content))
			continue
		}
		for _, token := range splitTokens(part.Content) {
			if isSpaceToken(token) {
				if l.col+lipgloss.Width(token) > width {
					// Drop whitespace that would straddle a wrap.
					continue
				}
				l.append(token)
				continue
			}
			l.appendWord(token, cs)
		}
	}

	l.flush()
	if len(l.lines) == 0 {
		l.lines = []string{""}
	}
	return renderedRow{lines: l.lines, spans: l.spans}
}

// rowLayout accumulates wrapped lines with cell-accurate columns.
type rowLayout struct {
	width  int
	indent int

	cur   strings.Builder
	col   int
	line  int
	lines []string
	spans []emoteSpan
}

func (l *rowLayout) append(rendered string) {
	l.cur.WriteString(rendered)
	l.col += lipgloss.Width(rendered)
}

// fit wraps if w cells will not fit on the current line. Tokens wider than a
// whole line stay on their own line rather than wrapping forever.
func (l *rowLayout) fit(w int) {
	if l.col+w > l.width && l.col > l.indent {
		l.wrap()
	}
}

// appendWord places a plain word, hard-breaking it when it cannot fit on any
// line at the current indent.
func (l *rowLayout) appendWord(token string, cs *styles.ChatStyles) {
	w := lipgloss.Width(token)
	if w <= l.width-l.indent {
		l.fit(w)
		l.append(cs.Body.Render(token))
		return
	}
	for _, r := range token {
		rw := lipgloss.Width(string(r))
		l.fit(rw)
		l.append(cs.Body.Render(string(r)))
	}
}

func (l *rowLayout) wrap() {
	l.flush()
	l.cur.WriteString(strings.Repeat(" ", l.indent))
	l.col = l.indent
}

func (l *rowLayout) flush() {
	l.lines = append(l.lines, l.cur.String())
	l.cur.Reset()
	l.col = 0
	l.line++
}

// splitTokens splits text into alternating word and whitespace-run tokens.
func splitTokens(text string) []string {
	if text == "" {
		return nil
	}
	var tokens []string
	var cur strings.Builder
	curSpace := false
	for _, r := range text {
		space := r == ' ' || r == '\t' || r == '\n' || r == '\r'
		if cur.Len() > 0 && space != curSpace {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		cur.WriteRune(r)
		curSpace = space
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func isSpaceToken(token string) bool {
	return token != "" && (token[0] == ' ' || token[0] == '\t' || token[0] == '\n' || token[0] == '\r')
}
