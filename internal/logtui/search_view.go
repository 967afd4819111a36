package logtui

import (
	"context"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logtui/overlay"
	"github.com/gempir/loggy/internal/logtui/styles"
)

// searchView searches one user's history in a channel. The server's search
// endpoint is scoped per user, so a username is required before querying.
type searchView struct {
	deps *deps
	pane *logPane

	channel logapi.Channel
	user    string

	// input focus: 0 = user field, 1 = query field
	focus int
	query string

	results  []chatlog.Message
	searched bool
	loading  bool
	loadErr  error

	viewportH int
}

type searchResultsMsg struct {
	channel string
	user    string
	query   string
	msgs    []chatlog.Message
	err     error
}

func newSearchView(d *deps) *searchView {
	return &searchView{deps: d, pane: newLogPane()}
}

func (v *searchView) Title() string {
	return "search #" + v.channel.Name
}

func (v *searchView) Hints() string {
	return "[tab] field  [type] edit  [enter] search  [q] back"
}

// SetScope targets the search at a channel and optionally pre-fills the user.
func (v *searchView) SetScope(ch logapi.Channel, user string) tea.Cmd {
	v.channel = ch
	v.user = strings.ToLower(strings.TrimSpace(user))
	v.query = ""
	v.focus = 0
	if v.user != "" {
		v.focus = 1
	}
	v.results = nil
	v.searched = false
	v.loadErr = nil
	v.pane.setMessages(nil)
	v.pane.setDict(nil)
	if v.deps.emotes != nil {
		if id, dict, ok := v.deps.emotes.Current(); ok && id == ch.UserID {
			v.pane.setDict(dict)
		}
	}
	return nil
}

func (v *searchView) Init() tea.Cmd {
	return nil
}

func (v *searchView) searchCmd() tea.Cmd {
	api := v.deps.API()
	channel := v.channel.Name
	user := v.user
	query := v.query
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		msgs, err := api.SearchUserLogs(ctx, channel, user, query)
		return searchResultsMsg{channel: channel, user: user, query: query, msgs: msgs, err: err}
	}
}

func (v *searchView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case searchResultsMsg:
		if typed.channel != v.channel.Name || typed.user != v.user || typed.query != v.query {
			return nil
		}
		v.loading = false
		v.searched = true
		v.loadErr = typed.err
		if typed.err == nil {
			msgs := append([]chatlog.Message(nil), typed.msgs...)
			sort.SliceStable(msgs, func(i, j int) bool {
				return msgs[i].Timestamp.Before(msgs[j].Timestamp)
			})
			v.results = msgs
			v.pane.setMessages(msgs)
		}
		return nil
	case tea.MouseMsg:
		// App header plus two input lines above the result pane.
		v.pane.top = 3
		v.pane.mouse(typed, v.listHeight(), 2)
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	default:
		return nil
	}
}

func (v *searchView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab":
		v.focus = (v.focus + 1) % 2
		return nil
	case "enter":
		if strings.TrimSpace(v.user) == "" || strings.TrimSpace(v.query) == "" {
			return nil
		}
		v.loading = true
		v.loadErr = nil
		return v.searchCmd()
	case "backspace":
		if v.focus == 0 && len(v.user) > 0 {
			v.user = v.user[:len(v.user)-1]
		}
		if v.focus == 1 && len(v.query) > 0 {
			v.query = v.query[:len(v.query)-1]
		}
		return nil
	case "up":
		v.pane.scrollBy(-1, v.listHeight())
		return nil
	case "down":
		v.pane.scrollBy(1, v.listHeight())
		return nil
	case "pgup":
		v.pane.scrollBy(-v.listHeight(), v.listHeight())
		return nil
	case "pgdown":
		v.pane.scrollBy(v.listHeight(), v.listHeight())
		return nil
	}
	if msg.Type == tea.KeyRunes {
		text := string(msg.Runes)
		if v.focus == 0 {
			v.user += strings.ToLower(text)
		} else {
			v.query += text
		}
	}
	return nil
}

func (v *searchView) listHeight() int {
	h := v.viewportH - 2 // user and query input lines
	if h < 1 {
		h = 1
	}
	return h
}

func (v *searchView) View(width, height int, themeName Theme) string {
	v.viewportH = height
	v.pane.applyTheme(themeName)
	// Results can span months, so dates are always on.
	v.pane.setRowFlags(true, false)

	theme := styles.ThemeNamed(string(themeName))
	userLine := v.renderField(theme, "user", v.user, v.focus == 0, width)
	queryLine := v.renderField(theme, "query", v.query, v.focus == 1, width)

	var body string
	switch {
	case v.loadErr != nil:
		body = statusBlock("search failed: "+v.loadErr.Error(), styles.FavoriteStyle(theme), width, v.listHeight())
	case v.loading:
		body = padBlock("searching...", v.listHeight())
	case !v.searched:
		body = statusBlock("enter a username and query, then press enter", styles.FooterStyle(theme), width, v.listHeight())
	default:
		body = v.pane.render(width, v.listHeight(), "No messages found")
	}

	frame := userLine + "\n" + queryLine + "\n" + body
	return v.pane.compose(frame, overlay.Size{W: width, H: height})
}

func (v *searchView) renderField(theme styles.Theme, label, value string, focused bool, width int) string {
	line := label + ": " + value
	if focused {
		line = "> " + line + "▏"
		return styles.SelectedStyle(theme).Render(truncateVis(line, width))
	}
	return "  " + truncateVis(line, maxInt(0, width-2))
}
