package logtui

import (
	"context"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logtui/overlay"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/settings"
)

// userView shows one user's messages in a channel, one month at a time.
type userView struct {
	deps *deps
	pane *logPane

	channel logapi.Channel
	user    string
	month   time.Time // first of month, local

	msgs    []chatlog.Message
	loading bool
	loadErr error

	viewportH int
}

type userLogsMsg struct {
	channel string
	user    string
	month   time.Time
	msgs    []chatlog.Message
	err     error
}

func newUserView(d *deps) *userView {
	return &userView{deps: d, pane: newLogPane()}
}

func (v *userView) Title() string {
	if v.user == "" {
		return "user"
	}
	return v.user + " in #" + v.channel.Name + " " + v.month.Format("2006-01")
}

func (v *userView) Hints() string {
	return "[←/→] month  [o] sort  [f] favorite  [/] search  [i] stats  [q] back"
}

// SetTarget points the view at a channel/user pair and loads the current month.
func (v *userView) SetTarget(ch logapi.Channel, user string) tea.Cmd {
	v.channel = ch
	v.user = strings.ToLower(strings.TrimSpace(user))
	v.month = monthStart(time.Now())
	v.reset()
	// Reuse the channel's emote dictionary when it is already resolved.
	v.pane.setDict(nil)
	if v.deps.emotes != nil {
		if id, dict, ok := v.deps.emotes.Current(); ok && id == ch.UserID {
			v.pane.setDict(dict)
		}
	}
	return v.loadCmd()
}

func (v *userView) Init() tea.Cmd {
	if v.user == "" {
		return nil
	}
	if v.msgs == nil && !v.loading {
		v.loading = true
		return v.loadCmd()
	}
	return nil
}

func (v *userView) reset() {
	v.msgs = nil
	v.loading = true
	v.loadErr = nil
	v.pane.setMessages(nil)
	v.pane.scrollToTop()
}

func (v *userView) loadCmd() tea.Cmd {
	api := v.deps.API()
	channel := v.channel.Name
	user := v.user
	month := v.month
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		msgs, err := api.UserLogs(ctx, channel, user, month)
		return userLogsMsg{channel: channel, user: user, month: month, msgs: msgs, err: err}
	}
}

func (v *userView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case userLogsMsg:
		if typed.channel != v.channel.Name || typed.user != v.user || !typed.month.Equal(v.month) {
			return nil
		}
		v.loading = false
		v.loadErr = typed.err
		if typed.err == nil {
			msgs := append([]chatlog.Message(nil), typed.msgs...)
			sort.SliceStable(msgs, func(i, j int) bool {
				return msgs[i].Timestamp.Before(msgs[j].Timestamp)
			})
			v.msgs = msgs
			v.syncPane()
		}
		return nil
	case tea.MouseMsg:
		v.pane.top = 2
		v.pane.mouse(typed, v.listHeight(), 1)
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	default:
		return nil
	}
}

func (v *userView) syncPane() {
	display := v.msgs
	if v.deps.settings.Snapshot().SortNewestFirst {
		display = make([]chatlog.Message, len(v.msgs))
		for i, m := range v.msgs {
			display[len(v.msgs)-1-i] = m
		}
	}
	v.pane.setMessages(display)
}

func (v *userView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		v.pane.scrollBy(-1, v.listHeight())
	case "down", "j":
		v.pane.scrollBy(1, v.listHeight())
	case "pgup", "b":
		v.pane.scrollBy(-v.listHeight(), v.listHeight())
	case "pgdown", " ":
		v.pane.scrollBy(v.listHeight(), v.listHeight())
	case "g", "home":
		v.pane.scrollToTop()
	case "G", "end":
		v.pane.scrollToBottom(v.listHeight())
	case "left", "h", "[":
		return v.gotoMonth(v.month.AddDate(0, -1, 0))
	case "right", "l", "]":
		return v.gotoMonth(v.month.AddDate(0, 1, 0))
	case "o":
		snap := v.deps.settings.Snapshot()
		v.deps.settings.SetSortNewestFirst(!snap.SortNewestFirst)
		v.syncPane()
	case "f":
		v.deps.settings.ToggleFavorite(settings.Favorite{
			Type:    settings.FavoriteUser,
			Channel: strings.ToLower(v.channel.Name),
			User:    v.user,
		})
	case "/":
		ch, user := v.channel, v.user
		return func() tea.Msg { return openSearchMsg{channel: ch, user: user} }
	case "i":
		ch, user := v.channel, v.user
		return func() tea.Msg { return openStatsMsg{channel: ch, user: user} }
	case "r":
		v.loading = true
		return v.loadCmd()
	}
	return nil
}

func (v *userView) gotoMonth(month time.Time) tea.Cmd {
	if month.After(monthStart(time.Now())) {
		return nil
	}
	v.month = month
	v.reset()
	return v.loadCmd()
}

func (v *userView) listHeight() int {
	h := v.viewportH - 1
	if h < 1 {
		h = 1
	}
	return h
}

func (v *userView) View(width, height int, themeName Theme) string {
	v.viewportH = height
	v.pane.applyTheme(themeName)
	// Month logs span days, so dates are always on.
	v.pane.setRowFlags(true, false)

	theme := styles.ThemeNamed(string(themeName))
	title := v.user + " in #" + v.channel.Name + "  " + v.month.Format("January 2006")
	if v.deps.settings.IsFavorite(settings.FavoriteUser, v.channel.Name, v.user) {
		title = "★ " + title
	}
	header := styles.HeaderStyle(theme).Render(truncateVis(title, width))

	var body string
	switch {
	case v.loadErr != nil:
		body = statusBlock("load failed: "+v.loadErr.Error(), styles.FavoriteStyle(theme), width, v.listHeight())
	case v.loading && v.msgs == nil:
		body = padBlock("loading...", v.listHeight())
	default:
		body = v.pane.render(width, v.listHeight(), "No messages found")
	}

	frame := header + "\n" + body
	return v.pane.compose(frame, overlay.Size{W: width, H: height})
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
