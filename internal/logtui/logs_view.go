package logtui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/chatlog"
	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logtui/overlay"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/snapshot"
)

const (
	// Past a full page of scrollback the footer advertises the jump key.
	scrollTopHintThreshold = 20

	snapshotPastWindow = 60 * time.Second

	loadTimeout = 20 * time.Second
)

// logsView shows one channel's log for one day, newest or oldest first,
// with emote tooltips, a local day cache, and snapshot capture.
type logsView struct {
	deps *deps
	pane *logPane

	channel logapi.Channel
	day     time.Time // local midnight

	msgs    []chatlog.Message // ascending by timestamp
	loading bool
	loadErr error

	viewportH int

	capture *snapshot.Capture
	notice  string

	// username prompt for jumping to per-user logs
	prompting bool
	prompt    string

	// tickSeq tags the auto-refresh chain; ticks from a superseded chain
	// are dropped so re-arming never multiplies the refresh rate.
	tickSeq int
}

type logsDataMsg struct {
	channel   string
	day       time.Time
	msgs      []chatlog.Message
	fromCache bool
	err       error
}

type logsTickMsg struct {
	channel string
	day     time.Time
	seq     int
}

type emoteDictMsg struct {
	channelID string
}

type snapshotCopiedMsg struct {
	count int
	err   error
}

func newLogsView(d *deps) *logsView {
	return &logsView{
		deps:    d,
		pane:    newLogPane(),
		capture: snapshot.NewCapture(),
	}
}

func (v *logsView) Title() string {
	if v.channel.Name == "" {
		return "logs"
	}
	return "#" + v.channel.Name + " " + v.day.Format("2006-01-02")
}

func (v *logsView) Hints() string {
	if v.prompting {
		return "[type] username  [enter] open  [esc] cancel"
	}
	hints := "[←/→] day  [t] today  [o] sort  [u] user  [/] search  [i] stats  [s] snapshot"
	if v.capture.Active() {
		hints = fmt.Sprintf("[s] stop snapshot (%d)  [y] copy  [x] reset", v.capture.Count())
	}
	if v.pane.scrollTop > scrollTopHintThreshold {
		hints += "  [g] top"
	}
	return hints
}

// SetChannel targets the view at a channel and loads today's log.
func (v *logsView) SetChannel(ch logapi.Channel) tea.Cmd {
	v.channel = ch
	v.day = midnight(time.Now())
	v.resetLog()
	v.pane.setDict(nil)
	if v.deps.emotes != nil {
		v.deps.emotes.Want(ch.UserID)
	}
	return tea.Batch(v.loadCmd(), v.emotesCmd(), v.armTick())
}

func (v *logsView) Init() tea.Cmd {
	if v.channel.Name == "" {
		return nil
	}
	if v.msgs == nil && !v.loading {
		v.loading = true
		return tea.Batch(v.loadCmd(), v.armTick())
	}
	// Returning to the view restarts auto-refresh; ticks are lost while
	// another view is active.
	return v.armTick()
}

func (v *logsView) resetLog() {
	v.msgs = nil
	v.loading = true
	v.loadErr = nil
	v.pane.setMessages(nil)
	v.pane.scrollToTop()
	v.capture.Reset()
	v.notice = ""
}

func (v *logsView) loadCmd() tea.Cmd {
	api := v.deps.API()
	cache := v.deps.cache
	channel := v.channel.Name
	day := v.day
	today := isToday(day)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		// Completed days never change, so a cache hit is authoritative.
		if cache != nil && !today {
			if msgs, _, ok, err := cache.GetDay(ctx, channel, day); err == nil && ok {
				return logsDataMsg{channel: channel, day: day, msgs: msgs, fromCache: true}
			}
		}

		msgs, err := api.ChannelLogs(ctx, channel, day)
		if err != nil {
			return logsDataMsg{channel: channel, day: day, err: err}
		}
		if cache != nil && !today {
			_ = cache.PutDay(ctx, channel, day, msgs)
		}
		return logsDataMsg{channel: channel, day: day, msgs: msgs}
	}
}

func (v *logsView) emotesCmd() tea.Cmd {
	resolver := v.deps.emotes
	if resolver == nil {
		return nil
	}
	channelID := v.channel.UserID
	return func() tea.Msg {
		resolver.Fetch(context.Background(), channelID)
		return emoteDictMsg{channelID: channelID}
	}
}

// armTick starts a fresh auto-refresh chain, invalidating any earlier one.
func (v *logsView) armTick() tea.Cmd {
	if !isToday(v.day) {
		return nil
	}
	v.tickSeq++
	return v.tick(v.tickSeq)
}

func (v *logsView) tick(seq int) tea.Cmd {
	channel := v.channel.Name
	day := v.day
	return tea.Tick(v.deps.cfg.TUI.RefreshInterval, func(time.Time) tea.Msg {
		return logsTickMsg{channel: channel, day: day, seq: seq}
	})
}

func (v *logsView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case logsDataMsg:
		return v.applyData(typed)
	case logsTickMsg:
		// Stale ticks from a previous channel, day, or chain are dropped.
		if typed.channel != v.channel.Name || !typed.day.Equal(v.day) || typed.seq != v.tickSeq {
			return nil
		}
		return tea.Batch(v.loadCmd(), v.tick(typed.seq))
	case emoteDictMsg:
		v.adoptEmotes()
		return nil
	case snapshotCopiedMsg:
		if typed.err != nil {
			v.notice = "copy failed: " + typed.err.Error()
		} else {
			v.notice = fmt.Sprintf("copied %d messages", typed.count)
		}
		return nil
	case tea.MouseMsg:
		// Pane starts below the app header and the day header.
		v.pane.top = 2
		v.pane.mouse(typed, v.listHeight(), 1)
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	default:
		return nil
	}
}

func (v *logsView) applyData(msg logsDataMsg) tea.Cmd {
	if msg.channel != v.channel.Name || !msg.day.Equal(v.day) {
		return nil
	}
	v.loading = false
	v.loadErr = msg.err
	if msg.err != nil {
		return nil
	}

	msgs := append([]chatlog.Message(nil), msg.msgs...)
	sort.SliceStable(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
	v.msgs = msgs
	v.syncPane()
	if v.capture.Active() {
		v.capture.Observe(msgs)
	}

	// Room ID can come from message tags when the server omits it.
	if v.deps.emotes != nil && v.channel.UserID == "" {
		if id := chatlog.ExtractRoomID(msgs); id != "" {
			v.channel.UserID = id
			v.deps.emotes.Want(id)
			return v.emotesCmd()
		}
	}
	v.adoptEmotes()
	return nil
}

// syncPane pushes messages to the pane in the configured display order.
func (v *logsView) syncPane() {
	display := v.msgs
	if v.deps.settings.Snapshot().SortNewestFirst {
		display = make([]chatlog.Message, len(v.msgs))
		for i, m := range v.msgs {
			display[len(v.msgs)-1-i] = m
		}
	}
	v.pane.setMessages(display)
}

func (v *logsView) adoptEmotes() {
	if v.deps.emotes == nil {
		v.pane.setDict(nil)
		return
	}
	id, dict, ok := v.deps.emotes.Current()
	if !ok || id != v.channel.UserID {
		return
	}
	v.pane.setDict(dict)
}

func (v *logsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.prompting {
		switch msg.String() {
		case "enter":
			user := strings.TrimSpace(v.prompt)
			v.prompting = false
			v.prompt = ""
			if user != "" {
				ch := v.channel
				return func() tea.Msg { return openUserMsg{channel: ch, user: user} }
			}
		case "esc":
			v.prompting = false
			v.prompt = ""
		case "backspace":
			if len(v.prompt) > 0 {
				v.prompt = v.prompt[:len(v.prompt)-1]
			}
		default:
			if msg.Type == tea.KeyRunes {
				v.prompt += string(msg.Runes)
			}
		}
		return nil
	}

	v.notice = ""
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
		return v.gotoDay(v.day.AddDate(0, 0, -1))
	case "right", "l", "]":
		return v.gotoDay(v.day.AddDate(0, 0, 1))
	case "t":
		return v.gotoDay(midnight(time.Now()))
	case "o":
		snap := v.deps.settings.Snapshot()
		v.deps.settings.SetSortNewestFirst(!snap.SortNewestFirst)
		v.syncPane()
	case "d":
		snap := v.deps.settings.Snapshot()
		v.deps.settings.SetShowDates(!snap.ShowDates)
	case "u":
		v.prompting = true
	case "/":
		ch := v.channel
		return func() tea.Msg { return openSearchMsg{channel: ch} }
	case "i":
		ch := v.channel
		return func() tea.Msg { return openStatsMsg{channel: ch} }
	case "s":
		if v.capture.Active() {
			v.capture.Stop()
		} else {
			v.capture.Start(time.Now())
			v.capture.Observe(v.msgs)
		}
	case "S":
		v.capture.FromPast(snapshotPastWindow, time.Now(), v.msgs)
	case "x":
		v.capture.Reset()
	case "y":
		return v.copySnapshotCmd()
	case "r":
		v.loading = true
		return v.loadCmd()
	}
	return nil
}

func (v *logsView) gotoDay(day time.Time) tea.Cmd {
	if day.After(midnight(time.Now())) {
		return nil
	}
	v.day = day
	v.resetLog()
	return tea.Batch(v.loadCmd(), v.armTick())
}

func (v *logsView) copySnapshotCmd() tea.Cmd {
	msgs := v.capture.Messages()
	if len(msgs) == 0 {
		v.notice = "snapshot is empty"
		return nil
	}
	cfg := v.capture.Config()
	dict := v.pane.dict
	return func() tea.Msg {
		text := snapshot.Format(msgs, cfg, dict)
		count := snapshot.FilteredCount(msgs, cfg, dict)
		return snapshotCopiedMsg{count: count, err: snapshot.CopyToClipboard(text)}
	}
}

func (v *logsView) listHeight() int {
	h := v.viewportH - 1 // day header line
	if h < 1 {
		h = 1
	}
	return h
}

func (v *logsView) View(width, height int, themeName Theme) string {
	v.viewportH = height
	v.pane.applyTheme(themeName)
	v.pane.setRowFlags(v.deps.settings.Snapshot().ShowDates, false)

	theme := styles.ThemeNamed(string(themeName))
	header := v.renderDayHeader(width, theme)

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

func (v *logsView) renderDayHeader(width int, theme styles.Theme) string {
	left := "#" + v.channel.Name + "  " + v.day.Format("Mon 2006-01-02")
	var flags []string
	if v.deps.settings.Snapshot().SortNewestFirst {
		flags = append(flags, "newest first")
	}
	if v.capture.Active() {
		flags = append(flags, fmt.Sprintf("snapshot: %d", v.capture.Count()))
	}
	if v.notice != "" {
		flags = append(flags, v.notice)
	}
	if v.prompting {
		flags = append(flags, "user: "+v.prompt)
	}
	line := left
	if len(flags) > 0 {
		line += "  (" + strings.Join(flags, ", ") + ")"
	}
	return styles.HeaderStyle(theme).Render(truncateVis(line, width))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func isToday(day time.Time) bool {
	return day.Equal(midnight(time.Now()))
}
