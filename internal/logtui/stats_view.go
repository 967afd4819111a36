package logtui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logtui/styles"
)

const topChatterBarWidth = 30

// statsView shows logged activity for a channel, or for one user when the
// scope includes a username.
type statsView struct {
	deps *deps

	channel logapi.Channel
	user    string

	channelStats logapi.ChannelStats
	userStats    logapi.UserStats
	loading      bool
	loadErr      error

	sel    int
	scroll int
}

type statsDataMsg struct {
	channel      string
	user         string
	channelStats logapi.ChannelStats
	userStats    logapi.UserStats
	err          error
}

func newStatsView(d *deps) *statsView {
	return &statsView{deps: d}
}

func (v *statsView) Title() string {
	if v.user != "" {
		return "stats " + v.user
	}
	return "stats #" + v.channel.Name
}

func (v *statsView) Hints() string {
	if v.user == "" {
		return "[↑/↓] chatter  [enter] open user  [r] reload  [q] back"
	}
	return "[r] reload  [q] back"
}

// SetScope targets the view. user may be empty for channel-wide stats.
func (v *statsView) SetScope(ch logapi.Channel, user string) tea.Cmd {
	v.channel = ch
	v.user = strings.ToLower(strings.TrimSpace(user))
	v.channelStats = logapi.ChannelStats{}
	v.userStats = logapi.UserStats{}
	v.loading = true
	v.loadErr = nil
	v.sel = 0
	v.scroll = 0
	return v.loadCmd()
}

func (v *statsView) Init() tea.Cmd {
	return nil
}

func (v *statsView) loadCmd() tea.Cmd {
	api := v.deps.API()
	channel := v.channel.Name
	user := v.user
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		if user != "" {
			stats, err := api.UserStats(ctx, channel, user)
			return statsDataMsg{channel: channel, user: user, userStats: stats, err: err}
		}
		stats, err := api.ChannelStats(ctx, channel)
		return statsDataMsg{channel: channel, channelStats: stats, err: err}
	}
}

func (v *statsView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case statsDataMsg:
		if typed.channel != v.channel.Name || typed.user != v.user {
			return nil
		}
		v.loading = false
		v.loadErr = typed.err
		if typed.err == nil {
			v.channelStats = typed.channelStats
			v.userStats = typed.userStats
		}
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	default:
		return nil
	}
}

func (v *statsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if v.sel > 0 {
			v.sel--
		}
	case "down", "j":
		if v.sel < len(v.channelStats.TopChatters)-1 {
			v.sel++
		}
	case "enter":
		if v.user == "" && v.sel < len(v.channelStats.TopChatters) {
			ch := v.channel
			user := v.channelStats.TopChatters[v.sel].UserLogin
			if user != "" {
				return func() tea.Msg { return openUserMsg{channel: ch, user: user} }
			}
		}
	case "r":
		v.loading = true
		return v.loadCmd()
	}
	return nil
}

func (v *statsView) View(width, height int, themeName Theme) string {
	theme := styles.ThemeNamed(string(themeName))

	if v.loading {
		return padBlock("loading stats...", height)
	}
	if v.loadErr != nil {
		return statusBlock("stats failed: "+v.loadErr.Error(), styles.FavoriteStyle(theme), width, height)
	}

	if v.user != "" {
		return v.renderUser(width, height, theme)
	}
	return v.renderChannel(width, height, theme)
}

func (v *statsView) renderUser(width, height int, theme styles.Theme) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle(theme).Render(truncateVis(v.user+" in #"+v.channel.Name, width)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("messages logged: %d", v.userStats.MessageCount))
	return padToHeight(b.String(), height)
}

func (v *statsView) renderChannel(width, height int, theme styles.Theme) string {
	var b strings.Builder
	b.WriteString(styles.HeaderStyle(theme).Render(truncateVis("#"+v.channel.Name, width)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("messages logged: %d\n", v.channelStats.MessageCount))

	chatters := v.channelStats.TopChatters
	if len(chatters) == 0 {
		b.WriteString("\nno chatter ranking available")
		return padToHeight(b.String(), height)
	}

	b.WriteString("\ntop chatters:\n")
	listHeight := height - 4
	if listHeight < 1 {
		listHeight = 1
	}
	v.adjustScroll(listHeight)

	max := chatters[0].MessageCount
	if max < 1 {
		max = 1
	}
	selStyle := styles.SelectedStyle(theme)
	barStyle := styles.FavoriteStyle(theme)
	end := v.scroll + listHeight
	if end > len(chatters) {
		end = len(chatters)
	}
	for i := v.scroll; i < end; i++ {
		c := chatters[i]
		bar := strings.Repeat("█", clampInt(c.MessageCount*topChatterBarWidth/max, 1, topChatterBarWidth))
		line := fmt.Sprintf("%2d. %-20s %s %d", i+1, c.UserLogin, barStyle.Render(bar), c.MessageCount)
		if i == v.sel {
			line = selStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(truncateVis(line, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return padToHeight(b.String(), height)
}

func (v *statsView) adjustScroll(height int) {
	if v.sel < v.scroll {
		v.scroll = v.sel
	}
	if v.sel >= v.scroll+height {
		v.scroll = v.sel - height + 1
	}
	if v.scroll < 0 {
		v.scroll = 0
	}
}

func padToHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	if len(lines) > height && height > 0 {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}
