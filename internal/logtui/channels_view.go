package logtui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logtui/styles"
	"github.com/gempir/loggy/internal/settings"
)

type channelsView struct {
	deps *deps

	channels []logapi.Channel
	fetchErr error
	loaded   bool

	filter    string
	filtering bool
	sel       int
	scroll    int
}

type channelsDataMsg struct {
	channels []logapi.Channel
	err      error
}

func newChannelsView(d *deps) *channelsView {
	return &channelsView{deps: d}
}

func (v *channelsView) Title() string { return "channels" }

func (v *channelsView) Hints() string {
	if v.filtering {
		return "[type] filter  [enter] done  [esc] clear"
	}
	return "[enter] open  [f] favorite  [/] filter  [i] stats  [r] reload  [O] settings  [q] quit"
}

func (v *channelsView) Init() tea.Cmd {
	if v.loaded {
		return nil
	}
	return v.fetchCmd()
}

func (v *channelsView) fetchCmd() tea.Cmd {
	api := v.deps.API()
	return func() tea.Msg {
		channels, err := api.Channels(context.Background())
		return channelsDataMsg{channels: channels, err: err}
	}
}

func (v *channelsView) Update(msg tea.Msg) tea.Cmd {
	switch typed := msg.(type) {
	case channelsDataMsg:
		v.loaded = true
		v.fetchErr = typed.err
		if typed.err == nil {
			v.channels = typed.channels
			v.clampSelection()
		}
		return nil
	case tea.KeyMsg:
		return v.handleKey(typed)
	default:
		return nil
	}
}

func (v *channelsView) handleKey(msg tea.KeyMsg) tea.Cmd {
	if v.filtering {
		switch msg.String() {
		case "enter":
			v.filtering = false
		case "esc":
			v.filtering = false
			v.filter = ""
		case "backspace":
			if len(v.filter) > 0 {
				v.filter = v.filter[:len(v.filter)-1]
			}
		default:
			if msg.Type == tea.KeyRunes {
				v.filter += string(msg.Runes)
			}
		}
		v.clampSelection()
		return nil
	}

	switch msg.String() {
	case "up", "k":
		if v.sel > 0 {
			v.sel--
		}
	case "down", "j":
		if v.sel < len(v.visible())-1 {
			v.sel++
		}
	case "/":
		v.filtering = true
	case "r":
		return v.fetchCmd()
	case "f":
		if ch, ok := v.selected(); ok {
			v.deps.settings.ToggleFavorite(settings.Favorite{
				Type:    settings.FavoriteChannel,
				Channel: strings.ToLower(ch.Name),
			})
		}
	case "i":
		if ch, ok := v.selected(); ok {
			return func() tea.Msg { return openStatsMsg{channel: ch} }
		}
	case "enter":
		if ch, ok := v.selected(); ok {
			return func() tea.Msg { return openChannelMsg{channel: ch} }
		}
	}
	return nil
}

func (v *channelsView) View(width, height int, themeName Theme) string {
	theme := styles.ThemeNamed(string(themeName))
	if height < 1 {
		height = 1
	}

	var b strings.Builder
	if v.filtering || v.filter != "" {
		b.WriteString(styles.HeaderStyle(theme).Render("filter: "+v.filter) + "\n")
		height--
	}
	if v.fetchErr != nil {
		b.WriteString(styles.FavoriteStyle(theme).Render("could not reach log server: "+v.fetchErr.Error()) + "\n")
		return b.String()
	}
	if !v.loaded {
		b.WriteString("loading channels...")
		return b.String()
	}

	items := v.visible()
	if len(items) == 0 {
		b.WriteString(styles.FooterStyle(theme).Render("no channels match"))
		return b.String()
	}

	v.adjustScroll(height)
	selStyle := styles.SelectedStyle(theme)
	favStyle := styles.FavoriteStyle(theme)
	end := v.scroll + height
	if end > len(items) {
		end = len(items)
	}
	for i := v.scroll; i < end; i++ {
		ch := items[i]
		marker := "  "
		if v.deps.settings.IsFavorite(settings.FavoriteChannel, ch.Name, "") {
			marker = favStyle.Render("★ ")
		}
		line := fmt.Sprintf("#%s", ch.Name)
		if i == v.sel {
			line = selStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(marker + truncateVis(line, width-2))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// visible returns the filtered channel list, favorites first.
func (v *channelsView) visible() []logapi.Channel {
	needle := strings.ToLower(strings.TrimSpace(v.filter))
	out := make([]logapi.Channel, 0, len(v.channels))
	for _, ch := range v.channels {
		if needle != "" && !strings.Contains(strings.ToLower(ch.Name), needle) {
			continue
		}
		out = append(out, ch)
	}
	sort.SliceStable(out, func(i, j int) bool {
		fi := v.deps.settings.IsFavorite(settings.FavoriteChannel, out[i].Name, "")
		fj := v.deps.settings.IsFavorite(settings.FavoriteChannel, out[j].Name, "")
		if fi != fj {
			return fi
		}
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

func (v *channelsView) selected() (logapi.Channel, bool) {
	items := v.visible()
	if v.sel < 0 || v.sel >= len(items) {
		return logapi.Channel{}, false
	}
	return items[v.sel], true
}

func (v *channelsView) clampSelection() {
	if n := len(v.visible()); v.sel >= n {
		v.sel = maxInt(0, n-1)
	}
}

func (v *channelsView) adjustScroll(height int) {
	if height < 1 {
		height = 1
	}
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
