package logtui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gempir/loggy/internal/logtui/styles"
)

type settingsItem int

const (
	itemBaseURL settingsItem = iota
	itemEmotes
	itemTheme
	itemShowDates
	itemSortOrder
	settingsItemCount
)

// settingsView edits the persistent UI settings. Changes apply immediately
// and are debounced to disk by the store.
type settingsView struct {
	deps *deps

	sel     settingsItem
	editing bool
	editBuf string
}

func newSettingsView(d *deps) *settingsView {
	return &settingsView{deps: d}
}

func (v *settingsView) Title() string { return "settings" }

func (v *settingsView) Hints() string {
	if v.editing {
		return "[type] edit  [enter] apply  [esc] cancel"
	}
	return "[↑/↓] select  [enter/space] change  [q] back"
}

func (v *settingsView) Init() tea.Cmd {
	return nil
}

func (v *settingsView) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if v.editing {
		switch keyMsg.String() {
		case "enter":
			v.editing = false
			v.deps.settings.SetBaseURL(strings.TrimSpace(v.editBuf))
			return v.changedCmd()
		case "esc":
			v.editing = false
		case "backspace":
			if len(v.editBuf) > 0 {
				v.editBuf = v.editBuf[:len(v.editBuf)-1]
			}
		default:
			if keyMsg.Type == tea.KeyRunes {
				v.editBuf += string(keyMsg.Runes)
			}
		}
		return nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.sel > 0 {
			v.sel--
		}
	case "down", "j":
		if v.sel < settingsItemCount-1 {
			v.sel++
		}
	case "enter", " ":
		return v.toggle()
	}
	return nil
}

func (v *settingsView) toggle() tea.Cmd {
	snap := v.deps.settings.Snapshot()
	switch v.sel {
	case itemBaseURL:
		v.editing = true
		v.editBuf = snap.BaseURL
		if v.editBuf == "" {
			v.editBuf = v.deps.API().BaseURL()
		}
		return nil
	case itemEmotes:
		v.deps.settings.SetEmotesEnabled(!snap.EmotesEnabled)
	case itemTheme:
		next := string(ThemeHighContrast)
		if snap.Theme == string(ThemeHighContrast) {
			next = string(ThemeDefault)
		}
		v.deps.settings.SetTheme(next)
	case itemShowDates:
		v.deps.settings.SetShowDates(!snap.ShowDates)
	case itemSortOrder:
		v.deps.settings.SetSortNewestFirst(!snap.SortNewestFirst)
	}
	return v.changedCmd()
}

func (v *settingsView) changedCmd() tea.Cmd {
	snap := v.deps.settings.Snapshot()
	return func() tea.Msg {
		return settingsChangedMsg{snapshot: snap}
	}
}

func (v *settingsView) View(width, height int, themeName Theme) string {
	theme := styles.ThemeNamed(string(themeName))
	snap := v.deps.settings.Snapshot()

	baseURL := snap.BaseURL
	if baseURL == "" {
		baseURL = v.deps.API().BaseURL() + " (default)"
	}
	if v.editing {
		baseURL = v.editBuf + "▏"
	}
	themeValue := snap.Theme
	if themeValue == "" {
		themeValue = string(ThemeDefault)
	}

	rows := []struct {
		item  settingsItem
		label string
		value string
	}{
		{itemBaseURL, "log server", baseURL},
		{itemEmotes, "emotes", onOff(snap.EmotesEnabled)},
		{itemTheme, "theme", themeValue},
		{itemShowDates, "show dates", onOff(snap.ShowDates)},
		{itemSortOrder, "sort", sortLabel(snap.SortNewestFirst)},
	}

	selStyle := styles.SelectedStyle(theme)
	var b strings.Builder
	b.WriteString(styles.HeaderStyle(theme).Render("settings") + "\n\n")
	for _, row := range rows {
		line := fmt.Sprintf("%-12s %s", row.label, row.value)
		if row.item == v.sel {
			line = selStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(truncateVis(line, width) + "\n")
	}

	favs := snap.Favorites
	if len(favs) > 0 {
		b.WriteString("\n" + styles.FooterStyle(theme).Render(fmt.Sprintf("%d favorites saved", len(favs))))
	}
	return padToHeight(b.String(), height)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func sortLabel(newestFirst bool) string {
	if newestFirst {
		return "newest first"
	}
	return "oldest first"
}
