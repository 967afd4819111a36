// Package logtui is the bubbletea terminal UI for browsing archived chat logs.
package logtui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/gempir/loggy/internal/config"
	"github.com/gempir/loggy/internal/logapi"
	"github.com/gempir/loggy/internal/logcache"
	"github.com/gempir/loggy/internal/logging"
	"github.com/gempir/loggy/internal/seventv"
	"github.com/gempir/loggy/internal/settings"
)

type Theme string

const (
	ThemeDefault      Theme = "default"
	ThemeHighContrast Theme = "high-contrast"
)

type ViewID string

const (
	ViewChannels ViewID = "channels"
	ViewLogs     ViewID = "logs"
	ViewUser     ViewID = "user"
	ViewSearch   ViewID = "search"
	ViewStats    ViewID = "stats"
	ViewSettings ViewID = "settings"
)

type viewModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int, theme Theme) string
}

type pushViewMsg struct {
	id ViewID
}

type popViewMsg struct{}

// openChannelMsg routes to the logs view for a channel.
type openChannelMsg struct {
	channel logapi.Channel
}

// openUserMsg routes to the per-user view within a channel.
type openUserMsg struct {
	channel logapi.Channel
	user    string
}

// openSearchMsg routes to the search view scoped to a channel and user.
type openSearchMsg struct {
	channel logapi.Channel
	user    string
}

// openStatsMsg routes to the stats view. user may be empty for channel stats.
type openStatsMsg struct {
	channel logapi.Channel
	user    string
}

// settingsChangedMsg is broadcast after the settings store mutates.
type settingsChangedMsg struct {
	snapshot settings.Settings
}

func pushViewCmd(id ViewID) tea.Cmd {
	return func() tea.Msg {
		return pushViewMsg{id: id}
	}
}

func popViewCmd() tea.Cmd {
	return func() tea.Msg {
		return popViewMsg{}
	}
}

// deps bundles the shared collaborators every view needs. The API client is
// swapped atomically when the base URL setting changes, and commands run on
// their own goroutines, so access goes through the accessor.
type deps struct {
	cfg      *config.Config
	settings *settings.Store
	emotes   *seventv.Resolver
	cache    *logcache.Store // nil when the cache is disabled
	log      zerolog.Logger

	mu  sync.RWMutex
	api *logapi.Client
}

func (d *deps) API() *logapi.Client {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.api
}

func (d *deps) setBaseURL(baseURL string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.api = d.api.WithBaseURL(baseURL)
}

type Model struct {
	deps  *deps
	theme Theme

	width    int
	height   int
	showHelp bool

	viewStack []ViewID
	views     map[ViewID]viewModel
}

func NewModel(cfg *config.Config) (*Model, error) {
	store := settings.NewStore(cfg.SettingsPath())
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	snap := store.Snapshot()
	baseURL := cfg.API.BaseURL
	if strings.TrimSpace(snap.BaseURL) != "" {
		baseURL = snap.BaseURL
	}

	var cache *logcache.Store
	if cfg.Cache.Path != "" {
		cacheLog := logging.Component("logcache")
		var err error
		cache, err = logcache.Open(cfg.Cache.Path)
		if err != nil {
			// Non-fatal: the viewer works without a local cache.
			cacheLog.Warn().Err(err).Msg("cache disabled")
			cache = nil
		} else if cfg.Cache.MaxAgeDays > 0 {
			cutoff := time.Now().AddDate(0, 0, -cfg.Cache.MaxAgeDays)
			if _, err := cache.Prune(context.Background(), cutoff); err != nil {
				cacheLog.Warn().Err(err).Msg("prune failed")
			}
		}
	}

	d := &deps{
		cfg:      cfg,
		settings: store,
		cache:    cache,
		log:      logging.Component("logtui"),
		api:      logapi.NewWithTimeout(baseURL, cfg.API.Timeout),
	}
	if cfg.Emotes.Enabled && snap.EmotesEnabled {
		d.emotes = seventv.NewResolver(seventv.NewClient(cfg.Emotes.BaseURL))
	}

	// The Update loop reacts via settingsChangedMsg; this observer is the
	// out-of-band trail in the log file.
	store.Subscribe(func(s settings.Settings) {
		d.log.Debug().
			Str("theme", s.Theme).
			Bool("emotes", s.EmotesEnabled).
			Bool("newest_first", s.SortNewestFirst).
			Int("favorites", len(s.Favorites)).
			Msg("settings updated")
	})

	theme := Theme(snap.Theme)
	switch theme {
	case ThemeDefault, ThemeHighContrast:
	default:
		theme = Theme(cfg.TUI.Theme)
	}

	m := &Model{
		deps:      d,
		theme:     theme,
		viewStack: []ViewID{ViewChannels},
		views:     make(map[ViewID]viewModel),
	}
	m.initViews()
	return m, nil
}

func Run(cfg *config.Config) error {
	model, err := NewModel(cfg)
	if err != nil {
		return err
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.TUI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(model, opts...)
	_, err = program.Run()
	return err
}

func (m *Model) Close() error {
	for _, view := range m.views {
		if closer, ok := view.(interface{ Close() }); ok {
			closer.Close()
		}
	}
	if m.deps.cache != nil {
		_ = m.deps.cache.Close()
	}
	return m.deps.settings.Close()
}

func (m *Model) Init() tea.Cmd {
	if view := m.activeView(); view != nil {
		return view.Init()
	}
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		return m, nil
	case openChannelMsg:
		if setter, ok := m.views[ViewLogs].(interface {
			SetChannel(logapi.Channel) tea.Cmd
		}); ok {
			m.pushView(ViewLogs)
			return m, setter.SetChannel(typed.channel)
		}
		return m, nil
	case openUserMsg:
		if setter, ok := m.views[ViewUser].(interface {
			SetTarget(logapi.Channel, string) tea.Cmd
		}); ok {
			m.pushView(ViewUser)
			return m, setter.SetTarget(typed.channel, typed.user)
		}
		return m, nil
	case openSearchMsg:
		if setter, ok := m.views[ViewSearch].(interface {
			SetScope(logapi.Channel, string) tea.Cmd
		}); ok {
			m.pushView(ViewSearch)
			return m, setter.SetScope(typed.channel, typed.user)
		}
		return m, nil
	case openStatsMsg:
		if setter, ok := m.views[ViewStats].(interface {
			SetScope(logapi.Channel, string) tea.Cmd
		}); ok {
			m.pushView(ViewStats)
			return m, setter.SetScope(typed.channel, typed.user)
		}
		return m, nil
	case settingsChangedMsg:
		m.applySettings(typed.snapshot)
		return m, nil
	case pushViewMsg:
		m.pushView(typed.id)
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case popViewMsg:
		m.popView()
		if view := m.activeView(); view != nil {
			return m, view.Init()
		}
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.handleGlobalKey(typed); handled {
			return m, cmd
		}
	}

	if active := m.activeView(); active != nil {
		return m, active.Update(msg)
	}
	return m, nil
}

func (m *Model) View() string {
	active := m.activeView()
	if active == nil {
		return "no active view"
	}
	header := m.renderHeader()
	footer := m.renderFooter()
	contentHeight := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 0 {
		contentHeight = 0
	}
	body := active.View(m.width, contentHeight, m.theme)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit, true
	case "q":
		// q quits from the home view, otherwise backs up a level.
		if m.activeViewID() == ViewChannels {
			return tea.Quit, true
		}
		m.popView()
		if view := m.activeView(); view != nil {
			return view.Init(), true
		}
		return nil, true
	case "?":
		m.showHelp = !m.showHelp
		return nil, true
	case "O":
		m.pushView(ViewSettings)
		if view := m.activeView(); view != nil {
			return view.Init(), true
		}
		return nil, true
	}
	return nil, false
}

func (m *Model) applySettings(snap settings.Settings) {
	if strings.TrimSpace(snap.BaseURL) != "" {
		m.deps.setBaseURL(snap.BaseURL)
	}
	switch Theme(snap.Theme) {
	case ThemeDefault, ThemeHighContrast:
		m.theme = Theme(snap.Theme)
	}
	if snap.EmotesEnabled && m.deps.emotes == nil && m.deps.cfg.Emotes.Enabled {
		m.deps.emotes = seventv.NewResolver(seventv.NewClient(m.deps.cfg.Emotes.BaseURL))
	}
	if !snap.EmotesEnabled {
		m.deps.emotes = nil
	}
}

func (m *Model) activeView() viewModel {
	return m.views[m.activeViewID()]
}

func (m *Model) activeViewID() ViewID {
	if len(m.viewStack) == 0 {
		return ViewChannels
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *Model) pushView(id ViewID) {
	if id == "" {
		return
	}
	if _, ok := m.views[id]; !ok {
		return
	}
	if m.activeViewID() == id {
		return
	}
	m.viewStack = append(m.viewStack, id)
}

func (m *Model) popView() {
	if len(m.viewStack) <= 1 {
		return
	}
	m.viewStack = m.viewStack[:len(m.viewStack)-1]
}

func (m *Model) initViews() {
	m.views[ViewChannels] = newChannelsView(m.deps)
	m.views[ViewLogs] = newLogsView(m.deps)
	m.views[ViewUser] = newUserView(m.deps)
	m.views[ViewSearch] = newSearchView(m.deps)
	m.views[ViewStats] = newStatsView(m.deps)
	m.views[ViewSettings] = newSettingsView(m.deps)
}
