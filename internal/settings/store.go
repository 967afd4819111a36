// Package settings persists user preferences for the log viewer: the log
// server base URL override, the 7TV emote toggle, favorites and view
// preferences. Mutations notify registered observers with an immutable
// snapshot, so views recompute their own derived state without polling.
package settings

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	CurrentVersion = 1

	defaultDebounce = 1 * time.Second
)

// FavoriteType discriminates channel and channel+user favorites.
type FavoriteType string

const (
	FavoriteChannel FavoriteType = "channel"
	FavoriteUser    FavoriteType = "user"
)

// Favorite is one pinned channel or channel+user pair.
type Favorite struct {
	Type    FavoriteType `json:"type"`
	Channel string       `json:"channel"`
	User    string       `json:"user,omitempty"` // user favorites only
	Name    string       `json:"name"`           // display name
}

func (f Favorite) matches(kind FavoriteType, channel, user string) bool {
	if f.Type != kind || !strings.EqualFold(f.Channel, channel) {
		return false
	}
	if kind == FavoriteChannel {
		return true
	}
	return strings.EqualFold(f.User, user)
}

// Settings is the persisted preference set. Snapshots handed to observers
// are copies; mutate only through the Store.
type Settings struct {
	Version         int        `json:"version"`
	BaseURL         string     `json:"base_url,omitempty"`       // log server override, empty means default
	EmotesEnabled   bool       `json:"emotes_enabled"`           // gate for 7TV dictionary fetching
	Favorites       []Favorite `json:"favorites,omitempty"`      // pinned channels and users
	Theme           string     `json:"theme,omitempty"`          // UI theme name
	ShowDates       bool       `json:"show_dates,omitempty"`     // date column in log rows
	SortNewestFirst bool       `json:"sort_newest_first"`        // log list display order
}

// Defaults returns the settings used before any file exists. Emotes default
// to enabled, matching the viewer's additive-enhancement design.
func Defaults() Settings {
	return Settings{
		Version:         CurrentVersion,
		EmotesEnabled:   true,
		SortNewestFirst: true,
	}
}

// Observer receives a settings snapshot after every committed mutation.
type Observer func(Settings)

// Store owns the settings file and the observer registry. Writes are
// debounced and atomic (temp file + rename).
type Store struct {
	path string

	mu        sync.Mutex
	settings  Settings
	dirty     bool
	timer     *time.Timer
	debounce  time.Duration
	observers map[int]Observer
	nextObsID int
}

func NewStore(path string) *Store {
	return &Store{
		path:      strings.TrimSpace(path),
		settings:  Defaults(),
		debounce:  defaultDebounce,
		observers: make(map[int]Observer),
	}
}

func (s *Store) Path() string { return s.path }

// Load reads the settings file. A missing or empty file leaves defaults in
// place and is not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == "" {
		return nil
	}

	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(payload) == 0 {
		return nil
	}

	loaded := Defaults()
	if err := json.Unmarshal(payload, &loaded); err != nil {
		return err
	}
	if loaded.Version <= 0 {
		loaded.Version = CurrentVersion
	}
	s.settings = loaded
	s.dirty = false
	return nil
}

// Snapshot returns a copy of the current settings.
func (s *Store) Snapshot() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSettings(s.settings)
}

// Subscribe registers an observer and returns its cancel function. The
// observer is invoked after every committed mutation, outside the store lock.
func (s *Store) Subscribe(obs Observer) (cancel func()) {
	s.mu.Lock()
	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = obs
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

// SetBaseURL stores the log server override. Empty or the default URL clears
// the override. Trailing slashes are normalized away.
func (s *Store) SetBaseURL(url string) {
	normalized := strings.TrimRight(strings.TrimSpace(url), "/")
	s.mutate(func(set *Settings) {
		set.BaseURL = normalized
	})
}

// SetEmotesEnabled toggles 7TV dictionary fetching.
func (s *Store) SetEmotesEnabled(enabled bool) {
	s.mutate(func(set *Settings) {
		set.EmotesEnabled = enabled
	})
}

// SetTheme stores the UI theme name.
func (s *Store) SetTheme(theme string) {
	s.mutate(func(set *Settings) {
		set.Theme = strings.TrimSpace(theme)
	})
}

// SetShowDates toggles the date column in log rows.
func (s *Store) SetShowDates(show bool) {
	s.mutate(func(set *Settings) {
		set.ShowDates = show
	})
}

// SetSortNewestFirst toggles the log list display order.
func (s *Store) SetSortNewestFirst(newest bool) {
	s.mutate(func(set *Settings) {
		set.SortNewestFirst = newest
	})
}

// IsFavorite reports whether a channel or channel+user pair is pinned.
func (s *Store) IsFavorite(kind FavoriteType, channel, user string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, fav := range s.settings.Favorites {
		if fav.matches(kind, channel, user) {
			return true
		}
	}
	return false
}

// ToggleFavorite adds the favorite when absent and removes it when present.
func (s *Store) ToggleFavorite(fav Favorite) {
	s.mutate(func(set *Settings) {
		for i, existing := range set.Favorites {
			if existing.matches(fav.Type, fav.Channel, fav.User) {
				set.Favorites = append(set.Favorites[:i], set.Favorites[i+1:]...)
				return
			}
		}
		set.Favorites = append(set.Favorites, fav)
	})
}

func (s *Store) mutate(apply func(*Settings)) {
	s.mu.Lock()
	apply(&s.settings)
	s.markDirtyLocked()
	snapshot := cloneSettings(s.settings)
	observers := make([]Observer, 0, len(s.observers))
	for _, obs := range s.observers {
		observers = append(observers, obs)
	}
	s.mu.Unlock()

	for _, obs := range observers {
		obs(snapshot)
	}
}

// Close flushes any pending write.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	needsSave := s.dirty
	s.mu.Unlock()
	if !needsSave {
		return nil
	}
	return s.SaveNow()
}

// SaveNow writes the settings file immediately.
func (s *Store) SaveNow() error {
	s.mu.Lock()
	if s.path == "" {
		s.mu.Unlock()
		return nil
	}
	snapshot := cloneSettings(s.settings)
	s.dirty = false
	s.mu.Unlock()

	snapshot.Version = CurrentVersion
	if err := writeAtomicJSON(s.path, snapshot); err != nil {
		s.mu.Lock()
		s.dirty = true
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) markDirtyLocked() {
	s.dirty = true
	if s.path == "" {
		return
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(s.debounce, func() {
			_ = s.SaveNow()
		})
		return
	}
	_ = s.timer.Reset(s.debounce)
}

func cloneSettings(in Settings) Settings {
	out := in
	out.Favorites = append([]Favorite(nil), in.Favorites...)
	return out
}

func writeAtomicJSON(path string, settings Settings) error {
	payload, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
