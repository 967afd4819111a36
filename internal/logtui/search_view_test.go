package logtui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/gempir/loggy/internal/logapi"
)

func newTestSearchView(t *testing.T, user string) *searchView {
	t.Helper()
	model := newTestModel(t)
	view, ok := model.views[ViewSearch].(*searchView)
	require.True(t, ok)
	view.SetScope(logapi.Channel{Name: "forsen"}, user)
	return view
}

func TestSearchFocusStartsOnEmptyField(t *testing.T) {
	require.Equal(t, 0, newTestSearchView(t, "").focus)
	require.Equal(t, 1, newTestSearchView(t, "nymn").focus)
}

func TestSearchRequiresUserAndQuery(t *testing.T) {
	view := newTestSearchView(t, "")
	require.Nil(t, view.Update(tea.KeyMsg{Type: tea.KeyEnter}))

	view = newTestSearchView(t, "nymn")
	for _, r := range "gachi" {
		view.Update(runeKey(r))
	}
	require.NotNil(t, view.Update(tea.KeyMsg{Type: tea.KeyEnter}))
	require.True(t, view.loading)
}

func TestSearchTabSwitchesFields(t *testing.T) {
	view := newTestSearchView(t, "nymn")
	view.Update(tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, 0, view.focus)

	// Typing into the user field lowercases.
	view.Update(runeKey('X'))
	require.Equal(t, "nymnx", view.user)
}

func TestSearchResultsMatchingScopeApplied(t *testing.T) {
	view := newTestSearchView(t, "nymn")
	view.query = "hello"
	view.loading = true

	view.Update(searchResultsMsg{
		channel: "forsen", user: "nymn", query: "hello",
		msgs: dayMessages(rowTime, "hello chat"),
	})
	require.False(t, view.loading)
	require.True(t, view.searched)
	require.Len(t, view.results, 1)

	out := ansi.Strip(view.View(100, 20, ThemeDefault))
	require.Contains(t, out, "hello chat")
}

func TestSearchStaleResultsDropped(t *testing.T) {
	view := newTestSearchView(t, "nymn")
	view.query = "current"

	view.Update(searchResultsMsg{channel: "forsen", user: "nymn", query: "older", msgs: dayMessages(rowTime, "x")})
	require.Nil(t, view.results)
}

func TestSearchEmptyResultsShowEmptyState(t *testing.T) {
	view := newTestSearchView(t, "nymn")
	view.query = "nothing"
	view.Update(searchResultsMsg{channel: "forsen", user: "nymn", query: "nothing"})

	out := ansi.Strip(view.View(100, 20, ThemeDefault))
	require.Contains(t, out, "No messages found")
}
