package logtui

import (
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/gempir/loggy/internal/logapi"
)

func newTestUserView(t *testing.T) *userView {
	t.Helper()
	model := newTestModel(t)
	view, ok := model.views[ViewUser].(*userView)
	require.True(t, ok)
	view.SetTarget(logapi.Channel{Name: "forsen"}, "NymN")
	return view
}

func TestUserViewNormalizesUsername(t *testing.T) {
	view := newTestUserView(t)
	require.Equal(t, "nymn", view.user)
	require.Equal(t, monthStart(time.Now()), view.month)
}

func TestUserViewAppliesMatchingResults(t *testing.T) {
	view := newTestUserView(t)
	msgs := dayMessages(view.month, "hi", "there")

	view.Update(userLogsMsg{channel: "forsen", user: "nymn", month: view.month, msgs: msgs})
	require.Len(t, view.msgs, 2)

	out := ansi.Strip(view.View(100, 20, ThemeDefault))
	require.Contains(t, out, "hi")
	// Month logs always show the date column.
	require.Contains(t, out, view.month.Format("2006-01-02"))
}

func TestUserViewDropsStaleResults(t *testing.T) {
	view := newTestUserView(t)
	other := view.month.AddDate(0, -1, 0)

	view.Update(userLogsMsg{channel: "forsen", user: "nymn", month: other, msgs: dayMessages(other, "x")})
	require.Nil(t, view.msgs)

	view.Update(userLogsMsg{channel: "forsen", user: "someone", month: view.month, msgs: dayMessages(view.month, "x")})
	require.Nil(t, view.msgs)
}

func TestUserViewMonthNavigationNeverEntersFuture(t *testing.T) {
	view := newTestUserView(t)
	current := view.month

	require.Nil(t, view.gotoMonth(current.AddDate(0, 1, 0)))
	require.Equal(t, current, view.month)

	require.NotNil(t, view.gotoMonth(current.AddDate(0, -1, 0)))
	require.Equal(t, current.AddDate(0, -1, 0), view.month)
}

func TestUserViewSearchShortcutCarriesScope(t *testing.T) {
	view := newTestUserView(t)
	cmd := view.Update(runeKey('/'))
	require.NotNil(t, cmd)

	msg, ok := cmd().(openSearchMsg)
	require.True(t, ok)
	require.Equal(t, "forsen", msg.channel.Name)
	require.Equal(t, "nymn", msg.user)
}
