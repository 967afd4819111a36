package styles

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

// ChatStyles contains pre-built styles for chat log rendering.
type ChatStyles struct {
	Theme Theme

	Timestamp lipgloss.Style
	Date      lipgloss.Style
	Channel   lipgloss.Style
	Body      lipgloss.Style
	Emote     lipgloss.Style
	System    lipgloss.Style

	mu        sync.Mutex
	userCache map[string]lipgloss.Style
}

// NewChatStyles builds a reusable style set for chat rows.
func NewChatStyles(theme Theme) *ChatStyles {
	return &ChatStyles{
		Theme:     theme,
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chat.Timestamp)),
		Date:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chat.Date)),
		Channel:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chat.Channel)),
		Body:      lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Base.Foreground)),
		Emote: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Chat.Emote)).
			Underline(true),
		System:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chat.System)),
		userCache: make(map[string]lipgloss.Style, 64),
	}
}

// RenderTimestamp renders a chat timestamp as HH:MM:SS.
func (s *ChatStyles) RenderTimestamp(ts time.Time) string {
	return s.Timestamp.Render(ts.Format("15:04:05"))
}

// RenderDate renders the date portion shown when a log spans days.
func (s *ChatStyles) RenderDate(ts time.Time) string {
	return s.Date.Render(ts.Format("2006-01-02"))
}

// RenderChannel renders a #channel marker.
func (s *ChatStyles) RenderChannel(channel string) string {
	return s.Channel.Render("#" + channel)
}

// RenderUsername renders a display name in the user's hex color. Styles are
// cached per color since sender colors repeat heavily within a log.
func (s *ChatStyles) RenderUsername(name, hexColor string) string {
	return s.userStyle(hexColor).Render(name + ":")
}

func (s *ChatStyles) userStyle(hexColor string) lipgloss.Style {
	s.mu.Lock()
	defer s.mu.Unlock()
	if style, ok := s.userCache[hexColor]; ok {
		return style
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Bold(true)
	s.userCache[hexColor] = style
	return style
}

// TooltipStyle returns the bordered box style for emote tooltips.
func (s *ChatStyles) TooltipStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(borderFor(s.Theme)).
		BorderForeground(lipgloss.Color(s.Theme.Borders.Tooltip)).
		Padding(0, 1)
}

// WrapBody word-wraps text to width, preserving hard newlines.
func WrapBody(body string, width int) string {
	if width <= 0 {
		return body
	}
	parts := strings.Split(body, "\n")
	for i := range parts {
		parts[i] = wordwrap.String(parts[i], width)
	}
	return strings.Join(parts, "\n")
}

func borderFor(theme Theme) lipgloss.Border {
	switch theme.BorderStyle {
	case "double":
		return lipgloss.DoubleBorder()
	case "sharp":
		return lipgloss.NormalBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
