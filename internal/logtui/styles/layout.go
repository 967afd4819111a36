package styles

import "github.com/charmbracelet/lipgloss"

// HeaderStyle returns the style for the top breadcrumb/title bar.
func HeaderStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chrome.Header)).Bold(true)
}

// FooterStyle returns the style for the key-hint bar.
func FooterStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chrome.Footer))
}

// SelectedStyle returns the style for the highlighted list row.
func SelectedStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Chrome.SelectedItem)).
		Bold(true)
}

// FavoriteStyle returns the style for the favorite marker.
func FavoriteStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Chrome.Favorite))
}
