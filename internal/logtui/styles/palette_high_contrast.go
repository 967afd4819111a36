package styles

// HighContrastTheme favors legibility on low-quality terminals.
var HighContrastTheme = Theme{
	Name: "high-contrast",
	Base: BaseColors{
		Background: "16",
		Foreground: "231",
		Muted:      "250",
		Accent:     "51",
		Border:     "231",
	},
	Chat: ChatColors{
		Timestamp: "250",
		Date:      "248",
		Channel:   "195",
		Emote:     "87",
		System:    "229",
	},
	Chrome: ChromeColors{
		Header:       "117",
		Footer:       "159",
		Breadcrumb:   "195",
		SelectedItem: "51",
		Favorite:     "226",
		Scrollbar:    "252",
	},
	Borders: BorderColors{
		Tooltip: "231",
	},
}
