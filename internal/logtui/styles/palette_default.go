package styles

// DefaultTheme is the baseline dark palette for the loggy TUI.
var DefaultTheme = Theme{
	Name:        "default",
	BorderStyle: "rounded",
	Base: BaseColors{
		Background: "234",
		Foreground: "252",
		Muted:      "245",
		Accent:     "135",
		Border:     "240",
	},
	Chat: ChatColors{
		Timestamp: "245",
		Date:      "243",
		Channel:   "109",
		Emote:     "75",
		System:    "214",
	},
	Chrome: ChromeColors{
		Header:       "111",
		Footer:       "110",
		Breadcrumb:   "109",
		SelectedItem: "135",
		Favorite:     "220",
		Scrollbar:    "246",
	},
	Borders: BorderColors{
		Tooltip: "75",
	},
}
