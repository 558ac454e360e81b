package medichat

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means no color.
type Theme struct {
	UserMsg int // User bubble accent
	BotMsg  int // Bot bubble accent
	Error   int // Error messages, delete actions
	Success int // Success notices
	Muted   int // Timestamps, status bar, placeholders
	Accent  int // Headings, selected navigation
	Link    int // Reference links
	Admin   int // Admin role badge
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		UserMsg: 4,
		BotMsg:  6,
		Error:   1,
		Success: 2,
		Muted:   8,
		Accent:  4,
		Link:    5,
		Admin:   2,
	}
}
