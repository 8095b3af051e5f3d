package ui

import "github.com/charmbracelet/lipgloss"

// Theme holds all colours for the application.
type Theme struct {
	Bg           lipgloss.Color
	Surface      lipgloss.Color
	SurfaceHover lipgloss.Color
	Selection    lipgloss.Color
	Border       lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Directory lipgloss.Color
	File      lipgloss.Color
	Language  lipgloss.Color
	Vendored  lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
}

// DarkTheme returns the default dark theme (Catppuccin Mocha).
func DarkTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#1e1e2e"),
		Surface:      lipgloss.Color("#282840"),
		SurfaceHover: lipgloss.Color("#313152"),
		Selection:    lipgloss.Color("#45475a"),
		Border:       lipgloss.Color("#3b3b5c"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Directory: lipgloss.Color("#89b4fa"),
		File:      lipgloss.Color("#cdd6f4"),
		Language:  lipgloss.Color("#f9e2af"),
		Vendored:  lipgloss.Color("#6c7086"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),
	}
}

// LightTheme returns the light theme (Catppuccin Latte).
func LightTheme() Theme {
	return Theme{
		Bg:           lipgloss.Color("#eff1f5"),
		Surface:      lipgloss.Color("#e6e9ef"),
		SurfaceHover: lipgloss.Color("#dce0e8"),
		Selection:    lipgloss.Color("#bcc0cc"),
		Border:       lipgloss.Color("#acb0be"),

		Text:        lipgloss.Color("#4c4f69"),
		TextMuted:   lipgloss.Color("#6c6f85"),
		TextSubtle:  lipgloss.Color("#9ca0b0"),
		TextInverse: lipgloss.Color("#eff1f5"),

		Primary:   lipgloss.Color("#1e66f5"),
		Secondary: lipgloss.Color("#7287fd"),
		Accent:    lipgloss.Color("#ea76cb"),

		Directory: lipgloss.Color("#1e66f5"),
		File:      lipgloss.Color("#4c4f69"),
		Language:  lipgloss.Color("#df8e1d"),
		Vendored:  lipgloss.Color("#9ca0b0"),

		Success: lipgloss.Color("#40a02b"),
		Warning: lipgloss.Color("#df8e1d"),
		Error:   lipgloss.Color("#d20f39"),
		Info:    lipgloss.Color("#1e66f5"),
	}
}

// ThemeByName resolves a configured theme name. Unknown names get the dark theme.
func ThemeByName(name string) Theme {
	if name == "light" {
		return LightTheme()
	}
	return DarkTheme()
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style
	Prompt    lipgloss.Style

	// Rows
	Row         lipgloss.Style
	RowSelected lipgloss.Style
	RowCursor   lipgloss.Style
	Directory   lipgloss.Style
	File        lipgloss.Style
	Language    lipgloss.Style
	Vendored    lipgloss.Style
	Detail      lipgloss.Style

	// Text
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Scrollbar
	ScrollThumb lipgloss.Style
	ScrollTrack lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.Header = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)
	s.Prompt = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	s.Row = lipgloss.NewStyle().Foreground(t.Text)
	s.RowSelected = lipgloss.NewStyle().Foreground(t.Text).Background(t.Selection).Bold(true)
	s.RowCursor = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	s.Directory = lipgloss.NewStyle().Foreground(t.Directory).Bold(true)
	s.File = lipgloss.NewStyle().Foreground(t.File)
	s.Language = lipgloss.NewStyle().Foreground(t.Language)
	s.Vendored = lipgloss.NewStyle().Foreground(t.Vendored).Italic(true)
	s.Detail = lipgloss.NewStyle().Foreground(t.TextSubtle)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.ScrollThumb = lipgloss.NewStyle().Foreground(t.Primary)
	s.ScrollTrack = lipgloss.NewStyle().Foreground(t.Border)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}
