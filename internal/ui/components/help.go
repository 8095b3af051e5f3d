package components

import (
	"strings"

	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of entries. Sections render in slice order.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// BindingEntries turns key bindings into help entries. Disabled bindings
// and bindings without help text are left out.
func BindingEntries(bindings ...key.Binding) []HelpEntry {
	entries := make([]HelpEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if !b.Enabled() || h.Key == "" {
			continue
		}
		entries = append(entries, HelpEntry{Key: h.Key, Desc: h.Desc})
	}
	return entries
}

// MouseHelp describes the pointer gestures, which have no key bindings.
func MouseHelp() HelpSection {
	return HelpSection{Title: "Mouse", Entries: []HelpEntry{
		{Key: "click", Desc: "select row"},
		{Key: "shift+click", Desc: "select range from anchor"},
		{Key: "ctrl+click", Desc: "toggle row"},
		{Key: "drag", Desc: "extend selection, scrolls at edges"},
		{Key: "double click", Desc: "open"},
		{Key: "wheel", Desc: "scroll"},
	}}
}

// RenderHelp renders a full-screen help overlay.
func RenderHelp(styles ui.Styles, title string, sections []HelpSection, width, height int) string {
	t := styles.Theme
	inner := max(min(70, width-4), 1)

	keyWidth := 0
	for _, s := range sections {
		for _, e := range s.Entries {
			keyWidth = max(keyWidth, runewidth.StringWidth(e.Key))
		}
	}

	titleStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Align(lipgloss.Center).Width(max(inner-6, 1))
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(keyWidth).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	lines := []string{titleStyle.Render(title), ""}
	for _, s := range sections {
		if len(s.Entries) == 0 {
			continue
		}
		lines = append(lines, sectionStyle.Render(s.Title))
		for _, e := range s.Entries {
			lines = append(lines, "  "+keyStyle.Render(e.Key)+"  "+descStyle.Render(e.Desc))
		}
		lines = append(lines, "")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Primary).
		Padding(1, 3).
		Width(inner).
		MaxHeight(max(height-2, 1)).
		Render(strings.Join(lines, "\n"))

	return ui.PlaceCentre(width, height, overlay)
}
