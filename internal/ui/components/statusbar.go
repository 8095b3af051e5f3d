package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Root     string
	Rows     int
	Selected int
	Cursor   string // name of the row under the cursor
	Loading  bool
	Scrolled float64 // 0.0–1.0
	Message  string  // transient info/error message
	IsError  bool
}

// RenderStatusBar renders the bottom status bar with visual sections
// separated by dim vertical bars.
//
// Wide (>= 60):   rowview  │  3 / 120 selected  │  main.go         42%
// Narrow (< 60):  rowview  │  3 / 120 selected
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sep := lipgloss.NewStyle().Foreground(t.Border).Faint(true).Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	rootStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	left := " " + rootStyle.Render(filepath.Base(data.Root))

	countStyle := lipgloss.NewStyle().Foreground(t.Text)
	if data.Selected > 0 {
		left += sep + countStyle.Render(fmt.Sprintf("%d / %d selected", data.Selected, data.Rows))
	} else {
		left += sep + countStyle.Render(fmt.Sprintf("%d rows", data.Rows))
	}

	if data.Loading {
		left += sep + lipgloss.NewStyle().Foreground(t.Warning).Render("loading…")
	} else if width >= 60 && data.Cursor != "" {
		left += sep + lipgloss.NewStyle().Foreground(t.TextMuted).Render(ui.Truncate(data.Cursor, 32))
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else if width >= 60 {
		right = lipgloss.NewStyle().Foreground(t.TextSubtle).Render(fmt.Sprintf("%3.0f%%", data.Scrolled*100)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	inner := width - styles.StatusBar.GetHorizontalFrameSize()
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxHeight(1).Render(content)
}
