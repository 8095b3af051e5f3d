package components

import (
	"github.com/Akashdeep-Patra/rowview/internal/treeview"
	"github.com/Akashdeep-Patra/rowview/internal/ui"
)

const (
	thumbChar = "█"
	trackChar = "░"
)

// Scrollbar returns one cell per line of a vertical scrollbar track of the
// given height. The thumb is proportional to the visible share of the
// content and positioned by the scroll percentage.
//
// Returns nil if all content fits (no scrolling needed).
func Scrollbar(styles ui.Styles, height int, s treeview.Scroll) []string {
	total, page := s.Total(), s.Page()
	if total <= page || height < 1 {
		return nil
	}

	// Thumb size: proportional to visible/total, min 1 row.
	thumbSize := height * page / total
	if thumbSize < 1 {
		thumbSize = 1
	}
	if thumbSize > height {
		thumbSize = height
	}

	maxStart := height - thumbSize
	thumbStart := int(s.Percent()*float64(maxStart) + 0.5)
	if thumbStart > maxStart {
		thumbStart = maxStart
	}

	thumb := styles.ScrollThumb.Render(thumbChar)
	track := styles.ScrollTrack.Render(trackChar)
	lines := make([]string, height)
	for i := range lines {
		if i >= thumbStart && i < thumbStart+thumbSize {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return lines
}
