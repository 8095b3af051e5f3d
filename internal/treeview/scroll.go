package treeview

// Scroll is the vertical scroll state. The offset always lies in
// [0, MaxOffset()].
type Scroll struct {
	offset int
	page   int
	total  int
}

// Offset returns the current scroll position.
func (s Scroll) Offset() int { return s.offset }

// Page returns the visible height.
func (s Scroll) Page() int { return s.page }

// Total returns the content height.
func (s Scroll) Total() int { return s.total }

// MaxOffset returns total-page clamped to zero.
func (s Scroll) MaxOffset() int {
	if m := s.total - s.page; m > 0 {
		return m
	}
	return 0
}

// SetPage sets the visible height and re-clamps the offset.
func (s *Scroll) SetPage(page int) {
	if page < 0 {
		page = 0
	}
	s.page = page
	s.clamp()
}

// SetTotal sets the content height and re-clamps the offset.
func (s *Scroll) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	s.total = total
	s.clamp()
}

// SetOffset moves to offset, clamped. It reports whether the offset changed.
func (s *Scroll) SetOffset(offset int) bool {
	old := s.offset
	s.offset = offset
	s.clamp()
	return s.offset != old
}

// ScrollBy moves the offset by delta, clamped.
func (s *Scroll) ScrollBy(delta int) bool {
	return s.SetOffset(s.offset + delta)
}

// EnsureVisible scrolls the minimum amount needed to show the span
// [top, top+height). Spans taller than the page are aligned to their top.
func (s *Scroll) EnsureVisible(top, height int) bool {
	switch {
	case top < s.offset:
		return s.SetOffset(top)
	case height >= s.page:
		return s.SetOffset(top)
	case top+height > s.offset+s.page:
		return s.SetOffset(top + height - s.page)
	}
	return false
}

// Percent returns the scroll position as 0.0–1.0 for scrollbars.
func (s Scroll) Percent() float64 {
	m := s.MaxOffset()
	if m == 0 {
		return 0
	}
	return float64(s.offset) / float64(m)
}

func (s *Scroll) clamp() {
	if s.offset > s.MaxOffset() {
		s.offset = s.MaxOffset()
	}
	if s.offset < 0 {
		s.offset = 0
	}
}
