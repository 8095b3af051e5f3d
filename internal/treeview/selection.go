package treeview

import "sort"

// Modifiers is the set of held keyboard modifiers.
type Modifiers uint8

const (
	ModCtrl Modifiers = 1 << iota
	ModShift
)

// ModNone means no modifier is held.
const ModNone Modifiers = 0

// Has reports whether m includes all of o.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

// ClickClass is the host's classification of a button press.
type ClickClass int

const (
	ClickNone ClickClass = iota
	ClickSingle
	ClickDouble
)

func (c ClickClass) String() string {
	switch c {
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	default:
		return "none"
	}
}

const noRow = -1

// Selection is the selection state machine. It tracks the selected set (in
// insertion order), the anchor used as the range pivot, and the per-press
// state needed to resolve drags, deferred collapses and click dispatch.
//
// Row indices are plain ints; the owner keeps them valid with Remap after
// structural changes and bounds every call with the current row count.
type Selection struct {
	order  []int
	member map[int]struct{}
	anchor int
	lead   int
	// restore maps a ctrl-added row to the anchor it replaced.
	restore map[int]int

	multi bool
	drag  bool

	held     bool
	pressRow int
	pending  int
	single   int
	double   int

	notify func(row int, selected bool)
}

// NewSelection creates an empty selection. multi enables ctrl/shift/drag
// multi-row selection; drag enables deferring a plain press on an already
// selected row until release.
func NewSelection(multi, drag bool) *Selection {
	return &Selection{
		member:   make(map[int]struct{}),
		restore:  make(map[int]int),
		anchor:   noRow,
		lead:     noRow,
		pressRow: noRow,
		pending:  noRow,
		single:   noRow,
		double:   noRow,
		multi:    multi,
		drag:     drag,
	}
}

// OnChange registers fn to be called for every row whose membership
// actually changes.
func (s *Selection) OnChange(fn func(row int, selected bool)) { s.notify = fn }

// Len returns the number of selected rows.
func (s *Selection) Len() int { return len(s.order) }

// Contains reports whether row is selected.
func (s *Selection) Contains(row int) bool {
	_, ok := s.member[row]
	return ok
}

// Rows returns the selected rows in ascending order.
func (s *Selection) Rows() []int {
	out := make([]int, len(s.order))
	copy(out, s.order)
	sort.Ints(out)
	return out
}

// Anchor returns the range pivot.
func (s *Selection) Anchor() (int, bool) { return s.anchor, s.anchor != noRow }

// Lead returns the most recently targeted row, used as the keyboard cursor.
func (s *Selection) Lead() (int, bool) { return s.lead, s.lead != noRow }

// Held reports whether the primary button is down.
func (s *Selection) Held() bool { return s.held }

// Pending reports the row whose collapse is deferred to release.
func (s *Selection) Pending() (int, bool) { return s.pending, s.pending != noRow }

// ── Pointer events ──────────────────────────────────────────────────────────

// Press handles a primary button press on row (ok false: no row under the
// pointer).
func (s *Selection) Press(row int, ok bool, mods Modifiers, click ClickClass) {
	s.held = true
	s.pending = noRow
	s.single, s.double = noRow, noRow
	if !ok {
		s.pressRow = noRow
		s.Clear()
		return
	}
	s.pressRow = row

	switch {
	case mods.Has(ModShift) && s.multi:
		s.shiftPress(row)
	case mods.Has(ModCtrl):
		s.ctrlPress(row)
	case s.drag && s.Contains(row):
		s.pending = row
		s.lead = row
	default:
		s.Set(row)
	}

	switch click {
	case ClickDouble:
		s.double = row
	case ClickSingle:
		s.single = row
	}
}

// Dragging reports whether a motion event with mods would extend the
// selection: button held, multi-select on, no modifier and an anchor set.
func (s *Selection) Dragging(mods Modifiers) bool {
	return s.held && s.multi && mods == ModNone && s.anchor != noRow
}

// Motion handles pointer movement over row. It cancels a pending collapse
// once the pointer leaves the pressed row and, while dragging, replaces the
// selection with the range between the anchor and row. It reports whether
// the selection was extended.
func (s *Selection) Motion(row int, ok bool, mods Modifiers) bool {
	if s.pending != noRow && (!ok || row != s.pending) {
		s.pending = noRow
	}
	if !ok || !s.Dragging(mods) {
		return false
	}
	s.Range(row)
	return true
}

// Release handles the primary button release over row. It resolves a
// pending collapse and returns the click class whose hook should fire on
// row, or ClickNone.
func (s *Selection) Release(row int, ok bool) ClickClass {
	s.held = false
	fire := ClickNone
	if ok {
		switch {
		case s.double == row:
			fire = ClickDouble
		case s.single == row:
			fire = ClickSingle
		}
	}
	s.single, s.double = noRow, noRow

	if s.pending != noRow {
		p := s.pending
		s.pending = noRow
		s.Set(p)
	}
	s.pressRow = noRow
	return fire
}

// ── Direct operations ───────────────────────────────────────────────────────

// Set replaces the selection with exactly row and makes it the anchor.
func (s *Selection) Set(row int) {
	clear(s.restore)
	s.replace([]int{row})
	s.anchor = row
	s.lead = row
}

// SetRows replaces the selection with rows. The last row becomes the anchor;
// an empty list clears.
func (s *Selection) SetRows(rows ...int) {
	if len(rows) == 0 {
		s.Clear()
		return
	}
	clear(s.restore)
	s.replace(rows)
	s.anchor = rows[len(rows)-1]
	s.lead = s.anchor
}

// Toggle flips row's membership with ctrl-click semantics.
func (s *Selection) Toggle(row int) { s.ctrlPress(row) }

// Range replaces the selection with the contiguous rows between the anchor
// and row. Without an anchor it behaves like Set.
func (s *Selection) Range(row int) {
	if s.anchor == noRow {
		s.Set(row)
		return
	}
	lo, hi := s.anchor, row
	if lo > hi {
		lo, hi = hi, lo
	}
	span := make([]int, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		span = append(span, i)
	}
	s.replace(span)
	s.lead = row
}

// All selects rows [0, n). The anchor moves to row 0 when unset.
func (s *Selection) All(n int) {
	if n <= 0 {
		return
	}
	span := make([]int, n)
	for i := range span {
		span[i] = i
	}
	s.replace(span)
	if s.anchor == noRow || s.anchor >= n {
		s.anchor = 0
	}
	if s.lead == noRow || s.lead >= n {
		s.lead = n - 1
	}
}

// Clear deselects everything and forgets the anchor.
func (s *Selection) Clear() {
	clear(s.restore)
	s.replace(nil)
	s.anchor = noRow
	s.lead = noRow
}

// Remap rewrites every stored index after a structural change. Rows the
// remap drops leave the selection; an anchor on a dropped row becomes unset.
// No change notifications are sent for dropped rows: they no longer exist.
func (s *Selection) Remap(m Remap) {
	if m == nil {
		return
	}
	order := s.order[:0:0]
	member := make(map[int]struct{}, len(s.member))
	for _, r := range s.order {
		if n, ok := m(r); ok {
			order = append(order, n)
			member[n] = struct{}{}
		}
	}
	s.order, s.member = order, member

	remapOne := func(r int) int {
		if r == noRow {
			return noRow
		}
		if n, ok := m(r); ok {
			return n
		}
		return noRow
	}
	restore := make(map[int]int, len(s.restore))
	for row, prev := range s.restore {
		if n, ok := m(row); ok {
			restore[n] = remapOne(prev)
		}
	}
	s.restore = restore
	s.anchor = remapOne(s.anchor)
	s.lead = remapOne(s.lead)
	s.pressRow = remapOne(s.pressRow)
	s.pending = remapOne(s.pending)
	s.single = remapOne(s.single)
	s.double = remapOne(s.double)
}

// Bound drops every index >= n. Used when the owner cannot describe a change
// as a remap.
func (s *Selection) Bound(n int) {
	s.Remap(func(old int) (int, bool) { return old, old >= 0 && old < n })
}

// ── Internals ───────────────────────────────────────────────────────────────

func (s *Selection) shiftPress(row int) {
	if s.anchor == noRow {
		s.Set(row)
		return
	}
	s.Range(row)
}

func (s *Selection) ctrlPress(row int) {
	if !s.Contains(row) {
		if !s.multi {
			s.Set(row)
			return
		}
		s.restore[row] = s.anchor
		s.add(row)
		s.anchor = row
		s.lead = row
		return
	}
	s.remove(row)
	s.lead = row
	prev, hasPrev := s.restore[row]
	delete(s.restore, row)
	if row != s.anchor {
		return
	}
	switch n := len(s.order); {
	case hasPrev && prev != noRow && s.Contains(prev):
		s.anchor = prev
	case n > 0:
		s.anchor = s.order[n-1]
	default:
		s.anchor = noRow
	}
}

// replace swaps in rows as the new selection, notifying only rows whose
// membership changed.
func (s *Selection) replace(rows []int) {
	next := make(map[int]struct{}, len(rows))
	order := make([]int, 0, len(rows))
	for _, r := range rows {
		if _, dup := next[r]; dup {
			continue
		}
		next[r] = struct{}{}
		order = append(order, r)
	}
	for _, r := range s.order {
		if _, keep := next[r]; !keep {
			s.emit(r, false)
		}
	}
	for _, r := range order {
		if _, had := s.member[r]; !had {
			s.emit(r, true)
		}
	}
	s.order, s.member = order, next
}

func (s *Selection) add(row int) {
	s.member[row] = struct{}{}
	s.order = append(s.order, row)
	s.emit(row, true)
}

func (s *Selection) remove(row int) {
	delete(s.member, row)
	for i, r := range s.order {
		if r == row {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.emit(row, false)
}

func (s *Selection) emit(row int, selected bool) {
	if s.notify != nil {
		s.notify(row, selected)
	}
}
