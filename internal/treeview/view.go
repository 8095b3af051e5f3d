package treeview

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Options configures a View.
type Options struct {
	// MultiSelect enables ctrl/shift clicks and drag-extend.
	MultiSelect bool
	// DragSelect defers a plain press on an already selected row until
	// release, so a drag can start from an existing selection.
	DragSelect bool
	// EdgeBand is the auto-scroll band and per-tick nudge.
	EdgeBand int
	// HeaderHeight is the height of a header drawn above the rows inside
	// the viewport. Pointer y values include it.
	HeaderHeight int
	// AutoScrollInterval is the auto-scroll tick period.
	AutoScrollInterval time.Duration
	// RedrawInterval is the redraw coalescing period.
	RedrawInterval time.Duration
	// Logger receives debug events. Zero value discards.
	Logger zerolog.Logger
}

// DefaultOptions returns the stock widget behaviour.
func DefaultOptions() Options {
	return Options{
		MultiSelect:        true,
		DragSelect:         true,
		EdgeBand:           DefaultEdgeBand,
		AutoScrollInterval: DefaultAutoScrollInterval,
		RedrawInterval:     DefaultRedrawInterval,
		Logger:             zerolog.Nop(),
	}
}

// Button identifies a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
)

// Event is a pointer event in viewport coordinates: Y is measured from the
// top of the viewport, header included.
type Event struct {
	Button Button
	X, Y   int
	Mods   Modifiers
	Click  ClickClass
}

// View is the list widget core. It owns the rows, scroll state, selection,
// auto-scroll controller and redraw coalescer of one widget instance.
type View struct {
	opts   Options
	log    zerolog.Logger
	store  *Store
	scroll Scroll
	sel    *Selection
	auto   *AutoScroll
	redraw *Coalescer
	held   Modifiers
	host   *rowHost
}

// New creates a view holding rows.
func New(opts Options, rows ...Row) (*View, error) {
	v := &View{
		opts:   opts,
		log:    opts.Logger,
		store:  NewStore(),
		sel:    NewSelection(opts.MultiSelect, opts.DragSelect),
		auto:   NewAutoScroll(opts.EdgeBand, opts.HeaderHeight, opts.AutoScrollInterval),
		redraw: NewCoalescer(opts.RedrawInterval),
	}
	v.host = &rowHost{v: v}
	v.sel.OnChange(v.selectionChanged)
	if len(rows) > 0 {
		if err := v.AppendRows(rows...); err != nil {
			return nil, err
		}
	}
	return v, nil
}

// ── Rows ────────────────────────────────────────────────────────────────────

// Len returns the number of rows.
func (v *View) Len() int { return v.store.Len() }

// Row returns the row at i.
func (v *View) Row(i int) (Row, bool) { return v.store.Row(i) }

// Rows returns a copy of the row sequence.
func (v *View) Rows() []Row { return v.store.Rows() }

// IndexOf returns the current index of r.
func (v *View) IndexOf(r Row) (int, bool) { return v.store.IndexOf(r) }

// Top returns the content offset of row i's top edge.
func (v *View) Top(i int) int { return v.store.Top(i) }

// HeightOf returns the height of row i.
func (v *View) HeightOf(i int) int { return v.store.HeightOf(i) }

// AppendRows adds rows at the end.
func (v *View) AppendRows(rows ...Row) error {
	return v.AddRows(rows, v.store.Len())
}

// AddRows inserts rows at pos. Selection and anchor follow their rows.
func (v *View) AddRows(rows []Row, pos int) error {
	if len(rows) == 0 {
		return nil
	}
	remap, err := v.store.Insert(pos, rows...)
	if err != nil {
		return fmt.Errorf("add rows: %w", err)
	}
	v.sel.Remap(remap)
	for _, r := range rows {
		if a, ok := r.(Attacher); ok {
			a.Attach(v.host)
		}
	}
	v.structureChanged()
	v.log.Debug().Int("pos", pos).Int("count", len(rows)).Int("total", v.store.Len()).Msg("rows added")
	return nil
}

// DeleteRows removes rows and prunes them from the selection. It returns
// how many rows were removed.
func (v *View) DeleteRows(rows ...Row) int {
	removed, remap := v.store.Remove(rows...)
	if len(removed) == 0 {
		return 0
	}
	v.sel.Remap(remap)
	for _, r := range removed {
		if a, ok := r.(Attacher); ok {
			a.Attach(nil)
		}
	}
	v.structureChanged()
	v.log.Debug().Int("count", len(removed)).Int("total", v.store.Len()).Msg("rows deleted")
	return len(removed)
}

// ResizeRow re-reads r's height.
func (v *View) ResizeRow(r Row) error {
	delta, err := v.store.Resize(r)
	if err != nil {
		return fmt.Errorf("resize row: %w", err)
	}
	if delta != 0 {
		v.scroll.SetTotal(v.store.TotalHeight())
		v.redraw.Invalidate()
	}
	return nil
}

func (v *View) structureChanged() {
	v.scroll.SetTotal(v.store.TotalHeight())
	v.redraw.Invalidate()
}

// ── Viewport ────────────────────────────────────────────────────────────────

// SetPageSize sets the height of the row area (viewport minus header).
func (v *View) SetPageSize(page int) {
	v.scroll.SetPage(page)
	v.redraw.Invalidate()
}

// Scroll returns a copy of the scroll state.
func (v *View) Scroll() Scroll { return v.scroll }

// ScrollTo moves the viewport to offset, clamped.
func (v *View) ScrollTo(offset int) bool {
	if v.scroll.SetOffset(offset) {
		v.redraw.Invalidate()
		return true
	}
	return false
}

// ScrollBy moves the viewport by delta, clamped.
func (v *View) ScrollBy(delta int) bool {
	return v.ScrollTo(v.scroll.Offset() + delta)
}

// Visible returns the rows intersecting the page and the content offset of
// the first one.
func (v *View) Visible() (first, last, top int, ok bool) {
	return v.store.VisibleRange(v.scroll.Offset(), v.scroll.Page())
}

// RowAtCoordinate returns the row at content coordinate y.
func (v *View) RowAtCoordinate(y int) (int, bool) {
	return v.store.RowAt(y)
}

// EventRow returns the row under the pointer. Pointers over the header have
// no row.
func (v *View) EventRow(ev Event) (int, bool) {
	return v.rowAtViewportY(ev.Y)
}

func (v *View) rowAtViewportY(y int) (int, bool) {
	if y < v.opts.HeaderHeight {
		return 0, false
	}
	return v.store.RowAt(v.scroll.Offset() + y - v.opts.HeaderHeight)
}

// EnsureVisible scrolls so row i is in view.
func (v *View) EnsureVisible(i int) {
	if i < 0 || i >= v.store.Len() {
		return
	}
	if v.scroll.EnsureVisible(v.store.Top(i), v.store.HeightOf(i)) {
		v.redraw.Invalidate()
	}
}

// ── Selection ───────────────────────────────────────────────────────────────

// Selected returns the selected rows in ascending order.
func (v *View) Selected() []int { return v.sel.Rows() }

// IsSelected reports whether row i is selected.
func (v *View) IsSelected(i int) bool { return v.sel.Contains(i) }

// Anchor returns the range pivot.
func (v *View) Anchor() (int, bool) { return v.sel.Anchor() }

// Cursor returns the keyboard cursor row.
func (v *View) Cursor() (int, bool) { return v.sel.Lead() }

// SelectRows replaces the selection. Out-of-range indices are ignored.
func (v *View) SelectRows(rows ...int) {
	valid := rows[:0:0]
	for _, r := range rows {
		if r >= 0 && r < v.store.Len() {
			valid = append(valid, r)
		}
	}
	v.sel.SetRows(valid...)
}

// SelectAll selects every row.
func (v *View) SelectAll() {
	if v.opts.MultiSelect {
		v.sel.All(v.store.Len())
	}
}

// ClearSelection deselects every row.
func (v *View) ClearSelection() { v.sel.Clear() }

// ToggleRow flips row i with ctrl-click semantics.
func (v *View) ToggleRow(i int) {
	if i >= 0 && i < v.store.Len() {
		v.sel.Toggle(i)
	}
}

// MoveCursor moves the keyboard cursor by delta rows. With extend the
// selection grows from the anchor as with shift-click; otherwise the target
// row becomes the only selection.
func (v *View) MoveCursor(delta int, extend bool) {
	n := v.store.Len()
	if n == 0 {
		return
	}
	target := 0
	if cur, ok := v.sel.Lead(); ok && cur < n {
		target = cur + delta
	} else if delta < 0 {
		target = n - 1
	}
	if target < 0 {
		target = 0
	}
	if target >= n {
		target = n - 1
	}
	if extend && v.opts.MultiSelect {
		v.sel.Range(target)
	} else {
		v.sel.Set(target)
	}
	v.EnsureVisible(target)
}

// SetModifier records a modifier key press or release. Held modifiers are
// merged with the modifiers carried by pointer events.
func (v *View) SetModifier(m Modifiers, down bool) {
	if down {
		v.held |= m
	} else {
		v.held &^= m
	}
}

func (v *View) mods(ev Event) Modifiers { return ev.Mods | v.held }

// ── Pointer events ──────────────────────────────────────────────────────────

// Press handles a button press. Only the primary button selects.
func (v *View) Press(ev Event) {
	if ev.Button != ButtonPrimary {
		return
	}
	row, ok := v.EventRow(ev)
	v.sel.Press(row, ok, v.mods(ev), ev.Click)
	v.log.Debug().Int("row", row).Bool("hit", ok).Str("click", ev.Click.String()).Msg("press")
}

// Motion handles pointer movement. When a drag-extend is in progress near an
// edge it returns the auto-scroll tick the host must schedule.
func (v *View) Motion(ev Event) (Tick, bool) {
	v.auto.Cancel()
	mods := v.mods(ev)
	row, ok := v.EventRow(ev)
	v.sel.Motion(row, ok, mods)
	if !v.sel.Dragging(mods) {
		return Tick{}, false
	}
	if !ok {
		// Over the header or past the rows: follow the nearest visible row.
		if r, hit := v.rowAtViewportY(v.clampPointer(ev.Y)); hit {
			v.sel.Range(r)
		}
	}
	return v.auto.Arm(ev.Y, v.scroll.Page())
}

// Release handles a button release, cancels auto-scroll and dispatches the
// click hook. It returns the class that fired.
func (v *View) Release(ev Event) ClickClass {
	v.auto.Cancel()
	if ev.Button != ButtonPrimary && ev.Button != ButtonNone {
		return ClickNone
	}
	row, ok := v.EventRow(ev)
	fire := v.sel.Release(row, ok)
	if fire == ClickNone {
		return fire
	}
	r, _ := v.store.Row(row)
	if c, isClickable := r.(Clickable); isClickable {
		v.log.Debug().Int("row", row).Str("click", fire.String()).Msg("dispatch")
		if fire == ClickDouble {
			c.DoubleClick()
		} else {
			c.SingleClick()
		}
	}
	return fire
}

// AutoScrollTick handles a delivered auto-scroll tick. When current it
// nudges the offset, re-evaluates the drag range against the row now under
// the pointer and returns the next tick.
func (v *View) AutoScrollTick(gen uint64) (Tick, bool) {
	next, ok := v.auto.Fire(gen)
	if !ok {
		return Tick{}, false
	}
	if !v.sel.Dragging(v.held) {
		v.auto.Cancel()
		return Tick{}, false
	}
	v.ScrollBy(v.auto.Nudge())
	if row, hit := v.rowAtViewportY(v.clampPointer(v.auto.PointerY())); hit {
		v.sel.Range(row)
	}
	return next, true
}

// clampPointer keeps a pointer that left the viewport on its first or last
// row line so the range keeps following the scroll.
func (v *View) clampPointer(y int) int {
	lo := v.opts.HeaderHeight
	hi := v.opts.HeaderHeight + v.scroll.Page() - 1
	if y < lo {
		return lo
	}
	if y > hi && hi >= lo {
		return hi
	}
	return y
}

// AutoScrolling reports whether an auto-scroll loop is live.
func (v *View) AutoScrolling() bool { return v.auto.Active() }

// ── Redraw ──────────────────────────────────────────────────────────────────

// RequestRedraw queues r for the next coalesced repaint.
func (v *View) RequestRedraw(r Row) { v.redraw.Mark(r) }

// Flush is called on every redraw tick. It reports whether a repaint is due.
func (v *View) Flush() bool { return v.redraw.Flush() }

// RedrawInterval returns the redraw tick period.
func (v *View) RedrawInterval() time.Duration { return v.redraw.Interval() }

// Host returns the owning-context handle given to attached rows.
func (v *View) Host() Host { return v.host }

func (v *View) selectionChanged(i int, selected bool) {
	r, ok := v.store.Row(i)
	if !ok {
		return
	}
	if s, isSelectable := r.(Selectable); isSelectable {
		if selected {
			s.Select()
		} else {
			s.Unselect()
		}
	}
	v.redraw.Mark(r)
}

// rowHost is the Host handed to attached rows.
type rowHost struct {
	v *View
}

func (h *rowHost) RequestRedraw(r Row) { h.v.RequestRedraw(r) }

func (h *rowHost) InsertAfter(after Row, rows ...Row) error {
	pos := 0
	if after != nil {
		i, ok := h.v.store.IndexOf(after)
		if !ok {
			return fmt.Errorf("insert after: %w", ErrUnknownRow)
		}
		pos = i + 1
	}
	return h.v.AddRows(rows, pos)
}

func (h *rowHost) Remove(rows ...Row) int { return h.v.DeleteRows(rows...) }

func (h *rowHost) Resize(r Row) error { return h.v.ResizeRow(r) }

func (h *rowHost) IndexOf(r Row) (int, bool) { return h.v.store.IndexOf(r) }
