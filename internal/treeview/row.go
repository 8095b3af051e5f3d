package treeview

// Row is one entry in the list. Height must be positive. Rows are used as
// map keys by the store and the redraw coalescer, so implementations must be
// comparable; pointer types are the usual choice.
type Row interface {
	Height() int
}

// Selectable rows are told when their selection state changes. The hooks
// fire only on real transitions, never for a row that stays selected.
type Selectable interface {
	Select()
	Unselect()
}

// Clickable rows receive click dispatch on button release. Exactly one of
// the two hooks fires per qualifying release.
type Clickable interface {
	SingleClick()
	DoubleClick()
}

// Attacher rows receive a handle to their owning view when added and lose
// it (nil) when removed. The handle replaces per-row callback attributes.
type Attacher interface {
	Attach(h Host)
}

// Host is the owning-context handle given to attached rows.
type Host interface {
	// RequestRedraw queues the row for the next coalesced repaint.
	RequestRedraw(r Row)
	// InsertAfter inserts rows directly below after. A nil after inserts at
	// the top.
	InsertAfter(after Row, rows ...Row) error
	// Remove deletes rows from the view. Unknown rows are ignored.
	Remove(rows ...Row) int
	// Resize re-reads the row's height after it changed.
	Resize(r Row) error
	// IndexOf reports the row's current position.
	IndexOf(r Row) (int, bool)
}
