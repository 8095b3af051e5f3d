// Package treeview implements the toolkit-independent core of a
// variable-height list widget: the row store and its cumulative-height
// index, the viewport mapper, the multi-row selection state machine, the
// edge auto-scroll controller and the redraw coalescer.
//
// Nothing in this package draws or reads input devices. A host toolkit feeds
// it pointer and key events (see Event), schedules the ticks it asks for
// (auto-scroll and redraw) and paints the rows reported by View.Visible.
// All methods are expected to run on the host's single UI goroutine.
package treeview
