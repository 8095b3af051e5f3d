package fstree

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/rowview/internal/common"
	"github.com/Akashdeep-Patra/rowview/internal/source"
	"github.com/Akashdeep-Patra/rowview/internal/treeview"
	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/Akashdeep-Patra/rowview/internal/ui/listview"
)

// Node is one file or directory row.
type Node struct {
	tree   *Tree
	entry  source.Entry
	depth  int
	parent *Node
	host   treeview.Host

	expanded bool
	loading  bool
	selected bool
	err      error
	children []*Node
}

// Compile-time checks.
var (
	_ listview.Item       = (*Node)(nil)
	_ treeview.Selectable = (*Node)(nil)
	_ treeview.Clickable  = (*Node)(nil)
	_ treeview.Attacher   = (*Node)(nil)
)

func (t *Tree) newNode(e source.Entry, parent *Node) *Node {
	return &Node{tree: t, entry: e, depth: parent.depth + 1, parent: parent}
}

// Entry returns the listed entry behind the row.
func (n *Node) Entry() source.Entry { return n.entry }

// Name returns the entry name.
func (n *Node) Name() string { return n.entry.Name }

// Path returns the entry path.
func (n *Node) Path() string { return n.entry.Path }

// IsDir reports whether the row is a directory.
func (n *Node) IsDir() bool { return n.entry.IsDir }

// Expanded reports whether the directory's children are shown.
func (n *Node) Expanded() bool { return n.expanded }

// Depth is 0 for entries of the root directory.
func (n *Node) Depth() int { return n.depth }

// Height is two lines for directories when detail rows are on.
func (n *Node) Height() int {
	if n.entry.IsDir && n.tree.detail {
		return 2
	}
	return 1
}

// Attach is called by the list when the row is added (h set) or removed
// (h nil).
func (n *Node) Attach(h treeview.Host) { n.host = h }

// Select implements treeview.Selectable.
func (n *Node) Select() { n.selected = true }

// Unselect implements treeview.Selectable.
func (n *Node) Unselect() { n.selected = false }

// SingleClick shows the entry's details in the status bar.
func (n *Node) SingleClick() {
	e := n.entry
	p := n.tree.printer
	var text string
	switch {
	case e.IsDir && n.expanded:
		text = p.Sprintf("%s/  %d entries", e.Name, len(n.children))
	case e.IsDir:
		text = e.Name + "/"
	case e.Language != "":
		text = p.Sprintf("%s  %d bytes  %s", e.Name, e.Size, e.Language)
	default:
		text = p.Sprintf("%s  %d bytes", e.Name, e.Size)
	}
	n.tree.emit(common.CmdInfo(text))
}

// DoubleClick toggles a directory and opens a file.
func (n *Node) DoubleClick() {
	if n.entry.IsDir {
		n.Toggle()
		return
	}
	n.tree.emit(common.CmdOpen(n.entry.Path))
}

// Toggle expands a collapsed directory and collapses an expanded one.
func (n *Node) Toggle() {
	if !n.entry.IsDir || !n.live() {
		return
	}
	if n.expanded || n.loading {
		n.Collapse()
		return
	}
	n.Expand()
}

// Expand starts listing the directory; children are inserted below the row
// when the listing arrives.
func (n *Node) Expand() {
	if !n.entry.IsDir || n.expanded || n.loading || !n.live() {
		return
	}
	n.loading = true
	n.host.RequestRedraw(n)
	n.tree.emit(n.tree.list(n, false))
}

// Collapse removes every descendant row.
func (n *Node) Collapse() {
	if !n.live() || (!n.expanded && !n.loading) {
		return
	}
	var rows []treeview.Row
	for _, c := range n.children {
		rows = append(rows, c.subtree()...)
		c.forget()
	}
	if len(rows) > 0 {
		n.host.Remove(rows...)
	}
	if n.expanded {
		n.tree.unwatch(n.entry.Path)
	}
	n.children = nil
	n.expanded = false
	n.loading = false
	n.host.RequestRedraw(n)
}

// live reports whether the node is displayed (or is the attached root).
func (n *Node) live() bool { return n.host != nil }

// subtree returns n and every shown descendant in display order.
func (n *Node) subtree() []treeview.Row {
	rows := []treeview.Row{n}
	for _, c := range n.children {
		rows = append(rows, c.subtree()...)
	}
	return rows
}

// last returns the bottom row of n's shown subtree.
func (n *Node) last() *Node {
	if len(n.children) == 0 {
		return n
	}
	return n.children[len(n.children)-1].last()
}

// forget marks a subtree that is about to be removed as collapsed.
func (n *Node) forget() {
	for _, c := range n.children {
		c.forget()
	}
	if n.expanded {
		n.tree.unwatch(n.entry.Path)
	}
	n.children = nil
	n.expanded = false
	n.loading = false
}

// reconcile makes n's children match entries. Children whose path still
// exists are kept with their subtree; vanished ones are removed; new ones
// are inserted in listing order.
func (n *Node) reconcile(entries []source.Entry) error {
	existing := make(map[string]*Node, len(n.children))
	for _, c := range n.children {
		existing[c.entry.Path] = c
	}

	next := make([]*Node, 0, len(entries))
	for _, e := range entries {
		if c, ok := existing[e.Path]; ok && c.entry.IsDir == e.IsDir {
			delete(existing, e.Path)
			c.entry = e
			n.host.RequestRedraw(c)
			next = append(next, c)
			continue
		}
		next = append(next, n.tree.newNode(e, n))
	}

	var gone []treeview.Row
	for _, c := range n.children {
		if _, ok := existing[c.entry.Path]; ok {
			gone = append(gone, c.subtree()...)
			c.forget()
		}
	}
	if len(gone) > 0 {
		n.host.Remove(gone...)
	}

	n.children = next
	n.expanded = true

	var after treeview.Row
	if n.depth >= 0 {
		after = n
	}
	var batch []treeview.Row
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := n.host.InsertAfter(after, batch...); err != nil {
			return err
		}
		after = batch[len(batch)-1]
		batch = nil
		return nil
	}
	for _, c := range next {
		if c.live() {
			if err := flush(); err != nil {
				return err
			}
			after = c.last()
			continue
		}
		batch = append(batch, c)
	}
	return flush()
}

// ── Rendering ───────────────────────────────────────────────────────────────

// ColumnWidths reports the name (with indentation), language and size widths.
func (n *Node) ColumnWidths() []int {
	return []int{
		ui.TextWidth(n.nameText()),
		ui.TextWidth(n.entry.Language),
		ui.TextWidth(n.sizeText()),
	}
}

// Render draws the row. Directories with detail rows get a summary line.
func (n *Node) Render(l listview.Layout, state listview.RowState, styles ui.Styles) string {
	widths := append([]int(nil), l.Columns...)
	for len(widths) < len(Columns) {
		widths = append(widths, 0)
	}

	gutter := " "
	if state.Cursor {
		gutter = "›"
	}
	nameW := max(widths[0]-1, 0)
	name := ui.Fit(n.nameText(), nameW)
	lang := ui.Fit(n.entry.Language, widths[1])
	size := ui.FitLeft(n.sizeText(), widths[2])

	var first string
	if state.Selected {
		first = styles.RowSelected.Render(ui.Fit(gutter+name+" "+lang+" "+size, l.Width))
	} else {
		nameStyle := styles.File
		switch {
		case n.entry.Vendored:
			nameStyle = styles.Vendored
		case n.entry.IsDir:
			nameStyle = styles.Directory
		}
		first = styles.RowCursor.Render(gutter) + nameStyle.Render(name) + " " +
			styles.Language.Render(lang) + " " + styles.Muted.Render(size)
	}

	if n.Height() == 1 {
		return first
	}

	detail := ui.Fit(" "+strings.Repeat("  ", n.depth+1)+"  "+n.summary(), l.Width)
	if state.Selected {
		detail = styles.RowSelected.Render(detail)
	} else {
		detail = styles.Detail.Render(detail)
	}
	return first + "\n" + detail
}

func (n *Node) nameText() string {
	marker := "  "
	switch {
	case n.loading:
		marker = "⋯ "
	case n.entry.IsDir && n.expanded:
		marker = "▾ "
	case n.entry.IsDir:
		marker = "▸ "
	}
	name := n.entry.Name
	if n.entry.IsDir {
		name += "/"
	}
	return strings.Repeat("  ", n.depth) + marker + name
}

func (n *Node) sizeText() string {
	if n.entry.IsDir {
		return ""
	}
	return humanSize(n.entry.Size)
}

func (n *Node) summary() string {
	switch {
	case n.err != nil:
		return "unreadable: " + n.err.Error()
	case n.loading:
		return "loading…"
	case !n.expanded:
		return "not loaded"
	}
	dirs, files := 0, 0
	for _, c := range n.children {
		if c.entry.IsDir {
			dirs++
		} else {
			files++
		}
	}
	return n.tree.printer.Sprintf("%d dirs, %d files", dirs, files)
}

func humanSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%dB", b)
	}
	div, exp := int64(unit), 0
	for m := b / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f%c", float64(b)/float64(div), "KMGTPE"[exp])
}
