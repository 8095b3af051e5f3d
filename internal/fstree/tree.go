// Package fstree provides filesystem rows for the list: directories expand
// and collapse in place by inserting and removing their children through
// the list's owning-context handle.
package fstree

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/rowview/internal/common"
	"github.com/Akashdeep-Patra/rowview/internal/source"
	"github.com/Akashdeep-Patra/rowview/internal/treeview"
	"github.com/agnivade/levenshtein"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Columns are the list column titles matching Node.Render.
var Columns = []string{"Name", "Lang", "Size"}

// DirWatcher follows expanded directories.
type DirWatcher interface {
	Add(dir string) error
	Remove(dir string) error
}

// Options configures a Tree.
type Options struct {
	Root       string
	Source     source.Source
	DetailRows bool
	Context    context.Context
	Logger     zerolog.Logger
}

// Tree owns the nodes shown in a list. The root directory itself is not a
// row; its entries are the top-level rows.
type Tree struct {
	src     source.Source
	ctx     context.Context
	detail  bool
	log     zerolog.Logger
	printer *message.Printer
	watcher DirWatcher

	root    *Node
	pending []tea.Cmd
}

// listedMsg delivers a directory listing to the node that asked for it.
type listedMsg struct {
	node    *Node
	entries []source.Entry
	err     error
	refresh bool
}

// New creates a tree rooted at opts.Root. Call Attach and then Load.
func New(opts Options) *Tree {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	root := filepath.Clean(opts.Root)
	t := &Tree{
		src:     opts.Source,
		ctx:     ctx,
		detail:  opts.DetailRows,
		log:     opts.Logger.With().Str("component", "fstree").Logger(),
		printer: message.NewPrinter(language.English),
	}
	t.root = &Node{
		tree:  t,
		entry: source.Entry{Name: filepath.Base(root), Path: root, IsDir: true},
		depth: -1,
	}
	return t
}

// Attach binds the tree to the list that displays it.
func (t *Tree) Attach(h treeview.Host) { t.root.host = h }

// SetWatcher registers w to follow expansions. Already expanded
// directories are added immediately.
func (t *Tree) SetWatcher(w DirWatcher) {
	t.watcher = w
	if w == nil {
		return
	}
	for _, dir := range t.ExpandedDirs() {
		t.watch(dir)
	}
}

// Root returns the root directory path.
func (t *Tree) Root() string { return t.root.entry.Path }

// Load lists the root directory and fills the list with its entries.
func (t *Tree) Load() tea.Cmd {
	t.root.loading = true
	return t.list(t.root, false)
}

// Refresh re-lists every expanded directory. Rows whose entries still exist
// keep their identity, so selection and expansion survive.
func (t *Tree) Refresh() tea.Cmd {
	var cmds []tea.Cmd
	t.walkExpanded(t.root, func(n *Node) {
		cmds = append(cmds, t.list(n, true))
	})
	return tea.Batch(cmds...)
}

// Loading reports whether any listing is in flight.
func (t *Tree) Loading() bool {
	loading := false
	t.walk(t.root, func(n *Node) {
		if n.loading {
			loading = true
		}
	})
	return loading || t.root.loading
}

// Update applies listings. Commands queued by row hooks are returned too.
func (t *Tree) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(listedMsg); ok {
		t.apply(msg)
	}
	return t.Drain()
}

// Drain returns and clears the commands queued by row hooks since the last
// call.
func (t *Tree) Drain() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := t.pending
	t.pending = nil
	return tea.Batch(cmds...)
}

// Nodes returns the nodes currently shown, in display order.
func (t *Tree) Nodes() []*Node {
	var out []*Node
	t.walk(t.root, func(n *Node) { out = append(out, n) })
	return out
}

// Selected returns the selected nodes in display order.
func (t *Tree) Selected() []*Node {
	var out []*Node
	t.walk(t.root, func(n *Node) {
		if n.selected {
			out = append(out, n)
		}
	})
	return out
}

// ExpandedDirs returns the root and every expanded directory.
func (t *Tree) ExpandedDirs() []string {
	var out []string
	t.walkExpanded(t.root, func(n *Node) { out = append(out, n.entry.Path) })
	return out
}

// Find returns the shown node whose name best matches query: an exact
// name first, then a prefix, then a substring, then the smallest edit
// distance. Ties go to the earlier row.
func (t *Tree) Find(query string) (*Node, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, false
	}
	var best *Node
	bestScore := 0
	t.walk(t.root, func(n *Node) {
		score := matchScore(strings.ToLower(n.entry.Name), q)
		if best == nil || score < bestScore {
			best, bestScore = n, score
		}
	})
	return best, best != nil
}

func matchScore(name, q string) int {
	switch {
	case name == q:
		return 0
	case strings.HasPrefix(name, q):
		return 1
	case strings.Contains(name, q):
		return 2
	}
	return 3 + levenshtein.ComputeDistance(name, q)
}

func (t *Tree) list(n *Node, refresh bool) tea.Cmd {
	ctx, src, dir := t.ctx, t.src, n.entry.Path
	return func() tea.Msg {
		entries, err := src.List(ctx, dir)
		return listedMsg{node: n, entries: entries, err: err, refresh: refresh}
	}
}

func (t *Tree) apply(msg listedMsg) {
	n := msg.node
	if !n.live() {
		return
	}
	if (!msg.refresh && !n.loading) || (msg.refresh && !n.expanded) {
		// Collapsed while the listing was in flight.
		return
	}
	n.loading = false
	if n != t.root {
		n.host.RequestRedraw(n)
	}

	if msg.err != nil {
		t.log.Warn().Err(msg.err).Str("dir", n.entry.Path).Msg("listing failed")
		n.err = msg.err
		t.emit(common.CmdErr(msg.err))
		return
	}
	n.err = nil

	wasExpanded := n.expanded
	if err := n.reconcile(msg.entries); err != nil {
		t.log.Error().Err(err).Str("dir", n.entry.Path).Msg("insert children")
		t.emit(common.CmdErr(err))
		return
	}
	if !wasExpanded {
		t.watch(n.entry.Path)
	}
	t.log.Debug().Str("dir", n.entry.Path).Int("entries", len(msg.entries)).Bool("refresh", msg.refresh).Msg("listed")
}

func (t *Tree) emit(cmd tea.Cmd) {
	if cmd != nil {
		t.pending = append(t.pending, cmd)
	}
}

func (t *Tree) watch(dir string) {
	if t.watcher == nil {
		return
	}
	if err := t.watcher.Add(dir); err != nil {
		t.log.Debug().Err(err).Str("dir", dir).Msg("watch")
	}
}

func (t *Tree) unwatch(dir string) {
	if t.watcher == nil {
		return
	}
	_ = t.watcher.Remove(dir)
}

// walk visits shown nodes below n in display order.
func (t *Tree) walk(n *Node, fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		t.walk(c, fn)
	}
}

// walkExpanded visits n, when expanded, and every expanded node below it.
func (t *Tree) walkExpanded(n *Node, fn func(*Node)) {
	if !n.expanded {
		return
	}
	fn(n)
	for _, c := range n.children {
		t.walkExpanded(c, fn)
	}
}
