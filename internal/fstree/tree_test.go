package fstree

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/rowview/internal/common"
	"github.com/Akashdeep-Patra/rowview/internal/source"
	"github.com/Akashdeep-Patra/rowview/internal/treeview"
	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/Akashdeep-Patra/rowview/internal/ui/listview"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	dirs map[string][]source.Entry
	errs map[string]error
}

func (f *fakeSource) List(_ context.Context, dir string) ([]source.Entry, error) {
	if err := f.errs[dir]; err != nil {
		return nil, err
	}
	return slices.Clone(f.dirs[dir]), nil
}

func dirEntry(parent, name string) source.Entry {
	return source.Entry{Name: name, Path: parent + "/" + name, IsDir: true}
}

func fileEntry(parent, name string, size int64) source.Entry {
	return source.Entry{Name: name, Path: parent + "/" + name, Size: size}
}

func newSource() *fakeSource {
	return &fakeSource{
		dirs: map[string][]source.Entry{
			"/r":       {dirEntry("/r", "a"), dirEntry("/r", "b"), fileEntry("/r", "x.txt", 1234)},
			"/r/a":     {dirEntry("/r/a", "sub"), fileEntry("/r/a", "one.txt", 1)},
			"/r/a/sub": {fileEntry("/r/a/sub", "deep.txt", 2)},
		},
		errs: map[string]error{},
	}
}

type fakeWatcher struct {
	added   []string
	removed []string
}

func (w *fakeWatcher) Add(dir string) error {
	w.added = append(w.added, dir)
	return nil
}

func (w *fakeWatcher) Remove(dir string) error {
	w.removed = append(w.removed, dir)
	return nil
}

// run executes cmd and everything it leads to, feeding listings back into
// the tree. Other messages are returned.
func run(tr *Tree, cmd tea.Cmd) []tea.Msg {
	var out []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case listedMsg:
			queue = append(queue, tr.Update(msg))
		default:
			out = append(out, msg)
		}
	}
	return out
}

func setup(t *testing.T, src source.Source, detail bool, w DirWatcher) (*Tree, *treeview.View) {
	t.Helper()
	v, err := treeview.New(treeview.DefaultOptions())
	require.NoError(t, err)
	tr := New(Options{Root: "/r", Source: src, DetailRows: detail})
	tr.Attach(v.Host())
	if w != nil {
		tr.SetWatcher(w)
	}
	run(tr, tr.Load())
	return tr, v
}

func rowNames(v *treeview.View) []string {
	var out []string
	for _, r := range v.Rows() {
		n := r.(*Node)
		name := n.Name()
		if n.IsDir() {
			name += "/"
		}
		out = append(out, strings.Repeat("  ", n.Depth())+name)
	}
	return out
}

func node(t *testing.T, v *treeview.View, i int) *Node {
	t.Helper()
	r, ok := v.Row(i)
	require.True(t, ok)
	return r.(*Node)
}

func TestLoadFillsTopLevel(t *testing.T) {
	tr, v := setup(t, newSource(), false, nil)
	assert.Equal(t, []string{"a/", "b/", "x.txt"}, rowNames(v))
	assert.Equal(t, "/r", tr.Root())
	assert.False(t, tr.Loading())
	assert.Equal(t, []string{"/r"}, tr.ExpandedDirs())
}

func TestExpandAndCollapse(t *testing.T) {
	w := &fakeWatcher{}
	tr, v := setup(t, newSource(), false, w)

	node(t, v, 0).DoubleClick()
	assert.True(t, tr.Loading())
	run(tr, tr.Drain())
	assert.Equal(t, []string{"a/", "  sub/", "  one.txt", "b/", "x.txt"}, rowNames(v))

	node(t, v, 1).Toggle()
	run(tr, tr.Drain())
	assert.Equal(t, []string{"a/", "  sub/", "    deep.txt", "  one.txt", "b/", "x.txt"}, rowNames(v))
	assert.Equal(t, []string{"/r", "/r/a", "/r/a/sub"}, tr.ExpandedDirs())

	node(t, v, 0).DoubleClick()
	assert.Equal(t, []string{"a/", "b/", "x.txt"}, rowNames(v))
	assert.False(t, node(t, v, 0).Expanded())
	assert.Equal(t, []string{"/r", "/r/a", "/r/a/sub"}, w.added)
	assert.ElementsMatch(t, []string{"/r/a", "/r/a/sub"}, w.removed)
	assert.Equal(t, 3, v.Scroll().Total())
}

func TestExpandKeepsSelectionOnItsRow(t *testing.T) {
	tr, v := setup(t, newSource(), false, nil)

	v.SelectRows(1)
	node(t, v, 0).Expand()
	run(tr, tr.Drain())

	assert.Equal(t, []int{3}, v.Selected())
	sel := tr.Selected()
	require.Len(t, sel, 1)
	assert.Equal(t, "b", sel[0].Name())
}

func TestCollapseDropsSelectedDescendants(t *testing.T) {
	tr, v := setup(t, newSource(), false, nil)
	node(t, v, 0).Expand()
	run(tr, tr.Drain())

	v.SelectRows(2, 4)
	node(t, v, 0).Collapse()
	assert.Equal(t, []int{2}, v.Selected(), "x.txt survives at its new index")
	_, ok := v.Anchor()
	assert.True(t, ok)
}

func TestRefreshReconciles(t *testing.T) {
	src := newSource()
	tr, v := setup(t, src, false, nil)
	node(t, v, 0).Expand()
	run(tr, tr.Drain())
	node(t, v, 1).Expand()
	run(tr, tr.Drain())
	v.SelectRows(3, 5)

	src.dirs["/r"] = []source.Entry{dirEntry("/r", "a"), dirEntry("/r", "b"), dirEntry("/r", "c"), fileEntry("/r", "x.txt", 1234)}
	src.dirs["/r/a"] = []source.Entry{dirEntry("/r/a", "sub"), fileEntry("/r/a", "new.txt", 5)}

	run(tr, tr.Refresh())
	assert.Equal(t, []string{"a/", "  sub/", "    deep.txt", "  new.txt", "b/", "c/", "x.txt"}, rowNames(v))
	assert.Equal(t, []int{6}, v.Selected(), "one.txt dropped, x.txt followed its row")
	assert.True(t, node(t, v, 1).Expanded(), "expansion survives refresh")
}

func TestRefreshRemovesVanishedSubtree(t *testing.T) {
	src := newSource()
	tr, v := setup(t, src, false, nil)
	node(t, v, 0).Expand()
	run(tr, tr.Drain())

	src.dirs["/r"] = []source.Entry{dirEntry("/r", "b"), fileEntry("/r", "x.txt", 1234)}
	run(tr, tr.Refresh())
	assert.Equal(t, []string{"b/", "x.txt"}, rowNames(v))
	assert.Equal(t, []string{"/r"}, tr.ExpandedDirs())
}

func TestCollapseWhileLoadingDropsListing(t *testing.T) {
	tr, v := setup(t, newSource(), false, nil)

	a := node(t, v, 0)
	a.DoubleClick()
	pending := tr.Drain()
	a.DoubleClick()
	assert.False(t, tr.Loading())

	run(tr, pending)
	assert.Equal(t, []string{"a/", "b/", "x.txt"}, rowNames(v))
	assert.False(t, a.Expanded())
}

func TestListingErrorIsReported(t *testing.T) {
	src := newSource()
	src.errs["/r/b"] = errors.New("permission denied")
	tr, v := setup(t, src, false, nil)

	b := node(t, v, 1)
	b.Expand()
	msgs := run(tr, tr.Drain())
	require.Len(t, msgs, 1)
	errMsg, ok := msgs[0].(common.ErrMsg)
	require.True(t, ok)
	assert.EqualError(t, errMsg.Err, "permission denied")
	assert.False(t, b.Expanded())
	assert.False(t, tr.Loading())
}

func TestClickMessages(t *testing.T) {
	tr, v := setup(t, newSource(), false, nil)

	x := node(t, v, 2)
	x.SingleClick()
	msgs := run(tr, tr.Drain())
	require.Len(t, msgs, 1)
	assert.Equal(t, common.InfoMsg{Text: "x.txt  1,234 bytes"}, msgs[0])

	x.DoubleClick()
	msgs = run(tr, tr.Drain())
	require.Len(t, msgs, 1)
	assert.Equal(t, common.OpenMsg{Path: "/r/x.txt"}, msgs[0])

	node(t, v, 0).SingleClick()
	msgs = run(tr, tr.Drain())
	assert.Equal(t, []tea.Msg{common.InfoMsg{Text: "a/"}}, msgs)
}

func TestDetailRowsUseTwoLines(t *testing.T) {
	tr, v := setup(t, newSource(), true, nil)
	assert.Equal(t, 2, v.HeightOf(0))
	assert.Equal(t, 1, v.HeightOf(2))
	assert.Equal(t, 5, v.Scroll().Total())

	styles := ui.DefaultStyles()
	layout := listview.Layout{Width: 30, Columns: []int{20, 4, 4}}
	out := node(t, v, 0).Render(layout, listview.RowState{}, styles)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "▸ a/")
	assert.Contains(t, lines[1], "not loaded")

	node(t, v, 0).Expand()
	run(tr, tr.Drain())
	out = node(t, v, 0).Render(layout, listview.RowState{Selected: true, Cursor: true}, styles)
	assert.Contains(t, out, "▾ a/")
	assert.Contains(t, out, "1 dirs, 1 files")
	assert.Contains(t, out, "›")
}

func TestRenderFileColumns(t *testing.T) {
	_, v := setup(t, newSource(), false, nil)
	x := node(t, v, 2)

	assert.Equal(t, []int{len("  x.txt"), 0, len("1.2K")}, x.ColumnWidths())
	out := x.Render(listview.Layout{Width: 20, Columns: []int{14, 0, 4}}, listview.RowState{}, ui.DefaultStyles())
	assert.Contains(t, out, "x.txt")
	assert.Contains(t, out, "1.2K")
	assert.Equal(t, 20, ui.TextWidth(out))
}

func TestFind(t *testing.T) {
	tr, _ := setup(t, newSource(), false, nil)

	tests := []struct {
		query string
		want  string
	}{
		{"x.txt", "x.txt"},
		{"B", "b"},
		{"x.t", "x.txt"},
		{"txt", "x.txt"},
		{"zzz", "a"},
	}
	for _, tt := range tests {
		n, ok := tr.Find(tt.query)
		require.True(t, ok, tt.query)
		assert.Equal(t, tt.want, n.Name(), tt.query)
	}

	_, ok := tr.Find("  ")
	assert.False(t, ok)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "0B", humanSize(0))
	assert.Equal(t, "1023B", humanSize(1023))
	assert.Equal(t, "1.0K", humanSize(1024))
	assert.Equal(t, "1.5M", humanSize(1536*1024))
}
