package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/rowview/internal/common"
	"github.com/Akashdeep-Patra/rowview/internal/config"
	"github.com/Akashdeep-Patra/rowview/internal/source"
	"github.com/Akashdeep-Patra/rowview/internal/watcher"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	dirs  map[string][]source.Entry
	calls map[string]int
}

func (f *fakeSource) List(_ context.Context, dir string) ([]source.Entry, error) {
	f.calls[dir]++
	entries, ok := f.dirs[dir]
	if !ok {
		return nil, errors.New("no such directory")
	}
	return append([]source.Entry(nil), entries...), nil
}

func newSource() *fakeSource {
	return &fakeSource{
		dirs: map[string][]source.Entry{
			"/r": {
				{Name: "a", Path: "/r/a", IsDir: true},
				{Name: "b", Path: "/r/b", IsDir: true},
				{Name: "x.txt", Path: "/r/x.txt", Size: 1234},
			},
			"/r/a": {{Name: "one.txt", Path: "/r/a/one.txt", Size: 1}},
		},
		calls: map[string]int{},
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.CacheTTL = time.Minute
	cfg.DetailRows = false
	return cfg
}

// drive runs cmd and everything it leads to through the model, returning
// the final model and the messages that were produced.
func drive(m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	var msgs []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		msgs = append(msgs, msg)
		next, nextCmd := m.Update(msg)
		m = next.(Model)
		queue = append(queue, nextCmd)
	}
	return m, msgs
}

func setup(t *testing.T, src *fakeSource) Model {
	t.Helper()
	m, err := New(Options{Root: "/r", Config: testConfig(), Source: src})
	require.NoError(t, err)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 8})
	m = next.(Model)
	m, _ = drive(m, m.Tree().Load())
	m.List().Invalidate()
	return m
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestViewShowsRowsAndStatus(t *testing.T) {
	m := setup(t, newSource())

	out := m.View()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, out, "a/")
	assert.Contains(t, out, "x.txt")
	assert.Contains(t, lines[7], "3 rows")
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m, err := New(Options{Root: "/r", Config: testConfig(), Source: newSource()})
	require.NoError(t, err)
	assert.Empty(t, m.View())
}

func TestClickShowsEntryInfo(t *testing.T) {
	m := setup(t, newSource())

	m, _ = update(m, tea.MouseMsg{X: 3, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, cmd := update(m, tea.MouseMsg{X: 3, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	m, msgs := drive(m, cmd)

	assert.Contains(t, msgs, tea.Msg(common.InfoMsg{Text: "x.txt  1,234 bytes"}))
	assert.Equal(t, []int{2}, m.List().Widget().Selected())
	assert.Contains(t, m.statusData().Message, "1,234 bytes")
	assert.Equal(t, "x.txt", m.statusData().Cursor)
}

func TestPressOnStatusLineIsIgnored(t *testing.T) {
	m := setup(t, newSource())
	m.List().Widget().SelectRows(1)

	m, _ = update(m, tea.MouseMsg{X: 3, Y: 7, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	assert.Equal(t, []int{1}, m.List().Widget().Selected())
}

func TestEnterExpandsDirectory(t *testing.T) {
	m := setup(t, newSource())
	m.List().Widget().SelectRows(0)

	m, cmd := update(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = drive(m, cmd)

	assert.Equal(t, 4, m.List().Widget().Len())
	assert.Equal(t, []string{"/r", "/r/a"}, m.Tree().ExpandedDirs())
}

func TestFindSelectsBestMatch(t *testing.T) {
	m := setup(t, newSource())

	m, _ = update(m, runes("/"))
	require.True(t, m.finding)
	m, _ = update(m, runes("x"))
	assert.Equal(t, []int{2}, m.List().Widget().Selected())
	assert.Contains(t, m.View(), "/x")

	m, _ = update(m, runes("q"))
	assert.True(t, m.finding, "q is typed into the prompt, not quit")
	selected := m.List().Widget().Selected()

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.finding)
	assert.Equal(t, selected, m.List().Widget().Selected())
}

func TestRefreshRelistsThroughCache(t *testing.T) {
	src := newSource()
	m := setup(t, src)
	require.Equal(t, 1, src.calls["/r"])

	src.dirs["/r"] = append(src.dirs["/r"], source.Entry{Name: "y.txt", Path: "/r/y.txt"})
	m, cmd := update(m, runes("r"))
	m, _ = drive(m, cmd)

	assert.Equal(t, 2, src.calls["/r"])
	assert.Equal(t, 4, m.List().Widget().Len())
}

func TestWatchEventForgetsChangedDirs(t *testing.T) {
	src := newSource()
	m := setup(t, src)

	src.dirs["/r"] = src.dirs["/r"][:2]
	m, cmd := update(m, watcher.Event{Dirs: []string{"/r"}})
	m, _ = drive(m, cmd)

	assert.Equal(t, 2, src.calls["/r"])
	assert.Equal(t, 2, m.List().Widget().Len())
}

func TestStatusMessageExpires(t *testing.T) {
	m := setup(t, newSource())
	clock := time.Unix(0, 0)
	m.now = func() time.Time { return clock }

	m, _ = update(m, common.ErrMsg{Err: errors.New("permission denied")})
	data := m.statusData()
	assert.Equal(t, "permission denied", data.Message)
	assert.True(t, data.IsError)

	clock = clock.Add(errorTimeout)
	assert.Empty(t, m.statusData().Message)
}

func TestHelpOverlay(t *testing.T) {
	m := setup(t, newSource())

	m, _ = update(m, runes("?"))
	assert.Contains(t, m.View(), "rowview")
	assert.NotContains(t, m.View(), "3 rows")

	m, _ = update(m, runes("j"))
	assert.True(t, m.showHelp, "list keys are swallowed by the overlay")

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.showHelp)
}

func TestHelpSectionsFollowKeyMap(t *testing.T) {
	m := setup(t, newSource())
	m.keys.Refresh.SetHelp("R", "reload")
	m.keys.Find.SetEnabled(false)

	got := map[string]string{}
	for _, s := range m.helpSections() {
		for _, e := range s.Entries {
			got[e.Key] = e.Desc
		}
	}
	assert.Equal(t, "reload", got["R"], "help text comes from the binding")
	assert.NotContains(t, got, "/", "disabled bindings are not listed")
	assert.Equal(t, m.List().Keys().SelectAll.Help().Desc, got["ctrl+a"])
	assert.Equal(t, "shift+click", m.helpSections()[2].Entries[1].Key)
}

func TestQuit(t *testing.T) {
	m := setup(t, newSource())
	_, cmd := update(m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
