// Package app is the top-level Bubble Tea model: a file tree list with a
// status bar, a help overlay and a find prompt.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Akashdeep-Patra/rowview/internal/common"
	"github.com/Akashdeep-Patra/rowview/internal/config"
	"github.com/Akashdeep-Patra/rowview/internal/fstree"
	"github.com/Akashdeep-Patra/rowview/internal/source"
	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/Akashdeep-Patra/rowview/internal/ui/components"
	"github.com/Akashdeep-Patra/rowview/internal/ui/listview"
	"github.com/Akashdeep-Patra/rowview/internal/watcher"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

const (
	infoTimeout  = 3 * time.Second
	errorTimeout = 5 * time.Second
)

// Options configures the application model.
type Options struct {
	Root    string
	Config  *config.Config
	Source  source.Source // nil lists the local filesystem
	Context context.Context
	Logger  zerolog.Logger
}

// Model is the top-level Bubbletea model.
type Model struct {
	styles ui.Styles
	keys   KeyMap
	log    zerolog.Logger
	now    func() time.Time

	list  *listview.Model
	tree  *fstree.Tree
	cache *source.Cached

	width    int
	height   int
	showHelp bool

	finding bool
	find    textinput.Model

	statusMsg string
	statusErr bool
	statusExp time.Time
}

// New builds the list and the tree behind it. Call Init to start loading.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	src := opts.Source
	if src == nil {
		src = source.FS{ShowHidden: cfg.ShowHidden}
	}
	cache := source.NewCached(src, cfg.CacheTTL)
	styles := ui.NewStyles(ui.ThemeByName(cfg.Theme))

	lo := listview.DefaultOptions()
	lo.Columns = fstree.Columns
	lo.Styles = styles
	lo.DoubleClickTimeout = cfg.DoubleClickTimeout
	lo.View.MultiSelect = cfg.MultiSelect
	lo.View.DragSelect = cfg.DragSelect
	lo.View.EdgeBand = cfg.EdgeBand
	lo.View.AutoScrollInterval = cfg.AutoScrollInterval
	lo.View.RedrawInterval = cfg.RedrawInterval
	lo.View.Logger = opts.Logger

	list, err := listview.New(lo)
	if err != nil {
		return Model{}, fmt.Errorf("create list: %w", err)
	}

	tree := fstree.New(fstree.Options{
		Root:       opts.Root,
		Source:     cache,
		DetailRows: cfg.DetailRows,
		Context:    opts.Context,
		Logger:     opts.Logger,
	})
	tree.Attach(list.Widget().Host())

	find := textinput.New()
	find.Prompt = "/"
	find.Placeholder = "name"
	find.PromptStyle = styles.Prompt
	find.CharLimit = 256

	return Model{
		styles: styles,
		keys:   DefaultKeyMap(),
		log:    opts.Logger.With().Str("component", "app").Logger(),
		now:    time.Now,
		list:   list,
		tree:   tree,
		cache:  cache,
		find:   find,
	}, nil
}

// SetWatcher makes the tree follow its expanded directories with w.
func (m Model) SetWatcher(w fstree.DirWatcher) { m.tree.SetWatcher(w) }

// Tree returns the file tree shown in the list.
func (m Model) Tree() *fstree.Tree { return m.tree }

// List returns the list widget host.
func (m Model) List() *listview.Model { return m.list }

// Init starts the redraw timer and lists the root directory.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.list.Init(), m.tree.Load())
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width, m.listHeight())
		m.find.Width = max(m.width-3, 1)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		// Presses and wheel below the list land on the status bar. Drags
		// continue past the edge so auto-scroll can run.
		if msg.Y >= m.listHeight() &&
			(msg.Action == tea.MouseActionPress || msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown) {
			return m, nil
		}
		return m, m.forward(msg)

	case watcher.Event:
		for _, dir := range msg.Dirs {
			m.cache.Forget(dir)
		}
		m.log.Debug().Strs("dirs", msg.Dirs).Msg("change on disk")
		return m, m.tree.Refresh()

	case common.RefreshMsg:
		return m, m.refresh()

	case common.ErrMsg:
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case common.InfoMsg:
		m.setStatus(msg.Text, false)
		return m, nil

	case common.OpenMsg:
		m.log.Info().Str("path", msg.Path).Msg("open")
		m.setStatus("open "+msg.Path, false)
		return m, nil
	}

	var cmds []tea.Cmd
	if m.finding {
		// Cursor blink.
		var cmd tea.Cmd
		m.find, cmd = m.find.Update(msg)
		cmds = append(cmds, cmd)
	}
	cmds = append(cmds, m.list.Update(msg), m.tree.Update(msg))
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.finding {
		return m.handleFindKey(msg)
	}

	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Back):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m, common.CmdRefresh
	case key.Matches(msg, m.keys.Find):
		m.finding = true
		m.find.Reset()
		return m, m.find.Focus()
	}
	return m, m.forward(msg)
}

// handleFindKey edits the find prompt. The best match is selected as the
// query changes; enter keeps it and esc leaves the selection where it is.
func (m Model) handleFindKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Back):
		m.finding = false
		m.find.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	before := m.find.Value()
	m.find, cmd = m.find.Update(msg)
	if q := m.find.Value(); q != before {
		m.jumpTo(q)
	}
	return m, cmd
}

func (m Model) jumpTo(query string) {
	n, ok := m.tree.Find(query)
	if !ok {
		return
	}
	if i, ok := m.list.Widget().IndexOf(n); ok {
		m.list.Jump(i)
	}
}

// forward passes msg to the list and collects whatever the row hooks queued.
func (m Model) forward(msg tea.Msg) tea.Cmd {
	cmd := m.list.Update(msg)
	return tea.Batch(cmd, m.tree.Drain())
}

func (m Model) refresh() tea.Cmd {
	m.cache.Invalidate()
	m.log.Debug().Msg("refresh")
	return m.tree.Refresh()
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusErr = isErr
	timeout := infoTimeout
	if isErr {
		timeout = errorTimeout
	}
	m.statusExp = m.now().Add(timeout)
}

// listHeight is the screen minus the status line.
func (m Model) listHeight() int {
	return max(m.height-1, 0)
}

// View renders the entire UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.showHelp {
		return components.RenderHelp(m.styles, "rowview", m.helpSections(), m.width, m.height)
	}

	var bottom string
	if m.finding {
		bottom = ui.Fit(m.find.View(), m.width)
	} else {
		bottom = components.RenderStatusBar(m.styles, m.statusData(), m.width)
	}

	list := m.list.View()
	if list == "" {
		return bottom
	}
	return list + "\n" + bottom
}

// helpSections lists the bindings the overlay documents, in display order.
func (m Model) helpSections() []components.HelpSection {
	lk := m.list.Keys()
	return []components.HelpSection{
		{Title: "Navigation", Entries: components.BindingEntries(lk.Up, lk.Down, lk.PageUp, lk.PageDown, lk.Home, lk.End)},
		{Title: "Selection", Entries: components.BindingEntries(lk.ExtendUp, lk.ExtendDn, lk.Toggle, lk.SelectAll, lk.Clear)},
		components.MouseHelp(),
		{Title: "Tree", Entries: components.BindingEntries(lk.Activate, m.keys.Find, m.keys.Refresh)},
		{Title: "General", Entries: components.BindingEntries(m.keys.Help, m.keys.Quit)},
	}
}

func (m Model) statusData() components.StatusBarData {
	v := m.list.Widget()
	data := components.StatusBarData{
		Root:     m.tree.Root(),
		Rows:     v.Len(),
		Selected: len(v.Selected()),
		Loading:  m.tree.Loading(),
		Scrolled: v.Scroll().Percent(),
	}
	if c, ok := v.Cursor(); ok {
		if r, ok := v.Row(c); ok {
			if n, ok := r.(*fstree.Node); ok {
				data.Cursor = n.Name()
			}
		}
	}
	if m.statusMsg != "" && m.now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	return data
}
