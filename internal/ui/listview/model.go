// Package listview hosts a treeview.View inside a Bubble Tea program. It
// turns mouse and key messages into widget events, runs the auto-scroll
// and redraw timers as tea commands, and renders the visible rows.
package listview

import (
	"time"

	"github.com/Akashdeep-Patra/rowview/internal/treeview"
	"github.com/Akashdeep-Patra/rowview/internal/ui"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// headerHeight is the column title line above the rows.
const headerHeight = 1

// DefaultWheelStep is the number of lines one wheel notch scrolls.
const DefaultWheelStep = 3

// Layout is the width of the row area and of each column. Column 0 takes
// whatever the fixed columns leave.
type Layout struct {
	Width   int
	Columns []int
}

// RowState is the per-frame state a row renders with.
type RowState struct {
	Selected bool
	Cursor   bool
}

// Item is a row the list can draw. Render returns Height() lines joined by
// newlines, each at most Layout.Width cells wide.
type Item interface {
	treeview.Row
	Render(l Layout, state RowState, styles ui.Styles) string
	// ColumnWidths reports the natural width of each column, by index.
	ColumnWidths() []int
}

// ── Messages ────────────────────────────────────────────────────────────────

type autoScrollTickMsg struct{ gen uint64 }

type redrawTickMsg struct{}

// Options configures a Model.
type Options struct {
	View               treeview.Options
	Columns            []string
	DoubleClickTimeout time.Duration
	WheelStep          int
	Styles             ui.Styles
	Keys               KeyMap
}

// DefaultOptions returns options for a single "Name" column with the
// default styles and keys. The edge band is one line: a terminal row is far
// taller than a pixel.
func DefaultOptions() Options {
	view := treeview.DefaultOptions()
	view.EdgeBand = 1
	return Options{
		View:               view,
		Columns:            []string{"Name"},
		DoubleClickTimeout: DefaultDoubleClickTimeout,
		WheelStep:          DefaultWheelStep,
		Styles:             ui.DefaultStyles(),
		Keys:               DefaultKeyMap(),
	}
}

// Model is the Bubble Tea host of a treeview.View.
type Model struct {
	view      *treeview.View
	keys      KeyMap
	styles    ui.Styles
	columns   []string
	clicks    *clickDetector
	wheelStep int
	log       zerolog.Logger

	width  int
	height int

	frame string
	stale bool
}

// New creates a list hosting rows.
func New(opts Options, rows ...Item) (*Model, error) {
	opts.View.HeaderHeight = headerHeight
	if len(opts.Columns) == 0 {
		opts.Columns = []string{""}
	}
	if opts.WheelStep <= 0 {
		opts.WheelStep = DefaultWheelStep
	}

	initial := make([]treeview.Row, len(rows))
	for i, r := range rows {
		initial[i] = r
	}
	v, err := treeview.New(opts.View, initial...)
	if err != nil {
		return nil, err
	}

	return &Model{
		view:      v,
		keys:      opts.Keys,
		styles:    opts.Styles,
		columns:   opts.Columns,
		clicks:    newClickDetector(opts.DoubleClickTimeout),
		wheelStep: opts.WheelStep,
		log:       opts.View.Logger.With().Str("component", "listview").Logger(),
		stale:     true,
	}, nil
}

// Widget exposes the hosted widget for the outward row and selection API.
func (m *Model) Widget() *treeview.View { return m.view }

// Keys returns the list's keybindings.
func (m *Model) Keys() KeyMap { return m.keys }

// Init starts the redraw timer.
func (m *Model) Init() tea.Cmd { return m.redrawTick() }

// SetSize sets the list's outer size, header included.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.view.SetPageSize(max(height-headerHeight, 0))
	m.stale = true
}

// SetStyles replaces the styles and repaints.
func (m *Model) SetStyles(styles ui.Styles) {
	m.styles = styles
	m.stale = true
}

// Invalidate forces a repaint on the next View call.
func (m *Model) Invalidate() { m.stale = true }

// Update handles list input and timer messages. Mouse coordinates must be
// relative to the list's top-left corner.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case redrawTickMsg:
		if m.view.Flush() {
			m.stale = true
		}
		return m.redrawTick()

	case autoScrollTickMsg:
		next, ok := m.view.AutoScrollTick(msg.gen)
		if !ok {
			return nil
		}
		m.stale = true
		return autoScroll(next)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	ev := treeview.Event{
		Button: button(msg.Button),
		X:      msg.X,
		Y:      msg.Y,
		Mods:   modifiers(msg),
	}

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scrollBy(-m.wheelStep)

	case msg.Button == tea.MouseButtonWheelDown:
		m.scrollBy(m.wheelStep)

	case msg.Action == tea.MouseActionPress:
		if ev.Button == treeview.ButtonPrimary {
			row, ok := m.view.EventRow(ev)
			ev.Click = m.clicks.detect(row, ok)
		}
		m.view.Press(ev)

	case msg.Action == tea.MouseActionMotion:
		if tick, ok := m.view.Motion(ev); ok {
			m.log.Debug().Str("dir", tick.Dir.String()).Uint64("gen", tick.Gen).Msg("auto-scroll armed")
			return autoScroll(tick)
		}

	case msg.Action == tea.MouseActionRelease:
		m.view.Release(ev)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) {
	before := m.view.Scroll().Offset()
	defer func() {
		if m.view.Scroll().Offset() != before {
			m.stale = true
		}
	}()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.view.MoveCursor(-1, false)
	case key.Matches(msg, m.keys.Down):
		m.view.MoveCursor(1, false)
	case key.Matches(msg, m.keys.ExtendUp):
		m.view.MoveCursor(-1, true)
	case key.Matches(msg, m.keys.ExtendDn):
		m.view.MoveCursor(1, true)
	case key.Matches(msg, m.keys.PageUp):
		m.page(-1)
	case key.Matches(msg, m.keys.PageDown):
		m.page(1)
	case key.Matches(msg, m.keys.Home):
		m.Jump(0)
	case key.Matches(msg, m.keys.End):
		m.Jump(m.view.Len() - 1)
	case key.Matches(msg, m.keys.Toggle):
		if c, ok := m.view.Cursor(); ok {
			m.view.ToggleRow(c)
		}
	case key.Matches(msg, m.keys.SelectAll):
		m.view.SelectAll()
	case key.Matches(msg, m.keys.Clear):
		m.view.ClearSelection()
	case key.Matches(msg, m.keys.Activate):
		m.activate()
	}
}

// Jump selects row i alone and scrolls it into view.
func (m *Model) Jump(i int) {
	if i < 0 || i >= m.view.Len() {
		return
	}
	before := m.view.Scroll().Offset()
	m.view.SelectRows(i)
	m.view.EnsureVisible(i)
	if m.view.Scroll().Offset() != before {
		m.stale = true
	}
}

// page moves the cursor one page of lines up (dir < 0) or down.
func (m *Model) page(dir int) {
	n := m.view.Len()
	if n == 0 {
		return
	}
	lead, ok := m.view.Cursor()
	if !ok {
		if dir < 0 {
			m.Jump(n - 1)
		} else {
			m.Jump(0)
		}
		return
	}

	scroll := m.view.Scroll()
	y := m.view.Top(lead) + dir*max(scroll.Page(), 1)
	y = min(max(y, 0), scroll.Total()-1)
	target, hit := m.view.RowAtCoordinate(y)
	if !hit {
		return
	}
	m.view.MoveCursor(target-lead, false)
}

// activate fires the double click hook of the row under the cursor.
func (m *Model) activate() {
	c, ok := m.view.Cursor()
	if !ok {
		return
	}
	r, _ := m.view.Row(c)
	if cl, isClickable := r.(treeview.Clickable); isClickable {
		cl.DoubleClick()
	}
}

func (m *Model) scrollBy(delta int) {
	if m.view.ScrollBy(delta) {
		m.stale = true
	}
}

func (m *Model) redrawTick() tea.Cmd {
	return tea.Tick(m.view.RedrawInterval(), func(time.Time) tea.Msg {
		return redrawTickMsg{}
	})
}

func autoScroll(t treeview.Tick) tea.Cmd {
	gen := t.Gen
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return autoScrollTickMsg{gen: gen}
	})
}

func button(b tea.MouseButton) treeview.Button {
	switch b {
	case tea.MouseButtonLeft:
		return treeview.ButtonPrimary
	case tea.MouseButtonRight:
		return treeview.ButtonSecondary
	case tea.MouseButtonMiddle:
		return treeview.ButtonMiddle
	}
	return treeview.ButtonNone
}

func modifiers(msg tea.MouseMsg) treeview.Modifiers {
	var mods treeview.Modifiers
	if msg.Ctrl {
		mods |= treeview.ModCtrl
	}
	if msg.Shift {
		mods |= treeview.ModShift
	}
	return mods
}
