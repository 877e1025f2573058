// Package tui is the Bubble Tea front-end: a quick single-field rename
// mode bound to the live host selection, and the batch grid mode built on
// the grid engine. All engine state lives on the update goroutine; the
// only asynchrony is the bridge read loop feeding inbound messages into
// the program.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/namegrid/namegrid/internal/grid"
	"github.com/namegrid/namegrid/internal/host"
	"github.com/namegrid/namegrid/internal/layer"
	"github.com/namegrid/namegrid/internal/spatial"
)

// Sender is the outbound half of the bridge. All sends are
// fire-and-forget; the engine never blocks on the host.
type Sender interface {
	Send(m host.Outbound)
}

// Mode selects which surface the model renders.
type Mode int

const (
	// ModeQuick is the single-field live rename surface.
	ModeQuick Mode = iota
	// ModeGrid is the batch-rename grid.
	ModeGrid
)

// HostMsg delivers one inbound bridge message into the program.
type HostMsg struct {
	Msg host.Inbound
}

// ConnClosedMsg reports the bridge read loop ending.
type ConnClosedMsg struct {
	Err error
}

// debounceMsg fires a pending quick-mode rename; stale sequences are
// dropped so only the newest keystroke burst sends.
type debounceMsg struct {
	Seq int
}

// autoScrollMsg is the repeating drag auto-scroll tick. The sequence
// guard is the teardown: bumping it orphans the pending tick.
type autoScrollMsg struct {
	Seq int
}

// defaultDebounce is the quick-mode typing debounce when no config
// override is set.
const defaultDebounce = 150 * time.Millisecond

// doubleClickWindow is how close two presses on one cell must land to
// count as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Options configure the front-end from the command layer.
type Options struct {
	// Direction is the initial spatial sort for grid mode.
	Direction spatial.Direction
	// Debounce overrides the quick-mode rename debounce.
	Debounce time.Duration
	// DisableMouse turns off mouse tracking (config `mouse off`).
	DisableMouse bool
	// Logger receives bridge and interaction diagnostics. Nil discards.
	Logger *slog.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	keys   KeyMap
	conn   Sender
	logger *slog.Logger
	zones  *zone.Manager

	mode        Mode
	width       int
	height      int
	helpVisible bool
	bridgeNote  string

	// quick mode
	quickInput    textinput.Model
	selection     host.Selection
	haveSelection bool
	debounce      time.Duration
	debounceSeq   int
	zoomPending   bool

	// grid mode
	store         *grid.Store
	ctrl          *grid.Controller
	layers        []layer.Ref
	editor        textinput.Model
	editingHeader bool
	headerCol     int
	scrollY       int
	lastClickRow  int
	lastClickCol  int
	lastClickAt   time.Time
	autoScrollSeq int
	autoScrollDir int
	highlightRow  int
	applied       bool
}

// New assembles the model around an outbound sender.
func New(conn Sender, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	direction := opts.Direction
	if direction == "" {
		direction = spatial.ReadingOrder
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	quickInput := textinput.New()
	quickInput.Prompt = "❯ "
	quickInput.Placeholder = "layer name"
	quickInput.Focus()

	editor := textinput.New()
	editor.Prompt = ""

	store := grid.NewStore()
	store.InitFromLayers(nil, direction)

	return Model{
		keys:         DefaultKeyMap(),
		conn:         conn,
		logger:       logger,
		zones:        zone.New(),
		mode:         ModeQuick,
		quickInput:   quickInput,
		debounce:     debounce,
		store:        store,
		ctrl:         grid.NewController(store),
		editor:       editor,
		highlightRow: -1,
	}
}

// Init requests the current selection from the host.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg {
		m.conn.Send(host.Init{})
		return nil
	}
}

// Update is the single mutation point for all interaction state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.conn.Send(host.ResizeUI{Width: msg.Width, Height: msg.Height})
		m.clampScroll()
		return m, nil

	case HostMsg:
		return m.updateFromHost(msg.Msg)

	case ConnClosedMsg:
		m.bridgeNote = "bridge disconnected"
		if msg.Err != nil {
			m.logger.Warn("bridge closed", "error", msg.Err)
		}
		return m, nil

	case debounceMsg:
		if m.mode == ModeQuick && msg.Seq == m.debounceSeq {
			m.conn.Send(host.Rename{Name: m.quickInput.Value()})
		}
		return m, nil

	case autoScrollMsg:
		return m.updateAutoScroll(msg)

	case tea.KeyMsg:
		if m.mode == ModeGrid {
			return m.updateGridKey(msg)
		}
		return m.updateQuickKey(msg)

	case tea.MouseMsg:
		if m.mode == ModeGrid {
			return m.updateGridMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

// updateFromHost dispatches the closed inbound union.
func (m Model) updateFromHost(msg host.Inbound) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case host.Selection:
		m.selection = msg
		m.haveSelection = msg.Count > 0
		if m.mode == ModeQuick {
			name := ""
			if len(msg.Names) > 0 {
				name = msg.Names[0]
			}
			m.quickInput.SetValue(name)
			m.quickInput.CursorEnd()
			m.debounceSeq++ // a selection change invalidates pending renames
			if m.zoomPending {
				m.zoomPending = false
				m.conn.Send(host.ZoomToSelection{})
			}
		}
		return m, nil

	case host.LayerPositions:
		m.layers = msg.Layers
		m.store.InitFromLayers(msg.Layers, m.store.Direction())
		m.ctrl = grid.NewController(m.store)
		m.mode = ModeGrid
		m.scrollY = 0
		m.highlightRow = -1
		m.applied = false
		return m, nil
	}
	return m, nil
}

// leaveGrid returns to quick mode, clearing host-side highlight state.
func (m Model) leaveGrid() (tea.Model, tea.Cmd) {
	if m.highlightRow >= 0 {
		m.conn.Send(host.RemoveHighlight{})
		m.highlightRow = -1
	}
	m.autoScrollSeq++ // tears down any pending auto-scroll tick
	m.mode = ModeQuick
	m.quickInput.Focus()
	return m, nil
}

// syncHighlight tells the host which layer the anchor row points at.
func (m *Model) syncHighlight() {
	sel, ok := m.ctrl.Selection()
	if !ok {
		if m.highlightRow >= 0 {
			m.conn.Send(host.RemoveHighlight{})
			m.highlightRow = -1
		}
		return
	}
	if sel.AnchorRow == m.highlightRow {
		return
	}
	m.highlightRow = sel.AnchorRow
	if id := m.store.LayerID(sel.AnchorRow); id != "" {
		m.conn.Send(host.HighlightLayer{NodeID: id})
	}
}

// ensureVisible keeps the anchor row inside the viewport.
func (m *Model) ensureVisible(row int) {
	visible := m.visibleRows()
	if row < m.scrollY {
		m.scrollY = row
	} else if row >= m.scrollY+visible {
		m.scrollY = row - visible + 1
	}
	m.clampScroll()
}

func (m *Model) clampScroll() {
	max := m.store.RowCount() - m.visibleRows()
	if max < 0 {
		max = 0
	}
	if m.scrollY > max {
		m.scrollY = max
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
}

// visibleRows is the data-row capacity of the viewport after the chrome
// (title, header row, status bar, hint line).
func (m *Model) visibleRows() int {
	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}
	return rows
}

// View renders the active mode. Scan registers the mouse zones and
// strips their markers; it must wrap the final frame exactly once.
func (m Model) View() string {
	if m.mode == ModeGrid {
		return m.zones.Scan(m.viewGrid())
	}
	return m.viewQuick()
}

// Run drives the program against a live bridge connection: it starts the
// read loop, runs the UI, and closes the connection on exit.
func Run(conn *host.Conn, opts Options, progOpts ...tea.ProgramOption) error {
	m := New(conn, opts)
	base := []tea.ProgramOption{tea.WithAltScreen()}
	if !opts.DisableMouse {
		base = append(base, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, append(base, progOpts...)...)

	go func() {
		for {
			msg, err := conn.Receive()
			if err != nil {
				p.Send(ConnClosedMsg{Err: err})
				return
			}
			p.Send(HostMsg{Msg: msg})
		}
	}()

	_, err := p.Run()
	_ = conn.Close()
	return err
}
