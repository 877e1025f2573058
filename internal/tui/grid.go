package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namegrid/namegrid/internal/grid"
	"github.com/namegrid/namegrid/internal/host"
	"github.com/namegrid/namegrid/internal/spatial"
)

// autoScrollInterval paces the drag auto-scroll tick.
const autoScrollInterval = 100 * time.Millisecond

// updateGridKey handles grid mode keys. Editor keys take priority while a
// cell or header edit is open; everything else drives the controller.
func (m Model) updateGridKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.editingHeader {
		return m.updateHeaderEditKey(msg)
	}
	if m.ctrl.Editing() != grid.EditNone {
		return m.updateCellEditKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if _, ok := m.ctrl.Selection(); ok {
			m.ctrl.Escape()
			m.syncHighlight()
			return m, nil
		}
		return m.leaveGrid()

	case key.Matches(msg, m.keys.ExtendUp):
		m.ctrl.Move(-1, 0, true)
		return m, nil
	case key.Matches(msg, m.keys.ExtendDown):
		m.ctrl.Move(1, 0, true)
		return m, nil
	case key.Matches(msg, m.keys.ExtendLeft):
		m.ctrl.Move(0, -1, true)
		return m, nil
	case key.Matches(msg, m.keys.ExtendRight):
		m.ctrl.Move(0, 1, true)
		return m, nil

	case key.Matches(msg, m.keys.Up):
		return m.moveAnchor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		return m.moveAnchor(1, 0)
	case key.Matches(msg, m.keys.Left):
		return m.moveAnchor(0, -1)
	case key.Matches(msg, m.keys.Right):
		return m.moveAnchor(0, 1)

	case key.Matches(msg, m.keys.Edit):
		if m.ctrl.StartEdit(grid.EditAppend) {
			m.openCellEditor(m.ctrl.EditValue(), false)
		}
		return m, nil

	case key.Matches(msg, m.keys.EditReplace):
		if m.ctrl.StartEdit(grid.EditReplaceAll) {
			m.openCellEditor(m.ctrl.EditValue(), true)
		}
		return m, nil

	case key.Matches(msg, m.keys.Undo):
		m.store.Undo()
		m.applied = false
		return m, nil
	case key.Matches(msg, m.keys.Redo):
		m.store.Redo()
		m.applied = false
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.ctrl.Copy()
		return m, nil
	case key.Matches(msg, m.keys.CutCells):
		m.ctrl.Cut()
		return m, nil
	case key.Matches(msg, m.keys.PasteCells):
		m.ctrl.Paste()
		m.applied = false
		return m, nil

	case key.Matches(msg, m.keys.EditHeader):
		if sel, ok := m.ctrl.Selection(); ok {
			m.openHeaderEditor(sel.AnchorCol)
		}
		return m, nil

	case key.Matches(msg, m.keys.InsertColumn):
		if sel, ok := m.ctrl.Selection(); ok {
			m.store.AddColumn(sel.AnchorCol)
			m.applied = false
		}
		return m, nil

	case key.Matches(msg, m.keys.DeleteColumn):
		if sel, ok := m.ctrl.Selection(); ok {
			m.store.DeleteColumn(sel.AnchorCol)
			m.ctrl.Move(0, 0, false) // re-clamp onto the narrower grid
			m.applied = false
		}
		return m, nil

	case key.Matches(msg, m.keys.CycleSort):
		m.store.ReorderByDirection(m.layers, nextDirection(m.store.Direction()))
		m.applied = false
		return m, nil

	case key.Matches(msg, m.keys.ZoomLayer):
		if sel, ok := m.ctrl.Selection(); ok {
			if id := m.store.LayerID(sel.AnchorRow); id != "" {
				m.conn.Send(host.ZoomToLayer{NodeID: id})
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Apply):
		renames := m.store.Renames()
		payload := make([]host.NodeRename, len(renames))
		for i, r := range renames {
			payload[i] = host.NodeRename{NodeID: r.LayerID, NewName: r.NewName}
		}
		m.conn.Send(host.BatchRename{Renames: payload})
		m.applied = true
		return m, nil

	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && !msg.Alt:
		// First keystroke replaces the cell.
		if seed, ok := m.ctrl.TypeRune(msg.Runes[0]); ok {
			m.openCellEditor(seed, false)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) moveAnchor(dRow, dCol int) (tea.Model, tea.Cmd) {
	m.ctrl.Move(dRow, dCol, false)
	if sel, ok := m.ctrl.Selection(); ok {
		m.ensureVisible(sel.AnchorRow)
	}
	m.syncHighlight()
	return m, nil
}

// openCellEditor seeds the inline editor. Replace-all mode selects the
// existing text so the first keystroke overwrites it.
func (m *Model) openCellEditor(seed string, selectAll bool) {
	m.editor.SetValue(seed)
	if selectAll {
		m.editor.CursorStart()
	} else {
		m.editor.CursorEnd()
	}
	m.editor.Focus()
}

func (m *Model) openHeaderEditor(col int) {
	m.editingHeader = true
	m.headerCol = col
	cols := m.store.Columns()
	if col >= 0 && col < len(cols) {
		m.editor.SetValue(cols[col].Header)
	} else {
		m.editor.SetValue("")
	}
	m.editor.CursorEnd()
	m.editor.Focus()
}

func (m Model) updateCellEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.ctrl.CancelEdit()
		m.editor.Blur()
		return m, nil
	case tea.KeyTab:
		m.commitCellEdit(grid.AdvanceNext)
		return m, nil
	case tea.KeyEnter:
		m.commitCellEdit(grid.AdvanceDown)
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) commitCellEdit(advance grid.Advance) {
	m.ctrl.CommitEdit(m.editor.Value(), advance)
	m.editor.Blur()
	m.applied = false
	if sel, ok := m.ctrl.Selection(); ok {
		m.ensureVisible(sel.AnchorRow)
	}
	m.syncHighlight()
}

func (m Model) updateHeaderEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.editingHeader = false
		m.editor.Blur()
		return m, nil
	case tea.KeyEnter, tea.KeyTab:
		m.store.SetColumnHeader(m.headerCol, m.editor.Value())
		m.editingHeader = false
		m.editor.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

// updateGridMouse resolves mouse events through the marked zones: cells,
// column headers, and the selection's fill handle.
func (m Model) updateGridMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Button == tea.MouseButtonWheelUp {
		m.scrollY -= 3
		m.clampScroll()
		return m, nil
	}
	if msg.Button == tea.MouseButtonWheelDown {
		m.scrollY += 3
		m.clampScroll()
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if m.zones.Get(zoneFillHandle).InBounds(msg) {
			m.ctrl.StartFillDrag()
			return m, nil
		}
		if col, ok := m.headerAt(msg); ok {
			if m.isDoubleClick(-1, col) {
				m.openHeaderEditor(col)
			}
			m.noteClick(-1, col)
			return m, nil
		}
		if row, col, ok := m.cellAt(msg); ok {
			switch {
			case msg.Shift:
				m.ctrl.ShiftClick(row, col)
			case m.isDoubleClick(row, col):
				if m.ctrl.DoubleClick(row, col) == grid.EditReplaceAll {
					m.openCellEditor(m.ctrl.EditValue(), true)
				}
			default:
				if m.ctrl.Click(row, col) == grid.EditAppend {
					m.openCellEditor(m.ctrl.EditValue(), false)
				}
			}
			m.noteClick(row, col)
			m.syncHighlight()
		}
		return m, nil

	case tea.MouseActionMotion:
		if _, dragging := m.ctrl.Dragging(); !dragging {
			return m, nil
		}
		if row, col, ok := m.cellAt(msg); ok {
			m.ctrl.FillDragOver(row, col)
		}
		return m.maybeAutoScroll(msg)

	case tea.MouseActionRelease:
		if _, dragging := m.ctrl.Dragging(); dragging {
			m.ctrl.FillDragRelease()
			m.applied = false
		}
		m.autoScrollSeq++ // tear down the auto-scroll tick
		m.autoScrollDir = 0
		return m, nil
	}
	return m, nil
}

// maybeAutoScroll starts (or stops) the repeating scroll tick while a
// drag sits beyond the viewport edge.
func (m Model) maybeAutoScroll(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	dir := 0
	if msg.Y <= gridTopRows && m.scrollY > 0 {
		dir = -1
	} else if msg.Y >= gridTopRows+m.visibleRows()-1 && m.scrollY < m.store.RowCount()-m.visibleRows() {
		dir = 1
	}
	if dir == m.autoScrollDir {
		return m, nil
	}
	m.autoScrollDir = dir
	m.autoScrollSeq++
	if dir == 0 {
		return m, nil
	}
	seq := m.autoScrollSeq
	return m, tea.Tick(autoScrollInterval, func(time.Time) tea.Msg {
		return autoScrollMsg{Seq: seq}
	})
}

func (m Model) updateAutoScroll(msg autoScrollMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.autoScrollSeq || m.autoScrollDir == 0 {
		return m, nil // torn down; the tick is stale
	}
	if _, dragging := m.ctrl.Dragging(); !dragging {
		m.autoScrollDir = 0
		return m, nil
	}
	m.scrollY += m.autoScrollDir
	m.clampScroll()

	// Drag the fill target along with the viewport edge.
	edge := m.scrollY
	if m.autoScrollDir > 0 {
		edge = m.scrollY + m.visibleRows() - 1
	}
	if sel, ok := m.ctrl.Selection(); ok {
		m.ctrl.FillDragOver(edge, sel.AnchorCol)
	}

	seq := m.autoScrollSeq
	return m, tea.Tick(autoScrollInterval, func(time.Time) tea.Msg {
		return autoScrollMsg{Seq: seq}
	})
}

func (m *Model) isDoubleClick(row, col int) bool {
	return row == m.lastClickRow && col == m.lastClickCol &&
		time.Since(m.lastClickAt) <= doubleClickWindow
}

func (m *Model) noteClick(row, col int) {
	m.lastClickRow, m.lastClickCol = row, col
	m.lastClickAt = time.Now()
}

// cellAt maps a mouse event to grid coordinates via the cell zones.
func (m Model) cellAt(msg tea.MouseMsg) (row, col int, ok bool) {
	last := m.scrollY + m.visibleRows()
	if last > m.store.RowCount() {
		last = m.store.RowCount()
	}
	for r := m.scrollY; r < last; r++ {
		for c := 0; c < m.store.ColumnCount(); c++ {
			if z := m.zones.Get(cellZoneID(r, c)); z != nil && z.InBounds(msg) {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

func (m Model) headerAt(msg tea.MouseMsg) (col int, ok bool) {
	for c := 0; c < m.store.ColumnCount(); c++ {
		if z := m.zones.Get(headerZoneID(c)); z != nil && z.InBounds(msg) {
			return c, true
		}
	}
	return 0, false
}

func nextDirection(d spatial.Direction) spatial.Direction {
	for i, dir := range spatial.Directions {
		if dir == d {
			return spatial.Directions[(i+1)%len(spatial.Directions)]
		}
	}
	return spatial.Directions[0]
}

const (
	zoneFillHandle = "fill-handle"
)

func cellZoneID(row, col int) string { return fmt.Sprintf("cell-%d-%d", row, col) }

func headerZoneID(col int) string { return fmt.Sprintf("head-%d", col) }
