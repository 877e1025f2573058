package grid

import (
	"strings"

	"github.com/atotto/clipboard"

	"github.com/namegrid/namegrid/internal/series"
)

// EditMode distinguishes how an in-progress cell edit was opened.
type EditMode int

const (
	// EditNone means no cell is being edited.
	EditNone EditMode = iota
	// EditAppend opens the editor with the caret after the existing text.
	EditAppend
	// EditReplaceAll opens the editor with the existing text selected, so
	// the first keystroke replaces it.
	EditReplaceAll
)

// Advance tells CommitEdit where the selection moves after the commit.
type Advance int

const (
	// AdvanceNone keeps the selection on the committed cell.
	AdvanceNone Advance = iota
	// AdvanceNext moves one cell in reading order (Tab), wrapping to the
	// next row at the last column and clamping at the grid's last cell.
	AdvanceNext
	// AdvanceDown moves straight down (Enter), clamping at the bottom row.
	AdvanceDown
)

// FillAxis is the committed direction of a drag-fill.
type FillAxis int

const (
	// AxisNone means the drag has not yet left the selection rectangle.
	AxisNone FillAxis = iota
	// AxisVertical fills rows above or below the selection.
	AxisVertical
	// AxisHorizontal fills columns left or right of the selection.
	AxisHorizontal
)

// Selection is an anchored rectangle. The anchor cell is the active cell
// (typing target and paste origin); the focus cell is the corner moved by
// shift-click and shift-arrows.
type Selection struct {
	AnchorRow, AnchorCol int
	FocusRow, FocusCol   int
}

// Normalized returns the rectangle corners ordered top-left, bottom-right.
func (s Selection) Normalized() (r0, c0, r1, c1 int) {
	r0, r1 = s.AnchorRow, s.FocusRow
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	c0, c1 = s.AnchorCol, s.FocusCol
	if c1 < c0 {
		c0, c1 = c1, c0
	}
	return r0, c0, r1, c1
}

// Contains reports whether the cell lies inside the rectangle.
func (s Selection) Contains(row, col int) bool {
	r0, c0, r1, c1 := s.Normalized()
	return row >= r0 && row <= r1 && col >= c0 && col <= c1
}

// single reports whether the rectangle covers exactly one cell.
func (s Selection) single() bool {
	return s.AnchorRow == s.FocusRow && s.AnchorCol == s.FocusCol
}

// Controller is the interaction state machine over a Store: selection
// rectangle, cell editing, drag-fill tracking, and the clipboard buffer.
// It never touches Store rows or columns directly; every mutation goes
// through a Store operation. All interaction operations are local and
// cannot fail observably: out-of-range and malformed inputs degrade to
// no-ops by contract.
type Controller struct {
	store *Store

	hasSelection bool
	sel          Selection
	editing      EditMode

	dragging   bool
	dragAxis   FillAxis
	dragTarget int // row for AxisVertical, column for AxisHorizontal

	clip       [][]string
	cutPending bool
	cutSel     Selection

	// System clipboard hooks, swappable in tests. Both are best-effort:
	// failures are swallowed and the in-memory buffer remains the source
	// of truth.
	writeSystem func(string) error
	readSystem  func() (string, error)
}

// NewController returns a controller over store with no selection.
func NewController(store *Store) *Controller {
	return &Controller{
		store:       store,
		writeSystem: clipboard.WriteAll,
		readSystem:  clipboard.ReadAll,
	}
}

// Selection returns the current rectangle; ok is false in the idle state.
func (c *Controller) Selection() (sel Selection, ok bool) {
	return c.sel, c.hasSelection
}

// Editing returns the active edit mode, EditNone when not editing.
func (c *Controller) Editing() EditMode { return c.editing }

// Dragging reports an in-progress fill drag and its committed axis.
func (c *Controller) Dragging() (FillAxis, bool) { return c.dragAxis, c.dragging }

// --- selection and editing ---

// Click selects the cell. Clicking the sole selected cell a second time
// opens the editor in caret-append mode; the returned mode is EditNone
// when the click only moved the selection.
func (c *Controller) Click(row, col int) EditMode {
	if !c.store.inRange(row, col) {
		return EditNone
	}
	if c.hasSelection && c.editing == EditNone && c.sel.single() &&
		c.sel.AnchorRow == row && c.sel.AnchorCol == col {
		c.editing = EditAppend
		return EditAppend
	}
	c.editing = EditNone
	c.hasSelection = true
	c.sel = Selection{AnchorRow: row, AnchorCol: col, FocusRow: row, FocusCol: col}
	return EditNone
}

// DoubleClick selects the cell and opens the editor in replace-all mode
// regardless of the prior selection.
func (c *Controller) DoubleClick(row, col int) EditMode {
	if !c.store.inRange(row, col) {
		return EditNone
	}
	c.hasSelection = true
	c.sel = Selection{AnchorRow: row, AnchorCol: col, FocusRow: row, FocusCol: col}
	c.editing = EditReplaceAll
	return EditReplaceAll
}

// ShiftClick extends the rectangle's focus corner to the cell. Without an
// existing selection it behaves like Click.
func (c *Controller) ShiftClick(row, col int) {
	if !c.store.inRange(row, col) {
		return
	}
	if !c.hasSelection {
		c.Click(row, col)
		return
	}
	c.editing = EditNone
	c.sel.FocusRow, c.sel.FocusCol = row, col
}

// TypeRune handles a printable keystroke in the selected (not editing)
// state: the selection collapses to the anchor and the editor opens in
// caret-append mode seeded with just the typed character, replacing the
// cell's prior content on commit. ok is false when the keystroke does
// not apply (idle, or already editing).
func (c *Controller) TypeRune(r rune) (seed string, ok bool) {
	if !c.hasSelection || c.editing != EditNone {
		return "", false
	}
	c.sel = Selection{AnchorRow: c.sel.AnchorRow, AnchorCol: c.sel.AnchorCol,
		FocusRow: c.sel.AnchorRow, FocusCol: c.sel.AnchorCol}
	c.editing = EditAppend
	return string(r), true
}

// StartEdit opens the editor on the anchor cell. Returns false when idle.
func (c *Controller) StartEdit(mode EditMode) bool {
	if !c.hasSelection || mode == EditNone {
		return false
	}
	c.sel = Selection{AnchorRow: c.sel.AnchorRow, AnchorCol: c.sel.AnchorCol,
		FocusRow: c.sel.AnchorRow, FocusCol: c.sel.AnchorCol}
	c.editing = mode
	return true
}

// EditValue returns the anchor cell's current value, the editor's seed
// text for append-mode edits.
func (c *Controller) EditValue() string {
	return c.store.CellValue(c.sel.AnchorRow, c.sel.AnchorCol)
}

// CancelEdit leaves the editing state without mutating the store.
func (c *Controller) CancelEdit() { c.editing = EditNone }

// CommitEdit writes the edited value to the anchor cell and moves the
// selection per advance.
func (c *Controller) CommitEdit(value string, advance Advance) {
	if !c.hasSelection {
		return
	}
	c.editing = EditNone
	row, col := c.sel.AnchorRow, c.sel.AnchorCol
	if value != c.store.CellValue(row, col) {
		c.store.SetCellValue(row, col, value)
	}
	switch advance {
	case AdvanceNext:
		if col < c.store.ColumnCount()-1 {
			col++
		} else if row < c.store.RowCount()-1 {
			row, col = row+1, 0
		}
	case AdvanceDown:
		if row < c.store.RowCount()-1 {
			row++
		}
	}
	c.sel = Selection{AnchorRow: row, AnchorCol: col, FocusRow: row, FocusCol: col}
}

// Escape steps the state machine back: editing → selected → idle.
func (c *Controller) Escape() {
	if c.editing != EditNone {
		c.editing = EditNone
		return
	}
	c.hasSelection = false
	c.sel = Selection{}
}

// Move shifts the anchor by one cell, clamped to grid bounds; with extend
// it moves the focus corner instead, growing the rectangle. With no
// selection the first move selects the top-left cell.
func (c *Controller) Move(dRow, dCol int, extend bool) {
	if c.editing != EditNone {
		return
	}
	if c.store.RowCount() == 0 {
		return
	}
	if !c.hasSelection {
		c.hasSelection = true
		c.sel = Selection{}
		return
	}
	if extend {
		c.sel.FocusRow = c.clampRow(c.sel.FocusRow + dRow)
		c.sel.FocusCol = c.clampCol(c.sel.FocusCol + dCol)
		return
	}
	row := c.clampRow(c.sel.AnchorRow + dRow)
	col := c.clampCol(c.sel.AnchorCol + dCol)
	c.sel = Selection{AnchorRow: row, AnchorCol: col, FocusRow: row, FocusCol: col}
}

func (c *Controller) clampRow(r int) int {
	if r < 0 {
		return 0
	}
	if max := c.store.RowCount() - 1; r > max {
		return max
	}
	return r
}

func (c *Controller) clampCol(col int) int {
	if col < 0 {
		return 0
	}
	if max := c.store.ColumnCount() - 1; col > max {
		return max
	}
	return col
}

// --- drag fill ---

// StartFillDrag begins a fill drag from the selection's fill handle.
func (c *Controller) StartFillDrag() bool {
	if !c.hasSelection || c.editing != EditNone {
		return false
	}
	c.dragging = true
	c.dragAxis = AxisNone
	return true
}

// FillDragOver tracks the pointer during a fill drag. The axis commits to
// whichever coordinate first leaves the selection rectangle; after that
// the drag follows only that axis (diagonal drags are not supported).
func (c *Controller) FillDragOver(row, col int) {
	if !c.dragging {
		return
	}
	r0, c0, r1, c1 := c.sel.Normalized()
	switch c.dragAxis {
	case AxisNone:
		if row < r0 || row > r1 {
			c.dragAxis = AxisVertical
			c.dragTarget = c.clampRow(row)
		} else if col < c0 || col > c1 {
			c.dragAxis = AxisHorizontal
			c.dragTarget = c.clampCol(col)
		}
	case AxisVertical:
		c.dragTarget = c.clampRow(row)
	case AxisHorizontal:
		c.dragTarget = c.clampCol(col)
	}
}

// FillDragRelease ends the drag, running series continuation once per
// source row or column and applying the result as a single FillCells
// batch. The selection extends over the filled region.
func (c *Controller) FillDragRelease() {
	if !c.dragging {
		return
	}
	axis, target := c.dragAxis, c.dragTarget
	c.dragging = false
	c.dragAxis = AxisNone
	if axis == AxisNone {
		return
	}

	r0, c0, r1, c1 := c.sel.Normalized()
	var fills []CellFill
	switch axis {
	case AxisVertical:
		switch {
		case target > r1:
			for col := c0; col <= c1; col++ {
				cont := series.Continue(series.Detect(c.store.ColumnValues(r0, r1, col)), target-r1)
				for k, v := range cont {
					fills = append(fills, CellFill{Row: r1 + 1 + k, Col: col, Value: v})
				}
			}
			r1 = target
		case target < r0:
			// Source is read in drag order (bottom-up) so the series
			// continues toward the cursor.
			for col := c0; col <= c1; col++ {
				cont := series.Continue(series.Detect(c.store.ColumnValues(r1, r0, col)), r0-target)
				for k, v := range cont {
					fills = append(fills, CellFill{Row: r0 - 1 - k, Col: col, Value: v})
				}
			}
			r0 = target
		}
	case AxisHorizontal:
		switch {
		case target > c1:
			for row := r0; row <= r1; row++ {
				cont := series.Continue(series.Detect(c.store.RowValues(row, c0, c1)), target-c1)
				for k, v := range cont {
					fills = append(fills, CellFill{Row: row, Col: c1 + 1 + k, Value: v})
				}
			}
			c1 = target
		case target < c0:
			for row := r0; row <= r1; row++ {
				cont := series.Continue(series.Detect(c.store.RowValues(row, c1, c0)), c0-target)
				for k, v := range cont {
					fills = append(fills, CellFill{Row: row, Col: c0 - 1 - k, Value: v})
				}
			}
			c0 = target
		}
	}
	if len(fills) == 0 {
		return
	}
	c.store.FillCells(fills)
	c.sel = Selection{AnchorRow: r0, AnchorCol: c0, FocusRow: r1, FocusCol: c1}
}

// --- clipboard ---

// Copy captures the selection as a 2-D buffer and mirrors it to the
// system clipboard as tab/newline-delimited text, best-effort.
func (c *Controller) Copy() {
	if !c.hasSelection {
		return
	}
	c.clip = c.captureSelection()
	c.cutPending = false
	_ = c.writeSystem(encodeTSV(c.clip))
}

// Cut is Copy plus a deferred clear: the source cells empty after the
// next paste, except where the paste destination overlaps them.
func (c *Controller) Cut() {
	if !c.hasSelection {
		return
	}
	c.clip = c.captureSelection()
	c.cutPending = true
	c.cutSel = c.sel
	_ = c.writeSystem(encodeTSV(c.clip))
}

// Paste writes the buffered cells with the selection's top-left corner as
// the origin. Data past the grid edge is clipped, ragged lines clip
// independently, and the grid is never grown by a paste. When the
// in-memory buffer is empty the system clipboard is parsed as
// tab/newline-delimited text. The paste (plus any pending cut clears) is
// one FillCells batch, hence one undo step.
func (c *Controller) Paste() {
	if !c.hasSelection {
		return
	}
	data := c.clip
	if len(data) == 0 {
		if text, err := c.readSystem(); err == nil && text != "" {
			data = decodeTSV(text)
		}
	}
	if len(data) == 0 {
		return
	}

	r0, c0, _, _ := c.sel.Normalized()
	written := make(map[[2]int]bool)
	var fills []CellFill
	maxRow, maxCol := r0, c0
	for dr, line := range data {
		row := r0 + dr
		if row >= c.store.RowCount() {
			break
		}
		for dc, v := range line {
			col := c0 + dc
			if col >= c.store.ColumnCount() {
				break
			}
			fills = append(fills, CellFill{Row: row, Col: col, Value: v})
			written[[2]int{row, col}] = true
			if row > maxRow {
				maxRow = row
			}
			if col > maxCol {
				maxCol = col
			}
		}
	}

	if c.cutPending {
		sr0, sc0, sr1, sc1 := c.cutSel.Normalized()
		for row := sr0; row <= sr1; row++ {
			for col := sc0; col <= sc1; col++ {
				if !written[[2]int{row, col}] {
					fills = append(fills, CellFill{Row: row, Col: col, Value: ""})
				}
			}
		}
		c.cutPending = false
	}

	if len(fills) == 0 {
		return
	}
	c.store.FillCells(fills)
	c.sel = Selection{AnchorRow: r0, AnchorCol: c0, FocusRow: maxRow, FocusCol: maxCol}
}

func (c *Controller) captureSelection() [][]string {
	r0, c0, r1, c1 := c.sel.Normalized()
	out := make([][]string, 0, r1-r0+1)
	for row := r0; row <= r1; row++ {
		out = append(out, c.store.RowValues(row, c0, c1))
	}
	return out
}

func encodeTSV(data [][]string) string {
	lines := make([]string, len(data))
	for i, row := range data {
		lines[i] = strings.Join(row, "\t")
	}
	return strings.Join(lines, "\n")
}

func decodeTSV(text string) [][]string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([][]string, len(lines))
	for i, line := range lines {
		out[i] = strings.Split(line, "\t")
	}
	return out
}
