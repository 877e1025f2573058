// Package grid owns the batch-rename grid: the column/row/layer matrix,
// its undo/redo history, and the interactive selection-and-fill
// controller layered on top.
package grid

import (
	"strings"

	"github.com/google/uuid"

	"github.com/namegrid/namegrid/internal/layer"
	"github.com/namegrid/namegrid/internal/nameparse"
	"github.com/namegrid/namegrid/internal/spatial"
)

// historyCap bounds both history stacks. The oldest snapshot is evicted
// when a new mutation would exceed it.
const historyCap = 50

// Column is one grid column. ID is a stable identity independent of
// position, so inserting or deleting neighbors never disturbs references
// to an existing column.
type Column struct {
	ID     string
	Header string
}

// State is the full grid snapshot: column definitions, the cell matrix,
// and the parallel layer identity/type slices. Rows, LayerIDs and
// LayerKinds always have equal length, and every row is exactly as wide
// as Columns; every Store mutation maintains both invariants by touching
// rows and columns together.
type State struct {
	Columns    []Column
	Rows       [][]string
	LayerIDs   []string
	LayerKinds []layer.Kind
	Direction  spatial.Direction
}

// clone deep-copies the snapshot so history entries are isolated from
// later mutation.
func (s State) clone() State {
	out := State{
		Columns:    append([]Column(nil), s.Columns...),
		Rows:       make([][]string, len(s.Rows)),
		LayerIDs:   append([]string(nil), s.LayerIDs...),
		LayerKinds: append([]layer.Kind(nil), s.LayerKinds...),
		Direction:  s.Direction,
	}
	for i, row := range s.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// CellFill is one cell write inside a FillCells batch.
type CellFill struct {
	Row   int
	Col   int
	Value string
}

// Rename pairs a layer identity with its composed new name, ready for
// host application.
type Rename struct {
	LayerID string
	NewName string
}

// Store owns the grid state and its history. It is not safe for
// concurrent use; all callers run on the single UI goroutine.
type Store struct {
	state State
	undo  []State
	redo  []State
}

// NewStore returns an empty grid with the mandatory single column.
func NewStore() *Store {
	return &Store{state: State{
		Columns:   []Column{{ID: uuid.NewString(), Header: columnLabel(0)}},
		Direction: spatial.ReadingOrder,
	}}
}

// InitFromLayers replaces the entire grid from a fresh host selection:
// layers are ordered by direction (the last-used direction when empty),
// every name is parsed into tokens, rows are padded to the widest parse
// plus one blank trailing column, and history is reset. A fresh session
// is not an undoable edit.
func (s *Store) InitFromLayers(layers []layer.Ref, direction spatial.Direction) {
	if direction == "" {
		direction = s.state.Direction
	}
	sorted := spatial.Sort(layers, direction)

	parsed := make([]nameparse.ParsedName, len(sorted))
	for i, l := range sorted {
		parsed[i] = nameparse.Parse(l.Name)
	}
	width := nameparse.MaxColumns(parsed) + 1 // trailing blank column invites "add a segment"

	next := State{
		Columns:    make([]Column, width),
		Rows:       make([][]string, len(sorted)),
		LayerIDs:   make([]string, len(sorted)),
		LayerKinds: make([]layer.Kind, len(sorted)),
		Direction:  direction,
	}
	for c := 0; c < width; c++ {
		next.Columns[c] = Column{ID: uuid.NewString(), Header: columnLabel(c)}
	}
	for i, l := range sorted {
		next.Rows[i] = nameparse.Pad(parsed[i].Parts, width)
		next.LayerIDs[i] = l.ID
		next.LayerKinds[i] = l.Kind
	}
	s.state = next
	s.undo = nil
	s.redo = nil
}

// SetCellValue writes one cell. Out-of-range coordinates are ignored.
func (s *Store) SetCellValue(row, col int, value string) {
	if !s.inRange(row, col) {
		return
	}
	s.checkpoint()
	s.state.Rows[row][col] = value
}

// SetColumnHeader renames one column. An out-of-range index is ignored
// rather than rejected so a stale UI reference after a concurrent delete
// degrades to a no-op.
func (s *Store) SetColumnHeader(col int, header string) {
	if col < 0 || col >= len(s.state.Columns) {
		return
	}
	s.checkpoint()
	s.state.Columns[col].Header = header
}

// AddColumn inserts an empty column immediately after afterIndex in the
// column list and in every row. Pass -1 to insert at position 0. The new
// header follows the spreadsheet naming scheme for the grown width.
func (s *Store) AddColumn(afterIndex int) {
	if afterIndex < -1 || afterIndex >= len(s.state.Columns) {
		return
	}
	s.checkpoint()
	at := afterIndex + 1
	col := Column{ID: uuid.NewString(), Header: columnLabel(len(s.state.Columns))}
	s.state.Columns = append(s.state.Columns[:at], append([]Column{col}, s.state.Columns[at:]...)...)
	for i, row := range s.state.Rows {
		s.state.Rows[i] = append(row[:at], append([]string{""}, row[at:]...)...)
	}
}

// DeleteColumn removes one column from the column list and from every
// row. The last remaining column is never deleted.
func (s *Store) DeleteColumn(col int) {
	if col < 0 || col >= len(s.state.Columns) || len(s.state.Columns) == 1 {
		return
	}
	s.checkpoint()
	s.state.Columns = append(s.state.Columns[:col], s.state.Columns[col+1:]...)
	for i, row := range s.state.Rows {
		s.state.Rows[i] = append(row[:col], row[col+1:]...)
	}
}

// FillCells applies a batch of cell writes as one history entry, so a
// whole drag-fill or paste reverts with a single undo. Out-of-range
// entries are dropped; an effectively empty batch is not a history event.
func (s *Store) FillCells(fills []CellFill) {
	valid := fills[:0:0]
	for _, f := range fills {
		if s.inRange(f.Row, f.Col) {
			valid = append(valid, f)
		}
	}
	if len(valid) == 0 {
		return
	}
	s.checkpoint()
	for _, f := range valid {
		s.state.Rows[f.Row][f.Col] = f.Value
	}
}

// ReorderByDirection recomputes the spatial order and permutes existing
// rows into it by layer identity, preserving every in-progress edit. It
// is a history event: with full-state snapshots an undo past a silent
// reorder would revert the row order anyway, so making it explicit keeps
// undo strictly last-in-first-out.
func (s *Store) ReorderByDirection(layers []layer.Ref, direction spatial.Direction) {
	s.checkpoint()
	s.state.Direction = direction

	index := make(map[string]int, len(s.state.LayerIDs))
	for i, id := range s.state.LayerIDs {
		index[id] = i
	}

	perm := make([]int, 0, len(s.state.Rows))
	seen := make(map[int]bool, len(s.state.Rows))
	for _, l := range spatial.Sort(layers, direction) {
		if i, ok := index[l.ID]; ok && !seen[i] {
			perm = append(perm, i)
			seen[i] = true
		}
	}
	// Rows the host no longer reports keep their relative order at the end.
	for i := range s.state.Rows {
		if !seen[i] {
			perm = append(perm, i)
		}
	}

	rows := make([][]string, len(perm))
	ids := make([]string, len(perm))
	kinds := make([]layer.Kind, len(perm))
	for to, from := range perm {
		rows[to] = s.state.Rows[from]
		ids[to] = s.state.LayerIDs[from]
		kinds[to] = s.state.LayerKinds[from]
	}
	s.state.Rows = rows
	s.state.LayerIDs = ids
	s.state.LayerKinds = kinds
}

// Undo restores the previous snapshot. No-op with an empty stack.
func (s *Store) Undo() {
	if len(s.undo) == 0 {
		return
	}
	s.redo = push(s.redo, s.state)
	s.state = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
}

// Redo re-applies the last undone snapshot. No-op with an empty stack.
func (s *Store) Redo() {
	if len(s.redo) == 0 {
		return
	}
	s.undo = push(s.undo, s.state)
	s.state = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
}

// checkpoint snapshots the pre-mutation state onto the undo stack and
// invalidates redo.
func (s *Store) checkpoint() {
	s.undo = push(s.undo, s.state.clone())
	s.redo = nil
}

func push(stack []State, st State) []State {
	if len(stack) >= historyCap {
		stack = stack[1:]
	}
	return append(stack, st)
}

// --- reads ---

// RowCount returns the number of rows.
func (s *Store) RowCount() int { return len(s.state.Rows) }

// ColumnCount returns the number of columns. Always at least 1 once the
// store exists.
func (s *Store) ColumnCount() int { return len(s.state.Columns) }

// Columns returns a copy of the column definitions.
func (s *Store) Columns() []Column {
	return append([]Column(nil), s.state.Columns...)
}

// CellValue returns one cell, or "" out of range.
func (s *Store) CellValue(row, col int) string {
	if !s.inRange(row, col) {
		return ""
	}
	return s.state.Rows[row][col]
}

// LayerID returns the layer identity of one row, or "" out of range.
func (s *Store) LayerID(row int) string {
	if row < 0 || row >= len(s.state.LayerIDs) {
		return ""
	}
	return s.state.LayerIDs[row]
}

// LayerKind returns the layer kind of one row.
func (s *Store) LayerKind(row int) layer.Kind {
	if row < 0 || row >= len(s.state.LayerKinds) {
		return ""
	}
	return s.state.LayerKinds[row]
}

// Direction returns the current spatial ordering.
func (s *Store) Direction() spatial.Direction { return s.state.Direction }

// UndoDepth returns the number of undoable snapshots.
func (s *Store) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of redoable snapshots.
func (s *Store) RedoDepth() int { return len(s.redo) }

// ColumnValues projects rows rowStart..rowEnd (inclusive) of one column,
// in that order; a reversed range reads bottom-up. Out-of-range cells
// read as "".
func (s *Store) ColumnValues(rowStart, rowEnd, col int) []string {
	return s.project(rowStart, rowEnd, func(i int) string { return s.CellValue(i, col) })
}

// RowValues projects columns colStart..colEnd (inclusive) of one row.
func (s *Store) RowValues(row, colStart, colEnd int) []string {
	return s.project(colStart, colEnd, func(i int) string { return s.CellValue(row, i) })
}

func (s *Store) project(from, to int, get func(int) string) []string {
	step := 1
	n := to - from + 1
	if to < from {
		step = -1
		n = from - to + 1
	}
	out := make([]string, 0, n)
	for i := from; ; i += step {
		out = append(out, get(i))
		if i == to {
			break
		}
	}
	return out
}

// PreviewNames composes the would-be name of every row. Empty cells
// render as a single space so word boundaries survive intentionally
// blank segments; leading/trailing whitespace (including the mandatory
// blank trailing column) is trimmed.
func (s *Store) PreviewNames() []string {
	out := make([]string, len(s.state.Rows))
	for i := range s.state.Rows {
		out[i] = s.composeRow(i)
	}
	return out
}

// Renames pairs every row's layer identity with its composed name. Rows
// composing to the empty string are omitted: a layer cannot be renamed
// to nothing.
func (s *Store) Renames() []Rename {
	out := make([]Rename, 0, len(s.state.Rows))
	for i := range s.state.Rows {
		name := s.composeRow(i)
		if name == "" {
			continue
		}
		out = append(out, Rename{LayerID: s.state.LayerIDs[i], NewName: name})
	}
	return out
}

func (s *Store) composeRow(row int) string {
	var b strings.Builder
	for _, cell := range s.state.Rows[row] {
		if cell == "" {
			b.WriteByte(' ')
			continue
		}
		b.WriteString(cell)
	}
	return strings.TrimSpace(b.String())
}

func (s *Store) inRange(row, col int) bool {
	return row >= 0 && row < len(s.state.Rows) && col >= 0 && col < len(s.state.Columns)
}

// columnLabel is the spreadsheet-style header for a zero-based index:
// A..Z, then AA, AB, ...
func columnLabel(i int) string {
	label := ""
	for i >= 0 {
		label = string(rune('A'+i%26)) + label
		i = i/26 - 1
	}
	return label
}
