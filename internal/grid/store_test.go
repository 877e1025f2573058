package grid

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/namegrid/namegrid/internal/layer"
	"github.com/namegrid/namegrid/internal/spatial"
)

// testStore builds a store directly from a cell matrix, bypassing name
// parsing, so mutation tests can use arbitrary values.
func testStore(rows [][]string) *Store {
	width := 1
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	st := State{Direction: spatial.ReadingOrder}
	for c := 0; c < width; c++ {
		st.Columns = append(st.Columns, Column{ID: fmt.Sprintf("col-%d", c), Header: columnLabel(c)})
	}
	for i, row := range rows {
		padded := make([]string, width)
		copy(padded, row)
		st.Rows = append(st.Rows, padded)
		st.LayerIDs = append(st.LayerIDs, fmt.Sprintf("layer-%d", i))
		st.LayerKinds = append(st.LayerKinds, layer.KindFrame)
	}
	return &Store{state: st}
}

func checkInvariants(t *testing.T, s *Store) {
	t.Helper()
	if len(s.state.Rows) != len(s.state.LayerIDs) || len(s.state.Rows) != len(s.state.LayerKinds) {
		t.Fatalf("parallel slice lengths diverged: rows=%d layerIDs=%d layerKinds=%d",
			len(s.state.Rows), len(s.state.LayerIDs), len(s.state.LayerKinds))
	}
	for i, row := range s.state.Rows {
		if len(row) != len(s.state.Columns) {
			t.Fatalf("row %d has %d cells, want %d", i, len(row), len(s.state.Columns))
		}
	}
	if len(s.state.Columns) == 0 {
		t.Fatal("column list is empty")
	}
}

func TestInitFromLayers(t *testing.T) {
	s := NewStore()
	s.InitFromLayers([]layer.Ref{
		{ID: "2", Name: "btn_secondary_hover", X: 0, Y: 40, Kind: layer.KindFrame},
		{ID: "1", Name: "btn_primary_hover", X: 0, Y: 0, Kind: layer.KindFrame},
	}, spatial.ReadingOrder)
	checkInvariants(t, s)

	// 5 parsed tokens (btn _ primary _ hover) plus one blank trailing column.
	if got := s.ColumnCount(); got != 6 {
		t.Fatalf("ColumnCount() = %d, want 6", got)
	}
	if got, want := s.LayerID(0), "1"; got != want {
		t.Errorf("row 0 layer = %q, want %q (reading order puts y=0 first)", got, want)
	}
	cols := s.Columns()
	for i, want := range []string{"A", "B", "C", "D", "E", "F"} {
		if cols[i].Header != want {
			t.Errorf("column %d header = %q, want %q", i, cols[i].Header, want)
		}
	}

	// Before any edit the composed names reproduce the originals.
	want := []Rename{
		{LayerID: "1", NewName: "btn_primary_hover"},
		{LayerID: "2", NewName: "btn_secondary_hover"},
	}
	if got := s.Renames(); !reflect.DeepEqual(got, want) {
		t.Errorf("Renames() = %v, want %v", got, want)
	}

	if s.UndoDepth() != 0 {
		t.Errorf("fresh session pushed %d history entries, want 0", s.UndoDepth())
	}
}

func TestInitFromLayersEmptySelection(t *testing.T) {
	s := NewStore()
	s.InitFromLayers(nil, spatial.LeftToRight)
	checkInvariants(t, s)
	if s.RowCount() != 0 || s.ColumnCount() != 2 {
		t.Errorf("got %d rows, %d columns, want 0 rows, 2 columns", s.RowCount(), s.ColumnCount())
	}
}

func TestColumnLabel(t *testing.T) {
	for i, want := range map[int]string{0: "A", 1: "B", 25: "Z", 26: "AA", 27: "AB", 51: "AZ", 52: "BA", 701: "ZZ", 702: "AAA"} {
		if got := columnLabel(i); got != want {
			t.Errorf("columnLabel(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestSetCellValue(t *testing.T) {
	s := testStore([][]string{{"a", "b"}, {"c", "d"}})
	s.SetCellValue(1, 0, "edited")
	if got := s.CellValue(1, 0); got != "edited" {
		t.Errorf("CellValue(1,0) = %q, want %q", got, "edited")
	}
	if s.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", s.UndoDepth())
	}

	// Out-of-range writes are ignored and do not touch history.
	s.SetCellValue(5, 0, "x")
	s.SetCellValue(0, -1, "x")
	if s.UndoDepth() != 1 {
		t.Errorf("out-of-range write pushed history: depth = %d, want 1", s.UndoDepth())
	}
	checkInvariants(t, s)
}

func TestColumnMutations(t *testing.T) {
	s := testStore([][]string{{"a", "b"}, {"c", "d"}})

	s.AddColumn(0)
	checkInvariants(t, s)
	if s.ColumnCount() != 3 {
		t.Fatalf("ColumnCount() = %d, want 3", s.ColumnCount())
	}
	if got := s.CellValue(0, 1); got != "" {
		t.Errorf("inserted column cell = %q, want empty", got)
	}
	if got := s.CellValue(0, 2); got != "b" {
		t.Errorf("shifted cell = %q, want %q", got, "b")
	}
	if got := s.Columns()[1].Header; got != "C" {
		t.Errorf("new column header = %q, want %q (label of grown width)", got, "C")
	}

	s.AddColumn(-1)
	checkInvariants(t, s)
	if got := s.CellValue(0, 0); got != "" {
		t.Errorf("prepended column cell = %q, want empty", got)
	}

	s.DeleteColumn(0)
	checkInvariants(t, s)
	if got := s.CellValue(0, 0); got != "a" {
		t.Errorf("after delete CellValue(0,0) = %q, want %q", got, "a")
	}

	// Column identity survives neighbors being inserted and deleted.
	id := s.Columns()[2].ID
	s.AddColumn(0)
	s.DeleteColumn(1)
	if got := s.Columns()[2].ID; got != id {
		t.Errorf("column identity changed across neighbor mutations: %q != %q", got, id)
	}
}

func TestDeleteLastColumnRefused(t *testing.T) {
	s := testStore([][]string{{"only"}})
	s.DeleteColumn(0)
	if s.ColumnCount() != 1 {
		t.Fatalf("last column was deleted")
	}
	if s.UndoDepth() != 0 {
		t.Errorf("refused delete pushed history: depth = %d", s.UndoDepth())
	}
}

func TestSetColumnHeader(t *testing.T) {
	s := testStore([][]string{{"a", "b"}})
	s.SetColumnHeader(1, "state")
	if got := s.Columns()[1].Header; got != "state" {
		t.Errorf("header = %q, want %q", got, "state")
	}
	s.SetColumnHeader(7, "nope")
	if s.UndoDepth() != 1 {
		t.Errorf("out-of-range header rename pushed history: depth = %d, want 1", s.UndoDepth())
	}
}

func TestFillCellsAtomic(t *testing.T) {
	s := testStore([][]string{{"a", "b"}, {"c", "d"}})
	s.FillCells([]CellFill{
		{Row: 0, Col: 0, Value: "1"},
		{Row: 1, Col: 0, Value: "2"},
		{Row: 9, Col: 9, Value: "dropped"}, // clipped, not an error
	})
	if s.CellValue(0, 0) != "1" || s.CellValue(1, 0) != "2" {
		t.Fatalf("fill not applied: %q, %q", s.CellValue(0, 0), s.CellValue(1, 0))
	}
	if s.UndoDepth() != 1 {
		t.Fatalf("batch produced %d history entries, want 1", s.UndoDepth())
	}
	s.Undo()
	if s.CellValue(0, 0) != "a" || s.CellValue(1, 0) != "c" {
		t.Errorf("single undo did not revert the whole batch")
	}

	// A batch with nothing in range is not a history event.
	s.FillCells([]CellFill{{Row: 9, Col: 9, Value: "x"}})
	if s.UndoDepth() != 0 {
		t.Errorf("empty-effect batch pushed history")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := testStore([][]string{{"a"}})
	before := s.state.clone()

	s.SetCellValue(0, 0, "after")
	after := s.state.clone()

	s.Undo()
	if !reflect.DeepEqual(s.state, before) {
		t.Fatalf("undo(op(state)) != state before: %+v", s.state)
	}
	s.Redo()
	if !reflect.DeepEqual(s.state, after) {
		t.Fatalf("redo(undo(op(state))) != op(state): %+v", s.state)
	}

	// Undo/redo with empty stacks are no-ops.
	s.Redo()
	s.Undo()
	s.Undo()
	if !reflect.DeepEqual(s.state, before) {
		t.Fatalf("no-op undo/redo changed state")
	}
}

func TestRedoClearedByMutation(t *testing.T) {
	s := testStore([][]string{{"a"}})
	s.SetCellValue(0, 0, "b")
	s.Undo()
	if s.RedoDepth() != 1 {
		t.Fatalf("RedoDepth() = %d, want 1", s.RedoDepth())
	}
	s.SetCellValue(0, 0, "c")
	if s.RedoDepth() != 0 {
		t.Errorf("mutation left %d redo entries, want 0", s.RedoDepth())
	}
}

func TestHistoryCapacityEvictsOldest(t *testing.T) {
	s := testStore([][]string{{"0"}})
	for i := 1; i <= historyCap+10; i++ {
		s.SetCellValue(0, 0, fmt.Sprintf("%d", i))
	}
	if s.UndoDepth() != historyCap {
		t.Fatalf("UndoDepth() = %d, want %d", s.UndoDepth(), historyCap)
	}
	for s.UndoDepth() > 0 {
		s.Undo()
	}
	// The oldest retained snapshot is 10 mutations in, not the origin.
	if got := s.CellValue(0, 0); got != "10" {
		t.Errorf("deepest undo = %q, want %q", got, "10")
	}
}

func TestReorderPreservesEdits(t *testing.T) {
	layers := []layer.Ref{
		{ID: "top", Name: "item_1", X: 0, Y: 0},
		{ID: "bottom", Name: "item_2", X: 0, Y: 100},
	}
	s := NewStore()
	s.InitFromLayers(layers, spatial.ReadingOrder)
	if s.LayerID(0) != "top" {
		t.Fatalf("setup: row 0 = %q, want top", s.LayerID(0))
	}

	s.SetCellValue(0, 0, "edited")
	s.ReorderByDirection(layers, spatial.BottomToTop)
	checkInvariants(t, s)

	if s.LayerID(0) != "bottom" {
		t.Fatalf("row 0 after reorder = %q, want bottom", s.LayerID(0))
	}
	// The edit follows its layer to the new row index.
	if got := s.CellValue(1, 0); got != "edited" {
		t.Errorf("edited value at top's new row = %q, want %q", got, "edited")
	}

	// Reorder is itself undoable.
	s.Undo()
	if s.LayerID(0) != "top" || s.CellValue(0, 0) != "edited" {
		t.Errorf("undo of reorder: row 0 = %q cell = %q", s.LayerID(0), s.CellValue(0, 0))
	}
}

func TestPreviewNamesAndRenames(t *testing.T) {
	s := testStore([][]string{
		{"icon", "_", "home", ""},
		{"", "", "", ""},
	})
	want := []string{"icon_home", ""}
	if got := s.PreviewNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("PreviewNames() = %q, want %q", got, want)
	}
	// Interior blanks read as one space; the all-blank row is omitted from
	// renames entirely.
	s.SetCellValue(0, 1, "")
	if got := s.PreviewNames()[0]; got != "icon home" {
		t.Errorf("preview with interior blank = %q, want %q", got, "icon home")
	}
	renames := s.Renames()
	if len(renames) != 1 || renames[0].LayerID != "layer-0" {
		t.Errorf("Renames() = %v, want single entry for layer-0", renames)
	}
}

func TestProjections(t *testing.T) {
	s := testStore([][]string{{"a", "1"}, {"b", "2"}, {"c", "3"}})
	if got := s.ColumnValues(0, 2, 1); !reflect.DeepEqual(got, []string{"1", "2", "3"}) {
		t.Errorf("ColumnValues(0,2,1) = %v", got)
	}
	if got := s.ColumnValues(2, 0, 0); !reflect.DeepEqual(got, []string{"c", "b", "a"}) {
		t.Errorf("reversed ColumnValues(2,0,0) = %v", got)
	}
	if got := s.RowValues(1, 0, 1); !reflect.DeepEqual(got, []string{"b", "2"}) {
		t.Errorf("RowValues(1,0,1) = %v", got)
	}
}
