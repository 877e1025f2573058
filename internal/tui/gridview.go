package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/namegrid/namegrid/internal/grid"
	"github.com/namegrid/namegrid/internal/termui/scrollbar"
)

// gridTopRows is the chrome above the first data row (title + header),
// used to map mouse Y positions onto the viewport edge for auto-scroll.
const gridTopRows = 2

const (
	minCellWidth    = 3
	maxCellWidth    = 16
	maxPreviewWidth = 40
)

func (m Model) viewGrid() string {
	widths := m.columnWidths()
	previews := m.store.PreviewNames()
	cols := m.store.Columns()
	sel, hasSel := m.ctrl.Selection()

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("namegrid · %d layers · %s",
		m.store.RowCount(), m.store.Direction())))
	b.WriteString("\n")

	// Header row. The gutter column holds row numbers below.
	gutter := numberWidth(m.store.RowCount())
	b.WriteString(strings.Repeat(" ", gutter+1))
	for c, col := range cols {
		text := col.Header
		if m.editingHeader && m.headerCol == c {
			text = m.editorView(widths[c])
		} else {
			text = headerStyle.Render(fit(text, widths[c]))
		}
		b.WriteString(m.zones.Mark(headerZoneID(c), text))
		b.WriteString(" ")
	}
	b.WriteString(headerStyle.Render(fit("preview", m.previewWidth(previews))))
	b.WriteString("\n")

	body := m.viewRows(widths, previews, sel, hasSel, gutter)
	bar := scrollbar.New(
		scrollbar.WithContentHeight(m.store.RowCount()),
		scrollbar.WithViewportHeight(m.visibleRows()),
		scrollbar.WithYOffset(m.scrollY),
	).View()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, body, bar))
	b.WriteString("\n")

	b.WriteString(m.viewGridStatus(sel, hasSel))
	b.WriteString("\n")
	if m.helpVisible {
		b.WriteString(m.viewHelp(gridHelp))
	} else {
		b.WriteString(dimStyle.Render("ctrl+s apply · ctrl+z undo · ctrl+o sort · ctrl+g help · esc back"))
	}
	return b.String()
}

// viewRows renders the visible data window, marking a mouse zone per cell
// and the fill handle after the selection's bottom-right cell.
func (m Model) viewRows(widths []int, previews []string, sel grid.Selection, hasSel bool, gutter int) string {
	r1, c1 := -1, -1
	if hasSel {
		_, _, r1, c1 = sel.Normalized()
	}

	last := m.scrollY + m.visibleRows()
	if last > m.store.RowCount() {
		last = m.store.RowCount()
	}

	var b strings.Builder
	for r := m.scrollY; r < last; r++ {
		b.WriteString(gutterStyle.Render(fmt.Sprintf("%*d", gutter, r+1)))
		b.WriteString(" ")
		for c := 0; c < len(widths); c++ {
			b.WriteString(m.zones.Mark(cellZoneID(r, c), m.renderCell(r, c, widths[c], sel, hasSel)))
			// The separator after the selection's bottom-right cell is the
			// drag-fill handle.
			if hasSel && r == r1 && c == c1 {
				b.WriteString(m.zones.Mark(zoneFillHandle, handleStyle.Render("+")))
			} else {
				b.WriteString(" ")
			}
		}
		if r < len(previews) {
			b.WriteString(previewSty.Render(fit(previews[r], m.previewWidth(previews))))
		}
		if r < last-1 {
			b.WriteString("\n")
		}
	}
	// Pad so the scrollbar always joins against a full-height block.
	for i := last - m.scrollY; i < m.visibleRows(); i++ {
		b.WriteString("\n")
	}
	if m.store.RowCount() == 0 {
		b.WriteString(dimStyle.Render("no layers: the host selection was empty"))
	}
	return b.String()
}

func (m Model) renderCell(r, c, width int, sel grid.Selection, hasSel bool) string {
	isAnchor := hasSel && sel.AnchorRow == r && sel.AnchorCol == c
	if isAnchor && !m.editingHeader && m.ctrl.Editing() != grid.EditNone {
		return m.editorView(width)
	}
	text := fit(m.store.CellValue(r, c), width)
	switch {
	case isAnchor:
		return anchorStyle.Render(text)
	case hasSel && sel.Contains(r, c):
		return rangeStyle.Render(text)
	default:
		return cellStyle.Render(text)
	}
}

// editorView renders the shared inline editor clipped to a cell width.
func (m Model) editorView(width int) string {
	ed := m.editor
	ed.Width = width
	return ed.View()
}

func (m Model) viewGridStatus(sel grid.Selection, hasSel bool) string {
	parts := []string{}
	if hasSel {
		r0, c0, r1, c1 := sel.Normalized()
		if r0 == r1 && c0 == c1 {
			parts = append(parts, fmt.Sprintf("cell %s%d", columnRef(c0), r0+1))
		} else {
			parts = append(parts, fmt.Sprintf("range %s%d:%s%d", columnRef(c0), r0+1, columnRef(c1), r1+1))
		}
	} else {
		parts = append(parts, "no selection")
	}
	parts = append(parts, fmt.Sprintf("undo %d · redo %d", m.store.UndoDepth(), m.store.RedoDepth()))
	if m.applied {
		parts = append(parts, "applied")
	}
	if m.bridgeNote != "" {
		parts = append(parts, warnStyle.Render(m.bridgeNote))
	}
	return statusStyle.Render(strings.Join(parts, " · "))
}

// columnWidths sizes every column to its widest content, clamped so one
// long value cannot push the rest of the grid off screen.
func (m Model) columnWidths() []int {
	cols := m.store.Columns()
	widths := make([]int, len(cols))
	for c, col := range cols {
		w := runewidth.StringWidth(col.Header)
		for r := 0; r < m.store.RowCount(); r++ {
			if cw := runewidth.StringWidth(m.store.CellValue(r, c)); cw > w {
				w = cw
			}
		}
		if w < minCellWidth {
			w = minCellWidth
		}
		if w > maxCellWidth {
			w = maxCellWidth
		}
		widths[c] = w
	}
	return widths
}

func (m Model) previewWidth(previews []string) int {
	w := len("preview")
	for _, p := range previews {
		if pw := runewidth.StringWidth(p); pw > w {
			w = pw
		}
	}
	if w > maxPreviewWidth {
		w = maxPreviewWidth
	}
	return w
}

// fit pads or truncates to an exact display width.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// columnRef is the spreadsheet-style reference used in the status bar.
func columnRef(c int) string {
	ref := ""
	for c >= 0 {
		ref = string(rune('A'+c%26)) + ref
		c = c/26 - 1
	}
	return ref
}

func numberWidth(n int) int {
	return len(fmt.Sprintf("%d", n))
}
