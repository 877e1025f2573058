package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/muesli/reflow/wordwrap"
)

// helpSection groups related bindings for the overlay.
type helpSection struct {
	title    string
	bindings []key.Binding
}

// quickHelp and gridHelp pick the sections relevant to each mode.
var (
	quickHelp = func(k KeyMap) []helpSection {
		return []helpSection{
			{"Quick rename", []key.Binding{k.Commit, k.NextLayer, k.PrevLayer, k.EnterFrame, k.GridMode}},
			{"General", []key.Binding{k.Help, k.Quit}},
		}
	}
	gridHelp = func(k KeyMap) []helpSection {
		return []helpSection{
			{"Navigate", []key.Binding{k.Up, k.Down, k.Left, k.Right, k.ExtendDown, k.ExtendRight}},
			{"Edit", []key.Binding{k.Edit, k.EditReplace, k.CommitNext, k.CommitDown, k.Escape}},
			{"Cells", []key.Binding{k.Copy, k.CutCells, k.PasteCells, k.Undo, k.Redo}},
			{"Columns", []key.Binding{k.EditHeader, k.InsertColumn, k.DeleteColumn}},
			{"Grid", []key.Binding{k.CycleSort, k.ZoomLayer, k.Apply, k.Help, k.Quit}},
		}
	}
)

// viewHelp renders the binding overlay, word-wrapped to the terminal.
func (m Model) viewHelp(sections func(KeyMap) []helpSection) string {
	width := m.width - 4
	if width < 20 {
		width = 20
	}
	var b strings.Builder
	for i, section := range sections(m.keys) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(section.title)
		b.WriteString(": ")
		entries := make([]string, 0, len(section.bindings))
		for _, binding := range section.bindings {
			h := binding.Help()
			entries = append(entries, h.Key+" "+h.Desc)
		}
		b.WriteString(wordwrap.String(strings.Join(entries, "  ·  "), width))
	}
	return helpBox.Render(b.String())
}
