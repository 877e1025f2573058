package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap declares every binding of the grid and quick modes so the help
// overlay can be generated from one place.
type KeyMap struct {
	// shared
	Quit key.Binding
	Help key.Binding

	// quick mode
	Commit       key.Binding
	NextLayer    key.Binding
	PrevLayer    key.Binding
	EnterFrame   key.Binding
	GridMode     key.Binding

	// grid mode
	Up           key.Binding
	Down         key.Binding
	Left         key.Binding
	Right        key.Binding
	ExtendUp     key.Binding
	ExtendDown   key.Binding
	ExtendLeft   key.Binding
	ExtendRight  key.Binding
	Edit         key.Binding
	EditReplace  key.Binding
	CommitNext   key.Binding
	CommitDown   key.Binding
	Escape       key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Copy         key.Binding
	CutCells     key.Binding
	PasteCells   key.Binding
	EditHeader   key.Binding
	InsertColumn key.Binding
	DeleteColumn key.Binding
	CycleSort    key.Binding
	ZoomLayer    key.Binding
	Apply        key.Binding
}

// DefaultKeyMap mirrors the bindings listed in the help overlay.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(key.WithKeys("ctrl+q"), key.WithHelp("ctrl+q", "quit")),
		Help: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "toggle help")),

		Commit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply name now")),
		NextLayer:  key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "next layer")),
		PrevLayer:  key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "previous layer")),
		EnterFrame: key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "enter frame")),
		GridMode:   key.NewBinding(key.WithKeys("ctrl+b"), key.WithHelp("ctrl+b", "batch grid mode")),

		Up:           key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "move up")),
		Down:         key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "move down")),
		Left:         key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "move left")),
		Right:        key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "move right")),
		ExtendUp:     key.NewBinding(key.WithKeys("shift+up"), key.WithHelp("shift+↑", "extend up")),
		ExtendDown:   key.NewBinding(key.WithKeys("shift+down"), key.WithHelp("shift+↓", "extend down")),
		ExtendLeft:   key.NewBinding(key.WithKeys("shift+left"), key.WithHelp("shift+←", "extend left")),
		ExtendRight:  key.NewBinding(key.WithKeys("shift+right"), key.WithHelp("shift+→", "extend right")),
		Edit:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit cell")),
		EditReplace:  key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "edit cell (replace)")),
		CommitNext:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "commit, move right")),
		CommitDown:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "commit, move down")),
		Escape:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel / clear / leave")),
		Undo:         key.NewBinding(key.WithKeys("ctrl+z"), key.WithHelp("ctrl+z", "undo")),
		Redo:         key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "redo")),
		Copy:         key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "copy")),
		CutCells:     key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		PasteCells:   key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		EditHeader:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "edit column header")),
		InsertColumn: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "insert column after")),
		DeleteColumn: key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "delete column")),
		CycleSort:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "cycle sort direction")),
		ZoomLayer:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "zoom host to layer")),
		Apply:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "apply renames")),
	}
}
