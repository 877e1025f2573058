package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/namegrid/namegrid/internal/host"
)

// updateQuickKey handles quick mode: a single input bound to the live
// selection. Typing renames after a short debounce; commit keys flush
// immediately.
func (m Model) updateQuickKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		return m, nil

	case msg.Type == tea.KeyEsc:
		return m, tea.Quit

	case key.Matches(msg, m.keys.Commit):
		m.debounceSeq++ // cancel the pending debounce; we send now
		m.conn.Send(host.Rename{Name: m.quickInput.Value()})
		return m, nil

	case key.Matches(msg, m.keys.NextLayer):
		m.zoomPending = true
		m.conn.Send(host.SelectNext{})
		return m, nil

	case key.Matches(msg, m.keys.PrevLayer):
		m.zoomPending = true
		m.conn.Send(host.SelectPrevious{})
		return m, nil

	case key.Matches(msg, m.keys.EnterFrame):
		m.conn.Send(host.EnterFrame{})
		return m, nil

	case key.Matches(msg, m.keys.GridMode):
		m.conn.Send(host.GetLayerPositions{})
		return m, nil
	}

	before := m.quickInput.Value()
	var cmd tea.Cmd
	m.quickInput, cmd = m.quickInput.Update(msg)
	if m.quickInput.Value() == before {
		return m, cmd
	}

	// Live rename, debounced so a keystroke burst sends once.
	m.debounceSeq++
	seq := m.debounceSeq
	debounce := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return debounceMsg{Seq: seq}
	})
	return m, tea.Batch(cmd, debounce)
}

func (m Model) viewQuick() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("namegrid"))
	b.WriteString("\n\n")

	if !m.haveSelection {
		b.WriteString(dimStyle.Render("Nothing selected in the host."))
		b.WriteString("\n")
	} else {
		b.WriteString(m.quickInput.View())
		b.WriteString("\n\n")

		meta := fmt.Sprintf("%d selected", m.selection.Count)
		if m.selection.LayerType != "" {
			meta += fmt.Sprintf(" · %s", m.selection.LayerType)
		}
		b.WriteString(statusStyle.Render(meta))
		b.WriteString("\n")
		if m.selection.HasLocked {
			b.WriteString(warnStyle.Render("Some layers are locked; the host will skip them."))
			b.WriteString("\n")
		}
	}

	if m.bridgeNote != "" {
		b.WriteString(warnStyle.Render(m.bridgeNote))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.helpVisible {
		b.WriteString(m.viewHelp(quickHelp))
	} else {
		b.WriteString(dimStyle.Render("tab next · shift+tab prev · ctrl+f enter frame · ctrl+b grid · ctrl+g help · esc quit"))
	}
	return b.String()
}
