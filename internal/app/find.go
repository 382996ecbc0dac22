package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/toast"
)

// openFindPanel shows the find/replace panel, or moves focus back to the
// find field when it is already open.
func (m *Model) openFindPanel() tea.Cmd {
	m.finding = true
	m.findFocus = findFieldFind
	m.editor.Blur()
	m.replaceInput.Blur()
	m.matchCount = m.session.CountOccurrences(m.findInput.Value())
	m.status = "Find: Enter replace all, Alt+Enter replace first, Tab switch, Esc close"
	return m.findInput.Focus()
}

func (m *Model) closeFindPanel() {
	m.finding = false
	m.findInput.Blur()
	m.replaceInput.Blur()
	m.editor.Focus()
	m.status = "Find closed"
}

func (m *Model) focusedFindInput() *textinput.Model {
	if m.findFocus == findFieldReplace {
		return &m.replaceInput
	}
	return &m.findInput
}

func (m *Model) switchFindFocus() tea.Cmd {
	if m.findFocus == findFieldFind {
		m.findFocus = findFieldReplace
		m.findInput.Blur()
		return m.replaceInput.Focus()
	}
	m.findFocus = findFieldFind
	m.replaceInput.Blur()
	return m.findInput.Focus()
}

// handleFindKey routes keys while the panel has focus. Bound actions still
// work so undo, theme and quit are reachable without closing the panel.
func (m *Model) handleFindKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeFindPanel()
		return nil
	case "tab", "shift+tab", "up", "down":
		return m.switchFindFocus()
	case "enter":
		return m.replaceAll()
	case "alt+enter":
		return m.replaceFirst()
	}

	switch action := m.actionForKey(msg.String()); action {
	case "":
	case actionFind:
		m.findFocus = findFieldReplace
		return m.switchFindFocus()
	case actionPaste:
		m.pasteIntoInput(m.focusedFindInput())
		m.matchCount = m.session.CountOccurrences(m.findInput.Value())
		return nil
	default:
		return m.runAction(action)
	}

	input := m.focusedFindInput()
	before := m.findInput.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if m.findInput.Value() != before {
		m.matchCount = m.session.CountOccurrences(m.findInput.Value())
	}
	return cmd
}

// replaceAll replaces every non-overlapping literal occurrence. Empty find
// text is a warning and no matches is informational; neither touches
// history.
func (m *Model) replaceAll() tea.Cmd {
	find := m.findInput.Value()
	if find == "" {
		m.notify(toast.Warning, "Enter text to find")
		return nil
	}
	n := m.session.FindAndReplace(find, m.replaceInput.Value())
	if n == 0 {
		m.notify(toast.Info, "No matches found")
		return nil
	}
	m.loadSessionIntoEditor()
	m.notify(toast.Success, fmt.Sprintf("Replaced %d occurrence(s)", n))
	return m.refreshSide()
}

func (m *Model) replaceFirst() tea.Cmd {
	find := m.findInput.Value()
	if find == "" {
		m.notify(toast.Warning, "Enter text to find")
		return nil
	}
	if m.session.CountOccurrences(find) == 0 {
		m.notify(toast.Info, "No matches found")
		return nil
	}
	if !m.session.ReplaceFirst(find, m.replaceInput.Value()) {
		m.notify(toast.Info, "Replacement matches the original text")
		return nil
	}
	m.loadSessionIntoEditor()
	m.notify(toast.Success, "Replaced 1 occurrence(s)")
	return m.refreshSide()
}
