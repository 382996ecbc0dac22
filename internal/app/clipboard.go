package app

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/toast"
)

// copyToClipboard copies the whole buffer.
func (m *Model) copyToClipboard() {
	if err := m.clipboard.WriteAll(m.session.Text()); err != nil {
		m.setStatusError("Failed to copy", err)
		return
	}
	m.notify(toast.Success, "Copied to clipboard!")
}

// pasteFromClipboard inserts clipboard text at the cursor. A paste is a
// discrete edit and gets its own history entry.
func (m *Model) pasteFromClipboard() tea.Cmd {
	value, err := m.clipboard.ReadAll()
	if err != nil {
		m.setStatusError("Failed to paste", err)
		return nil
	}
	if value == "" {
		m.status = "Clipboard is empty"
		return nil
	}
	m.editor.InsertString(value)
	m.syncEditorToSession()
	m.status = "Pasted from clipboard"
	return m.refreshSide()
}

func (m *Model) pasteIntoInput(input *textinput.Model) {
	value, err := m.clipboard.ReadAll()
	if err != nil {
		m.setStatusError("Failed to paste", err)
		return
	}
	input.SetValue(input.Value() + value)
	input.CursorEnd()
}
