package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/transform"
)

// handleKey routes a key press: open popups and the find panel get first
// pick, then bound actions, and everything else edits the buffer.
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.shouldIgnoreInput(msg) {
		return nil
	}
	switch m.overlay {
	case overlayPalette:
		return m.handlePaletteKey(msg)
	case overlayHelp:
		return m.handleHelpKey(msg)
	}
	if m.finding {
		return m.handleFindKey(msg)
	}
	if action := m.actionForKey(msg.String()); action != "" {
		return m.runAction(action)
	}
	return m.handleEditorKey(msg)
}

// runAction executes a bound action. Every action is a burst boundary, so
// pending typing is committed to history first.
func (m *Model) runAction(action string) tea.Cmd {
	m.syncEditorToSession()

	if op, ok := transform.Lookup(action); ok {
		return m.applyTransform(op)
	}

	switch action {
	case actionQuit:
		return tea.Quit
	case actionUndo:
		return m.undo()
	case actionRedo:
		return m.redo()
	case actionClear:
		return m.clearBuffer()
	case actionPalette:
		m.openPalette()
		return nil
	case actionFind:
		return m.openFindPanel()
	case actionCopy:
		m.copyToClipboard()
		return nil
	case actionPaste:
		return m.pasteFromClipboard()
	case actionExport:
		return m.exportText()
	case actionExportHTML:
		return m.exportHTML()
	case actionTheme:
		return m.toggleTheme()
	case actionPreview:
		return m.switchSide(sidePreview)
	case actionChanges:
		return m.switchSide(sideChanges)
	case actionSideToggle:
		return m.toggleSide()
	case actionSideScrollUp:
		m.viewport.HalfViewUp()
		return nil
	case actionSideScrollDown:
		m.viewport.HalfViewDown()
		return nil
	case actionHelp:
		m.openOverlay(overlayHelp)
		return nil
	}
	return nil
}

// handleEditorKey feeds a key to the textarea and tracks the typing burst.
func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	now := m.now()
	if m.typingBurstActive && now.Sub(m.typingBurstLastInputAt) > typingBurstIdleWindow {
		// The idle tick for the previous burst has not been delivered yet.
		m.syncEditorToSession()
	}
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() == before {
		return cmd
	}
	return tea.Batch(cmd, m.recordTyping(now), m.refreshSide())
}
