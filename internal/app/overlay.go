package app

import tea "github.com/charmbracelet/bubbletea"

// openOverlay activates one overlay and ensures any previous overlay state is cleaned up.
func (m *Model) openOverlay(mode overlayMode) {
	if m.overlay == mode {
		return
	}
	m.closeOverlay()
	m.overlay = mode
	m.editor.Blur()
}

// closeOverlay dismisses the active overlay and gives focus back to the
// find panel or the editor.
func (m *Model) closeOverlay() {
	switch m.overlay {
	case overlayPalette:
		m.paletteInput.Blur()
		m.paletteInput.SetValue("")
		m.paletteOps = nil
		m.paletteCursor = 0
	}
	m.overlay = overlayNone
	if !m.finding {
		m.editor.Focus()
	}
}

// handlePopupListNav handles the shared up/down/select/close key patterns
// used by list popups. Letters are left alone because popups filter on
// typed text. It returns (nextCursor, selectPressed, closePressed, handled).
func handlePopupListNav(msg tea.KeyMsg, cursor, count int) (int, bool, bool, bool) {
	switch msg.String() {
	case "esc":
		return cursor, false, true, true
	case "up", "ctrl+p", "shift+tab":
		if count <= 0 {
			return 0, false, false, true
		}
		return clamp(cursor-1, 0, count-1), false, false, true
	case "down", "ctrl+n", "tab":
		if count <= 0 {
			return 0, false, false, true
		}
		return clamp(cursor+1, 0, count-1), false, false, true
	case "enter":
		return cursor, true, false, true
	default:
		return cursor, false, false, false
	}
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.String() == "esc", msg.String() == "q", m.actionForKey(msg.String()) == actionHelp:
		m.closeOverlay()
		return nil
	case m.actionForKey(msg.String()) == actionQuit:
		return m.runAction(actionQuit)
	}
	return nil
}
