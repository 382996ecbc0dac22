package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/toast"
	"github.com/treykane/text-utils/internal/transform"
)

// applyTransform runs a catalog op against the session. A rejected input
// leaves buffer and history untouched and is reported as an error toast.
func (m *Model) applyTransform(op transform.Op) tea.Cmd {
	if err := m.session.ApplyFallible(editorSafe(op.Apply)); err != nil {
		m.setStatusError(op.Failure, err, "op", op.ID)
		return nil
	}
	m.loadSessionIntoEditor()
	if op.Announce {
		m.notify(toast.Success, op.Success)
	} else {
		m.status = op.Success
	}
	return m.refreshSide()
}

func (m *Model) undo() tea.Cmd {
	if !m.session.Undo() {
		m.status = "Nothing to undo"
		return nil
	}
	m.loadSessionIntoEditor()
	m.notify(toast.Info, "Undo")
	return m.refreshSide()
}

func (m *Model) redo() tea.Cmd {
	if !m.session.Redo() {
		m.status = "Nothing to redo"
		return nil
	}
	m.loadSessionIntoEditor()
	m.notify(toast.Info, "Redo")
	return m.refreshSide()
}

func (m *Model) clearBuffer() tea.Cmd {
	if !m.session.Clear() {
		m.status = "Nothing to clear"
		return nil
	}
	m.loadSessionIntoEditor()
	m.status = "Cleared"
	return m.refreshSide()
}

// toggleTheme flips the theme. A failure to persist still switches the
// theme for this run.
func (m *Model) toggleTheme() tea.Cmd {
	name, err := m.themes.Toggle()
	m.applyTheme()
	m.renderCache.clear()
	if err != nil {
		m.setStatusError("Failed to save theme", err, "theme", name)
	} else {
		m.status = fmt.Sprintf("Theme: %s", name)
	}
	return m.refreshSide()
}

// switchSide shows mode in the side pane, or goes back to statistics when
// mode is already showing.
func (m *Model) switchSide(mode sideMode) tea.Cmd {
	if m.side == mode {
		mode = sideStats
	}
	m.side = mode
	m.lastSide = mode
	m.viewport.GotoTop()
	return m.refreshSide()
}

// toggleSide hides the side pane or restores the last one shown.
func (m *Model) toggleSide() tea.Cmd {
	if m.side == sideHidden {
		m.side = m.lastSide
		m.status = "Side pane shown"
		return m.refreshSide()
	}
	m.side = sideHidden
	m.status = "Side pane hidden"
	return nil
}
