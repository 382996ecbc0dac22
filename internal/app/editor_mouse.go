package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleMouse scrolls the side pane under the pointer and moves the editor
// cursor on a left click. Popups swallow mouse input.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.overlay != overlayNone {
		return nil
	}
	layout := m.calculateLayout()
	if layout.SideWidth > 0 && msg.X >= layout.EditorWidth {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	offset, ok := m.editorOffsetFromMouse(msg, layout)
	if !ok {
		return nil
	}
	if m.finding {
		m.closeFindPanel()
	}
	m.setEditorValueAndCursorOffset(m.editor.Value(), offset)
	return nil
}

func (m *Model) editorContentOrigin() (x, y int) {
	pane := m.styles.editPane
	x = pane.GetBorderLeftSize() + pane.GetPaddingLeft()
	y = pane.GetBorderTopSize() + pane.GetPaddingTop() + 1 // +1 for header line
	return x, y
}

// editorOffsetFromMouse maps a screen cell inside the editor to a rune
// offset into the buffer.
func (m *Model) editorOffsetFromMouse(msg tea.MouseMsg, layout LayoutDimensions) (int, bool) {
	originX, originY := m.editorContentOrigin()
	if msg.X < originX || msg.X >= layout.EditorWidth {
		return 0, false
	}
	if msg.Y < originY || msg.Y >= originY+layout.EditorInnerHeight {
		return 0, false
	}

	col := max(0, msg.X-originX-m.editorGutterWidth())
	row := msg.Y - originY
	return m.editorOffsetFromVisualPosition(row, col), true
}

func (m *Model) editorGutterWidth() int {
	gutter := lipgloss.Width(m.editor.Prompt)
	if m.editor.ShowLineNumbers {
		gutter += len(fmt.Sprintf("%3v ", max(1, m.editor.LineCount())))
	}
	return gutter
}

// editorOffsetFromVisualPosition walks soft-wrapped rows of the buffer.
func (m *Model) editorOffsetFromVisualPosition(row, col int) int {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	total := len([]rune(value))
	width := max(1, m.editor.Width())
	row = max(0, row)
	col = max(0, col)

	offset := 0
	for i, line := range lines {
		visualRows := visualRowsForLine(len(line), width)
		if row < visualRows {
			lineCol := clamp(row*width+col, 0, len(line))
			return clamp(offset+lineCol, 0, total)
		}
		row -= visualRows
		offset += len(line)
		if i < len(lines)-1 {
			offset++
		}
	}
	return clamp(offset, 0, total)
}

func visualRowsForLine(lineLen, width int) int {
	if width <= 0 {
		width = 1
	}
	if lineLen <= 0 {
		return 1
	}
	return 1 + (lineLen / width)
}
