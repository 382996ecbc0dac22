package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func mouseCellForEditor(m *Model, row, col int) (int, int) {
	originX, originY := m.editorContentOrigin()
	return originX + m.editorGutterWidth() + col, originY + row
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestMouseClickMovesEditorCursor(t *testing.T) {
	h := newHarness(t, "hello\nworld")
	x, y := mouseCellForEditor(h.m, 1, 3)
	h.send(click(x, y))

	if got := h.m.currentEditorCursorOffset(); got != 9 {
		t.Fatalf("cursor offset = %d, want 9", got)
	}
	if h.m.hasUncommittedTyping() {
		t.Fatal("moving the cursor must not change the buffer")
	}
}

func TestMouseClickPastLineEndClamps(t *testing.T) {
	h := newHarness(t, "hi\nthere")
	x, y := mouseCellForEditor(h.m, 0, 30)
	h.send(click(x, y))

	if got := h.m.currentEditorCursorOffset(); got != 2 {
		t.Fatalf("cursor offset = %d, want 2", got)
	}
}

func TestMouseClickOutsideEditorIgnored(t *testing.T) {
	h := newHarness(t, "hello")
	before := h.m.currentEditorCursorOffset()
	h.send(click(0, 0))
	if got := h.m.currentEditorCursorOffset(); got != before {
		t.Fatalf("cursor moved to %d", got)
	}
}

func TestMouseIgnoredUnderOverlay(t *testing.T) {
	h := newHarness(t, "hello\nworld")
	h.m.openPalette()
	x, y := mouseCellForEditor(h.m, 1, 1)
	h.send(click(x, y))
	if h.m.overlay != overlayPalette {
		t.Fatal("palette should stay open")
	}
}

func TestMouseClickClosesFindPanel(t *testing.T) {
	h := newHarness(t, "hello")
	h.m.openFindPanel()
	x, y := mouseCellForEditor(h.m, 0, 1)
	h.send(click(x, y))
	if h.m.finding {
		t.Fatal("clicking the editor should close the find panel")
	}
}

func TestVisualRowsForLine(t *testing.T) {
	cases := []struct{ lineLen, width, want int }{
		{0, 10, 1},
		{5, 10, 1},
		{10, 10, 2},
		{25, 10, 3},
		{3, 0, 4},
	}
	for _, tc := range cases {
		if got := visualRowsForLine(tc.lineLen, tc.width); got != tc.want {
			t.Fatalf("visualRowsForLine(%d, %d) = %d, want %d", tc.lineLen, tc.width, got, tc.want)
		}
	}
}

func TestEditorOffsetFromVisualPositionWraps(t *testing.T) {
	h := newHarness(t, "")
	h.m.editor.SetWidth(h.m.editorGutterWidth() + 4)
	h.m.setEditorValueAndCursorOffset("abcdefghij\nxy", 0)
	width := h.m.editor.Width()

	if got := h.m.editorOffsetFromVisualPosition(1, 1); got != min(width+1, 10) {
		t.Fatalf("wrapped row offset = %d (width %d)", got, width)
	}
	if got := h.m.editorOffsetFromVisualPosition(50, 0); got != 13 {
		t.Fatalf("past the end = %d, want 13", got)
	}
}
