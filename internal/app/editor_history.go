package app

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/runeutil"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/transform"
)

// typingBurstIdleWindow is the pause that ends a typing burst. Each burst
// becomes a single history entry.
const typingBurstIdleWindow = 750 * time.Millisecond

// editorSanitizer mirrors the sanitizer bubbles/textarea runs on every
// insert (tabs become four spaces, CR becomes LF, other control runes and
// invalid UTF-8 are dropped) while CharLimit and MaxHeight stay 0.
var editorSanitizer = runeutil.NewSanitizer()

// editorText returns s as the editor would hold it after SetValue.
func editorText(s string) string {
	return string(editorSanitizer.Sanitize([]rune(s)))
}

// editorSafe wraps f so its output is committed exactly as the editor will
// display it. Otherwise the next sync would record the editor's rewrite as
// a separate history entry.
func editorSafe(f transform.FallibleFunc) transform.FallibleFunc {
	return func(s string) (string, error) {
		out, err := f(s)
		if err != nil {
			return "", err
		}
		return editorText(out), nil
	}
}

// typingIdleMsg is scheduled after every keystroke; only the one carrying
// the latest sequence number closes the burst.
type typingIdleMsg struct {
	seq int
}

func (m *Model) recordTyping(now time.Time) tea.Cmd {
	m.typingBurstActive = true
	m.typingBurstLastInputAt = now
	m.typingBurstSeq++
	seq := m.typingBurstSeq
	return tea.Tick(typingBurstIdleWindow, func(time.Time) tea.Msg {
		return typingIdleMsg{seq: seq}
	})
}

func (m *Model) handleTypingIdle(msg typingIdleMsg) tea.Cmd {
	if !m.typingBurstActive || msg.seq != m.typingBurstSeq {
		return nil
	}
	if m.syncEditorToSession() {
		return m.refreshSide()
	}
	return nil
}

func (m *Model) finalizeTypingBurstBoundary() {
	m.typingBurstActive = false
	m.typingBurstLastInputAt = time.Time{}
}

// syncEditorToSession closes the current burst and commits the editor text
// to the session. It reports whether a history entry was added.
func (m *Model) syncEditorToSession() bool {
	m.finalizeTypingBurstBoundary()
	return m.session.SetText(m.editor.Value())
}

// hasUncommittedTyping reports whether the editor is ahead of the session.
func (m *Model) hasUncommittedTyping() bool {
	return m.editor.Value() != m.session.Text()
}

// loadSessionIntoEditor replaces the editor content with the session buffer
// and puts the cursor back at the same rune offset, clamped to the new
// length.
func (m *Model) loadSessionIntoEditor() {
	m.finalizeTypingBurstBoundary()
	m.setEditorValueAndCursorOffset(m.session.Text(), m.currentEditorCursorOffset())
}

// currentEditorCursorOffset converts the textarea row/column cursor into a
// rune offset into the whole value.
func (m *Model) currentEditorCursorOffset() int {
	value := m.editor.Value()
	lines := splitEditorLines(value)
	row := clamp(m.editor.Line(), 0, max(0, len(lines)-1))
	col := clamp(m.editor.LineInfo().CharOffset, 0, len(lines[row]))

	offset := 0
	for i := 0; i < row; i++ {
		offset += len(lines[i]) + 1
	}
	return clamp(offset+col, 0, utf8.RuneCountInString(value))
}

// setEditorValueAndCursorOffset sets the textarea value and walks the
// cursor back from the end to cursorOffset.
func (m *Model) setEditorValueAndCursorOffset(value string, cursorOffset int) {
	total := utf8.RuneCountInString(value)
	cursorOffset = clamp(cursorOffset, 0, total)

	focused := m.editor.Focused()
	m.editor.SetValue(value)
	m.editor.Focus()
	for i := total - cursorOffset; i > 0; i-- {
		m.editor, _ = m.editor.Update(tea.KeyMsg{Type: tea.KeyLeft})
	}
	if !focused {
		m.editor.Blur()
	}
}

func splitEditorLines(value string) [][]rune {
	parts := strings.Split(value, "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return lines
}
