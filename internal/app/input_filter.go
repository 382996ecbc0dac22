package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// shouldIgnoreInput drops terminal replies that arrive as key runes, such
// as the OSC 11 background color answer to lipgloss' dark background query,
// so they never land in the buffer.
func (m *Model) shouldIgnoreInput(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	if isOSCBackgroundResponse(msg) || containsControlRunes(msg.String()) {
		if m.debugInput {
			m.status = fmt.Sprintf("Ignored input: %q", msg.String())
		}
		return true
	}
	return false
}

func isOSCBackgroundResponse(msg tea.KeyMsg) bool {
	if msg.Type != tea.KeyRunes {
		return false
	}
	sequence := trimOSCSequenceSuffix(msg.String())
	if !strings.Contains(sequence, "rgb:") {
		return false
	}
	if !strings.Contains(sequence, "\x1b") &&
		!strings.Contains(sequence, "11;rgb:") &&
		!strings.Contains(sequence, "1;rgb:") {
		return false
	}
	return hasRGBTriple(sequence)
}

func trimOSCSequenceSuffix(sequence string) string {
	for _, suffix := range []string{"\x1b\\", "\a", "\\", "\x1b"} {
		if strings.HasSuffix(sequence, suffix) {
			return strings.TrimSuffix(sequence, suffix)
		}
	}
	return sequence
}

// containsControlRunes reports control characters other than newline and
// tab, which pasted text may legitimately contain.
func containsControlRunes(sequence string) bool {
	for _, r := range sequence {
		switch {
		case r == '\n' || r == '\t':
			continue
		case r < 32 || r == 127:
			return true
		}
	}
	return false
}

func isHexRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// hasRGBTriple matches "rgb:RRRR/GGGG/BBBB" with at least four hex digits
// per component.
func hasRGBTriple(sequence string) bool {
	index := strings.Index(sequence, "rgb:")
	if index == -1 {
		return false
	}
	components := strings.SplitN(sequence[index+len("rgb:"):], "/", 3)
	if len(components) != 3 {
		return false
	}
	for _, c := range components {
		n := 0
		for _, r := range c {
			if !isHexRune(r) {
				break
			}
			n++
		}
		if n < 4 {
			return false
		}
	}
	return true
}
