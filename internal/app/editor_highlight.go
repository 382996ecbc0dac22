package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// highlightFencedCode colors fenced code blocks in the rendered editor view.
// Fence delimiter lines get fence, lines between them get code and prose is
// left untouched. It runs on the textarea's output, so editor state and the
// cursor are not affected.
func highlightFencedCode(view string, fence, code lipgloss.Style) string {
	if strings.TrimSpace(view) == "" || !strings.Contains(view, "```") {
		return view
	}
	lines := strings.Split(view, "\n")
	inFence := false
	for i, line := range lines {
		if strings.Contains(line, "```") {
			lines[i] = fence.Render(line)
			inFence = !inFence
			continue
		}
		if inFence {
			lines[i] = code.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
