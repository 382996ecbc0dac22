package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/treykane/text-utils/internal/transform"
)

func (m *Model) renderStatus(width, rows int) string {
	statusRows, _ := m.buildStatusRows(width, rows)
	for len(statusRows) < rows {
		statusRows = append(statusRows, "")
	}

	rendered := make([]string, 0, len(statusRows))
	for _, line := range statusRows {
		line = " " + truncate(line, max(0, width-1))
		rendered = append(rendered, m.styles.status.Width(width).Render(line))
	}
	return strings.Join(rendered, "\n")
}

// buildStatusRows packs the footer segments into at most rowLimit rows. The
// second result is false when something had to be cut.
func (m *Model) buildStatusRows(width, rowLimit int) ([]string, bool) {
	if width <= 0 || rowLimit <= 0 {
		return nil, true
	}

	help := m.statusHelpSegments()
	context := m.statusContextSegments()
	status := m.statusMessageSegment()

	segments := make([]string, 0, len(help)+len(context)+1)
	if status != "" {
		segments = append(segments, status)
	}
	segments = append(segments, context...)
	if len(help) > 0 {
		segments = append(segments, "Keys: "+help[0])
		segments = append(segments, help[1:]...)
	}

	rows := make([]string, 1, rowLimit)
	rowIndex := 0
	fit := true
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		segment := seg
		if lipgloss.Width(segment) > width {
			segment = truncateWithEllipsis(segment, width)
		}

		candidate := segment
		if rows[rowIndex] != "" {
			candidate = rows[rowIndex] + " | " + segment
		}
		if lipgloss.Width(candidate) <= width {
			rows[rowIndex] = candidate
			continue
		}
		if rowIndex+1 < rowLimit {
			rowIndex++
			rows = append(rows, segment)
			continue
		}

		fit = false
		if rows[rowIndex] == "" {
			rows[rowIndex] = truncateWithEllipsis(segment, width)
		} else {
			rows[rowIndex] = truncateWithEllipsis(rows[rowIndex]+" | "+segment, width)
		}
		break
	}
	return rows, fit
}

func truncateWithEllipsis(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(value) <= width {
		return value
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(value, width-1, "") + "…"
}

func (m *Model) statusHelpSegments() []string {
	switch {
	case m.overlay == overlayPalette:
		return []string{"type to filter", "↑/↓ move", "Enter apply", "Esc close"}
	case m.overlay == overlayHelp:
		return []string{"Esc close"}
	case m.finding:
		return []string{"Enter replace all", "Alt+Enter replace first", "Tab switch", "Esc close"}
	}
	key := func(action, fallback, label string) string {
		return m.primaryActionKey(action, fallback) + " " + label
	}
	return []string{
		key(actionPalette, "Ctrl+P", "actions"),
		key(actionFind, "Ctrl+F", "find"),
		key(actionUndo, "Ctrl+Z", "undo"),
		key(actionRedo, "Ctrl+Y", "redo"),
		key(actionCopy, "Alt+Y", "copy"),
		key(actionPaste, "Ctrl+V", "paste"),
		key(actionExport, "Ctrl+S", "export"),
		key(actionPreview, "Alt+P", "preview"),
		key(actionChanges, "Alt+H", "changes"),
		key(actionTheme, "Ctrl+T", "theme"),
		key(actionHelp, "F1", "help"),
		key(actionQuit, "Ctrl+C", "quit"),
	}
}

func (m *Model) statusContextSegments() []string {
	s := m.liveStats()
	h := m.session.History()
	return []string{
		pluralize(s.Words, "word", "words"),
		pluralize(s.Characters, "char", "chars"),
		fmt.Sprintf("history %d/%d", h.Index+1, h.Length),
	}
}

func (m *Model) statusMessageSegment() string {
	return strings.TrimSpace(m.status)
}

// renderHelp lists every bound action, editor actions first and then the
// text transforms in catalog order.
func (m *Model) renderHelp(width, height int) string {
	row := func(keys, label string) string {
		return fmt.Sprintf("  %-22s %s", keys, label)
	}
	lines := []string{
		m.styles.title.Render("Keyboard Shortcuts"),
		"",
		"Editor",
	}
	general := []struct{ action, label string }{
		{actionUndo, "Undo"},
		{actionRedo, "Redo"},
		{actionPalette, "Open action palette"},
		{actionFind, "Find and replace"},
		{actionCopy, "Copy text to clipboard"},
		{actionPaste, "Paste from clipboard"},
		{actionExport, "Export as text"},
		{actionExportHTML, "Export as HTML"},
		{actionClear, "Clear text"},
		{actionTheme, "Toggle light/dark theme"},
		{actionPreview, "Toggle markdown preview"},
		{actionChanges, "Toggle changes view"},
		{actionSideToggle, "Show/hide side pane"},
		{actionSideScrollUp, "Scroll side pane up"},
		{actionSideScrollDown, "Scroll side pane down"},
		{actionHelp, "Toggle help"},
		{actionQuit, "Quit"},
	}
	for _, g := range general {
		lines = append(lines, row(m.allActionKeys(g.action, "-"), g.label))
	}

	lines = append(lines, "", "Transforms")
	for _, op := range transform.Catalog() {
		lines = append(lines, row(m.allActionKeys(op.ID, "palette"), op.Label))
	}
	lines = append(lines,
		"",
		"Find panel",
		row("Enter", "Replace all"),
		row("Alt+Enter", "Replace first"),
		row("Tab / Shift+Tab", "Switch field"),
		row("Esc", "Close"),
		"",
		"Press Esc to return.",
	)

	visible := min(height, len(lines))
	out := make([]string, 0, visible)
	for i := 0; i < visible; i++ {
		out = append(out, truncate(lines[i], width))
	}
	return strings.Join(out, "\n")
}
