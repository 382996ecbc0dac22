package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/text-utils/internal/changes"
	"github.com/treykane/text-utils/internal/stats"
)

// refreshSide recomputes the side pane for the current buffer.
func (m *Model) refreshSide() tea.Cmd {
	if m.finding {
		m.matchCount = m.session.CountOccurrences(m.findInput.Value())
	}
	switch m.side {
	case sideStats:
		m.viewport.SetContent(m.renderStatsPanel())
	case sideChanges:
		m.viewport.SetContent(m.renderChangesPanel())
	case sidePreview:
		return m.requestPreview()
	}
	return nil
}

func (m *Model) sideTitle() string {
	switch m.side {
	case sidePreview:
		return "Preview"
	case sideChanges:
		return "Changes"
	default:
		return "Statistics"
	}
}

// liveStats describes what the editor shows, including typing that has not
// been committed to history yet.
func (m *Model) liveStats() stats.Statistics {
	if m.hasUncommittedTyping() {
		return stats.Compute(m.editor.Value(), m.wpm)
	}
	return m.session.Stats()
}

func (m *Model) renderStatsPanel() string {
	s := m.liveStats()
	h := m.session.History()
	rows := [][2]string{
		{"Words", fmt.Sprint(s.Words)},
		{"Characters", fmt.Sprint(s.Characters)},
		{"No spaces", fmt.Sprint(s.CharactersNoSpaces)},
		{"Sentences", fmt.Sprint(s.Sentences)},
		{"Paragraphs", fmt.Sprint(s.Paragraphs)},
		{"Reading time", formatReadingTime(s.ReadingTime)},
		{"", ""},
		{"History", fmt.Sprintf("%d / %d", h.Index+1, h.Length)},
		{"Undo", availability(h.CanUndo, m.primaryActionKey(actionUndo, ""))},
		{"Redo", availability(h.CanRedo, m.primaryActionKey(actionRedo, ""))},
	}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, m.styles.label.Render(fmt.Sprintf("%-13s", row[0]))+row[1])
	}
	return strings.Join(lines, "\n")
}

func availability(ok bool, key string) string {
	if !ok {
		return "-"
	}
	if key == "" {
		return "yes"
	}
	return "yes (" + key + ")"
}

// formatReadingTime rounds up to whole minutes past the first minute.
func formatReadingTime(d time.Duration) string {
	switch {
	case d <= 0:
		return "0 sec"
	case d < time.Minute:
		return fmt.Sprintf("%d sec", int(d/time.Second))
	default:
		minutes := int((d + time.Minute - 1) / time.Minute)
		return fmt.Sprintf("%d min", minutes)
	}
}

// renderChangesPanel diffs the previous history entry against the current
// buffer. Uncommitted typing is diffed against the last commit instead.
func (m *Model) renderChangesPanel() string {
	var before, after string
	if m.hasUncommittedTyping() {
		before, after = m.session.Text(), m.editor.Value()
	} else {
		prev, ok := m.session.Previous()
		if !ok {
			return m.styles.muted.Render("No earlier history entry")
		}
		before, after = prev, m.session.Text()
	}
	out := changes.Render(changes.Compute(before, after), m.styles.changes)
	if m.viewport.Width > 0 {
		out = lipgloss.NewStyle().Width(m.viewport.Width).Render(out)
	}
	return out
}
