// Package changes summarizes the difference between two buffer snapshots,
// normally the previous history entry and the current one.
package changes

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

// Summary is a semantic diff of before → after.
type Summary struct {
	Diffs      []dmp.Diff
	Insertions int // runes
	Deletions  int // runes
}

// Changed reports whether the two snapshots differ.
func (s Summary) Changed() bool { return s.Insertions > 0 || s.Deletions > 0 }

// Compute diffs before against after at character level, cleaned up so the
// chunks line up with words where possible.
func Compute(before, after string) Summary {
	if before == after {
		return Summary{}
	}
	d := dmp.New()
	diffs := d.DiffMain(before, after, false)
	diffs = d.DiffCleanupSemantic(diffs)
	s := Summary{Diffs: diffs}
	for _, df := range diffs {
		switch df.Type {
		case dmp.DiffInsert:
			s.Insertions += utf8.RuneCountInString(df.Text)
		case dmp.DiffDelete:
			s.Deletions += utf8.RuneCountInString(df.Text)
		}
	}
	return s
}

// Styles colors the rendered diff.
type Styles struct {
	Inserted lipgloss.Style
	Deleted  lipgloss.Style
	Equal    lipgloss.Style
	Header   lipgloss.Style
}

// Render returns an inline diff with a one-line header.
func Render(s Summary, st Styles) string {
	if !s.Changed() {
		return st.Header.Render("No changes since the previous entry")
	}
	var sb strings.Builder
	sb.WriteString(st.Header.Render(fmt.Sprintf("+%d -%d characters", s.Insertions, s.Deletions)))
	sb.WriteString("\n\n")
	for _, df := range s.Diffs {
		switch df.Type {
		case dmp.DiffInsert:
			sb.WriteString(renderLines(st.Inserted, df.Text))
		case dmp.DiffDelete:
			sb.WriteString(renderLines(st.Deleted, df.Text))
		default:
			sb.WriteString(renderLines(st.Equal, df.Text))
		}
	}
	return sb.String()
}

// renderLines styles each line separately so a style never spans a newline.
func renderLines(style lipgloss.Style, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
