package app

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/text-utils/internal/changes"
	"github.com/treykane/text-utils/internal/theme"
	"github.com/treykane/text-utils/internal/toast"
)

var (
	paneStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	popupStyle = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
)

// styles is the palette-dependent style set. It is rebuilt whenever the
// theme changes.
type styles struct {
	editPane   lipgloss.Style
	sidePane   lipgloss.Style
	findPane   lipgloss.Style
	popup      lipgloss.Style
	selected   lipgloss.Style
	title      lipgloss.Style
	label      lipgloss.Style
	status     lipgloss.Style
	muted      lipgloss.Style
	fence      lipgloss.Style
	code       lipgloss.Style
	toastKinds map[toast.Kind]lipgloss.Style
	changes    changes.Styles
	palette    theme.Palette
}

func newStyles(p theme.Palette) styles {
	toastBase := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	return styles{
		editPane: paneStyle.Copy().BorderForeground(p.Accent),
		sidePane: paneStyle.Copy().BorderForeground(p.Preview),
		findPane: paneStyle.Copy().BorderForeground(p.Info),
		popup:    popupStyle.Copy().BorderForeground(p.Accent),
		selected: lipgloss.NewStyle().Reverse(true),
		title:    lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		label:    lipgloss.NewStyle().Foreground(p.LineNumber),
		status:   lipgloss.NewStyle().Foreground(p.Status),
		muted:    lipgloss.NewStyle().Foreground(p.Muted),
		fence:    lipgloss.NewStyle().Foreground(p.Warning),
		code:     lipgloss.NewStyle().Foreground(p.Info),
		toastKinds: map[toast.Kind]lipgloss.Style{
			toast.Success: toastBase.Copy().Foreground(p.Success),
			toast.Error:   toastBase.Copy().Foreground(p.Error),
			toast.Warning: toastBase.Copy().Foreground(p.Warning),
			toast.Info:    toastBase.Copy().Foreground(p.Info),
		},
		changes: changes.Styles{
			Inserted: lipgloss.NewStyle().Foreground(p.Inserted).Underline(true),
			Deleted:  lipgloss.NewStyle().Foreground(p.Deleted).Strikethrough(true),
			Equal:    lipgloss.NewStyle().Foreground(p.Muted),
			Header:   lipgloss.NewStyle().Bold(true).Foreground(p.Text),
		},
		palette: p,
	}
}

func (s styles) toast(kind toast.Kind) lipgloss.Style {
	if st, ok := s.toastKinds[kind]; ok {
		return st
	}
	return s.toastKinds[toast.Info]
}

func applyEditorTheme(editor *textarea.Model, p theme.Palette) {
	focused, blurred := textarea.DefaultStyles()

	base := lipgloss.NewStyle().Foreground(p.Text)
	muted := lipgloss.NewStyle().Foreground(p.Muted)
	cursorLine := lipgloss.NewStyle().Background(p.CursorLine).Foreground(p.Text)
	lineNumber := lipgloss.NewStyle().Foreground(p.LineNumber)
	prompt := lipgloss.NewStyle().Foreground(p.Accent)

	focused.Base = base
	focused.Text = base
	focused.CursorLine = cursorLine
	focused.CursorLineNumber = lineNumber.Copy().Bold(true)
	focused.LineNumber = lineNumber
	focused.Prompt = prompt
	focused.Placeholder = muted

	blurred.Base = base
	blurred.Text = muted
	blurred.CursorLine = muted
	blurred.CursorLineNumber = lineNumber
	blurred.LineNumber = lineNumber
	blurred.Prompt = prompt
	blurred.Placeholder = muted

	editor.FocusedStyle = focused
	editor.BlurredStyle = blurred
	editor.Prompt = "│ "
	editor.EndOfBufferCharacter = ' '
	editor.ShowLineNumbers = true
}

func applyInputTheme(input *textinput.Model, p theme.Palette) {
	input.PromptStyle = lipgloss.NewStyle().Foreground(p.Accent)
	input.TextStyle = lipgloss.NewStyle().Foreground(p.Text)
	input.PlaceholderStyle = lipgloss.NewStyle().Foreground(p.Muted)
}
