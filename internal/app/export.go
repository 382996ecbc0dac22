package app

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/toast"
)

// exportResultMsg reports a finished export.
type exportResultMsg struct {
	path string
	html bool
	err  error
}

// exportText writes the buffer as plain UTF-8 text.
func (m *Model) exportText() tea.Cmd {
	if m.session.IsEmpty() {
		m.notify(toast.Warning, "Nothing to export")
		return nil
	}
	content, exporter := m.session.Text(), m.exporter
	m.status = "Exporting..."
	return func() tea.Msg {
		path, err := exporter.Save(content)
		return exportResultMsg{path: path, err: err}
	}
}

// exportHTML renders the buffer as markdown and writes the HTML.
func (m *Model) exportHTML() tea.Cmd {
	if m.session.IsEmpty() {
		m.notify(toast.Warning, "Nothing to export")
		return nil
	}
	content, exporter := m.session.Text(), m.exporter
	m.status = "Exporting HTML..."
	return func() tea.Msg {
		path, err := exporter.SaveHTML(content)
		return exportResultMsg{path: path, html: true, err: err}
	}
}

func (m *Model) handleExportResult(msg exportResultMsg) {
	if msg.err != nil {
		m.setStatusError("Export failed", msg.err, "html", msg.html)
		return
	}
	m.notify(toast.Success, "File saved: "+filepath.Base(msg.path))
	m.status = "Exported " + msg.path
}
