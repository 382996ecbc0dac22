package app

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/transform"
)

// openPalette lists the transform catalog in a filterable popup.
func (m *Model) openPalette() {
	m.openOverlay(overlayPalette)
	m.paletteInput.SetValue("")
	m.paletteInput.Focus()
	m.filterPalette()
	m.status = "Actions: type to filter, Enter apply, Esc close"
}

// filterPalette keeps catalog entries whose label or id contains every
// word of the filter, case-insensitively.
func (m *Model) filterPalette() {
	words := strings.Fields(strings.ToLower(m.paletteInput.Value()))
	ops := transform.Catalog()
	m.paletteOps = ops[:0]
	for _, op := range ops {
		haystack := strings.ToLower(op.Label + " " + op.ID)
		match := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				match = false
				break
			}
		}
		if match {
			m.paletteOps = append(m.paletteOps, op)
		}
	}
	m.paletteCursor = clamp(m.paletteCursor, 0, max(0, len(m.paletteOps)-1))
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	cursor, selectPressed, closePressed, handled := handlePopupListNav(msg, m.paletteCursor, len(m.paletteOps))
	if handled {
		m.paletteCursor = cursor
		switch {
		case closePressed:
			m.closeOverlay()
			m.status = "Actions closed"
		case selectPressed:
			return m.selectPaletteEntry()
		}
		return nil
	}
	if m.actionForKey(msg.String()) == actionQuit {
		return m.runAction(actionQuit)
	}

	before := m.paletteInput.Value()
	var cmd tea.Cmd
	m.paletteInput, cmd = m.paletteInput.Update(msg)
	if m.paletteInput.Value() != before {
		m.paletteCursor = 0
		m.filterPalette()
	}
	return cmd
}

func (m *Model) selectPaletteEntry() tea.Cmd {
	if len(m.paletteOps) == 0 {
		m.status = "No matching action"
		return nil
	}
	op := m.paletteOps[m.paletteCursor]
	m.closeOverlay()
	return m.runAction(op.ID)
}
