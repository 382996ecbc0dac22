package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/text-utils/internal/toast"
)

// View draws the full UI: editor and side pane, then the find panel, toasts
// and the status footer.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	layout := m.calculateLayout()
	row := m.renderEditorPane(layout)
	if layout.SideWidth > 0 {
		row = lipgloss.JoinHorizontal(lipgloss.Top, row, m.renderSidePane(layout))
	}
	if m.overlay != overlayNone {
		row = m.renderActiveOverlay(m.width, layout.ContentHeight)
	}
	sections := []string{padBlock(row, m.width, layout.ContentHeight)}
	if layout.FindHeight > 0 {
		sections = append(sections, padBlock(m.renderFindPanel(m.width), m.width, layout.FindHeight))
	}
	if layout.ToastHeight > 0 {
		sections = append(sections, m.renderToasts(m.width))
	}
	sections = append(sections, m.renderStatus(m.width, layout.FooterHeight))
	return padBlock(strings.Join(sections, "\n"), m.width, m.height)
}

func (m *Model) renderEditorPane(layout LayoutDimensions) string {
	h := m.session.History()
	title := m.styles.title.Render("Text")
	info := fmt.Sprintf("history %d/%d", h.Index+1, h.Length)
	if m.hasUncommittedTyping() {
		info += " • editing"
	}
	header := m.paneHeader(title, m.styles.muted.Render(info), layout.EditorInnerWidth)
	content := header + "\n" + highlightFencedCode(m.editor.View(), m.styles.fence, m.styles.code)
	content = padBlock(content, layout.EditorInnerWidth, max(0, layout.ContentHeight-m.styles.editPane.GetVerticalFrameSize()))
	return m.styles.editPane.Render(content)
}

func (m *Model) renderSidePane(layout LayoutDimensions) string {
	title := m.styles.title.Render(m.sideTitle())
	var info string
	switch m.side {
	case sidePreview:
		if m.rendering {
			info = m.spinner.View()
		} else {
			info = m.previewStyle()
		}
	case sideChanges:
		info = "vs previous"
	}
	header := m.paneHeader(title, m.styles.muted.Render(info), layout.SideInnerWidth)
	content := header + "\n" + m.viewport.View()
	content = padBlock(content, layout.SideInnerWidth, max(0, layout.ContentHeight-m.styles.sidePane.GetVerticalFrameSize()))
	return m.styles.sidePane.Render(content)
}

// paneHeader puts left and right on one line, right-aligned when it fits.
func (m *Model) paneHeader(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if right == "" || gap < 1 {
		return truncate(left, width)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) renderFindPanel(width int) string {
	pane := m.styles.findPane
	innerWidth := max(0, width-pane.GetHorizontalFrameSize())
	count := m.styles.muted.Render("type to search")
	if m.findInput.Value() != "" {
		count = m.styles.label.Render(pluralize(m.matchCount, "match", "matches"))
	}
	lines := []string{
		m.paneHeader(m.styles.title.Render("Find & Replace"), count, innerWidth),
		truncate(m.findInput.View(), innerWidth),
		truncate(m.replaceInput.View(), innerWidth),
	}
	return pane.Width(max(0, width-pane.GetHorizontalBorderSize())).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderToasts(width int) string {
	active := m.visibleToasts()
	lines := make([]string, 0, len(active))
	for _, t := range active {
		line := m.styles.toast(t.Kind).Render(toastIcon(t.Kind) + " " + t.Message)
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Right, truncate(line, width)))
	}
	return strings.Join(lines, "\n")
}

func toastIcon(kind toast.Kind) string {
	switch kind {
	case toast.Success:
		return "✓"
	case toast.Error:
		return "✗"
	case toast.Warning:
		return "!"
	default:
		return "i"
	}
}

var overlayRenderers = map[overlayMode]func(*Model, int, int) string{
	overlayPalette: (*Model).renderPalettePopupOverlay,
	overlayHelp:    (*Model).renderHelpOverlay,
}

func (m *Model) renderActiveOverlay(width, height int) string {
	if render, ok := overlayRenderers[m.overlay]; ok {
		return render(m, width, height)
	}
	return ""
}

func (m *Model) renderPalettePopupOverlay(width, height int) string {
	popupWidth := min(64, max(36, width-PopupPadding))
	popupHeight := min(22, max(PalettePopupHeight, height-4))
	popup := m.renderPalettePopup(popupWidth, min(popupHeight, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup)
}

func (m *Model) renderPalettePopup(width, height int) string {
	innerWidth := max(0, width-m.styles.popup.GetHorizontalFrameSize())
	innerHeight := max(0, height-m.styles.popup.GetVerticalFrameSize())
	m.paletteInput.Width = max(0, innerWidth-3)

	lines := []string{
		m.styles.title.Render("Actions (" + m.primaryActionKey(actionPalette, "Ctrl+P") + ")"),
		m.paletteInput.View(),
		"",
	}
	limit := max(0, innerHeight-len(lines)-1)
	start := 0
	if m.paletteCursor >= limit && limit > 0 {
		start = m.paletteCursor - limit + 1
	}
	for i := start; i < min(start+limit, len(m.paletteOps)); i++ {
		op := m.paletteOps[i]
		key := m.primaryActionKey(op.ID, "")
		gap := max(1, innerWidth-lipgloss.Width(op.Label)-lipgloss.Width(key))
		line := truncate(op.Label+strings.Repeat(" ", gap)+key, innerWidth)
		if i == m.paletteCursor {
			line = m.styles.selected.Render(line)
		}
		lines = append(lines, line)
	}
	if len(m.paletteOps) == 0 {
		lines = append(lines, m.styles.muted.Render("No matching actions"))
	}
	lines = append(lines, m.styles.muted.Render("Enter: apply  Esc: close"))

	content := padBlock(strings.Join(lines, "\n"), innerWidth, innerHeight)
	return m.styles.popup.Render(content)
}

func (m *Model) renderHelpOverlay(width, height int) string {
	popupWidth := min(72, max(40, width-PopupPadding))
	popupHeight := max(0, height)
	innerWidth := max(0, popupWidth-m.styles.popup.GetHorizontalFrameSize())
	innerHeight := max(0, popupHeight-m.styles.popup.GetVerticalFrameSize())
	content := padBlock(m.renderHelp(innerWidth, innerHeight), innerWidth, innerHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, m.styles.popup.Render(content))
}
