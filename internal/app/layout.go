// layout.go centralizes all terminal layout calculations.
//
// The screen is a horizontal split: the editor on the left and the side pane
// (statistics, markdown preview or changes) on the right. Below them sit the
// optional find/replace panel, up to MaxVisibleToasts toast rows and the
// footer, which reserves two or three rows depending on how much it has to
// say.
//
// All dimensions are gathered into a single LayoutDimensions struct so they
// can be computed once per resize and reused by View and applyLayout.
package app

// LayoutDimensions holds all calculated layout dimensions for the UI.
type LayoutDimensions struct {
	EditorWidth   int // editor pane width including border/padding
	SideWidth     int // side pane width, 0 when hidden
	ContentHeight int // height of the editor/side row
	FindHeight    int // rows used by the find panel, 0 when closed
	ToastHeight   int // rows used by toasts
	FooterHeight  int // rows used by the footer

	EditorInnerWidth  int
	EditorInnerHeight int
	SideInnerWidth    int
	SideInnerHeight   int
}

// calculateLayout computes all UI dimensions based on terminal size and the
// panels currently open.
//
// The side pane width is the smaller of DefaultSideWidth and
// terminal_width / SideWidthDivider and it disappears entirely on terminals
// narrower than MinSplitWidth. One row of each pane is reserved for its
// header bar.
func (m *Model) calculateLayout() LayoutDimensions {
	l := LayoutDimensions{
		FooterHeight: m.footerHeightForWidth(m.width),
		ToastHeight:  len(m.visibleToasts()),
	}
	if m.finding {
		l.FindHeight = FindPanelRows
	}
	l.ContentHeight = max(0, m.height-l.FooterHeight-l.ToastHeight-l.FindHeight)

	if m.sideVisible() {
		l.SideWidth = min(DefaultSideWidth, m.width/SideWidthDivider)
	}
	l.EditorWidth = max(0, m.width-l.SideWidth)

	edit, side := m.styles.editPane, m.styles.sidePane
	l.EditorInnerWidth = max(0, l.EditorWidth-edit.GetHorizontalFrameSize())
	l.EditorInnerHeight = max(0, l.ContentHeight-edit.GetVerticalFrameSize()-1)
	if l.SideWidth > 0 {
		l.SideInnerWidth = max(0, l.SideWidth-side.GetHorizontalFrameSize())
		l.SideInnerHeight = max(0, l.ContentHeight-side.GetVerticalFrameSize()-1)
	}
	return l
}

func (m *Model) sideVisible() bool {
	return m.side != sideHidden && m.width >= MinSplitWidth
}

// footerHeightForWidth returns how many rows should be reserved for the footer.
// It prefers FooterMinRows and expands to FooterMaxRows when the footer
// segments cannot fit without dropping content.
func (m *Model) footerHeightForWidth(width int) int {
	_, fit := m.buildStatusRows(width, FooterMinRows)
	if fit {
		return FooterMinRows
	}
	return FooterMaxRows
}

// applyLayout resizes the widgets to match the calculated layout. It runs
// after every resize and whenever a panel opens or closes.
func (m *Model) applyLayout(layout LayoutDimensions) {
	m.editor.SetWidth(layout.EditorInnerWidth)
	m.editor.SetHeight(layout.EditorInnerHeight)
	m.viewport.Width = layout.SideInnerWidth
	m.viewport.Height = layout.SideInnerHeight
	inputWidth := max(0, m.width-m.styles.findPane.GetHorizontalFrameSize()-12)
	m.findInput.Width = inputWidth
	m.replaceInput.Width = inputWidth
}
