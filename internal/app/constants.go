package app

import "time"

// Layout constants define the default dimensions and spacing for the UI
const (
	// DefaultSideWidth is the maximum width of the side pane (stats, preview,
	// changes).
	DefaultSideWidth = 44

	// SideWidthDivider determines side pane width as terminal_width / this
	// value when the terminal is narrow.
	SideWidthDivider = 3

	// MinSplitWidth is the narrowest terminal that still shows the side pane.
	MinSplitWidth = 60

	// PopupPadding is the horizontal padding around centered popups.
	PopupPadding = 8

	// PalettePopupHeight is the minimum height of the action palette.
	PalettePopupHeight = 12

	// FindPanelRows is the height of the find/replace panel including its
	// border.
	FindPanelRows = 5

	// MaxVisibleToasts bounds the toast rows shown above the footer.
	MaxVisibleToasts = 3

	// FooterMinRows is the default number of rows reserved for the bottom
	// status/help area.
	FooterMinRows = 2
	// FooterMaxRows is the expanded footer height used when content does not
	// fit within FooterMinRows.
	FooterMaxRows = 3
)

// Input limits define maximum sizes for user input
const (
	// InputCharLimit is the maximum number of characters allowed in the
	// find and replace inputs.
	InputCharLimit = 512
)

// Rendering constants control render timing and optimization
const (
	// RenderDebounce is the delay before a preview render starts after the
	// buffer or the pane width changes.
	RenderDebounce = 300 * time.Millisecond

	// RenderWidthBucket is the granularity for width-based render caching
	// Widths are rounded to nearest multiple of this value
	RenderWidthBucket = 20

	// maxRenderCacheEntries bounds the rendered previews kept in memory.
	maxRenderCacheEntries = 16
)
