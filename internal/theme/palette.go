package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors the UI draws with.
type Palette struct {
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color // editor border, prompts
	Preview    lipgloss.Color // side pane border
	CursorLine lipgloss.Color
	LineNumber lipgloss.Color
	Status     lipgloss.Color
	Success    lipgloss.Color
	Error      lipgloss.Color
	Warning    lipgloss.Color
	Info       lipgloss.Color
	Inserted   lipgloss.Color
	Deleted    lipgloss.Color

	// GlamourStyle is the standard glamour style matching the palette.
	GlamourStyle string
}

var palettes = map[Name]Palette{
	Dark: {
		Text:         lipgloss.Color("252"),
		Muted:        lipgloss.Color("244"),
		Accent:       lipgloss.Color("204"),
		Preview:      lipgloss.Color("62"),
		CursorLine:   lipgloss.Color("53"),
		LineNumber:   lipgloss.Color("218"),
		Status:       lipgloss.Color("240"),
		Success:      lipgloss.Color("78"),
		Error:        lipgloss.Color("203"),
		Warning:      lipgloss.Color("221"),
		Info:         lipgloss.Color("75"),
		Inserted:     lipgloss.Color("114"),
		Deleted:      lipgloss.Color("174"),
		GlamourStyle: "dark",
	},
	Light: {
		Text:         lipgloss.Color("235"),
		Muted:        lipgloss.Color("245"),
		Accent:       lipgloss.Color("161"),
		Preview:      lipgloss.Color("25"),
		CursorLine:   lipgloss.Color("254"),
		LineNumber:   lipgloss.Color("132"),
		Status:       lipgloss.Color("242"),
		Success:      lipgloss.Color("28"),
		Error:        lipgloss.Color("160"),
		Warning:      lipgloss.Color("130"),
		Info:         lipgloss.Color("26"),
		Inserted:     lipgloss.Color("22"),
		Deleted:      lipgloss.Color("124"),
		GlamourStyle: "light",
	},
}

// PaletteFor returns the palette of a theme; unknown names get dark.
func PaletteFor(name Name) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes[Dark]
}
