package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestFooterHeightForWidthPrefersTwoRowsWhenFit(t *testing.T) {
	h := newHarness(t, "")
	if got := h.m.footerHeightForWidth(400); got != FooterMinRows {
		t.Fatalf("expected %d footer rows at wide width, got %d", FooterMinRows, got)
	}
}

func TestFooterHeightForWidthExpandsToThreeRowsWhenNeeded(t *testing.T) {
	h := newHarness(t, "")
	h.m.status = "Replaced 12 occurrence(s) across the whole buffer in a single history entry"
	if got := h.m.footerHeightForWidth(72); got != FooterMaxRows {
		t.Fatalf("expected %d footer rows at narrow width, got %d", FooterMaxRows, got)
	}
}

func TestBuildStatusRowsTruncatesWithEllipsisWhenOverCapacity(t *testing.T) {
	h := newHarness(t, "")
	h.m.status = strings.Repeat("status ", 30)

	rows, fit := h.m.buildStatusRows(28, FooterMaxRows)
	if fit {
		t.Fatal("expected rows to overflow and require truncation")
	}
	if len(rows) != FooterMaxRows {
		t.Fatalf("expected %d rows, got %d", FooterMaxRows, len(rows))
	}
	if !strings.Contains(rows[len(rows)-1], "…") {
		t.Fatalf("expected ellipsis in final row, got %q", rows[len(rows)-1])
	}
}

func TestStatusHelpSegmentsByState(t *testing.T) {
	t.Run("editor", func(t *testing.T) {
		h := newHarness(t, "")
		joined := strings.Join(h.m.statusHelpSegments(), " | ")
		for _, want := range []string{"Ctrl+P actions", "Ctrl+Z undo", "F1 help"} {
			if !strings.Contains(joined, want) {
				t.Fatalf("expected editor help to include %q, got %q", want, joined)
			}
		}
	})

	t.Run("find", func(t *testing.T) {
		h := newHarness(t, "")
		h.m.openFindPanel()
		joined := strings.Join(h.m.statusHelpSegments(), " | ")
		if !strings.Contains(joined, "Alt+Enter replace first") {
			t.Fatalf("expected find help, got %q", joined)
		}
	})

	t.Run("palette", func(t *testing.T) {
		h := newHarness(t, "")
		h.m.openPalette()
		joined := strings.Join(h.m.statusHelpSegments(), " | ")
		if !strings.Contains(joined, "Enter apply") {
			t.Fatalf("expected palette help, got %q", joined)
		}
	})

	t.Run("rebound", func(t *testing.T) {
		h := newHarness(t, "")
		h.m.applyKeybindingOverride(actionUndo, "alt+z")
		h.m.rebuildActionKeyIndex()
		joined := strings.Join(h.m.statusHelpSegments(), " | ")
		if !strings.Contains(joined, "Alt+Z undo") {
			t.Fatalf("expected rebound undo key in help, got %q", joined)
		}
	})
}

func TestStatusContextShowsCounts(t *testing.T) {
	h := newHarness(t, "one two three")
	joined := strings.Join(h.m.statusContextSegments(), " | ")
	if joined != "3 words | 13 chars | history 1/1" {
		t.Fatalf("context = %q", joined)
	}
}

func TestCalculateLayoutReservesFooterRowsAndStaysNonNegative(t *testing.T) {
	h := newHarness(t, "")
	h.m.width, h.m.height = 70, 2
	if layout := h.m.calculateLayout(); layout.ContentHeight < 0 {
		t.Fatalf("expected non-negative content height, got %d", layout.ContentHeight)
	}

	h.m.width, h.m.height = 400, 24
	layout := h.m.calculateLayout()
	if expected := 24 - FooterMinRows; layout.ContentHeight != expected {
		t.Fatalf("expected content height %d, got %d", expected, layout.ContentHeight)
	}

	h.m.openFindPanel()
	layout = h.m.calculateLayout()
	if expected := 24 - FooterMinRows - FindPanelRows; layout.ContentHeight != expected {
		t.Fatalf("expected content height %d with find panel, got %d", expected, layout.ContentHeight)
	}
}

func TestViewPadsToTerminalSizeWithAdaptiveFooter(t *testing.T) {
	h := newHarness(t, "# Heading\n\nSome text.")
	h.send(tea.WindowSizeMsg{Width: 90, Height: 20})
	h.m.status = "Ready"

	lines := strings.Split(h.m.View(), "\n")
	if len(lines) != 20 {
		t.Fatalf("expected %d lines, got %d", 20, len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width mismatch: expected %d, got %d", i+1, 90, w)
		}
	}
}
