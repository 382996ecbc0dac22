// Package theme owns the light/dark preference.
//
// A Manager is created once at startup and handed to the presentation layer.
// It reads the stored preference, falls back to detecting the terminal
// background, and persists every toggle through a settings.Store.
package theme

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/treykane/text-utils/internal/logging"
	"github.com/treykane/text-utils/internal/settings"
)

// StorageKey is the settings key holding the theme name.
const StorageKey = "textutils-theme"

// Name identifies a theme.
type Name string

const (
	Light Name = "light"
	Dark  Name = "dark"
)

// Parse validates a stored theme name.
func Parse(s string) (Name, bool) {
	switch Name(s) {
	case Light, Dark:
		return Name(s), true
	default:
		return "", false
	}
}

// ErrUnknownTheme is returned by Set for names other than light and dark.
var ErrUnknownTheme = errors.New("unknown theme")

// Detector reports whether the terminal background is dark.
type Detector func() bool

// DetectTerminal asks the terminal for its background color.
func DetectTerminal() bool { return lipgloss.HasDarkBackground() }

var themeLog = logging.New("theme")

// Manager holds the active theme.
type Manager struct {
	store   settings.Store
	current Name
	stored  bool
}

// NewManager resolves the initial theme: a valid stored value wins,
// otherwise detect decides. A nil detect means dark.
func NewManager(store settings.Store, detect Detector) *Manager {
	m := &Manager{store: store, current: Dark}
	if store != nil {
		if v, ok := store.Get(StorageKey); ok {
			if name, ok := Parse(v); ok {
				m.current = name
				m.stored = true
				return m
			}
			themeLog.Warn("ignore unknown stored theme", "value", v)
		}
	}
	if detect != nil && !detect() {
		m.current = Light
	}
	return m
}

// Current returns the active theme.
func (m *Manager) Current() Name { return m.current }

// Stored reports whether the active theme came from, or has been written
// to, the settings store.
func (m *Manager) Stored() bool { return m.stored }

// Toggle switches between light and dark and persists the choice. The
// switch takes effect even when persisting fails; the error is returned so
// the caller can tell the user.
func (m *Manager) Toggle() (Name, error) {
	if m.current == Dark {
		m.current = Light
	} else {
		m.current = Dark
	}
	return m.current, m.persist()
}

// Set activates name and persists it.
func (m *Manager) Set(name Name) error {
	if _, ok := Parse(string(name)); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
	m.current = name
	return m.persist()
}

func (m *Manager) persist() error {
	if m.store == nil {
		return nil
	}
	if err := m.store.Set(StorageKey, string(m.current)); err != nil {
		themeLog.Error("persist theme", "theme", m.current, "error", err)
		return err
	}
	m.stored = true
	return nil
}

// Palette returns the colors for the active theme.
func (m *Manager) Palette() Palette { return PaletteFor(m.current) }
