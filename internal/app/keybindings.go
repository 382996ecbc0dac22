package app

import (
	"encoding/json"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/treykane/text-utils/internal/config"
	"github.com/treykane/text-utils/internal/transform"
)

// Actions are the layer between physical key presses and behavior: a key is
// looked up in keyToAction and the resulting action is dispatched by
// runAction. Transform catalog ids (case.upper, json.format, ...) are
// actions too, so every palette entry can be bound to a key.
//
// Users override bindings via the "keybindings" object in config.json or an
// external keymap file (default ~/.text-utils/keymap.json).
const (
	actionUndo       = "history.undo"
	actionRedo       = "history.redo"
	actionPalette    = "palette.open"
	actionFind       = "find.open"
	actionCopy       = "clipboard.copy"
	actionPaste      = "clipboard.paste"
	actionExport     = "export.text"
	actionExportHTML = "export.html"
	actionTheme      = "theme.toggle"
	actionClear      = "text.clear"

	// actionPreview and actionChanges switch the side pane; pressing the
	// same key again returns to statistics.
	actionPreview    = "side.preview"
	actionChanges    = "side.changes"
	actionSideToggle = "side.toggle"

	actionSideScrollUp   = "side.scroll.up"
	actionSideScrollDown = "side.scroll.down"

	actionHelp = "help.toggle"
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation ("ctrl+", "alt+" prefixes, named
// keys such as "enter", "pgup", "f1"). Editing keys that are not listed
// here go to the textarea. Transforms without an entry are reachable from
// the palette and can still be bound by the user.
var defaultActionKeys = map[string][]string{
	actionUndo:           {"ctrl+z"},
	actionRedo:           {"ctrl+y"},
	actionPalette:        {"ctrl+p"},
	actionFind:           {"ctrl+f"},
	actionCopy:           {"alt+y"},
	actionPaste:          {"ctrl+v"},
	actionExport:         {"ctrl+s"},
	actionExportHTML:     {"alt+s"},
	actionTheme:          {"ctrl+t"},
	actionClear:          {"ctrl+l"},
	actionPreview:        {"alt+p"},
	actionChanges:        {"alt+h"},
	actionSideToggle:     {"f2"},
	actionSideScrollUp:   {"pgup"},
	actionSideScrollDown: {"pgdown"},
	actionHelp:           {"f1"},
	actionQuit:           {"ctrl+c", "ctrl+q"},

	"case.upper":     {"alt+u"},
	"case.lower":     {"alt+l"},
	"case.title":     {"alt+t"},
	"case.sentence":  {"alt+e"},
	"space.collapse": {"alt+w"},
	"text.reverse":   {"alt+r"},
	"json.format":    {"alt+j"},
}

// loadKeybindings initializes the key↔action maps from three sources, in
// order of increasing priority:
//
//  1. defaultActionKeys
//  2. cfg.Keybindings, the "keybindings" object in config.json
//  3. the keymap file at cfg.KeymapFile, if it exists
//
// An override replaces the action's full default key set. Unknown actions
// are logged and ignored.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}
	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}
	for action, key := range loadKeymapFile(cfg.KeymapFile) {
		m.applyKeybindingOverride(action, key)
	}
	m.rebuildActionKeyIndex()
}

// loadKeymapFile reads a flat JSON object of action → key, for example
//
//	{
//	    "history.undo": "ctrl+u",
//	    "base64.encode": "alt+b"
//	}
//
// A missing file is not an error.
func loadKeymapFile(path string) map[string]string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			appLog.Warn("read keymap file", "path", path, "error", err)
		}
		return nil
	}
	overrides := map[string]string{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		appLog.Warn("parse keymap file", "path", path, "error", err)
		return nil
	}
	return overrides
}

func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok && !isTransformAction(action) {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex builds keyToAction. Actions are visited in sorted
// order so that, when two actions claim the same key, the same one wins on
// every run; the conflict is logged.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	actions := make([]string, 0, len(m.keyForAction))
	for action := range m.keyForAction {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		for _, key := range m.keyForAction[action] {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// normalizeKeyString lowercases a configured key and turns a single
// uppercase letter into its shift+ form:
//
//	normalizeKeyString("Ctrl+P")  → "ctrl+p"
//	normalizeKeyString(" Y ")     → "shift+y"
func normalizeKeyString(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" || slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

// primaryActionKey returns the first label bound to action, or fallback
// when the action is unbound.
func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

// isTransformAction reports whether action names a catalog transform.
func isTransformAction(action string) bool {
	_, ok := transform.Lookup(action)
	return ok
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"enter":     "Enter",
		"esc":       "Esc",
		"tab":       "Tab",
		"home":      "Home",
		"end":       "End",
		"pgup":      "PgUp",
		"pgdown":    "PgDn",
		"space":     "Space",
		"backspace": "Backspace",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "":
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, "+")
}
