package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/config"
	"github.com/treykane/text-utils/internal/settings"
	"github.com/treykane/text-utils/internal/theme"
	"github.com/treykane/text-utils/internal/toast"
)

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) ReadAll() (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.text, nil
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testHarness struct {
	m     *Model
	clip  *fakeClipboard
	clock *fakeClock
	store *settings.MemoryStore
	dir   string
}

func newHarness(t *testing.T, initial string) *testHarness {
	t.Helper()
	h := &testHarness{
		clip:  &fakeClipboard{},
		clock: &fakeClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)},
		store: settings.NewMemoryStore(),
		dir:   t.TempDir(),
	}
	h.m = New(Options{
		Config: config.Config{
			ExportDir:      h.dir,
			ExportFilename: "out.txt",
		},
		Initial:   initial,
		Theme:     theme.NewManager(h.store, func() bool { return true }),
		Clipboard: h.clip,
		Now:       h.clock.Now,
	})
	h.m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *testHarness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *testHarness) typeText(text string) {
	for _, r := range text {
		if r == ' ' {
			h.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{r}})
			continue
		}
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func latestToast(t *testing.T, m *Model) toast.Toast {
	t.Helper()
	latest, ok := m.toasts.Latest()
	if !ok {
		t.Fatal("expected a toast")
	}
	return latest
}

func TestTypingBurstCommitsOnIdle(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("hello")

	if got := h.m.Session().Text(); got != "" {
		t.Fatalf("typing should not commit before the burst ends, session = %q", got)
	}
	if !h.m.hasUncommittedTyping() {
		t.Fatal("editor should be ahead of the session")
	}

	// A stale tick from an earlier keystroke is ignored.
	h.send(typingIdleMsg{seq: h.m.typingBurstSeq - 1})
	if got := h.m.Session().History().Length; got != 1 {
		t.Fatalf("stale idle tick committed, history length = %d", got)
	}

	h.send(typingIdleMsg{seq: h.m.typingBurstSeq})
	if got := h.m.Session().Text(); got != "hello" {
		t.Fatalf("session = %q, want hello", got)
	}
	if got := h.m.Session().History().Length; got != 2 {
		t.Fatalf("history length = %d, want 2", got)
	}
}

func TestTypingAfterIdleWindowStartsNewBurst(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("hello")
	h.clock.Advance(2 * time.Second)
	h.typeText(" world")

	if got := h.m.Session().Text(); got != "hello" {
		t.Fatalf("first burst should be committed when the second starts, session = %q", got)
	}

	h.send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := h.m.Session().Text(); got != "hello" {
		t.Fatalf("undo should step back one burst, session = %q", got)
	}
	if got := h.m.editor.Value(); got != "hello" {
		t.Fatalf("editor = %q, want hello", got)
	}

	h.send(tea.KeyMsg{Type: tea.KeyCtrlY})
	if got := h.m.editor.Value(); got != "hello world" {
		t.Fatalf("redo editor = %q", got)
	}
}

func TestUndoWithoutHistory(t *testing.T) {
	h := newHarness(t, "text")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if h.m.status != "Nothing to undo" {
		t.Fatalf("status = %q", h.m.status)
	}
	if h.m.toasts.Len() != 0 {
		t.Fatal("a failed undo should not raise a toast")
	}
}

func TestTransformKeyUpdatesEditorAndHistory(t *testing.T) {
	h := newHarness(t, "hello world")
	h.send(altKey('u'))

	if got := h.m.Session().Text(); got != "HELLO WORLD" {
		t.Fatalf("session = %q", got)
	}
	if got := h.m.editor.Value(); got != "HELLO WORLD" {
		t.Fatalf("editor = %q", got)
	}
	if h.m.status != "Converted to uppercase" {
		t.Fatalf("status = %q", h.m.status)
	}

	h.send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := h.m.Session().Text(); got != "hello world" {
		t.Fatalf("after undo = %q", got)
	}
}

func TestFailedTransformLeavesStateUntouched(t *testing.T) {
	h := newHarness(t, "not base64!!")
	h.m.runAction("base64.decode")

	if got := h.m.Session().Text(); got != "not base64!!" {
		t.Fatalf("buffer changed to %q", got)
	}
	if got := h.m.Session().History().Length; got != 1 {
		t.Fatalf("history length = %d", got)
	}
	latest := latestToast(t, h.m)
	if latest.Kind != toast.Error || latest.Message != "Invalid Base64" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestAnnouncedTransformRaisesSuccessToast(t *testing.T) {
	h := newHarness(t, "hi")
	h.m.runAction("base64.encode")

	if got := h.m.Session().Text(); got != "aGk=" {
		t.Fatalf("session = %q", got)
	}
	latest := latestToast(t, h.m)
	if latest.Kind != toast.Success || latest.Message != "Encoded to Base64" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestTransformCommitsPendingTypingFirst(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("abc")
	h.send(altKey('u'))

	if got := h.m.Session().Text(); got != "ABC" {
		t.Fatalf("session = %q", got)
	}
	h.send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := h.m.Session().Text(); got != "abc" {
		t.Fatalf("typed text should be its own history entry, got %q", got)
	}
}

func TestFindAndReplaceFlow(t *testing.T) {
	h := newHarness(t, "a b a")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlF})
	if !h.m.finding {
		t.Fatal("find panel should be open")
	}

	h.typeText("a")
	if h.m.matchCount != 2 {
		t.Fatalf("matchCount = %d, want 2", h.m.matchCount)
	}
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.typeText("x")
	if h.m.replaceInput.Value() != "x" || h.m.findInput.Value() != "a" {
		t.Fatalf("find = %q replace = %q", h.m.findInput.Value(), h.m.replaceInput.Value())
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if got := h.m.Session().Text(); got != "x b x" {
		t.Fatalf("session = %q", got)
	}
	if latest := latestToast(t, h.m); latest.Message != "Replaced 2 occurrence(s)" {
		t.Fatalf("toast = %+v", latest)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if latest := latestToast(t, h.m); latest.Kind != toast.Info || latest.Message != "No matches found" {
		t.Fatalf("toast = %+v", latest)
	}
	if got := h.m.Session().History().Length; got != 2 {
		t.Fatalf("no-match replace should not add history, length = %d", got)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEscape})
	if h.m.finding {
		t.Fatal("esc should close the panel")
	}
}

func TestReplaceFirst(t *testing.T) {
	h := newHarness(t, "aaa")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlF})
	h.typeText("a")
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.typeText("b")
	h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	if got := h.m.Session().Text(); got != "baa" {
		t.Fatalf("session = %q", got)
	}
}

func TestReplaceFirstWithIdenticalTextIsNoOp(t *testing.T) {
	h := newHarness(t, "abc")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlF})
	h.typeText("b")
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	h.typeText("b")
	h.send(tea.KeyMsg{Type: tea.KeyEnter, Alt: true})

	latest := latestToast(t, h.m)
	if latest.Kind != toast.Info || latest.Message != "Replacement matches the original text" {
		t.Fatalf("toast = %+v", latest)
	}
	if got := h.m.Session().History().Length; got != 1 {
		t.Fatalf("history length = %d, want 1", got)
	}
}

func TestReplaceWithEmptyFindWarns(t *testing.T) {
	h := newHarness(t, "text")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlF})
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	latest := latestToast(t, h.m)
	if latest.Kind != toast.Warning || latest.Message != "Enter text to find" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestPaletteFilterAndSelect(t *testing.T) {
	h := newHarness(t, `{ "a": 1 }`)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlP})
	if h.m.overlay != overlayPalette {
		t.Fatal("palette should be open")
	}
	total := len(h.m.paletteOps)
	if total == 0 {
		t.Fatal("palette should list the catalog")
	}

	h.typeText("minify")
	if len(h.m.paletteOps) != 1 || h.m.paletteOps[0].ID != "json.minify" {
		t.Fatalf("filtered ops = %+v", h.m.paletteOps)
	}

	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if h.m.overlay != overlayNone {
		t.Fatal("selecting should close the palette")
	}
	if got := h.m.Session().Text(); got != `{"a":1}` {
		t.Fatalf("session = %q", got)
	}
}

func TestPaletteFilterMatchesEveryWord(t *testing.T) {
	h := newHarness(t, "")
	h.m.openPalette()
	h.m.paletteInput.SetValue("json sort")
	h.m.filterPalette()
	if len(h.m.paletteOps) != 1 || h.m.paletteOps[0].ID != "json.sort" {
		t.Fatalf("filtered ops = %+v", h.m.paletteOps)
	}

	h.m.paletteInput.SetValue("no such action")
	h.m.filterPalette()
	if len(h.m.paletteOps) != 0 {
		t.Fatalf("expected no matches, got %d", len(h.m.paletteOps))
	}
	h.m.selectPaletteEntry()
	if h.m.status != "No matching action" {
		t.Fatalf("status = %q", h.m.status)
	}
}

func TestThemeTogglePersists(t *testing.T) {
	h := newHarness(t, "")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})

	if h.m.themes.Current() != theme.Light {
		t.Fatalf("theme = %q", h.m.themes.Current())
	}
	if v, _ := h.store.Get(theme.StorageKey); v != "light" {
		t.Fatalf("stored theme = %q", v)
	}
	if h.m.styles.palette != theme.PaletteFor(theme.Light) {
		t.Fatal("styles should follow the new palette")
	}
}

func TestCopyAndPaste(t *testing.T) {
	h := newHarness(t, "copy me")
	h.send(altKey('y'))
	if h.clip.text != "copy me" {
		t.Fatalf("clipboard = %q", h.clip.text)
	}
	if latest := latestToast(t, h.m); latest.Message != "Copied to clipboard!" {
		t.Fatalf("toast = %+v", latest)
	}

	h2 := newHarness(t, "")
	h2.clip.text = "pasted"
	h2.send(tea.KeyMsg{Type: tea.KeyCtrlV})
	if got := h2.m.Session().Text(); got != "pasted" {
		t.Fatalf("session = %q", got)
	}
	if got := h2.m.Session().History().Length; got != 2 {
		t.Fatalf("paste should be one history entry, length = %d", got)
	}
}

func TestClipboardFailureRaisesErrorToast(t *testing.T) {
	h := newHarness(t, "text")
	h.clip.err = errors.New("no clipboard utility")
	h.send(altKey('y'))

	latest := latestToast(t, h.m)
	if latest.Kind != toast.Error || latest.Message != "Failed to copy" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestExportWritesFile(t *testing.T) {
	h := newHarness(t, "héllo")
	cmd := h.m.exportText()
	if cmd == nil {
		t.Fatal("expected an export command")
	}
	h.send(cmd())

	data, err := os.ReadFile(filepath.Join(h.dir, "out.txt"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "héllo" {
		t.Fatalf("exported %q", data)
	}
	if latest := latestToast(t, h.m); latest.Message != "File saved: out.txt" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestExportHTML(t *testing.T) {
	h := newHarness(t, "# Title")
	cmd := h.m.exportHTML()
	h.send(cmd())

	data, err := os.ReadFile(filepath.Join(h.dir, "out.html"))
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "<h1>Title</h1>") {
		t.Fatalf("html = %q", data)
	}
}

func TestExportEmptyBufferWarns(t *testing.T) {
	h := newHarness(t, "  ")
	if cmd := h.m.exportText(); cmd != nil {
		t.Fatal("empty buffer should not start an export")
	}
	latest := latestToast(t, h.m)
	if latest.Kind != toast.Warning || latest.Message != "Nothing to export" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestExportFailureReported(t *testing.T) {
	h := newHarness(t, "text")
	h.send(exportResultMsg{err: errors.New("permission denied")})
	if latest := latestToast(t, h.m); latest.Kind != toast.Error || latest.Message != "Export failed" {
		t.Fatalf("toast = %+v", latest)
	}
}

func TestClearIsUndoable(t *testing.T) {
	h := newHarness(t, "something")
	h.send(tea.KeyMsg{Type: tea.KeyCtrlL})
	if !h.m.Session().IsEmpty() {
		t.Fatalf("session = %q", h.m.Session().Text())
	}
	h.send(tea.KeyMsg{Type: tea.KeyCtrlZ})
	if got := h.m.Session().Text(); got != "something" {
		t.Fatalf("after undo = %q", got)
	}
}

func TestToastExpiry(t *testing.T) {
	h := newHarness(t, "")
	h.m.notify(toast.Info, "hello")
	if len(h.m.pendingToasts) != 1 {
		t.Fatalf("pending = %v", h.m.pendingToasts)
	}
	if cmd := h.m.scheduleToastExpiry(); cmd == nil {
		t.Fatal("expected an expiry command")
	}
	if len(h.m.pendingToasts) != 0 {
		t.Fatal("pending toasts should be drained")
	}

	latest := latestToast(t, h.m)
	h.send(toastExpiredMsg{id: latest.ID})
	if h.m.toasts.Len() != 0 {
		t.Fatal("expired toast should be removed")
	}
}

func TestToastsUseInjectedClock(t *testing.T) {
	h := newHarness(t, "")
	h.m.notify(toast.Info, "first")
	if got := latestToast(t, h.m).CreatedAt; !got.Equal(h.clock.Now()) {
		t.Fatalf("CreatedAt = %v, want %v", got, h.clock.Now())
	}
}

func TestToastExpirySweepsStaleToasts(t *testing.T) {
	h := newHarness(t, "")
	h.m.notify(toast.Info, "first")
	first := latestToast(t, h.m).ID
	h.m.notify(toast.Info, "second")

	h.clock.Advance(h.m.toasts.Duration() + time.Second)
	h.m.notify(toast.Info, "fresh")

	// Only the first timer fires; the second toast is past its time anyway.
	h.send(toastExpiredMsg{id: first})
	active := h.m.toasts.Active()
	if len(active) != 1 || active[0].Message != "fresh" {
		t.Fatalf("active toasts = %+v", active)
	}
}

func TestVisibleToastsAreBounded(t *testing.T) {
	h := newHarness(t, "")
	for i := 0; i < MaxVisibleToasts+2; i++ {
		h.m.notify(toast.Info, "n")
	}
	if got := len(h.m.visibleToasts()); got != MaxVisibleToasts {
		t.Fatalf("visible = %d", got)
	}
	if got := h.m.calculateLayout().ToastHeight; got != MaxVisibleToasts {
		t.Fatalf("toast rows = %d", got)
	}
}

func TestChangesPanelShowsDiff(t *testing.T) {
	h := newHarness(t, "hello")
	if got := h.m.renderChangesPanel(); !strings.Contains(got, "No earlier history entry") {
		t.Fatalf("changes = %q", got)
	}

	h.send(altKey('u'))
	h.send(altKey('h'))
	if h.m.side != sideChanges {
		t.Fatal("alt+h should show changes")
	}
	if got := h.m.renderChangesPanel(); !strings.Contains(got, "+5 -5 characters") {
		t.Fatalf("changes = %q", got)
	}

	h.send(altKey('h'))
	if h.m.side != sideStats {
		t.Fatal("second alt+h should go back to statistics")
	}
}

func TestStatsPanelTracksUncommittedTyping(t *testing.T) {
	h := newHarness(t, "")
	h.typeText("one two")
	if got := h.m.liveStats().Words; got != 2 {
		t.Fatalf("words = %d", got)
	}
	if !strings.Contains(h.m.renderStatsPanel(), "Words") {
		t.Fatal("stats panel should label words")
	}
}

func TestFormatReadingTime(t *testing.T) {
	cases := map[time.Duration]string{
		0:                 "0 sec",
		45 * time.Second:  "45 sec",
		60 * time.Second:  "1 min",
		61 * time.Second:  "2 min",
		150 * time.Second: "3 min",
	}
	for d, want := range cases {
		if got := formatReadingTime(d); got != want {
			t.Fatalf("formatReadingTime(%v) = %q, want %q", d, got, want)
		}
	}
}

func TestSideToggleHidesPane(t *testing.T) {
	h := newHarness(t, "")
	if h.m.calculateLayout().SideWidth == 0 {
		t.Fatal("side pane should be visible on a wide terminal")
	}
	h.send(tea.KeyMsg{Type: tea.KeyF2})
	if h.m.calculateLayout().SideWidth != 0 {
		t.Fatal("f2 should hide the side pane")
	}
	h.send(tea.KeyMsg{Type: tea.KeyF2})
	if h.m.side != sideStats {
		t.Fatalf("side = %v", h.m.side)
	}
}

func TestViewRendersPanes(t *testing.T) {
	h := newHarness(t, "hello world")
	view := h.m.View()
	for _, want := range []string{"Text", "Statistics", "Words"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q", want)
		}
	}
	if lines := strings.Split(view, "\n"); len(lines) != 40 {
		t.Fatalf("view has %d lines, want 40", len(lines))
	}

	h.send(tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(h.m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay should render")
	}
	h.send(tea.KeyMsg{Type: tea.KeyEscape})
	if h.m.overlay != overlayNone {
		t.Fatal("esc should close help")
	}
}

func TestViewOnNarrowTerminal(t *testing.T) {
	h := newHarness(t, "hello")
	h.send(tea.WindowSizeMsg{Width: 40, Height: 12})
	if h.m.calculateLayout().SideWidth != 0 {
		t.Fatal("narrow terminals hide the side pane")
	}
	if view := h.m.View(); !strings.Contains(view, "Text") {
		t.Fatalf("view = %q", view)
	}
}

func TestViewBeforeSize(t *testing.T) {
	m := New(Options{Clipboard: &fakeClipboard{}})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("view = %q", got)
	}
}
