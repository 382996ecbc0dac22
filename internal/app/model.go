package app

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/treykane/text-utils/internal/config"
	"github.com/treykane/text-utils/internal/session"
	"github.com/treykane/text-utils/internal/sink"
	"github.com/treykane/text-utils/internal/theme"
	"github.com/treykane/text-utils/internal/toast"
	"github.com/treykane/text-utils/internal/transform"
)

// sideMode selects what the right-hand pane shows.
type sideMode int

const (
	sideStats sideMode = iota
	sidePreview
	sideChanges
	sideHidden
)

// overlayMode identifies the popup drawn over the panes, if any.
type overlayMode int

const (
	overlayNone overlayMode = iota
	overlayPalette
	overlayHelp
)

// findField is the focused input of the find/replace panel.
type findField int

const (
	findFieldFind findField = iota
	findFieldReplace
)

// Options are the collaborators handed to New. Zero values select the
// defaults: an in-memory dark theme, the system clipboard and a fresh toast
// queue.
type Options struct {
	Config    config.Config
	Initial   string
	Theme     *theme.Manager
	Clipboard sink.Clipboard
	Toasts    *toast.Queue
	Now       func() time.Time
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	// Core state and its collaborators
	session      *session.Session
	themes       *theme.Manager
	toasts       *toast.Queue
	clipboard    sink.Clipboard
	exporter     sink.FileSink
	glamourStyle string
	wpm          int

	// UI widgets
	editor       textarea.Model
	viewport     viewport.Model
	spinner      spinner.Model
	findInput    textinput.Model
	replaceInput textinput.Model
	paletteInput textinput.Model
	styles       styles

	// Panels and popups
	side          sideMode
	lastSide      sideMode
	overlay       overlayMode
	finding       bool
	findFocus     findField
	matchCount    int
	paletteOps    []transform.Op
	paletteCursor int

	// Key dispatch
	keyForAction map[string][]string
	keyToAction  map[string]string

	// Layout sizing
	width  int
	height int

	status        string
	pendingToasts []int
	debugInput    bool

	// Typing burst bookkeeping
	now                    func() time.Time
	typingBurstActive      bool
	typingBurstLastInputAt time.Time
	typingBurstSeq         int

	// Debounced preview rendering
	renderSeq    int
	rendering    bool
	pendingWidth int
	renderCache  *renderCache
}

// New builds the UI model around a fresh edit session seeded with
// opts.Initial.
func New(opts Options) *Model {
	cfg := opts.Config
	themes := opts.Theme
	if themes == nil {
		themes = theme.NewManager(nil, nil)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	toasts := opts.Toasts
	if toasts == nil {
		toasts = toast.NewQueue(toast.WithClock(now))
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = sink.SystemClipboard{}
	}

	editor := textarea.New()
	editor.Placeholder = "Paste or type text here..."
	editor.CharLimit = 0
	editor.MaxHeight = 0
	// The textarea expands tabs and normalizes line endings; the session is
	// seeded with what the editor actually holds.
	editor.SetValue(opts.Initial)

	findInput := textinput.New()
	findInput.Prompt = "Find:    "
	findInput.Placeholder = "text to find"
	findInput.CharLimit = InputCharLimit

	replaceInput := textinput.New()
	replaceInput.Prompt = "Replace: "
	replaceInput.Placeholder = "replacement"
	replaceInput.CharLimit = InputCharLimit

	paletteInput := textinput.New()
	paletteInput.Prompt = "> "
	paletteInput.Placeholder = "filter actions"
	paletteInput.CharLimit = InputCharLimit

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		session: session.New(editor.Value(),
			session.WithCapacity(cfg.HistoryLimit),
			session.WithWordsPerMinute(cfg.WordsPerMinute),
		),
		themes:       themes,
		toasts:       toasts,
		clipboard:    clip,
		exporter:     sink.FileSink{Dir: cfg.ExportDir, Filename: cfg.ExportFilename},
		glamourStyle: cfg.GlamourStyle,
		wpm:          cfg.WordsPerMinute,
		editor:       editor,
		viewport:     viewport.New(0, 0),
		spinner:      spin,
		findInput:    findInput,
		replaceInput: replaceInput,
		paletteInput: paletteInput,
		side:         sideStats,
		lastSide:     sideStats,
		status:       "Ready",
		now:          now,
		renderCache:  newRenderCache(maxRenderCacheEntries),
		debugInput:   os.Getenv("TEXTUTILS_DEBUG_INPUT") != "",
	}
	m.applyTheme()
	m.loadKeybindings(cfg)
	m.editor.Focus()
	return m
}

// applyTheme rebuilds every palette-dependent style.
func (m *Model) applyTheme() {
	p := m.themes.Palette()
	m.styles = newStyles(p)
	applyEditorTheme(&m.editor, p)
	applyInputTheme(&m.findInput, p)
	applyInputTheme(&m.replaceInput, p)
	applyInputTheme(&m.paletteInput, p)
	m.spinner.Style = m.styles.label
}

// Session exposes the edit session, mainly for the entry point and tests.
func (m *Model) Session() *session.Session { return m.session }

// Init starts the spinner used while the preview renders.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update is the Bubble Tea update loop: handle events and emit commands.
// Toast expiry timers and layout are settled after every message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	if m.width > 0 && m.height > 0 {
		m.applyLayout(m.calculateLayout())
	}
	return m, tea.Batch(cmd, m.scheduleToastExpiry())
}

func (m *Model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if m.rendering && m.side == sidePreview {
			m.viewport.SetContent(m.spinner.View() + " Rendering...")
		}
		return cmd
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applyLayout(m.calculateLayout())
		return m.refreshSide()
	case typingIdleMsg:
		return m.handleTypingIdle(msg)
	case toastExpiredMsg:
		m.handleToastExpired(msg)
		return nil
	case renderRequestMsg:
		return m.handleRenderRequest(msg)
	case renderResultMsg:
		m.handleRenderResult(msg)
		return nil
	case exportResultMsg:
		m.handleExportResult(msg)
		return nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return cmd
}
