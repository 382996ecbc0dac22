// render.go implements debounced, cached markdown rendering for the preview
// pane.
//
// # Debouncing
//
// Every buffer change while the preview is open calls requestPreview, which
// bumps a sequence number and schedules a renderRequestMsg after
// RenderDebounce. Only the request carrying the latest sequence is rendered,
// so a typing burst costs one Glamour pass instead of one per keystroke.
//
// # Caching
//
// Completed renders are cached by (width bucket, style, content). Width
// bucketing rounds the pane width down to a multiple of RenderWidthBucket so
// small resizes reuse earlier output. Undo and redo usually land on content
// that was already rendered.
//
// # Glamour renderers
//
// TermRenderer instances are cached per (style, width bucket) in an LRU
// guarded by a mutex because renders run on background goroutines.
package app

import (
	"container/list"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// renderKey identifies one rendered preview.
type renderKey struct {
	width   int
	style   string
	content string
}

// renderRequestMsg is emitted by the debounce timer.
type renderRequestMsg struct {
	key renderKey
	seq int
}

// renderResultMsg carries a finished render back to Update.
type renderResultMsg struct {
	key     renderKey
	seq     int
	content string
}

// renderCache is a small LRU of rendered previews. It is only touched from
// Update, so it needs no locking.
type renderCache struct {
	limit   int
	order   *list.List // front = least recently used
	entries map[renderKey]*list.Element
}

type renderCacheItem struct {
	key renderKey
	out string
}

func newRenderCache(limit int) *renderCache {
	return &renderCache{limit: limit, order: list.New(), entries: map[renderKey]*list.Element{}}
}

func (c *renderCache) get(key renderKey) (string, bool) {
	node, ok := c.entries[key]
	if !ok {
		return "", false
	}
	c.order.MoveToBack(node)
	return node.Value.(renderCacheItem).out, true
}

func (c *renderCache) put(key renderKey, out string) {
	if node, ok := c.entries[key]; ok {
		node.Value = renderCacheItem{key: key, out: out}
		c.order.MoveToBack(node)
		return
	}
	c.entries[key] = c.order.PushBack(renderCacheItem{key: key, out: out})
	for c.order.Len() > c.limit {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(renderCacheItem).key)
	}
}

func (c *renderCache) len() int { return c.order.Len() }

func (c *renderCache) clear() {
	c.order.Init()
	c.entries = map[renderKey]*list.Element{}
}

// previewStyle is the configured glamour style, or the one matching the
// active theme.
func (m *Model) previewStyle() string {
	if m.glamourStyle != "" {
		return m.glamourStyle
	}
	return m.styles.palette.GlamourStyle
}

// requestPreview shows a cached render immediately or schedules a new one.
func (m *Model) requestPreview() tea.Cmd {
	key := renderKey{
		width:   renderWidthBucket(m.viewport.Width),
		style:   m.previewStyle(),
		content: m.editor.Value(),
	}
	if strings.TrimSpace(key.content) == "" {
		m.rendering = false
		m.viewport.SetContent(m.styles.muted.Render("Nothing to preview"))
		return nil
	}
	if out, ok := m.renderCache.get(key); ok {
		m.rendering = false
		m.viewport.SetContent(out)
		return nil
	}
	m.rendering = true
	m.viewport.SetContent(m.spinner.View() + " Rendering...")
	m.renderSeq++
	seq := m.renderSeq
	m.pendingWidth = key.width
	return tea.Tick(RenderDebounce, func(time.Time) tea.Msg {
		return renderRequestMsg{key: key, seq: seq}
	})
}

func (m *Model) handleRenderRequest(msg renderRequestMsg) tea.Cmd {
	if msg.seq != m.renderSeq || msg.key.width != m.pendingWidth {
		return nil
	}
	return renderMarkdownCmd(msg.key, msg.seq)
}

func (m *Model) handleRenderResult(msg renderResultMsg) {
	m.renderCache.put(msg.key, msg.content)
	if msg.seq != m.renderSeq || m.side != sidePreview {
		return
	}
	m.rendering = false
	m.viewport.SetContent(msg.content)
}

// renderMarkdownCmd renders off the UI goroutine.
func renderMarkdownCmd(key renderKey, seq int) tea.Cmd {
	return func() tea.Msg {
		return renderResultMsg{
			key:     key,
			seq:     seq,
			content: renderMarkdown(key.content, key.width, key.style),
		}
	}
}

// renderMarkdown converts markdown to ANSI output. On failure the raw text
// is returned so the pane still shows something.
func renderMarkdown(content string, width int, style string) string {
	if width <= 0 {
		width = 80
	}
	renderer, err := getRenderer(style, width)
	if err != nil {
		appLog.Error("create markdown renderer", "width", width, "style", style, "error", err)
		return content
	}
	out, err := renderer.Render(content)
	if err != nil {
		appLog.Error("render markdown content", "width", width, "error", err)
		return content
	}
	return out
}

type rendererKey struct {
	style string
	width int
}

var (
	// maxRendererCacheEntries bounds the Glamour renderers retained.
	maxRendererCacheEntries = 8

	rendererCacheMu    sync.Mutex
	rendererCache      = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New() // front = least recently used
	rendererCacheNodes = map[rendererKey]*list.Element{}
)

func getRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := rendererKey{style: normalizeGlamourStyle(style), width: width}
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	if renderer, ok := rendererCache[key]; ok {
		rendererCacheOrder.MoveToBack(rendererCacheNodes[key])
		return renderer, nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamourStyleOption(key.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	rendererCache[key] = renderer
	rendererCacheNodes[key] = rendererCacheOrder.PushBack(key)
	for len(rendererCache) > maxRendererCacheEntries && rendererCacheOrder.Len() > 0 {
		oldest := rendererCacheOrder.Front()
		k := oldest.Value.(rendererKey)
		rendererCacheOrder.Remove(oldest)
		delete(rendererCache, k)
		delete(rendererCacheNodes, k)
	}
	return renderer, nil
}

func resetRendererCacheForTests() {
	rendererCacheMu.Lock()
	defer rendererCacheMu.Unlock()
	rendererCache = map[rendererKey]*glamour.TermRenderer{}
	rendererCacheOrder = list.New()
	rendererCacheNodes = map[rendererKey]*list.Element{}
}

// standardGlamourStyles are the built-in glamour styles accepted in config.
var standardGlamourStyles = map[string]bool{
	"ascii":   true,
	"dark":    true,
	"dracula": true,
	"light":   true,
	"notty":   true,
	"pink":    true,
}

// normalizeGlamourStyle maps a configured style to one glamour knows.
// "auto" is kept and queries the terminal; unknown names become "dark".
func normalizeGlamourStyle(style string) string {
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "auto" || standardGlamourStyles[style] {
		return style
	}
	return "dark"
}

func glamourStyleOption(style string) glamour.TermRendererOption {
	if style == "auto" {
		return glamour.WithAutoStyle()
	}
	return glamour.WithStandardStyle(style)
}
