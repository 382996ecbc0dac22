// Package sink delivers buffer content to the places it can leave the
// program: the system clipboard and export files.
package sink

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/yuin/goldmark"
)

// DefaultFilename is the export file name used when none is configured.
const DefaultFilename = "text-utils-export.txt"

// FilePermission is the mode of exported files.
const FilePermission = 0o644

// ErrEmpty is returned when there is nothing to deliver.
var ErrEmpty = errors.New("nothing to export")

// Clipboard reads and writes plain text.
type Clipboard interface {
	WriteAll(text string) error
	ReadAll() (string, error)
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }
func (SystemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }

// Unsupported reports whether the OS clipboard has no backend (for example
// no xclip/xsel/wl-clipboard on Linux).
func Unsupported() bool { return clipboard.Unsupported }

// FileSink writes exports into Dir.
type FileSink struct {
	Dir      string
	Filename string
}

// Path returns the plain text export path.
func (s FileSink) Path() string {
	name := strings.TrimSpace(s.Filename)
	if name == "" {
		name = DefaultFilename
	}
	return filepath.Join(s.Dir, filepath.Base(name))
}

// HTMLPath returns the HTML export path: the text path with its extension
// replaced by .html.
func (s FileSink) HTMLPath() string {
	p := s.Path()
	return strings.TrimSuffix(p, filepath.Ext(p)) + ".html"
}

// Save writes content as UTF-8 text and returns the written path.
func (s FileSink) Save(content string) (string, error) {
	if content == "" {
		return "", ErrEmpty
	}
	path := s.Path()
	if err := writeFile(path, []byte(content)); err != nil {
		return "", err
	}
	return path, nil
}

// SaveHTML renders content as markdown and writes the HTML next to the text
// export.
func (s FileSink) SaveHTML(content string) (string, error) {
	if content == "" {
		return "", ErrEmpty
	}
	var out bytes.Buffer
	if err := goldmark.Convert([]byte(content), &out); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	path := s.HTMLPath()
	if err := writeFile(path, out.Bytes()); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, FilePermission); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}
