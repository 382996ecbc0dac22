// Package settings is the small key/value store behind user preferences.
//
// Only presentation preferences (the theme name) live here. Buffer content
// is never written to the store.
//
// FileStore keeps a flat JSON object on disk. Reads go through gjson and
// writes through sjson so unknown keys written by other versions survive a
// round trip untouched.
package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/treykane/text-utils/internal/logging"
)

var settingsLog = logging.New("settings")

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// FileStore persists values to a JSON file.
type FileStore struct {
	path string

	mu  sync.Mutex
	doc string
}

// Open loads the store at path. A missing file yields an empty store; the
// file is created on the first Set.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, doc: "{}"}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings %q: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return s, nil
	}
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		settingsLog.Warn("ignore malformed settings file", "path", path)
		return s, nil
	}
	s.doc = string(data)
	return s, nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get returns the string stored under key.
func (s *FileStore) Get(key string) (string, bool) {
	if !validKey(key) {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	res := gjson.Get(s.doc, escapeKey(key))
	if !res.Exists() || res.Type != gjson.String {
		return "", false
	}
	return res.String(), true
}

// Set stores value under key and writes the file atomically.
func (s *FileStore) Set(key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := sjson.Set(s.doc, escapeKey(key), value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	if err := writeAtomic(s.path, []byte(doc)); err != nil {
		return err
	}
	s.doc = doc
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".settings-*.json")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp settings: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod temp settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace settings %q: %w", path, err)
	}
	return nil
}

// ErrInvalidKey is returned for keys that cannot be addressed as a single
// top-level JSON member.
var ErrInvalidKey = errors.New("invalid settings key")

func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "*?|#@\\!=<>%:")
}

// escapeKey turns a flat key into a gjson/sjson path that matches it
// literally.
func escapeKey(key string) string {
	return strings.ReplaceAll(key, ".", `\.`)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: map[string]string{}}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}
