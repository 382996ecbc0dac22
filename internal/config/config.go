package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treykane/text-utils/internal/history"
	"github.com/treykane/text-utils/internal/logging"
	"github.com/treykane/text-utils/internal/sink"
	"github.com/treykane/text-utils/internal/stats"
)

const (
	configDirName    = ".text-utils"
	configFileName   = "config.json"
	settingsFileName = "settings.json"
	keymapFileName   = "keymap.json"

	// GlamourStyleEnv overrides the markdown preview style.
	GlamourStyleEnv = "TEXTUTILS_GLAMOUR_STYLE"
)

var log = logging.New("config")

// ErrNotConfigured is returned by Load when no config file exists. The
// returned Config still carries usable defaults.
var ErrNotConfigured = errors.New("text-utils is not configured")

// Config stores user-defined text-utils settings.
type Config struct {
	ExportDir      string            `json:"export_dir"`
	ExportFilename string            `json:"export_filename"`
	HistoryLimit   int               `json:"history_limit"`
	WordsPerMinute int               `json:"words_per_minute"`
	SettingsFile   string            `json:"settings_file"`
	GlamourStyle   string            `json:"glamour_style,omitempty"`
	Keybindings    map[string]string `json:"keybindings,omitempty"`
	KeymapFile     string            `json:"keymap_file"`
}

// ConfigDir returns ~/.text-utils.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, configDirName), nil
}

// ConfigPath returns the configuration file path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Default returns the configuration used when no file exists.
func Default() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		ExportDir:      ".",
		ExportFilename: sink.DefaultFilename,
		HistoryLimit:   history.DefaultCapacity,
		WordsPerMinute: stats.DefaultWordsPerMinute,
		SettingsFile:   filepath.Join(dir, settingsFileName),
		KeymapFile:     filepath.Join(dir, keymapFileName),
	}
	return normalize(cfg)
}

// Exists reports whether the config file exists.
func Exists() (bool, error) {
	path, err := ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat config path: %w", err)
}

// Load reads the configuration at ConfigPath.
func Load() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the configuration at path. Fields missing
// from the file keep their defaults. A missing file returns the defaults
// together with ErrNotConfigured.
func LoadFrom(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), ErrNotConfigured
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg, err = normalize(cfg)
	if err != nil {
		return Config{}, err
	}
	log.Debug("loaded config", "path", path)
	return applyEnv(cfg), nil
}

// Save writes configuration to ConfigPath.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes configuration to path.
func SaveTo(path string, cfg Config) error {
	cfg, err := normalize(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	log.Info("saved config", "path", path)
	return nil
}

func normalize(cfg Config) (Config, error) {
	if strings.TrimSpace(cfg.ExportDir) == "" {
		cfg.ExportDir = "."
	}
	exportDir, err := NormalizePath(cfg.ExportDir)
	if err != nil {
		return Config{}, fmt.Errorf("invalid export_dir: %w", err)
	}
	cfg.ExportDir = exportDir

	cfg.ExportFilename = strings.TrimSpace(cfg.ExportFilename)
	if cfg.ExportFilename == "" {
		cfg.ExportFilename = sink.DefaultFilename
	}
	if strings.ContainsAny(cfg.ExportFilename, `/\`) {
		return Config{}, fmt.Errorf("invalid export_filename %q: must not contain a path separator", cfg.ExportFilename)
	}

	switch {
	case cfg.HistoryLimit == 0:
		cfg.HistoryLimit = history.DefaultCapacity
	case cfg.HistoryLimit < 1:
		return Config{}, fmt.Errorf("invalid history_limit %d: must be positive", cfg.HistoryLimit)
	}
	switch {
	case cfg.WordsPerMinute == 0:
		cfg.WordsPerMinute = stats.DefaultWordsPerMinute
	case cfg.WordsPerMinute < 1:
		return Config{}, fmt.Errorf("invalid words_per_minute %d: must be positive", cfg.WordsPerMinute)
	}

	for _, p := range []*string{&cfg.SettingsFile, &cfg.KeymapFile} {
		if strings.TrimSpace(*p) == "" {
			continue
		}
		normalized, err := NormalizePath(*p)
		if err != nil {
			return Config{}, err
		}
		*p = normalized
	}
	cfg.GlamourStyle = strings.TrimSpace(cfg.GlamourStyle)
	return cfg, nil
}

func applyEnv(cfg Config) Config {
	if style := strings.TrimSpace(os.Getenv(GlamourStyleEnv)); style != "" {
		cfg.GlamourStyle = style
	}
	return cfg
}

// NormalizePath expands ~ and returns a clean absolute path.
func NormalizePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is required")
	}

	expanded, err := expandHome(trimmed)
	if err != nil {
		return "", err
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", err
	}

	return filepath.Clean(abs), nil
}

func expandHome(path string) (string, error) {
	if path == "~" {
		return os.UserHomeDir()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
	}
	return path, nil
}
