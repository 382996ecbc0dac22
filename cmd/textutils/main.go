// Command textutils is a terminal text utility: paste or type text, apply
// transformations with undo/redo, watch live statistics and export the
// result.
//
//	textutils [-config path] [-init-config] [-theme light|dark] [file]
//
// Text piped on stdin seeds the buffer when no file is given.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/treykane/text-utils/internal/app"
	"github.com/treykane/text-utils/internal/config"
	"github.com/treykane/text-utils/internal/logging"
	"github.com/treykane/text-utils/internal/settings"
	"github.com/treykane/text-utils/internal/sink"
	"github.com/treykane/text-utils/internal/theme"
)

// maxInitialBytes bounds how much of a file or pipe is loaded into the
// buffer.
const maxInitialBytes = 8 << 20

var log = logging.New("main")

func main() {
	configPath := flag.String("config", "", "path to config.json (default ~/.text-utils/config.json)")
	initConfig := flag.Bool("init-config", false, "write the default config file and exit")
	themeName := flag.String("theme", "", "start with the light or dark theme and remember it")
	flag.Parse()

	if *initConfig {
		if err := writeDefaultConfig(*configPath); err != nil {
			fatal(err)
		}
		return
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	initial, piped, err := readInitial(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	var store settings.Store = settings.NewMemoryStore()
	if fs, err := settings.Open(cfg.SettingsFile); err != nil {
		log.Warn("settings unavailable, theme changes will not persist", "error", err)
	} else {
		store = fs
	}
	if sink.Unsupported() {
		log.Warn("no clipboard utility found, copy and paste will fail")
	}

	themes := theme.NewManager(store, theme.DetectTerminal)
	if err := applyThemeFlag(themes, *themeName); err != nil {
		fatal(err)
	}

	m := app.New(app.Options{
		Config:  cfg,
		Initial: initial,
		Theme:   themes,
	})

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
	if piped {
		// stdin is the pipe, so keys have to come from the terminal itself.
		opts = append(opts, tea.WithInputTTY())
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		fatal(err)
	}
}

func loadConfig(path string) (config.Config, error) {
	var (
		cfg config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFrom(path)
	} else {
		cfg, err = config.Load()
	}
	if errors.Is(err, config.ErrNotConfigured) {
		log.Debug("no config file, using defaults")
		return cfg, nil
	}
	return cfg, err
}

func writeDefaultConfig(path string) error {
	cfg, err := config.Default()
	if err != nil {
		return err
	}
	if path != "" {
		return config.SaveTo(path, cfg)
	}
	exists, err := config.Exists()
	if err != nil {
		return err
	}
	if exists {
		p, _ := config.ConfigPath()
		return fmt.Errorf("config already exists at %s", p)
	}
	return config.Save(cfg)
}

// applyThemeFlag activates the theme named on the command line. An empty
// name keeps the stored or detected theme. A failure to persist is only
// logged; the theme still applies to this run.
func applyThemeFlag(themes *theme.Manager, name string) error {
	if name == "" {
		return nil
	}
	parsed, ok := theme.Parse(name)
	if !ok {
		return fmt.Errorf("%w: %q (want light or dark)", theme.ErrUnknownTheme, name)
	}
	if err := themes.Set(parsed); err != nil {
		log.Warn("theme not saved", "theme", parsed, "error", err)
	}
	return nil
}

// readInitial returns the starting buffer: the named file, or stdin when it
// is not a terminal. The second result reports whether stdin was consumed.
func readInitial(path string) (string, bool, error) {
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return "", false, fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		text, err := readLimited(f, path)
		if err != nil {
			return "", false, fmt.Errorf("read input: %w", err)
		}
		return text, false, nil
	}
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "", false, nil
	}
	text, err := readLimited(os.Stdin, "stdin")
	if err != nil {
		return "", false, fmt.Errorf("read stdin: %w", err)
	}
	return text, true, nil
}

// readLimited reads at most maxInitialBytes from r. Longer input is cut at
// the last complete UTF-8 sequence before the limit and a warning is logged.
func readLimited(r io.Reader, source string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInitialBytes+1))
	if err != nil {
		return "", err
	}
	if len(data) <= maxInitialBytes {
		return string(data), nil
	}
	data = data[:maxInitialBytes]
	for i := len(data) - 1; i >= 0 && i >= len(data)-utf8.UTFMax; i-- {
		if utf8.RuneStart(data[i]) {
			if !utf8.FullRune(data[i:]) {
				data = data[:i]
			}
			break
		}
	}
	log.Warn("input truncated", "source", source, "limit_bytes", maxInitialBytes)
	return string(data), nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
