package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withCapturedLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log
	log = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { log = prev })
	return &buf
}

func skipAsRoot(t *testing.T) {
	t.Helper()
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
}

func TestSaveToFailures(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, dir string) string
		wantErr string
	}{
		{
			name: "parent is a file",
			setup: func(t *testing.T, dir string) string {
				blocker := filepath.Join(dir, "blocked")
				if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
					t.Fatal(err)
				}
				return filepath.Join(blocker, configFileName)
			},
			wantErr: "create config dir",
		},
		{
			name: "read-only directory",
			setup: func(t *testing.T, dir string) string {
				skipAsRoot(t)
				ro := filepath.Join(dir, "ro")
				if err := os.Mkdir(ro, 0o555); err != nil {
					t.Fatal(err)
				}
				t.Cleanup(func() { _ = os.Chmod(ro, 0o755) })
				return filepath.Join(ro, configFileName)
			},
			wantErr: "write config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := tt.setup(t, t.TempDir())
			err := SaveTo(path, Config{ExportFilename: "notes.txt"})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("SaveTo error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveToRejectsExportFilenameWithSeparator(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), configFileName)
	err := SaveTo(path, Config{ExportFilename: "sub/out.txt"})
	if err == nil || !strings.Contains(err.Error(), "export_filename") {
		t.Fatalf("expected export_filename error, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Fatal("invalid config must not be written")
	}
}

func TestSaveToWritesPrivateFileAndLogs(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	buf := withCapturedLog(t)
	path := filepath.Join(t.TempDir(), "nested", configFileName)

	if err := SaveTo(path, Config{ExportDir: "~/exports", HistoryLimit: 10}); err != nil {
		t.Fatalf("save: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config mode = %o, want 600", perm)
	}

	logs := buf.String()
	if !strings.Contains(logs, "level=INFO") || !strings.Contains(logs, "saved config") || !strings.Contains(logs, path) {
		t.Fatalf("unexpected log output: %q", logs)
	}
}

func TestLoadFromFailures(t *testing.T) {
	t.Run("unreadable", func(t *testing.T) {
		skipAsRoot(t)
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), configFileName)
		if err := os.WriteFile(path, []byte(`{"history_limit": 5}`), 0o000); err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

		if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "read config") {
			t.Fatalf("expected read error, got %v", err)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())
		path := filepath.Join(t.TempDir(), configFileName)
		if err := os.WriteFile(path, []byte(`{"words_per_minute": `), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "parse config") {
			t.Fatalf("expected parse error, got %v", err)
		}
	})
}

func TestExistsReportsStatError(t *testing.T) {
	skipAsRoot(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	dir := filepath.Join(home, configDirName)
	if err := os.Mkdir(dir, 0o000); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	exists, err := Exists()
	if err == nil || exists {
		t.Fatalf("Exists() = %v, %v; want false with error", exists, err)
	}
	if !strings.Contains(err.Error(), "stat config path") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDefaultNeedsHome(t *testing.T) {
	t.Setenv("HOME", "")
	if _, err := Default(); err == nil || !strings.Contains(err.Error(), "resolve home dir") {
		t.Fatalf("expected home dir error, got %v", err)
	}
}
