package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("SXCEDIT_CONFIG_HOME", "/tmp/sxcedit-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/sxcedit-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/sxcedit-config")
	}

	t.Setenv("SXCEDIT_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/sxcedit" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/sxcedit")
	}
}

func TestLoadMissingUsesDefaults(t *testing.T) {
	t.Setenv("SXCEDIT_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Capacity != DefaultCapacity {
		t.Fatalf("Capacity = %d, want %d", cfg.Editor.Capacity, DefaultCapacity)
	}
	if cfg.Editor.Backend != BackendTcell {
		t.Fatalf("Backend = %q, want %q", cfg.Editor.Backend, BackendTcell)
	}
	if cfg.Keymap.Normal["j"] != "move_down" {
		t.Fatalf("keymap j = %q, want %q", cfg.Keymap.Normal["j"], "move_down")
	}
}

func TestLoadWithOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SXCEDIT_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
capacity = 1024
tab-width = 8
backend = "ansi"
debug = true

[theme]
commandline-background = "#123456"

[keymap.normal]
x = "move_left"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.Capacity != 1024 {
		t.Fatalf("Capacity = %d, want 1024", cfg.Editor.Capacity)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.Backend != BackendANSI {
		t.Fatalf("Backend = %q, want %q", cfg.Editor.Backend, BackendANSI)
	}
	if !cfg.Editor.Debug {
		t.Fatalf("Debug = false, want true")
	}
	if cfg.Theme.CommandlineBackground != "#123456" {
		t.Fatalf("CommandlineBackground = %q, want %q", cfg.Theme.CommandlineBackground, "#123456")
	}
	if cfg.Theme.Foreground != "#B3B1AD" {
		t.Fatalf("Foreground = %q, want default", cfg.Theme.Foreground)
	}
	if cfg.Keymap.Normal["x"] != "move_left" {
		t.Fatalf("keymap x = %q, want %q", cfg.Keymap.Normal["x"], "move_left")
	}
	if cfg.Keymap.Normal["h"] != "move_left" {
		t.Fatalf("keymap h = %q, want %q", cfg.Keymap.Normal["h"], "move_left")
	}
}

func TestParseTinyCapacityFallsBack(t *testing.T) {
	cfg, err := Parse([]byte("[editor]\ncapacity = 2\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if cfg.Editor.Capacity != DefaultCapacity {
		t.Fatalf("Capacity = %d, want %d", cfg.Editor.Capacity, DefaultCapacity)
	}
}

func TestParseInvalid(t *testing.T) {
	if _, err := Parse([]byte("[editor\n")); err == nil {
		t.Fatalf("Parse error = nil, want decode error")
	}
}
