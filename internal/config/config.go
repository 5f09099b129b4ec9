package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultCapacity is the number of node slots shared by all sequences.
const DefaultCapacity = 1 << 18

// MinCapacity covers the anchors of the document, command and message
// sequences.
const MinCapacity = 3

const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

type Keymap struct {
	Normal map[string]string `toml:"normal"`
}

type EditorOptions struct {
	Capacity int    `toml:"capacity"`
	TabWidth int    `toml:"tab-width"`
	Backend  string `toml:"backend"`
	Debug    bool   `toml:"debug"`
}

type Theme struct {
	Foreground            string `toml:"foreground"`
	Background            string `toml:"background"`
	StatuslineForeground  string `toml:"statusline-foreground"`
	StatuslineBackground  string `toml:"statusline-background"`
	CommandlineForeground string `toml:"commandline-foreground"`
	CommandlineBackground string `toml:"commandline-background"`
}

type Config struct {
	Editor EditorOptions `toml:"editor"`
	Theme  Theme         `toml:"theme"`
	Keymap Keymap        `toml:"keymap"`
}

func Default() Config {
	return Config{
		Editor: EditorOptions{
			Capacity: DefaultCapacity,
			TabWidth: 4,
			Backend:  BackendTcell,
		},
		Theme: Theme{
			Foreground:            "#B3B1AD",
			Background:            "#0A0E14",
			StatuslineForeground:  "#B3B1AD",
			StatuslineBackground:  "#0F1419",
			CommandlineForeground: "#B3B1AD",
			CommandlineBackground: "#0F1419",
		},
		Keymap: Keymap{
			Normal: map[string]string{
				"i": "enter_insert",
				":": "enter_command",
				"h": "move_left",
				"l": "move_right",
				"j": "move_down",
				"k": "move_up",
			},
		},
	}
}

func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	return Parse(data)
}

// Parse decodes data and merges it over Default.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	var userCfg Config
	if _, err := toml.Decode(string(data), &userCfg); err != nil {
		return cfg, err
	}

	if userCfg.Editor.Capacity > 0 {
		cfg.Editor.Capacity = userCfg.Editor.Capacity
	}
	if cfg.Editor.Capacity < MinCapacity {
		cfg.Editor.Capacity = DefaultCapacity
	}
	if userCfg.Editor.TabWidth > 0 {
		cfg.Editor.TabWidth = userCfg.Editor.TabWidth
	}
	if userCfg.Editor.Backend != "" {
		cfg.Editor.Backend = userCfg.Editor.Backend
	}
	if userCfg.Editor.Debug {
		cfg.Editor.Debug = userCfg.Editor.Debug
	}
	mergeTheme(&cfg.Theme, userCfg.Theme)
	if userCfg.Keymap.Normal != nil {
		for k, v := range userCfg.Keymap.Normal {
			cfg.Keymap.Normal[k] = v
		}
	}

	return cfg, nil
}

func mergeTheme(dst *Theme, src Theme) {
	if src.Foreground != "" {
		dst.Foreground = src.Foreground
	}
	if src.Background != "" {
		dst.Background = src.Background
	}
	if src.StatuslineForeground != "" {
		dst.StatuslineForeground = src.StatuslineForeground
	}
	if src.StatuslineBackground != "" {
		dst.StatuslineBackground = src.StatuslineBackground
	}
	if src.CommandlineForeground != "" {
		dst.CommandlineForeground = src.CommandlineForeground
	}
	if src.CommandlineBackground != "" {
		dst.CommandlineBackground = src.CommandlineBackground
	}
}

func ConfigDir() (string, error) {
	if v := os.Getenv("SXCEDIT_CONFIG_HOME"); v != "" {
		return filepath.Join(v), nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "sxcedit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "sxcedit"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}
