// Package app provides the application shell: configuration, the windowed
// game loop and the headless runner.
package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all application configuration.
type Config struct {
	Window WindowConfig `json:"window"`
	Video  VideoConfig  `json:"video"`
	Input  InputConfig  `json:"input"`
	Debug  DebugConfig  `json:"debug"`
}

// WindowConfig contains window-related configuration.
type WindowConfig struct {
	Scale     int  `json:"scale"` // NES resolution multiplier
	Resizable bool `json:"resizable"`
	VSync     bool `json:"vsync"`
}

// VideoConfig contains video rendering configuration.
type VideoConfig struct {
	Brightness float32 `json:"brightness"`
	Contrast   float32 `json:"contrast"`
}

// InputConfig maps keyboard keys to the two controllers.
type InputConfig struct {
	Player1 KeyMapping `json:"player1"`
	Player2 KeyMapping `json:"player2"`
}

// KeyMapping names the keyboard keys for one NES controller.
type KeyMapping struct {
	Up     string `json:"up"`
	Down   string `json:"down"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	A      string `json:"a"`
	B      string `json:"b"`
	Start  string `json:"start"`
	Select string `json:"select"`
}

// DebugConfig controls state dumping.
type DebugConfig struct {
	DumpOnExit bool `json:"dump_on_exit"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Scale:     3,
			Resizable: true,
			VSync:     true,
		},
		Video: VideoConfig{
			Brightness: 1.0,
			Contrast:   1.0,
		},
		Input: InputConfig{
			Player1: KeyMapping{
				Up: "Up", Down: "Down", Left: "Left", Right: "Right",
				A: "Z", B: "X", Start: "Enter", Select: "ShiftRight",
			},
			Player2: KeyMapping{
				Up: "W", Down: "S", Left: "A", Right: "D",
				A: "J", B: "K", Start: "T", Select: "Y",
			},
		},
	}
}

// DefaultConfigPath returns the per-user config file location.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "famigo.json"
	}
	return filepath.Join(dir, "famigo", "config.json")
}

// LoadConfig reads the config file at path, creating defaults if absent.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as indented JSON.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
