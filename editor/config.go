package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const recentFileLimit = 10

// Config is the editor configuration, persisted as TOML.
type Config struct {
	Editor   EditorConfig   `toml:"editor"`
	Autosave AutosaveConfig `toml:"autosave"`
	Search   SearchConfig   `toml:"search"`

	RecentFiles []string `toml:"recent_files"`
}

type EditorConfig struct {
	DefaultEncoding string  `toml:"default_encoding"`
	FontSize        float32 `toml:"font_size"`
	ShowLineNumbers bool    `toml:"show_line_numbers"`
	// Write a UTF-8 BOM into newly created files
	WriteBOM bool `toml:"write_bom"`
}

type AutosaveConfig struct {
	Enabled         bool   `toml:"enabled"`
	IntervalSeconds int    `toml:"interval_seconds"`
	Directory       string `toml:"directory"`
}

// SearchConfig persists find/replace state across sessions
type SearchConfig struct {
	CaseSensitive  bool     `toml:"case_sensitive"`
	WholeWord      bool     `toml:"whole_word"`
	FindHistory    []string `toml:"find_history"`
	ReplaceHistory []string `toml:"replace_history"`
}

// DefaultConfig returns a sensible default configuration
func DefaultConfig() Config {
	return Config{
		Editor: EditorConfig{
			DefaultEncoding: "UTF-8",
			FontSize:        14,
			ShowLineNumbers: true,
		},
		Autosave: AutosaveConfig{
			Enabled:         true,
			IntervalSeconds: 60,
			// Directory defaults to os.TempDir() at runtime
		},
	}
}

// LoadConfig loads the configuration from the given path. A missing
// file returns defaults without error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if config.Editor.DefaultEncoding == "" {
		config.Editor.DefaultEncoding = "UTF-8"
	}
	if config.Editor.FontSize <= 0 {
		config.Editor.FontSize = 14
	}
	return config, nil
}

// Save writes the configuration, creating parent directories as needed.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// AddRecentFile moves the path to the front of the recent list, bounded
// at ten entries.
func (c *Config) AddRecentFile(path string) {
	out := make([]string, 0, len(c.RecentFiles)+1)
	out = append(out, path)
	for _, p := range c.RecentFiles {
		if p != path {
			out = append(out, p)
		}
	}
	if len(out) > recentFileLimit {
		out = out[:recentFileLimit]
	}
	c.RecentFiles = out
}

// SyncSearch copies the live controller state into the config for
// persistence.
func (c *Config) SyncSearch(s *Search) {
	c.Search.CaseSensitive = s.Options.CaseSensitive
	c.Search.WholeWord = s.Options.WholeWord
	c.Search.FindHistory = s.FindHistory()
	c.Search.ReplaceHistory = s.ReplaceHistory()
}

// ApplySearch restores persisted find/replace state into a controller.
func (c *Config) ApplySearch(s *Search) {
	s.Options.CaseSensitive = c.Search.CaseSensitive
	s.Options.WholeWord = c.Search.WholeWord
	s.findHistory = append([]string(nil), c.Search.FindHistory...)
	s.replaceHistory = append([]string(nil), c.Search.ReplaceHistory...)
}
