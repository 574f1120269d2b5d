// Package config reads and writes the project's navkit settings.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/marcus/navkit/pkg/keynav"
)

const configFile = ".navkit/config.json"

// ErrUnknownKey is returned by Set for a key it does not recognise.
var ErrUnknownKey = errors.New("unknown config key")

// Config holds engine defaults for the demo and scenario commands. Command
// line flags override it.
type Config struct {
	Preset                string   `json:"preset,omitempty"`
	Labels                []string `json:"labels,omitempty"`
	InfiniteNavigation    bool     `json:"infinite_navigation"`
	SelectionFollowsFocus bool     `json:"selection_follows_focus"`
	ToggleAfterSelected   bool     `json:"toggle_after_selected"`
	UseRovingTabIndex     bool     `json:"roving_tab_index"`
	Typeahead             bool     `json:"typeahead"`
	Parallel              int      `json:"parallel"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Preset:              "listbox",
		Labels:              []string{"Apple", "Banana", "Cherry", "Damson", "Elderberry"},
		ToggleAfterSelected: true,
		Typeahead:           true,
		Parallel:            4,
	}
}

// Path returns the config file location under baseDir.
func Path(baseDir string) string {
	return filepath.Join(baseDir, configFile)
}

// Load reads the config from disk. A missing file yields Default().
func Load(baseDir string) (*Config, error) {
	data, err := os.ReadFile(Path(baseDir))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := Path(baseDir)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, append(data, '\n'), 0644)
}

// Validate checks values that the engine would otherwise reject later.
func (c *Config) Validate() error {
	if c.Preset != "" {
		if _, ok := keynav.Preset(c.Preset); !ok {
			return fmt.Errorf("config: unknown preset %q", c.Preset)
		}
	}
	if c.Parallel < 0 {
		return fmt.Errorf("config: parallel must not be negative, got %d", c.Parallel)
	}
	return nil
}

// Keys lists the names accepted by Set, in display order.
var Keys = []string{
	"preset", "labels", "infinite", "follow-focus", "toggle-after-select",
	"roving", "typeahead", "parallel",
}

// Set assigns one value by its command line name.
func (c *Config) Set(key, value string) error {
	var err error
	switch key {
	case "preset":
		c.Preset = strings.TrimSpace(value)
	case "labels":
		c.Labels = splitLabels(value)
	case "infinite":
		c.InfiniteNavigation, err = strconv.ParseBool(value)
	case "follow-focus":
		c.SelectionFollowsFocus, err = strconv.ParseBool(value)
	case "toggle-after-select":
		c.ToggleAfterSelected, err = strconv.ParseBool(value)
	case "roving":
		c.UseRovingTabIndex, err = strconv.ParseBool(value)
	case "typeahead":
		c.Typeahead, err = strconv.ParseBool(value)
	case "parallel":
		c.Parallel, err = strconv.Atoi(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("config %s: %w", key, err)
	}
	return c.Validate()
}

// SetValue loads the config, assigns one value and saves it.
func SetValue(baseDir, key, value string) error {
	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	return Save(baseDir, cfg)
}

func splitLabels(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
