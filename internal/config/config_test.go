package config

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoad(t *testing.T) {
	t.Run("existing file", func(t *testing.T) {
		dir := t.TempDir()
		configDir := filepath.Join(dir, ".navkit")
		if err := os.MkdirAll(configDir, 0755); err != nil {
			t.Fatalf("setup: mkdir failed: %v", err)
		}
		data := []byte(`{"preset": "tabs", "labels": ["One", "Two"], "roving_tab_index": true, "parallel": 2}`)
		if err := os.WriteFile(filepath.Join(configDir, "config.json"), data, 0644); err != nil {
			t.Fatalf("setup: write failed: %v", err)
		}

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Preset != "tabs" {
			t.Errorf("Preset: got %q, want %q", cfg.Preset, "tabs")
		}
		if !slices.Equal(cfg.Labels, []string{"One", "Two"}) {
			t.Errorf("Labels: got %v", cfg.Labels)
		}
		if !cfg.UseRovingTabIndex {
			t.Error("UseRovingTabIndex: got false, want true")
		}
		if cfg.Parallel != 2 {
			t.Errorf("Parallel: got %d, want 2", cfg.Parallel)
		}
		// Unset fields keep their defaults.
		if !cfg.Typeahead {
			t.Error("Typeahead: default lost")
		}
	})

	t.Run("non-existent file returns defaults", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if cfg.Preset != Default().Preset || len(cfg.Labels) == 0 {
			t.Errorf("got %+v, want defaults", cfg)
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.MkdirAll(filepath.Join(dir, ".navkit"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(Path(dir), []byte("{not json"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Error("expected error for invalid JSON")
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		dir := t.TempDir()
		if err := Save(dir, &Config{Preset: "menu"}); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(dir); err == nil {
			t.Error("expected error for unknown preset")
		}
	})
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.InfiniteNavigation = true
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(Path(dir)); err != nil {
		t.Fatalf("config file not created: %v", err)
	}
	got, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !got.InfiniteNavigation {
		t.Error("InfiniteNavigation not persisted")
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*Config) bool
	}{
		{"preset", "tabs", func(c *Config) bool { return c.Preset == "tabs" }},
		{"labels", " a, b ,,c ", func(c *Config) bool { return slices.Equal(c.Labels, []string{"a", "b", "c"}) }},
		{"infinite", "true", func(c *Config) bool { return c.InfiniteNavigation }},
		{"follow-focus", "1", func(c *Config) bool { return c.SelectionFollowsFocus }},
		{"toggle-after-select", "false", func(c *Config) bool { return !c.ToggleAfterSelected }},
		{"roving", "t", func(c *Config) bool { return c.UseRovingTabIndex }},
		{"typeahead", "false", func(c *Config) bool { return !c.Typeahead }},
		{"parallel", "8", func(c *Config) bool { return c.Parallel == 8 }},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := Default()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q): %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("Set(%q, %q) gave %+v", tt.key, tt.value, cfg)
			}
		})
	}

	cfg := Default()
	if err := cfg.Set("colour", "red"); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("unknown key: err = %v", err)
	}
	if err := cfg.Set("infinite", "maybe"); err == nil {
		t.Error("bad bool accepted")
	}
	if err := cfg.Set("preset", "menu"); err == nil {
		t.Error("bad preset accepted")
	}
	if err := cfg.Set("parallel", "-1"); err == nil {
		t.Error("negative parallel accepted")
	}
	if len(Keys) != len(tests) {
		t.Errorf("Keys has %d entries, Set handles %d", len(Keys), len(tests))
	}
}

func TestSetValue(t *testing.T) {
	dir := t.TempDir()
	if err := SetValue(dir, "roving", "true"); err != nil {
		t.Fatalf("SetValue failed: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.UseRovingTabIndex {
		t.Error("roving not saved")
	}
}

func TestSetValuePersistsFalseAndZero(t *testing.T) {
	dir := t.TempDir()
	for _, kv := range [][2]string{
		{"toggle-after-select", "false"},
		{"typeahead", "false"},
		{"parallel", "0"},
	} {
		if err := SetValue(dir, kv[0], kv[1]); err != nil {
			t.Fatalf("SetValue(%q, %q): %v", kv[0], kv[1], err)
		}
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ToggleAfterSelected {
		t.Error("ToggleAfterSelected: default came back after saving false")
	}
	if cfg.Typeahead {
		t.Error("Typeahead: default came back after saving false")
	}
	if cfg.Parallel != 0 {
		t.Errorf("Parallel: got %d after saving 0", cfg.Parallel)
	}
}
