package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/marcus/navkit/internal/config"
	"github.com/marcus/navkit/pkg/keynav"
	"github.com/marcus/navkit/pkg/playground"
)

func TestFirstNonFlagArg(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "skips leading flags",
			args: []string{"--flag", "unknown-cmd"},
			want: "unknown-cmd",
		},
		{
			name: "all flags",
			args: []string{"-h", "--help"},
			want: "",
		},
		{
			name: "finds command after help",
			args: []string{"--help", "check"},
			want: "check",
		},
		{
			name: "no args",
			args: nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := firstNonFlagArg(tt.args); got != tt.want {
				t.Errorf("firstNonFlagArg(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"chk"}, "check"},
		{[]string{"-v", "dmo"}, "demo"},
		{[]string{"check", "x.yaml"}, ""},
		{[]string{"zzzz"}, ""},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := suggestCommand(tt.args); got != tt.want {
			t.Errorf("suggestCommand(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

// execute runs the root command with args in dir and returns its output.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Chdir(dir)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return out.String(), err
}

func testdataDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.Abs(filepath.Join("..", "internal", "scenario", "testdata"))
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCheckCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "check", testdataDir(t))
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "0 failed") {
		t.Errorf("output missing summary:\n%s", out)
	}
	if !strings.Contains(out, "\u2713") {
		t.Errorf("output missing pass marks:\n%s", out)
	}
}

func TestCheckCommandReportsFailures(t *testing.T) {
	dir := t.TempDir()
	doc := "name: broken\npreset: tabs\nitems: [A, B]\nsteps:\n  - focus: A\n  - expect: {focused: B}\n"
	if err := os.WriteFile(filepath.Join(dir, "broken.yml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, dir, "check", dir)
	if err == nil {
		t.Fatalf("expected failure, output:\n%s", out)
	}
	if !strings.Contains(out, "focused = A, want B") {
		t.Errorf("failure detail missing:\n%s", out)
	}
}

func TestCollectScenarioPaths(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.YML", "c.json"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.yaml"), 0755); err != nil {
		t.Fatal(err)
	}
	explicit := filepath.Join(dir, "c.json")
	paths, err := collectScenarioPaths([]string{dir, explicit})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.yaml"), filepath.Join(dir, "b.YML"), explicit}
	if strings.Join(paths, ",") != strings.Join(want, ",") {
		t.Errorf("paths = %v, want %v", paths, want)
	}
	if _, err := collectScenarioPaths([]string{filepath.Join(dir, "missing")}); err == nil {
		t.Error("missing path accepted")
	}
}

func TestKeysCommand(t *testing.T) {
	out, err := execute(t, t.TempDir(), "keys", "Up", "Spacebar", "Enter")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"Up" -> "ArrowUp"`, `"Spacebar" -> " "`, `"Enter" -> "Enter"`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s:\n%s", want, out)
		}
	}
}

func TestPresetMarkdown(t *testing.T) {
	md := presetMarkdown("listbox", keynav.ListboxBindings())
	for _, want := range []string{
		"# listbox",
		"## Items",
		"| focusNext | `↓` |",
		"## Widget root",
		"| toggleClosed | `enter` `space` `esc` |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(presetMarkdown("tabs", keynav.TabListBindings()), "Widget root") {
		t.Error("tabs preset has no root bindings")
	}
}

func TestEngineFlagsOverrideConfig(t *testing.T) {
	var f engineFlags
	fs := pflag.NewFlagSet("demo", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse([]string{"--preset", "tabs", "--roving", "--typeahead=false"}); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.InfiniteNavigation = true
	f.apply(fs, cfg)
	if cfg.Preset != "tabs" || !cfg.UseRovingTabIndex || cfg.Typeahead {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !cfg.InfiniteNavigation {
		t.Error("unset flag overrode config")
	}
}

func TestPlaygroundOptions(t *testing.T) {
	cfg := config.Default()
	opts, err := playgroundOptions(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !opts.Toggle || opts.Layout != playground.Vertical || len(opts.Bindings.Toggle) == 0 {
		t.Errorf("listbox options = %+v", opts)
	}

	cfg.Preset = "tabs"
	opts, err = playgroundOptions(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Toggle || opts.Layout != playground.Horizontal {
		t.Errorf("tabs options = %+v", opts)
	}

	cfg.Preset = "menu"
	if _, err := playgroundOptions(cfg); err == nil {
		t.Error("unknown preset accepted")
	}
}

func TestConfigCommands(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, dir, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !strings.Contains(out, "WROTE") {
		t.Errorf("init output = %q", out)
	}
	if _, err := execute(t, dir, "config", "init"); err == nil {
		t.Error("second init overwrote without --force")
	}
	if _, err := execute(t, dir, "config", "set", "preset", "tabs"); err != nil {
		t.Fatalf("config set: %v", err)
	}
	out, err = execute(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, `"preset": "tabs"`) {
		t.Errorf("show output:\n%s", out)
	}
	if _, err := execute(t, dir, "config", "set", "colour", "red"); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestCheckCommandDefaultsToProjectScenarios(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, ".navkit", "scenarios")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	doc := "name: nested default\npreset: tabs\nitems: [A]\nsteps:\n  - focus: A\n  - expect: {focused: A}\n"
	if err := os.WriteFile(filepath.Join(dir, "one.yaml"), []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(root, "src")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, sub, "check")
	if err != nil {
		t.Fatalf("check failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "nested default") || !strings.Contains(out, "1 passed") {
		t.Errorf("output:\n%s", out)
	}
}
