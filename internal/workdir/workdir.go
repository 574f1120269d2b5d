// Package workdir locates navkit's project directories: the project root
// holding .navkit, and the scenario directory "navkit check" reads by
// default.
package workdir

import (
	"os"
	"path/filepath"
)

const (
	// SettingsDir holds config.json.
	SettingsDir = ".navkit"
	// ScenariosDir is the conventional scenario directory name.
	ScenariosDir = "scenarios"
)

// FindRoot walks from start towards the filesystem root and returns the
// nearest directory that has a .navkit directory or a .git entry (a git
// worktree has a .git file). When nothing is found start is returned
// cleaned.
func FindRoot(start string) string {
	if start == "" {
		return start
	}
	start = filepath.Clean(start)
	for dir := start; ; {
		if isDir(filepath.Join(dir, SettingsDir)) || exists(filepath.Join(dir, ".git")) {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// Scenarios returns the default scenario directory under root. Scenarios
// kept next to the settings (.navkit/scenarios) take precedence over a
// top-level scenarios directory.
func Scenarios(root string) string {
	if nested := filepath.Join(root, SettingsDir, ScenariosDir); isDir(nested) {
		return nested
	}
	return filepath.Join(root, ScenariosDir)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
