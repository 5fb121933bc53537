// Package gamedata provides the embedded battle data and utilities for
// loading it. Files found in an override directory win over the embedded
// copies so definitions can be edited without rebuilding.
package gamedata

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// dataFS embeds all YAML definitions and battle scripts at build time.
//
//go:embed *.yaml scripts/*.tengo
var dataFS embed.FS

var (
	overrideMu  sync.RWMutex
	overrideDir string
)

// SetDir sets the directory searched before the embedded files. An empty
// dir disables the override.
func SetDir(dir string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrideDir = dir
}

// Dir returns the override directory, or "" if none is set.
func Dir() string {
	overrideMu.RLock()
	defer overrideMu.RUnlock()
	return overrideDir
}

// ReadFile returns the named data file, preferring the override directory.
func ReadFile(name string) ([]byte, error) {
	clean := cleanPath(name)
	if dir := Dir(); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(clean))); err == nil {
			return data, nil
		}
	}
	return dataFS.ReadFile(clean)
}

// LoadScript returns the source of a battle script.
func LoadScript(name string) ([]byte, error) {
	clean := cleanPath(name)
	if !strings.HasPrefix(clean, "scripts/") {
		clean = "scripts/" + clean
	}
	return ReadFile(clean)
}

func cleanPath(name string) string {
	s := filepath.ToSlash(filepath.Clean(name))
	return strings.TrimPrefix(s, "./")
}
