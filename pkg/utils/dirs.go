package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppName is the directory name used under the OS config and state dirs.
const AppName = "kraban"

// Dir selects which OS directory to resolve.
type Dir int

const (
	StateDir Dir = iota
	ConfigDir
)

func (d Dir) String() string {
	switch d {
	case StateDir:
		return "state"
	case ConfigDir:
		return "config"
	}
	return "unknown"
}

// GetDir returns the application directory of the given kind, creating it if needed.
//
// State lives in $XDG_STATE_HOME/kraban, falling back to ~/.local/state/kraban.
// macOS and Windows have no state dir, so the user config dir is used there.
func GetDir(dir Dir) (string, error) {
	base, err := baseDir(dir)
	if err != nil {
		return "", fmt.Errorf("cannot get OS %s dir: %w", dir, err)
	}

	path := filepath.Join(base, AppName)
	if err := os.MkdirAll(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

func baseDir(dir Dir) (string, error) {
	if dir == ConfigDir {
		return os.UserConfigDir()
	}

	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return xdg, nil
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		return os.UserConfigDir()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "state"), nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || (len(path) > 1 && path[0] == '~' && (path[1] == '/' || path[1] == '\\')) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
