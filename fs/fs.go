// Package fs provides filesystem locations and file I/O for the console.
package fs

import (
	"os"
	"path/filepath"
)

const appName = "evalconsole"

// DefaultConfigDir returns the configuration directory for evalconsole.
// Uses XDG_CONFIG_HOME if set, otherwise falls back to ~/.config/evalconsole,
// or the system temp directory if home is unavailable.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".config", appName)
}

// DefaultConfigPath returns the path of the default config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultStateDir returns the directory for logs.
// Uses XDG_STATE_HOME if set, otherwise ~/.local/state/evalconsole.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, ".local", "state", appName)
}

// DefaultLogPath returns the log file used while the TUI owns the terminal.
func DefaultLogPath() string {
	return filepath.Join(DefaultStateDir(), appName+".log")
}

// DefaultHistoryPath returns the run history file.
func DefaultHistoryPath() string {
	return filepath.Join(DefaultStateDir(), "history.jsonl")
}

// DefaultDownloadDir returns ~/Downloads when it exists, otherwise the
// current working directory.
func DefaultDownloadDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dir := filepath.Join(home, "Downloads")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}
