package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// GetConfigDir returns the default configuration directory for appName on
// the current operating system.
//
//   - Windows: %APPDATA%\<appName>; an unset APPDATA is an error.
//   - Unix-like: $XDG_CONFIG_HOME/<appName> when set, otherwise
//     $HOME/.config/<appName>.
//
// The path is only resolved, never created; callers create it when needed.
func GetConfigDir(appName string) (string, error) {
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appName), nil
		}
		return "", fmt.Errorf("APPDATA environment variable not set")
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// GetDataDir returns the default per-user data directory for appName: the
// location a catalog root defaults to when no config names one.
//
//   - Windows: %LOCALAPPDATA%\<appName>; an unset LOCALAPPDATA is an error.
//   - Unix-like: $XDG_DATA_HOME/<appName> when set, otherwise
//     $HOME/.local/share/<appName>.
func GetDataDir(appName string) (string, error) {
	if runtime.GOOS == "windows" {
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			return filepath.Join(local, appName), nil
		}
		return "", fmt.Errorf("LOCALAPPDATA environment variable not set")
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
