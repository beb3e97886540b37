package env

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appName = "rmtrash"

	defaultXDGConfigDirname = ".config"
	defaultTrashDirname     = ".Trash"
	configFilename          = "config.yaml"
)

// Environment variables that override the default locations
const (
	ConfigPathVar = "RMTRASH_CONFIG_PATH"
	LogPathVar    = "RMTRASH_LOG_PATH"
	TrashDirVar   = "RMTRASH_TRASH_DIR"
)

// ConfigPath returns the config file location.
// Follows https://specifications.freedesktop.org/basedir-spec/latest/
func ConfigPath() string {
	if e := os.Getenv(ConfigPathVar); e != "" {
		return e
	}
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		configDir = filepath.Join(homeDir(), defaultXDGConfigDirname)
	}
	return filepath.Join(configDir, appName, configFilename)
}

// LogPath returns the debug log location.
func LogPath() string {
	if e := os.Getenv(LogPathVar); e != "" {
		return e
	}
	fp, err := xdg.CacheFile(filepath.Join(appName, "log"))
	if err != nil {
		return appName + ".log"
	}
	return fp
}

// TrashDir returns the trash root set in the environment, or "" if unset.
func TrashDir() string {
	return os.Getenv(TrashDirVar)
}

// DefaultTrashDir returns the home-relative trash root.
func DefaultTrashDir() string {
	return filepath.Join(homeDir(), defaultTrashDirname)
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}
