package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "goldrec"

	// PipelineName identifies the customer golden-record pipeline
	// in the run log.
	PipelineName = "customer_golden"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/goldrec by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/goldrec by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/goldrec/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/goldrec/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
