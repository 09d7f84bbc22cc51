// Package config holds the fixed settings of fmtcheck and the few values
// read from the environment.
package config

import (
	"time"

	"github.com/andyballingall/fmtcheck/internal/fs"
)

// ToolName is the formatting checker invoked against the discovered files.
const ToolName = "clang-format"

const (
	// FlagDryRun reports would-be changes without writing them.
	FlagDryRun = "-n"
	// FlagWarningsAsErrors makes any reported change a non-zero exit.
	FlagWarningsAsErrors = "-Werror"
	// FlagStyleFile selects the style from the project-local style file.
	FlagStyleFile = "-style=file"
)

// ToolFlags returns the fixed flags passed ahead of the file list, in order.
func ToolFlags() []string {
	return []string{FlagDryRun, FlagWarningsAsErrors, FlagStyleFile}
}

// StyleFileNames lists the style files clang-format discovers, in order of preference.
var StyleFileNames = []string{".clang-format", "_clang-format"}

// WatchDebounce is how long the watcher waits for further changes before re-checking.
const WatchDebounce = 100 * time.Millisecond

// LogEnvVar names the optional JSON log file. File logging is off when it is unset.
const LogEnvVar = "FMTCHECK_LOG_FILE"

// Config is the environment-derived part of the configuration.
type Config struct {
	LogFile string
}

// New reads the configuration from the given environment.
func New(env fs.EnvProvider) *Config {
	return &Config{
		LogFile: env.Get(LogEnvVar),
	}
}

// FileLogging reports whether a log file has been requested.
func (c *Config) FileLogging() bool {
	return c.LogFile != ""
}
