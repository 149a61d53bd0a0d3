// Package constants defines shared option keys, environment variables and
// defaults used throughout waypoint.
package constants

import (
	"os"
)

// Development is the environment variable value for development mode.
const Development = "DEV"

// Environment variables read by the composition root and the CLI.
const (
	EnvironmentEnvVar = "ENVIRONMENT"
	LogLevelEnvVar    = "WAYPOINT_LOG_LEVEL"
	LogPathEnvVar     = "WAYPOINT_LOG_PATH"
	ConfigEnvVar      = "WAYPOINT_CONFIG"
)

// IsDevMode returns true if running in development mode (ENVIRONMENT=DEV).
func IsDevMode() bool {
	return os.Getenv(EnvironmentEnvVar) == Development
}

// Item option keys understood by the built-in presenters.
const (
	OptionAnimated               = "animated"               // bool, default true
	OptionAppendOnly             = "appendOnly"             // bool, default false
	OptionModalPresentationStyle = "modalPresentationStyle" // platform int
)

// Built-in presenter names.
const (
	PresenterRoot    = "root"
	PresenterPush    = "push"
	PresenterModal   = "modal"
	PresenterReplace = "replace"
	PresenterTab     = "tab"
)

// Defaults.
const (
	DefaultHistorySize     = 20
	DefaultTracerName      = "waypoint"
	DefaultMetricsNS       = "waypoint"
	DefaultLanguage        = "en"
	DefaultModalStyle  int = 0
)
