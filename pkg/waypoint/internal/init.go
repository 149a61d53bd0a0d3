// Package internal holds process-wide infrastructure for waypoint, chiefly the
// slog loggers shared by the router, the composition root and the CLI.
// Types and functions in this package are not part of the public API.
package internal
