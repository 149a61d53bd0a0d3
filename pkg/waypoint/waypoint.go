// Package waypoint assembles a declarative navigation router: segments and
// presenters are registered once, and screens are then driven by requesting
// whole route sequences. The router diffs each request against what it
// realized last and pops and presents only the difference.
//
// New wires the pieces from the sub-packages: logging, the built-in
// presenters, an optional TOML route file, Prometheus metrics and the router
// itself. Applications that need finer control can use the router package
// directly.
package waypoint

import (
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/config"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/internal"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/metrics"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/presenters"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Options configures New.
type Options struct {
	ConfigPath      string                // Route file; WAYPOINT_CONFIG is used when empty
	Config          *config.File          // Already decoded route file, takes precedence over ConfigPath
	Loaders         config.Loaders        // Loaders referenced by name from the route file
	Segments        []*router.Segment     // Segments registered after the route file
	Presenters      []router.Presenter    // Extra presenters, registered after the built-in ones
	Window          router.Container      // Root window handed to presenters
	Dispatcher      router.Dispatcher     // Where presenter calls run; inline when nil
	MetricsRegistry prometheus.Registerer // Enables Prometheus metrics when set
	LogPath         string                // Full path for log file including filename (creates parent directories)
	LogLevel        string                // Router log level ("debug", "info", "warn", "error")
	RouterOptions   []router.Option       // Applied last, overriding everything above
}

// New builds a router from options. The router's own logging stays at error
// level unless a level is given through Options, the route file or
// WAYPOINT_LOG_LEVEL, or ENVIRONMENT=DEV is set.
func New(options Options) (*router.Router, error) {
	file := options.Config
	if file == nil {
		var err error
		if options.ConfigPath != "" {
			file, err = config.Load(options.ConfigPath)
		} else {
			file, err = config.LoadFromEnv()
		}
		if err != nil {
			return nil, NewSetupError("load_config", err)
		}
	}

	setupLogging(options, file)

	ctx := presenters.Seed(router.NewContext())
	for _, p := range options.Presenters {
		ctx.RegisterPresenter(p)
	}
	if file != nil {
		if err := file.Apply(ctx, options.Loaders); err != nil {
			return nil, NewSetupError("apply_config", err)
		}
	}
	for _, s := range options.Segments {
		ctx.RegisterSegment(s)
	}

	var opts []router.Option
	if options.Window != nil {
		opts = append(opts, router.WithWindow(options.Window))
	}
	if options.Dispatcher != nil {
		opts = append(opts, router.WithDispatcher(options.Dispatcher))
	}
	if file != nil {
		opts = append(opts, file.RouterOptions()...)
	}
	if options.MetricsRegistry != nil {
		opts = append(opts, router.WithObserver(metrics.New(metrics.WithRegistry(options.MetricsRegistry))))
	}
	opts = append(opts, options.RouterOptions...)

	r := router.New(ctx, opts...)
	internal.GetInternalLogger().Debug("router ready",
		"segments", len(ctx.Segments()),
		"presenters", len(ctx.Presenters()),
	)
	return r, nil
}

func setupLogging(options Options, file *config.File) {
	logPath := options.LogPath
	if logPath == "" {
		logPath = os.Getenv(constants.LogPathEnvVar)
	}
	if logPath == "" && file != nil {
		logPath = file.Router.LogPath
	}
	if logPath != "" {
		internal.SetLogPath(logPath)
	}

	level := options.LogLevel
	if level == "" {
		level = os.Getenv(constants.LogLevelEnvVar)
	}
	if level == "" && file != nil {
		level = file.Router.LogLevel
	}

	switch {
	case constants.IsDevMode():
		internal.SetInternalLogLevel(slog.LevelDebug)
	case level != "":
		internal.SetInternalLogLevel(internal.ParseLevel(level))
	}
}

// Close releases the log file, if one was opened.
func Close() {
	internal.CloseLogger()
}

// SetLogPath sets the full path for the log file, including filename.
// Creates all necessary parent directories.
// Call before New to take effect.
func SetLogPath(path string) {
	internal.SetLogPath(path)
}

// GetLogger returns the application logger for structured logging.
func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel sets the minimum log level for the application logger.
func SetLogLevel(level slog.Level) {
	internal.SetLogLevel(level)
}

// SetRawLogLevel parses and sets the log level from a string (e.g., "debug", "info", "error").
func SetRawLogLevel(level string) {
	internal.SetRawLogLevel(level)
}

// SetRouterLogLevel sets the minimum log level for the router's own logging.
func SetRouterLogLevel(level slog.Level) {
	internal.SetInternalLogLevel(level)
}
