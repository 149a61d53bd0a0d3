// Package metrics exports router activity to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/route"
	"github.com/BrandonKowalski/waypoint/pkg/waypoint/router"
)

// Config configures the Prometheus observer.
type Config struct {
	// Namespace is the metrics namespace (default: "waypoint").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the Prometheus observer.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: constants.DefaultMetricsNS,
		// Navigations are UI transitions: milliseconds to a few seconds.
		Buckets:  []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		Registry: prometheus.DefaultRegisterer,
	}
}

// Result label values.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Prometheus is a router.Observer that records navigations.
//
// Metrics collected:
//   - waypoint_navigations_total: Counter of navigations by op and result
//   - waypoint_navigation_duration_seconds: Histogram of navigation duration by op
//   - waypoint_navigation_errors_total: Counter of failed navigations by error kind
//   - waypoint_segments_presented_total: Counter of presented segments by segment
//   - waypoint_segments_dismissed_total: Counter of dismissed segments by segment
//   - waypoint_overlapping_navigations_total: Counter of navigations started while another was in flight
type Prometheus struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	errors      *prometheus.CounterVec
	presented   *prometheus.CounterVec
	dismissed   *prometheus.CounterVec
	overlapping *prometheus.CounterVec
}

var _ router.Observer = (*Prometheus)(nil)

// New registers the navigation metrics and returns the observer. Register it
// with router.WithObserver.
func New(opts ...Option) *Prometheus {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Prometheus{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of finished navigations",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "result"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation duration in seconds, from request to completion",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"op"}),

		errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total number of failed navigations by error kind",
			ConstLabels: config.ConstLabels,
		}, []string{"op", "kind"}),

		presented: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "segments_presented_total",
			Help:        "Total number of segments presented",
			ConstLabels: config.ConstLabels,
		}, []string{"segment"}),

		dismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "segments_dismissed_total",
			Help:        "Total number of segments dismissed",
			ConstLabels: config.ConstLabels,
		}, []string{"segment"}),

		overlapping: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "overlapping_navigations_total",
			Help:        "Total number of navigations started while another was in flight",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
	}
}

func (p *Prometheus) NavigationFinished(op router.Operation, elapsed time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
		p.errors.WithLabelValues(string(op), router.KindOf(err).String()).Inc()
	}
	p.navigations.WithLabelValues(string(op), result).Inc()
	p.duration.WithLabelValues(string(op)).Observe(elapsed.Seconds())
}

func (p *Prometheus) SegmentPresented(id route.Identifier) {
	p.presented.WithLabelValues(id.Name()).Inc()
}

func (p *Prometheus) SegmentDismissed(id route.Identifier) {
	p.dismissed.WithLabelValues(id.Name()).Inc()
}

func (p *Prometheus) OverlappingNavigation(op router.Operation) {
	p.overlapping.WithLabelValues(string(op)).Inc()
}
