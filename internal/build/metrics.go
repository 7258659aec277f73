package build

import (
	"context"
	stderrors "errors"
	goscanner "go/scanner"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/fileroutes/pkg/routeconfig"
)

// MetricsConfig configures the build metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "fileroutes").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for build duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the build metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "fileroutes",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of the build pipeline.
//
// Collected:
//   - fileroutes_builds_total: builds by status ("success" or "error")
//   - fileroutes_build_errors_total: failed builds by error kind
//   - fileroutes_build_duration_seconds: build duration
//   - fileroutes_routes: route count of the last successful build
type Metrics struct {
	buildsTotal   *prometheus.CounterVec
	buildErrors   *prometheus.CounterVec
	buildDuration prometheus.Histogram
	routes        prometheus.Gauge
}

// NewMetrics registers the build collectors.
// Registering twice on the same registry panics, as with promauto.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		buildsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "builds_total",
			Help:        "Total number of route document builds",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		buildErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_errors_total",
			Help:        "Total number of failed builds by error kind",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		buildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "build_duration_seconds",
			Help:        "Route document build duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes",
			Help:        "Number of routes in the last successful build",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// observe records one build. m may be nil.
func (m *Metrics) observe(routeCount int, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.buildDuration.Observe(duration.Seconds())
	if err != nil {
		m.buildsTotal.WithLabelValues("error").Inc()
		m.buildErrors.WithLabelValues(categorizeError(err)).Inc()
		return
	}
	m.buildsTotal.WithLabelValues("success").Inc()
	m.routes.Set(float64(routeCount))
}

// categorizeError returns a low-cardinality label for err.
func categorizeError(err error) string {
	var parseErrs goscanner.ErrorList
	switch {
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case stderrors.Is(err, routeconfig.ErrInvalidSegment):
		return "invalid_segment"
	case stderrors.Is(err, routeconfig.ErrAmbiguousParameterName):
		return "ambiguous_parameter"
	case stderrors.Is(err, routeconfig.ErrDuplicateRoute):
		return "duplicate_route"
	case stderrors.As(err, &parseErrs):
		return "parse"
	}
	return "other"
}
