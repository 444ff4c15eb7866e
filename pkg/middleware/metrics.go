package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/showcase/pkg/router"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "showcase").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for guard duration.
	Buckets []float64

	// Registry is the registerer for all collectors.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
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

// WithRegistry sets the Prometheus registerer.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "showcase",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the navigation collectors.
type Metrics struct {
	navigations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	failures    *prometheus.CounterVec
	loads       *prometheus.CounterVec
}

// Prometheus creates and registers the navigation collectors.
func Prometheus(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total navigations by target route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Time spent in the navigation guard chain",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		failures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_failures_total",
			Help:        "Failed navigations by target route and reason",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "reason"}),

		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "view_loads_total",
			Help:        "View loader calls by route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),
	}
}

// Install registers the guard and the after hook on r.
func (m *Metrics) Install(r *router.Router) {
	r.BeforeEach(m.Guard())
	r.AfterEach(m.AfterHook())
}

// Guard times the remainder of the guard chain.
func (m *Metrics) Guard() router.Guard {
	return router.GuardFunc(func(nav *router.Navigation, next func() error) error {
		start := time.Now()
		err := next()
		m.duration.WithLabelValues(routeLabel(nav.To)).Observe(time.Since(start).Seconds())
		return err
	})
}

// AfterHook counts navigation outcomes.
func (m *Metrics) AfterHook() router.AfterHook {
	return func(to, from *router.Route, err error) {
		route := routeLabel(to)
		if err != nil {
			m.navigations.WithLabelValues(route, "failure").Inc()
			m.failures.WithLabelValues(route, failureReason(err)).Inc()
			return
		}
		m.navigations.WithLabelValues(route, "success").Inc()
	}
}

// Loader wraps a view loader so every call is counted.
func (m *Metrics) Loader(name string, load router.Loader) router.Loader {
	return func(ctx context.Context) (router.View, error) {
		view, err := load(ctx)
		status := "success"
		if err != nil {
			status = "error"
		}
		m.loads.WithLabelValues(name, status).Inc()
		return view, err
	}
}

func routeLabel(r *router.Route) string {
	if r == nil || r.Name == "" {
		return "unknown"
	}
	return r.Name
}

// failureReason keeps the reason label low-cardinality.
func failureReason(err error) string {
	switch {
	case errors.Is(err, router.ErrNavigationDuplicated):
		return "duplicated"
	case errors.Is(err, router.ErrTooManyRedirects):
		return "redirect_loop"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	case errors.Is(err, router.ErrNavigationAborted):
		return "aborted"
	default:
		return "internal"
	}
}
