// Package middleware provides navigation guards and hooks that observe a
// router.
//
// # Prometheus Metrics
//
//	m := middleware.Prometheus(middleware.WithNamespace("showcase"))
//	m.Install(r)
//
// collects:
//   - showcase_navigations_total: navigations by route and status
//   - showcase_navigation_duration_seconds: guard chain duration by route
//   - showcase_navigation_failures_total: failed navigations by route and reason
//   - showcase_view_loads_total: view loader calls by route and status
//
// # OpenTelemetry
//
// OpenTelemetry returns a guard that wraps the rest of the guard chain in a
// span. The tracer comes from the global provider:
//
//	r.BeforeEach(middleware.OpenTelemetry(middleware.WithTracerName("showcase")))
//
// # Logging
//
// Logging returns an after hook that writes one slog record per navigation.
package middleware
