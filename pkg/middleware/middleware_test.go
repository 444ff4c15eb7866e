package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/showcase/pkg/router"
)

type page string

func (p page) Title() string { return string(p) }

func (p page) Render(w io.Writer) error {
	_, err := io.WriteString(w, string(p))
	return err
}

func newRouter(t *testing.T) *router.Router {
	t.Helper()
	load := func(title string) router.Loader {
		return func(ctx context.Context) (router.View, error) { return page(title), nil }
	}
	r, err := router.New(router.NewMemoryHistory(""), []router.Descriptor{
		{Path: "/", Name: "home", Component: load("Home")},
		{Path: "/button", Name: "button", Component: load("Button")},
		{Path: "/card", Name: "card", Component: load("Card")},
	})
	if err != nil {
		t.Fatalf("router.New() error = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

func TestPrometheusRecordsNavigations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(WithRegistry(reg), WithNamespace("test"))
	r := newRouter(t)
	m.Install(r)
	ctx := context.Background()

	if _, err := r.Push(ctx, router.Location{Name: "button"}); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Push(ctx, router.Location{Name: "button"}); !errors.Is(err, router.ErrNavigationDuplicated) {
		t.Fatalf("second Push error = %v", err)
	}
	r.BeforeEach(router.Only(router.ToRoute("card"), router.GuardFunc(func(nav *router.Navigation, next func() error) error {
		return router.ErrNavigationAborted
	})))
	if _, err := r.Push(ctx, router.Location{Name: "card"}); err == nil {
		t.Fatal("expected aborted navigation")
	}

	if got := counterValue(t, m.navigations.WithLabelValues("button", "success")); got != 1 {
		t.Errorf("button success = %v, want 1", got)
	}
	if got := counterValue(t, m.navigations.WithLabelValues("button", "failure")); got != 1 {
		t.Errorf("button failure = %v, want 1", got)
	}
	if got := counterValue(t, m.failures.WithLabelValues("button", "duplicated")); got != 1 {
		t.Errorf("duplicated failures = %v, want 1", got)
	}
	if got := counterValue(t, m.failures.WithLabelValues("card", "aborted")); got != 1 {
		t.Errorf("aborted failures = %v, want 1", got)
	}
	if got := histogramCount(t, m.duration.WithLabelValues("card")); got != 1 {
		t.Errorf("card duration samples = %d, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	if len(families) == 0 || !strings.HasPrefix(families[0].GetName(), "test_") {
		t.Errorf("unexpected families %v", families)
	}
}

func TestPrometheusOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := Prometheus(
		WithRegistry(reg),
		WithNamespace("test"),
		WithSubsystem("nav"),
		WithConstLabels(prometheus.Labels{"app": "showcase"}),
		WithBuckets([]float64{0.1, 1}),
	)
	r := newRouter(t)
	m.Install(r)
	if _, err := r.Push(context.Background(), router.Location{Name: "card"}); err != nil {
		t.Fatal(err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	byName := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		byName[f.GetName()] = f
	}

	counters, ok := byName["test_nav_navigations_total"]
	if !ok {
		t.Fatalf("missing test_nav_navigations_total in %v", families)
	}
	var app string
	for _, lp := range counters.GetMetric()[0].GetLabel() {
		if lp.GetName() == "app" {
			app = lp.GetValue()
		}
	}
	if app != "showcase" {
		t.Errorf("const label app = %q, want showcase", app)
	}

	hist, ok := byName["test_nav_navigation_duration_seconds"]
	if !ok {
		t.Fatal("missing test_nav_navigation_duration_seconds")
	}
	if got := len(hist.GetMetric()[0].GetHistogram().GetBucket()); got != 2 {
		t.Errorf("histogram buckets = %d, want 2", got)
	}
}

func TestPrometheusLoader(t *testing.T) {
	m := Prometheus(WithRegistry(prometheus.NewRegistry()))
	fail := true
	load := m.Loader("card", func(ctx context.Context) (router.View, error) {
		if fail {
			return nil, errors.New("missing")
		}
		return page("Card"), nil
	})

	load(context.Background())
	fail = false
	load(context.Background())
	load(context.Background())

	if got := counterValue(t, m.loads.WithLabelValues("card", "error")); got != 1 {
		t.Errorf("error loads = %v", got)
	}
	if got := counterValue(t, m.loads.WithLabelValues("card", "success")); got != 2 {
		t.Errorf("success loads = %v", got)
	}
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{router.ErrNavigationDuplicated, "duplicated"},
		{router.ErrTooManyRedirects, "redirect_loop"},
		{context.Canceled, "cancelled"},
		{errors.Join(router.ErrNavigationAborted, errors.New("x")), "aborted"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		if got := failureReason(tt.err); got != tt.want {
			t.Errorf("failureReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

type recordingProvider struct {
	noop.TracerProvider
	spans []*recordingSpan
}

func (p *recordingProvider) Tracer(name string, opts ...trace.TracerOption) trace.Tracer {
	return &recordingTracer{provider: p}
}

type recordingTracer struct {
	noop.Tracer
	provider *recordingProvider
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	span := &recordingSpan{name: name, attrs: cfg.Attributes()}
	t.provider.spans = append(t.provider.spans, span)
	return ctx, span
}

type recordingSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	err    error
	ended  bool
}

func (s *recordingSpan) RecordError(err error, opts ...trace.EventOption) { s.err = err }
func (s *recordingSpan) SetStatus(code codes.Code, description string)     { s.status = code }
func (s *recordingSpan) End(opts ...trace.SpanEndOption)                    { s.ended = true }

func (s *recordingSpan) attr(key string) string {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestOpenTelemetryTracesNavigation(t *testing.T) {
	tp := &recordingProvider{}
	r := newRouter(t)
	r.BeforeEach(OpenTelemetry(
		WithTracerProvider(tp),
		WithIncludeQuery(true),
		WithNavigationFilter(func(nav *router.Navigation) bool { return nav.To.Name != "home" }),
		WithAttributeExtractor(func(nav *router.Navigation) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))
	ctx := context.Background()

	if _, err := r.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if len(tp.spans) != 0 {
		t.Fatalf("filtered navigation was traced: %d spans", len(tp.spans))
	}

	if _, err := r.Push(ctx, router.Location{Path: "/button?size=lg"}); err != nil {
		t.Fatal(err)
	}
	if len(tp.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tp.spans))
	}
	span := tp.spans[0]
	if span.name != "navigate button" {
		t.Errorf("span name = %q", span.name)
	}
	if !span.ended || span.status != codes.Ok {
		t.Errorf("span ended = %v status = %v", span.ended, span.status)
	}
	if span.attr("navigation.to.path") != "/button" || span.attr("navigation.from.name") != "home" {
		t.Errorf("attrs = %v", span.attrs)
	}
	if span.attr("navigation.to.query") != "size=lg" || span.attr("test.attr") != "ok" {
		t.Errorf("attrs = %v", span.attrs)
	}

	boom := errors.New("boom")
	r.BeforeEach(router.GuardFunc(func(nav *router.Navigation, next func() error) error { return boom }))
	if _, err := r.Push(ctx, router.Location{Name: "card"}); !errors.Is(err, boom) {
		t.Fatalf("Push error = %v", err)
	}
	failed := tp.spans[len(tp.spans)-1]
	if failed.status != codes.Error || !errors.Is(failed.err, boom) {
		t.Errorf("failed span status = %v err = %v", failed.status, failed.err)
	}
}

func TestLoggingHook(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := newRouter(t)
	r.AfterEach(Logging(logger))
	ctx := context.Background()

	r.Push(ctx, router.Location{Name: "card"})
	r.Push(ctx, router.Location{Name: "card"})

	out := buf.String()
	if !strings.Contains(out, "msg=navigated") || !strings.Contains(out, "to=card") {
		t.Errorf("missing success record:\n%s", out)
	}
	if !strings.Contains(out, `msg="navigation failed"`) || !strings.Contains(out, "reason=duplicated") {
		t.Errorf("missing failure record:\n%s", out)
	}
	if !strings.Contains(out, "component=navigation") {
		t.Errorf("missing component attr:\n%s", out)
	}
}
