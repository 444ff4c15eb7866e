package middleware

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/showcase/pkg/router"
)

const defaultTracerName = "showcase"

// OTelConfig configures the OpenTelemetry guard.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "showcase").
	TracerName string

	// TracerProvider overrides the global provider.
	TracerProvider trace.TracerProvider

	// IncludeQuery records the query string of the target.
	IncludeQuery bool

	// Filter returns false for navigations that should not be traced.
	Filter func(nav *router.Navigation) bool

	// AttributeExtractor adds custom attributes to every span.
	AttributeExtractor func(nav *router.Navigation) []attribute.KeyValue
}

// OTelOption configures the OpenTelemetry guard.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithIncludeQuery enables recording the query string.
func WithIncludeQuery(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeQuery = include
	}
}

// WithNavigationFilter sets the trace filter.
func WithNavigationFilter(filter func(nav *router.Navigation) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(nav *router.Navigation) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates a guard that traces each navigation through the
// rest of the guard chain. Install it first so it sees every other guard.
func OpenTelemetry(opts ...OTelOption) router.Guard {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	var tracer trace.Tracer
	if config.TracerProvider != nil {
		tracer = config.TracerProvider.Tracer(config.TracerName)
	} else {
		tracer = otel.Tracer(config.TracerName)
	}

	return router.GuardFunc(func(nav *router.Navigation, next func() error) error {
		if config.Filter != nil && !config.Filter(nav) {
			return next()
		}

		attrs := navigationAttributes(nav, config.IncludeQuery)
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(nav)...)
		}

		_, span := tracer.Start(
			nav.Context(),
			spanName(nav),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		err := next()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

func navigationAttributes(nav *router.Navigation, includeQuery bool) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.Bool("navigation.replace", nav.Replace),
	}
	if nav.To != nil {
		attrs = append(attrs,
			attribute.String("navigation.to.name", nav.To.Name),
			attribute.String("navigation.to.path", nav.To.Path),
		)
		if includeQuery && len(nav.To.Query) > 0 {
			attrs = append(attrs, attribute.String("navigation.to.query", nav.To.Query.Encode()))
		}
	}
	if nav.From != nil {
		attrs = append(attrs, attribute.String("navigation.from.name", nav.From.Name))
	}
	return attrs
}

func spanName(nav *router.Navigation) string {
	if nav.To == nil {
		return "navigate"
	}
	return fmt.Sprintf("navigate %s", nav.To.Name)
}
