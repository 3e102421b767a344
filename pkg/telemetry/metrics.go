package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Counter is a named int64 counter bound to the global meter provider.
// Instruments are created lazily through otel.Meter, so counters built
// before Setup still record once the provider is installed.
type Counter struct {
	c metric.Int64Counter
}

// NewCounter registers a counter under the given meter scope. When the
// instrument cannot be created a no-op counter is returned.
func NewCounter(scope, name, description string) *Counter {
	c, err := otel.Meter(scope).Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
		return &Counter{}
	}
	return &Counter{c: c}
}

// Inc adds one, tagging the measurement with key/value string pairs.
func (c *Counter) Inc(ctx context.Context, kv ...string) {
	if c == nil || c.c == nil {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		attrs = append(attrs, attribute.String(kv[i], kv[i+1]))
	}
	c.c.Add(ctx, 1, metric.WithAttributes(attrs...))
}
