// The tracing package wraps handlers in OpenTelemetry spans. One span
// is created per handled record, so traces started by the producing
// side of your system can be followed into the handlers.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ventoux/partita/handler"
	"github.com/ventoux/partita/message"
)

const tracerName = "github.com/ventoux/partita/tracing"

// Option configures Wrap.
type Option func(*options)

type options struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the provider spans are created from.
// Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) { o.provider = tp }
}

// Wrap returns a handler that runs h inside a span named
// "HandleRecord". The span carries the topic, partition, offset and id
// of the record. When h fails, the error is recorded on the span and
// the span status is set to error.
//
// The context handed to h carries the span, so spans created further
// down become its children.
func Wrap[K, V any](h handler.Handler[K, V], opts ...Option) handler.Handler[K, V] {
	o := options{provider: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(&o)
	}

	return &tracingHandler[K, V]{
		h:      h,
		topics: h.Topics(),
		tracer: o.provider.Tracer(tracerName),
	}
}

type tracingHandler[K, V any] struct {
	h      handler.Handler[K, V]
	topics []string
	tracer trace.Tracer
}

func (t *tracingHandler[K, V]) Topics() []string {
	out := make([]string, len(t.topics))
	copy(out, t.topics)
	return out
}

func (t *tracingHandler[K, V]) Handle(ctx context.Context, rec *message.Record[K, V]) error {
	ctx, span := t.tracer.Start(ctx, "HandleRecord")
	defer span.End()

	span.SetAttributes(
		attribute.String("record.topic", rec.Topic),
		attribute.Int64("record.partition", int64(rec.Partition)),
		attribute.Int64("record.offset", rec.Offset),
		attribute.String("record.id", rec.ID),
	)

	err := t.h.Handle(ctx, rec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
