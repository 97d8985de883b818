// Package tracing wraps OpenTelemetry so that simulation runs can be
// recorded as spans without the rest of the code importing the SDK.
package tracing

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const instrumentationName = "schedsim"

// Tracer starts spans. The zero value is not usable; use New, NewWithExporter or Noop.
type Tracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// Noop returns a tracer whose spans are discarded.
func Noop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(instrumentationName)}
}

// New returns a tracer exporting spans as JSON to w.
func New(serviceName, serviceVersion string, w io.Writer) (*Tracer, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, err
	}
	return NewWithExporter(serviceName, serviceVersion, exporter)
}

// NewWithExporter returns a tracer that hands each finished span to exporter.
func NewWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) (*Tracer, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(sdktrace.NewSimpleSpanProcessor(exporter)),
		sdktrace.WithResource(res),
	)
	return &Tracer{provider: tp, tracer: tp.Tracer(instrumentationName)}, nil
}

// Shutdown flushes pending spans.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Span is a started span.
type Span struct {
	span trace.Span
}

// StartSpan starts a child of whatever span ctx carries.
func (t *Tracer) StartSpan(ctx context.Context, name string) (context.Context, *Span) {
	ctx, span := t.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	return ctx, &Span{span: span}
}

// WithAttributes attaches attributes to the span.
func (s *Span) WithAttributes(attrs ...attribute.KeyValue) *Span {
	s.span.SetAttributes(attrs...)
	return s
}

// End records the status derived from err and finishes the span.
func (s *Span) End(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
