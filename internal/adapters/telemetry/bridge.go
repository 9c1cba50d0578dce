package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/firedrake-install/internal/core/ports"
	"go.trai.ch/firedrake-install/internal/ui/style"
)

// Bridge implements sdktrace.SpanProcessor to report finished install steps
// to a logger. Step starts go to the debug level only.
type Bridge struct {
	logger ports.Logger
}

// NewBridge returns a new Bridge.
func NewBridge(logger ports.Logger) *Bridge {
	return &Bridge{logger: logger}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, s sdktrace.ReadWriteSpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Debug(style.Dot + " " + s.Name())
}

// OnEnd is called when a span ends.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil || !s.SpanContext().IsValid() {
		return
	}
	b.logger.Info(StepLine(s.Name(), s.EndTime().Sub(s.StartTime()), s.Status().Code == codes.Error, s.Attributes()))
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}

// StepLine renders the report of a finished step.
func StepLine(name string, elapsed time.Duration, failed bool, attrs []attribute.KeyValue) string {
	var cached, skipped bool
	var detail string
	for _, kv := range attrs {
		switch string(kv.Key) {
		case AttrCached:
			cached = kv.Value.AsBool()
		case AttrSkipped:
			skipped = kv.Value.AsBool()
		case AttrDetail:
			detail = kv.Value.AsString()
		}
	}

	duration := elapsed.Round(100 * time.Millisecond).String()
	switch {
	case failed:
		return style.Step(style.Cross, name, "failed after "+duration)
	case cached:
		return style.Step(style.Cached, name, "restored from cache")
	case skipped:
		if detail == "" {
			detail = "skipped"
		}
		return style.Step(style.Dot, name, detail)
	default:
		return style.Step(style.Check, name, duration)
	}
}

// Setup installs a global tracer provider that reports through the bridge.
// The returned provider must be shut down at the end of the run.
func Setup(logger ports.Logger) *sdktrace.TracerProvider {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(NewBridge(logger)),
	)
	otel.SetTracerProvider(tp)
	return tp
}
