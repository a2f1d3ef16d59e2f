package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/codetown/votecount/internal/domain"
	"github.com/codetown/votecount/internal/ports"
)

var _ ports.Unit = (*ObservedUnit)(nil)

// ObservedUnit wraps a pipeline unit with OpenTelemetry tracing and
// metric collection. Each Execute call runs inside its own span carrying
// the unit name and source path, and emits a latency observation plus an
// outcome counter labeled with the validation error kind on failure.
//
// The wrapper is transparent: state and errors pass through unchanged,
// so observability never alters pipeline behavior.
type ObservedUnit struct {
	next    ports.Unit
	metrics ports.MetricsCollector
	tracer  trace.Tracer
}

// Observe wraps unit with tracing and, when metrics is non-nil, metric
// collection.
func Observe(unit ports.Unit, metrics ports.MetricsCollector) *ObservedUnit {
	return &ObservedUnit{
		next:    unit,
		metrics: metrics,
		tracer:  otel.Tracer("votecount-pipeline"),
	}
}

// Name returns the wrapped unit's identifier.
func (ou *ObservedUnit) Name() string { return ou.next.Name() }

// Execute runs the wrapped unit inside a span and records its outcome.
func (ou *ObservedUnit) Execute(ctx context.Context, state domain.State) (domain.State, error) {
	attrs := []attribute.KeyValue{
		attribute.String("unit.name", ou.next.Name()),
	}
	if path, ok := domain.Get(state, domain.KeySourcePath); ok {
		attrs = append(attrs, attribute.String("vote_file.path", path))
	}
	if runID, ok := domain.Get(state, domain.KeyRunID); ok {
		attrs = append(attrs, attribute.String("run.id", runID))
	}

	ctx, span := ou.tracer.Start(ctx, "Unit.Execute", trace.WithAttributes(attrs...))
	defer span.End()

	start := time.Now()
	newState, err := ou.next.Execute(ctx, state)
	elapsed := time.Since(start)

	labels := map[string]string{"unit": ou.next.Name()}
	if err != nil {
		kind := domain.KindOf(err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		if ou.metrics != nil {
			labels["status"] = "error"
			labels["kind"] = string(kind)
			ou.metrics.RecordLatency("unit_execute", elapsed, labels)
			ou.metrics.RecordCounter("votecount_unit_outcomes_total", 1, labels)
		}
		return newState, err
	}

	span.SetStatus(codes.Ok, "")
	if ou.metrics != nil {
		ou.metrics.RecordLatency("unit_execute", elapsed, labels)
		ou.metrics.RecordCounter("votecount_unit_outcomes_total", 1, labels)
	}
	return newState, nil
}

// Validate delegates to the wrapped unit.
func (ou *ObservedUnit) Validate() error { return ou.next.Validate() }

// ObserveAll wraps every unit in the slice, preserving order.
func ObserveAll(units []ports.Unit, metrics ports.MetricsCollector) []ports.Unit {
	wrapped := make([]ports.Unit, len(units))
	for i, u := range units {
		wrapped[i] = Observe(u, metrics)
	}
	return wrapped
}
