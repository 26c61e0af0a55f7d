// One span per pipeline stage (§2's domain-stack row: "one span per
// pipeline stage, Deserialize included"), grounded on the teacher's
// dag/executor.go: the Tracer comes from Options.Tracer (defaulting to
// the global otel.Tracer), one span per stage is started under the
// caller's ctx carrying stage-identifying attributes (no separate root
// span per run is created), and errors are recorded via span.RecordError
// and a codes.Error status.
package pipeline

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func defaultTracer() trace.Tracer {
	return otel.Tracer("jyro.pipeline")
}

// traceStage starts a child span named stage under ctx, runs fn, and
// records fn's error (if any) on the span before ending it.
func traceStage(ctx context.Context, tracer trace.Tracer, stage Stage, fn func(context.Context) error) error {
	ctx, span := tracer.Start(ctx, "jyro.pipeline."+string(stage),
		trace.WithAttributes(attribute.String("jyro.stage", string(stage))),
	)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
