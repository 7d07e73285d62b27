package services

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// ReflowEvent captures lightweight execution telemetry for a single
// reflow run.
type ReflowEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// ReflowObserver receives reflow execution events. Implementations must
// not block the caller for long; the service calls it synchronously
// after every run.
type ReflowObserver interface {
	ObserveReflow(ctx context.Context, event ReflowEvent)
}

// NoopReflowObserver discards every event. It is the default when no
// observer is configured.
type NoopReflowObserver struct{}

func (NoopReflowObserver) ObserveReflow(context.Context, ReflowEvent) {}

type slogReflowObserver struct {
	logger *slog.Logger
}

// NewSlogReflowObserver writes reflow run events as structured log
// lines to w. Passing a nil writer yields a no-op observer.
func NewSlogReflowObserver(w io.Writer) ReflowObserver {
	if w == nil {
		return NoopReflowObserver{}
	}
	return &slogReflowObserver{
		logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *slogReflowObserver) ObserveReflow(ctx context.Context, event ReflowEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"operation", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "reflow_run", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "reflow_run", attrs...)
}

func observerOrNoop(observer ReflowObserver) ReflowObserver {
	if observer == nil {
		return NoopReflowObserver{}
	}
	return observer
}
