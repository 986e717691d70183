package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"
)

var (
	metricsOnce      sync.Once
	remoteAttempts   otelmetric.Int64Counter
	remoteFailures   otelmetric.Int64Counter
	remoteDuration   otelmetric.Float64Histogram
	audioHandlesOpen otelmetric.Int64UpDownCounter
)

func initMetrics() {
	meter := otel.Meter("fitcoach")
	var err error
	remoteAttempts, err = meter.Int64Counter(
		"remote_call_attempts_total",
		otelmetric.WithDescription("Attempts made against generative AI endpoints"),
	)
	if err != nil {
		slog.Warn("metrics init", "instrument", "remote_call_attempts_total", "error", err)
	}
	remoteFailures, err = meter.Int64Counter(
		"remote_call_failures_total",
		otelmetric.WithDescription("Failed attempts against generative AI endpoints"),
	)
	if err != nil {
		slog.Warn("metrics init", "instrument", "remote_call_failures_total", "error", err)
	}
	remoteDuration, err = meter.Float64Histogram(
		"remote_call_duration_seconds",
		otelmetric.WithDescription("Latency of single remote call attempts"),
		otelmetric.WithUnit("s"),
	)
	if err != nil {
		slog.Warn("metrics init", "instrument", "remote_call_duration_seconds", "error", err)
	}
	audioHandlesOpen, err = meter.Int64UpDownCounter(
		"audio_handles_open",
		otelmetric.WithDescription("Synthesized audio resources currently held"),
	)
	if err != nil {
		slog.Warn("metrics init", "instrument", "audio_handles_open", "error", err)
	}
}

// RecordAttempt counts one remote call attempt against endpoint.
func RecordAttempt(ctx context.Context, endpoint string, elapsed time.Duration, failed bool) {
	metricsOnce.Do(initMetrics)
	attrs := otelmetric.WithAttributes(attribute.String("endpoint", endpoint))
	if remoteAttempts != nil {
		remoteAttempts.Add(ctx, 1, attrs)
	}
	if failed && remoteFailures != nil {
		remoteFailures.Add(ctx, 1, attrs)
	}
	if remoteDuration != nil {
		remoteDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// AudioHandleOpened and AudioHandleReleased keep the open-handle gauge in step
// with the playback coordinator.
func AudioHandleOpened(ctx context.Context) {
	metricsOnce.Do(initMetrics)
	if audioHandlesOpen != nil {
		audioHandlesOpen.Add(ctx, 1)
	}
}

func AudioHandleReleased(ctx context.Context) {
	metricsOnce.Do(initMetrics)
	if audioHandlesOpen != nil {
		audioHandlesOpen.Add(ctx, -1)
	}
}
