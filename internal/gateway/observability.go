package gateway

import (
	"context"
	"log/slog"

	"github.com/alexanderramin/jobcolor/internal/metrics"
)

// CallEvent records metadata about a single job API call.
type CallEvent struct {
	Op        Operation
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about job API calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a structured logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"op", string(event.Op),
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Log(context.Background(), slog.LevelWarn, "job_api_call",
			append(attrs, "status", "err", "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Debug("job_api_call", append(attrs, "status", "ok")...)
}

// MetricsObserver records call outcomes in the prometheus collectors.
type MetricsObserver struct{}

func (MetricsObserver) OnCallComplete(event CallEvent) {
	outcome := "ok"
	if !event.Success {
		outcome = event.ErrorCode
	}
	metrics.GatewayCallsTotal.WithLabelValues(string(event.Op), outcome).Inc()
	metrics.GatewayCallDuration.WithLabelValues(string(event.Op)).Observe(float64(event.LatencyMs) / 1000)
}

// MultiObserver fans an event out to several observers.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event CallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
