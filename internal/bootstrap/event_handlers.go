package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/devaliuz/Epic-Charaktersheet/internal/event"
	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
	"github.com/devaliuz/Epic-Charaktersheet/internal/metrics"
)

// RegisterEventHandlers sets up all event subscribers:
// - Metrics collector (domain counters)
// - Event logger (one debug line per domain event)
func RegisterEventHandlers(bus event.Bus) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(bus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	for _, t := range event.AllTypes {
		bus.Subscribe(t, logEvent)
	}
	slog.Info(LogMsgEventLoggerInitialized)

	return nil
}

func logEvent(ctx context.Context, evt event.Event) error {
	logger.FromContext(ctx).Debug(LogMsgEventRecorded,
		"type", evt.Type,
		"version", evt.Version,
		"payload", evt.Payload)
	return nil
}
