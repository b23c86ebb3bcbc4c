package event

import (
	"context"

	"github.com/devaliuz/Epic-Charaktersheet/internal/logger"
)

// Emit publishes evt and logs subscriber errors instead of returning them.
// A nil bus is a no-op.
func Emit(ctx context.Context, bus Bus, evt Event) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}
