package notify

import (
	"context"

	"github.com/oshokin/hydration-clock/internal/logger"
)

// Log writes notifications to the structured log, for headless machines.
type Log struct{}

// NewLog creates a log notifier.
func NewLog() *Log {
	return new(Log)
}

// Send logs n at info level. It never fails.
func (*Log) Send(ctx context.Context, n Notification) error {
	logger.InfoKV(ctx, "Notification", "id", n.ID, "title", n.Title, "message", n.Message)

	return nil
}
