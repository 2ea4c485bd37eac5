package notification

import (
	"log/slog"

	"github.com/share-registry/share_registry/internal/registry"
)

// LoggerSink publishes registry events to the structured logger. It stands in
// for whatever downstream systems would subscribe to the event stream.
type LoggerSink struct {
	logger *slog.Logger
}

// NewLoggerSink constructs a logging event sink.
func NewLoggerSink(logger *slog.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

// Publish writes the event to the structured logger.
func (s *LoggerSink) Publish(ev registry.Event) {
	if s == nil || s.logger == nil {
		return
	}
	attrs := []any{
		slog.Uint64("seq", ev.Seq),
		slog.String("type", string(ev.Type)),
		slog.String("account", ev.Account.String()),
	}
	if ev.Amount != nil {
		attrs = append(attrs, slog.String("amount", ev.Amount.Dec()))
	}
	s.logger.Info("registry event", attrs...)
}
