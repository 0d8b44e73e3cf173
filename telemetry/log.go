package telemetry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// LogSink renders events as structured log records
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

// levelFor maps kinds to log levels; failures and fallbacks are warnings
func levelFor(k Kind) slog.Level {
	switch k {
	case KindLoopFallback, KindWorldDrift:
		return slog.LevelWarn
	case KindEdgeInvalidated, KindRecovery, KindStagnation, KindReroute:
		return slog.LevelInfo
	case KindGraphRebuild:
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func (s *LogSink) Emit(e Event) {
	level := levelFor(e.Kind)
	ctx := context.Background()
	if !s.logger.Enabled(ctx, level) {
		return
	}

	attrs := make([]slog.Attr, 0, 9)
	attrs = append(attrs, slog.Float64("t", e.Time))
	if e.Platform != 0 {
		attrs = append(attrs, slog.Int("platform", e.Platform))
	}
	if e.Target != 0 {
		attrs = append(attrs, slog.Int("target", e.Target))
	}
	if e.X != 0 || e.Y != 0 {
		attrs = append(attrs, slog.Float64("x", e.X), slog.Float64("y", e.Y))
	}
	if e.Value != 0 {
		attrs = append(attrs, slog.Float64("value", e.Value))
	}
	if e.Count != 0 {
		attrs = append(attrs, slog.Int("count", e.Count))
	}
	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}
	if e.Session != uuid.Nil {
		attrs = append(attrs, slog.String("session", e.Session.String()))
	}
	s.logger.LogAttrs(ctx, level, e.Kind.String(), attrs...)
}
