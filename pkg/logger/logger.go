// Package logger provides structured JSON event logging for the wave
// planning pipeline: one method per event the pipeline actually emits,
// each carrying the attributes that event needs.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger emits structured JSON log lines. A disabled Logger (NewNoop)
// drops every call, so tests can wire one in without asserting on output.
type Logger struct {
	slog    *slog.Logger
	enabled bool
}

// New creates a Logger that writes structured JSON events to stdout.
func New() *Logger {
	return newWithWriter(os.Stdout, true)
}

// NewNoop creates a Logger that discards every event, for tests.
func NewNoop() *Logger {
	return newWithWriter(io.Discard, false)
}

func newWithWriter(w io.Writer, enabled bool) *Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return &Logger{slog: slog.New(handler), enabled: enabled}
}

// RedisConnected logs that the routing leg cache's Redis backend came up.
func (l *Logger) RedisConnected() {
	l.emit(slog.LevelInfo, "redis_connected")
}

// RedisCacheDisabled logs that the routing leg cache is running without a
// Redis backend (either REDIS_URL was never set, or the ping failed), a
// performance degradation rather than a correctness problem.
func (l *Logger) RedisCacheDisabled(reason string, err error) {
	attrs := []any{"reason", reason}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
		l.emit(slog.LevelWarn, "redis_cache_disabled", attrs...)
		return
	}
	l.emit(slog.LevelInfo, "redis_cache_disabled", attrs...)
}

// RoutingEnrichmentFailed logs that a vehicle's route legs could not be
// enriched with duration/distance for the given profile; the caller
// leaves the legs at zero and continues, so this is a warning, not fatal.
func (l *Logger) RoutingEnrichmentFailed(profile string, err error) {
	l.emit(slog.LevelWarn, "routing_enrichment_failed", "profile", profile, "error", err.Error())
}

// PlanFailed logs that a /v1/jeju_onul or /v2/jeju_onul_before request
// failed to produce a plan.
func (l *Logger) PlanFailed(err error) {
	l.emit(slog.LevelError, "plan_failed", "error", err.Error())
}

func (l *Logger) emit(level slog.Level, event string, attrs ...any) {
	if !l.enabled {
		return
	}
	l.slog.Log(context.Background(), level, event, attrs...)
}
