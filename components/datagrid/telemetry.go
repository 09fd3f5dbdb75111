package datagrid

import (
	"context"

	"github.com/rs/zerolog"
)

// Telemetry records grid events (filter changes, sorts, exports) for observability.
type Telemetry interface {
	Record(ctx context.Context, event string, payload map[string]any)
}

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}

// ZerologTelemetry writes telemetry events as structured debug logs.
type ZerologTelemetry struct {
	logger zerolog.Logger
	level  zerolog.Level
}

// NewZerologTelemetry wraps logger. Events are logged at debug level unless
// overridden with WithLevel.
func NewZerologTelemetry(logger zerolog.Logger) *ZerologTelemetry {
	return &ZerologTelemetry{logger: logger, level: zerolog.DebugLevel}
}

// WithLevel returns a copy logging at level.
func (t *ZerologTelemetry) WithLevel(level zerolog.Level) *ZerologTelemetry {
	cp := *t
	cp.level = level
	return &cp
}

// Record implements Telemetry.
func (t *ZerologTelemetry) Record(_ context.Context, event string, payload map[string]any) {
	t.logger.WithLevel(t.level).Str("event", event).Fields(payload).Msg("datagrid event")
}
