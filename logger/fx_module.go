package logger

import (
	"context"

	"go.uber.org/fx"
)

// FXModule wires the logger into an Fx application.
//
// It provides Config (from the environment) and *Logger, and registers a
// shutdown hook that flushes buffered log entries.
var FXModule = fx.Module("logger",
	fx.Provide(
		NewConfig,
		NewLoggerClient,
	),
	fx.Invoke(RegisterLoggerLifecycle),
)

// RegisterLoggerLifecycle flushes the Zap logger on application shutdown.
func RegisterLoggerLifecycle(lc fx.Lifecycle, client *Logger) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// Sync can fail on stderr; nothing actionable remains at this point.
			_ = client.Zap.Sync()
			return nil
		},
	})
}
