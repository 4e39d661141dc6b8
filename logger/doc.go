// Package logger provides structured JSON logging for recipebench on top
// of Uber's Zap.
//
// The wrapper keeps the call sites uniform across the codebase:
//
//	log := logger.NewLoggerClient(logger.NewConfig())
//	log.Info("collection ready", nil, map[string]interface{}{
//	    "collection": "distill_hybrid_v2",
//	    "points":     120,
//	})
//
// Every entry carries the process id and service name. The level is read
// from ZAP_LOGGER_LEVEL (debug, info, warning, error; default info).
//
// An Fx module (FXModule) provides the logger to the dependency graph and
// registers a flush-on-shutdown hook.
package logger
