// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and integrates with the Fiber web framework.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID set by the rayid middleware from a Fiber context and
// attaches it to the log entry, so every log line of a reconciliation request can be correlated.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json or console
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Reconciliation started", zap.String("kind", "referrer"))
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Reconciliation failed", zap.Error(err))
package logger
