// Package logging constructs the process-wide zap logger. Per spec.md §9
// design notes, the logger is the only process-wide state; everything else
// is request-scoped and constructed by the facade per call, grounded on
// SoySergo-location_microservice/internal/pkg/logger's constructor-injection
// style over a package-level singleton.
package logging

import "go.uber.org/zap"

// New builds a production zap logger. Callers hold the *zap.Logger and
// pass it down explicitly (facade.New takes it as a parameter); there is no
// package-level global.
func New() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// NewDevelopment builds a human-readable logger, useful for tests.
func NewDevelopment() (*zap.Logger, error) {
	return zap.NewDevelopment()
}

// WithRequest returns a logger annotated with a request id, attached once at
// facade entry per request (spec.md §9).
func WithRequest(logger *zap.Logger, requestID string) *zap.Logger {
	return logger.With(zap.String("request_id", requestID))
}
