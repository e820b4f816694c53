package monitoring

import (
	"go.uber.org/zap"
)

// Severity levels forwarded to the collector
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Reporter receives non-benign failures. Implementations must be
// fire-and-forget: callers never wait on the result.
type Reporter interface {
	CaptureException(err error, path string, metadata map[string]string, severity string)
}

// ZapReporter forwards captured failures to a zap logger. It stands in for an
// external error-tracking collector and keeps the same call shape.
type ZapReporter struct {
	log *zap.Logger
}

// NewZapReporter creates a Reporter backed by the given zap logger.
func NewZapReporter(log *zap.Logger) *ZapReporter {
	return &ZapReporter{log: log}
}

// CaptureException records the failure with its request context.
func (r *ZapReporter) CaptureException(err error, path string, metadata map[string]string, severity string) {
	fields := []zap.Field{
		zap.Error(err),
		zap.String("path", path),
		zap.String("severity", severity),
	}
	for k, v := range metadata {
		fields = append(fields, zap.String(k, v))
	}
	r.log.Error("captured exception", fields...)
}

// NopReporter discards everything, used in tests and when monitoring is
// not configured.
type NopReporter struct{}

// CaptureException implements Reporter.
func (NopReporter) CaptureException(error, string, map[string]string, string) {}
