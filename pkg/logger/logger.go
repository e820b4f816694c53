package logger

import (
	"go.uber.org/zap"
)

// Logger is the logging interface used across the application
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ZapLogger implements Logger on top of a zap SugaredLogger
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger creates a production Logger
func NewLogger() Logger {
	z, err := zap.NewProduction(zap.AddCallerSkip(1))
	if err != nil {
		z = zap.NewNop()
	}
	return &ZapLogger{sugar: z.Sugar()}
}

// NewFromZap wraps an existing zap logger, useful for tests with zaptest
func NewFromZap(z *zap.Logger) Logger {
	return &ZapLogger{sugar: z.Sugar()}
}

// Info logs an informational message
func (l *ZapLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, keysAndValues...)
}

// Error logs an error message
func (l *ZapLogger) Error(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, keysAndValues...)
}

// Debug logs a debug message
func (l *ZapLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

// Warn logs a warning message
func (l *ZapLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.sugar.Warnw(msg, keysAndValues...)
}
