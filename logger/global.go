package logger

import (
	"context"

	"github.com/rs/zerolog"
)

// The package-level functions write through one process-wide logger so
// library code can log without threading a *Logger everywhere.

var globalLogger *Logger

// SetGlobalLogger replaces the process-wide logger.
func SetGlobalLogger(l *Logger) { globalLogger = l }

// GetGlobalLogger returns the process-wide logger, lazily creating a
// console default when Init has not run yet.
func GetGlobalLogger() *Logger {
	if globalLogger == nil {
		globalLogger = NewDefault("authkit")
	}
	return globalLogger
}

// GetLoggerZ returns the zerolog.Logger wrapped by the global logger.
func GetLoggerZ() zerolog.Logger {
	return GetGlobalLogger().GetLogger()
}

// Debug, Info, Warn, Error, and Fatal log through the global logger at
// their respective levels; Fatal exits the process afterwards.

func Debug(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Debug(msg, fields...) }
func Info(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Info(msg, fields...) }
func Warn(msg string, fields ...map[string]interface{})  { GetGlobalLogger().Warn(msg, fields...) }
func Error(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Error(msg, fields...) }
func Fatal(msg string, fields ...map[string]interface{}) { GetGlobalLogger().Fatal(msg, fields...) }

// WithContext derives a context-enriched logger from the global one.
func WithContext(ctx context.Context) *Logger {
	return GetGlobalLogger().WithContext(ctx)
}

// WithComponent derives a component-tagged logger from the global one.
func WithComponent(name string) *Logger {
	return GetGlobalLogger().WithComponent(name)
}
