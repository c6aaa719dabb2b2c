package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats. JSON is the default; console and its pretty alias switch
// to the human-readable writer.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
	FormatPretty  = "pretty"
)

func isConsoleFormat(format string) bool {
	f := strings.ToLower(format)
	return f == FormatConsole || f == FormatPretty
}

// Logger wraps a zerolog.Logger bound to a service name.
type Logger struct {
	logger  zerolog.Logger
	service string
}

// derive keeps the service binding while swapping the wrapped zerolog.Logger.
func (l *Logger) derive(zl zerolog.Logger) *Logger {
	return &Logger{logger: zl, service: l.service}
}

// Init installs the global logger from config and seeds the named registry
// with the authkit component loggers.
func Init(cfg *Config) {
	cfg.ApplyDefaults()
	globalLogger = New(cfg, cfg.ServiceName)

	level, _ := zerolog.ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	if isConsoleFormat(cfg.Format) {
		log.Logger = newConsoleLogger(cfg, cfg.ServiceName)
	}

	RegisterDefaults(ComponentToken, ComponentPassword, ComponentConfig, ComponentValidation)
}

// New builds a logger for serviceName. An unparseable level degrades to
// info instead of failing construction.
func New(cfg *Config, serviceName string) *Logger {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	var zl zerolog.Logger
	if isConsoleFormat(cfg.Format) {
		// The console writer stamps entries itself.
		zl = newConsoleLogger(cfg, serviceName)
	} else {
		zl = zerolog.New(outputWriter(cfg.Output))
		if cfg.Timestamp {
			zl = zl.With().Timestamp().Logger()
		}
	}
	if cfg.Caller {
		zl = zl.With().Caller().Logger()
	}

	return &Logger{logger: zl, service: serviceName}
}

// NewDefault builds a console logger at info level.
func NewDefault(serviceName string) *Logger {
	cfg := Config{Format: FormatConsole}
	cfg.ApplyDefaults()
	return New(&cfg, serviceName)
}

// NewFromEnv builds a logger from the AUTHKIT_LOG_* environment variables,
// falling back to the NewDefault values for any that are unset.
func NewFromEnv(serviceName string) *Logger {
	cfg := Config{
		Level:     envOr("AUTHKIT_LOG_LEVEL", "info"),
		Format:    envOr("AUTHKIT_LOG_FORMAT", FormatConsole),
		Output:    envOr("AUTHKIT_LOG_OUTPUT", "stdout"),
		NoColor:   envOr("AUTHKIT_LOG_NO_COLOR", "false") == "true",
		Timestamp: envOr("AUTHKIT_LOG_TIMESTAMP", "true") == "true",
	}
	return New(&cfg, serviceName)
}

// contextKey scopes the values WithContext reads so unrelated string keys
// cannot collide with them.
type contextKey string

// contextFields maps context keys to the log field each one feeds.
var contextFields = [...]struct {
	key   contextKey
	field string
}{
	{"trace_id", FieldTraceID},
	{"span_id", FieldSpanID},
	{"request_id", FieldRequestID},
	{"user_id", FieldUserID},
	{"correlation_id", FieldCorrelationID},
}

// WithContext copies any correlation identifiers present in ctx onto the
// returned logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	zc := l.logger.With()
	for _, cf := range contextFields {
		if v := ctx.Value(cf.key); v != nil {
			zc = zc.Str(cf.field, fmt.Sprint(v))
		}
	}
	return l.derive(zc.Logger())
}

// WithComponent tags every entry with a component name.
func (l *Logger) WithComponent(name string) *Logger {
	return l.derive(l.logger.With().Str(FieldComponent, name).Logger())
}

// WithFields attaches fields to every entry the returned logger writes.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	zc := l.logger.With()
	for k, v := range fields {
		zc = zc.Interface(k, v)
	}
	return l.derive(zc.Logger())
}

// WithError attaches err under the standard error field.
func (l *Logger) WithError(err error) *Logger {
	return l.derive(l.logger.With().Err(err).Logger())
}

// GetLogger exposes the wrapped zerolog.Logger for direct use.
func (l *Logger) GetLogger() zerolog.Logger {
	return l.logger
}

// Debug logs at debug level with optional field maps.
func (l *Logger) Debug(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Debug(), msg, fields)
}

// Info logs at info level with optional field maps.
func (l *Logger) Info(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Info(), msg, fields)
}

// Warn logs at warn level with optional field maps.
func (l *Logger) Warn(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Warn(), msg, fields)
}

// Error logs at error level with optional field maps.
func (l *Logger) Error(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Error(), msg, fields)
}

// Fatal logs at fatal level and exits the process.
func (l *Logger) Fatal(msg string, fields ...map[string]interface{}) {
	emit(l.logger.Fatal(), msg, fields)
}

// emit applies the field maps, then writes msg at the event's level.
func emit(event *zerolog.Event, msg string, fields []map[string]interface{}) {
	for _, fm := range fields {
		for k, v := range fm {
			event.Interface(k, v)
		}
	}
	event.Msg(msg)
}

// outputWriter maps an output name to its stream; anything but stderr
// means stdout.
func outputWriter(output string) *os.File {
	if strings.EqualFold(output, "stderr") {
		return os.Stderr
	}
	return os.Stdout
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
