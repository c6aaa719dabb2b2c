package logger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ANSI escape sequences for console level tags.
const (
	colorReset   = "\033[0m"
	colorRed     = "\033[31m"
	colorGreen   = "\033[32m"
	colorYellow  = "\033[33m"
	colorBlue    = "\033[34m"
	colorMagenta = "\033[35m"
	colorCyan    = "\033[36m"
)

// consoleTags maps zerolog level names to the compact bracketed tags the
// console writer prints, with their color.
var consoleTags = map[string]struct {
	tag   string
	color string
}{
	"debug": {"[DBG]", colorCyan},
	"info":  {"[INF]", colorGreen},
	"warn":  {"[WRN]", colorYellow},
	"error": {"[ERR]", colorRed},
	"fatal": {"[FTL]", colorMagenta},
}

// newConsoleLogger builds the human-readable writer used in development.
// JSON stays the default for aggregated environments.
func newConsoleLogger(cfg *Config, serviceName string) zerolog.Logger {
	w := zerolog.ConsoleWriter{
		Out:              outputWriter(cfg.Output),
		TimeFormat:       "15:04:05",
		NoColor:          cfg.NoColor,
		FormatLevel:      formatLevel(cfg.NoColor, serviceTag(serviceName)),
		FormatMessage:    formatValue,
		FormatFieldName:  func(i interface{}) string { return fmt.Sprintf("%s:", i) },
		FormatFieldValue: formatValue,
	}
	return zerolog.New(w).With().Timestamp().Logger()
}

// serviceTag derives the three-letter prefix printed before the level for
// named services. The library's own default name stays untagged.
func serviceTag(serviceName string) string {
	if serviceName == "" || serviceName == "authkit" || len(serviceName) < 3 {
		return ""
	}
	return strings.ToUpper(serviceName[:3])
}

// formatLevel renders "[SVC][INF]", coloring each bracket unless disabled.
// Levels without a known tag print uppercased in plain brackets.
func formatLevel(noColor bool, tag string) zerolog.Formatter {
	return func(i interface{}) string {
		level := strings.ToLower(fmt.Sprintf("%s", i))
		entry, ok := consoleTags[level]
		if !ok {
			entry.tag = fmt.Sprintf("[%s]", strings.ToUpper(level))
		}

		out := entry.tag
		if !noColor && entry.color != "" {
			out = entry.color + out + colorReset
		}
		if tag == "" {
			return out
		}
		if noColor {
			return fmt.Sprintf("[%s]%s", tag, out)
		}
		return fmt.Sprintf("%s[%s]%s%s", colorBlue, tag, colorReset, out)
	}
}

func formatValue(i interface{}) string {
	if i == nil {
		return ""
	}
	return fmt.Sprintf("%s", i)
}
