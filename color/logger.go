// Package color provides terminal logging and notifications using fatih/color.
package color

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	colorlib "github.com/fatih/color"
	"github.com/fwojciec/evalconsole"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Compile-time interface verification.
var _ evalconsole.Logger = (*Logger)(nil)

// Logger writes leveled messages with [HH:MM:SS] timestamps and key=value
// pairs. Color output is enabled for os.Stdout and os.Stderr terminals.
type Logger struct {
	writer      io.Writer
	level       string
	mu          sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewLogger creates a Logger. A nil writer discards messages. An empty or
// invalid level defaults to "info".
func NewLogger(w io.Writer, level string) *Logger {
	return &Logger{
		writer:      w,
		level:       NormalizeLevel(level),
		colorOutput: isTerminal(w),
		now:         time.Now,
	}
}

// isTerminal reports whether w is a color-capable standard stream.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// Honors NO_COLOR and non-TTY output.
		return !colorlib.NoColor
	}
	return false
}

// NormalizeLevel lowercases level and returns "info" for unknown levels.
func NormalizeLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	switch normalized {
	case "trace", "debug", "info", "warn", "error":
		return normalized
	default:
		return "info"
	}
}

// ValidLevel reports whether level names a known log level.
func ValidLevel(level string) bool {
	return NormalizeLevel(level) == strings.ToLower(strings.TrimSpace(level))
}

func levelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Trace logs a trace-level message.
func (l *Logger) Trace(msg string, kv ...any) { l.log("TRACE", msg, kv) }

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, kv ...any) { l.log("DEBUG", msg, kv) }

// Info logs an info-level message.
func (l *Logger) Info(msg string, kv ...any) { l.log("INFO", msg, kv) }

// Warn logs a warning-level message.
func (l *Logger) Warn(msg string, kv ...any) { l.log("WARN", msg, kv) }

// Error logs an error-level message.
func (l *Logger) Error(msg string, kv ...any) { l.log("ERROR", msg, kv) }

func (l *Logger) log(level, msg string, kv []any) {
	if l.writer == nil {
		return
	}
	if levelToInt(strings.ToLower(level)) < levelToInt(l.level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lvl := level
	if l.colorOutput {
		lvl = levelColor(level).Sprint(level)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] [%s] %s", l.now().Format("15:04:05"), lvl, msg)
	writeKV(&sb, kv)
	sb.WriteByte('\n')
	_, _ = io.WriteString(l.writer, sb.String())
}

func levelColor(level string) *colorlib.Color {
	switch level {
	case "TRACE":
		return colorlib.New(colorlib.FgHiBlack)
	case "DEBUG":
		return colorlib.New(colorlib.FgCyan)
	case "WARN":
		return colorlib.New(colorlib.FgYellow)
	case "ERROR":
		return colorlib.New(colorlib.FgRed)
	default:
		return colorlib.New(colorlib.FgBlue)
	}
}

// writeKV appends " key=value" pairs. A trailing key without a value is
// written as "key=(missing)".
func writeKV(sb *strings.Builder, kv []any) {
	for i := 0; i < len(kv); i += 2 {
		key := fmt.Sprint(kv[i])
		if i+1 >= len(kv) {
			fmt.Fprintf(sb, " %s=(missing)", key)
			break
		}
		val := fmt.Sprint(kv[i+1])
		if strings.ContainsAny(val, " \t\n\"") {
			val = fmt.Sprintf("%q", val)
		}
		fmt.Fprintf(sb, " %s=%s", key, val)
	}
}
