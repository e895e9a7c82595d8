package mock

import (
	"sync"

	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.Logger = (*Logger)(nil)

// Entry is a log line recorded by Logger.
type Entry struct {
	Level string
	Msg   string
	KV    []any
}

// Logger records log entries. It is safe for concurrent use.
type Logger struct {
	mu      sync.Mutex
	Entries []Entry
}

func (l *Logger) Debug(msg string, kv ...any) { l.record("debug", msg, kv) }
func (l *Logger) Info(msg string, kv ...any)  { l.record("info", msg, kv) }
func (l *Logger) Warn(msg string, kv ...any)  { l.record("warn", msg, kv) }
func (l *Logger) Error(msg string, kv ...any) { l.record("error", msg, kv) }

func (l *Logger) record(level, msg string, kv []any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, Entry{Level: level, Msg: msg, KV: kv})
}

// Levels returns the level of every recorded entry in order.
func (l *Logger) Levels() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	levels := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		levels[i] = e.Level
	}
	return levels
}
