package color

import "time"

// SetNow replaces the clock used for timestamps.
func (l *Logger) SetNow(now func() time.Time) { l.now = now }

// SetNow replaces the clock used for durations.
func (i *Indicator) SetNow(now func() time.Time) { i.now = now }
