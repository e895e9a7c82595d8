package color

import (
	"fmt"
	"io"
	"sync"
	"time"

	colorlib "github.com/fatih/color"
	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var (
	_ evalconsole.Notifier  = (*Notifier)(nil)
	_ evalconsole.Indicator = (*Indicator)(nil)
)

// Notifier prints notifications as single colored lines. It is the
// command-line counterpart of the TUI toast stack.
type Notifier struct {
	writer      io.Writer
	mu          sync.Mutex
	colorOutput bool
}

// NewNotifier creates a Notifier writing to w. A nil writer discards.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{writer: w, colorOutput: isTerminal(w)}
}

// Notify implements evalconsole.Notifier.
func (n *Notifier) Notify(message string, severity evalconsole.Severity) {
	if n.writer == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	icon := severityIcon(severity)
	if n.colorOutput {
		icon = severityColor(severity).Sprint(icon)
	}
	_, _ = fmt.Fprintf(n.writer, "%s %s\n", icon, message)
}

func severityIcon(s evalconsole.Severity) string {
	switch s {
	case evalconsole.SeveritySuccess:
		return "✓"
	case evalconsole.SeverityDanger:
		return "✗"
	case evalconsole.SeverityWarning:
		return "!"
	default:
		return "i"
	}
}

func severityColor(s evalconsole.Severity) *colorlib.Color {
	switch s {
	case evalconsole.SeveritySuccess:
		return colorlib.New(colorlib.FgGreen)
	case evalconsole.SeverityDanger:
		return colorlib.New(colorlib.FgRed, colorlib.Bold)
	case evalconsole.SeverityWarning:
		return colorlib.New(colorlib.FgYellow)
	default:
		return colorlib.New(colorlib.FgCyan)
	}
}

// Indicator prints a line when a request starts and its duration when it
// ends.
type Indicator struct {
	writer      io.Writer
	colorOutput bool
	now         func() time.Time
}

// NewIndicator creates an Indicator writing to w. A nil writer discards.
func NewIndicator(w io.Writer) *Indicator {
	return &Indicator{writer: w, colorOutput: isTerminal(w), now: time.Now}
}

// Start implements evalconsole.Indicator.
func (i *Indicator) Start(label string) func() {
	if i.writer == nil {
		return func() {}
	}
	start := i.now()
	line := label + "..."
	if i.colorOutput {
		line = colorlib.New(colorlib.Faint).Sprint(line)
	}
	_, _ = fmt.Fprintln(i.writer, line)

	var once sync.Once
	return func() {
		once.Do(func() {
			elapsed := i.now().Sub(start).Round(100 * time.Millisecond)
			msg := fmt.Sprintf("done in %s", elapsed)
			if i.colorOutput {
				msg = colorlib.New(colorlib.Faint).Sprint(msg)
			}
			_, _ = fmt.Fprintln(i.writer, msg)
		})
	}
}
