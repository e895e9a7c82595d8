package mock

import (
	"sync"

	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var (
	_ evalconsole.Clipboard    = (*Clipboard)(nil)
	_ evalconsole.Renderer     = (*Renderer)(nil)
	_ evalconsole.ReportWriter = (*ReportWriter)(nil)
	_ evalconsole.LinkOpener   = (*LinkOpener)(nil)
	_ evalconsole.Prompter     = (*Prompter)(nil)
	_ evalconsole.Notifier     = (*Notifier)(nil)
	_ evalconsole.Indicator    = (*Indicator)(nil)
)

// Clipboard is a mock implementation of evalconsole.Clipboard.
type Clipboard struct {
	CopyFn func(content string) error
}

func (c *Clipboard) Copy(content string) error {
	return c.CopyFn(content)
}

// Renderer is a mock implementation of evalconsole.Renderer.
type Renderer struct {
	RenderFn func(markdown string) (string, error)
}

func (r *Renderer) Render(markdown string) (string, error) {
	return r.RenderFn(markdown)
}

// ReportWriter is a mock implementation of evalconsole.ReportWriter.
type ReportWriter struct {
	WriteFn func(a evalconsole.Attachment) (string, error)
}

func (w *ReportWriter) Write(a evalconsole.Attachment) (string, error) {
	return w.WriteFn(a)
}

// LinkOpener is a mock implementation of evalconsole.LinkOpener.
type LinkOpener struct {
	OpenFn func(url string) error
}

func (o *LinkOpener) Open(url string) error {
	return o.OpenFn(url)
}

// Prompter is a mock implementation of evalconsole.Prompter.
type Prompter struct {
	PromptFn func(fields []evalconsole.Field) ([]evalconsole.Field, error)
}

func (p *Prompter) Prompt(fields []evalconsole.Field) ([]evalconsole.Field, error) {
	return p.PromptFn(fields)
}

// Notification is a message recorded by Notifier.
type Notification struct {
	Message  string
	Severity evalconsole.Severity
}

// Notifier records notifications. It is safe for concurrent use.
type Notifier struct {
	mu            sync.Mutex
	Notifications []Notification
}

func (n *Notifier) Notify(message string, severity evalconsole.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notifications = append(n.Notifications, Notification{Message: message, Severity: severity})
}

// Last returns the most recent notification, or the zero value.
func (n *Notifier) Last() Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.Notifications) == 0 {
		return Notification{}
	}
	return n.Notifications[len(n.Notifications)-1]
}

// Indicator counts how often it was started and stopped.
type Indicator struct {
	mu      sync.Mutex
	Started int
	Stopped int
	Labels  []string
}

func (i *Indicator) Start(label string) func() {
	i.mu.Lock()
	i.Started++
	i.Labels = append(i.Labels, label)
	i.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			i.mu.Lock()
			i.Stopped++
			i.mu.Unlock()
		})
	}
}

// Active reports whether an indicator is still shown.
func (i *Indicator) Active() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.Started != i.Stopped
}
