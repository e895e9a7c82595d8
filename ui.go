package evalconsole

// Severity is the style of a user-facing notification.
type Severity string

// Notification severities.
const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityDanger  Severity = "danger"
	SeverityWarning Severity = "warning"
)

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Notify(message string, severity Severity)
}

// Indicator shows a loading state for the duration of a network round trip.
type Indicator interface {
	// Start shows the indicator and returns a function that hides it.
	// The returned function is safe to call more than once.
	Start(label string) (stop func())
}

// Renderer converts Markdown to a displayable form.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Highlighter syntax-highlights a code block.
type Highlighter interface {
	// Highlight returns source highlighted for the given language.
	// Unknown languages are highlighted as plain text.
	Highlight(language, source string) (string, error)
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// ReportWriter saves a downloaded attachment.
type ReportWriter interface {
	// Write stores the attachment and returns where it was written.
	Write(a Attachment) (string, error)
}

// LinkOpener opens backend-provided artifact links.
type LinkOpener interface {
	Open(url string) error
}

// Prompter asks the user for empty fields.
type Prompter interface {
	// Prompt returns fields with empty values filled in. Non-empty values
	// are returned unchanged.
	Prompt(fields []Field) ([]Field, error)
}

// Logger writes leveled diagnostic messages. kv holds alternating keys and values.
type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Error(msg string, kv ...any)
}
