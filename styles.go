package evalconsole

// Color is a hex color in "#RRGGBB" format. Empty means terminal default.
type Color string

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for the visual elements of the console.
type Styles struct {
	Info      ColorPair // Info notifications
	Success   ColorPair // Success notifications, "copied" button state
	Danger    ColorPair // Error notifications and inline error blocks
	Warning   ColorPair // Warning notifications
	ActiveTab ColorPair // Selected view in the tab bar
	Tab       ColorPair // Unselected views
	Focused   ColorPair // Border of the focused input
	Label     ColorPair // Input labels and panel headers
	Link      ColorPair // Backend artifact links
}

// Severity returns the color pair for a notification severity.
func (s Styles) Severity(sev Severity) ColorPair {
	switch sev {
	case SeveritySuccess:
		return s.Success
	case SeverityDanger:
		return s.Danger
	case SeverityWarning:
		return s.Warning
	default:
		return s.Info
	}
}

// Palette is a set of semantic colors shared by UI and syntax highlighting.
type Palette struct {
	Background Color
	Foreground Color

	// Syntax highlighting colors
	Keyword     Color
	String      Color
	Number      Color
	Comment     Color
	Operator    Color
	Function    Color
	Type        Color
	Constant    Color
	Punctuation Color

	// UI colors
	UIBackground Color
	UIForeground Color
	UIAccent     Color
}

// Theme provides styles for rendering the console.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
	Palette() Palette
	// MarkdownStyle names the terminal Markdown style matching the theme.
	MarkdownStyle() string
}
