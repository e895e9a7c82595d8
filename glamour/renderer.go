// Package glamour renders Markdown reports for the terminal using glamour.
package glamour

import (
	"fmt"
	"sync"

	glamourlib "github.com/charmbracelet/glamour"
	"github.com/fwojciec/evalconsole"
)

// DefaultWidth is the word-wrap width used until SetWidth is called.
const DefaultWidth = 80

// Compile-time interface verification.
var _ evalconsole.Renderer = (*Renderer)(nil)

// Renderer renders Markdown with ANSI styling. The underlying term renderer
// is rebuilt lazily when the width changes. It is safe for concurrent use.
type Renderer struct {
	style string

	mu    sync.Mutex
	width int
	term  *glamourlib.TermRenderer
}

// NewRenderer creates a Renderer using a glamour standard style such as
// "dark", "light" or "notty".
func NewRenderer(style string) *Renderer {
	if style == "" {
		style = "dark"
	}
	return &Renderer{style: style, width: DefaultWidth}
}

// SetWidth sets the word-wrap width. Values below 1 are ignored.
func (r *Renderer) SetWidth(width int) {
	if width < 1 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if width != r.width {
		r.width = width
		r.term = nil
	}
}

// Render implements evalconsole.Renderer.
func (r *Renderer) Render(markdown string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.term == nil {
		term, err := glamourlib.NewTermRenderer(
			glamourlib.WithStandardStyle(r.style),
			glamourlib.WithWordWrap(r.width),
		)
		if err != nil {
			return "", fmt.Errorf("create markdown renderer: %w", err)
		}
		r.term = term
	}
	return r.term.Render(markdown)
}
