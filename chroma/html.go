package chroma

import (
	"errors"
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.Highlighter = (*HTMLHighlighter)(nil)

// HTMLHighlighter renders code blocks as HTML with inline styles.
type HTMLHighlighter struct {
	style     *chromalib.Style
	formatter *html.Formatter
}

// NewHTMLHighlighter creates a highlighter using the given chroma style.
// Use ChromaStyle to build one from an evalconsole.Palette.
func NewHTMLHighlighter(style *chromalib.Style) (*HTMLHighlighter, error) {
	if style == nil {
		return nil, errors.New("chroma: style cannot be nil")
	}
	return &HTMLHighlighter{
		style:     style,
		formatter: html.New(html.WithClasses(false), html.TabWidth(4)),
	}, nil
}

// Highlight returns source as a highlighted <pre> block. Unknown or empty
// languages fall back to plain text.
func (h *HTMLHighlighter) Highlight(language, source string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chromalib.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := h.formatter.Format(&sb, h.style, iterator); err != nil {
		return "", err
	}
	return sb.String(), nil
}
