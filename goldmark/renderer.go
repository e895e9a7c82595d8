// Package goldmark renders Markdown reports to HTML using goldmark.
package goldmark

import (
	"bytes"
	"html"

	"github.com/fwojciec/evalconsole"
	goldmarklib "github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Compile-time interface verification.
var _ evalconsole.Renderer = (*Renderer)(nil)

// Renderer converts Markdown to HTML. Fenced code blocks are passed to a
// Highlighter; tables, strikethrough and autolinks are enabled.
type Renderer struct {
	md goldmarklib.Markdown
}

// NewRenderer creates a Renderer. A nil highlighter leaves code blocks to
// goldmark's default escaping.
func NewRenderer(h evalconsole.Highlighter) *Renderer {
	opts := []goldmarklib.Option{
		goldmarklib.WithExtensions(extension.GFM),
	}
	if h != nil {
		opts = append(opts, goldmarklib.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{highlighter: h}, 200)),
		))
	}
	return &Renderer{md: goldmarklib.New(opts...)}
}

// Render implements evalconsole.Renderer.
func (r *Renderer) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// codeBlockRenderer overrides goldmark's fenced code block rendering.
type codeBlockRenderer struct {
	highlighter evalconsole.Highlighter
}

func (c *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, c.renderFencedCodeBlock)
}

func (c *codeBlockRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)

	var language string
	if lang := n.Language(source); lang != nil {
		language = string(lang)
	}

	var code bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(source))
	}

	out, err := c.highlighter.Highlight(language, code.String())
	if err != nil {
		// Fall back to escaped plain code.
		_, _ = w.WriteString("<pre><code>")
		_, _ = w.WriteString(html.EscapeString(code.String()))
		_, _ = w.WriteString("</code></pre>\n")
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString(out)
	return ast.WalkSkipChildren, nil
}
