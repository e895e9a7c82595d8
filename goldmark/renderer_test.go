package goldmark_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/chroma"
	"github.com/fwojciec/evalconsole/goldmark"
	"github.com/fwojciec/evalconsole/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type highlighterFunc func(language, source string) (string, error)

func (f highlighterFunc) Highlight(language, source string) (string, error) {
	return f(language, source)
}

var _ evalconsole.Highlighter = highlighterFunc(nil)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("renders headings and tables", func(t *testing.T) {
		t.Parallel()

		r := goldmark.NewRenderer(nil)

		out, err := r.Render("# Report\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")

		require.NoError(t, err)
		assert.Contains(t, out, "<h1>Report</h1>")
		assert.Contains(t, out, "<table>")
		assert.Contains(t, out, "<td>1</td>")
	})

	t.Run("passes fenced code to the highlighter", func(t *testing.T) {
		t.Parallel()

		var gotLang, gotSource string
		r := goldmark.NewRenderer(highlighterFunc(func(language, source string) (string, error) {
			gotLang, gotSource = language, source
			return "<pre class=\"hl\">highlighted</pre>", nil
		}))

		out, err := r.Render("text\n\n```json\n{\"a\": 1}\n```\n")

		require.NoError(t, err)
		assert.Equal(t, "json", gotLang)
		assert.Equal(t, "{\"a\": 1}\n", gotSource)
		assert.Contains(t, out, "<pre class=\"hl\">highlighted</pre>")
	})

	t.Run("escapes code when highlighting fails", func(t *testing.T) {
		t.Parallel()

		r := goldmark.NewRenderer(highlighterFunc(func(string, string) (string, error) {
			return "", errors.New("boom")
		}))

		out, err := r.Render("```\na < b\n```\n")

		require.NoError(t, err)
		assert.Contains(t, out, "<pre><code>a &lt; b\n</code></pre>")
	})

	t.Run("with chroma highlighter", func(t *testing.T) {
		t.Parallel()

		style, err := chroma.ChromaStyle("dark", lipgloss.DarkTheme().Palette())
		require.NoError(t, err)
		h, err := chroma.NewHTMLHighlighter(style)
		require.NoError(t, err)
		r := goldmark.NewRenderer(h)

		out, err := r.Render("## Raw evaluation data (JSON)\n\n```json\n{\"score\": 4}\n```")

		require.NoError(t, err)
		assert.Contains(t, out, "<h2>Raw evaluation data (JSON)</h2>")
		assert.Contains(t, out, "style=")
		assert.Contains(t, out, "score")
	})
}
