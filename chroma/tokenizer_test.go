package chroma_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/evalconsole"
	"github.com/fwojciec/evalconsole/chroma"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPalette = evalconsole.Palette{
	Keyword:     "#ff00ff",
	String:      "#00ff00",
	Number:      "#ff8800",
	Function:    "#0000ff",
	Constant:    "#ff0000",
	Punctuation: "#aaaaaa",
}

func newTokenizer(t *testing.T) *chroma.Tokenizer {
	t.Helper()
	tok, err := chroma.NewTokenizer(chroma.StyleFromPalette(testPalette))
	require.NoError(t, err)
	return tok
}

func TestNewTokenizer_RequiresStyleFunc(t *testing.T) {
	t.Parallel()

	_, err := chroma.NewTokenizer(nil)

	assert.Error(t, err)
}

func TestTokenizer_Tokenize(t *testing.T) {
	t.Parallel()

	t.Run("tokenizes JSON", func(t *testing.T) {
		t.Parallel()

		tokens := newTokenizer(t).Tokenize("json", `{"id": 1}`)

		require.NotEmpty(t, tokens)
		var sb strings.Builder
		for _, tok := range tokens {
			sb.WriteString(tok.Text)
		}
		assert.Equal(t, `{"id": 1}`, sb.String())

		var numberStyle evalconsole.Style
		for _, tok := range tokens {
			if tok.Text == "1" {
				numberStyle = tok.Style
			}
		}
		assert.Equal(t, "#ff8800", numberStyle.Foreground)
	})

	t.Run("returns nil for unsupported language", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, newTokenizer(t).Tokenize("nonexistent-language-xyz", "some code"))
	})

	t.Run("handles empty source", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newTokenizer(t).Tokenize("json", ""))
	})
}

func TestTokenizer_TokenizeLines(t *testing.T) {
	t.Parallel()

	t.Run("splits multi-line JSON", func(t *testing.T) {
		t.Parallel()

		lines := newTokenizer(t).TokenizeLines("json", "{\n  \"a\": 1\n}")

		require.Len(t, lines, 3)
		var second strings.Builder
		for _, tok := range lines[1] {
			second.WriteString(tok.Text)
		}
		assert.Equal(t, `  "a": 1`, second.String())
	})

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, newTokenizer(t).TokenizeLines("json", ""))
	})
}

func TestTokenizer_TokenizeLinesKeepsLineCount(t *testing.T) {
	t.Parallel()

	tok := newTokenizer(t)

	tests := []struct {
		name   string
		source string
		want   int
	}{
		{"single line", `[1, 2]`, 1},
		{"blank line in the middle", "[\n\n  1\n]", 4},
		{"trailing newline", "[\n  1\n]\n", 4},
		{"object", "{\n  \"a\": \"x\"\n}", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lines := tok.TokenizeLines("json", tt.source)

			require.Len(t, lines, tt.want)
			var joined []string
			for _, line := range lines {
				var sb strings.Builder
				for _, tk := range line {
					sb.WriteString(tk.Text)
				}
				joined = append(joined, sb.String())
			}
			assert.Equal(t, tt.source, strings.Join(joined, "\n"))
		})
	}
}

func TestTokenizer_UnknownLanguageIsCached(t *testing.T) {
	t.Parallel()

	tok := newTokenizer(t)

	assert.Nil(t, tok.TokenizeLines("nonexistent-language-xyz", "a\nb"))
	assert.Nil(t, tok.TokenizeLines("nonexistent-language-xyz", "a\nb"))
	assert.NotNil(t, tok.TokenizeLines("json", "[]"))
}
