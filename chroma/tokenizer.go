// Package chroma highlights generated case JSON and report code blocks using
// the chroma library.
package chroma

import (
	"errors"
	"strings"
	"sync"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var _ evalconsole.Tokenizer = (*Tokenizer)(nil)

// StyleFunc maps chroma token types to console styles.
type StyleFunc func(chromalib.TokenType) evalconsole.Style

// Tokenizer turns source into styled tokens. Lexers are resolved once per
// language and reused. It is safe for concurrent use.
type Tokenizer struct {
	styleFunc StyleFunc

	mu     sync.Mutex
	lexers map[string]chromalib.Lexer
}

// NewTokenizer creates a Tokenizer. Use StyleFromPalette to build styleFunc
// from a theme palette.
func NewTokenizer(styleFunc StyleFunc) (*Tokenizer, error) {
	if styleFunc == nil {
		return nil, errors.New("chroma: styleFunc cannot be nil")
	}
	return &Tokenizer{styleFunc: styleFunc, lexers: make(map[string]chromalib.Lexer)}, nil
}

// Tokenize returns the tokens of source. It returns nil when the language is
// unknown and an empty slice for empty source.
func (t *Tokenizer) Tokenize(language, source string) []evalconsole.Token {
	if source == "" {
		return []evalconsole.Token{}
	}
	tokens, ok := t.tokenize(language, source)
	if !ok {
		return nil
	}
	return tokens
}

// TokenizeLines lexes source as a whole, so strings and comments spanning
// lines keep their style, and returns exactly one token slice per line of
// source. It returns nil when the language is unknown.
func (t *Tokenizer) TokenizeLines(language, source string) [][]evalconsole.Token {
	if source == "" {
		return [][]evalconsole.Token{}
	}
	tokens, ok := t.tokenize(language, source)
	if !ok {
		return nil
	}
	return splitLines(tokens, strings.Count(source, "\n")+1)
}

func (t *Tokenizer) tokenize(language, source string) ([]evalconsole.Token, bool) {
	lexer := t.lexer(language)
	if lexer == nil {
		return nil, false
	}
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, false
	}

	var tokens []evalconsole.Token
	for tok := iterator(); tok != chromalib.EOF; tok = iterator() {
		tokens = append(tokens, evalconsole.Token{Text: tok.Value, Style: t.styleFunc(tok.Type)})
	}

	// Lexers configured with EnsureNL add a newline the source did not have.
	if n := len(tokens); n > 0 && !strings.HasSuffix(source, "\n") {
		tokens[n-1].Text = strings.TrimSuffix(tokens[n-1].Text, "\n")
		if tokens[n-1].Text == "" {
			tokens = tokens[:n-1]
		}
	}
	return tokens, true
}

// lexer returns the coalescing lexer for language, or nil. Misses are cached
// too.
func (t *Tokenizer) lexer(language string) chromalib.Lexer {
	t.mu.Lock()
	defer t.mu.Unlock()

	if l, ok := t.lexers[language]; ok {
		return l
	}
	var l chromalib.Lexer
	if found := lexers.Get(language); found != nil {
		l = chromalib.Coalesce(found)
	}
	t.lexers[language] = l
	return l
}

// splitLines cuts tokens at newlines into exactly n lines.
func splitLines(tokens []evalconsole.Token, n int) [][]evalconsole.Token {
	lines := make([][]evalconsole.Token, 1, n)
	for _, tok := range tokens {
		rest := tok.Text
		for {
			before, after, found := strings.Cut(rest, "\n")
			if before != "" {
				last := len(lines) - 1
				lines[last] = append(lines[last], evalconsole.Token{Text: before, Style: tok.Style})
			}
			if !found {
				break
			}
			lines = append(lines, nil)
			rest = after
		}
	}
	for len(lines) < n {
		lines = append(lines, nil)
	}
	return lines[:n]
}
