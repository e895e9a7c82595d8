package chroma

import (
	"strings"

	chromalib "github.com/alecthomas/chroma/v2"
	"github.com/fwojciec/evalconsole"
)

// StyleFromPalette maps chroma token types to palette colors by category.
// Keywords and type names are bold. JSON object keys share the function
// color so they stand apart from string values.
func StyleFromPalette(p evalconsole.Palette) StyleFunc {
	return func(tt chromalib.TokenType) evalconsole.Style {
		switch {
		case tt == chromalib.KeywordType:
			return evalconsole.Style{Foreground: string(p.Type), Bold: true}
		case tt.InCategory(chromalib.Keyword):
			return evalconsole.Style{Foreground: string(p.Keyword), Bold: true}
		case tt.InCategory(chromalib.Comment):
			return evalconsole.Style{Foreground: string(p.Comment)}
		case tt.InSubCategory(chromalib.LiteralString):
			return evalconsole.Style{Foreground: string(p.String)}
		case tt.InSubCategory(chromalib.LiteralNumber):
			return evalconsole.Style{Foreground: string(p.Number)}
		case tt.InCategory(chromalib.Operator):
			return evalconsole.Style{Foreground: string(p.Operator)}
		case tt == chromalib.NameFunction, tt == chromalib.NameFunctionMagic, tt == chromalib.NameTag:
			return evalconsole.Style{Foreground: string(p.Function)}
		case tt == chromalib.NameConstant:
			return evalconsole.Style{Foreground: string(p.Constant)}
		case tt.InCategory(chromalib.Punctuation):
			return evalconsole.Style{Foreground: string(p.Punctuation)}
		default:
			return evalconsole.Style{}
		}
	}
}

// ChromaStyle builds a chroma style from the palette for formatters that
// consume chroma styles directly. Empty palette colors are left unset.
func ChromaStyle(name string, p evalconsole.Palette) (*chromalib.Style, error) {
	entries := chromalib.StyleEntries{}
	set := func(tt chromalib.TokenType, prefix string, c evalconsole.Color) {
		if c != "" {
			entries[tt] = prefix + string(c)
		}
	}

	if p.Background != "" {
		entries[chromalib.Background] = strings.TrimSpace(string(p.Foreground) + " bg:" + string(p.Background))
	}
	set(chromalib.KeywordType, "bold ", p.Type)
	set(chromalib.Keyword, "bold ", p.Keyword)
	set(chromalib.Comment, "italic ", p.Comment)
	set(chromalib.String, "", p.String)
	set(chromalib.Number, "", p.Number)
	set(chromalib.Operator, "", p.Operator)
	set(chromalib.NameFunction, "", p.Function)
	set(chromalib.NameTag, "", p.Function)
	set(chromalib.NameConstant, "", p.Constant)
	set(chromalib.Punctuation, "", p.Punctuation)

	return chromalib.NewStyle(name, entries)
}
