// Package huh prompts for missing form values using charmbracelet/huh.
package huh

import (
	"fmt"
	"io"
	"os"
	"strings"

	huhlib "github.com/charmbracelet/huh"
	"github.com/fwojciec/evalconsole"
	"golang.org/x/term"
)

// Compile-time interface verification.
var _ evalconsole.Prompter = (*Prompter)(nil)

// Prompter asks for required fields that are empty. Input that is not a
// terminal switches huh to accessible mode, which reads plain lines.
type Prompter struct {
	in  io.Reader
	out io.Writer
}

// NewPrompter creates a Prompter reading from in and writing to out.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Prompt implements evalconsole.Prompter. Optional fields and fields that
// already have a value are not asked for.
func (p *Prompter) Prompt(fields []evalconsole.Field) ([]evalconsole.Field, error) {
	out := make([]evalconsole.Field, len(fields))
	copy(out, fields)

	interactive := p.isTerminal()
	var inputs []huhlib.Field
	for i := range out {
		f := &out[i]
		if f.Optional || strings.TrimSpace(f.Value) != "" {
			continue
		}
		inputs = append(inputs, p.field(f, interactive))
	}
	if len(inputs) == 0 {
		return out, nil
	}

	form := huhlib.NewForm(huhlib.NewGroup(inputs...)).
		WithInput(p.in).
		WithOutput(p.out)
	if !interactive {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	for i := range out {
		out[i].Value = strings.TrimSpace(out[i].Value)
	}
	return out, nil
}

func (p *Prompter) field(f *evalconsole.Field, interactive bool) huhlib.Field {
	check := *f
	validate := func(s string) error {
		check.Value = s
		return evalconsole.Validate(check)
	}

	if f.Multiline && interactive {
		return huhlib.NewText().
			Title(f.Label).
			Description(description(f)).
			Value(&f.Value).
			Validate(validate)
	}

	input := huhlib.NewInput().
		Title(f.Label).
		Description(description(f)).
		Value(&f.Value).
		Validate(validate)
	if interactive && isSecret(f.Name) {
		input = input.EchoMode(huhlib.EchoModePassword)
	}
	return input
}

func (p *Prompter) isTerminal() bool {
	f, ok := p.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func description(f *evalconsole.Field) string {
	if f.JSON {
		return "JSON"
	}
	return ""
}

func isSecret(name string) bool {
	return name == evalconsole.FieldDocToken || name == evalconsole.FieldUserToken
}
