// Package clipboard provides clipboard operations via platform-specific commands.
package clipboard

import (
	"errors"
	"os/exec"
	"strings"

	clipboardlib "github.com/atotto/clipboard"
	"github.com/fwojciec/evalconsole"
)

// Compile-time interface verification.
var (
	_ evalconsole.Clipboard = (*System)(nil)
	_ evalconsole.Clipboard = (*PBCopy)(nil)
	_ evalconsole.Clipboard = Chain(nil)
)

// ErrUnsupported is returned when no clipboard mechanism is available.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// New returns the default clipboard: the system clipboard, then pbcopy.
func New() Chain {
	return Chain{NewSystem(), NewPBCopy()}
}

// System implements Clipboard using xclip, xsel, wl-copy, pbcopy or the
// Windows clipboard API, whichever is available.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboardlib.Unsupported {
		return ErrUnsupported
	}
	return clipboardlib.WriteAll(content)
}

// PBCopy implements Clipboard using macOS pbcopy command.
type PBCopy struct{}

// NewPBCopy returns a new PBCopy clipboard.
func NewPBCopy() *PBCopy {
	return &PBCopy{}
}

// Copy writes content to the system clipboard using pbcopy.
func (p *PBCopy) Copy(content string) error {
	cmd := exec.Command("pbcopy")
	cmd.Stdin = strings.NewReader(content)
	return cmd.Run()
}

// Chain tries each clipboard in order until one succeeds.
type Chain []evalconsole.Clipboard

// Copy returns nil on the first success, or all errors joined.
func (c Chain) Copy(content string) error {
	if len(c) == 0 {
		return ErrUnsupported
	}
	var errs []error
	for _, cb := range c {
		err := cb.Copy(content)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
