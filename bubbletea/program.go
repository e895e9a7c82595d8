package bubbletea

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/evalconsole"
)

// Run shows the console and blocks until the user quits or ctx is done.
// Notifications from console are shown as toasts and each view draws its
// own loading spinner, so the console's Notifier and Indicator are replaced
// for the lifetime of the program.
func Run(ctx context.Context, console *evalconsole.Console, opts ...ModelOption) error {
	toasts := NewToastNotifier()
	defer toasts.Close()

	c := *console
	c.Notifier = toasts
	c.Indicator = nil

	opts = append([]ModelOption{WithToasts(toasts), WithContext(ctx)}, opts...)
	p := tea.NewProgram(NewModel(&c, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
