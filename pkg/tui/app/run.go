package app

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
)

// Run launches the Bubble Tea program until the user quits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	m := New(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
