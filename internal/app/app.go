package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"inputctl/internal/libinput"
	"inputctl/internal/ui"
)

// Watch runs the live debug-events view until the user quits or ctx ends.
// The stream is torn down before Watch returns.
func Watch(ctx context.Context, r *libinput.Resolver) error {
	invocation, err := r.DebugEventsInvocation(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sub := ui.Subscribe(ctx, r)
	p := tea.NewProgram(ui.New(sub, invocation, r.LineTimeout()), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
