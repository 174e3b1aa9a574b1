// Package ui is the Bubble Tea view behind `inputctl watch`.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"inputctl/internal/libinput"
)

// maxLines bounds the scrollback kept in memory.
const maxLines = 2000

// Stream is the part of libinput.Resolver the view needs.
type Stream interface {
	StreamDebugEvents(ctx context.Context, consume libinput.Consumer) error
	LineTimeout() time.Duration
}

// Model for TUI
type model struct {
	lines   []string
	vp      viewport.Model
	spin    spinner.Model
	ready   bool
	follow  bool
	paused  bool
	width   int
	height  int
	command string

	events   int
	timeouts int
	// consecutive timeout markers since the last real line
	idle        int
	lineTimeout time.Duration

	sub      <-chan tea.Msg
	err      error
	done     bool
	quitting bool
}

// New returns the watch model reading from sub. command is shown in the
// header only.
func New(sub <-chan tea.Msg, command string, lineTimeout time.Duration) tea.Model {
	return newModel(sub, command, lineTimeout)
}

func newModel(sub <-chan tea.Msg, command string, lineTimeout time.Duration) model {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = IdleStyle()
	return model{
		sub:         sub,
		spin:        sp,
		follow:      true,
		command:     command,
		lineTimeout: lineTimeout,
	}
}

// Subscribe starts s in the background and returns the channel the model
// reads from. Cancelling ctx stops the stream; the idle markers guarantee
// the consumer notices within one line timeout even with no input.
func Subscribe(ctx context.Context, s Stream) <-chan tea.Msg {
	ch := make(chan tea.Msg)
	go func() {
		err := s.StreamDebugEvents(ctx, func(line string) error {
			var msg tea.Msg = eventMsg(line)
			if line == libinput.Timeout {
				msg = idleMsg{}
			}
			select {
			case ch <- msg:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		select {
		case ch <- streamEndMsg{err: err}:
		case <-ctx.Done():
		}
		close(ch)
	}()
	return ch
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForEvent(m.sub), m.spin.Tick)
}

// waitForEvent blocks on the next stream message.
func waitForEvent(sub <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if sub == nil {
			return nil
		}
		msg, ok := <-sub
		if !ok {
			return streamEndMsg{}
		}
		return msg
	}
}
