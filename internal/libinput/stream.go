package libinput

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
)

// Timeout is delivered to a debug-events consumer in place of a line when
// none arrived within the line timeout.
const Timeout = "timeout"

// DefaultLineTimeout is the bounded wait for one debug-events line.
const DefaultLineTimeout = 300 * time.Millisecond

// ErrStreamClosed is returned by StreamDebugEvents when the child closes its
// output, for example because it exited or the device went away.
var ErrStreamClosed = errors.New("libinput debug-events stream closed")

// Consumer receives one line at a time. Returning an error stops the stream
// and the error is returned to the caller.
type Consumer func(line string) error

// StreamListDevices runs list-devices and passes each output line to consume
// in order. It returns nil once the child closes its output; spawn and read
// failures are logged and end the sequence the same way.
func (r *Resolver) StreamListDevices(ctx context.Context, consume Consumer) error {
	command := r.ListDevicesCommand(ctx)
	r.log.Log(clog.DebugLevel, "spawning list-devices", "cmd", command)
	rc, err := r.spawner.Spawn(ctx, command)
	if err != nil {
		r.log.Log(clog.ErrorLevel, "spawn list-devices", "cmd", command, "err", err)
		return nil
	}
	defer rc.Close()

	sc := newLineScanner(rc)
	for sc.Scan() {
		if err := consume(trimLine(sc.Text())); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil && !isClosedError(err) && ctx.Err() == nil {
		r.log.Log(clog.DebugLevel, "list-devices read ended", "err", err)
	}
	return nil
}

// StreamDebugEvents runs debug-events with output buffering disabled and
// feeds consume forever: each line as it arrives, or Timeout whenever no
// line shows up within the line timeout. It only returns when ctx is done,
// consume fails, spawning fails, or the child closes its output
// (ErrStreamClosed).
func (r *Resolver) StreamDebugEvents(ctx context.Context, consume Consumer) error {
	command, err := r.DebugEventsInvocation(ctx)
	if err != nil {
		return err
	}
	r.log.Log(clog.DebugLevel, "spawning debug-events", "cmd", command)

	// The child outlives any single read; cancel it on every exit path.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	rc, err := r.spawner.Spawn(ctx, command)
	if err != nil {
		return fmt.Errorf("spawn %q: %w", command, err)
	}
	defer rc.Close()

	lines := readLines(ctx, rc)
	timer := time.NewTimer(r.lineTimeout)
	defer timer.Stop()
	for {
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case res, ok := <-lines:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !ok {
				return ErrStreamClosed
			}
			if res.err != nil {
				return fmt.Errorf("%w: %v", ErrStreamClosed, res.err)
			}
			line = res.line
		case <-timer.C:
			line = Timeout
		}
		if err := consume(line); err != nil {
			return err
		}
		resetTimer(timer, r.lineTimeout)
	}
}

type lineResult struct {
	line string
	err  error
}

// readLines owns rc for the lifetime of the stream. A line that completes
// after a wait expired is delivered on the next wait, never dropped.
func readLines(ctx context.Context, rc io.Reader) <-chan lineResult {
	out := make(chan lineResult)
	go func() {
		defer close(out)
		sc := newLineScanner(rc)
		for sc.Scan() {
			select {
			case out <- lineResult{line: trimLine(sc.Text())}:
			case <-ctx.Done():
				return
			}
		}
		err := sc.Err()
		if err == nil || isClosedError(err) {
			return
		}
		select {
		case out <- lineResult{err: err}:
		case <-ctx.Done():
		}
	}()
	return out
}

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return sc
}

func trimLine(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// isClosedError detects read errors caused by the pipe being closed under us.
func isClosedError(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
