package devices

import (
	"context"
	"time"

	"github.com/fsnotify/fsnotify"
)

// InputDir is where the kernel exposes evdev nodes.
const InputDir = "/dev/input"

// settle lets a burst of node creations finish before rescanning.
const settle = 250 * time.Millisecond

// Watch calls onChange once up front and again after each settled burst of
// changes in dir. It returns when ctx is done or the watcher fails.
func Watch(ctx context.Context, dir string, onChange func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		return err
	}
	if err := onChange(); err != nil {
		return err
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			pending = time.After(settle)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-pending:
			pending = nil
			if err := onChange(); err != nil {
				return err
			}
		}
	}
}
