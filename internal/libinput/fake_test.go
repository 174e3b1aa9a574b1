package libinput

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

// step is one piece of scripted child output: wait, then write text.
type step struct {
	wait time.Duration
	text string
}

// fakeSpawner replays scripted output per command prefix and records spawns.
type fakeSpawner struct {
	mu       sync.Mutex
	scripts  map[string][]step
	spawned  []string
	closed   int
	spawnErr error
}

func (f *fakeSpawner) Spawn(ctx context.Context, command string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.spawned = append(f.spawned, command)
	var script []step
	for prefix, s := range f.scripts {
		if strings.HasPrefix(command, prefix) {
			script = s
		}
	}
	err := f.spawnErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	pr, pw := io.Pipe()
	go func() {
		for _, s := range script {
			select {
			case <-time.After(s.wait):
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			}
			if _, err := pw.Write([]byte(s.text)); err != nil {
				return
			}
		}
		pw.Close()
	}()
	return &fakeProc{r: pr, onClose: func() {
		f.mu.Lock()
		f.closed++
		f.mu.Unlock()
	}}, nil
}

func (f *fakeSpawner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spawned...)
}

type fakeProc struct {
	r       *io.PipeReader
	once    sync.Once
	onClose func()
}

func (p *fakeProc) Read(b []byte) (int, error) { return p.r.Read(b) }

func (p *fakeProc) Close() error {
	p.once.Do(func() {
		p.r.Close()
		p.onClose()
	})
	return nil
}

// lookPathFor finds only the named binaries.
func lookPathFor(found ...string) func(string) (string, error) {
	return func(bin string) (string, error) {
		for _, f := range found {
			if f == bin {
				return "/usr/bin/" + bin, nil
			}
		}
		return "", errors.New("not found: " + bin)
	}
}

// recordingLogger keeps every message for assertions.
type recordingLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *recordingLogger) Log(level clog.Level, msg interface{}, keyvals ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := msg.(string); ok {
		l.msgs = append(l.msgs, level.String()+" "+s)
	}
}

func (l *recordingLogger) has(sub string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.msgs {
		if strings.Contains(m, sub) {
			return true
		}
	}
	return false
}
