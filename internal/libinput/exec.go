package libinput

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Spawner starts a shell command and hands back its standard output.
// Closing the returned reader must release the pipe and reap the child.
type Spawner interface {
	Spawn(ctx context.Context, command string) (io.ReadCloser, error)
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(ctx context.Context, command string) (io.ReadCloser, error)

// Spawn calls f.
func (f SpawnerFunc) Spawn(ctx context.Context, command string) (io.ReadCloser, error) {
	return f(ctx, command)
}

// ShellSpawner runs commands through /bin/sh so override strings may carry
// their own quoting and arguments.
type ShellSpawner struct {
	Shell string
}

// Spawn starts command and returns its stdout. Stderr is inherited.
func (s ShellSpawner) Spawn(ctx context.Context, command string) (io.ReadCloser, error) {
	sh := s.Shell
	if sh == "" {
		sh = "/bin/sh"
	}
	cmd := exec.CommandContext(ctx, sh, "-c", command)
	// Avoid colored output from tools that honour it
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	cmd.Stderr = os.Stderr
	// Own process group so stdbuf/libinput under the shell die with it.
	setProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &process{cmd: cmd, stdout: stdout}, nil
}

type process struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser

	once sync.Once
	err  error
}

func (p *process) Read(b []byte) (int, error) { return p.stdout.Read(b) }

// Close kills the child's process group if it is still running and waits
// for the shell.
func (p *process) Close() error {
	p.once.Do(func() {
		_ = p.stdout.Close()
		if p.cmd.ProcessState == nil && p.cmd.Process != nil {
			_ = killProcessGroup(p.cmd)
		}
		err := p.cmd.Wait()
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// killed by us or exited non-zero after output was consumed
			err = nil
		}
		p.err = err
	})
	return p.err
}

// runCmd executes command and returns its standard output.
func runCmd(ctx context.Context, sp Spawner, command string) (string, error) {
	rc, err := sp.Spawn(ctx, command)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	out, err := io.ReadAll(rc)
	if ctx.Err() == context.DeadlineExceeded {
		return "", ctx.Err()
	}
	return string(out), err
}
