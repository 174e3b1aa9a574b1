// Package libinput wraps the libinput command line tool: it works out which
// calling convention the installed version understands and streams the
// output of list-devices and debug-events line by line.
package libinput

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
	"time"

	clog "github.com/charmbracelet/log"
)

const (
	modernBinary = "libinput"
	legacyBinary = "libinput-list-devices"

	modernListDevices = "libinput list-devices"
	legacyListDevices = "libinput-list-devices"
	modernDebugEvents = "libinput debug-events"
	legacyDebugEvents = "libinput-debug-events"

	versionFlag = "--version"

	// lineBufferPrefix disables block buffering of the child's stdout.
	lineBufferPrefix = "stdbuf -oL"

	probeTimeout = 3 * time.Second
)

// SubcommandVersion is the first libinput release with the
// `libinput <subcommand>` form.
var SubcommandVersion = MustParseVersion("1.8")

// ErrToolNotFound means neither libinput binary is on PATH and no override
// lets the version be probed. Nothing that needs the version can proceed.
var ErrToolNotFound = errors.New("libinput not found on PATH (tried libinput, libinput-list-devices)")

// Logger is the structured sink the resolver and reader report to.
// *charmbracelet/log.Logger satisfies it.
type Logger interface {
	Log(level clog.Level, msg interface{}, keyvals ...interface{})
}

// Options configure a Resolver. Zero values pick the defaults.
type Options struct {
	// ListDevicesCommand replaces the derived list-devices command.
	ListDevicesCommand string
	// DebugEventsCommand replaces the derived debug-events command.
	DebugEventsCommand string
	// ExtraOptions are appended to debug-events in the given order.
	ExtraOptions []string
	// LineTimeout bounds each debug-events line read. Default 300ms.
	LineTimeout time.Duration

	Logger   Logger
	Spawner  Spawner
	LookPath func(file string) (string, error)
}

// Resolver picks libinput commands for the installed version. The probed
// version is computed at most once per Resolver and never invalidated.
type Resolver struct {
	listOverride  string
	debugOverride string
	extra         []string
	lineTimeout   time.Duration

	log      Logger
	spawner  Spawner
	lookPath func(string) (string, error)

	// versionMu serializes probes; a result is kept only once versionDone.
	versionMu   sync.Mutex
	versionDone bool
	version     ToolVersion
	versionErr  error
}

// NewResolver builds a Resolver from opts.
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		listOverride:  strings.TrimSpace(opts.ListDevicesCommand),
		debugOverride: strings.TrimSpace(opts.DebugEventsCommand),
		extra:         append([]string(nil), opts.ExtraOptions...),
		lineTimeout:   opts.LineTimeout,
		log:           opts.Logger,
		spawner:       opts.Spawner,
		lookPath:      opts.LookPath,
	}
	if r.lineTimeout <= 0 {
		r.lineTimeout = DefaultLineTimeout
	}
	if r.log == nil {
		r.log = clog.Default()
	}
	if r.spawner == nil {
		r.spawner = ShellSpawner{}
	}
	if r.lookPath == nil {
		r.lookPath = exec.LookPath
	}
	return r
}

// ExtraOptions returns a copy of the configured debug-events options.
func (r *Resolver) ExtraOptions() []string {
	return append([]string(nil), r.extra...)
}

// LineTimeout is the bounded wait applied to each debug-events read.
func (r *Resolver) LineTimeout() time.Duration { return r.lineTimeout }

// VersionProbeCommand returns the command that prints the installed version.
// With both overrides set it is derived from the list-devices override and
// PATH is never searched.
func (r *Resolver) VersionProbeCommand() (string, error) {
	if r.listOverride != "" && r.debugOverride != "" {
		return r.listOverride + " " + versionFlag, nil
	}
	for _, bin := range []string{modernBinary, legacyBinary} {
		if _, err := r.lookPath(bin); err == nil {
			return bin + " " + versionFlag, nil
		}
	}
	r.log.Log(clog.ErrorLevel, "cannot determine libinput version", "err", ErrToolNotFound)
	return "", ErrToolNotFound
}

// Version runs the probe command and caches the parsed result. Only a
// successful probe or ErrToolNotFound is kept; failures tied to ctx or to a
// misbehaving child are retried on the next call.
func (r *Resolver) Version(ctx context.Context) (ToolVersion, error) {
	r.versionMu.Lock()
	defer r.versionMu.Unlock()
	if r.versionDone {
		return r.version, r.versionErr
	}
	v, err := r.probe(ctx)
	if err == nil || errors.Is(err, ErrToolNotFound) {
		r.version, r.versionErr, r.versionDone = v, err, true
	}
	return v, err
}

func (r *Resolver) probe(ctx context.Context) (ToolVersion, error) {
	command, err := r.VersionProbeCommand()
	if err != nil {
		return ToolVersion{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()
	r.log.Log(clog.DebugLevel, "probing libinput version", "cmd", command)
	out, err := runCmd(ctx, r.spawner, command)
	if err != nil {
		return ToolVersion{}, fmt.Errorf("run %q: %w", command, err)
	}
	v, err := ParseVersion(out)
	if err != nil {
		return ToolVersion{}, fmt.Errorf("run %q: %w", command, err)
	}
	r.log.Log(clog.DebugLevel, "libinput version", "version", v.String())
	return v, nil
}

// ListDevicesCommand returns the list-devices command. Without an override
// the form follows the probed version. When the probe fails it never
// errors: it picks the form of whichever binary is on PATH, and the legacy
// binary when neither is.
func (r *Resolver) ListDevicesCommand(ctx context.Context) string {
	if r.listOverride != "" {
		return r.listOverride
	}
	v, err := r.Version(ctx)
	if err == nil {
		if v.AtLeast(SubcommandVersion) {
			return modernListDevices
		}
		return legacyListDevices
	}
	if !errors.Is(err, ErrToolNotFound) {
		if _, lerr := r.lookPath(modernBinary); lerr == nil {
			return modernListDevices
		}
	}
	return legacyListDevices
}

// DebugEventsCommand returns the base debug-events command, without the
// line-buffering prefix or extra options.
func (r *Resolver) DebugEventsCommand(ctx context.Context) (string, error) {
	if r.debugOverride != "" {
		return r.debugOverride, nil
	}
	v, err := r.Version(ctx)
	if err != nil {
		return "", err
	}
	if v.AtLeast(SubcommandVersion) {
		return modernDebugEvents, nil
	}
	return legacyDebugEvents, nil
}

// DebugEventsInvocation is the full string spawned for debug-events:
// line-buffering prefix, base command, then the extra options.
func (r *Resolver) DebugEventsInvocation(ctx context.Context) (string, error) {
	base, err := r.DebugEventsCommand(ctx)
	if err != nil {
		return "", err
	}
	parts := append([]string{lineBufferPrefix, base}, r.extra...)
	return strings.TrimSpace(strings.Join(parts, " ")), nil
}
