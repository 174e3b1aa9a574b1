package server

import (
	"context"
	"errors"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"inputctl/internal/devices"
	"inputctl/internal/libinput"
	"inputctl/internal/system"
	appver "inputctl/internal/version"
)

// Backend is the libinput surface the server exposes. *libinput.Resolver
// implements it.
type Backend interface {
	Version(ctx context.Context) (libinput.ToolVersion, error)
	ListDevicesCommand(ctx context.Context) string
	DebugEventsInvocation(ctx context.Context) (string, error)
	StreamListDevices(ctx context.Context, consume libinput.Consumer) error
	StreamDebugEvents(ctx context.Context, consume libinput.Consumer) error
}

type Server struct {
	Addr    string
	Backend Backend
}

func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	system.Logger.Info("server listening", "addr", s.Addr)
	return srv.ListenAndServe()
}

// Handler builds the gin engine with all routes mounted.
func (s *Server) Handler() *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	mountAPIGin(r, s.Backend)
	r.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(indexHTML))
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

// OpenBrowser tries to open a URL in the system browser.
func OpenBrowser(url string) error {
	var cmd string
	var args []string
	switch runtime.GOOS {
	case "darwin":
		cmd = "open"
		args = []string{url}
	default:
		cmd = "xdg-open"
		args = []string{url}
	}
	return runCmd(cmd, args...)
}

func mountAPIGin(r *gin.Engine, b Backend) {
	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": appver.AppVersion})
	})
	api.GET("/resolve", func(c *gin.Context) { resolveHandler(c, b) })
	api.GET("/devices", func(c *gin.Context) { devicesHandler(c, b) })
	api.GET("/events", func(c *gin.Context) { eventsHandler(c, b) })
}

func resolveHandler(c *gin.Context, b Backend) {
	ctx := c.Request.Context()
	debug, err := b.DebugEventsInvocation(ctx)
	if err != nil {
		writeError(c, err)
		return
	}
	out := gin.H{"listDevices": b.ListDevicesCommand(ctx), "debugEvents": debug}
	if v, err := b.Version(ctx); err == nil {
		out["libinput"] = v.String()
	}
	c.JSON(http.StatusOK, out)
}

func devicesHandler(c *gin.Context, b Backend) {
	var p devices.Parser
	if err := b.StreamListDevices(c.Request.Context(), p.Add); err != nil {
		writeError(c, err)
		return
	}
	devs := devices.Filter(p.Devices(), c.Query("q"))
	if devs == nil {
		devs = []devices.Device{}
	}
	c.JSON(http.StatusOK, devs)
}

// eventsHandler streams debug-events as server-sent events: "line" for
// tool output and "timeout" whenever the device stays idle for one line
// timeout, which doubles as a keep-alive.
func eventsHandler(c *gin.Context, b Backend) {
	ctx := c.Request.Context()
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	// Disable certain reverse proxy buffering if present
	c.Header("X-Accel-Buffering", "no")

	err := b.StreamDebugEvents(ctx, func(line string) error {
		if line == libinput.Timeout {
			c.SSEvent("timeout", "")
		} else {
			c.SSEvent("line", line)
		}
		c.Writer.Flush()
		return ctx.Err()
	})
	switch {
	case err == nil, errors.Is(err, context.Canceled):
	case errors.Is(err, libinput.ErrStreamClosed):
		c.SSEvent("end", err.Error())
		c.Writer.Flush()
	default:
		if !c.Writer.Written() {
			writeError(c, err)
			return
		}
		c.SSEvent("error", err.Error())
		c.Writer.Flush()
	}
}

func writeError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, libinput.ErrToolNotFound) {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

const indexHTML = `<!doctype html>
<html>
<head><meta charset="utf-8"><title>inputctl</title>
<style>body{background:#181818;color:#dbd7ca;font:13px monospace;margin:1em}#idle{color:#888}</style></head>
<body>
<div id="idle"></div>
<pre id="log"></pre>
<script>
const log = document.getElementById("log"), idle = document.getElementById("idle");
let quiet = 0;
const es = new EventSource("/api/events");
es.addEventListener("line", e => { quiet = 0; idle.textContent = ""; log.textContent += e.data + "\n"; window.scrollTo(0, document.body.scrollHeight); });
es.addEventListener("timeout", () => { quiet++; idle.textContent = "idle (" + quiet + ")"; });
es.addEventListener("end", e => { idle.textContent = "stream ended: " + e.data; es.close(); });
</script>
</body>
</html>
`
