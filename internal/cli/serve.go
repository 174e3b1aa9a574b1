package cli

import (
    "errors"
    "fmt"
    "net/http"

    "github.com/spf13/cobra"

    "inputctl/internal/system"
    "inputctl/internal/webui/server"
)

func init() {
    rootCmd.AddCommand(serveCmd)
    serveCmd.Flags().StringP("addr", "a", "127.0.0.1:8787", "address to bind (host:port)")
    serveCmd.Flags().BoolP("open", "o", false, "open the browser after start")
}

var serveCmd = &cobra.Command{
    Use:   "serve",
    Short: "Serve devices and a debug-events SSE stream over HTTP",
    RunE: func(cmd *cobra.Command, args []string) error {
        addr, _ := cmd.Flags().GetString("addr")
        open, _ := cmd.Flags().GetBool("open")
        r, err := newResolver()
        if err != nil {
            return err
        }
        srv := &server.Server{Addr: addr, Backend: r}

        // Handle Ctrl+C
        ctx, cancel := signalContext(cmd.Context())
        defer cancel()

        url := fmt.Sprintf("http://%s/", addr)
        system.Logger.Info("starting server", "url", url)
        if open {
            if err := server.OpenBrowser(url); err != nil {
                system.Logger.Warn("failed to open browser", "err", err)
            }
        }
        if err := srv.Start(ctx); err != nil {
            if errors.Is(err, http.ErrServerClosed) {
                return nil
            }
            return err
        }
        return nil
    },
}
