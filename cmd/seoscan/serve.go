package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/seoscan/seoscan/internal/config"
	"github.com/seoscan/seoscan/internal/fetch"
	"github.com/seoscan/seoscan/internal/log"
	"github.com/seoscan/seoscan/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the audit helper HTTP server",
		Long: `Serve starts a local HTTP server exposing the audit helper API.

The server proxies page fetches, DNS lookups, and TLS certificate probes
so that browser-based clients can run audits without being blocked by
same-origin restrictions.

Endpoints:
  GET /api/fetch?url=...              Fetch a page and return its contents
  GET /api/dns?domain=...&type=...    Resolve DNS records for a domain
  GET /api/ssl?url=...                Probe the TLS certificate of a host
  GET /api/health                     Health check

Examples:
  # Start on the default address
  seoscan serve

  # Bind to a specific address
  seoscan serve --addr 0.0.0.0:8080`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().StringP("addr", "a", config.DefaultServeAddr,
		"Address to listen on")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Fetch timeout per request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with proxied fetches")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	userAgent, err := cmd.Flags().GetString("user-agent")
	if err != nil {
		return err
	}

	logger := log.NewSecureLogger(os.Stderr, getVerboseFlag(cmd))
	slog.SetDefault(logger)

	// Shut the server down gracefully on interrupt.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := fetch.NewHTTPClient(
		fetch.WithTimeout(timeout),
		fetch.WithUserAgent(userAgent),
	)

	srv := server.New(client, server.WithServerLogger(logger))

	fmt.Fprintf(os.Stderr, "seoscan server listening on http://%s\n", addr)
	return srv.ListenAndServe(ctx, addr)
}
