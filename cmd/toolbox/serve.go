package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/app"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/bridge"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/doctor"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/settings"
)

// signalContext is cancelled on interrupt or terminate.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the UI bridge over loopback WebSocket and HTTP",
		Long: `Serve the catalog commands to the UI.

Endpoints:
  GET  /api/v1/ws               WebSocket: requests, responses and events
  POST /api/v1/commands/{name}  One-shot command, body is the args object
  GET  /api/v1/commands         Supported command names
  GET  /metrics                 Prometheus metrics
  GET  /healthz                 Liveness`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer e.close()

			addr := e.settings.Listen
			if listen != "" {
				if err := settings.ValidateListen(listen); err != nil {
					return err
				}
				addr = listen
			}

			metrics := bridge.NewMetrics()
			hub := bridge.NewHub(e.logger)
			e.svc.SetPublisher(hub)
			e.svc.SetWindow(hub)
			d := bridge.NewDispatcher(e.svc, metrics, e.logger)

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			e.logger.Info("starting bridge",
				zap.String("catalog", e.svc.Path()),
				zap.String("listen", addr),
			)
			return bridge.NewServer(addr, d, hub, metrics, e.logger).Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Listen address (loopback only, overrides settings)")
	return cmd
}

func newStdioCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Serve the UI bridge over stdin/stdout",
		Long: `Serve catalog commands as length-prefixed JSON frames on stdin/stdout.

Each frame is a 32-bit little-endian length followed by a JSON request.
Responses and events are written the same way. Logs go to stderr or the
configured log file, never to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(false)
			if err != nil {
				return err
			}
			defer e.close()

			srv := bridge.NewStdioServer(cmd.InOrStdin(), cmd.OutOrStdout(), e.logger)
			e.svc.SetPublisher(srv)
			e.svc.SetWindow(srv)
			d := bridge.NewDispatcher(e.svc, nil, e.logger)

			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return srv.Serve(ctx, d)
		},
	}
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse and launch apps in the terminal",
		Long:  `Open the full-screen browser: one tab per category, enter launches the selected app
and d shows the health checks.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.setup(true)
			if err != nil {
				return err
			}
			defer e.close()

			browser := app.New(e.svc).WithHealth(doctor.NewChecker(e.svc.Path()))
			p := tea.NewProgram(browser, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}
