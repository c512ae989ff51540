package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/stadium-fixtures/internal/board"
	"github.com/pfrederiksen/stadium-fixtures/internal/logger"
	"github.com/pfrederiksen/stadium-fixtures/internal/metrics"
	"github.com/pfrederiksen/stadium-fixtures/internal/server"
)

var flagAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the match board and calendar exports over HTTP",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	cmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return serve(ctx, flagAddr)
}

// serve runs the HTTP server until ctx is canceled
func serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = appConfig.Server.Addr
	}
	loc, err := appConfig.Location()
	if err != nil {
		return err
	}

	m := metrics.NewManager()
	loader, err := newLoader(appConfig, m)
	if err != nil {
		return err
	}

	holder := &board.Holder{}
	holder.Refresh(ctx, loader)

	if spec := appConfig.Server.RefreshCron; spec != "" {
		sched, err := board.NewScheduler(ctx, spec, holder, loader)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
		logger.Info("Refresh scheduled", logger.Fields{"cron": spec})
	}

	srv := server.New(holder, loader,
		server.WithMetrics(m),
		server.WithLocation(loc),
	)
	return srv.ListenAndServe(ctx, addr)
}
