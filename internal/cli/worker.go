package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/scheduler"
)

// NewWorkerCommand creates the worker command.
func NewWorkerCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Run background jobs until interrupted",
		Long: `Run background jobs until SIGINT or SIGTERM: a daily repair of legacy
scheduling data at REPAIR_AT.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runWorker(ctx, a)
			})
		},
	}
}

func runWorker(ctx context.Context, a *app) error {
	jobs := scheduler.New(a.svc, a.cfg.RepairAt, a.cfg.Location, a.log)
	if err := jobs.Start(); err != nil {
		return WrapExitError(ExitCommandError, "invalid REPAIR_AT", err)
	}

	<-ctx.Done()
	a.log.Info("shutting down worker")
	jobs.Stop()
	return nil
}
