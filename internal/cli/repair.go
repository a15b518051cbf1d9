package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/scheduler"
)

// RepairOptions holds flags for the repair command.
type RepairOptions struct {
	*RootOptions
	All bool
}

// NewRepairCommand creates the repair command.
func NewRepairCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RepairOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Fix words with missing or corrupt scheduling data",
		Long: `Fix words with missing or corrupt scheduling data. Words without a valid
review date become due today.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				var (
					n   int
					err error
				)
				if opts.All {
					n, err = scheduler.New(a.svc, a.cfg.RepairAt, a.cfg.Location, a.log).RunRepairNow(ctx)
				} else {
					n, err = a.svc.Repair(ctx, opts.UserID)
				}
				if err != nil {
					return err
				}
				return a.out.Success(map[string]int{"repaired": n}, func(w io.Writer) {
					fmt.Fprintf(w, "Repaired %d word(s)\n", n)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "repair every active user")

	return cmd
}
