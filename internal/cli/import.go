package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/excel"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	*RootOptions
	Sheet    string
	StartRow int
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file.xlsx|file.csv>",
		Short: "Import a word list",
		Long: `Import a word list from an Excel workbook or a CSV file.

Columns: A word, B meaning, C example, D difficulty (easy|medium|hard or 1-5).
Words that already exist get their content updated and keep their schedule.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				cfg := excel.DefaultImportConfig()
				cfg.FilePath = args[0]
				cfg.UserID = opts.UserID
				cfg.SheetName = opts.Sheet
				cfg.StartRow = opts.StartRow

				result, err := excel.NewImporter(a.svc).ImportWords(ctx, cfg)
				if err != nil {
					return WrapExitError(ExitCommandError, "import failed", err)
				}
				for _, e := range result.Errors {
					a.log.Warn("skipped row", "detail", e)
				}
				return a.out.Success(result, func(w io.Writer) {
					fmt.Fprintf(w, "Processed %d rows: %d created, %d updated, %d errors\n",
						result.TotalProcessed, result.Created, result.Updated, len(result.Errors))
				})
			})
		},
	}

	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", "sheet name (default: first sheet)")
	cmd.Flags().IntVar(&opts.StartRow, "start-row", 2, "first row to import (1-based)")

	return cmd
}
