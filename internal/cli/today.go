package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/pkg/models"
)

// NewTodayCommand creates the today command.
func NewTodayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's study session",
		Long: `Show today's study session: words due for review followed by new words
up to the daily goal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				s, err := a.svc.Today(ctx, rootOpts.UserID)
				if err != nil {
					return err
				}
				return a.out.Success(s, func(w io.Writer) {
					fmt.Fprintf(w, "Session %s: %d due, %d new (goal %d), %d reviewed so far\n",
						s.Date, len(s.Due), len(s.New), s.DailyGoal, s.ReviewedToday)
					printWords(w, "Due", s.Due)
					printWords(w, "New", s.New)
				})
			})
		},
	}
}

func printWords(w io.Writer, title string, words []models.Word) {
	if len(words) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, word := range words {
		fmt.Fprintf(w, "  #%-5d %-20s %-10s %s\n", word.ID, word.Word, word.LearningStatus, word.Meaning)
	}
}
