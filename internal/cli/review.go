package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/session"
)

// ReviewOptions holds flags for the review command.
type ReviewOptions struct {
	*RootOptions
	Correct bool
	Time    time.Duration
	Rating  int
}

// NewReviewCommand creates the review command.
func NewReviewCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReviewOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "review <word-id>",
		Short: "Record a review",
		Long: `Record a review, either as a quiz answer or as a self rating.

Examples:
  wordsrs review 12 --correct --time 3s
  wordsrs review 12 --rating 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordID, err := parseWordID(args[0])
			if err != nil {
				return err
			}
			rated := cmd.Flags().Changed("rating")
			if rated && (cmd.Flags().Changed("correct") || cmd.Flags().Changed("time")) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("--rating cannot be combined with --correct or --time"))
			}

			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				var res *session.Result
				if rated {
					res, err = a.svc.SubmitRating(ctx, opts.UserID, wordID, opts.Rating)
				} else {
					res, err = a.svc.SubmitAnswer(ctx, opts.UserID, wordID, session.Answer{
						IsCorrect:    opts.Correct,
						ResponseTime: opts.Time,
					})
				}
				if err != nil {
					return err
				}
				return a.out.Success(res, func(w io.Writer) {
					fmt.Fprintf(w, "%s: quality %d, next review in %d day(s) (%s)\n",
						res.Word.Word, res.Quality, res.Word.Interval, res.Word.NextReviewDate)
					fmt.Fprintf(w, "+%d XP, level %d, streak %d\n", res.XPEarned, res.Level, res.Streak)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&opts.Correct, "correct", false, "the answer was correct")
	cmd.Flags().DurationVar(&opts.Time, "time", 0, "response time, e.g. 4s")
	cmd.Flags().IntVar(&opts.Rating, "rating", 0, "self rating from 1 (forgot) to 5 (perfect)")

	return cmd
}
