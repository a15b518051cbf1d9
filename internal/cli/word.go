package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/session"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
	"github.com/example/wordsrs/pkg/models"
)

// WordAddOptions holds flags for the word add command.
type WordAddOptions struct {
	*RootOptions
	Meaning    string
	Example    string
	Difficulty string
}

// NewWordCommand creates the word command group.
func NewWordCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "word",
		Short: "Manage vocabulary",
	}
	cmd.AddCommand(newWordAddCommand(rootOpts))
	cmd.AddCommand(newWordListCommand(rootOpts))
	cmd.AddCommand(newWordSearchCommand(rootOpts))
	cmd.AddCommand(newWordHistoryCommand(rootOpts))
	cmd.AddCommand(newWordDeleteCommand(rootOpts))
	return cmd
}

func newWordAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &WordAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <word>",
		Short: "Add a word to study",
		Long: `Add a word to study. New words are first due tomorrow.

Example:
  wordsrs word add apple --meaning elma --example "An apple a day." --difficulty easy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, opts.RootOptions, func(ctx context.Context, a *app) error {
				word, err := a.svc.AddWord(ctx, opts.UserID, session.WordInput{
					Word:       args[0],
					Meaning:    opts.Meaning,
					Example:    opts.Example,
					Difficulty: opts.Difficulty,
				})
				if err != nil {
					return err
				}
				return a.out.Success(word, func(w io.Writer) {
					fmt.Fprintf(w, "Added #%d %s (%s), next review %s\n",
						word.ID, word.Word, word.Difficulty, word.NextReviewDate)
				})
			})
		},
	}

	cmd.Flags().StringVarP(&opts.Meaning, "meaning", "m", "", "meaning or translation")
	cmd.Flags().StringVarP(&opts.Example, "example", "e", "", "example sentence")
	cmd.Flags().StringVarP(&opts.Difficulty, "difficulty", "d", "medium", "easy|medium|hard")

	return cmd
}

func newWordListCommand(rootOpts *RootOptions) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List words, newest first",
		Long: `List words, newest first.

Example:
  wordsrs word list --status learning`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter srs.LearningStatus
			if status != "" {
				parsed, err := srs.ParseLearningStatus(status)
				if err != nil {
					return WrapExitError(ExitCommandError, "invalid --status", err)
				}
				filter = parsed
			}

			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				words, err := a.svc.ListWords(ctx, rootOpts.UserID, filter)
				if err != nil {
					return err
				}
				return a.out.Success(words, func(w io.Writer) {
					fmt.Fprintf(w, "%d word(s)\n", len(words))
					printWords(w, "Words", words)
				})
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only words in this state (new|learning|reviewing|mastered)")
	return cmd
}

func newWordSearchCommand(rootOpts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search <text>",
		Short: "Find words by text or meaning",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				words, err := a.svc.SearchWords(ctx, rootOpts.UserID, args[0], limit)
				if err != nil {
					return err
				}
				return a.out.Success(words, func(w io.Writer) {
					if len(words) == 0 {
						fmt.Fprintf(w, "No words match %q\n", args[0])
						return
					}
					printWords(w, "Matches", words)
				})
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of results")
	return cmd
}

func newWordHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "history <word-id>",
		Short: "Show the reviews of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordID, err := parseWordID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				logs, err := a.svc.History(ctx, rootOpts.UserID, wordID)
				if err != nil {
					return err
				}
				return a.out.Success(logs, func(w io.Writer) {
					printHistory(w, logs)
				})
			})
		},
	}
}

func newWordDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <word-id>",
		Short: "Delete a word and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wordID, err := parseWordID(args[0])
			if err != nil {
				return err
			}
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				if err := a.svc.DeleteWord(ctx, rootOpts.UserID, wordID); err != nil {
					return err
				}
				return a.out.Success(map[string]int64{"deleted": wordID}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted #%d\n", wordID)
				})
			})
		},
	}
}

func parseWordID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "invalid word id", err)
	}
	return id, nil
}

func printHistory(w io.Writer, logs []models.ReviewLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No reviews yet")
		return
	}
	for _, l := range logs {
		result := "wrong"
		if l.IsCorrect {
			result = "right"
		}
		fmt.Fprintf(w, "  %s  q=%d %-5s interval %dd, ease %.2f\n",
			l.ReviewedAt.Format("2006-01-02 15:04"), l.Quality, result, l.Interval, l.EaseFactor)
	}
}
