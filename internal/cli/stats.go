package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/session"
	"github.com/example/wordsrs/pkg/models"
)

// StatsReport is the payload of the stats command.
type StatsReport struct {
	Summary      *models.Summary       `json:"summary"`
	Goal         *session.GoalProgress `json:"goal"`
	Week         []models.DailyStats   `json:"week"`
	Achievements []string              `json:"achievements"`
	// MasteryTracking reports whether reviews can mark words as mastered.
	// Without it the mastered count only reflects imported or legacy rows.
	MasteryTracking bool `json:"mastery_tracking"`
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show learning progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, rootOpts, func(ctx context.Context, a *app) error {
				report, err := buildStats(ctx, a.svc, rootOpts.UserID)
				if err != nil {
					return err
				}
				report.MasteryTracking = a.cfg.MasteryTracking
				return a.out.Success(report, func(w io.Writer) { printStats(w, report) })
			})
		},
	}
}

func buildStats(ctx context.Context, svc *session.Service, userID string) (*StatsReport, error) {
	summary, err := svc.Summary(ctx, userID)
	if err != nil {
		return nil, err
	}
	goal, err := svc.DailyGoalProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	week, err := svc.WeeklyStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &StatsReport{
		Summary:      summary,
		Goal:         goal,
		Week:         week,
		Achievements: session.Achievements(week[len(week)-1], goal.Goal),
	}, nil
}

func printStats(w io.Writer, r *StatsReport) {
	s := r.Summary
	if r.MasteryTracking {
		fmt.Fprintf(w, "Words: %d (%d mastered, %d%%), reviews: %d, average ease %.2f\n",
			s.TotalWords, s.MasteredWords, s.AverageScore, s.ReviewCount, s.AverageEase)
	} else {
		fmt.Fprintf(w, "Words: %d, reviews: %d, average ease %.2f (mastery tracking off, set MASTERY_TRACKING=true)\n",
			s.TotalWords, s.ReviewCount, s.AverageEase)
	}
	fmt.Fprintf(w, "Streak: %d day(s), last study: %s\n", s.StreakDays, orDash(s.LastStudyDate))
	fmt.Fprintf(w, "Today: %d/%d new words learned, %d remaining\n", r.Goal.Progress, r.Goal.Goal, r.Goal.Remaining)

	fmt.Fprintln(w, "Last 7 days:")
	for _, d := range r.Week {
		fmt.Fprintf(w, "  %s  learned %-3d reviewed %-3d correct %d/%d  xp %d\n",
			d.Date, d.WordsLearned, d.WordsReviewed, d.CorrectAnswers, d.TotalQuestions, d.XPEarned)
	}
	for _, badge := range r.Achievements {
		fmt.Fprintf(w, "Achievement: %s\n", badge)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
