package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// UserAddOptions holds flags for the user add command.
type UserAddOptions struct {
	*RootOptions
	Name       string
	Goal       int
	MaxReviews int
	Inactive   bool
}

// NewUserCommand creates the user command group.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage learners",
	}
	cmd.AddCommand(newUserAddCommand(rootOpts))
	return cmd
}

func newUserAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UserAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <user-id>",
		Short: "Create a user or update its settings",
		Long: `Create a user or update its settings.

Example:
  wordsrs user add ada --name "Ada" --goal 10 --max-reviews 50
  wordsrs user add ada --inactive       # pause nightly maintenance
  wordsrs user add ada --inactive=false # resume it`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return addUser(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().IntVar(&opts.Goal, "goal", 0, "new words per day")
	cmd.Flags().IntVar(&opts.MaxReviews, "max-reviews", 0, "cap on due reviews per day (0 = unlimited)")
	cmd.Flags().BoolVar(&opts.Inactive, "inactive", false, "pause the user; paused users are skipped by the repair job")

	return cmd
}

func addUser(cmd *cobra.Command, opts *UserAddOptions, userID string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, cmd, opts.RootOptions)
	if err != nil {
		return err
	}
	defer a.Close()

	name := opts.Name
	if name == "" {
		name = userID
	}
	if _, err := a.svc.EnsureUser(ctx, userID, name); err != nil {
		return err
	}
	if cmd.Flags().Changed("goal") {
		if err := a.svc.SetDailyGoal(ctx, userID, opts.Goal); err != nil {
			return WrapExitError(ExitCommandError, "invalid --goal", err)
		}
	}
	if cmd.Flags().Changed("max-reviews") {
		if err := a.svc.SetMaxDailyReviews(ctx, userID, opts.MaxReviews); err != nil {
			return WrapExitError(ExitCommandError, "invalid --max-reviews", err)
		}
	}

	if cmd.Flags().Changed("inactive") {
		if err := a.svc.SetActive(ctx, userID, !opts.Inactive); err != nil {
			return err
		}
	}

	user, err := a.svc.EnsureUser(ctx, userID, name)
	if err != nil {
		return err
	}
	settings, err := a.svc.Settings(ctx, userID)
	if err != nil {
		return err
	}
	return a.out.Success(user, func(w io.Writer) {
		fmt.Fprintf(w, "User %s (%s): goal %d/day, level %d, %d XP\n",
			user.ID, user.DisplayName, user.DailyGoal, user.Level, user.XP)
		if !settings.IsActive {
			fmt.Fprintln(w, "Paused: skipped by the repair job")
		}
	})
}
