package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/example/wordsrs/internal/config"
	"github.com/example/wordsrs/internal/database"
	"github.com/example/wordsrs/internal/logging"
	"github.com/example/wordsrs/internal/session"
	srs "github.com/example/wordsrs/internal/spaced_repetition"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	DBPath  string // overrides DB_PATH and forces sqlite
	UserID  string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the wordsrs CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "wordsrs",
		Short: "Spaced-repetition vocabulary trainer",
		Long:  "Schedules vocabulary reviews with an SM-2 based algorithm and tracks daily progress.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, "invalid flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "sqlite database file (overrides DB_PATH)")
	cmd.PersistentFlags().StringVarP(&opts.UserID, "user", "u", "local", "user to act as")

	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewWordCommand(opts))
	cmd.AddCommand(NewTodayCommand(opts))
	cmd.AddCommand(NewReviewCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewRepairCommand(opts))
	cmd.AddCommand(NewWorkerCommand(opts))

	return cmd
}

// app bundles what a command needs once configuration is loaded.
type app struct {
	cfg     *config.Config
	db      *database.DB
	svc     *session.Service
	log     *log.Logger
	out     *OutputFormatter
	closers []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// openApp loads configuration, connects to the database and builds the
// session service. Callers must Close the returned app.
func openApp(ctx context.Context, cmd *cobra.Command, opts *RootOptions) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load configuration", err)
	}
	if opts.DBPath != "" {
		cfg.DBType = config.DBTypeSQLite
		cfg.DBPath = opts.DBPath
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	a := &app{cfg: cfg, out: &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}}

	if cfg.LogDir != "" {
		logger, closeLog, err := logging.NewFile(cfg.LogDir, level)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open log", err)
		}
		a.log = logger
		a.closers = append(a.closers, closeLog)
	} else {
		logger, err := logging.New(cmd.ErrOrStderr(), level)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid log level", err)
		}
		a.log = logger
	}

	db, err := database.Connect(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	a.db = db
	a.closers = append(a.closers, db.Close)

	svcOpts := session.Options{
		Location:         cfg.Location,
		DefaultDailyGoal: cfg.DefaultDailyGoal,
		Logger:           a.log,
	}
	if cfg.MasteryTracking {
		svcOpts.Mastery = srs.DefaultMasteryRule()
	}
	a.svc = session.New(db, svcOpts)
	return a, nil
}

// withApp runs fn with an opened app and the acting user, created on first use.
func withApp(cmd *cobra.Command, opts *RootOptions, fn func(ctx context.Context, a *app) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := openApp(ctx, cmd, opts)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.svc.EnsureUser(ctx, opts.UserID, opts.UserID); err != nil {
		return err
	}
	return fn(ctx, a)
}
