package cli

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/notify"
	"github.com/alexanderramin/planeasy/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ReminderQueue is the queue-backed side of the reminder scheduler.
type ReminderQueue interface {
	Pending(ctx context.Context) ([]*domain.Reminder, error)
	Deliver(ctx context.Context, now time.Time, sink notify.Sink) (int, error)
}

// App holds references to the services used by CLI commands and the TUI.
type App struct {
	Plans service.PlanService
	// Reminders is nil unless reminders are queued (notify.mode=queue).
	Reminders ReminderQueue

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// HistoryPath is the TUI command history file. Empty disables history.
	HistoryPath string
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// GlobalFlags are the persistent flags that shape how the App is wired.
// main parses them ahead of cobra, since they decide which database and
// config the command tree runs against.
type GlobalFlags struct {
	Config   string
	DB       string
	LogLevel string
}

// Bind registers the global flags on fs.
func (g *GlobalFlags) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&g.Config, "config", "", "Config file (default ~/.planeasy/config.yaml)")
	fs.StringVar(&g.DB, "db", "", "SQLite database path (overrides store.path)")
	fs.StringVar(&g.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// ParseGlobalFlags extracts the global flags from args, ignoring everything
// else.
func ParseGlobalFlags(args []string) (GlobalFlags, error) {
	var g GlobalFlags
	fs := pflag.NewFlagSet("planeasy", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	g.Bind(fs)
	if err := fs.Parse(args); err != nil && !errors.Is(err, pflag.ErrHelp) {
		return g, err
	}
	return g, nil
}

// NewRootCmd creates the top-level "planeasy" command and registers all
// subcommands against the provided App. With no arguments it opens the TUI
// when attached to a terminal, and prints help otherwise.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "planeasy",
		Short:         "Personal plan tracker",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	var globals GlobalFlags
	globals.Bind(root.PersistentFlags())

	root.AddCommand(
		newAddCmd(app),
		newListCmd(app),
		newTodayCmd(app),
		newShowCmd(app),
		newEditCmd(app),
		newDoneCmd(app),
		newRemoveCmd(app),
		newStatsCmd(app),
		newCategoriesCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newRemindersCmd(app),
		newTUICmd(app),
	)

	return root
}
