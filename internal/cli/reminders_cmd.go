package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/notify"
	"github.com/spf13/cobra"
)

var errRemindersDisabled = errors.New("reminders are not queued; set notify.mode to queue")

func newRemindersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect and deliver queued plan reminders",
	}
	cmd.AddCommand(
		newRemindersListCmd(app),
		newRemindersDeliverCmd(app),
	)
	return cmd
}

func newRemindersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List reminders that have not been delivered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Reminders == nil {
				return errRemindersDisabled
			}
			pending, err := app.Reminders.Pending(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReminders(pending, app.Plans.Location()))
			return nil
		},
	}
}

func newRemindersDeliverCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deliver",
		Short: "Print every reminder that is due and mark it delivered",
		Long: `Print every due reminder and mark it delivered. Meant to run from cron
or a systemd timer. A failure delivers nothing, so the next run retries.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Reminders == nil {
				return errRemindersDisabled
			}
			n, err := app.Reminders.Deliver(cmd.Context(), app.now(), notify.WriterSink{W: cmd.OutOrStdout()})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("%d reminder(s) delivered", n)))
			return nil
		},
	}
}
