package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
	"github.com/spf13/cobra"
)

// planFlags are the editable plan fields shared by add and edit.
type planFlags struct {
	title    string
	date     string
	clock    string
	category string
	note     string
}

func (f *planFlags) bind(cmd *cobra.Command, titleUsage string) {
	cmd.Flags().StringVar(&f.title, "title", "", titleUsage)
	cmd.Flags().StringVar(&f.date, "date", "", "Date as YYYY-MM-DD")
	cmd.Flags().StringVar(&f.clock, "time", "", "Time as HH:MM (24-hour)")
	cmd.Flags().StringVar(&f.category, "category", "", "Category: "+strings.Join(domain.KnownCategories, ", ")+", or any other label")
	cmd.Flags().StringVar(&f.note, "note", "", "Free-form note")
}

func newAddCmd(app *App) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a plan",
		Long: `Add a plan. Date and time default to now, category to Study.
A reminder is scheduled for the plan's date.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := app.Plans.Location()
			when, err := resolveInstant(f.date, f.clock, app.now(), loc)
			if err != nil {
				return err
			}

			p, err := app.Plans.Create(cmd.Context(), domain.Draft{
				Title:    f.title,
				Date:     when,
				Category: f.category,
				Note:     f.note,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(p.Title),
				formatter.Dim(formatter.FormatDay(p.Date, loc)+" "+formatter.FormatClock(p.Date, loc)),
				formatter.TruncID(p.ID))
			return nil
		},
	}

	f.bind(cmd, "Plan title (required, at most 50 characters)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newListCmd(app *App) *cobra.Command {
	var category string
	var pastDue bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List plans grouped by day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.Plans.Location()
			now := app.now()

			var listing query.Listing
			if pastDue {
				plans, err := app.Plans.List(ctx)
				if err != nil {
					return err
				}
				listing = query.BuildListing(query.PastDue(plans, now), category, loc)
			} else {
				var err error
				listing, err = app.Plans.Listing(ctx, category)
				if err != nil {
					return err
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatListing(listing, now, loc))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", domain.CategoryAll, "Only show this category")
	cmd.Flags().BoolVar(&pastDue, "past-due", false, "Only show open plans whose time has passed")
	return cmd
}

func newTodayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's open plans and overall progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Plans.Dashboard(cmd.Context(), app.now())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDashboard(d, app.Plans.Location()))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanDetail(p, app.now(), app.Plans.Location()))
			return nil
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	var f planFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit a plan",
		Long: `Edit a plan. Only the flags given are changed. Giving --date alone keeps
the time of day, and --time alone keeps the day. The reminder is rescheduled.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			loc := app.Plans.Location()

			existing, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}

			patch := domain.Patch{
				Title:    existing.Title,
				Date:     existing.Date,
				Category: existing.Category,
				Note:     existing.Note,
			}
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = f.title
			}
			if flags.Changed("date") || flags.Changed("time") {
				patch.Date, err = resolveInstant(f.date, f.clock, existing.Date, loc)
				if err != nil {
					return err
				}
			}
			if flags.Changed("category") {
				patch.Category = f.category
			}
			if flags.Changed("note") {
				patch.Note = f.note
			}

			p, err := app.Plans.Update(ctx, existing.ID, patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Updated %s %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(p.Title),
				formatter.TruncID(p.ID))
			return nil
		},
	}

	f.bind(cmd, "New title")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a plan between done and open",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			existing, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			p, err := app.Plans.ToggleCompletion(ctx, existing.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), toggleMessage(p))
			return nil
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a plan",
		Long:    "Delete a plan. On a terminal it asks first unless --yes is given.",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			existing, err := app.Plans.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if !yes && app.interactive() {
				question := fmt.Sprintf("Delete %q?", existing.Title)
				if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), question) {
					fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
					return nil
				}
			}
			if err := app.Plans.Delete(ctx, existing.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(existing.Title))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")
	return cmd
}

func toggleMessage(p domain.Plan) string {
	if p.Completed {
		return fmt.Sprintf("%s Done: %s", formatter.StyleGreen.Render("✔"), formatter.Bold(p.Title))
	}
	return fmt.Sprintf("%s Reopened: %s", formatter.StyleYellow.Render("○"), formatter.Bold(p.Title))
}
