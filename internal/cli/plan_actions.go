package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

// wizardCompleteOutput returns a wizardCompleteMsg that displays a message string.
func wizardCompleteOutput(msg string) tea.Msg {
	return wizardCompleteMsg{nextCmd: outputCmd(msg)}
}

// actionResult runs fn after a wizard has been popped and shows its result
// or its error.
func actionResult(fn func() (string, error)) tea.Msg {
	msg, err := fn()
	if err != nil {
		return cmdOutputMsg{output: shellError(err)}
	}
	return cmdOutputMsg{output: msg}
}

// startAddPlanWizard opens the plan form prefilled with the current minute
// and the list's category filter, and creates the plan on submit.
func startAddPlanWizard(state *SharedState) tea.Cmd {
	loc := state.Location()
	vals := newPlanFormValues(state.Now(), loc)
	if c := state.Category; c != "" && c != domain.CategoryAll {
		vals.category = c
	}

	form := newPlanForm(vals)
	return startWizardCmd("Add Plan", form, func() tea.Cmd {
		return func() tea.Msg {
			return actionResult(func() (string, error) {
				draft, err := vals.toDraft(loc)
				if err != nil {
					return "", err
				}
				p, err := state.App.Plans.Create(state.Context(), draft)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s Added %s %s",
					formatter.StyleGreen.Render("✔"),
					formatter.Bold(p.Title),
					formatter.Dim(formatter.FormatDay(p.Date, loc)+" "+formatter.FormatClock(p.Date, loc))), nil
			})
		}
	})
}

// startEditPlanWizard opens the plan form prefilled from p and saves the
// edited fields on submit. Completion status is left alone.
func startEditPlanWizard(state *SharedState, p domain.Plan) tea.Cmd {
	loc := state.Location()
	vals := planFormValuesFrom(p, loc)

	form := newPlanForm(vals)
	return startWizardCmd("Edit Plan", form, func() tea.Cmd {
		return func() tea.Msg {
			return actionResult(func() (string, error) {
				patch, err := vals.toPatch(loc)
				if err != nil {
					return "", err
				}
				updated, err := state.App.Plans.Update(state.Context(), p.ID, patch)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%s Updated %s",
					formatter.StyleGreen.Render("✔"),
					formatter.Bold(updated.Title)), nil
			})
		}
	})
}

// execTogglePlan flips a plan's completion, reports the new state and
// refreshes every view.
func execTogglePlan(state *SharedState, id string) tea.Cmd {
	app := state.App
	return func() tea.Msg {
		p, err := app.Plans.ToggleCompletion(state.Context(), id)
		if err != nil {
			return cmdOutputMsg{output: shellError(err)}
		}
		return tea.BatchMsg{outputCmd(toggleMessage(p)), refreshViews()}
	}
}

// execConfirmDelete pushes a confirmation wizard and runs deleteFn under ctx
// if confirmed.
func execConfirmDelete(ctx context.Context, prompt, title string, deleteFn func(ctx context.Context) error) tea.Cmd {
	var confirmed bool
	form := wizardConfirm(prompt, &confirmed)
	return pushView(newWizardView("Confirm Delete", form, func() tea.Cmd {
		if !confirmed {
			return outputCmd(formatter.Dim("Cancelled."))
		}
		return func() tea.Msg {
			return actionResult(func() (string, error) {
				if err := deleteFn(ctx); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s Deleted %s",
					formatter.StyleGreen.Render("✔"),
					formatter.Bold(title)), nil
			})
		}
	}))
}

// execDeletePlan asks for confirmation, then deletes p.
func execDeletePlan(state *SharedState, p domain.Plan) tea.Cmd {
	return execConfirmDelete(state.Context(), fmt.Sprintf("Delete %q?", p.Title), p.Title, func(ctx context.Context) error {
		return state.App.Plans.Delete(ctx, p.ID)
	})
}
