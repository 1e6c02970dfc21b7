package cli

import (
	"strings"
	"time"

	"github.com/alexanderramin/planeasy/internal/cli/formatter"
	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// planeasyHuhTheme styles forms with the formatter palette: the field
// being edited in the header accent, every other field dimmed.
func planeasyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()
	accent := formatter.StyleHeader.UnsetBold()
	button := lipgloss.NewStyle().Padding(0, 1)

	f := &t.Focused
	f.Base = f.Base.BorderForeground(formatter.ColorHeader)
	f.Title = formatter.StyleHeader
	f.Description = formatter.StyleDim
	f.ErrorMessage = formatter.StyleRed
	f.SelectSelector = accent
	f.SelectedOption = formatter.StyleGreen
	f.UnselectedOption = formatter.StyleFg
	f.FocusedButton = button.Foreground(formatter.ColorFg).Background(formatter.ColorHeader)
	f.BlurredButton = button.Foreground(formatter.ColorDim)
	f.TextInput.Cursor = accent
	f.TextInput.Prompt = accent
	f.TextInput.Text = formatter.StyleFg
	f.TextInput.Placeholder = formatter.StyleDim

	b := &t.Blurred
	for _, st := range []*lipgloss.Style{
		&b.Title, &b.SelectSelector, &b.SelectedOption, &b.UnselectedOption,
		&b.TextInput.Prompt, &b.TextInput.Text,
	} {
		*st = formatter.StyleDim
	}
	return t
}

// planFormValues are the string fields bound to the plan form.
type planFormValues struct {
	title    string
	date     string
	clock    string
	category string
	note     string
}

// newPlanFormValues prefills a blank form with now, read in loc.
func newPlanFormValues(now time.Time, loc *time.Location) *planFormValues {
	local := now.In(loc)
	return &planFormValues{
		date:     local.Format(dateLayout),
		clock:    local.Format(clockLayout),
		category: domain.DefaultCategory,
	}
}

// planFormValuesFrom prefills the form from an existing plan.
func planFormValuesFrom(p domain.Plan, loc *time.Location) *planFormValues {
	local := p.Date.In(loc)
	return &planFormValues{
		title:    p.Title,
		date:     local.Format(dateLayout),
		clock:    local.Format(clockLayout),
		category: p.Category,
		note:     p.Note,
	}
}

func (v *planFormValues) instant(loc *time.Location) (time.Time, error) {
	return resolveInstant(v.date, v.clock, time.Now(), loc)
}

func (v *planFormValues) toDraft(loc *time.Location) (domain.Draft, error) {
	when, err := v.instant(loc)
	if err != nil {
		return domain.Draft{}, err
	}
	return domain.Draft{
		Title:    v.title,
		Date:     when,
		Category: v.category,
		Note:     strings.TrimSpace(v.note),
	}, nil
}

func (v *planFormValues) toPatch(loc *time.Location) (domain.Patch, error) {
	when, err := v.instant(loc)
	if err != nil {
		return domain.Patch{}, err
	}
	return domain.Patch{
		Title:    v.title,
		Date:     when,
		Category: v.category,
		Note:     strings.TrimSpace(v.note),
	}, nil
}

// categoryOptions offers the known categories, plus current when it is a
// custom label so editing never silently recategorizes a plan.
func categoryOptions(current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(domain.KnownCategories)+1)
	known := false
	for _, c := range domain.KnownCategories {
		opts = append(opts, huh.NewOption(c, c))
		if c == current {
			known = true
		}
	}
	if !known {
		opts = append(opts, huh.NewOption(domain.CategoryOr(current, domain.CategoryUncategorized), current))
	}
	return opts
}

func validateTitle(s string) error {
	_, err := domain.NormalizeTitle(s)
	return err
}

// newPlanForm builds the add/edit form bound to vals. Date and time are
// both required here; the form is always prefilled.
func newPlanForm(vals *planFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs doing?").
				CharLimit(domain.MaxTitleLen).
				Value(&vals.title).
				Validate(validateTitle),
			huh.NewInput().
				Title("Date").
				Description("YYYY-MM-DD").
				Value(&vals.date).
				Validate(validateDate),
			huh.NewInput().
				Title("Time").
				Description("HH:MM, 24-hour").
				Value(&vals.clock).
				Validate(validateClock),
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions(vals.category)...).
				Value(&vals.category),
			huh.NewInput().
				Title("Note").
				Placeholder("optional").
				Value(&vals.note),
		),
	).WithTheme(planeasyHuhTheme()).WithShowHelp(false)
}

// wizardConfirm creates a huh form for a yes/no confirmation.
func wizardConfirm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(planeasyHuhTheme()).WithShowHelp(false)
}
