// Package mutation applies create, update, delete and toggle operations to a
// plan collection. Operations never modify their input; each returns a new
// collection that the caller persists.
package mutation

import (
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/google/uuid"
)

// Ops holds the non-deterministic inputs of a mutation.
type Ops struct {
	Clock func() time.Time
	NewID func() string
}

// New returns Ops backed by the wall clock and random UUIDs.
func New() Ops {
	return Ops{
		Clock: func() time.Time { return time.Now().UTC() },
		NewID: func() string { return uuid.New().String() },
	}
}

func (o Ops) now() time.Time {
	if o.Clock == nil {
		return time.Now().UTC()
	}
	return o.Clock()
}

func (o Ops) id() string {
	if o.NewID == nil {
		return uuid.New().String()
	}
	return o.NewID()
}

// Create validates the draft and appends a new open plan.
func (o Ops) Create(plans domain.Collection, draft domain.Draft) (domain.Collection, domain.Plan, error) {
	title, err := domain.NormalizeTitle(draft.Title)
	if err != nil {
		return plans, domain.Plan{}, err
	}
	if err := domain.ValidateDate(draft.Date); err != nil {
		return plans, domain.Plan{}, err
	}

	taken := plans.IDs()
	id := o.id()
	for taken[id] {
		id = o.id()
	}

	p := domain.Plan{
		ID:        id,
		Title:     title,
		Date:      draft.Date,
		Category:  domain.CategoryOr(draft.Category, domain.DefaultCategory),
		Note:      draft.Note,
		Completed: false,
		CreatedAt: o.now(),
	}

	out := make(domain.Collection, 0, len(plans)+1)
	out = append(out, plans...)
	out = append(out, p)
	return out, p, nil
}

// Update replaces the mutable fields of the plan with id. ID, CreatedAt and
// Completed are kept.
func (o Ops) Update(plans domain.Collection, id string, patch domain.Patch) (domain.Collection, domain.Plan, error) {
	i := plans.IndexOf(id)
	if i < 0 {
		return plans, domain.Plan{}, &domain.NotFoundError{ID: id}
	}
	title, err := domain.NormalizeTitle(patch.Title)
	if err != nil {
		return plans, domain.Plan{}, err
	}
	if err := domain.ValidateDate(patch.Date); err != nil {
		return plans, domain.Plan{}, err
	}

	out := plans.Clone()
	p := out[i]
	p.Title = title
	p.Date = patch.Date
	p.Category = patch.Category
	p.Note = patch.Note
	out[i] = p
	return out, p, nil
}

// Remove drops the plan with id. Removing an absent ID returns an equal
// collection.
func (o Ops) Remove(plans domain.Collection, id string) domain.Collection {
	out := make(domain.Collection, 0, len(plans))
	for _, p := range plans {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// ToggleCompletion flips the completed flag of the plan with id.
func (o Ops) ToggleCompletion(plans domain.Collection, id string) (domain.Collection, domain.Plan, error) {
	i := plans.IndexOf(id)
	if i < 0 {
		return plans, domain.Plan{}, &domain.NotFoundError{ID: id}
	}
	out := plans.Clone()
	out[i].Completed = !out[i].Completed
	return out, out[i], nil
}

// Find returns the plan with id.
func Find(plans domain.Collection, id string) (domain.Plan, error) {
	i := plans.IndexOf(id)
	if i < 0 {
		return domain.Plan{}, &domain.NotFoundError{ID: id}
	}
	return plans[i], nil
}
