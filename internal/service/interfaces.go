package service

import (
	"context"
	"time"

	"github.com/alexanderramin/planeasy/internal/domain"
	"github.com/alexanderramin/planeasy/internal/query"
)

// PlanService runs every plan use case as a load, mutate or query, save
// cycle against the PlanStore.
//
// Cycles are not serialized. Two interleaved cycles each save their own view
// of the collection, so the later save wins and the earlier change is lost.
type PlanService interface {
	List(ctx context.Context) (domain.Collection, error)
	// Get resolves ref as an exact ID, else as a unique ID prefix.
	Get(ctx context.Context, ref string) (domain.Plan, error)
	Create(ctx context.Context, draft domain.Draft) (domain.Plan, error)
	Update(ctx context.Context, id string, patch domain.Patch) (domain.Plan, error)
	Delete(ctx context.Context, id string) error
	ToggleCompletion(ctx context.Context, id string) (domain.Plan, error)
	Import(ctx context.Context, incoming domain.Collection, replace bool) (ImportResult, error)

	Dashboard(ctx context.Context, now time.Time) (query.Dashboard, error)
	Listing(ctx context.Context, category string) (query.Listing, error)
	Stats(ctx context.Context) (query.Stats, error)
	Location() *time.Location
}

// ImportResult summarizes an import merge.
type ImportResult struct {
	Added    int
	Replaced int
	Total    int
}
