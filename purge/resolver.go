package purge

import (
	"context"
	"slices"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/beesaferoot/gorm-purge/internal/models"
)

// Resolver discovers the properties and tenants that depend on a user.
type Resolver struct {
	store Store
}

// NewResolver creates a Resolver reading from store
func NewResolver(store Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the user's properties and the union of tenants linked to the
// user directly or through one of those properties. Any failed lookup aborts
// resolution with a *ResolutionError and no partial ids.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Targets, error) {
	byOwner := Eq("owner_id", userID)
	propertyIDs, err := r.store.SelectIDs(ctx, models.Properties, byOwner)
	if err != nil {
		return Targets{}, &ResolutionError{Collection: models.Properties, Predicate: byOwner.String(), Cause: err}
	}
	propertyIDs = normalize(propertyIDs)

	var byLandlordIDs, byPropertyIDs []string

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		pred := Eq("landlord_id", userID)
		ids, err := r.store.SelectIDs(gCtx, models.Tenants, pred)
		if err != nil {
			return &ResolutionError{Collection: models.Tenants, Predicate: pred.String(), Cause: err}
		}
		byLandlordIDs = ids
		return nil
	})
	if len(propertyIDs) > 0 {
		g.Go(func() error {
			pred := In("property_id", propertyIDs)
			ids, err := r.store.SelectIDs(gCtx, models.Tenants, pred)
			if err != nil {
				return &ResolutionError{Collection: models.Tenants, Predicate: pred.String(), Cause: err}
			}
			byPropertyIDs = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Targets{}, err
	}

	return Targets{
		UserID:      userID,
		PropertyIDs: propertyIDs,
		TenantIDs:   normalize(lo.Union(byLandlordIDs, byPropertyIDs)),
	}, nil
}

// normalize drops empty and duplicate ids and sorts the rest.
func normalize(ids []string) []string {
	out := lo.Uniq(lo.Compact(ids))
	slices.Sort(out)
	return out
}
