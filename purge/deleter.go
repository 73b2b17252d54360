package purge

import (
	"context"
	"errors"
)

// Deleter executes single delete steps against a Store.
type Deleter struct {
	store Store
}

// NewDeleter creates a Deleter writing to store
func NewDeleter(store Store) *Deleter {
	return &Deleter{store: store}
}

// DeleteWhere removes the rows of collection matching pred and returns how many
// went away. Matching nothing is a success.
func (d *Deleter) DeleteWhere(ctx context.Context, collection string, pred Predicate) (int64, error) {
	if pred.Empty() {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, &DeletionError{Collection: collection, Predicate: pred.String(), Cause: err}
	}

	n, err := d.store.DeleteWhere(ctx, collection, pred)
	if errors.Is(err, ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, &DeletionError{Collection: collection, Predicate: pred.String(), Cause: err}
	}
	return n, nil
}

// Execute runs step for targets. The returned error carries the step number.
func (d *Deleter) Execute(ctx context.Context, step Step, t Targets) (int64, error) {
	n, err := d.DeleteWhere(ctx, step.Collection, step.Predicate(t))
	var delErr *DeletionError
	if errors.As(err, &delErr) {
		delErr.Step = step.Number
	}
	return n, err
}
