package purge

import (
	"context"
	"errors"
)

// ErrNoRows may be returned by a Store that reports an empty match as an error.
// The deleter treats it as zero affected rows.
var ErrNoRows = errors.New("no rows matched")

// Store is the row-level capability the purge needs from the database.
type Store interface {
	SelectIDs(ctx context.Context, collection string, pred Predicate) ([]string, error)
	CountWhere(ctx context.Context, collection string, pred Predicate) (int64, error)
	DeleteWhere(ctx context.Context, collection string, pred Predicate) (int64, error)
}

// Transactor is implemented by stores that can run several deletes atomically.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(Store) error) error
}

// IdentityProvider removes accounts from the external identity system.
// Revoking an account that no longer exists must succeed.
type IdentityProvider interface {
	RevokeIdentity(ctx context.Context, userID string) error
}
