package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/beesaferoot/gorm-purge/internal/models"
	"github.com/beesaferoot/gorm-purge/purge"
)

// DefaultBatchSize bounds the bind parameters of one statement. Postgres
// rejects more than 65535 and sqlite builds commonly cap at 32766.
const DefaultBatchSize = 10000

// GormStore implements purge.Store and purge.Transactor on top of gorm.
type GormStore struct {
	db        *gorm.DB
	batchSize int
}

// New creates a GormStore using db
func New(db *gorm.DB) *GormStore {
	return &GormStore{db: db, batchSize: DefaultBatchSize}
}

// WithBatchSize returns a copy of s that issues one statement per n predicate
// values.
func (s *GormStore) WithBatchSize(n int) *GormStore {
	return &GormStore{db: s.db, batchSize: n}
}

// DB returns the underlying handle.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// SelectIDs returns the primary keys of rows in collection matching pred.
func (s *GormStore) SelectIDs(ctx context.Context, collection string, pred purge.Predicate) ([]string, error) {
	ids := []string{}
	if pred.Empty() {
		return ids, nil
	}

	model, err := newModel(collection)
	if err != nil {
		return nil, err
	}

	batches := pred.Batches(s.batchSize)
	for _, batch := range batches {
		var found []string
		if err := s.db.WithContext(ctx).Model(model).Where(condition(batch)).Pluck("id", &found).Error; err != nil {
			return nil, fmt.Errorf("failed to select ids from %s: %w", collection, err)
		}
		ids = append(ids, found...)
	}
	if len(batches) > 1 {
		// a row can match several batches
		ids = lo.Uniq(ids)
	}
	return ids, nil
}

// CountWhere counts rows in collection matching pred.
func (s *GormStore) CountWhere(ctx context.Context, collection string, pred purge.Predicate) (int64, error) {
	if pred.Empty() {
		return 0, nil
	}

	model, err := newModel(collection)
	if err != nil {
		return 0, err
	}

	if len(pred.Batches(s.batchSize)) > 1 {
		ids, err := s.SelectIDs(ctx, collection, pred)
		if err != nil {
			return 0, err
		}
		return int64(len(ids)), nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(model).Where(condition(pred)).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

// DeleteWhere hard-deletes rows in collection matching pred, one statement
// per batch. Outside a transaction a failed batch leaves earlier batches
// deleted.
func (s *GormStore) DeleteWhere(ctx context.Context, collection string, pred purge.Predicate) (int64, error) {
	if pred.Empty() {
		return 0, nil
	}

	model, err := newModel(collection)
	if err != nil {
		return 0, err
	}

	var total int64
	for _, batch := range pred.Batches(s.batchSize) {
		result := s.db.WithContext(ctx).Unscoped().Where(condition(batch)).Delete(model)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			continue
		}
		if result.Error != nil {
			return total, fmt.Errorf("failed to delete from %s: %w", collection, result.Error)
		}
		total += result.RowsAffected
	}
	return total, nil
}

// InTransaction runs fn against a store bound to one database transaction.
// The transaction commits only if fn returns nil.
func (s *GormStore) InTransaction(ctx context.Context, fn func(purge.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, batchSize: s.batchSize})
	})
}

// AutoMigrate creates or updates the tables of every collection.
func (s *GormStore) AutoMigrate() error {
	if err := s.db.AutoMigrate(models.MigrationOrder()...); err != nil {
		return fmt.Errorf("failed to migrate collections: %w", err)
	}
	return nil
}

// condition turns a predicate into a gorm OR expression with quoted columns.
func condition(pred purge.Predicate) clause.Expression {
	exprs := make([]clause.Expression, 0, len(pred.Clauses))
	for _, c := range pred.Clauses {
		column := clause.Column{Name: c.Column}
		switch len(c.Values) {
		case 0:
			continue
		case 1:
			exprs = append(exprs, clause.Eq{Column: column, Value: c.Values[0]})
		default:
			values := make([]interface{}, len(c.Values))
			for i, v := range c.Values {
				values[i] = v
			}
			exprs = append(exprs, clause.IN{Column: column, Values: values})
		}
	}
	return clause.Or(exprs...)
}

func newModel(collection string) (interface{}, error) {
	model, ok := models.CollectionRegistry[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	return reflect.New(reflect.TypeOf(model).Elem()).Interface(), nil
}
