package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
)

// SeenRepository tracks gift event identifiers already delivered to the
// handler. The backing table is owned by a single monitor instance at a time,
// concurrent writers from other processes are not supported.
type SeenRepository struct {
	db *sqlx.DB
}

// NewSeenRepository creates a new seen-set repository
func NewSeenRepository(db *sqlx.DB) *SeenRepository {
	return &SeenRepository{db: db}
}

// Contains reports whether the identifier was recorded before
func (r *SeenRepository) Contains(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM seen_events WHERE id = ?)", id)
	if err != nil {
		return false, fmt.Errorf("check seen event: %w", err)
	}
	return exists, nil
}

// Record persists all identifiers in one transaction, either the whole batch
// is recorded or none of it. Duplicate identifiers are ignored.
func (r *SeenRepository) Record(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("begin record tx: %w", err)}
		}

		for _, id := range ids {
			if _, err := tx.ExecContext(ctx,
				"INSERT OR IGNORE INTO seen_events (id) VALUES (?)", id); err != nil {
				_ = tx.Rollback()
				if isLockError(err) {
					return err // repeater will retry this
				}
				return &criticalError{err: fmt.Errorf("record event %s: %w", id, err)}
			}
		}

		if err := tx.Commit(); err != nil {
			if isLockError(err) {
				return err // repeater will retry this
			}
			return &criticalError{err: fmt.Errorf("commit record tx: %w", err)}
		}
		return nil
	})
}

// Count returns the number of recorded identifiers
func (r *SeenRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM seen_events"); err != nil {
		return 0, fmt.Errorf("count seen events: %w", err)
	}
	return count, nil
}
