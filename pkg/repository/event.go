package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// EventRepository keeps idempotency keys of handled events
type EventRepository struct {
	db *sqlx.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Claim stores the key and reports whether it was stored by this call
func (r *EventRepository) Claim(ctx context.Context, key string) (bool, error) {
	var claimed bool
	err := withLockRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO processed_events (key) VALUES (?)", key)
		if err != nil {
			return fmt.Errorf("claim event key: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("claim event key, rows affected: %w", err)
		}
		claimed = n == 1
		return nil
	})
	return claimed, err
}

// Release removes the key so the event can be handled again
func (r *EventRepository) Release(ctx context.Context, key string) error {
	return withLockRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM processed_events WHERE key = ?", key); err != nil {
			return fmt.Errorf("release event key: %w", err)
		}
		return nil
	})
}

// Cleanup removes keys older than the given age and returns the number removed
func (r *EventRepository) Cleanup(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age).Format("2006-01-02 15:04:05")
	res, err := r.db.ExecContext(ctx, "DELETE FROM processed_events WHERE processed_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup event keys: %w", err)
	}
	return res.RowsAffected()
}
