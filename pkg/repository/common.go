package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// errNoRetry marks errors repeater should give up on
var errNoRetry = errors.New("no retry")

// withLockRetry runs fn, retrying with backoff while sqlite reports lock errors
func withLockRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	var lastErr error
	err := retrier.Do(ctx, func() error {
		lastErr = fn()
		if lastErr != nil && !isLockError(lastErr) {
			return errNoRetry
		}
		return lastErr
	}, errNoRetry)
	if err != nil && lastErr != nil {
		return lastErr
	}
	return err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}
