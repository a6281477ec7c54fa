// Package scheduler publishes the daily news digest trigger and cleans up handled event keys.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/signalist/pkg/domain"
)

//go:generate moq -out mocks/publisher.go -pkg mocks -skip-ensure -fmt goimports . Publisher
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore
//go:generate moq -out mocks/event_cleaner.go -pkg mocks -skip-ensure -fmt goimports . EventCleaner

// lastDigestKey is the setting holding the day of the last published digest trigger
const lastDigestKey = "last_digest_day"

const dayFormat = "2006-01-02"

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, name string, data map[string]any) error
}

// SettingStore keeps the scheduler state between restarts
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// EventCleaner removes old idempotency keys
type EventCleaner interface {
	Cleanup(ctx context.Context, age time.Duration) (int64, error)
}

// Params configures Scheduler. Cleaner is optional.
type Params struct {
	Publisher       Publisher
	Settings        SettingStore
	Cleaner         EventCleaner
	DigestHour      int // UTC
	DigestMinute    int
	CheckInterval   time.Duration
	CleanupInterval time.Duration
	CleanupAge      time.Duration
	Now             func() time.Time
}

// Scheduler checks once per CheckInterval whether today's digest is due
type Scheduler struct {
	Params
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex // serializes digest checks
}

// NewScheduler creates a new scheduler instance
func NewScheduler(params Params) *Scheduler {
	if params.CheckInterval == 0 {
		params.CheckInterval = time.Minute
	}
	if params.CleanupInterval == 0 {
		params.CleanupInterval = 24 * time.Hour
	}
	if params.CleanupAge == 0 {
		params.CleanupAge = 7 * 24 * time.Hour
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &Scheduler{Params: params}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.digestWorker(ctx)

	if s.Cleaner != nil {
		s.wg.Add(1)
		go s.cleanupWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started, daily digest at %02d:%02d UTC, check interval %v",
		s.DigestHour, s.DigestMinute, s.CheckInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// digestWorker publishes the digest trigger once a day
func (s *Scheduler) digestWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.CheckInterval)
	defer ticker.Stop()

	// check immediately on start, catches up a digest missed while down
	if _, err := s.checkDigest(ctx); err != nil {
		lgr.Printf("[WARN] digest check failed: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.checkDigest(ctx); err != nil {
				lgr.Printf("[WARN] digest check failed: %v", err)
			}
		}
	}
}

// checkDigest publishes today's digest trigger if it is due and was not published yet.
// It returns true if the trigger was published.
func (s *Scheduler) checkDigest(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	due := time.Date(now.Year(), now.Month(), now.Day(), s.DigestHour, s.DigestMinute, 0, 0, time.UTC)
	if now.Before(due) {
		return false, nil
	}

	today := now.Format(dayFormat)
	last, err := s.Settings.GetSetting(ctx, lastDigestKey)
	if err != nil {
		return false, fmt.Errorf("get last digest day: %w", err)
	}
	if last == today {
		return false, nil
	}

	if err := s.publishDigest(ctx, today); err != nil {
		return false, err
	}
	if err := s.Settings.SetSetting(ctx, lastDigestKey, today); err != nil {
		return true, fmt.Errorf("store last digest day: %w", err)
	}
	return true, nil
}

// TriggerDigest publishes the digest trigger right away, outside of the daily schedule
func (s *Scheduler) TriggerDigest(ctx context.Context) error {
	lgr.Printf("[INFO] triggered immediate news digest")
	return s.publishDigest(ctx, s.Now().UTC().Format(dayFormat))
}

func (s *Scheduler) publishDigest(ctx context.Context, day string) error {
	if err := s.Publisher.Publish(ctx, domain.EventDailyNews, map[string]any{"day": day}); err != nil {
		return fmt.Errorf("publish digest trigger: %w", err)
	}
	lgr.Printf("[INFO] published news digest trigger for %s", day)
	return nil
}

// cleanupWorker periodically removes old handled event keys
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.CleanupInterval)
	defer ticker.Stop()

	s.cleanup(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *Scheduler) cleanup(ctx context.Context) {
	n, err := s.Cleaner.Cleanup(ctx, s.CleanupAge)
	if err != nil {
		lgr.Printf("[ERROR] failed to clean up event keys: %v", err)
		return
	}
	if n > 0 {
		lgr.Printf("[INFO] removed %d event keys older than %v", n, s.CleanupAge)
	}
}
