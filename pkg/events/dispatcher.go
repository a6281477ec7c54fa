// Package events publishes named events and delivers them to registered handlers.
// Delivery is at-least-once, a Deduplicator turns it into effectively-once per handler.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/umputun/signalist/pkg/domain"
	"github.com/umputun/signalist/pkg/metrics"
)

// Handler reacts to a delivered event
type Handler func(ctx context.Context, e domain.Event) error

// Transport carries published events to a Receiver
type Transport interface {
	Send(ctx context.Context, e domain.Event) error
}

// Receiver accepts events coming from a transport
type Receiver interface {
	Deliver(ctx context.Context, e domain.Event) error
}

// binder is implemented by in-process transports delivering straight to a Receiver
type binder interface {
	Bind(r Receiver)
}

// Deduplicator claims idempotency keys. Claim returns false if the key was claimed already.
type Deduplicator interface {
	Claim(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Option configures Dispatcher
type Option func(d *Dispatcher)

// WithDeduplicator sets the deduplicator used to skip repeated deliveries
func WithDeduplicator(dd Deduplicator) Option {
	return func(d *Dispatcher) { d.dedup = dd }
}

// WithMetrics sets metrics recorder
func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

// Dispatcher publishes events through a transport and runs handlers for delivered ones
type Dispatcher struct {
	transport Transport
	dedup     Deduplicator
	metrics   *metrics.Metrics

	mu       sync.RWMutex
	handlers map[string][]Handler
}

// NewDispatcher makes a dispatcher. In-process transports are bound to it right away.
func NewDispatcher(t Transport, opts ...Option) *Dispatcher {
	d := &Dispatcher{transport: t, handlers: make(map[string][]Handler)}
	for _, opt := range opts {
		opt(d)
	}
	if b, ok := t.(binder); ok {
		b.Bind(d)
	}
	return d
}

// OnEvent registers h for events with the given name
func (d *Dispatcher) OnEvent(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// Publish sends a new event with a unique id. It returns once the transport accepted the event,
// handlers run asynchronously.
func (d *Dispatcher) Publish(ctx context.Context, name string, data map[string]any) error {
	if name == "" {
		return fmt.Errorf("empty event name: %w", domain.ErrValidation)
	}
	e := domain.Event{ID: uuid.NewString(), Name: name, Data: data, Time: time.Now().UTC()}
	err := d.transport.Send(ctx, e)
	d.metrics.EventPublished(name, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w: %w", name, domain.ErrExternalService, err)
	}
	lgr.Printf("[DEBUG] published event %s (%s)", e.Name, e.ID)
	return nil
}

// Deliver runs every handler registered for the event. A handler already run for this event id
// is skipped, a failed handler releases its claim so a redelivery runs it again.
func (d *Dispatcher) Deliver(ctx context.Context, e domain.Event) error {
	d.mu.RLock()
	handlers := append([]Handler(nil), d.handlers[e.Name]...)
	d.mu.RUnlock()

	if len(handlers) == 0 {
		lgr.Printf("[DEBUG] no handlers for event %s (%s)", e.Name, e.ID)
		return nil
	}

	var errs []error
	for i, h := range handlers {
		key := fmt.Sprintf("%s/%s#%d", e.ID, e.Name, i)
		if !d.claim(ctx, key) {
			lgr.Printf("[INFO] skip duplicate event %s (%s), handler %d", e.Name, e.ID, i)
			d.metrics.EventHandled(e.Name, "duplicate")
			continue
		}
		if err := d.run(ctx, h, e); err != nil {
			d.metrics.EventHandled(e.Name, "error")
			d.release(ctx, key)
			errs = append(errs, fmt.Errorf("handler %d for %s: %w", i, e.Name, err))
			continue
		}
		d.metrics.EventHandled(e.Name, "ok")
	}
	return errors.Join(errs...)
}

// claim returns true if the handler should run. Without a deduplicator or on its failure
// the handler runs anyway.
func (d *Dispatcher) claim(ctx context.Context, key string) bool {
	if d.dedup == nil {
		return true
	}
	ok, err := d.dedup.Claim(ctx, key)
	if err != nil {
		lgr.Printf("[WARN] can't claim event key %s, running handler: %v", key, err)
		return true
	}
	return ok
}

func (d *Dispatcher) release(ctx context.Context, key string) {
	if d.dedup == nil {
		return
	}
	if err := d.dedup.Release(ctx, key); err != nil {
		lgr.Printf("[WARN] can't release event key %s: %v", key, err)
	}
}

// run calls h, turning a panic into an error
func (d *Dispatcher) run(ctx context.Context, h Handler, e domain.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, e)
}
