package events

import (
	"context"
	"errors"
	"sync"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/signalist/pkg/domain"
)

// MemoryTransport delivers events in-process, each one in its own goroutine
type MemoryTransport struct {
	mu       sync.RWMutex
	receiver Receiver
	wg       sync.WaitGroup
}

// NewMemoryTransport makes an in-process transport
func NewMemoryTransport() *MemoryTransport {
	return &MemoryTransport{}
}

// Bind sets the receiver of sent events
func (m *MemoryTransport) Bind(r Receiver) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.receiver = r
}

// Send hands the event to the receiver asynchronously. Delivery outlives the caller's context.
func (m *MemoryTransport) Send(ctx context.Context, e domain.Event) error {
	m.mu.RLock()
	r := m.receiver
	m.mu.RUnlock()
	if r == nil {
		return errors.New("no receiver bound to memory transport")
	}

	dctx := context.WithoutCancel(ctx)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		if err := r.Deliver(dctx, e); err != nil {
			lgr.Printf("[WARN] event %s (%s) failed: %v", e.Name, e.ID, err)
		}
	}()
	return nil
}

// Wait blocks until all sent events are delivered
func (m *MemoryTransport) Wait() {
	m.wg.Wait()
}
