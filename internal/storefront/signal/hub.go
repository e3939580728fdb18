// Package signal propagates key-changed notifications between storefront
// views, either in-process or across processes via Redis pub/sub, with a
// fixed-interval poller as the fallback when no signal channel exists.
package signal

import (
	"context"
	"sync"

	"github.com/teltechdev/teltech-backend/pkg/metrics"
)

// Handler reacts to a key-changed signal.
type Handler func(ctx context.Context, key string)

// Hub is an in-process change broadcaster. It implements kv.Notifier, so a
// kv.Store wired to a Hub signals every subscriber after each write. Delivery
// is synchronous and includes the subscriber that triggered the write;
// handlers re-read state rather than trusting any payload, so self-delivery
// is harmless.
type Hub struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
	sm       *metrics.SyncMetrics
}

func NewHub(sm *metrics.SyncMetrics) *Hub {
	return &Hub{handlers: make(map[int]Handler), sm: sm}
}

// Subscribe registers a handler and returns its unsubscribe function.
func (h *Hub) Subscribe(handler Handler) func() {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.handlers[id] = handler
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.handlers, id)
		h.mu.Unlock()
	}
}

// Publish delivers the changed key to every subscriber, the publisher
// included.
func (h *Hub) Publish(ctx context.Context, key string) error {
	h.mu.RLock()
	handlers := make([]Handler, 0, len(h.handlers))
	for _, handler := range h.handlers {
		handlers = append(handlers, handler)
	}
	h.mu.RUnlock()

	h.sm.IncSignal(key)
	for _, handler := range handlers {
		handler(ctx, key)
	}
	return nil
}
