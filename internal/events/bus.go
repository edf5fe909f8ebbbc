// Package events provides the in-process broadcast channel the viewer's
// subsystems use to react to preference mutations. Delivery is synchronous:
// Publish returns only after every handler registered at publish time has
// run, in subscription order.
package events

import (
	"sync"

	"github.com/lensbook/lensbook/internal/logger"
)

// Handler reacts to a published event. Handlers carry no payload; consumers
// re-consult the owning component's state instead.
type Handler func()

// Subscription detaches a handler from the bus.
type Subscription interface {
	Unsubscribe()
}

// Bus is a name-keyed publish/subscribe channel with synchronous delivery.
type Bus struct {
	log    *logger.Logger
	subs   map[string][]subscriptionEntry
	nextID int
	mu     sync.RWMutex
}

// NewBus creates an empty bus. The logger may be nil.
func NewBus(log *logger.Logger) *Bus {
	return &Bus{
		log:  log,
		subs: make(map[string][]subscriptionEntry),
	}
}

// Publish invokes every current subscriber of name before returning.
func (b *Bus) Publish(name string) {
	if b == nil {
		return
	}

	b.mu.RLock()
	handlers := append([]subscriptionEntry(nil), b.subs[name]...)
	b.mu.RUnlock()

	b.log.WithFields(map[string]any{"event": name, "handlers": len(handlers)}).Debug("publish")

	for _, entry := range handlers {
		if entry.handler != nil {
			entry.handler()
		}
	}
}

// Subscribe registers a handler for the provided event name.
func (b *Bus) Subscribe(name string, handler Handler) Subscription {
	if b == nil || handler == nil {
		return noopSubscription{}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriptionEntry{id: id, handler: handler})
	b.mu.Unlock()

	return subscription{
		cancel: func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			handlers := b.subs[name]
			for i, entry := range handlers {
				if entry.id == id {
					b.subs[name] = append(handlers[:i], handlers[i+1:]...)
					break
				}
			}
		},
	}
}

type noopSubscription struct{}

func (noopSubscription) Unsubscribe() {}

type subscription struct {
	cancel func()
}

func (s subscription) Unsubscribe() {
	if s.cancel != nil {
		s.cancel()
	}
}

type subscriptionEntry struct {
	id      int
	handler Handler
}
