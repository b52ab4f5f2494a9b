// Package notify announces properties as the registry accepts them.
//
// Observers run synchronously on the registering goroutine, after the
// registry has released its lock, so an observer may read the registry.
package notify

import (
	"slices"
	"sync"
)

// Registration describes one property committed to the registry.
type Registration struct {
	// Key is the full property key, e.g. "preferences.TrayIconColor".
	Key string

	// Default is the property's default value (may be nil).
	Default any

	// NodeID is the id of the node that declared the property.
	NodeID string
}

// Observer is called once per registered property.
type Observer func(Registration)

// Subscription represents an active observer subscription.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier == nil {
		return
	}
	s.notifier.mu.Lock()
	delete(s.notifier.observers, s.id)
	s.notifier.mu.Unlock()
}

// Notifier fans registrations out to observers.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
	closed    bool
}

// New creates a Notifier with no observers.
func New() *Notifier {
	return &Notifier{observers: make(map[uint64]Observer)}
}

// Subscribe registers an observer for every registration.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer
	return &Subscription{id: id, notifier: n}
}

// NotifyRegister delivers r to the current observers in subscription order.
// A call that starts after Close has returned delivers nothing.
func (n *Notifier) NotifyRegister(r Registration) {
	n.mu.RLock()
	if n.closed {
		n.mu.RUnlock()
		return
	}
	ids := make([]uint64, 0, len(n.observers))
	for id := range n.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	observers := make([]Observer, 0, len(ids))
	for _, id := range ids {
		observers = append(observers, n.observers[id])
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(r)
	}
}

// Close stops delivery and drops all observers. Close is idempotent.
func (n *Notifier) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.closed = true
	clear(n.observers)
}
