package services

import "sync"

// Resources whose cached views can go stale after a lifecycle action.
const (
	ResourceAssets    = "assets"
	ResourceDashboard = "dashboard"
)

// InvalidationBus fans out "this resource is stale, refetch it" signals.
// Subscribers receive at-least-once notifications on a buffered channel;
// signals published while a subscriber is busy coalesce into one.
type InvalidationBus struct {
	mu   sync.Mutex
	subs map[string][]chan struct{}
}

func NewInvalidationBus() *InvalidationBus {
	return &InvalidationBus{subs: map[string][]chan struct{}{}}
}

// Subscribe returns a channel that fires whenever the named resource is
// invalidated. The channel is never closed.
func (b *InvalidationBus) Subscribe(resource string) <-chan struct{} {
	ch := make(chan struct{}, 1)
	b.mu.Lock()
	b.subs[resource] = append(b.subs[resource], ch)
	b.mu.Unlock()
	return ch
}

// Publish marks the named resources stale. Never blocks: a subscriber that
// already has a pending signal does not accumulate another.
func (b *InvalidationBus) Publish(resources ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, resource := range resources {
		for _, ch := range b.subs[resource] {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}
