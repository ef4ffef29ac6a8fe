// internal/pkg/observable/observable.go
package observable

import (
	"context"
	"sync"
)

// Value is a shared state container observed by multiple views.
// Mutations replace the whole value, subscribers receive every replacement.
// A slow subscriber only ever lags by one value: pending deliveries are
// collapsed to the latest state.
type Value[T any] struct {
	mu      sync.Mutex
	current T
	nextID  int
	subs    map[int]chan T
}

// NewValue creates a container holding initial
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]chan T),
	}
}

// Get returns the current value
func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Set replaces the current value and notifies all subscribers
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.current = next
	for _, ch := range v.subs {
		// Latest value wins, never block the publisher
		select {
		case ch <- next:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- next:
			default:
			}
		}
	}
}

// Subscribe registers an observer. The returned channel is buffered one
// deep; when the observer lags, pending deliveries collapse to the latest
// value. It is closed when ctx is cancelled.
func (v *Value[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = ch
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
		close(ch)
	}()

	return ch
}

// Subscribers returns the current observer count
func (v *Value[T]) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
