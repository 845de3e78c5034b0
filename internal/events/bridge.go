// Package events carries the expiration signal from the countdown timer's
// tick goroutine to the foreground observer. The bridge is a single-slot
// publish/subscribe channel injected into both components at construction,
// so neither needs to know the other's lifecycle.
package events

import "sync"

// Expiration reports that a countdown session ran the bank down to zero.
type Expiration struct {
	App string
}

// Bridge is a single-subscriber expiration channel. Publishing with no
// subscriber is a silent no-op; a second subscriber replaces the first.
type Bridge struct {
	mu  sync.Mutex
	sub chan Expiration
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Subscribe registers the (single) subscriber and returns its channel.
// The channel is buffered so the timer goroutine never blocks on a slow
// consumer; if the slot is full the newest event wins.
func (b *Bridge) Subscribe() <-chan Expiration {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sub = make(chan Expiration, 1)
	return b.sub
}

// Unsubscribe drops the current subscriber.
func (b *Bridge) Unsubscribe() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sub = nil
}

// Publish delivers an expiration to the subscriber, if any. If the slot
// already holds an undelivered event it is replaced, so the subscriber
// always observes the most recent expiration.
func (b *Bridge) Publish(app string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sub == nil {
		return
	}
	select {
	case b.sub <- Expiration{App: app}:
	default:
		select {
		case <-b.sub:
		default:
		}
		select {
		case b.sub <- Expiration{App: app}:
		default:
		}
	}
}
