package events

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"
)

type subscription struct {
	stream  string
	handler Handler
}

// Bus is an in-process Publisher that fans events out to subscribers
// synchronously, in subscription order. Data is passed by reference, not
// serialized.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]subscription
	now  func() time.Time
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]subscription), now: time.Now}
}

// Subscribe registers h for events on stream and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(stream string, h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = subscription{stream: stream, handler: h}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers the event to every subscriber of stream. Handler errors
// are logged; they never fail the publish.
func (b *Bus) Publish(ctx context.Context, stream, eventType string, data any) error {
	event := Event{
		Type:      eventType,
		Timestamp: b.now().UTC(),
		Data:      data,
	}

	for _, h := range b.handlers(stream) {
		if err := h(ctx, event); err != nil {
			log.Printf("Bus: handler error for %s on %s: %v", eventType, stream, err)
		}
	}
	return nil
}

// Subscribers reports how many handlers listen on stream.
func (b *Bus) Subscribers(stream string) int {
	return len(b.handlers(stream))
}

func (b *Bus) handlers(stream string) []Handler {
	b.mu.RLock()
	defer b.mu.RUnlock()

	ids := make([]int, 0, len(b.subs))
	for id, s := range b.subs {
		if s.stream == stream {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	out := make([]Handler, len(ids))
	for i, id := range ids {
		out[i] = b.subs[id].handler
	}
	return out
}

// Fanout publishes to every publisher in turn, returning the first error
// after trying them all.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, stream, eventType string, data any) error {
	var first error
	for _, p := range f {
		if err := p.Publish(ctx, stream, eventType, data); err != nil && first == nil {
			first = err
		}
	}
	return first
}
