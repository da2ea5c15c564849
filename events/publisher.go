package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStreamMaxLen caps each stream; older entries are trimmed
// approximately.
const DefaultStreamMaxLen = 10000

// StreamPublisher appends events to Redis streams, one entry per event with
// the JSON-encoded Event under "event" and its type under "type".
type StreamPublisher struct {
	client *redis.Client
	maxLen int64
	now    func() time.Time
}

func NewStreamPublisher(client *redis.Client) *StreamPublisher {
	return &StreamPublisher{client: client, maxLen: DefaultStreamMaxLen, now: time.Now}
}

// WithMaxLen changes the stream cap. Zero disables trimming.
func (p *StreamPublisher) WithMaxLen(n int64) *StreamPublisher {
	p.maxLen = n
	return p
}

func (p *StreamPublisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := encodeEvent(Event{Type: eventType, Timestamp: p.now().UTC(), Data: data})
	if err != nil {
		return err
	}

	args := &redis.XAddArgs{
		Stream: stream,
		Values: map[string]any{"type": eventType, "event": payload},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("failed to publish %s to %s: %w", eventType, stream, err)
	}
	return nil
}

func encodeEvent(e Event) (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return string(raw), nil
}
