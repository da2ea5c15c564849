package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// SubscriberConfig names the stream position a StreamSubscriber reads
// from. Zero BatchSize, BlockDuration and RetryDelay take defaults.
type SubscriberConfig struct {
	Group         string
	Consumer      string
	Stream        string
	Handler       Handler
	BatchSize     int64
	BlockDuration time.Duration
	RetryDelay    time.Duration
}

// StreamSubscriber consumes one Redis stream through a consumer group and
// hands every event to a Handler. Messages whose handler fails are left
// unacknowledged so the group redelivers them.
type StreamSubscriber struct {
	client *redis.Client
	cfg    SubscriberConfig
}

func NewStreamSubscriber(client *redis.Client, cfg SubscriberConfig) *StreamSubscriber {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = 5 * time.Second
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	return &StreamSubscriber{client: client, cfg: cfg}
}

// Start blocks until ctx is cancelled.
func (s *StreamSubscriber) Start(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.cfg.Stream, s.cfg.Group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	log.Printf("StreamSubscriber: started stream=%s group=%s consumer=%s", s.cfg.Stream, s.cfg.Group, s.cfg.Consumer)

	for {
		if err := s.readMessages(ctx); err != nil {
			if ctx.Err() != nil {
				break
			}
			log.Printf("StreamSubscriber: read error on %s: %v", s.cfg.Stream, err)
			select {
			case <-ctx.Done():
			case <-time.After(s.cfg.RetryDelay):
			}
		}
		if ctx.Err() != nil {
			break
		}
	}

	log.Printf("StreamSubscriber: stopping %s", s.cfg.Stream)
	return ctx.Err()
}

func (s *StreamSubscriber) readMessages(ctx context.Context) error {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.cfg.Group,
		Consumer: s.cfg.Consumer,
		Streams:  []string{s.cfg.Stream, ">"},
		Count:    s.cfg.BatchSize,
		Block:    s.cfg.BlockDuration,
	}).Result()

	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read from stream: %w", err)
	}

	for _, stream := range streams {
		for _, message := range stream.Messages {
			event, err := decodeMessage(message)
			if err != nil {
				// Malformed entries would be redelivered forever; drop them.
				log.Printf("StreamSubscriber: discarding message %s: %v", message.ID, err)
				s.ack(ctx, message.ID)
				continue
			}
			if err := s.cfg.Handler(ctx, event); err != nil {
				log.Printf("StreamSubscriber: handler failed for %s: %v", message.ID, err)
				continue
			}
			s.ack(ctx, message.ID)
		}
	}

	return nil
}

func (s *StreamSubscriber) ack(ctx context.Context, id string) {
	if err := s.client.XAck(ctx, s.cfg.Stream, s.cfg.Group, id).Err(); err != nil {
		log.Printf("StreamSubscriber: failed to ACK message %s: %v", id, err)
	}
}

func decodeMessage(message redis.XMessage) (Event, error) {
	eventData, ok := message.Values["event"].(string)
	if !ok {
		return Event{}, fmt.Errorf("invalid message format")
	}

	var event Event
	if err := json.Unmarshal([]byte(eventData), &event); err != nil {
		return Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return event, nil
}

// DecodeData re-decodes an event's payload into dst. Events read back from
// a stream carry their Data as generic JSON values; events from a Bus carry
// the original value, which is copied through JSON as well.
func DecodeData(event Event, dst any) error {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s data: %w", event.Type, err)
	}
	return nil
}
