package storage

import (
	"context"
	"encoding/json"
	"log"
)

// ViewCache is a JSON-backed cache of read models on top of a KeyValue.
// Bind it to a specific type T; keys are prefixed so several caches can
// share one store.
type ViewCache[T any] struct {
	kv     KeyValue
	prefix string
}

// NewViewCache creates a ViewCache over kv.
func NewViewCache[T any](kv KeyValue, prefix string) *ViewCache[T] {
	return &ViewCache[T]{kv: kv, prefix: prefix}
}

// Get retrieves and unmarshals a value.
// Returns (nil, false) on any miss or deserialisation error.
func (c *ViewCache[T]) Get(ctx context.Context, key string) (*T, bool) {
	data, ok, err := c.kv.Get(ctx, c.prefix+key)
	if err != nil || !ok {
		return nil, false
	}
	var v T
	if err := json.Unmarshal([]byte(data), &v); err != nil {
		return nil, false
	}
	return &v, true
}

// Set marshals value and stores it under key.
// Errors are logged rather than returned; a cache write miss is non-fatal.
func (c *ViewCache[T]) Set(ctx context.Context, key string, value *T) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("ViewCache: marshal error for key %s: %v", c.prefix+key, err)
		return
	}
	if err := c.kv.Set(ctx, c.prefix+key, string(data)); err != nil {
		log.Printf("ViewCache: write error for key %s: %v", c.prefix+key, err)
	}
}

// Delete removes a key.
func (c *ViewCache[T]) Delete(ctx context.Context, key string) {
	if err := c.kv.Delete(ctx, c.prefix+key); err != nil {
		log.Printf("ViewCache: delete error for key %s: %v", c.prefix+key, err)
	}
}
