// Package store maps typed collections and slots onto a key-value backend.
// Each key holds one JSON document.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"hostelhunt/internal/domain"

	"github.com/rs/zerolog"
)

var keyLocks sync.Map

// lockFor returns the process-wide mutex guarding writes to key.
func lockFor(key string) *sync.Mutex {
	mu, _ := keyLocks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Collection is a JSON array of T stored under one key.
type Collection[T any] struct {
	kv     domain.KVStore
	key    string
	mu     *sync.Mutex
	logger *zerolog.Logger
}

func NewCollection[T any](kv domain.KVStore, key string, logger *zerolog.Logger) *Collection[T] {
	return &Collection[T]{
		kv:     kv,
		key:    key,
		mu:     lockFor(key),
		logger: logger,
	}
}

// raw returns the stored elements undecoded. Missing or corrupt documents read as empty.
func (c *Collection[T]) raw(ctx context.Context) ([]json.RawMessage, bool, error) {
	data, err := c.kv.Get(ctx, c.key)
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", c.key, err)
	}
	if data == nil {
		return nil, false, nil
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		c.logger.Warn().Err(err).Str("key", c.key).Msg("corrupt collection, treating as empty")
		return nil, true, nil
	}
	return elems, true, nil
}

// All decodes every element. Elements that fail to decode are skipped.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	elems, _, err := c.raw(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(elems))
	for i, el := range elems {
		var v T
		if err := json.Unmarshal(el, &v); err != nil {
			c.logger.Warn().Err(err).Str("key", c.key).Int("index", i).Msg("skipping undecodable record")
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// Initialized reports whether the key has ever been written.
func (c *Collection[T]) Initialized(ctx context.Context) (bool, error) {
	_, ok, err := c.raw(ctx)
	return ok, err
}

func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.write(ctx, data)
}

// Append adds items at the end. Existing elements keep their stored bytes.
func (c *Collection[T]) Append(ctx context.Context, items ...T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	elems, _, err := c.raw(ctx)
	if err != nil {
		return err
	}
	for _, item := range items {
		el, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("encode %s record: %w", c.key, err)
		}
		elems = append(elems, el)
	}
	return c.writeRaw(ctx, elems)
}

// AppendUnless adds item unless an existing element matches exists.
// The scan and the write happen under the key lock. It reports whether item was added.
func (c *Collection[T]) AppendUnless(ctx context.Context, item T, exists func(T) bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elems, _, err := c.raw(ctx)
	if err != nil {
		return false, err
	}
	for _, el := range elems {
		var v T
		if err := json.Unmarshal(el, &v); err == nil && exists(v) {
			return false, nil
		}
	}

	el, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("encode %s record: %w", c.key, err)
	}
	return true, c.writeRaw(ctx, append(elems, el))
}

// RemoveWhere drops every element matching pred and returns how many were removed.
// Surviving elements are written back byte for byte. Nothing is written when no element matches.
func (c *Collection[T]) RemoveWhere(ctx context.Context, pred func(T) bool) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elems, _, err := c.raw(ctx)
	if err != nil {
		return 0, err
	}

	kept := make([]json.RawMessage, 0, len(elems))
	removed := 0
	for _, el := range elems {
		var v T
		if err := json.Unmarshal(el, &v); err == nil && pred(v) {
			removed++
			continue
		}
		kept = append(kept, el)
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, c.writeRaw(ctx, kept)
}

func (c *Collection[T]) writeRaw(ctx context.Context, elems []json.RawMessage) error {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, el := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(el)
	}
	buf.WriteByte(']')
	return c.write(ctx, buf.Bytes())
}

func (c *Collection[T]) write(ctx context.Context, data []byte) error {
	if err := c.kv.Set(ctx, c.key, data); err != nil {
		return fmt.Errorf("write %s: %w", c.key, err)
	}
	return nil
}
