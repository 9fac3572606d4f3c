package store

import (
	"context"
	"encoding/json"
	"fmt"

	"hostelhunt/internal/domain"

	"github.com/rs/zerolog"
)

// Slot holds a single JSON object under one key.
type Slot[T any] struct {
	kv     domain.KVStore
	key    string
	logger *zerolog.Logger
}

func NewSlot[T any](kv domain.KVStore, key string, logger *zerolog.Logger) *Slot[T] {
	return &Slot[T]{kv: kv, key: key, logger: logger}
}

// ClientKey scopes a slot key to one client.
func ClientKey(key, clientID string) string {
	return key + ":" + clientID
}

// Get returns nil when the slot is empty or unreadable.
func (s *Slot[T]) Get(ctx context.Context) (*T, error) {
	data, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.key, err)
	}
	if data == nil {
		return nil, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("corrupt slot, treating as empty")
		return nil, nil
	}
	return &v, nil
}

func (s *Slot[T]) Set(ctx context.Context, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", s.key, err)
	}
	if err := s.kv.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write %s: %w", s.key, err)
	}
	return nil
}

func (s *Slot[T]) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear %s: %w", s.key, err)
	}
	return nil
}
