package repository

import (
	"context"
	"sync/atomic"
	"time"

	"hostelhunt/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverStore writes to primary and switches to fallback after a primary error.
// The primary is retried once the recovery interval has passed.
type FailoverStore struct {
	primary   domain.KVStore
	fallback  domain.KVStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	now       func() time.Time
}

func NewFailoverStore(primary, fallback domain.KVStore, logger *zerolog.Logger) *FailoverStore {
	return &FailoverStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// Degraded reports whether calls currently go to the fallback.
func (r *FailoverStore) Degraded() bool {
	return r.isDown.Load()
}

// Ping checks the primary. A primary without health reporting counts as healthy.
func (r *FailoverStore) Ping(ctx context.Context) error {
	if p, ok := r.primary.(domain.Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (r *FailoverStore) markDown(err error) {
	r.logger.Error().Err(err).Msg("primary store failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(r.now().UnixNano())
}

// usePrimary decides whether the next call should try the primary store.
func (r *FailoverStore) usePrimary() bool {
	if !r.isDown.Load() {
		return true
	}
	last := time.Unix(0, r.lastCheck.Load())
	return r.now().Sub(last) > recoveryInterval
}

func (r *FailoverStore) recovered() {
	if r.isDown.Swap(false) {
		r.logger.Info().Msg("primary store recovered")
	}
}

func (r *FailoverStore) Get(ctx context.Context, key string) ([]byte, error) {
	if r.usePrimary() {
		val, err := r.primary.Get(ctx, key)
		if err == nil {
			r.recovered()
			return val, nil
		}
		r.markDown(err)
	}

	return r.fallback.Get(ctx, key)
}

func (r *FailoverStore) Set(ctx context.Context, key string, value []byte) error {
	if r.usePrimary() {
		err := r.primary.Set(ctx, key, value)
		if err == nil {
			r.recovered()
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.Set(ctx, key, value)
}

func (r *FailoverStore) Delete(ctx context.Context, key string) error {
	if r.usePrimary() {
		err := r.primary.Delete(ctx, key)
		if err == nil {
			r.recovered()
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.Delete(ctx, key)
}
