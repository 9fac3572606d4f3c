package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	repo := NewMemoryStore()
	ctx := context.Background()

	t.Run("SetAndGet", func(t *testing.T) {
		err := repo.Set(ctx, "k1", []byte(`{"a":1}`))
		require.NoError(t, err)

		got, err := repo.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, `{"a":1}`, string(got))
	})

	t.Run("GetMissing", func(t *testing.T) {
		got, err := repo.Get(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("ValuesAreCopied", func(t *testing.T) {
		val := []byte("abc")
		require.NoError(t, repo.Set(ctx, "k2", val))
		val[0] = 'x'

		got, err := repo.Get(ctx, "k2")
		require.NoError(t, err)
		assert.Equal(t, "abc", string(got))

		got[0] = 'y'
		again, _ := repo.Get(ctx, "k2")
		assert.Equal(t, "abc", string(again))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "k1"))
		got, err := repo.Get(ctx, "k1")
		require.NoError(t, err)
		assert.Nil(t, got)
		kept, err := repo.Get(ctx, "k2")
		require.NoError(t, err)
		assert.NotNil(t, kept)
		assert.NoError(t, repo.Ping(ctx))
	})
}
