package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/models"
	"hostelhunt/internal/repository"
	"hostelhunt/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAccountService_SignUp(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	before, err := h.users.All(ctx)
	require.NoError(t, err)

	session, err := h.account.SignUp(ctx, "c1", models.SignUpInput{
		Name: "  Bob ", Email: " Bob@Example.com ", Password: "secret", Role: "Owner",
	})
	require.NoError(t, err)
	assert.Equal(t, models.Session{Name: "Bob", Email: "bob@example.com", Role: models.RoleOwner}, *session)

	after, err := h.users.All(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)
	last := after[len(after)-1]
	assert.Equal(t, fixedNow.UnixMilli(), last.ID)
	assert.Equal(t, "secret", last.Password)

	stored, err := h.sessions.GetSession(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, session, stored)

	h.bus.AssertCalled(t, "PublishJSON", events.EventUserSignedUp, mock.Anything)
}

func TestAccountService_SignUpDefaultsRole(t *testing.T) {
	h := newHarness()
	session, err := h.account.SignUp(context.Background(), "c1", models.SignUpInput{
		Name: "Carol", Email: "carol@example.com", Password: "x",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, session.Role)
}

func TestAccountService_SignUpErrors(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	tests := []struct {
		name string
		in   models.SignUpInput
		want error
	}{
		{"blank name", models.SignUpInput{Email: "a@b.c", Password: "x"}, domain.ErrValidation},
		{"blank email", models.SignUpInput{Name: "A", Email: "   ", Password: "x"}, domain.ErrValidation},
		{"blank password", models.SignUpInput{Name: "A", Email: "a@b.c"}, domain.ErrValidation},
		{"unknown role", models.SignUpInput{Name: "A", Email: "a@b.c", Password: "x", Role: "root"}, domain.ErrValidation},
		{"duplicate email", models.SignUpInput{Name: "A", Email: "ALICE@example.com", Password: "x"}, domain.ErrDuplicateEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, _ := h.users.All(ctx)
			_, err := h.account.SignUp(ctx, "c-err", tt.in)
			assert.ErrorIs(t, err, tt.want)

			after, _ := h.users.All(ctx)
			assert.Len(t, after, len(before))
			session, _ := h.sessions.GetSession(ctx, "c-err")
			assert.Nil(t, session)
		})
	}
}

func TestAccountService_LogIn(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	tests := []struct {
		email string
		pass  string
		dest  models.Destination
	}{
		{"alice@example.com", "pass123", models.DestinationListing},
		{" OWNER@example.com", "owner123", models.DestinationOwner},
		{"admin@example.com", "admin123", models.DestinationAdmin},
	}
	for _, tt := range tests {
		res, err := h.account.LogIn(ctx, "c1", tt.email, tt.pass)
		require.NoError(t, err, tt.email)
		assert.Equal(t, tt.dest, res.Destination)

		stored, err := h.sessions.GetSession(ctx, "c1")
		require.NoError(t, err)
		assert.Equal(t, res.Session, *stored)
	}
}

func TestAccountService_LogInFailures(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	_, err := h.account.LogIn(ctx, "c1", "alice@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = h.account.LogIn(ctx, "c1", "nobody@example.com", "pass123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = h.account.LogIn(ctx, "c1", "", "pass123")
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "Enter email and password", domain.UserMessage(err))

	session, err := h.sessions.GetSession(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestAccountService_LogOut(t *testing.T) {
	h := newHarness()
	h.seed()
	ctx := context.Background()

	_, err := h.account.LogIn(ctx, "c1", "alice@example.com", "pass123")
	require.NoError(t, err)
	_, err = h.account.LogIn(ctx, "c2", "admin@example.com", "admin123")
	require.NoError(t, err)

	require.NoError(t, h.account.LogOut(ctx, "c1"))

	s1, _ := h.sessions.GetSession(ctx, "c1")
	assert.Nil(t, s1)
	s2, _ := h.sessions.GetSession(ctx, "c2")
	assert.NotNil(t, s2)

	// logging out twice is fine
	assert.NoError(t, h.account.LogOut(ctx, "c1"))
}

func TestAccountService_StorageError(t *testing.T) {
	h := newHarness()
	h.account.sessions = NewSessionService(failingKV{}, h.sessions.logger)
	ctx := context.Background()

	_, err := h.account.SignUp(ctx, "c1", models.SignUpInput{Name: "A", Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrValidation))

	assert.NoError(t, h.account.LogOut(ctx, "c1"))
}

// slowKV adds read latency the way a networked or on-disk backend would.
type slowKV struct {
	*repository.MemoryStore
}

func (s slowKV) Get(ctx context.Context, key string) ([]byte, error) {
	time.Sleep(time.Millisecond)
	return s.MemoryStore.Get(ctx, key)
}

func TestAccountService_ConcurrentSignUpSameEmail(t *testing.T) {
	h := newHarness()
	kv := slowKV{repository.NewMemoryStore()}
	logger := zerolog.New(io.Discard)
	users := store.NewCollection[models.User](kv, models.KeyUsers, &logger)
	account := NewAccountService(users, NewSessionService(kv, &logger), h.bus, &logger)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, duplicates := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := account.SignUp(ctx, fmt.Sprintf("c%d", i), models.SignUpInput{
				Name: "Dup", Email: "dup@example.com", Password: "x",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, domain.ErrDuplicateEmail):
				duplicates++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 19, duplicates)

	stored, err := users.All(ctx)
	require.NoError(t, err)
	count := 0
	for _, u := range stored {
		if u.Email == "dup@example.com" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
