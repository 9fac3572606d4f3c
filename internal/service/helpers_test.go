package service

import (
	"context"
	"errors"
	"io"
	"time"

	"hostelhunt/internal/config"
	"hostelhunt/internal/models"
	"hostelhunt/internal/repository"
	"hostelhunt/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishJSON(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

type failingKV struct{}

func (failingKV) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, errors.New("backend down")
}

func (failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("backend down")
}

func (failingKV) Delete(ctx context.Context, key string) error {
	return errors.New("backend down")
}

// harness wires every service over one in-memory store.
type harness struct {
	kv       *repository.MemoryStore
	users    *store.Collection[models.User]
	hostels  *store.Collection[models.Hostel]
	bookings *store.Collection[models.Booking]
	sessions *SessionService
	bus      *mockPublisher

	account *AccountService
	catalog *CatalogService
	owner   *OwnerService
	booking *BookingService
	admin   *AdminService
	seeder  *Seeder
}

var fixedNow = time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func newHarness() *harness {
	logger := zerolog.New(io.Discard)
	kv := repository.NewMemoryStore()

	h := &harness{
		kv:       kv,
		users:    store.NewCollection[models.User](kv, models.KeyUsers, &logger),
		hostels:  store.NewCollection[models.Hostel](kv, models.KeyHostels, &logger),
		bookings: store.NewCollection[models.Booking](kv, models.KeyBookings, &logger),
		sessions: NewSessionService(kv, &logger),
		bus:      new(mockPublisher),
	}
	h.bus.On("PublishJSON", mock.Anything, mock.Anything).Return(nil).Maybe()

	catalogCfg := config.CatalogConfig{
		FallbackOwnerEmail: models.DefaultFallbackOwnerEmail,
		Pricing: config.PricingConfig{
			Base:      models.DefaultBasePrice,
			PerRoom:   models.DefaultPricePerRoom,
			FlatPrice: models.DefaultFlatPrice,
		},
	}

	h.account = NewAccountService(h.users, h.sessions, h.bus, &logger)
	h.account.now = fixedClock
	h.catalog = NewCatalogService(h.hostels, h.sessions, h.bus, &logger)
	h.owner = NewOwnerService(h.hostels, h.bus, catalogCfg, &logger)
	h.owner.now = fixedClock
	h.booking = NewBookingService(h.bookings, h.sessions, h.bus, &logger)
	h.booking.now = fixedClock
	h.admin = NewAdminService(h.users, h.hostels, h.bookings, h.bus, &logger)
	h.seeder = NewSeeder(h.users, h.hostels, h.bookings, DefaultSeed(), &logger)
	h.seeder.now = fixedClock
	return h
}

func (h *harness) seed() {
	if err := h.seeder.EnsureSeeded(context.Background()); err != nil {
		panic(err)
	}
}
