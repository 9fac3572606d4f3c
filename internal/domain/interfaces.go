package domain

import (
	"context"
	"io"

	"hostelhunt/internal/models"
)

// KVStore is the raw record store. Get returns nil, nil for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by stores that can report backend health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type UserRepository interface {
	All(ctx context.Context) ([]models.User, error)
	Append(ctx context.Context, users ...models.User) error
	AppendUnless(ctx context.Context, user models.User, exists func(models.User) bool) (bool, error)
	Replace(ctx context.Context, users []models.User) error
	RemoveWhere(ctx context.Context, match func(models.User) bool) (int, error)
}

type HostelRepository interface {
	All(ctx context.Context) ([]models.Hostel, error)
	Append(ctx context.Context, hostels ...models.Hostel) error
	Replace(ctx context.Context, hostels []models.Hostel) error
	RemoveWhere(ctx context.Context, match func(models.Hostel) bool) (int, error)
}

type BookingRepository interface {
	All(ctx context.Context) ([]models.Booking, error)
	Initialized(ctx context.Context) (bool, error)
	Append(ctx context.Context, bookings ...models.Booking) error
	Replace(ctx context.Context, bookings []models.Booking) error
}

// SessionStore keeps the per-client current session and selected hostel.
type SessionStore interface {
	GetSession(ctx context.Context, clientID string) (*models.Session, error)
	SetSession(ctx context.Context, clientID string, session models.Session) error
	ClearSession(ctx context.Context, clientID string) error
	GetSelectedHostel(ctx context.Context, clientID string) (*models.Hostel, error)
	SetSelectedHostel(ctx context.Context, clientID string, hostel models.Hostel) error
	ClearSelectedHostel(ctx context.Context, clientID string) error
}

type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

type AccountService interface {
	SignUp(ctx context.Context, clientID string, in models.SignUpInput) (*models.Session, error)
	LogIn(ctx context.Context, clientID, email, password string) (*models.LoginResult, error)
	LogOut(ctx context.Context, clientID string) error
}

type CatalogService interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.Hostel, error)
	ListAll(ctx context.Context) ([]models.Hostel, error)
	SelectForBooking(ctx context.Context, clientID, hostelID string) (*models.Hostel, error)
}

type OwnerService interface {
	AddHostel(ctx context.Context, session *models.Session, in models.AddHostelInput) (*models.Hostel, error)
	ListMine(ctx context.Context, session *models.Session) ([]models.Hostel, error)
}

type BookingService interface {
	BookRoom(ctx context.Context, in models.BookingInput, selected *models.Hostel) (*models.Booking, error)
	Checkout(ctx context.Context, clientID string, in models.BookingInput) (*models.Booking, error)
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListHostels(ctx context.Context) ([]models.Hostel, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	DeleteUser(ctx context.Context, email string, confirmed bool) (int, error)
	DeleteHostel(ctx context.Context, id string, confirmed bool) (int, error)
	Export(ctx context.Context, w io.Writer) error
}
