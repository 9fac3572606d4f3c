package service

import (
	"context"
	"io"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/export"
	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
)

type AdminService struct {
	users    domain.UserRepository
	hostels  domain.HostelRepository
	bookings domain.BookingRepository
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewAdminService(
	users domain.UserRepository,
	hostels domain.HostelRepository,
	bookings domain.BookingRepository,
	eventBus domain.EventPublisher,
	logger *zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		hostels:  hostels,
		bookings: bookings,
		eventBus: eventBus,
		logger:   logger,
	}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.All(ctx)
}

func (s *AdminService) ListHostels(ctx context.Context) ([]models.Hostel, error) {
	return s.hostels.All(ctx)
}

func (s *AdminService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.All(ctx)
}

// DeleteUser removes every user with exactly this email. Bookings are kept.
func (s *AdminService) DeleteUser(ctx context.Context, email string, confirmed bool) (removed int, err error) {
	defer func() { metrics.ObserveOperation("delete_user", err) }()

	if !confirmed {
		return 0, domain.ErrConfirmationRequired
	}

	removed, err = s.users.RemoveWhere(ctx, func(u models.User) bool { return u.Email == email })
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Str("email", email).Int("removed", removed).Msg("user deleted")
		publishEvent(s.logger, s.eventBus, events.EventUserDeleted, events.UserEventPayload{
			Email:     email,
			ChangedBy: "admin",
		})
	}
	return removed, nil
}

// DeleteHostel removes every hostel with this id. Bookings are kept.
func (s *AdminService) DeleteHostel(ctx context.Context, id string, confirmed bool) (removed int, err error) {
	defer func() { metrics.ObserveOperation("delete_hostel", err) }()

	if !confirmed {
		return 0, domain.ErrConfirmationRequired
	}

	removed, err = s.hostels.RemoveWhere(ctx, func(h models.Hostel) bool { return h.ID == id })
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info().Str("hostel_id", id).Int("removed", removed).Msg("hostel deleted")
		publishEvent(s.logger, s.eventBus, events.EventHostelDeleted, events.HostelEventPayload{
			HostelID: id,
		})
	}
	return removed, nil
}

// Export writes all collections as an XLSX workbook.
func (s *AdminService) Export(ctx context.Context, w io.Writer) (err error) {
	defer func() { metrics.ObserveOperation("export", err) }()

	users, err := s.users.All(ctx)
	if err != nil {
		return err
	}
	hostels, err := s.hostels.All(ctx)
	if err != nil {
		return err
	}
	bookings, err := s.bookings.All(ctx)
	if err != nil {
		return err
	}
	return export.Workbook(w, users, hostels, bookings)
}
