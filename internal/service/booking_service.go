package service

import (
	"context"
	"fmt"
	"strings"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
)

type BookingService struct {
	bookings domain.BookingRepository
	sessions domain.SessionStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      Clock
}

func NewBookingService(bookings domain.BookingRepository, sessions domain.SessionStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		bookings: bookings,
		sessions: sessions,
		eventBus: eventBus,
		logger:   logger,
		now:      systemClock,
	}
}

// BookRoom records a booking. A selected hostel with a name wins over the typed hostel name.
func (s *BookingService) BookRoom(ctx context.Context, in models.BookingInput, selected *models.Hostel) (booking *models.Booking, err error) {
	defer func() { metrics.ObserveOperation("book_room", err) }()

	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	hostelName := strings.TrimSpace(in.HostelName)
	if selected != nil && selected.Name != "" {
		hostelName = selected.Name
	}
	if name == "" || email == "" || hostelName == "" {
		return nil, domain.NewNotice(domain.ErrValidation, "Please fill required fields")
	}

	now := s.now().UTC()
	b := models.Booking{
		ID:         fmt.Sprintf("%s%d", models.BookingIDPrefix, now.UnixMilli()),
		UserName:   name,
		UserEmail:  email,
		HostelName: hostelName,
		RoomType:   strings.TrimSpace(in.RoomType),
		From:       in.From,
		To:         in.To,
		Created:    now,
	}
	if err := s.bookings.Append(ctx, b); err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.eventBus, events.EventBookingMade, events.BookingEventPayload{
		BookingID:  b.ID,
		UserName:   b.UserName,
		UserEmail:  b.UserEmail,
		HostelName: b.HostelName,
		RoomType:   b.RoomType,
		From:       b.From,
		To:         b.To,
		Created:    b.Created,
	})

	return &b, nil
}

// Checkout books against the client's selected hostel and clears the selection afterwards.
func (s *BookingService) Checkout(ctx context.Context, clientID string, in models.BookingInput) (*models.Booking, error) {
	selected, err := s.sessions.GetSelectedHostel(ctx, clientID)
	if err != nil {
		return nil, err
	}

	booking, err := s.BookRoom(ctx, in, selected)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.ClearSelectedHostel(ctx, clientID); err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to clear selected hostel")
	}

	return booking, nil
}
