package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"hostelhunt/internal/config"
	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
)

type OwnerService struct {
	hostels       domain.HostelRepository
	eventBus      domain.EventPublisher
	pricing       config.PricingConfig
	fallbackOwner string
	logger        *zerolog.Logger
	now           Clock
}

func NewOwnerService(hostels domain.HostelRepository, eventBus domain.EventPublisher, catalog config.CatalogConfig, logger *zerolog.Logger) *OwnerService {
	return &OwnerService{
		hostels:       hostels,
		eventBus:      eventBus,
		pricing:       catalog.Pricing,
		fallbackOwner: catalog.FallbackOwnerEmail,
		logger:        logger,
		now:           systemClock,
	}
}

// Price derives the monthly price from the room count.
func Price(p config.PricingConfig, rooms float64) float64 {
	if rooms > 0 {
		return math.Round(p.Base + rooms*p.PerRoom)
	}
	return p.FlatPrice
}

// AddHostel lists a new hostel owned by the session user, or by the fallback owner without a session.
func (s *OwnerService) AddHostel(ctx context.Context, session *models.Session, in models.AddHostelInput) (hostel *models.Hostel, err error) {
	defer func() { metrics.ObserveOperation("add_hostel", err) }()

	name := strings.TrimSpace(in.Name)
	location := strings.TrimSpace(in.Location)
	if name == "" || location == "" {
		return nil, domain.NewNotice(domain.ErrValidation, "Please enter name and location")
	}

	price := Price(s.pricing, in.Rooms)
	if math.IsInf(price, 0) || math.IsNaN(price) {
		return nil, domain.NewNotice(domain.ErrValidation, "Room count is out of range")
	}

	owner := s.fallbackOwner
	if session != nil && session.Email != "" {
		owner = session.Email
	}

	h := models.Hostel{
		ID:          fmt.Sprintf("%s%d", models.HostelIDPrefix, s.now().UnixMilli()),
		Name:        name,
		Location:    location,
		Price:       price,
		Type:        strings.TrimSpace(in.Type),
		OwnerEmail:  owner,
		Description: strings.TrimSpace(in.Description),
	}
	if err := s.hostels.Append(ctx, h); err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.eventBus, events.EventHostelAdded, events.HostelEventPayload{
		HostelID:   h.ID,
		Name:       h.Name,
		Location:   h.Location,
		Price:      h.Price,
		OwnerEmail: h.OwnerEmail,
	})

	return &h, nil
}

// ListMine returns the session user's hostels, or every hostel without a session.
func (s *OwnerService) ListMine(ctx context.Context, session *models.Session) ([]models.Hostel, error) {
	hostels, err := s.hostels.All(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return hostels, nil
	}

	mine := make([]models.Hostel, 0, len(hostels))
	for _, h := range hostels {
		if h.OwnerEmail == session.Email {
			mine = append(mine, h)
		}
	}
	return mine, nil
}
