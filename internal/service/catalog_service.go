package service

import (
	"context"
	"strings"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/events"
	"hostelhunt/internal/metrics"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
)

type CatalogService struct {
	hostels  domain.HostelRepository
	sessions domain.SessionStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
}

func NewCatalogService(hostels domain.HostelRepository, sessions domain.SessionStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *CatalogService {
	return &CatalogService{
		hostels:  hostels,
		sessions: sessions,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Search matches the query against location or name, case-insensitively.
// Records without both name and location are never returned.
func (s *CatalogService) Search(ctx context.Context, q models.SearchQuery) (result []models.Hostel, err error) {
	defer func() { metrics.ObserveOperation("search", err) }()

	hostels, err := s.hostels.All(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Location))
	result = make([]models.Hostel, 0, len(hostels))
	for _, h := range hostels {
		if !h.Listed() {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(h.Location), needle) &&
			!strings.Contains(strings.ToLower(h.Name), needle) {
			continue
		}
		if q.MaxPrice > 0 && h.Price > q.MaxPrice {
			continue
		}
		result = append(result, h)
	}

	return result, nil
}

func (s *CatalogService) ListAll(ctx context.Context) ([]models.Hostel, error) {
	return s.hostels.All(ctx)
}

// SelectForBooking remembers the hostel as the client's booking target.
func (s *CatalogService) SelectForBooking(ctx context.Context, clientID, hostelID string) (selected *models.Hostel, err error) {
	defer func() { metrics.ObserveOperation("select_hostel", err) }()

	hostels, err := s.hostels.All(ctx)
	if err != nil {
		return nil, err
	}

	for i := range hostels {
		if hostels[i].ID != hostelID {
			continue
		}
		if err := s.sessions.SetSelectedHostel(ctx, clientID, hostels[i]); err != nil {
			return nil, err
		}
		publishEvent(s.logger, s.eventBus, events.EventHostelChosen, events.HostelEventPayload{
			HostelID: hostels[i].ID,
			Name:     hostels[i].Name,
			ClientID: clientID,
		})
		return &hostels[i], nil
	}

	return nil, domain.NewNotice(domain.ErrNotFound, "Hostel not found")
}
