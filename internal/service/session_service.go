package service

import (
	"context"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/models"
	"hostelhunt/internal/store"

	"github.com/rs/zerolog"
)

// SessionService keeps the current session and the selected hostel of each client.
type SessionService struct {
	kv     domain.KVStore
	logger *zerolog.Logger
}

func NewSessionService(kv domain.KVStore, logger *zerolog.Logger) *SessionService {
	return &SessionService{
		kv:     kv,
		logger: logger,
	}
}

func (s *SessionService) sessionSlot(clientID string) *store.Slot[models.Session] {
	return store.NewSlot[models.Session](s.kv, store.ClientKey(models.KeyCurrentUser, clientID), s.logger)
}

func (s *SessionService) hostelSlot(clientID string) *store.Slot[models.Hostel] {
	return store.NewSlot[models.Hostel](s.kv, store.ClientKey(models.KeySelectedHostel, clientID), s.logger)
}

func (s *SessionService) GetSession(ctx context.Context, clientID string) (*models.Session, error) {
	session, err := s.sessionSlot(clientID).Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to get session")
		return nil, err
	}
	return session, nil
}

func (s *SessionService) SetSession(ctx context.Context, clientID string, session models.Session) error {
	return s.sessionSlot(clientID).Set(ctx, session)
}

func (s *SessionService) ClearSession(ctx context.Context, clientID string) error {
	return s.sessionSlot(clientID).Clear(ctx)
}

func (s *SessionService) GetSelectedHostel(ctx context.Context, clientID string) (*models.Hostel, error) {
	hostel, err := s.hostelSlot(clientID).Get(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to get selected hostel")
		return nil, err
	}
	return hostel, nil
}

func (s *SessionService) SetSelectedHostel(ctx context.Context, clientID string, hostel models.Hostel) error {
	return s.hostelSlot(clientID).Set(ctx, hostel)
}

func (s *SessionService) ClearSelectedHostel(ctx context.Context, clientID string) error {
	return s.hostelSlot(clientID).Clear(ctx)
}
