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

type AccountService struct {
	users    domain.UserRepository
	sessions domain.SessionStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      Clock
}

func NewAccountService(users domain.UserRepository, sessions domain.SessionStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		sessions: sessions,
		eventBus: eventBus,
		logger:   logger,
		now:      systemClock,
	}
}

// SignUp registers a user and logs the client in as that user.
func (s *AccountService) SignUp(ctx context.Context, clientID string, in models.SignUpInput) (session *models.Session, err error) {
	defer func() { metrics.ObserveOperation("signup", err) }()

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.NewNotice(domain.ErrValidation, "Please fill all fields")
	}
	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, domain.NewNotice(domain.ErrValidation, fmt.Sprintf("Unknown role %q", in.Role))
	}

	user := models.User{
		ID:       s.now().UnixMilli(),
		Name:     name,
		Email:    email,
		Password: in.Password,
		Role:     role,
	}
	added, err := s.users.AppendUnless(ctx, user, func(u models.User) bool {
		return normalizeEmail(u.Email) == email
	})
	if err != nil {
		return nil, err
	}
	if !added {
		return nil, domain.ErrDuplicateEmail
	}

	current := user.Session()
	if err := s.sessions.SetSession(ctx, clientID, current); err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.eventBus, events.EventUserSignedUp, events.UserEventPayload{
		Email: user.Email,
		Name:  user.Name,
		Role:  string(user.Role),
	})

	return &current, nil
}

// LogIn checks the credentials and stores the session for the client.
func (s *AccountService) LogIn(ctx context.Context, clientID, email, password string) (result *models.LoginResult, err error) {
	defer func() { metrics.ObserveOperation("login", err) }()

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.NewNotice(domain.ErrValidation, "Enter email and password")
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, err
	}

	var found *models.User
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return nil, domain.ErrInvalidCredentials
	}

	current := found.Session()
	if err := s.sessions.SetSession(ctx, clientID, current); err != nil {
		return nil, err
	}

	publishEvent(s.logger, s.eventBus, events.EventUserLoggedIn, events.UserEventPayload{
		Email: found.Email,
		Role:  string(found.Role),
	})

	return &models.LoginResult{
		Session:     current,
		Destination: models.DestinationFor(found.Role),
	}, nil
}

// LogOut clears the client's session. Storage errors are logged only.
func (s *AccountService) LogOut(ctx context.Context, clientID string) error {
	if err := s.sessions.ClearSession(ctx, clientID); err != nil {
		s.logger.Error().Err(err).Str("client_id", clientID).Msg("failed to clear session")
	}
	metrics.ObserveOperation("logout", nil)
	return nil
}
