package service

import (
	"strings"
	"time"

	"hostelhunt/internal/domain"

	"github.com/rs/zerolog"
)

// Clock returns the current time. Tests replace it to get stable identifiers.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now()
}

func publishEvent(logger *zerolog.Logger, bus domain.EventPublisher, eventType string, payload interface{}) {
	if bus == nil {
		return
	}
	if err := bus.PublishJSON(eventType, payload); err != nil {
		logger.Warn().Err(err).Str("event", eventType).Msg("failed to publish event")
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
