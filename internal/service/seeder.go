package service

import (
	"context"
	"errors"
	"fmt"
	"os"

	"hostelhunt/internal/domain"
	"hostelhunt/internal/models"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v2"
)

// SeedData is the baseline content written into empty collections.
type SeedData struct {
	Users   []models.User   `yaml:"users"`
	Hostels []models.Hostel `yaml:"hostels"`
}

// DefaultSeed returns the built-in demo accounts and hostels.
// User ids are left zero and assigned at seeding time.
func DefaultSeed() SeedData {
	return SeedData{
		Users: []models.User{
			{Name: "Alice", Email: "alice@example.com", Password: "pass123", Role: models.RoleUser},
			{Name: "Owner One", Email: "owner@example.com", Password: "owner123", Role: models.RoleOwner},
			{Name: "Admin", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin},
		},
		Hostels: []models.Hostel{
			{
				ID:          "h1",
				Name:        "Sunrise Hostel",
				Location:    "Bhubaneswar",
				Price:       3000,
				Type:        "Single/Double",
				OwnerEmail:  "owner@example.com",
				Description: "Clean rooms, fast wifi",
			},
			{
				ID:          "h2",
				Name:        "Campus Stay",
				Location:    "Cuttack",
				Price:       2500,
				Type:        "Single",
				OwnerEmail:  "owner@example.com",
				Description: "Near colleges, affordable",
			},
		},
	}
}

// LoadSeed reads a YAML seed file. A missing file yields DefaultSeed.
func LoadSeed(path string) (SeedData, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultSeed(), nil
	}
	if err != nil {
		return SeedData{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed SeedData
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return SeedData{}, fmt.Errorf("parse seed file: %w", err)
	}

	defaults := DefaultSeed()
	if len(seed.Users) == 0 {
		seed.Users = defaults.Users
	}
	if len(seed.Hostels) == 0 {
		seed.Hostels = defaults.Hostels
	}
	return seed, nil
}

type Seeder struct {
	users    domain.UserRepository
	hostels  domain.HostelRepository
	bookings domain.BookingRepository
	seed     SeedData
	logger   *zerolog.Logger
	now      Clock
}

func NewSeeder(
	users domain.UserRepository,
	hostels domain.HostelRepository,
	bookings domain.BookingRepository,
	seed SeedData,
	logger *zerolog.Logger,
) *Seeder {
	return &Seeder{
		users:    users,
		hostels:  hostels,
		bookings: bookings,
		seed:     seed,
		logger:   logger,
		now:      systemClock,
	}
}

// EnsureSeeded fills empty collections with the baseline data. Repeated calls change nothing.
func (s *Seeder) EnsureSeeded(ctx context.Context) error {
	users, err := s.users.All(ctx)
	if err != nil {
		return err
	}
	if len(users) == 0 {
		base := s.now().UnixMilli()
		seeded := make([]models.User, len(s.seed.Users))
		for i, u := range s.seed.Users {
			if u.ID == 0 {
				u.ID = base + int64(i) + 1
			}
			if u.Role == "" {
				u.Role = models.RoleUser
			}
			seeded[i] = u
		}
		if err := s.users.Replace(ctx, seeded); err != nil {
			return err
		}
		s.logger.Info().Int("count", len(seeded)).Msg("seeded users")
	}

	hostels, err := s.hostels.All(ctx)
	if err != nil {
		return err
	}
	if len(hostels) == 0 {
		if err := s.hostels.Replace(ctx, s.seed.Hostels); err != nil {
			return err
		}
		s.logger.Info().Int("count", len(s.seed.Hostels)).Msg("seeded hostels")
	}

	initialized, err := s.bookings.Initialized(ctx)
	if err != nil {
		return err
	}
	if !initialized {
		if err := s.bookings.Replace(ctx, []models.Booking{}); err != nil {
			return err
		}
	}

	return nil
}
