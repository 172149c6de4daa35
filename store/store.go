package store

import (
	"context"

	"github.com/notetutor/notetutor/internal/profile"
)

// Store composes the database driver with the runtime profile.
type Store struct {
	Profile *profile.Profile
	driver  Driver
}

// New creates a new Store with the given driver and profile.
func New(driver Driver, profile *profile.Profile) *Store {
	return &Store{
		Profile: profile,
		driver:  driver,
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	return s.driver.Migrate(ctx)
}

func (s *Store) Close() error {
	return s.driver.Close()
}

// MaxChatHistory returns the per-topic conversation retention limit.
func (s *Store) MaxChatHistory() int {
	if s.Profile != nil && s.Profile.MaxChatHistory > 0 {
		return s.Profile.MaxChatHistory
	}
	return DefaultMaxChatHistory
}
