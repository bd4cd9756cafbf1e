package storage

import (
	"sync"

	"github.com/eugenenazirov/stow-planner/internal/stowage"
)

// Storage provides access to the planner settings used when building engines.
type Storage interface {
	GetSettings() (stowage.Settings, error)
	SetSettings(settings stowage.Settings) error
}

// MemoryStorage keeps planner settings in-memory and guards access with a
// RWMutex. Settings mutate between runs, never during one: each plan request
// reads a copy before its engine is built.
type MemoryStorage struct {
	mu       sync.RWMutex
	settings stowage.Settings
}

// NewMemoryStorage initialises storage with the planner defaults.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		settings: stowage.DefaultSettings(),
	}
}

// GetSettings returns the currently configured planner settings.
func (s *MemoryStorage) GetSettings() (stowage.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings, nil
}

// SetSettings validates and stores the provided planner settings.
// Validation errors wrap stowage.ErrInvalidSettings.
func (s *MemoryStorage) SetSettings(settings stowage.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()

	return nil
}
