package monitor

import (
	"sync"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// SettingsStore holds the engine settings behind a lock. Cycles read the
// settings by value when they start; an update never changes in-flight
// probes.
type SettingsStore struct {
	mu       sync.RWMutex
	settings models.Settings
}

// NewSettingsStore creates a store seeded with the given settings. Invalid
// seeds fall back to the defaults.
func NewSettingsStore(settings models.Settings) *SettingsStore {
	if settings.Validate() != nil {
		settings = models.DefaultSettings()
	}

	return &SettingsStore{settings: settings}
}

// Get returns the current settings by value.
func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.settings
}

// Update validates and swaps the settings. The new values apply from the
// next scan cycle and the next auto-refresh scheduling decision.
func (s *SettingsStore) Update(settings models.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings

	return nil
}
