// Package config pkg/config/config.go loads and persists the engine state:
// settings plus the target list.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

const (
	appDirName    = "itpo"
	stateFileName = "itpo.json"
)

// Validator is implemented by configurations that can check their own
// invariants.
type Validator interface {
	Validate() error
}

// LoadFile is a generic helper that loads a JSON file from path into the
// struct pointed to by dst.
func LoadFile(path string, dst interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file '%s': %w", path, err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to unmarshal JSON from '%s': %w", path, err)
	}

	return nil
}

// ValidateConfig validates a configuration if it implements Validator.
func ValidateConfig(cfg interface{}) error {
	if v, ok := cfg.(Validator); ok {
		return v.Validate()
	}

	return nil
}

// LoadAndValidate loads a configuration file and validates it if possible.
func LoadAndValidate(path string, cfg interface{}) error {
	if err := LoadFile(path, cfg); err != nil {
		return err
	}

	return ValidateConfig(cfg)
}

// State is the persisted form of the engine: the tunables plus the full
// target list.
type State struct {
	Settings models.Settings `json:"settings"`
	Targets  []models.Target `json:"targets"`
}

// Validate checks the settings; target entries are filtered on load rather
// than rejected wholesale.
func (s *State) Validate() error {
	return s.Settings.Validate()
}

// DefaultPath returns the per-user state file location, creating the parent
// directory if needed.
func DefaultPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config dir: %w", err)
	}

	dir := filepath.Join(base, appDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir '%s': %w", dir, err)
	}

	return filepath.Join(dir, stateFileName), nil
}

// LoadState reads the state file at path. A missing file is not an error: it
// yields the defaults with an empty target list, matching first-run behavior.
func LoadState(path string) (*State, error) {
	state := &State{
		Settings: models.DefaultSettings(),
	}

	err := LoadAndValidate(path, state)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &State{Settings: models.DefaultSettings()}, nil
		}

		return nil, err
	}

	return state, nil
}

// SaveState writes the state atomically: marshal to a temp file in the same
// directory, then rename over the destination, so a crash mid-write never
// corrupts the previous state.
func SaveState(path string, state *State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmpPath := path + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp state file '%s': %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace state file '%s': %w", path, err)
	}

	return nil
}
