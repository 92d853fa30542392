package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

func TestLoadState_MissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	state, err := LoadState(path)
	require.NoError(t, err)

	assert.Equal(t, models.DefaultSettings(), state.Settings)
	assert.Empty(t, state.Targets)
}

func TestSaveAndLoadState_Roundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itpo.json")

	want := &State{
		Settings: models.Settings{
			TimeoutSeconds:     2.5,
			MaxWorkers:         25,
			AutoRefreshSeconds: 60,
		},
		Targets: []models.Target{
			{Name: "web", Host: "example.com", Port: 443},
			{Name: "mc", Host: "play.example.com", Port: 25565},
		},
	}

	require.NoError(t, SaveState(path, want))

	got, err := LoadState(path)
	require.NoError(t, err)

	assert.Equal(t, want.Settings, got.Settings)
	assert.Equal(t, want.Targets, got.Targets)

	// The temp file must not be left behind.
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveState_OverwritesAtomically(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itpo.json")

	first := &State{Settings: models.DefaultSettings()}
	require.NoError(t, SaveState(path, first))

	second := &State{
		Settings: models.Settings{TimeoutSeconds: 1, MaxWorkers: 1},
		Targets:  []models.Target{{Name: "ssh", Host: "example.com", Port: 22}},
	}
	require.NoError(t, SaveState(path, second))

	got, err := LoadState(path)
	require.NoError(t, err)
	assert.Equal(t, second.Targets, got.Targets)
	assert.InDelta(t, 1, got.Settings.TimeoutSeconds, 0.001)
}

func TestLoadState_InvalidSettingsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itpo.json")

	require.NoError(t, os.WriteFile(path, []byte(`{
		"settings": {"timeout_seconds": -4, "max_workers": 10},
		"targets": []
	}`), 0o644))

	_, err := LoadState(path)
	require.ErrorIs(t, err, models.ErrInvalidSettings)
}

func TestLoadState_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "itpo.json")

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadState(path)
	require.Error(t, err)
}
