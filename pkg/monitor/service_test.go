package monitor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GrantKop/is-the-port-open/pkg/models"
	"github.com/GrantKop/is-the-port-open/pkg/store"
)

func TestService_RefreshReturnsIncreasingCycleIDs(t *testing.T) {
	reg := testRegistry(t, 2)

	svc := NewService(reg, NewSettingsStore(models.DefaultSettings()))
	svc.Coordinator().SetProberFactory(staticFactory(instantProber()))

	first, err := svc.Refresh()
	require.NoError(t, err)

	second, err := svc.Refresh()
	require.NoError(t, err)

	assert.Greater(t, second, first)
}

func TestService_StartRunsInitialScanThenStops(t *testing.T) {
	reg := testRegistry(t, 1)
	sink := &recordingSink{}

	svc := NewService(reg, NewSettingsStore(models.DefaultSettings()), sink)
	svc.Coordinator().SetProberFactory(staticFactory(instantProber()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- svc.Start(ctx) }()

	// The initial scan publishes one result per target.
	require.Eventually(t, func() bool {
		return len(sink.published()) == 1
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, svc.Stop(context.Background()))
	<-done
}

func TestService_UpdateSettingsRejectsInvalid(t *testing.T) {
	svc := NewService(testRegistry(t, 1), NewSettingsStore(models.DefaultSettings()))

	err := svc.UpdateSettings(models.Settings{TimeoutSeconds: 0, MaxWorkers: 10})
	require.ErrorIs(t, err, models.ErrInvalidSettings)
}

func TestStoreSink_SavesEveryResult(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := store.NewMockStore(ctrl)

	result := openResult(models.Target{Name: "web", Host: "example.com", Port: 443})

	mockStore.EXPECT().
		SaveResult(gomock.Any(), uint64(3), &result).
		Return(nil)

	sink := NewStoreSink(mockStore)
	sink.Publish(3, result)
	sink.CycleFinished(3, models.CycleCompleted)
}
