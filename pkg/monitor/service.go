package monitor

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/GrantKop/is-the-port-open/pkg/models"
	"github.com/GrantKop/is-the-port-open/pkg/registry"
	"github.com/GrantKop/is-the-port-open/pkg/store"
)

// Service ties the coordinator and the auto-refresh driver together behind
// the engine's public control surface: trigger a scan, cancel it, update
// settings, mutate targets.
type Service struct {
	Registry *registry.Registry
	Settings *SettingsStore

	coordinator *Coordinator
	refresher   *Refresher

	root    atomic.Pointer[context.Context]
	stopped atomic.Bool
}

// NewService builds the engine. Results flow to the given sinks; pass a
// StoreSink to persist the latest status per target.
func NewService(reg *registry.Registry, settings *SettingsStore, sinks ...ResultSink) *Service {
	coordinator := NewCoordinator(reg, settings, sinks...)

	return &Service{
		Registry:    reg,
		Settings:    settings,
		coordinator: coordinator,
		refresher:   NewRefresher(coordinator, settings),
	}
}

// Coordinator exposes the underlying coordinator, mainly for tests.
func (s *Service) Coordinator() *Coordinator {
	return s.coordinator
}

// Start runs an initial scan and then blocks driving auto-refresh until ctx
// is cancelled or Stop is called.
func (s *Service) Start(ctx context.Context) error {
	s.root.Store(&ctx)

	if _, err := s.coordinator.StartScan(ctx, models.TriggerManual); err != nil {
		log.Printf("Initial scan failed to start: %v", err)
		return err
	}

	return s.refresher.Start(ctx)
}

// Stop shuts the driver down and cancels any running cycle.
func (s *Service) Stop(_ context.Context) error {
	s.stopped.Store(true)
	s.refresher.Stop()
	s.coordinator.CancelCurrent()

	return nil
}

// Refresh triggers a manual scan cycle and resets the auto-refresh timer.
// Returns the new cycle's id.
func (s *Service) Refresh() (uint64, error) {
	if s.stopped.Load() {
		return 0, errStopped
	}

	ctx := context.Background()
	if p := s.root.Load(); p != nil {
		ctx = *p
	}

	cycle, err := s.coordinator.StartScan(ctx, models.TriggerManual)
	if err != nil {
		return 0, err
	}

	s.refresher.Bump()

	return cycle.ID, nil
}

// CancelCurrent cancels the running cycle, reporting whether one was
// running.
func (s *Service) CancelCurrent() bool {
	return s.coordinator.CancelCurrent()
}

// UpdateSettings validates and applies new settings. They take effect on the
// next cycle and the next auto-refresh scheduling decision.
func (s *Service) UpdateSettings(settings models.Settings) error {
	if err := s.Settings.Update(settings); err != nil {
		return err
	}

	s.refresher.Bump()

	return nil
}

// StoreSink adapts a store.Store into a ResultSink so every delivered result
// updates the target's last known status.
type StoreSink struct {
	store store.Store
}

// NewStoreSink wraps a store as a sink.
func NewStoreSink(st store.Store) *StoreSink {
	return &StoreSink{store: st}
}

func (s *StoreSink) Publish(cycleID uint64, result models.ProbeResult) {
	if err := s.store.SaveResult(context.Background(), cycleID, &result); err != nil {
		log.Printf("Failed to save result for %s: %v", result.Target.Addr(), err)
	}
}

func (s *StoreSink) CycleFinished(uint64, models.CycleState) {}
