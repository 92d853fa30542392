package monitor

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// Refresher drives periodic rescans. The interval is measured from the end
// of the previous cycle, so a slow scan never produces overlapping
// auto-triggered cycles or a backlog of missed ticks. An interval of zero
// leaves the driver inert.
type Refresher struct {
	coordinator *Coordinator
	settings    *SettingsStore

	bump     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRefresher creates a driver bound to the coordinator and settings store.
func NewRefresher(coordinator *Coordinator, settings *SettingsStore) *Refresher {
	return &Refresher{
		coordinator: coordinator,
		settings:    settings,
		bump:        make(chan struct{}, 1),
		stop:        make(chan struct{}),
	}
}

// Start runs the driver loop until ctx is cancelled or Stop is called. It
// blocks; run it on its own goroutine.
func (r *Refresher) Start(ctx context.Context) error {
	for {
		interval := r.settings.Get().AutoRefreshInterval()

		var (
			timer  *time.Timer
			timerC <-chan time.Time
		)

		if interval > 0 {
			timer = time.NewTimer(interval)
			timerC = timer.C
		}

		select {
		case <-ctx.Done():
			stopTimer(timer)
			return ctx.Err()

		case <-r.stop:
			stopTimer(timer)
			return nil

		case <-r.bump:
			// A manual scan ran or the interval changed: restart the
			// wait from now with the current settings.
			stopTimer(timer)

		case <-timerC:
			cycle, err := r.coordinator.StartScan(ctx, models.TriggerAuto)
			if err != nil {
				log.Printf("Auto-refresh scan failed to start: %v", err)
				continue
			}

			// Wait for the cycle to settle: the next interval counts
			// from the end of this cycle.
			select {
			case <-cycle.Done():
			case <-ctx.Done():
				return ctx.Err()
			case <-r.stop:
				return nil
			}
		}
	}
}

// Stop terminates the driver loop. A currently running cycle is not
// affected. Idempotent.
func (r *Refresher) Stop() {
	r.stopOnce.Do(func() {
		close(r.stop)
	})
}

// Bump resets the next auto-fire point to now + interval. Called after a
// manual scan so the driver does not immediately rescan, and after settings
// updates so a new interval takes effect on the next scheduling decision.
func (r *Refresher) Bump() {
	select {
	case r.bump <- struct{}{}:
	default:
	}
}

func stopTimer(t *time.Timer) {
	if t != nil && !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
}
