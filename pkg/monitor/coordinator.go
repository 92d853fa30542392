// Package monitor pkg/monitor/coordinator.go orchestrates scan cycles over
// the target registry: one cycle at a time, cancel-then-replace, results
// streamed to the configured sinks tagged with the cycle id.
package monitor

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/GrantKop/is-the-port-open/pkg/models"
	"github.com/GrantKop/is-the-port-open/pkg/probe"
	"github.com/GrantKop/is-the-port-open/pkg/registry"
	"github.com/GrantKop/is-the-port-open/pkg/scan"
)

// ProberFactory builds the prober for one cycle from the settings in effect
// when the cycle starts. Settings changes (e.g. a new proxy) therefore apply
// on the next cycle.
type ProberFactory func(settings models.Settings) (scan.Prober, error)

// DefaultProberFactory dials directly, or through the configured SOCKS5
// proxy when one is set.
func DefaultProberFactory(settings models.Settings) (scan.Prober, error) {
	if settings.Proxy != "" {
		return probe.NewWithProxy(settings.Proxy)
	}

	return probe.New(), nil
}

// Cycle is the handle for one scan cycle.
type Cycle struct {
	ID       uint64
	Trigger  models.CycleTrigger
	Targets  int
	Started  time.Time

	job       *scan.Job
	done      chan struct{}
	cancelled atomic.Bool
	state     atomic.Value // models.CycleState
}

// Done closes once the cycle has fully settled.
func (c *Cycle) Done() <-chan struct{} {
	return c.done
}

// State returns the cycle's current lifecycle state.
func (c *Cycle) State() models.CycleState {
	return c.state.Load().(models.CycleState)
}

// Cancel requests cancellation of the cycle. Idempotent.
func (c *Cycle) Cancel() {
	c.cancelled.Store(true)
	c.job.Cancel()
}

// Coordinator owns the single-active-cycle invariant. Starting a new cycle
// while one runs cancels the running one and waits for it to settle first, so
// two cycles' results never interleave at the sinks.
type Coordinator struct {
	registry *registry.Registry
	settings *SettingsStore
	factory  ProberFactory
	sinks    []ResultSink

	mu      sync.Mutex
	current *Cycle
	lastID  uint64
}

// NewCoordinator wires the coordinator to its collaborators. Sinks receive
// every result of every cycle the coordinator runs.
func NewCoordinator(reg *registry.Registry, settings *SettingsStore, sinks ...ResultSink) *Coordinator {
	return &Coordinator{
		registry: reg,
		settings: settings,
		factory:  DefaultProberFactory,
		sinks:    sinks,
	}
}

// SetProberFactory overrides how per-cycle probers are built. Must be called
// before the first scan.
func (c *Coordinator) SetProberFactory(factory ProberFactory) {
	c.factory = factory
}

// StartScan cancels any running cycle, waits for it to settle, then starts a
// new one over a fresh registry snapshot. The returned cycle settles on its
// own; callers that need completion wait on Done.
func (c *Coordinator) StartScan(ctx context.Context, trigger models.CycleTrigger) (*Cycle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if prev := c.current; prev != nil {
		select {
		case <-prev.Done():
			// Already settled.
		default:
			prev.Cancel()
			<-prev.Done()
		}
	}

	settings := c.settings.Get()

	prober, err := c.factory(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errProberInit, err)
	}

	targets := c.registry.Snapshot()

	c.lastID++

	cycle := &Cycle{
		ID:      c.lastID,
		Trigger: trigger,
		Targets: len(targets),
		Started: time.Now(),
		done:    make(chan struct{}),
	}
	cycle.state.Store(models.CycleRunning)

	cycle.job = scan.NewPool(prober).Run(ctx, targets, scan.Options{
		Timeout:   settings.Timeout(),
		Workers:   settings.Workers(),
		RateLimit: settings.RateLimit,
	})

	c.current = cycle

	log.Printf("Cycle %d started (%s): %d targets, %d workers, timeout %v",
		cycle.ID, trigger, len(targets), settings.Workers(), settings.Timeout())

	go c.consume(cycle)

	return cycle, nil
}

// CancelCurrent cancels the running cycle, if any, and reports whether one
// was running.
func (c *Coordinator) CancelCurrent() bool {
	c.mu.Lock()
	cycle := c.current
	c.mu.Unlock()

	if cycle == nil {
		return false
	}

	select {
	case <-cycle.Done():
		return false
	default:
	}

	cycle.Cancel()
	<-cycle.Done()

	return true
}

// Current returns the most recent cycle, which may have settled already.
func (c *Coordinator) Current() *Cycle {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.current
}

func (c *Coordinator) consume(cycle *Cycle) {
	delivered := 0

	for result := range cycle.job.Results() {
		delivered++

		for _, sink := range c.sinks {
			sink.Publish(cycle.ID, result)
		}
	}

	state := models.CycleCompleted
	if cycle.cancelled.Load() || delivered < cycle.Targets {
		state = models.CycleCancelled
	}

	cycle.state.Store(state)

	for _, sink := range c.sinks {
		sink.CycleFinished(cycle.ID, state)
	}

	log.Printf("Cycle %d %s: %d/%d results in %v",
		cycle.ID, state, delivered, cycle.Targets, time.Since(cycle.Started))

	close(cycle.done)
}
