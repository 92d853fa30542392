// Package scan pkg/scan/pool.go dispatches probes across a bounded worker
// pool and streams results back as they settle.
package scan

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// Options carries the per-run tunables, read by value when the run starts.
type Options struct {
	// Timeout bounds each individual probe.
	Timeout time.Duration

	// Workers caps simultaneous in-flight probes. Values below 1 are
	// clamped to 1.
	Workers int

	// RateLimit caps probe launches per second across all workers.
	// Zero disables the limiter.
	RateLimit float64
}

// Pool runs probe batches. It is stateless between runs; each Run gets its
// own workers and cancellation scope.
type Pool struct {
	prober Prober
}

// NewPool creates a pool that executes probes with the given prober.
func NewPool(prober Prober) *Pool {
	return &Pool{prober: prober}
}

// Job is the handle for one in-flight run. Results are delivered
// incrementally on Results; the channel closes once every target has a
// result or the run is cancelled. Cancel is idempotent.
type Job struct {
	results chan models.ProbeResult
	done    chan struct{}

	cancel     context.CancelFunc
	cancelOnce sync.Once
}

// Results streams one terminal result per dispatched target,
// first-to-finish first.
func (j *Job) Results() <-chan models.ProbeResult {
	return j.results
}

// Done closes once the run has fully settled: no further results will be
// delivered and all workers have exited.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Cancel requests cancellation of all queued and in-flight probes. Results
// already delivered remain valid. Safe to call more than once.
func (j *Job) Cancel() {
	j.cancelOnce.Do(j.cancel)
}

// Run dispatches one probe per target, never exceeding opts.Workers in
// flight. Targets queue in submission order and start as slots free up.
func (p *Pool) Run(ctx context.Context, targets []models.Target, opts Options) *Job {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	if workers > len(targets) && len(targets) > 0 {
		workers = len(targets)
	}

	runCtx, cancel := context.WithCancel(ctx)

	job := &Job{
		results: make(chan models.ProbeResult, len(targets)),
		done:    make(chan struct{}),
		cancel:  cancel,
	}

	targetChan := make(chan models.Target, workers)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)

		go p.runWorker(runCtx, &wg, targetChan, job.results, opts.Timeout)
	}

	go feedTargets(runCtx, targets, targetChan, opts.RateLimit)

	go func() {
		wg.Wait()
		cancel()
		close(job.results)
		close(job.done)
	}()

	return job
}

func (p *Pool) runWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	targetChan <-chan models.Target,
	results chan<- models.ProbeResult,
	timeout time.Duration) {
	defer wg.Done()

	for {
		select {
		case target, ok := <-targetChan:
			if !ok {
				return
			}

			p.probeTarget(ctx, target, results, timeout)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pool) probeTarget(
	ctx context.Context,
	target models.Target,
	results chan<- models.ProbeResult,
	timeout time.Duration) {
	// Re-check cancellation before starting: a worker woken by a queued
	// target must not launch a probe after Cancel.
	select {
	case <-ctx.Done():
		return
	default:
	}

	result := p.prober.Check(ctx, target, timeout)

	select {
	case results <- result:
	case <-ctx.Done():
	}
}

func feedTargets(ctx context.Context, targets []models.Target, targetChan chan<- models.Target, rateLimit float64) {
	defer close(targetChan)

	var limiter *rate.Limiter
	if rateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(rateLimit), 1)
	}

	for _, target := range targets {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				return
			}
		}

		select {
		case targetChan <- target:
		case <-ctx.Done():
			return
		}
	}
}
