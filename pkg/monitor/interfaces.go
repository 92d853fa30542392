package monitor

import (
	"github.com/GrantKop/is-the-port-open/pkg/models"
)

//go:generate mockgen -destination=mock_monitor.go -package=monitor github.com/GrantKop/is-the-port-open/pkg/monitor ResultSink

// ResultSink consumes the engine's result stream. Publish is called once per
// probed target, tagged with the cycle it belongs to; delivery order within a
// cycle is first-to-finish. Implementations must not block for long: they run
// on the cycle's consumer goroutine.
type ResultSink interface {
	// Publish delivers one terminal probe result.
	Publish(cycleID uint64, result models.ProbeResult)

	// CycleFinished reports that a cycle settled, with its final state.
	CycleFinished(cycleID uint64, state models.CycleState)
}
