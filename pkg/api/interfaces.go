package api

import (
	"github.com/GrantKop/is-the-port-open/pkg/models"
)

// ScanController is the slice of the engine the API needs: trigger and
// cancel scans, apply settings. monitor.Service implements it.
type ScanController interface {
	// Refresh starts a manual scan cycle and returns its id.
	Refresh() (uint64, error)

	// CancelCurrent cancels the running cycle, reporting whether one was
	// running.
	CancelCurrent() bool

	// UpdateSettings validates and applies new settings.
	UpdateSettings(settings models.Settings) error
}
