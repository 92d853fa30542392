package store

import (
	"context"
	"time"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

//go:generate mockgen -destination=mock_store.go -package=store github.com/GrantKop/is-the-port-open/pkg/store Store

// Store keeps the latest probe result per target. The engine does not retain
// scan history; each save supersedes the previous result for that target.
type Store interface {
	// SaveResult upserts the latest result for result.Target.
	SaveResult(ctx context.Context, cycleID uint64, result *models.ProbeResult) error

	// GetResults returns the latest result for every known target.
	GetResults(ctx context.Context) ([]models.ProbeResult, error)

	// GetSummary aggregates the latest results into per-status counts.
	GetSummary(ctx context.Context) (*Summary, error)

	// Close releases any underlying resources.
	Close() error
}

// Summary aggregates the stored results. LastChecked is the most recent
// probe time across all targets, zero when nothing has been probed yet.
type Summary struct {
	TotalTargets int                   `json:"total_targets"`
	StatusCounts map[models.Status]int `json:"status_counts"`
	LastCycleID  uint64                `json:"last_cycle_id"`
	LastChecked  time.Time             `json:"last_checked,omitempty"`
}
