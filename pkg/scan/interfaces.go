package scan

import (
	"context"
	"time"

	"github.com/GrantKop/is-the-port-open/pkg/models"
)

//go:generate mockgen -destination=mock_scan.go -package=scan github.com/GrantKop/is-the-port-open/pkg/scan Prober

// Prober performs one reachability check against one target. The call blocks
// until the probe settles or ctx is cancelled; it always returns a terminal
// result.
type Prober interface {
	Check(ctx context.Context, target models.Target, timeout time.Duration) models.ProbeResult
}
