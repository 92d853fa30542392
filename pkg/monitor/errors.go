package monitor

import "errors"

var (
	errProberInit = errors.New("failed to initialize prober")
	errStopped    = errors.New("monitor is stopped")
)
