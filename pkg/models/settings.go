package models

import (
	"net"
	"strconv"
	"time"
)

const (
	DefaultTimeoutSeconds     = 5.0
	DefaultMaxWorkers         = 10
	DefaultAutoRefreshSeconds = 0

	// MaxWorkersLimit caps the worker pool size a user may configure.
	MaxWorkersLimit = 500
)

// Settings holds the tunables for the probe engine. Timeout and worker count
// are read by value at the start of each cycle; changing them mid-cycle does
// not affect in-flight probes.
type Settings struct {
	TimeoutSeconds     float64 `json:"timeout_seconds"`
	MaxWorkers         int     `json:"max_workers"`
	AutoRefreshSeconds int     `json:"auto_refresh_seconds"`

	// RateLimit caps probe launches per second across the pool.
	// Zero disables rate limiting.
	RateLimit float64 `json:"rate_limit,omitempty"`

	// Proxy is an optional SOCKS5 proxy address ("host:port") probes are
	// dialed through. Empty means direct dialing.
	Proxy string `json:"proxy,omitempty"`
}

// DefaultSettings returns the engine defaults used when no stored state
// exists.
func DefaultSettings() Settings {
	return Settings{
		TimeoutSeconds:     DefaultTimeoutSeconds,
		MaxWorkers:         DefaultMaxWorkers,
		AutoRefreshSeconds: DefaultAutoRefreshSeconds,
	}
}

// Timeout returns the per-probe deadline as a duration.
func (s Settings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds * float64(time.Second))
}

// AutoRefreshInterval returns the auto-refresh period. Zero means the
// auto-refresh driver is disabled.
func (s Settings) AutoRefreshInterval() time.Duration {
	return time.Duration(s.AutoRefreshSeconds) * time.Second
}

// Workers returns MaxWorkers clamped to the valid range. The clamp is a
// safety net for values that bypassed Validate.
func (s Settings) Workers() int {
	if s.MaxWorkers < 1 {
		return 1
	}

	if s.MaxWorkers > MaxWorkersLimit {
		return MaxWorkersLimit
	}

	return s.MaxWorkers
}

// JoinHostPort formats host and numeric port into a dialable address.
func JoinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
