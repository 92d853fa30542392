// Package models pkg/models/checker.go holds the shared types for the
// reachability engine.
package models

import "time"

// Status classifies the outcome of a single TCP reachability probe.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusTimeout Status = "TIMEOUT"
	StatusDNSFail Status = "DNS_FAIL"
	StatusError   Status = "ERROR"
)

// Target represents a named host:port pair to be probed.
type Target struct {
	Name string `json:"name"`
	Host string `json:"host"`
	Port int    `json:"port"`
}

// Addr returns the target identity as "host:port" without the name. Two
// targets with different names may still share an Addr.
func (t Target) Addr() string {
	return JoinHostPort(t.Host, t.Port)
}

// ProbeResult is the terminal outcome of one probe attempt. Latency is only
// meaningful when Status is OPEN. Error carries a diagnostic string for
// ERROR results and is empty otherwise.
type ProbeResult struct {
	Target    Target        `json:"target"`
	Status    Status        `json:"status"`
	Latency   time.Duration `json:"latency,omitempty"`
	Error     string        `json:"error,omitempty"`
	CheckedAt time.Time     `json:"checked_at"`
}

// CycleTrigger records what started a scan cycle.
type CycleTrigger string

const (
	TriggerManual CycleTrigger = "manual"
	TriggerAuto   CycleTrigger = "auto"
)

// CycleState tracks the lifecycle of a scan cycle.
type CycleState string

const (
	CycleRunning   CycleState = "running"
	CycleCompleted CycleState = "completed"
	CycleCancelled CycleState = "cancelled"
)
