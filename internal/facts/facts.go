// Package facts reads raw system state: uptime, systemd unit states, and
// per-core CPU time counters. It is a thin boundary over the host OS; all
// interpretation (deltas, rendering) happens elsewhere.
package facts

import (
	"context"
	"time"
)

// ServiceState is the observed state of one monitored unit.
type ServiceState int

const (
	// StateRunning means the unit is active. Rendered as a blank cell.
	StateRunning ServiceState = iota
	// StateStopped means the unit is loaded but not active.
	StateStopped
	// StateFailed means the unit entered the failed state.
	StateFailed
	// StateUnknown means the state could not be determined this cycle.
	// Rendered with Failed-style emphasis: an unreachable service must
	// never be presented as healthy.
	StateUnknown
)

func (s ServiceState) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CPUCounter is one core's monotonically increasing (active, total) CPU
// time pair, in seconds of CPU time since boot. Utilization over an
// interval is the ratio of the two deltas.
type CPUCounter struct {
	Active float64
	Total  float64
}

// Provider supplies raw system facts. Implementations must be safe to call
// once per poll cycle; each method failure is isolated by the caller, so a
// broken data source degrades its band rather than the whole display.
type Provider interface {
	// Uptime returns how long the host has been up.
	Uptime(ctx context.Context) (time.Duration, error)

	// ServiceState returns the state of one unit by full name
	// (e.g. "nginx.service").
	ServiceState(ctx context.Context, unit string) (ServiceState, error)

	// CPUCounters returns one counter pair per core, indexed by core.
	CPUCounters(ctx context.Context) ([]CPUCounter, error)

	// Close releases any held OS handles (e.g. the D-Bus connection).
	Close() error
}
