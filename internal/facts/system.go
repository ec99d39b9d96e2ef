package facts

import (
	"context"
	"time"

	sd "github.com/coreos/go-systemd/v22/dbus"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"

	"oledmon/internal/errors"
)

// SystemProvider reads facts from the local host: uptime and CPU counters
// through gopsutil, unit states over the systemd D-Bus API.
type SystemProvider struct {
	conn *sd.Conn
}

// NewSystemProvider connects to the system bus and returns a provider.
// The connection is held for the life of the process; per-cycle queries
// reuse it rather than redialing.
func NewSystemProvider(ctx context.Context) (*SystemProvider, error) {
	conn, err := sd.NewSystemConnectionContext(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrFacts,
			"Cannot connect to systemd",
			"oledmon needs D-Bus access to query unit states - is this a systemd host?")
	}
	return &SystemProvider{conn: conn}, nil
}

// Uptime returns the host uptime.
func (p *SystemProvider) Uptime(ctx context.Context) (time.Duration, error) {
	seconds, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, errors.FactUnavailable("uptime", err)
	}
	return time.Duration(seconds) * time.Second, nil
}

// ServiceState queries one unit's ActiveState. A unit systemd has never
// heard of reports as unavailable rather than stopped, so a typo in the
// config shows up as a degraded cell instead of a plausible-looking one.
func (p *SystemProvider) ServiceState(ctx context.Context, unit string) (ServiceState, error) {
	load, err := p.conn.GetUnitPropertyContext(ctx, unit, "LoadState")
	if err != nil {
		return StateUnknown, errors.FactUnavailable("service state for "+unit, err)
	}
	if s, ok := load.Value.Value().(string); ok && s == "not-found" {
		return StateUnknown, errors.FactUnavailable("service state for "+unit,
			errors.New(errors.ErrFacts, "unit not found: "+unit, ""))
	}

	active, err := p.conn.GetUnitPropertyContext(ctx, unit, "ActiveState")
	if err != nil {
		return StateUnknown, errors.FactUnavailable("service state for "+unit, err)
	}
	state, ok := active.Value.Value().(string)
	if !ok {
		return StateUnknown, errors.FactUnavailable("service state for "+unit,
			errors.New(errors.ErrFacts, "unexpected ActiveState type", ""))
	}
	return mapActiveState(state), nil
}

// mapActiveState folds systemd's ActiveState values into the three display
// states. Transitional states (activating, deactivating, reloading) count
// as stopped: the cell lights up until the unit settles, which beats
// claiming health mid-restart.
func mapActiveState(state string) ServiceState {
	switch state {
	case "active":
		return StateRunning
	case "failed":
		return StateFailed
	default:
		return StateStopped
	}
}

// CPUCounters returns one (active, total) pair per core.
func (p *SystemProvider) CPUCounters(ctx context.Context) ([]CPUCounter, error) {
	stats, err := cpu.TimesWithContext(ctx, true)
	if err != nil {
		return nil, errors.FactUnavailable("CPU counters", err)
	}
	if len(stats) == 0 {
		return nil, errors.FactUnavailable("CPU counters",
			errors.New(errors.ErrFacts, "no per-core times reported", ""))
	}

	counters := make([]CPUCounter, len(stats))
	for i, stat := range stats {
		counters[i] = counterFromTimes(stat)
	}
	return counters, nil
}

// counterFromTimes converts a gopsutil times stat into an (active, total)
// pair. Idle and iowait both count as idle time.
func counterFromTimes(stat cpu.TimesStat) CPUCounter {
	total := stat.User + stat.System + stat.Nice + stat.Idle + stat.Iowait +
		stat.Irq + stat.Softirq + stat.Steal + stat.Guest + stat.GuestNice
	idle := stat.Idle + stat.Iowait
	return CPUCounter{Active: total - idle, Total: total}
}

// Close releases the D-Bus connection.
func (p *SystemProvider) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}
