package monitor

import (
	"context"

	"oledmon/internal/config"
	"oledmon/internal/facts"
	"oledmon/internal/layout"
	"oledmon/internal/logger"
)

// Collector assembles one snapshot per cycle from the facts provider.
// Failure isolation is per-fact: a single unreadable fact degrades its own
// presentation (unknown service emphasis, placeholder uptime, empty CPU
// bars) and the cycle carries on. Collect never returns an error.
type Collector struct {
	provider facts.Provider
	sampler  *Sampler
	services []config.ServiceConfig
	log      logger.Logger
}

// NewCollector creates a collector for the configured service list.
func NewCollector(provider facts.Provider, services []config.ServiceConfig, log logger.Logger) *Collector {
	return &Collector{
		provider: provider,
		sampler:  NewSampler(),
		services: services,
		log:      log,
	}
}

// Collect gathers all facts for one cycle and returns the snapshot to
// render.
func (c *Collector) Collect(ctx context.Context) layout.Snapshot {
	snap := layout.Snapshot{
		Uptime:   layout.UptimeUnknown,
		Services: make([]layout.ServiceCell, 0, len(c.services)),
	}

	if uptime, err := c.provider.Uptime(ctx); err != nil {
		c.log.Warn("uptime unavailable: %v", err)
	} else {
		snap.Uptime = uptime
	}

	for _, svc := range c.services {
		state, err := c.provider.ServiceState(ctx, svc.Unit)
		if err != nil {
			// Unknown renders with failed-style emphasis; it must
			// never pass as healthy.
			c.log.Warn("state of %s unavailable: %v", svc.Unit, err)
			state = facts.StateUnknown
		}
		snap.Services = append(snap.Services, layout.ServiceCell{
			Abbrev: svc.DeriveAbbrev(),
			State:  state,
		})
	}

	counters, err := c.provider.CPUCounters(ctx)
	if err != nil {
		// Empty bars at the known core count; the meters go dark
		// instead of freezing at a stale height.
		c.log.Warn("CPU counters unavailable: %v", err)
		snap.CPU = make([]float64, c.sampler.Cores())
		return snap
	}
	snap.CPU = c.sampler.Sample(counters)

	return snap
}
