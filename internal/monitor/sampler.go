// Package monitor owns the poll cycle: deriving utilization from raw CPU
// counters, assembling snapshots with per-fact failure isolation, and the
// render-and-push loop that keeps the panel live.
package monitor

import (
	"oledmon/internal/facts"
)

// Sampler converts successive raw CPU counter readings into per-core
// utilization fractions. It holds exactly one previous reading - the only
// state in the pipeline that survives across cycles.
type Sampler struct {
	prev     []facts.CPUCounter
	reported []float64
	hasPrev  bool
}

// NewSampler creates a sampler with no history.
func NewSampler() *Sampler {
	return &Sampler{}
}

// Cores returns the core count of the last reading, or 0 before the first
// sample.
func (s *Sampler) Cores() int {
	return len(s.prev)
}

// Sample derives one utilization per core from the delta against the
// previous reading, clamped to [0,1].
//
// The first call (and any call where the core count changes, e.g. after a
// CPU hotplug) has no usable delta and reports zero for every core. A core
// whose total counter did not advance repeats its previously reported
// value rather than dividing by zero. The reading always replaces the
// stored previous one.
func (s *Sampler) Sample(raw []facts.CPUCounter) []float64 {
	utils := make([]float64, len(raw))

	usable := s.hasPrev && len(s.prev) == len(raw)
	for i, now := range raw {
		if !usable {
			continue
		}
		deltaTotal := now.Total - s.prev[i].Total
		deltaActive := now.Active - s.prev[i].Active
		if deltaTotal <= 0 {
			utils[i] = s.reported[i]
			continue
		}
		utils[i] = clampUtil(deltaActive / deltaTotal)
	}

	s.prev = append(s.prev[:0:0], raw...)
	s.reported = append(s.reported[:0:0], utils...)
	s.hasPrev = true
	return utils
}

func clampUtil(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
