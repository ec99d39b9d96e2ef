package monitor

import (
	"context"
	"sync"
	"time"

	"oledmon/internal/facts"
	"oledmon/internal/layout"
)

// fakeProvider is an in-memory facts.Provider with per-fact failure
// injection.
type fakeProvider struct {
	uptime      time.Duration
	uptimeErr   error
	states      map[string]facts.ServiceState
	stateErrs   map[string]error
	counters    []facts.CPUCounter
	countersErr error
}

func (p *fakeProvider) Uptime(ctx context.Context) (time.Duration, error) {
	return p.uptime, p.uptimeErr
}

func (p *fakeProvider) ServiceState(ctx context.Context, unit string) (facts.ServiceState, error) {
	if err := p.stateErrs[unit]; err != nil {
		return facts.StateUnknown, err
	}
	return p.states[unit], nil
}

func (p *fakeProvider) CPUCounters(ctx context.Context) ([]facts.CPUCounter, error) {
	if p.countersErr != nil {
		return nil, p.countersErr
	}
	return p.counters, nil
}

func (p *fakeProvider) Close() error { return nil }

// fakeDriver records pushed frames and signals each push attempt, so
// tests can wait for a cycle count instead of sleeping.
type fakeDriver struct {
	mu      sync.Mutex
	frames  []*layout.Frame
	pushErr error
	pushed  chan struct{}
	closed  bool
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{pushed: make(chan struct{}, 64)}
}

func (d *fakeDriver) Push(f *layout.Frame) error {
	d.mu.Lock()
	d.frames = append(d.frames, f)
	err := d.pushErr
	d.mu.Unlock()

	select {
	case d.pushed <- struct{}{}:
	default:
	}
	return err
}

func (d *fakeDriver) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return nil
}

func (d *fakeDriver) pushCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

func (d *fakeDriver) lastFrame() *layout.Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}
