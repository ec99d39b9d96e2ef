package monitor

import (
	"context"
	"time"

	"oledmon/internal/display"
	"oledmon/internal/layout"
	"oledmon/internal/logger"
)

// Loop is the render-and-push cycle. It alternates between exactly two
// states: polling (collect facts, render, push) and idle (sleeping until
// the next tick). A cycle that fails is logged and abandoned; the loop
// itself only ever exits through context cancellation, observed while
// idle so the panel always holds a complete frame.
type Loop struct {
	collector *Collector
	engine    *layout.Engine
	driver    display.Driver
	interval  time.Duration
	log       logger.Logger
}

// NewLoop wires the pipeline together.
func NewLoop(collector *Collector, engine *layout.Engine, driver display.Driver, interval time.Duration, log logger.Logger) *Loop {
	return &Loop{
		collector: collector,
		engine:    engine,
		driver:    driver,
		interval:  interval,
		log:       log,
	}
}

// Run polls until ctx is cancelled. The first cycle runs immediately;
// subsequent cycles run on the fixed interval. Returns nil on a clean
// shutdown.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		// Polling. The cycle runs on a detached context: once started
		// it always completes, so shutdown can never tear a frame
		// mid-push.
		l.cycle(context.WithoutCancel(ctx))

		// Idle until the next tick or shutdown.
		select {
		case <-ctx.Done():
			l.log.Debug("shutdown requested, last frame complete")
			return nil
		case <-ticker.C:
		}
	}
}

// cycle performs one poll-render-push pass. A failed push leaves the
// previous frame on the panel one cycle longer; the next tick retries.
func (l *Loop) cycle(ctx context.Context) {
	snap := l.collector.Collect(ctx)
	frame := l.engine.Render(snap)
	if err := l.driver.Push(frame); err != nil {
		l.log.Warn("display push failed, keeping previous frame: %v", err)
	}
}
