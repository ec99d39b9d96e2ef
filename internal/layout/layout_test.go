package layout

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"oledmon/internal/facts"
)

func testEngine() *Engine {
	return NewEngine(128, 64)
}

// cellOrigin returns the top-left pixel of service cell i.
func cellOrigin(e *Engine, i int) (int, int) {
	return MarginX + i*(CellWidth+CellGap), e.ServiceBandTop()
}

func TestRenderServiceStates(t *testing.T) {
	e := testEngine()
	snap := Snapshot{
		Uptime: 51 * time.Hour,
		Services: []ServiceCell{
			{Abbrev: "WEB", State: facts.StateRunning},
			{Abbrev: "DB", State: facts.StateStopped},
			{Abbrev: "CCH", State: facts.StateFailed},
		},
		CPU: []float64{0.1, 0.9},
	}

	f := e.Render(snap)

	// Running: the whole cell stays dark.
	x, y := cellOrigin(e, 0)
	for dy := 0; dy < CellHeight; dy++ {
		for dx := 0; dx < CellWidth; dx++ {
			assert.False(t, f.On(x+dx, y+dy), "running cell must be blank at +%d,+%d", dx, dy)
		}
	}

	// Stopped: outer outline lit, no nested rectangle.
	x, y = cellOrigin(e, 1)
	assert.True(t, f.On(x, y), "stopped cell outline corner")
	assert.False(t, f.On(x+cellInset, y+cellInset), "stopped cell has no inner rectangle")

	// Failed: outer outline and nested emphasis rectangle both lit.
	x, y = cellOrigin(e, 2)
	assert.True(t, f.On(x, y), "failed cell outline corner")
	assert.True(t, f.On(x+cellInset, y+cellInset), "failed cell inner rectangle corner")
}

func TestRenderUnknownMatchesFailed(t *testing.T) {
	e := testEngine()
	base := Snapshot{Uptime: time.Hour, CPU: []float64{0.5}}

	failed := base
	failed.Services = []ServiceCell{{Abbrev: "DB", State: facts.StateFailed}}
	unknown := base
	unknown.Services = []ServiceCell{{Abbrev: "DB", State: facts.StateUnknown}}

	assert.True(t, e.Render(failed).Equal(e.Render(unknown)),
		"unknown must render with failed-style emphasis")
}

func TestRenderCPUBars(t *testing.T) {
	e := testEngine()
	f := e.Render(Snapshot{Uptime: time.Hour, CPU: []float64{0.1, 0.9}})

	bandTop := e.CPUBandTop()
	bandBottom := 63
	barW := (128 - MarginX) / 2

	// Core 0 at 10%: lit near the bottom, dark in the upper band.
	assert.True(t, f.On(MarginX+5, bandBottom-1))
	assert.False(t, f.On(MarginX+5, bandTop+5))

	// Core 1 at 90%: lit almost to the top of the band.
	x1 := MarginX + barW + 5
	assert.True(t, f.On(x1, bandBottom-1))
	assert.True(t, f.On(x1, bandTop+4))
	assert.False(t, f.On(x1, bandTop))
}

func TestRenderCPUZeroAndFull(t *testing.T) {
	e := testEngine()
	f := e.Render(Snapshot{CPU: []float64{0.0, 1.0}})

	bandBottom := 63
	barW := (128 - MarginX) / 2

	// 0% draws nothing at all in its column.
	for y := e.CPUBandTop(); y <= bandBottom; y++ {
		assert.False(t, f.On(MarginX+3, y), "zero bar must be empty at y=%d", y)
	}
	// 100% fills the whole band height.
	assert.True(t, f.On(MarginX+barW+3, e.CPUBandTop()+1))
	assert.True(t, f.On(MarginX+barW+3, bandBottom-1))
}

func TestRenderClampsWildUtilization(t *testing.T) {
	e := testEngine()

	// Must not panic, and must behave as if clamped.
	wild := e.Render(Snapshot{CPU: []float64{math.NaN(), -3, 42}})
	tame := e.Render(Snapshot{CPU: []float64{0, 0, 1}})

	assert.True(t, wild.Equal(tame))
}

func TestRenderIsPure(t *testing.T) {
	snap := Snapshot{
		Uptime: 2*24*time.Hour + 3*time.Hour,
		Services: []ServiceCell{
			{Abbrev: "NGX", State: facts.StateStopped},
			{Abbrev: "GRA", State: facts.StateFailed},
		},
		CPU: []float64{0.25, 0.5, 0.75, 1.0},
	}

	e := testEngine()
	first := e.Render(snap)
	second := e.Render(snap)
	assert.True(t, first.Equal(second), "identical snapshots must yield bit-identical frames")

	// A fresh engine at the same geometry agrees too.
	third := NewEngine(128, 64).Render(snap)
	assert.True(t, first.Equal(third))
}

func TestReservedBandInvariant(t *testing.T) {
	e := testEngine()
	cpu := []float64{0.3, 0.6}
	uptime := 5 * time.Hour

	empty := e.Render(Snapshot{Uptime: uptime, CPU: cpu})
	full := e.Render(Snapshot{
		Uptime:   uptime,
		Services: []ServiceCell{{Abbrev: "NGX", State: facts.StateFailed}},
		CPU:      cpu,
	})

	// Uptime band and CPU band must sit at identical pixel offsets whether
	// or not any services are configured.
	for y := 0; y < e.ServiceBandTop(); y++ {
		for x := 0; x < 128; x++ {
			assert.Equal(t, empty.On(x, y), full.On(x, y), "uptime band differs at %d,%d", x, y)
		}
	}
	for y := e.CPUBandTop(); y < 64; y++ {
		for x := 0; x < 128; x++ {
			assert.Equal(t, empty.On(x, y), full.On(x, y), "cpu band differs at %d,%d", x, y)
		}
	}
}

func TestServiceBandTruncates(t *testing.T) {
	e := testEngine()
	require.Equal(t, 5, e.MaxServiceCells())

	many := make([]ServiceCell, 8)
	for i := range many {
		many[i] = ServiceCell{Abbrev: "SVC", State: facts.StateFailed}
	}

	truncated := e.Render(Snapshot{Services: many})
	exact := e.Render(Snapshot{Services: many[:5]})
	assert.True(t, truncated.Equal(exact), "cells past the panel edge must be dropped")
}

func TestMixedScenario(t *testing.T) {
	// services = web:Running, db:Stopped, cache:Failed; uptime 2d3h;
	// cpu = 10% and 90%.
	e := testEngine()
	f := e.Render(Snapshot{
		Uptime: 2*24*time.Hour + 3*time.Hour,
		Services: []ServiceCell{
			{Abbrev: "WEB", State: facts.StateRunning},
			{Abbrev: "DB", State: facts.StateStopped},
			{Abbrev: "CCH", State: facts.StateFailed},
		},
		CPU: []float64{0.1, 0.9},
	})

	// Uptime text present: something is lit in the top band.
	lit := false
	for y := 0; y < e.ServiceBandTop() && !lit; y++ {
		for x := 0; x < 128; x++ {
			if f.On(x, y) {
				lit = true
				break
			}
		}
	}
	assert.True(t, lit, "uptime band must contain text pixels")

	x0, y0 := cellOrigin(e, 0)
	assert.False(t, f.On(x0, y0))
	x1, y1 := cellOrigin(e, 1)
	assert.True(t, f.On(x1, y1))
	assert.False(t, f.On(x1+cellInset, y1+cellInset))
	x2, y2 := cellOrigin(e, 2)
	assert.True(t, f.On(x2, y2))
	assert.True(t, f.On(x2+cellInset, y2+cellInset))
}

func TestRenderBandsStayDisjoint(t *testing.T) {
	// Every geometry config validation admits, not just 128x64. Each
	// band's pixels must stay inside its own row range: uptime text above
	// the service band, cells between the service and CPU offsets, bars
	// below the CPU offset.
	geometries := []struct{ w, h int }{
		{128, 64},
		{128, 56},
		{128, 48},
		{96, 48},
	}

	uptime := 2*24*time.Hour + 3*time.Hour + 4*time.Minute

	for _, g := range geometries {
		t.Run(fmt.Sprintf("%dx%d", g.w, g.h), func(t *testing.T) {
			e := NewEngine(g.w, g.h)
			base := e.Render(Snapshot{Uptime: uptime})

			// Uptime text never reaches the service band.
			for y := e.ServiceBandTop(); y < g.h; y++ {
				for x := 0; x < g.w; x++ {
					assert.False(t, base.On(x, y), "uptime text bleeds to %d,%d", x, y)
				}
			}

			// A worst-case cell (failed emphasis plus label) changes only
			// rows between the service and CPU band offsets.
			withSvc := e.Render(Snapshot{
				Uptime:   uptime,
				Services: []ServiceCell{{Abbrev: "WWW", State: facts.StateFailed}},
			})
			for y := 0; y < g.h; y++ {
				if y >= e.ServiceBandTop() && y < e.CPUBandTop() {
					continue
				}
				for x := 0; x < g.w; x++ {
					assert.Equal(t, base.On(x, y), withSvc.On(x, y), "service cell bleeds to %d,%d", x, y)
				}
			}

			// Full-height bars change nothing above the CPU band offset.
			withCPU := e.Render(Snapshot{Uptime: uptime, CPU: []float64{1, 1}})
			for y := 0; y < e.CPUBandTop(); y++ {
				for x := 0; x < g.w; x++ {
					assert.Equal(t, base.On(x, y), withCPU.On(x, y), "cpu bar bleeds to %d,%d", x, y)
				}
			}
		})
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{2*24*time.Hour + 3*time.Hour + 4*time.Minute, "up 2d 3h 4m"},
		{3*time.Hour + 12*time.Minute, "up 3h 12m"},
		{42 * time.Minute, "up 42m"},
		{0, "up 0m"},
		{UptimeUnknown, "up ?"},
		{-time.Hour, "up ?"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatUptime(tt.d))
		})
	}
}

func TestFrameEqual(t *testing.T) {
	a := NewFrame(128, 64)
	b := NewFrame(128, 64)
	assert.True(t, a.Equal(b))

	b.SetBit(3, 7, image1bit.On)
	assert.False(t, a.Equal(b))

	assert.False(t, a.Equal(NewFrame(128, 32)))
	assert.False(t, a.Equal(nil))
}
