// Package layout turns a system snapshot into a monochrome bitmap. The
// renderer is a pure function: identical snapshots always produce
// bit-identical frames, and every frame is drawn from scratch so a cell
// that changed state can never leave stale pixels behind.
package layout

import (
	"fmt"
	"image"
	"math"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"oledmon/internal/facts"
)

// ServiceCell is one service as it appears in the service band.
type ServiceCell struct {
	Abbrev string
	State  facts.ServiceState
}

// Snapshot is the immutable input to one render: everything the panel
// shows for one poll cycle. Slice order is positionally significant -
// services render left to right in configured order, CPU bars in core
// index order.
type Snapshot struct {
	Uptime   time.Duration
	Services []ServiceCell
	CPU      []float64
}

// Cell and margin geometry, inherited from the 128x64 layout this display
// format was designed around.
const (
	MarginX    = 2
	CellWidth  = 23
	CellHeight = 13
	CellGap    = 2

	// cellInset is the offset of the nested emphasis rectangle drawn for
	// failed cells, and of the abbreviation text.
	cellInset = 2
)

// Engine renders snapshots at a fixed panel geometry. The band offsets are
// computed once at construction; they depend only on the geometry, never on
// the snapshot, so an empty service list cannot shift the other bands.
//
// The band fractions (5/16 and 5/8 of the height) assume a panel at least
// 48 rows tall: below that the 13px text face no longer clears the uptime
// band before the service band starts, and bands would draw over each
// other. Config validation rejects shorter panels.
type Engine struct {
	width  int
	height int

	uptimeTop  int
	serviceTop int
	cpuTop     int
}

// NewEngine creates a renderer for the given panel size.
func NewEngine(width, height int) *Engine {
	return &Engine{
		width:      width,
		height:     height,
		uptimeTop:  MarginX,
		serviceTop: height * 5 / 16,
		cpuTop:     height * 5 / 8,
	}
}

// ServiceBandTop returns the y offset of the service band.
func (e *Engine) ServiceBandTop() int { return e.serviceTop }

// CPUBandTop returns the y offset of the CPU meter band.
func (e *Engine) CPUBandTop() int { return e.cpuTop }

// MaxServiceCells returns how many service cells fit the panel width.
// Services beyond this render nothing: the band truncates rather than
// wraps, so cell positions stay deterministic.
func (e *Engine) MaxServiceCells() int {
	return (e.width - MarginX) / (CellWidth + CellGap)
}

// Render draws the snapshot into a fresh frame.
func (e *Engine) Render(snap Snapshot) *Frame {
	f := NewFrame(e.width, e.height)

	drawText(f, MarginX, e.uptimeTop, FormatUptime(snap.Uptime))
	e.renderServices(f, snap.Services)
	e.renderCPU(f, snap.CPU)

	return f
}

// renderServices draws one fixed-width cell per service, left to right.
// Running cells stay blank - the absence of a mark is the healthy signal.
func (e *Engine) renderServices(f *Frame, services []ServiceCell) {
	maxCells := e.MaxServiceCells()
	cellH := CellHeight
	if avail := e.cpuTop - e.serviceTop - 1; avail < cellH {
		cellH = avail
	}

	for i, svc := range services {
		if i >= maxCells {
			break
		}
		x := MarginX + i*(CellWidth+CellGap)
		y := e.serviceTop
		cell := image.Rect(x, y, x+CellWidth, y+cellH)

		switch svc.State {
		case facts.StateRunning:
			// No glyph. A lit cell always means attention is needed.
		case facts.StateStopped:
			drawRect(f, cell)
			drawText(f, x+cellInset+1, y+1, svc.Abbrev)
		default:
			// Failed and unknown both get doubled emphasis.
			drawRect(f, cell)
			drawRect(f, cell.Inset(cellInset))
			drawText(f, x+cellInset+1, y+1, svc.Abbrev)
		}
	}
}

// renderCPU draws one vertical bar per core, filling the band width.
func (e *Engine) renderCPU(f *Frame, cpu []float64) {
	if len(cpu) == 0 {
		return
	}

	bandBottom := e.height - 1
	bandH := bandBottom - e.cpuTop
	if bandH <= 0 {
		return
	}

	barW := (e.width - MarginX) / len(cpu)
	if barW < 2 {
		barW = 2
	}

	for i, util := range cpu {
		util = clamp01(util)
		x := MarginX + i*barW
		if x+barW > e.width {
			break
		}
		h := int(math.Round(util * float64(bandH)))
		if h == 0 {
			continue
		}
		// One pixel of air between adjacent bars.
		fillRect(f, image.Rect(x, bandBottom-h, x+barW-1, bandBottom))
	}
}

// UptimeUnknown marks an uptime that could not be read this cycle. It
// renders as a visible placeholder, never as a plausible-looking zero.
const UptimeUnknown = time.Duration(-1)

// FormatUptime renders an uptime as days/hours/minutes, dropping leading
// zero components ("2d 3h 0m", "3h 12m", "42m"). Negative values render
// as the unknown placeholder.
func FormatUptime(d time.Duration) string {
	if d < 0 {
		return "up ?"
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("up %dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("up %dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("up %dm", minutes)
	}
}

// drawText draws s with its top-left corner at (x, y) using the built-in
// 7x13 face. Glyphs falling outside the frame clip silently.
func drawText(f *Frame, x, y int, s string) {
	d := font.Drawer{
		Dst:  f,
		Src:  &image.Uniform{image1bit.On},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

// clamp01 bounds a utilization to [0,1]; NaN counts as zero. The sampler
// already clamps, but geometry math must never see a wild value.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
