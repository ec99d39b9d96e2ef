package display

import (
	"strings"

	"oledmon/internal/layout"
)

// Half-block glyphs pack two frame rows into one terminal row, keeping a
// 128x64 frame inside a standard 80x24-ish terminal.
const (
	blockFull  = '█'
	blockUpper = '▀'
	blockLower = '▄'
	blockNone  = ' '
)

// Blocks renders a frame as unicode half blocks, one rune per pixel
// column, two pixel rows per line.
func Blocks(f *layout.Frame) string {
	if f == nil {
		return ""
	}

	b := f.Bounds()
	var sb strings.Builder
	sb.Grow((b.Dx() + 1) * (b.Dy()/2 + 1))

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			upper := f.On(x, y)
			lower := y+1 < b.Max.Y && f.On(x, y+1)
			switch {
			case upper && lower:
				sb.WriteRune(blockFull)
			case upper:
				sb.WriteRune(blockUpper)
			case lower:
				sb.WriteRune(blockLower)
			default:
				sb.WriteRune(blockNone)
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Terminal is a Driver that hands frames to a consumer over a channel.
// The preview TUI reads from Frames; when the consumer falls behind, the
// newest frame wins and older ones are dropped.
type Terminal struct {
	frames chan *layout.Frame
}

// NewTerminal creates a terminal driver with a single-frame buffer.
func NewTerminal() *Terminal {
	return &Terminal{frames: make(chan *layout.Frame, 1)}
}

// Frames exposes the stream of pushed frames.
func (t *Terminal) Frames() <-chan *layout.Frame { return t.frames }

// Push delivers the frame, displacing an unconsumed one if needed.
func (t *Terminal) Push(f *layout.Frame) error {
	for {
		select {
		case t.frames <- f:
			return nil
		default:
			select {
			case <-t.frames:
			default:
			}
		}
	}
}

// Close releases the frame stream.
func (t *Terminal) Close() error {
	close(t.frames)
	return nil
}
