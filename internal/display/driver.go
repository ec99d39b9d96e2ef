// Package display pushes rendered frames to an output device. The
// hardware path is an SSD1306 panel on an I2C bus; a terminal renderer
// backs the preview command and the loop tests.
package display

import "oledmon/internal/layout"

// Driver accepts complete frames. Push replaces the entire panel
// contents; partial updates are never issued, so a driver never has to
// reconcile a frame against what it pushed before.
type Driver interface {
	Push(f *layout.Frame) error
	Close() error
}
