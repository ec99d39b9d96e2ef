package layout

import (
	"bytes"
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Frame is a fixed-size single-bit frame buffer in the vertical-LSB layout
// the SSD1306 consumes natively, so a rendered frame can be pushed to the
// panel without a conversion pass. It is mutable while the engine draws
// into it and must be treated as read-only once handed to a driver.
type Frame struct {
	*image1bit.VerticalLSB
}

// NewFrame allocates a cleared frame of the given pixel dimensions.
func NewFrame(width, height int) *Frame {
	return &Frame{image1bit.NewVerticalLSB(image.Rect(0, 0, width, height))}
}

// On reports whether the pixel at (x, y) is lit.
func (f *Frame) On(x, y int) bool {
	return bool(f.BitAt(x, y))
}

// Equal reports whether two frames are bit-identical.
func (f *Frame) Equal(other *Frame) bool {
	if other == nil {
		return false
	}
	return f.Bounds() == other.Bounds() && bytes.Equal(f.Pix, other.Pix)
}

// drawRect lights the one-pixel outline of r, clipped to the frame.
func drawRect(f *Frame, r image.Rectangle) {
	r = r.Intersect(f.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		f.SetBit(x, r.Min.Y, image1bit.On)
		f.SetBit(x, r.Max.Y-1, image1bit.On)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		f.SetBit(r.Min.X, y, image1bit.On)
		f.SetBit(r.Max.X-1, y, image1bit.On)
	}
}

// fillRect lights every pixel of r, clipped to the frame.
func fillRect(f *Frame, r image.Rectangle) {
	r = r.Intersect(f.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			f.SetBit(x, y, image1bit.On)
		}
	}
}
