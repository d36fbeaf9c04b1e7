package epf

import "image"
import "image/color"

// A Buffer is a packed 4bpp grayscale framebuffer: each byte holds two
// horizontally adjacent pixels, the even-indexed pixel in the high nibble
// and the odd-indexed pixel in the low nibble. Rows are stored top to
// bottom, (width + 1)/2 bytes per row.
//
// This matches the memory layout expected by grayscale e-paper and OLED
// controllers that take two 4-bit pixels per transferred byte.
//
// Buffers are not safe for concurrent use; callers must serialize access
// if the same buffer is touched from multiple goroutines.
type Buffer struct {
	width int
	height int
	stride int // bytes per row
	pix []byte
}

// NewBuffer creates a zeroed (all black) packed buffer of the given pixel
// dimensions. Dimensions must be strictly positive.
func NewBuffer(width, height int) *Buffer {
	if width <= 0 || height <= 0 { panic("buffer dimensions must be positive") }
	stride := (width + 1)/2
	return &Buffer{
		width: width,
		height: height,
		stride: stride,
		pix: make([]byte, stride*height),
	}
}

func (self *Buffer) Width() int { return self.width }
func (self *Buffer) Height() int { return self.height }
func (self *Buffer) Stride() int { return self.stride }

// Pix exposes the raw packed bytes, row-major, [Buffer.Stride] bytes per row.
func (self *Buffer) Pix() []byte { return self.pix }

// Fill sets every pixel to the top 4 bits of the given intensity.
func (self *Buffer) Fill(intensity uint8) {
	value := intensity >> 4
	packed := (value << 4) | value
	for i := 0; i < len(self.pix); i++ {
		self.pix[i] = packed
	}
}

// SetPixel writes the top 4 bits of the given intensity at (x, y). The
// sibling pixel sharing the byte is preserved. Coordinates outside the
// buffer are silently clipped.
func (self *Buffer) SetPixel(x, y int, intensity uint8) {
	if x < 0 || x >= self.width { return }
	if y < 0 || y >= self.height { return }
	pos := y*self.stride + x/2
	self.pix[pos] = packNibble(self.pix[pos], x % 2 == 1, intensity >> 4)
}

// PixelAt returns the stored 4-bit intensity (0..15) at (x, y), or zero
// for coordinates outside the buffer.
func (self *Buffer) PixelAt(x, y int) uint8 {
	if x < 0 || x >= self.width { return 0 }
	if y < 0 || y >= self.height { return 0 }
	packed := self.pix[y*self.stride + x/2]
	if x % 2 == 1 { return packed & 0x0F }
	return packed >> 4
}

// packNibble merges a 4-bit value into one half of a packed byte,
// preserving the other half. Values above 0x0F are masked.
func packNibble(current byte, low bool, value byte) byte {
	if low { return (current & 0xF0) | (value & 0x0F) }
	return (current & 0x0F) | ((value & 0x0F) << 4)
}

// --- image.Image conformance ---
// Having buffers behave as standard images makes them easy to inspect,
// diff in tests and dump to png while debugging display issues.

func (self *Buffer) ColorModel() color.Model { return color.GrayModel }
func (self *Buffer) Bounds() image.Rectangle { return image.Rect(0, 0, self.width, self.height) }
func (self *Buffer) At(x, y int) color.Color {
	value := self.PixelAt(x, y)
	return color.Gray{Y: (value << 4) | value}
}
