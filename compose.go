package epf

import "image"
import "errors"
import "strings"

// A Display receives finished line rasters for physical refresh. The
// buffer is sized exactly to the area ((area.Dx() + 1)/2 bytes per row,
// area.Dy() rows) and is only valid for the duration of the call.
//
// This is the boundary to the device driver; implementations typically
// wrap an e-paper controller's partial refresh command.
type Display interface {
	DrawGrayscale(area image.Rectangle, buffer *Buffer) error
}

// ErrNoOutput is returned when rendering is attempted on a renderer that
// has neither a target buffer nor a display configured.
var ErrNoOutput = errors.New("renderer has no target buffer and no display")

// A Renderer composes multi-line text for a single font and output.
//
// Output goes to one of two places:
//  - A caller-owned full framebuffer set with [Renderer.SetTarget]. Text
//    is drawn at absolute coordinates and the caller flushes the buffer
//    to the device whenever it sees fit.
//  - A [Display] set with [Renderer.SetDisplay]. Each line is rasterized
//    into a transient minimal buffer sized to the line's bounds and
//    submitted as one refresh region; nothing persists between lines.
//
// When both are set, the target buffer wins and the display is not used.
// Renderers hold no other state and are not safe for concurrent use on
// the same target buffer.
type Renderer struct {
	font *Font
	target *Buffer
	display Display
}

// NewRenderer creates a renderer for the given font.
func NewRenderer(font *Font) *Renderer {
	if font == nil { panic("renderer can't accept nil font") }
	return &Renderer{font: font}
}

// Font returns the font the renderer draws with.
func (self *Renderer) Font() *Font { return self.font }

// SetTarget sets the caller-owned framebuffer to draw into. Pass nil to
// switch back to per-line display submission.
func (self *Renderer) SetTarget(target *Buffer) { self.target = target }

// SetDisplay sets the display that receives per-line refresh regions.
func (self *Renderer) SetDisplay(display Display) { self.display = display }

// WriteString renders the text with the cursor starting at (x, y), y being
// the baseline of the first line. The input is split on '\n'; every line
// starts back at the original x column, and y advances by the font's line
// advance after each line, independently of the line's visual height.
//
// The updated cursor is returned: x at the starting column, y below the
// last line. Rendering stops at the first error.
func (self *Renderer) WriteString(text string, x, y int) (int, int, error) {
	for _, line := range strings.Split(text, "\n") {
		err := self.writeLine(line, x, y)
		if err != nil { return x, y, err }
		y += self.font.LineAdvance()
	}
	return x, y, nil
}

func (self *Renderer) writeLine(line string, x, y int) error {
	if self.target != nil {
		return self.drawLineInto(self.target, line, x, y)
	}
	if self.display == nil { return ErrNoOutput }

	bounds := self.font.TextBounds(line, x, y)
	if bounds.Empty() {
		// no resolvable glyphs; nothing to refresh
		Logger().Debug("skipping line with empty bounds", "line", line)
		return nil
	}

	// rasterize into a minimal white buffer with the baseline placed so
	// that the line's box exactly fills it, then hand it off as a single
	// refresh region
	w, h := bounds.Dx(), bounds.Dy()
	baselineHeight := y - bounds.Min.Y
	buffer := NewBuffer(w, h)
	buffer.Fill(255)
	err := self.drawLineInto(buffer, line, x - bounds.Min.X, h - baselineHeight)
	if err != nil { return err }

	area := image.Rect(bounds.Min.X, y - h + baselineHeight, bounds.Min.X + w, y + baselineHeight)
	Logger().Debug(
		"submitting line region",
		"x", area.Min.X, "y", area.Min.Y, "width", area.Dx(), "height", area.Dy(),
	)
	return self.display.DrawGrayscale(area, buffer)
}

func (self *Renderer) drawLineInto(target *Buffer, line string, x, y int) error {
	var err error
	for index := 0; index < len(line); {
		var codePoint rune
		codePoint, index = NextCodePoint(line, index)
		x, err = self.font.DrawCodePoint(target, x, y, codePoint)
		if err != nil { return err }
	}
	return nil
}
