package epf

import "math"
import "image"

// charBounds extends the running min/max box with the bounding box of a
// single glyph drawn with the cursor at x, and returns the advanced cursor.
// Code points not covered by the font contribute no bounds and no advance,
// mirroring the rasterizer's skip policy.
func (self *Font) charBounds(codePoint rune, x, y int, box image.Rectangle) (int, image.Rectangle) {
	glyph, found := self.Lookup(codePoint)
	if !found { return x, box }

	x1 := x + int(glyph.Left)
	y1 := y + int(glyph.Top) - int(glyph.Height)
	x2 := x1 + int(glyph.Width)
	y2 := y1 + int(glyph.Height)
	if x1 < box.Min.X { box.Min.X = x1 }
	if y1 < box.Min.Y { box.Min.Y = y1 }
	if x2 > box.Max.X { box.Max.X = x2 }
	if y2 > box.Max.Y { box.Max.Y = y2 }
	return x + int(glyph.AdvanceX), box
}

// TextBounds computes the minimal rectangle covering every glyph of the
// text when drawn with the cursor starting at (x, y), without drawing
// anything. The text must be a single line; the composer measures
// multi-line input one line at a time.
//
// If no code point of the text resolves to a glyph, the zero rectangle is
// returned; callers must check [image.Rectangle.Empty] before sizing
// buffers or refresh regions from the result.
func (self *Font) TextBounds(text string, x, y int) image.Rectangle {
	// seed min above and max below any realistic coordinate
	// (image.Rect can't be used here, it reorders the corners)
	box := image.Rectangle{
		Min: image.Point{X: math.MaxInt, Y: math.MaxInt},
		Max: image.Point{X: math.MinInt, Y: math.MinInt},
	}
	scanX := x
	for index := 0; index < len(text); {
		var codePoint rune
		codePoint, index = NextCodePoint(text, index)
		scanX, box = self.charBounds(codePoint, scanX, y, box)
	}
	if box.Max.X < box.Min.X { return image.Rectangle{} } // nothing resolved

	// the box starts no later than the requested origin
	if x < box.Min.X { box.Min.X = x }
	return box
}
