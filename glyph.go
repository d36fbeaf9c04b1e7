package epf

// Glyphs are identified by their position in the font's glyph table.
type GlyphIndex uint16

// A Glyph describes the raster and metrics of a single glyph. The raster
// itself is not stored here; it lives zlib-compressed in the font's bitmap
// blob, starting at DataOffset and spanning CompressedSize bytes, and it
// inflates to exactly Width*Height bytes (one intensity byte per pixel,
// of which only the top 4 bits are ever drawn).
//
// Left and Top position the raster's top-left corner relative to the
// drawing origin: the first raster row is drawn at (y - Top) and the first
// column at (x + Left), with y being the text baseline.
type Glyph struct {
	Width  uint16
	Height uint16
	Left   int16
	Top    int16
	AdvanceX uint16
	DataOffset uint32
	CompressedSize uint16
}

// RasterSize returns the uncompressed bitmap size of the glyph, in bytes.
func (self *Glyph) RasterSize() int {
	return int(self.Width)*int(self.Height)
}

// An Interval maps the inclusive code point range [First, Last] to a
// contiguous run of glyphs starting at Offset, one glyph per code point.
// Font intervals are sorted ascending and never overlap.
type Interval struct {
	First rune
	Last  rune
	Offset GlyphIndex
}

// Contains returns whether the code point falls within the interval.
func (self *Interval) Contains(codePoint rune) bool {
	return codePoint >= self.First && codePoint <= self.Last
}
