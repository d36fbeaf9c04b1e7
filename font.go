package epf

import "errors"
import "fmt"

import "github.com/greyink/epf/internal"

// A Font is a read-only object holding everything needed to render text
// on a packed grayscale framebuffer:
//  - An ordered glyph table with per-glyph metrics (see [Glyph]).
//  - An ascending, non-overlapping code point interval table mapping
//    code point ranges to contiguous glyph runs (see [Interval]).
//  - A blob with every glyph's zlib-compressed bitmap bytes.
//  - The line advance (vertical distance between text baselines).
//
// Fonts are created through [New], [Parse] or the builder subpackage,
// and are never mutated afterwards; they can be shared freely between
// goroutines without locking.
type Font struct {
	name string
	glyphs []Glyph
	intervals []Interval
	bitmap []byte
	lineAdvance uint16
}

// New creates a font from its raw components and validates it.
// The given slices are retained by the font and must not be modified
// afterwards.
func New(name string, glyphs []Glyph, intervals []Interval, bitmap []byte, lineAdvance int) (*Font, error) {
	if lineAdvance < 0 || lineAdvance > 65535 {
		return nil, errors.New("line advance outside the uint16 range")
	}
	err := internal.ValidateSpacedName(name)
	if err != nil { return nil, err }
	font := &Font{
		name: name,
		glyphs: glyphs,
		intervals: intervals,
		bitmap: bitmap,
		lineAdvance: uint16(lineAdvance),
	}
	err = font.Validate()
	if err != nil { return nil, err }
	return font, nil
}

// --- accessors ---

func (self *Font) Name() string { return self.name }
func (self *Font) NumGlyphs() int { return len(self.glyphs) }
func (self *Font) NumIntervals() int { return len(self.intervals) }

// Glyph returns the glyph record at the given index. The index must come
// from [Font.GlyphIndex] or be below [Font.NumGlyphs].
func (self *Font) Glyph(index GlyphIndex) Glyph {
	return self.glyphs[index]
}

// Interval returns the interval record at the given table position.
func (self *Font) Interval(index int) Interval {
	return self.intervals[index]
}

// LineAdvance returns the vertical distance between consecutive text
// baselines, in pixels.
func (self *Font) LineAdvance() int {
	return int(self.lineAdvance)
}

// glyphData returns the compressed bitmap bytes for a glyph.
func (self *Font) glyphData(glyph Glyph) []byte {
	return self.bitmap[glyph.DataOffset : glyph.DataOffset + uint32(glyph.CompressedSize)]
}

// --- code point resolution ---

// GlyphIndex resolves a code point to its glyph table index. The second
// return value is false if the font doesn't cover the code point.
//
// The interval table is sorted ascending, so the scan bails out as soon
// as the code point falls below the current interval start. Fonts carry
// tens of intervals at most, which keeps the linear scan cheap; a binary
// search would be a drop-in replacement with identical semantics.
func (self *Font) GlyphIndex(codePoint rune) (GlyphIndex, bool) {
	for i := 0; i < len(self.intervals); i++ {
		interval := &self.intervals[i]
		if interval.Contains(codePoint) {
			return interval.Offset + GlyphIndex(codePoint - interval.First), true
		}
		if codePoint < interval.First { return 0, false }
	}
	return 0, false
}

// Lookup resolves a code point directly to its glyph record. The second
// return value is false if the font doesn't cover the code point; callers
// are expected to skip drawing in that case without advancing the cursor.
func (self *Font) Lookup(codePoint rune) (Glyph, bool) {
	index, found := self.GlyphIndex(codePoint)
	if !found { return Glyph{}, false }
	return self.glyphs[index], true
}

// --- validation ---

// Validate checks the font's structural invariants: interval table sorted
// ascending and non-overlapping, every interval resolving to glyphs within
// the glyph table, and every glyph's compressed data within the bitmap blob.
func (self *Font) Validate() error {
	if len(self.glyphs) == 0 {
		return errors.New("font has no glyphs")
	}
	if len(self.glyphs) > internal.MaxGlyphs {
		return errors.New("font exceeds the maximum glyph count")
	}
	if len(self.intervals) > internal.MaxIntervals {
		return errors.New("font exceeds the maximum interval count")
	}

	prevLast := rune(-1)
	for i := 0; i < len(self.intervals); i++ {
		interval := &self.intervals[i]
		if interval.First > interval.Last {
			return fmt.Errorf("interval %d has First > Last", i)
		}
		if interval.First <= prevLast {
			return fmt.Errorf("interval %d overlaps or breaks ascending order", i)
		}
		numCodePoints := int(interval.Last) - int(interval.First) + 1
		if int(interval.Offset) + numCodePoints > len(self.glyphs) {
			return fmt.Errorf("interval %d maps beyond the glyph table", i)
		}
		prevLast = interval.Last
	}

	for i := 0; i < len(self.glyphs); i++ {
		glyph := &self.glyphs[i]
		dataEnd := int(glyph.DataOffset) + int(glyph.CompressedSize)
		if dataEnd > len(self.bitmap) {
			return fmt.Errorf("glyph %d data exceeds the bitmap blob", i)
		}
		if glyph.RasterSize() == 0 && glyph.CompressedSize != 0 {
			return fmt.Errorf("glyph %d has compressed data but an empty raster", i)
		}
	}

	return nil
}
