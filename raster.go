package epf

import "io"
import "fmt"
import "bytes"
import "errors"
import "compress/zlib"

// Glyph bitmaps are stored zlib-compressed and must inflate to exactly
// their declared raster size. Anything else means the font asset is
// corrupt: assets are produced and validated at build time, so there is
// no per-glyph recovery, the error is simply propagated to the caller.
var errShortGlyphData = errors.New("glyph bitmap inflates to fewer bytes than declared")
var errLongGlyphData = errors.New("glyph bitmap inflates to more bytes than declared")

// inflate decompresses a glyph bitmap into exactly expectedSize raw bytes.
func inflate(compressed []byte, expectedSize int) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(compressed))
	if err != nil { return nil, err }

	raw := make([]byte, expectedSize)
	_, err = io.ReadFull(reader, raw)
	if err != nil {
		_ = reader.Close()
		if err == io.ErrUnexpectedEOF || err == io.EOF { return nil, errShortGlyphData }
		return nil, err
	}

	// the stream must end exactly here
	var excess [1]byte
	n, err := reader.Read(excess[ : ])
	if n != 0 { _ = reader.Close(); return nil, errLongGlyphData }
	if err != nil && err != io.EOF { _ = reader.Close(); return nil, err }
	return raw, reader.Close()
}

// DrawCodePoint draws a single code point into the target buffer, with the
// horizontal cursor at x and the text baseline at y, and returns the cursor
// advanced by the glyph's horizontal advance.
//
// Pixels falling outside the target are silently clipped. Code points not
// covered by the font draw nothing and leave the cursor unchanged (see
// [Font.Lookup]). A corrupt compressed bitmap is the only error condition.
func (self *Font) DrawCodePoint(target *Buffer, x, y int, codePoint rune) (int, error) {
	glyph, found := self.Lookup(codePoint)
	if !found { return x, nil }
	rasterSize := glyph.RasterSize()
	if rasterSize == 0 { return x + int(glyph.AdvanceX), nil }

	raster, err := inflate(self.glyphData(glyph), rasterSize)
	if err != nil {
		return x, fmt.Errorf("glyph for code point %d: %w", codePoint, err)
	}

	width := int(glyph.Width)
	left, top := int(glyph.Left), int(glyph.Top)
	for i := 0; i < rasterSize; i++ {
		xx := x + left + i % width
		yy := y - top + i/width
		target.SetPixel(xx, yy, raster[i])
	}

	return x + int(glyph.AdvanceX), nil
}
