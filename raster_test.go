package epf

import "bytes"
import "testing"

func TestDrawCodePointBlitsAndAdvances(t *testing.T) {
	font := makeTestFont(t)
	buffer := NewBuffer(8, 8)
	buffer.Fill(0xFF)

	x, err := font.DrawCodePoint(buffer, 0, 8, 'B')
	if err != nil { t.Fatalf("unexpected DrawCodePoint() error: %s", err) }
	if x != 10 { t.Fatalf("expected cursor to advance to 10, got %d", x) }

	// 'B' rasters as 4-bit value 1 over the full 8x8 box
	for yy := 0; yy < 8; yy++ {
		for xx := 0; xx < 8; xx++ {
			if buffer.PixelAt(xx, yy) != 1 {
				t.Fatalf("expected pixel (%d, %d) to be 1, got %d", xx, yy, buffer.PixelAt(xx, yy))
			}
		}
	}
}

func TestDrawCodePointMissNoAdvance(t *testing.T) {
	font := makeTestFont(t)
	buffer := NewBuffer(8, 8)
	buffer.Fill(0xFF)
	snapshot := bytes.Clone(buffer.Pix())

	// unresolved code points draw nothing and don't consume advance
	x, err := font.DrawCodePoint(buffer, 0, 8, '!')
	if err != nil { t.Fatalf("unexpected DrawCodePoint() error: %s", err) }
	if x != 0 { t.Fatalf("expected cursor to stay at 0 on unresolved code point, got %d", x) }
	if !bytes.Equal(buffer.Pix(), snapshot) {
		t.Fatalf("expected buffer to stay untouched on unresolved code point")
	}
}

func TestDrawCodePointFullyNegativeCoords(t *testing.T) {
	font := makeTestFont(t)
	buffer := NewBuffer(16, 16)
	snapshot := bytes.Clone(buffer.Pix())

	x, err := font.DrawCodePoint(buffer, -100, -100, 'A')
	if err != nil { t.Fatalf("unexpected DrawCodePoint() error: %s", err) }
	if x != -90 { t.Fatalf("expected cursor at -90 after resolved glyph, got %d", x) }
	if !bytes.Equal(buffer.Pix(), snapshot) {
		t.Fatalf("expected zero bytes written for a fully out of range glyph")
	}
}

func TestDrawCodePointPartialClip(t *testing.T) {
	font := makeTestFont(t)
	buffer := NewBuffer(4, 8)
	buffer.Fill(0xFF)

	// cursor at -4: glyph columns 0..3 clip away, columns 4..7 land on 0..3
	_, err := font.DrawCodePoint(buffer, -4, 8, 'C')
	if err != nil { t.Fatalf("unexpected DrawCodePoint() error: %s", err) }
	for yy := 0; yy < 8; yy++ {
		for xx := 0; xx < 4; xx++ {
			if buffer.PixelAt(xx, yy) != 2 {
				t.Fatalf("expected pixel (%d, %d) to be 2, got %d", xx, yy, buffer.PixelAt(xx, yy))
			}
		}
	}
}

func TestDrawCodePointCorruptBitmap(t *testing.T) {
	glyphs := []Glyph{{Width: 4, Height: 4, Top: 4, AdvanceX: 5, DataOffset: 0, CompressedSize: 3}}
	intervals := []Interval{{First: 65, Last: 65, Offset: 0}}
	font, err := New("Corrupt", glyphs, intervals, []byte{0xDE, 0xAD, 0x00}, 10)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }

	buffer := NewBuffer(8, 8)
	_, err = font.DrawCodePoint(buffer, 0, 4, 'A')
	if err == nil { t.Fatalf("expected error drawing glyph with corrupt compressed bitmap") }
}

func TestDrawCodePointShortBitmap(t *testing.T) {
	// compressed stream inflates to fewer bytes than the declared raster
	raw := make([]byte, 4)
	compressed := deflate(t, raw)
	glyphs := []Glyph{{
		Width: 4, Height: 4, Top: 4, AdvanceX: 5,
		DataOffset: 0, CompressedSize: uint16(len(compressed)),
	}}
	intervals := []Interval{{First: 65, Last: 65, Offset: 0}}
	font, err := New("Short", glyphs, intervals, compressed, 10)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }

	buffer := NewBuffer(8, 8)
	_, err = font.DrawCodePoint(buffer, 0, 4, 'A')
	if err == nil { t.Fatalf("expected error when the bitmap inflates short") }
}

func TestDrawCodePointEmptyRasterAdvances(t *testing.T) {
	glyphs := []Glyph{{AdvanceX: 7}} // blank glyph, like a space
	intervals := []Interval{{First: 32, Last: 32, Offset: 0}}
	font, err := New("Blank", glyphs, intervals, nil, 10)
	if err != nil { t.Fatalf("unexpected New() error: %s", err) }

	buffer := NewBuffer(8, 8)
	x, err := font.DrawCodePoint(buffer, 0, 4, ' ')
	if err != nil { t.Fatalf("unexpected DrawCodePoint() error: %s", err) }
	if x != 7 { t.Fatalf("expected blank glyph to advance to 7, got %d", x) }
}
