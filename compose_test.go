package epf

import "image"
import "errors"
import "testing"

// displayRecorder captures every region submitted for refresh.
type displayRecorder struct {
	areas []image.Rectangle
	buffers []*Buffer
	failWith error
}

func (self *displayRecorder) DrawGrayscale(area image.Rectangle, buffer *Buffer) error {
	if self.failWith != nil { return self.failWith }
	self.areas = append(self.areas, area)
	self.buffers = append(self.buffers, buffer)
	return nil
}

func TestWriteStringSingleLineRegion(t *testing.T) {
	font := makeTestFont(t)
	display := &displayRecorder{}
	renderer := NewRenderer(font)
	renderer.SetDisplay(display)

	x, y, err := renderer.WriteString("AB", 0, 20)
	if err != nil { t.Fatalf("unexpected WriteString() error: %s", err) }
	if x != 0 { t.Fatalf("expected cursor x to stay at the start column 0, got %d", x) }
	if y != 50 { t.Fatalf("expected cursor y to advance to 50, got %d", y) }

	if len(display.areas) != 1 {
		t.Fatalf("expected 1 submitted region, got %d", len(display.areas))
	}
	expArea := image.Rect(0, 12, 18, 20) // glyphs sit on the baseline at y = 20
	if !display.areas[0].Eq(expArea) {
		t.Fatalf("expected region %s, got %s", expArea, display.areas[0])
	}

	buffer := display.buffers[0]
	if buffer.Width() != 18 || buffer.Height() != 8 {
		t.Fatalf("expected an 18x8 buffer, got %dx%d", buffer.Width(), buffer.Height())
	}
	if buffer.Stride() != 9 {
		t.Fatalf("expected stride 9 for width 18, got %d", buffer.Stride())
	}

	// 'A' (value 0) occupies columns 0-7 (packed bytes 0-3), columns 8-9
	// keep the white background, 'B' (value 1) starts at column 10
	for row := 0; row < 8; row++ {
		line := buffer.Pix()[row*9 : row*9 + 9]
		expLine := []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0x11, 0x11, 0x11, 0x11}
		for i := range expLine {
			if line[i] != expLine[i] {
				t.Fatalf("row %d byte %d: expected %#02x, got %#02x", row, i, expLine[i], line[i])
			}
		}
	}
}

func TestWriteStringMultiLineRegions(t *testing.T) {
	font := makeTestFont(t)
	display := &displayRecorder{}
	renderer := NewRenderer(font)
	renderer.SetDisplay(display)

	startX, startY := 4, 20
	_, y, err := renderer.WriteString("A\nB\nC", startX, startY)
	if err != nil { t.Fatalf("unexpected WriteString() error: %s", err) }
	if y != startY + 3*font.LineAdvance() {
		t.Fatalf("expected cursor y at %d, got %d", startY + 3*font.LineAdvance(), y)
	}

	if len(display.areas) != 3 {
		t.Fatalf("expected one region per line (3), got %d", len(display.areas))
	}
	for i, area := range display.areas {
		expY := startY + i*font.LineAdvance() - 8 // glyph box sits 8px above the baseline
		if area.Min.Y != expY {
			t.Fatalf("line %d: expected region y %d, got %d", i, expY, area.Min.Y)
		}
		if area.Min.X != startX {
			t.Fatalf("line %d: expected horizontal reset to column %d, got %d", i, startX, area.Min.X)
		}
	}
}

func TestWriteStringSkipsEmptyLines(t *testing.T) {
	font := makeTestFont(t)
	display := &displayRecorder{}
	renderer := NewRenderer(font)
	renderer.SetDisplay(display)

	_, y, err := renderer.WriteString("A\n\nB", 0, 20)
	if err != nil { t.Fatalf("unexpected WriteString() error: %s", err) }

	// the empty middle line submits nothing but still advances the cursor
	if len(display.areas) != 2 {
		t.Fatalf("expected 2 submitted regions, got %d", len(display.areas))
	}
	if y != 20 + 3*font.LineAdvance() {
		t.Fatalf("expected cursor y to advance across the empty line, got %d", y)
	}
	if display.areas[1].Min.Y != 20 + 2*font.LineAdvance() - 8 {
		t.Fatalf("expected last region at line index 2, got y %d", display.areas[1].Min.Y)
	}
}

func TestWriteStringTargetBuffer(t *testing.T) {
	font := makeTestFont(t)
	display := &displayRecorder{}
	renderer := NewRenderer(font)
	renderer.SetDisplay(display)
	target := NewBuffer(64, 64)
	target.Fill(0xFF)
	renderer.SetTarget(target)

	x, y, err := renderer.WriteString("AB", 0, 20)
	if err != nil { t.Fatalf("unexpected WriteString() error: %s", err) }
	if x != 0 || y != 50 {
		t.Fatalf("expected cursor (0, 50), got (%d, %d)", x, y)
	}

	// drawing goes straight to the target, nothing is submitted
	if len(display.areas) != 0 {
		t.Fatalf("expected no display submissions with a target buffer set, got %d", len(display.areas))
	}
	if target.PixelAt(0, 12) != 0 {
		t.Fatalf("expected 'A' ink at (0, 12), got %d", target.PixelAt(0, 12))
	}
	if target.PixelAt(10, 12) != 1 {
		t.Fatalf("expected 'B' ink at (10, 12), got %d", target.PixelAt(10, 12))
	}
	if target.PixelAt(8, 12) != 0xF {
		t.Fatalf("expected background between glyphs, got %d", target.PixelAt(8, 12))
	}
}

func TestWriteStringNoOutput(t *testing.T) {
	font := makeTestFont(t)
	renderer := NewRenderer(font)
	_, _, err := renderer.WriteString("A", 0, 20)
	if !errors.Is(err, ErrNoOutput) {
		t.Fatalf("expected ErrNoOutput, got %v", err)
	}
}

func TestWriteStringDisplayError(t *testing.T) {
	font := makeTestFont(t)
	boom := errors.New("refresh failed")
	renderer := NewRenderer(font)
	renderer.SetDisplay(&displayRecorder{failWith: boom})

	_, _, err := renderer.WriteString("A\nB", 0, 20)
	if !errors.Is(err, boom) {
		t.Fatalf("expected display error to propagate, got %v", err)
	}
}
