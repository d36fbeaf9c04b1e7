package builder

import "io"
import "fmt"
import "bytes"
import "image"
import "errors"
import "slices"
import "compress/zlib"

import "github.com/greyink/epf"
import "github.com/greyink/epf/internal"

const fontBuilderDefaultFontName = "Unnamed"

var ErrBuildNoGlyphs = errors.New("can't build font with no glyphs")
var ErrBuildNoLineAdvance = errors.New("can't build font without a line advance")
var errFontDataExceedsMax = errors.New("font data exceeds maximum size")

// A [epf.Font] builder. Glyph rasters are added one code point at a time,
// compressed on the spot, and turned into an immutable font by [Font.Build],
// which derives the code point interval table from the added set.
//
// Rasters use a baseline-relative coordinate system: the glyph's image
// rectangle is positioned with the baseline at y = 0 and the drawing
// origin at x = 0, so rows above the baseline have negative y. Intensity
// follows the display convention, 255 for untouched background (white)
// down to 0 for full ink.
//
// This object should never replace a [epf.Font] outside the build context.
type Font struct {
	fontName string
	lineAdvance uint16
	codePoints []rune // parallel to glyphs, unsorted until Build
	glyphs []epf.Glyph
	blob []byte
}

// New creates an empty font builder.
func New() *Font {
	return &Font{ fontName: fontBuilderDefaultFontName }
}

// SetName sets the font name stored in the asset.
func (self *Font) SetName(name string) error {
	err := internal.ValidateSpacedName(name)
	if err != nil { return err }
	self.fontName = name
	return nil
}

// SetLineAdvance sets the vertical distance between text baselines.
func (self *Font) SetLineAdvance(advance int) error {
	if advance <= 0 || advance > 65535 {
		return errors.New("line advance must be in the [1, 65535] range")
	}
	self.lineAdvance = uint16(advance)
	return nil
}

func (self *Font) NumGlyphs() int { return len(self.glyphs) }

// AddGlyph adds a glyph for the given code point. A nil raster (or one
// with an empty rectangle) defines a blank glyph that only advances the
// cursor, like a space. Adding the same code point twice is an error.
func (self *Font) AddGlyph(codePoint rune, raster *image.Gray, advanceX int) error {
	if codePoint < 0 { return errors.New("code point can't be negative") }
	if advanceX < 0 || advanceX > 65535 {
		return errors.New("glyph advance must be in the [0, 65535] range")
	}
	if slices.Contains(self.codePoints, codePoint) {
		return fmt.Errorf("code point %d already has a glyph", codePoint)
	}
	if len(self.glyphs) >= internal.MaxGlyphs {
		return errors.New("font exceeds the maximum glyph count")
	}

	var rect image.Rectangle
	if raster != nil { rect = raster.Rect }
	if rect.Dx() > 65535 || rect.Dy() > 65535 {
		return errors.New("glyph raster dimensions exceed the uint16 range")
	}
	if !fitsInt16(rect.Min.X) || !fitsInt16(-rect.Min.Y) {
		return errors.New("glyph raster offsets exceed the int16 range")
	}

	glyph := epf.Glyph{
		Width: uint16(rect.Dx()),
		Height: uint16(rect.Dy()),
		Left: int16(rect.Min.X),
		Top: int16(-rect.Min.Y),
		AdvanceX: uint16(advanceX),
		DataOffset: uint32(len(self.blob)),
	}

	if glyph.RasterSize() > 0 {
		compressed, err := compressRaster(raster)
		if err != nil { return err }
		if len(compressed) > 65535 {
			return errors.New("compressed glyph bitmap exceeds the uint16 range")
		}
		if len(self.blob) + len(compressed) > internal.MaxFontDataSize {
			return errFontDataExceedsMax
		}
		glyph.CompressedSize = uint16(len(compressed))
		self.blob = append(self.blob, compressed...)
	}

	self.codePoints = append(self.codePoints, codePoint)
	self.glyphs = append(self.glyphs, glyph)
	return nil
}

// Build assembles the added glyphs into an immutable, validated font.
// Glyphs are ordered by code point and contiguous code point runs are
// merged into single intervals. The builder remains usable afterwards.
func (self *Font) Build() (*epf.Font, error) {
	if len(self.glyphs) == 0 { return nil, ErrBuildNoGlyphs }
	if self.lineAdvance == 0 { return nil, ErrBuildNoLineAdvance }

	// sort glyphs by code point
	order := make([]int, len(self.codePoints))
	for i := range order { order[i] = i }
	slices.SortFunc(order, func(a, b int) int {
		return int(self.codePoints[a] - self.codePoints[b])
	})

	glyphs := make([]epf.Glyph, len(order))
	var intervals []epf.Interval
	for i, entry := range order {
		glyphs[i] = self.glyphs[entry]
		codePoint := self.codePoints[entry]
		last := len(intervals) - 1
		if last >= 0 && intervals[last].Last == codePoint - 1 {
			intervals[last].Last = codePoint
		} else {
			intervals = append(intervals, epf.Interval{
				First: codePoint, Last: codePoint, Offset: epf.GlyphIndex(i),
			})
		}
	}
	if len(intervals) > internal.MaxIntervals {
		return nil, errors.New("glyph set produces too many code point intervals")
	}

	return epf.New(
		self.fontName, glyphs, intervals,
		slices.Clone(self.blob), int(self.lineAdvance),
	)
}

// Export builds the font and writes it in the epf binary format.
func (self *Font) Export(writer io.Writer) error {
	font, err := self.Build()
	if err != nil { return err }
	return font.Export(writer)
}

func fitsInt16(value int) bool {
	return value >= -32768 && value <= 32767
}

// compressRaster packs the raster rows into width*height intensity bytes
// and deflates them with zlib, the format the rendering core inflates.
func compressRaster(raster *image.Gray) ([]byte, error) {
	rect := raster.Rect
	raw := make([]byte, 0, rect.Dx()*rect.Dy())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		rowStart := (y - rect.Min.Y)*raster.Stride
		raw = append(raw, raster.Pix[rowStart : rowStart + rect.Dx()]...)
	}

	var buffer bytes.Buffer
	zlibWriter := zlib.NewWriter(&buffer)
	_, err := zlibWriter.Write(raw)
	if err != nil { _ = zlibWriter.Close(); return nil, err }
	err = zlibWriter.Close()
	if err != nil { return nil, err }
	return buffer.Bytes(), nil
}
