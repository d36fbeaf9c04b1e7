package epf

import "io"
import "io/fs"
import "errors"
import "slices"
import "compress/gzip"

import "github.com/greyink/epf/internal"

var fileSignature = []byte{'z', 'e', 'p', 'f', 'n', 't'}

// ParseFS is a utility method for parsing from a fs.FS, like when using embed.
func ParseFS(filesys fs.FS, filename string) (*Font, error) {
	file, err := filesys.Open(filename)
	if err != nil { return nil, err }
	stat, err := file.Stat()
	if err != nil { return nil, err }
	if stat.Size() > MaxFontDataSize {
		return nil, errors.New("file size exceeds limit")
	}

	font, err := Parse(file)
	if err != nil { return font, err }
	return font, file.Close()
}

// Parse reads a font in the epf binary format: a 6-byte signature followed
// by a gzip stream with the header, interval table, glyph table and the
// compressed-bitmap blob. The parsed font is validated before returning.
func Parse(reader io.Reader) (*Font, error) {
	var font Font
	var parser internal.ParsingBuffer
	parser.InitBuffers()
	parser.FileType = "epf"

	// read the signature first (not gzipped)
	signature := make([]byte, 6)
	n, err := io.ReadFull(reader, signature)
	if err != nil || n != 6 {
		return &font, parser.NewError("failed to read file signature")
	}
	if !slices.Equal(signature, fileSignature) {
		return &font, parser.NewError("invalid signature")
	}

	err = parser.InitGzipReader(reader)
	if err != nil { return &font, parser.NewError(err.Error()) }

	// --- header ---
	version, err := parser.ReadUint32()
	if err != nil { return &font, err }
	if version != FormatVersion {
		return &font, parser.NewError("unsupported format version")
	}
	font.name, err = parser.ReadShortStr()
	if err != nil { return &font, err }
	err = internal.ValidateSpacedName(font.name)
	if err != nil { return &font, parser.NewError(err.Error()) }
	font.lineAdvance, err = parser.ReadUint16()
	if err != nil { return &font, err }

	// --- interval table ---
	numIntervals, err := parser.ReadUint16()
	if err != nil { return &font, err }
	if int(numIntervals) > internal.MaxIntervals {
		return &font, parser.NewError("interval count exceeds limit")
	}
	font.intervals = make([]Interval, numIntervals)
	for i := uint16(0); i < numIntervals; i++ {
		first, err := parser.ReadUint32()
		if err != nil { return &font, err }
		last, err := parser.ReadUint32()
		if err != nil { return &font, err }
		offset, err := parser.ReadUint16()
		if err != nil { return &font, err }
		font.intervals[i] = Interval{
			First: rune(first), Last: rune(last), Offset: GlyphIndex(offset),
		}
	}

	// --- glyph table ---
	numGlyphs, err := parser.ReadUint16()
	if err != nil { return &font, err }
	if numGlyphs == 0 { return &font, parser.NewError("font has no glyphs") }
	font.glyphs = make([]Glyph, numGlyphs)
	for i := uint16(0); i < numGlyphs; i++ {
		glyph := &font.glyphs[i]
		glyph.Width, err = parser.ReadUint16()
		if err != nil { return &font, err }
		glyph.Height, err = parser.ReadUint16()
		if err != nil { return &font, err }
		glyph.Left, err = parser.ReadInt16()
		if err != nil { return &font, err }
		glyph.Top, err = parser.ReadInt16()
		if err != nil { return &font, err }
		glyph.AdvanceX, err = parser.ReadUint16()
		if err != nil { return &font, err }
		glyph.DataOffset, err = parser.ReadUint32()
		if err != nil { return &font, err }
		glyph.CompressedSize, err = parser.ReadUint16()
		if err != nil { return &font, err }
	}

	// --- bitmap blob ---
	bitmapLen, err := parser.ReadUint32()
	if err != nil { return &font, err }
	blob, err := parser.ReadBytes(int(bitmapLen))
	if err != nil { return &font, err }
	font.bitmap = slices.Clone(blob) // parser memory is transient

	err = parser.EnsureEOF()
	if err != nil { return &font, err }

	err = font.Validate()
	if err != nil { return &font, parser.NewError(err.Error()) }
	return &font, nil
}

// Export writes the font in the epf binary format, the inverse of [Parse].
func (self *Font) Export(writer io.Writer) error {
	_, err := writer.Write(fileSignature)
	if err != nil { return err }

	gzipWriter := gzip.NewWriter(writer)
	payload := make([]byte, 0, 1024)
	payload = internal.AppendUint32LE(payload, FormatVersion)
	payload = internal.AppendShortString(payload, self.name)
	payload = internal.AppendUint16LE(payload, self.lineAdvance)

	payload = internal.AppendUint16LE(payload, uint16(len(self.intervals)))
	for i := 0; i < len(self.intervals); i++ {
		interval := &self.intervals[i]
		payload = internal.AppendUint32LE(payload, uint32(interval.First))
		payload = internal.AppendUint32LE(payload, uint32(interval.Last))
		payload = internal.AppendUint16LE(payload, uint16(interval.Offset))
	}

	payload = internal.AppendUint16LE(payload, uint16(len(self.glyphs)))
	for i := 0; i < len(self.glyphs); i++ {
		glyph := &self.glyphs[i]
		payload = internal.AppendUint16LE(payload, glyph.Width)
		payload = internal.AppendUint16LE(payload, glyph.Height)
		payload = internal.AppendUint16LE(payload, uint16(glyph.Left))
		payload = internal.AppendUint16LE(payload, uint16(glyph.Top))
		payload = internal.AppendUint16LE(payload, glyph.AdvanceX)
		payload = internal.AppendUint32LE(payload, glyph.DataOffset)
		payload = internal.AppendUint16LE(payload, glyph.CompressedSize)
	}

	payload = internal.AppendUint32LE(payload, uint32(len(self.bitmap)))
	payload = append(payload, self.bitmap...)

	_, err = gzipWriter.Write(payload)
	if err != nil { _ = gzipWriter.Close(); return err }
	return gzipWriter.Close()
}
