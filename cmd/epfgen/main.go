package main

import "os"
import "fmt"
import "flag"
import "image"
import "image/color"
import "path/filepath"
import "slices"
import "strconv"
import "strings"
import "unicode"

import "github.com/greyink/epf/builder"
import "golang.org/x/image/font"
import "golang.org/x/image/font/opentype"
import "golang.org/x/image/math/fixed"
import "golang.org/x/text/unicode/rangetable"

// epfgen rasterizes an OpenType font at a fixed pixel size and packs the
// requested code points into an epf font asset for embedded displays.

var (
	fontPath = flag.String("font", "", "path to the OpenType font file (.ttf/.otf)")
	outPath  = flag.String("out", "font.epf", "output .epf file")
	fontName = flag.String("name", "", "font name stored in the asset (defaults to the file name)")
	sizePx   = flag.Float64("size", 24, "pixel size (ppem) to rasterize glyphs at")
	ranges   = flag.String("ranges", "0x20-0x7E", "comma-separated code point ranges, e.g. 0x20-0x7E,0xA0-0xFF")
	scripts  = flag.String("scripts", "", "comma-separated unicode scripts to add (latin, greek, cyrillic, common)")
)

var scriptTables = map[string]*unicode.RangeTable{
	"latin":    unicode.Latin,
	"greek":    unicode.Greek,
	"cyrillic": unicode.Cyrillic,
	"common":   unicode.Common,
}

func main() {
	flag.Parse()
	if *fontPath == "" {
		fmt.Fprintf(os.Stderr, "missing -font argument\n")
		flag.Usage()
		os.Exit(1)
	}

	codePoints, err := collectCodePoints(*ranges, *scripts)
	if err != nil { fatal(err) }
	if len(codePoints) == 0 { fatal(fmt.Errorf("no code points selected")) }

	data, err := os.ReadFile(*fontPath)
	if err != nil { fatal(err) }
	sfntFont, err := opentype.Parse(data)
	if err != nil { fatal(fmt.Errorf("parsing %s: %w", *fontPath, err)) }
	face, err := opentype.NewFace(sfntFont, &opentype.FaceOptions{
		Size: *sizePx, DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil { fatal(err) }
	defer face.Close()

	name := *fontName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(*fontPath), filepath.Ext(*fontPath))
	}

	fontBuilder := builder.New()
	err = fontBuilder.SetName(name)
	if err != nil { fatal(err) }
	err = fontBuilder.SetLineAdvance(face.Metrics().Height.Ceil())
	if err != nil { fatal(err) }

	var missing int
	for _, codePoint := range codePoints {
		dot := fixed.P(0, 0)
		bounds, mask, maskPoint, advance, ok := face.Glyph(dot, codePoint)
		if !ok { missing += 1; continue }
		err = fontBuilder.AddGlyph(codePoint, glyphRaster(bounds, mask, maskPoint), advance.Round())
		if err != nil { fatal(fmt.Errorf("code point %d: %w", codePoint, err)) }
	}
	if fontBuilder.NumGlyphs() == 0 {
		fatal(fmt.Errorf("font covers none of the selected code points"))
	}

	file, err := os.Create(*outPath)
	if err != nil { fatal(err) }
	err = fontBuilder.Export(file)
	if err != nil { _ = file.Close(); fatal(err) }
	err = file.Close()
	if err != nil { fatal(err) }

	fmt.Printf(
		"wrote %s: %d glyphs at %gpx (%d code points without coverage)\n",
		*outPath, fontBuilder.NumGlyphs(), *sizePx, missing,
	)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "epfgen: %s\n", err)
	os.Exit(1)
}

// glyphRaster converts a face coverage mask into the builder's raster
// format: 8-bit grayscale positioned relative to the baseline, with ink
// mapped dark on a white background.
func glyphRaster(bounds image.Rectangle, mask image.Image, maskPoint image.Point) *image.Gray {
	if bounds.Empty() { return nil }
	gray := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			_, _, _, alpha := mask.At(maskPoint.X + x - bounds.Min.X, maskPoint.Y + y - bounds.Min.Y).RGBA()
			gray.SetGray(x, y, color.Gray{Y: 255 - uint8(alpha >> 8)})
		}
	}
	return gray
}

func collectCodePoints(rangesArg, scriptsArg string) ([]rune, error) {
	selection := make(map[rune]struct{})

	if rangesArg != "" {
		for _, part := range strings.Split(rangesArg, ",") {
			first, last, err := parseRange(strings.TrimSpace(part))
			if err != nil { return nil, err }
			for codePoint := first; codePoint <= last; codePoint++ {
				selection[codePoint] = struct{}{}
			}
		}
	}

	if scriptsArg != "" {
		var tables []*unicode.RangeTable
		for _, scriptName := range strings.Split(scriptsArg, ",") {
			table, found := scriptTables[strings.ToLower(strings.TrimSpace(scriptName))]
			if !found { return nil, fmt.Errorf("unknown script %q", scriptName) }
			tables = append(tables, table)
		}
		rangetable.Visit(rangetable.Merge(tables...), func(codePoint rune) {
			selection[codePoint] = struct{}{}
		})
	}

	codePoints := make([]rune, 0, len(selection))
	for codePoint := range selection {
		codePoints = append(codePoints, codePoint)
	}
	slices.Sort(codePoints)
	return codePoints, nil
}

// parseRange accepts "0x20-0x7E" style ranges and single code points.
func parseRange(arg string) (rune, rune, error) {
	firstStr, lastStr, isRange := strings.Cut(arg, "-")
	first, err := strconv.ParseUint(strings.TrimSpace(firstStr), 0, 32)
	if err != nil { return 0, 0, fmt.Errorf("invalid code point range %q", arg) }
	if !isRange { return rune(first), rune(first), nil }
	last, err := strconv.ParseUint(strings.TrimSpace(lastStr), 0, 32)
	if err != nil || last < first {
		return 0, 0, fmt.Errorf("invalid code point range %q", arg)
	}
	return rune(first), rune(last), nil
}
