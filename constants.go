package epf

import "github.com/greyink/epf/internal"

const MaxFontDataSize = internal.MaxFontDataSize // checked both for total file size and after uncompressing without signature
const FormatVersion = internal.FormatVersion
const MaxGlyphs = internal.MaxGlyphs
