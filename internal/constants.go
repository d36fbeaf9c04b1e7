package internal

const MaxFontDataSize = (32 << 20) // check both total file size and size after uncompressing without signature
const FormatVersion = 0x0000_0001
const MaxGlyphs = 65535
const MaxIntervals = 8192
const MaxNameLength = 32
