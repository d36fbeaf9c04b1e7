package epf

// UTF-8 lead byte classification table. The entry index doubles as the
// sequence length in bytes, with index zero reserved for the continuation
// byte pattern (0b10xxxxxx), which can never start a sequence.
type utf8Pattern struct {
	mask byte // significant payload bits of the byte
	lead byte // fixed marker bits identifying the pattern
}

var utf8Patterns = [5]utf8Pattern{
	{mask: 0b0011_1111, lead: 0b1000_0000}, // continuation byte
	{mask: 0b0111_1111, lead: 0b0000_0000}, // U+0000  .. U+007F
	{mask: 0b0001_1111, lead: 0b1100_0000}, // U+0080  .. U+07FF
	{mask: 0b0000_1111, lead: 0b1110_0000}, // U+0800  .. U+FFFF
	{mask: 0b0000_0111, lead: 0b1111_0000}, // U+10000 .. U+10FFFF
}

const utf8ContinuationBits = 6

// Returns the byte length of the UTF-8 sequence started by the given lead
// byte. Lead bytes matching no valid pattern (or matching the continuation
// pattern) indicate corrupted input, which is a contract violation: text
// passed to this package must be valid UTF-8. We panic instead of trying
// to recover.
func utf8SeqLen(leadByte byte) int {
	for i := 0; i < len(utf8Patterns); i++ {
		if leadByte & ^utf8Patterns[i].mask == utf8Patterns[i].lead {
			if i == 0 { panic("invalid utf8: continuation byte in lead position") }
			return i
		}
	}
	panic("invalid utf8: malformed lead byte")
}

// NextCodePoint decodes the code point starting at text[index] and returns
// it along with the index of the following code point. Iterate until the
// returned index reaches len(text).
//
// Only the lead byte is validated (see [utf8SeqLen]); continuation bytes
// are trusted to match 0b10xxxxxx, so malformed input past the lead byte
// yields an incorrect (but in-range) code point rather than an error.
// Text assets are expected to be validated before reaching this package.
func NextCodePoint(text string, index int) (rune, int) {
	seqLen := utf8SeqLen(text[index])
	shift := utf8ContinuationBits*(seqLen - 1)
	codePoint := rune(text[index] & utf8Patterns[seqLen].mask) << shift
	for i := 1; i < seqLen; i++ {
		shift -= utf8ContinuationBits
		codePoint |= rune(text[index + i] & utf8Patterns[0].mask) << shift
	}
	return codePoint, index + seqLen
}
