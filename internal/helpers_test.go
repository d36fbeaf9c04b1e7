package internal

import "testing"

func TestUint16LERoundTrip(t *testing.T) {
	for _, value := range []uint16{0, 1, 0x00FF, 0xFF00, 0xABCD, 0xFFFF} {
		buffer := AppendUint16LE(nil, value)
		if len(buffer) != 2 { t.Fatalf("expected 2 bytes, got %d", len(buffer)) }
		decoded := DecodeUint16LE(buffer)
		if decoded != value {
			t.Fatalf("expected %#04x after round trip, got %#04x", value, decoded)
		}
	}
}

func TestUint32LERoundTrip(t *testing.T) {
	for _, value := range []uint32{0, 1, 0xFF, 0xFFFF_0000, 0xDEAD_BEEF, 0xFFFF_FFFF} {
		buffer := AppendUint32LE(nil, value)
		if len(buffer) != 4 { t.Fatalf("expected 4 bytes, got %d", len(buffer)) }
		decoded := DecodeUint32LE(buffer)
		if decoded != value {
			t.Fatalf("expected %#08x after round trip, got %#08x", value, decoded)
		}
	}
}

func TestAppendShortString(t *testing.T) {
	buffer := AppendShortString(nil, "epf")
	if len(buffer) != 4 { t.Fatalf("expected 4 bytes, got %d", len(buffer)) }
	if buffer[0] != 3 { t.Fatalf("expected length prefix 3, got %d", buffer[0]) }
	if string(buffer[1 : ]) != "epf" { t.Fatalf("expected string bytes after the prefix") }
}

func TestValidateSpacedName(t *testing.T) {
	valid := []string{"Fira Sans", "epd47-regular", "X", "Font 12 px"}
	for _, name := range valid {
		if err := ValidateSpacedName(name); err != nil {
			t.Fatalf("expected %q to be valid, got: %s", name, err)
		}
	}

	invalid := []string{
		"",
		"name_with_underscores",
		"name\nwith newline",
		"ce-name-is-way-too-long-to-fit-anywhere-at-all",
	}
	for _, name := range invalid {
		if err := ValidateSpacedName(name); err == nil {
			t.Fatalf("expected %q to be invalid", name)
		}
	}
}

func TestGrowSliceByN(t *testing.T) {
	buffer := make([]byte, 2, 8)
	buffer[0], buffer[1] = 7, 9
	grown := GrowSliceByN(buffer, 3)
	if len(grown) != 5 { t.Fatalf("expected len 5, got %d", len(grown)) }
	if grown[0] != 7 || grown[1] != 9 {
		t.Fatalf("expected existing contents to be preserved")
	}

	// growing beyond capacity must copy
	grown = GrowSliceByN(buffer, 100)
	if len(grown) != 102 { t.Fatalf("expected len 102, got %d", len(grown)) }
	if grown[0] != 7 { t.Fatalf("expected contents to be copied on realloc") }
}
