package internal

import "errors"

func GrowSliceByN[T any](buffer []T, increase int) []T {
	newSize := len(buffer) + increase
	if cap(buffer) >= newSize {
		return buffer[ : newSize]
	} else {
		newBuffer := make([]T, newSize)
		copy(newBuffer, buffer)
		return newBuffer
	}
}

// LE stands for "little endian"

func DecodeUint16LE(buffer []byte) uint16 {
	if len(buffer) < 2 { panic(len(buffer)) }
	return uint16(buffer[0]) | (uint16(buffer[1]) << 8)
}

func DecodeUint32LE(buffer []byte) uint32 {
	if len(buffer) < 4 { panic(len(buffer)) }
	return (uint32(buffer[0]) <<  0) | (uint32(buffer[1]) <<  8) |
	       (uint32(buffer[2]) << 16) | (uint32(buffer[3]) << 24)
}

func AppendUint16LE(buffer []byte, value uint16) []byte {
	return append(buffer, byte(value), byte(value >> 8))
}

func AppendUint32LE(buffer []byte, value uint32) []byte {
	return append(buffer, byte(value), byte(value >> 8), byte(value >> 16), byte(value >> 24))
}

func AppendShortString(buffer []byte, str string) []byte {
	if len(str) > 255 { panic("AppendShortString() can't append string with len() > 255") }
	return append(append(buffer, uint8(len(str))), str...)
}

// Name rules for font names stored in epf files: up to MaxNameLength
// characters, plain [A-Za-z0-9 -] only, non-empty.
func ValidateSpacedName(name string) error {
	if len(name) > MaxNameLength { return errors.New("name can't exceed 32 characters") }
	if len(name) == 0 { return errors.New("name can't be empty") }

	for i := 0; i < len(name); i++ {
		if isAZaz09(name[i]) || name[i] == '-' || name[i] == ' ' { continue }
		return errors.New("name contains invalid character")
	}

	return nil
}

func isAZaz09(char byte) bool {
	return (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9')
}
