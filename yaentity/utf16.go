package yaentity

import (
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16Len returns the length of s in UTF-16 code units, the unit Telegram uses for
// entity offsets. Runes outside the Basic Multilingual Plane count as two units;
// invalid UTF-8 bytes count as one unit each, like the U+FFFD they decode to.
func UTF16Len(s string) uint32 {
	var size uint32

	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])

		size += uint32(utf16.RuneLen(r)) //nolint:gosec // RuneLen of a decoded rune is 1 or 2

		i += n
	}

	return size
}
