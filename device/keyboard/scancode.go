package keyboard

// Set 1 scancodes with a special meaning for the decoder.
const (
	ScancodeBackspace  uint8 = 0x0e
	ScancodeEnter      uint8 = 0x1c
	ScancodeLeftShift  uint8 = 0x2a
	ScancodeRightShift uint8 = 0x36
	ScancodeCapsLock   uint8 = 0x3a

	// BreakBit is added to a make code to form the matching break code.
	BreakBit uint8 = 0x80

	// MaxMakeCode is the last make code of the primary key block handled
	// by the decoder.
	MaxMakeCode = ScancodeCapsLock

	// MaxBreakCode is the last code treated as a break code.
	MaxBreakCode uint8 = 0x39 + BreakBit
)

// unshiftedMap translates make codes into characters while no shift key is
// held down. Zero entries are not mapped to a character.
var unshiftedMap = [128]byte{
	0, 27, '1', '2', '3', '4', '5', '6', '7', '8', '9', '0', '-', '=', '\b',
	'\t', 'q', 'w', 'e', 'r', 't', 'y', 'u', 'i', 'o', 'p', '[', ']', '\n', 0,
	'a', 's', 'd', 'f', 'g', 'h', 'j', 'k', 'l', ';', '\'', '`', 0, '\\',
	'z', 'x', 'c', 'v', 'b', 'n', 'm', ',', '.', '/', 0, '*', 0, ' ',
}

// shiftedMap translates make codes into characters while a shift key is held
// down.
var shiftedMap = [128]byte{
	0, 0, '!', '@', '#', '$', '%', '^', '&', '*', '(', ')', '_', '+', 0,
	0, 'Q', 'W', 'E', 'R', 'T', 'Y', 'U', 'I', 'O', 'P', '{', '}', '\n',
	0, 'A', 'S', 'D', 'F', 'G', 'H', 'J', 'K', 'L', ':', '\'', '~',
	0, '|', 'Z', 'X', 'C', 'V', 'B', 'N', 'M', '<', '>', '?', 0, '*', 0, ' ', 0,
}

// Translate returns the character produced by make code sc for the given
// shift state, or 0 if the key does not produce a character.
func Translate(sc uint8, shifted bool) byte {
	if sc >= uint8(len(unshiftedMap)) {
		return 0
	}

	if shifted {
		return shiftedMap[sc]
	}
	return unshiftedMap[sc]
}

// isShiftKey returns true if sc is the make code of either shift key.
func isShiftKey(sc uint8) bool {
	return sc == ScancodeLeftShift || sc == ScancodeRightShift
}
