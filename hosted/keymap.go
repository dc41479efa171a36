package hosted

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Duchemil/Kfs-1/device/keyboard"
)

type keyStroke struct {
	sc      uint8
	shifted bool
}

// Keymap translates host characters into the set 1 scancode sequences that
// make the decoder emit them. It is derived from the decoder translation
// tables, so every character the decoder can produce is reachable.
type Keymap struct {
	strokes map[byte]keyStroke
}

// NewKeymap builds a keymap from the decoder translation tables. Keys that
// produce a character without shift take precedence.
func NewKeymap() *Keymap {
	km := &Keymap{strokes: make(map[byte]keyStroke)}

	for _, shifted := range []bool{false, true} {
		for sc := uint8(0); sc <= keyboard.MaxMakeCode; sc++ {
			ch := keyboard.Translate(sc, shifted)
			if ch == 0 {
				continue
			}

			if _, exists := km.strokes[ch]; !exists {
				km.strokes[ch] = keyStroke{sc: sc, shifted: shifted}
			}
		}
	}

	// terminals report enter as a carriage return
	km.strokes['\r'] = km.strokes['\n']

	return km
}

// Scancodes returns the make/break sequence for typing ch. Shifted
// characters are wrapped in a left shift press and release. Characters
// without a key yield nil.
func (km *Keymap) Scancodes(ch byte) []uint8 {
	ks, ok := km.strokes[ch]
	if !ok {
		return nil
	}

	if ks.shifted {
		return []uint8{
			keyboard.ScancodeLeftShift,
			ks.sc,
			ks.sc | keyboard.BreakBit,
			keyboard.ScancodeLeftShift | keyboard.BreakBit,
		}
	}

	return []uint8{ks.sc, ks.sc | keyboard.BreakBit}
}

// Encode returns the scancodes for typing text. Characters without a key are
// skipped.
func (km *Keymap) Encode(text []byte) []uint8 {
	var out []uint8
	for _, ch := range text {
		out = append(out, km.Scancodes(ch)...)
	}
	return out
}

// KeyEvent returns the scancodes for a tcell key event, or nil if the key has
// no set 1 equivalent in the decoder tables.
func (km *Keymap) KeyEvent(ev *tcell.EventKey) []uint8 {
	switch ev.Key() {
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			return km.Scancodes(byte(r))
		}
	case tcell.KeyEnter:
		return km.Scancodes('\n')
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []uint8{keyboard.ScancodeBackspace, keyboard.ScancodeBackspace | keyboard.BreakBit}
	case tcell.KeyTab:
		return km.Scancodes('\t')
	case tcell.KeyEscape:
		return km.Scancodes(0x1b)
	}

	return nil
}
