package hosted

import (
	"github.com/Duchemil/Kfs-1/device/video/console"
)

// crtcRegisters is the number of CRT controller registers.
const crtcRegisters = 0x19

// CRTC emulates the index/data register pair of a VGA CRT controller. Only
// the cursor location registers have an effect.
type CRTC struct {
	index uint8
	regs  [crtcRegisters]uint8

	onCursor func(offset uint16)
}

// NewCRTC creates a CRT controller. onCursor, if not nil, is invoked with the
// cursor offset after every write to a cursor location register.
func NewCRTC(onCursor func(offset uint16)) *CRTC {
	return &CRTC{onCursor: onCursor}
}

// Cursor returns the cursor offset held by the cursor location registers.
func (c *CRTC) Cursor() uint16 {
	return uint16(c.regs[console.CursorLocationHigh])<<8 | uint16(c.regs[console.CursorLocationLow])
}

// In implements PortDevice.
func (c *CRTC) In(port uint16) uint8 {
	switch port {
	case console.CRTCIndexPort:
		return c.index
	case console.CRTCDataPort:
		if int(c.index) < len(c.regs) {
			return c.regs[c.index]
		}
	}

	return floatingBus
}

// Out implements PortDevice.
func (c *CRTC) Out(port uint16, val uint8) {
	switch port {
	case console.CRTCIndexPort:
		c.index = val
	case console.CRTCDataPort:
		if int(c.index) >= len(c.regs) {
			return
		}

		c.regs[c.index] = val
		if (c.index == console.CursorLocationHigh || c.index == console.CursorLocationLow) && c.onCursor != nil {
			c.onCursor(c.Cursor())
		}
	}
}
