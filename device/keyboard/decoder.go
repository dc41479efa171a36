package keyboard

import (
	"io"

	"github.com/Duchemil/Kfs-1/device"
	"github.com/Duchemil/Kfs-1/kernel"
)

const (
	// DataPort yields one scancode per read.
	DataPort uint16 = 0x60

	// StatusPort reports the controller state.
	StatusPort uint16 = 0x64

	// StatusOutputFull is set in the status register when a scancode is
	// waiting in the data port.
	StatusOutputFull uint8 = 1 << 0
)

// Sink receives the output of the decoder. It is implemented by tty.VT.
type Sink interface {
	// PutChar writes a character at the cursor position.
	PutChar(ch byte)

	// DeleteChar erases the character left of the cursor.
	DeleteChar()
}

// Decoder reads set 1 scancodes from an AT keyboard controller by polling
// and turns them into characters. It tracks a single modifier, shift, which
// is latched by the make code of either shift key and released by the
// matching break code.
//
// The decoder also carries a caps lock flag which is consulted on every make
// code but never toggled; the caps lock key itself produces no output.
type Decoder struct {
	ports device.PortIO
	sink  Sink

	shift    bool
	capsLock bool
}

// NewDecoder creates a decoder reading from the keyboard controller reachable
// through ports.
func NewDecoder(ports device.PortIO) *Decoder {
	return &Decoder{ports: ports}
}

// AttachTo routes decoded output to sink. Without a sink, scancodes still
// update the modifier state but produce no output.
func (d *Decoder) AttachTo(sink Sink) {
	d.sink = sink
}

// ShiftActive returns true while a shift key is held down.
func (d *Decoder) ShiftActive() bool {
	return d.shift
}

// CapsLock returns the caps lock flag.
func (d *Decoder) CapsLock() bool {
	return d.capsLock
}

// ReadScancode busy-waits until the controller reports a pending scancode and
// returns it. There is no timeout: if the controller never raises its output
// buffer flag, ReadScancode never returns.
func (d *Decoder) ReadScancode() uint8 {
	for d.ports.PortReadByte(StatusPort)&StatusOutputFull == 0 {
	}

	return d.ports.PortReadByte(DataPort)
}

// Poll runs a full polling cycle: it blocks until a scancode is available,
// then decodes it.
func (d *Decoder) Poll() {
	d.HandleScancode(d.ReadScancode())
}

// HandleScancode decodes a single scancode.
//
// Make codes up to MaxMakeCode either latch shift (shift keys, or any key
// while caps lock is set), erase a character (backspace) or emit the mapped
// character for the current shift state. Unmapped keys are dropped. Break
// codes of the shift keys release shift; every other code is ignored.
func (d *Decoder) HandleScancode(sc uint8) {
	switch {
	case sc <= MaxMakeCode:
		switch {
		case isShiftKey(sc) || d.capsLock:
			d.shift = true
		case sc == ScancodeBackspace:
			if d.sink != nil {
				d.sink.DeleteChar()
			}
		default:
			if ch := Translate(sc, d.shift); ch != 0 && d.sink != nil {
				d.sink.PutChar(ch)
			}
		}
	case sc <= MaxBreakCode:
		if isShiftKey(sc - BreakBit) {
			d.shift = false
		}
	}
}

// DriverName returns the name of this driver.
func (d *Decoder) DriverName() string {
	return "ps2_keyboard"
}

// DriverVersion returns the version of this driver.
func (d *Decoder) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver. The controller needs no setup for
// polled operation.
func (d *Decoder) DriverInit(_ io.Writer) *kernel.Error { return nil }
