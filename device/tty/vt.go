package tty

import (
	"io"

	"github.com/Duchemil/Kfs-1/device/video/console"
	"github.com/Duchemil/Kfs-1/kernel"
)

var errNoConsole = &kernel.Error{Module: "vt", Message: "no console attached"}

// VT implements a terminal on top of a console device. The terminal tracks
// the cursor position and the active color attribute, wraps long lines and
// scrolls the console once output reaches the bottom row. There is no
// scrollback: the top row is discarded on every scroll.
//
// The only special character interpreted by PutChar is \n (line-feed with an
// implicit carriage return). Backspace is a separate operation (DeleteChar).
//
// After every public operation row < height and column < width hold.
type VT struct {
	cons console.Device

	width  uint32
	height uint32

	row    uint32
	column uint32
	color  console.Attr
}

// NewVT creates a new terminal attached to cons. The terminal must be
// initialized with Init before use.
func NewVT(cons console.Device) *VT {
	t := &VT{color: console.DefaultAttr}
	t.AttachTo(cons)
	return t
}

// AttachTo connects the terminal to a console instance.
func (t *VT) AttachTo(cons console.Device) {
	if cons == nil {
		return
	}

	t.cons = cons
	t.width, t.height = cons.Dimensions()
}

// Init moves the cursor to the top-left corner, restores the default color
// and blanks every cell of the attached console. Calling Init again yields
// the same state.
func (t *VT) Init() {
	t.row, t.column = 0, 0
	t.color = console.DefaultAttr
	t.cons.Fill(0, 0, t.width, t.height, t.color)
}

// SetColor sets the attribute used by subsequent writes.
func (t *VT) SetColor(attr console.Attr) {
	t.color = attr
}

// Color returns the active attribute.
func (t *VT) Color() console.Attr {
	return t.color
}

// CursorPosition returns the current cursor column and row.
func (t *VT) CursorPosition() (column, row uint32) {
	return t.column, t.row
}

// PutChar writes ch at the cursor position and advances the cursor, wrapping
// and scrolling as needed. The hardware cursor always follows.
func (t *VT) PutChar(ch byte) {
	if ch == '\n' {
		t.column = 0
		t.row++
	} else {
		t.cons.Write(ch, t.color, t.column, t.row)
		t.column++
		if t.column >= t.width {
			t.column = 0
			t.row++
		}
	}

	if t.row >= t.height {
		t.Scroll()
		t.row = t.height - 1
	}

	t.syncCursor()
}

// Scroll moves the console contents up by one row and blanks the last row
// using the active color. The cursor position is left untouched.
func (t *VT) Scroll() {
	t.cons.Scroll(console.ScrollDirUp, 1)
	t.cons.Fill(0, t.height-1, t.width, 1, t.color)
}

// DeleteChar erases the character left of the cursor. At column 0 it does
// nothing; it never moves to the previous row.
func (t *VT) DeleteChar() {
	if t.column == 0 {
		return
	}

	t.column--
	t.cons.Write(' ', t.color, t.column, t.row)
	t.syncCursor()
}

// Write implements io.Writer.
func (t *VT) Write(data []byte) (int, error) {
	if t.cons == nil {
		return 0, io.ErrClosedPipe
	}

	for _, b := range data {
		t.PutChar(b)
	}

	return len(data), nil
}

// WriteByte implements io.ByteWriter.
func (t *VT) WriteByte(b byte) error {
	if t.cons == nil {
		return io.ErrClosedPipe
	}

	t.PutChar(b)
	return nil
}

// WriteString implements io.StringWriter.
func (t *VT) WriteString(s string) (int, error) {
	if t.cons == nil {
		return 0, io.ErrClosedPipe
	}

	for i := 0; i < len(s); i++ {
		t.PutChar(s[i])
	}

	return len(s), nil
}

// WriteStringColor switches the active color to fg on bg and writes s. The
// color stays active afterwards.
func (t *VT) WriteStringColor(s string, fg, bg console.Color) {
	t.SetColor(console.MakeAttr(fg, bg))
	t.WriteString(s)
}

func (t *VT) syncCursor() {
	t.cons.SetCursor(t.row*t.width + t.column)
}

// DriverName returns the name of this driver.
func (t *VT) DriverName() string {
	return "vt"
}

// DriverVersion returns the version of this driver.
func (t *VT) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver.
func (t *VT) DriverInit(_ io.Writer) *kernel.Error {
	if t.cons == nil {
		return errNoConsole
	}

	t.Init()
	return nil
}
