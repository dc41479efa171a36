package console

import (
	"io"
	"unsafe"

	"github.com/Duchemil/Kfs-1/device"
	"github.com/Duchemil/Kfs-1/kernel"
	"github.com/Duchemil/Kfs-1/kernel/kfmt"
)

const (
	// Width is the number of text columns in VGA mode 0x3.
	Width = 80

	// Height is the number of text rows in VGA mode 0x3.
	Height = 25

	// FramebufferPhysAddr is the physical address of the text mode
	// framebuffer.
	FramebufferPhysAddr = uintptr(0xb8000)

	// CRTCIndexPort selects a CRT controller register.
	CRTCIndexPort uint16 = 0x3d4

	// CRTCDataPort reads or writes the selected CRT controller register.
	CRTCDataPort uint16 = 0x3d5

	// CursorLocationHigh and CursorLocationLow are the CRT controller
	// registers holding the cursor offset.
	CursorLocationHigh uint8 = 0x0e
	CursorLocationLow  uint8 = 0x0f
)

var errNoFramebuffer = &kernel.Error{Module: "vga_text_console", Message: "framebuffer address not set"}

// VgaTextConsole implements an EGA-compatible text console using VGA mode
// 0x3.
//
// Each character in the console framebuffer is represented using two bytes,
// a byte for the character ASCII code and a byte that encodes the foreground
// and background colors (4 bits for each). The blinking cursor is positioned
// through the CRT controller ports.
type VgaTextConsole struct {
	width  uint32
	height uint32

	fbPhysAddr uintptr
	fb         []uint16

	ports     device.PortIO
	clearChar byte
}

// NewVgaTextConsole creates a new vga text console with its framebuffer
// located at fbPhysAddr. The framebuffer gets mapped when DriverInit is
// invoked.
func NewVgaTextConsole(columns, rows uint32, fbPhysAddr uintptr, ports device.PortIO) *VgaTextConsole {
	return &VgaTextConsole{
		width:      columns,
		height:     rows,
		fbPhysAddr: fbPhysAddr,
		ports:      ports,
		clearChar:  ' ',
	}
}

// NewVgaTextConsoleWithBuffer creates a vga text console that renders into
// fb instead of the hardware framebuffer. fb must hold at least
// columns*rows cells.
func NewVgaTextConsoleWithBuffer(columns, rows uint32, fb []uint16, ports device.PortIO) *VgaTextConsole {
	cons := NewVgaTextConsole(columns, rows, 0, ports)
	cons.fb = fb[:columns*rows]
	return cons
}

// Dimensions returns the console width and height in characters.
func (cons *VgaTextConsole) Dimensions() (uint32, uint32) {
	return cons.width, cons.height
}

// Write a char to the specified location.
func (cons *VgaTextConsole) Write(ch byte, attr Attr, x, y uint32) {
	cons.fb[y*cons.width+x] = MakeCell(ch, attr)
}

// Cell returns the character and attribute stored at the specified location.
func (cons *VgaTextConsole) Cell(x, y uint32) (byte, Attr) {
	v := cons.fb[y*cons.width+x]
	return byte(v), Attr(v >> 8)
}

// Fill sets the contents of the specified rectangular region to the clear
// character using the requested attribute. The region is clipped to the
// console dimensions.
func (cons *VgaTextConsole) Fill(x, y, width, height uint32, attr Attr) {
	if x >= cons.width || y >= cons.height {
		return
	}

	if x+width > cons.width {
		width = cons.width - x
	}
	if y+height > cons.height {
		height = cons.height - y
	}

	var (
		clr       = MakeCell(cons.clearChar, attr)
		rowOffset = y*cons.width + x
		colOffset uint32
	)

	for ; height > 0; height, rowOffset = height-1, rowOffset+cons.width {
		for colOffset = rowOffset; colOffset < rowOffset+width; colOffset++ {
			cons.fb[colOffset] = clr
		}
	}
}

// Scroll the console contents to the specified direction. The caller
// is responsible for updating (e.g. clear or replace) the contents of
// the region that was scrolled.
func (cons *VgaTextConsole) Scroll(dir ScrollDir, lines uint32) {
	if lines == 0 || lines > cons.height {
		return
	}

	var i uint32
	offset := lines * cons.width

	switch dir {
	case ScrollDirUp:
		for ; i < (cons.height-lines)*cons.width; i++ {
			cons.fb[i] = cons.fb[i+offset]
		}
	case ScrollDirDown:
		for i = cons.height*cons.width - 1; i >= offset; i-- {
			cons.fb[i] = cons.fb[i-offset]
		}
	}
}

// SetCursor programs the CRT controller cursor location registers, low byte
// first.
func (cons *VgaTextConsole) SetCursor(offset uint32) {
	cons.ports.PortWriteByte(CRTCIndexPort, CursorLocationLow)
	cons.ports.PortWriteByte(CRTCDataPort, uint8(offset&0xff))
	cons.ports.PortWriteByte(CRTCIndexPort, CursorLocationHigh)
	cons.ports.PortWriteByte(CRTCDataPort, uint8((offset>>8)&0xff))
}

// DriverName returns the name of this driver.
func (cons *VgaTextConsole) DriverName() string {
	return "vga_text_console"
}

// DriverVersion returns the version of this driver.
func (cons *VgaTextConsole) DriverVersion() (uint16, uint16, uint16) {
	return 0, 0, 1
}

// DriverInit initializes this driver. The kernel runs in a single, identity
// mapped address space so the framebuffer is accessed directly at its
// physical address.
func (cons *VgaTextConsole) DriverInit(w io.Writer) *kernel.Error {
	if cons.fb != nil {
		kfmt.Fprintf(w, "using %ux%u buffered framebuffer\n", cons.width, cons.height)
		return nil
	}

	if cons.fbPhysAddr == 0 {
		return errNoFramebuffer
	}

	cons.fb = mapFramebufferFn(cons.fbPhysAddr, int(cons.width*cons.height))
	kfmt.Fprintf(w, "mapped framebuffer to %x\n", cons.fbPhysAddr)

	return nil
}

// mapFramebufferFn is mocked by tests.
var mapFramebufferFn = mapFramebuffer

func mapFramebuffer(physAddr uintptr, cells int) []uint16 {
	return unsafe.Slice((*uint16)(unsafe.Pointer(physAddr)), cells)
}
