package hosted

import (
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Duchemil/Kfs-1/device"
	"github.com/Duchemil/Kfs-1/device/video/console"
	"github.com/Duchemil/Kfs-1/kernel"
)

// Display is a text console backed by a Go-allocated framebuffer. Every cell
// update is mirrored to a tcell screen using the EGA palette, and the screen
// cursor follows the CRT controller.
type Display struct {
	cons *console.VgaTextConsole

	screen tcell.Screen
	colors [16]tcell.Color
}

var (
	_ console.Device = (*Display)(nil)
	_ device.Driver  = (*Display)(nil)
)

// NewDisplay creates an 80x25 display drawing to screen. Cursor updates are
// written to the CRT controller reachable through ports.
func NewDisplay(screen tcell.Screen, ports device.PortIO) *Display {
	d := &Display{
		cons: console.NewVgaTextConsoleWithBuffer(
			console.Width, console.Height,
			make([]uint16, console.Width*console.Height),
			ports,
		),
		screen: screen,
	}

	for i, c := range console.Palette {
		r, g, b, _ := c.RGBA()
		d.colors[i] = tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
	}

	return d
}

// Dimensions implements console.Device.
func (d *Display) Dimensions() (uint32, uint32) {
	return d.cons.Dimensions()
}

// Write implements console.Device.
func (d *Display) Write(ch byte, attr console.Attr, x, y uint32) {
	d.cons.Write(ch, attr, x, y)
	d.mirror(x, y)
}

// Fill implements console.Device.
func (d *Display) Fill(x, y, width, height uint32, attr console.Attr) {
	d.cons.Fill(x, y, width, height, attr)

	w, h := d.cons.Dimensions()
	for row := y; row < y+height && row < h; row++ {
		for col := x; col < x+width && col < w; col++ {
			d.mirror(col, row)
		}
	}
}

// Scroll implements console.Device.
func (d *Display) Scroll(dir console.ScrollDir, lines uint32) {
	d.cons.Scroll(dir, lines)
	d.Sync()
}

// SetCursor implements console.Device.
func (d *Display) SetCursor(offset uint32) {
	d.cons.SetCursor(offset)
}

// MoveCursor places the screen cursor at a framebuffer offset. It is invoked
// by the CRT controller.
func (d *Display) MoveCursor(offset uint16) {
	w, _ := d.cons.Dimensions()
	d.screen.ShowCursor(int(uint32(offset)%w), int(uint32(offset)/w))
}

// Cell returns the character and attribute stored at the specified location.
func (d *Display) Cell(x, y uint32) (byte, console.Attr) {
	return d.cons.Cell(x, y)
}

// Sync redraws every cell of the framebuffer to the screen.
func (d *Display) Sync() {
	w, h := d.cons.Dimensions()
	for y := uint32(0); y < h; y++ {
		for x := uint32(0); x < w; x++ {
			d.mirror(x, y)
		}
	}
}

// Text returns the framebuffer contents as text, one line per row. Trailing
// blanks and empty trailing rows are dropped.
func (d *Display) Text() string {
	w, h := d.cons.Dimensions()
	lines := make([]string, h)

	var sb strings.Builder
	for y := uint32(0); y < h; y++ {
		sb.Reset()
		for x := uint32(0); x < w; x++ {
			ch, _ := d.cons.Cell(x, y)
			sb.WriteRune(printable(ch))
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}

	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// DriverName returns the name of this driver.
func (d *Display) DriverName() string {
	return d.cons.DriverName()
}

// DriverVersion returns the version of this driver.
func (d *Display) DriverVersion() (uint16, uint16, uint16) {
	return d.cons.DriverVersion()
}

// DriverInit initializes the underlying console and redraws the screen.
func (d *Display) DriverInit(w io.Writer) *kernel.Error {
	if err := d.cons.DriverInit(w); err != nil {
		return err
	}

	d.Sync()
	return nil
}

func (d *Display) mirror(x, y uint32) {
	ch, attr := d.cons.Cell(x, y)
	style := tcell.StyleDefault.
		Foreground(d.colors[attr.Fg()]).
		Background(d.colors[attr.Bg()])

	d.screen.SetContent(int(x), int(y), printable(ch), nil, style)
}

// printable maps control characters and bytes outside of ASCII to a blank.
func printable(ch byte) rune {
	if ch < 0x20 || ch >= 0x7f {
		return ' '
	}
	return rune(ch)
}
