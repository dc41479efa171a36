package console

import "image/color"

// Color is one of the 16 EGA colors supported by text mode.
type Color uint8

// Hardware text mode color constants.
const (
	Black Color = iota
	Blue
	Green
	Cyan
	Red
	Magenta
	Brown
	LightGrey
	DarkGrey
	LightBlue
	LightGreen
	LightCyan
	LightRed
	LightMagenta
	LightBrown
	White
)

// Attr is a packed color attribute: the foreground color occupies the low
// nibble and the background color the high nibble.
type Attr uint8

// DefaultAttr is the light grey on black attribute consoles start with.
const DefaultAttr = Attr(LightGrey) | Attr(Black)<<4

// MakeAttr packs a foreground and background color into an attribute byte.
func MakeAttr(fg, bg Color) Attr {
	return Attr(fg&0xf) | Attr(bg&0xf)<<4
}

// Fg returns the foreground color of the attribute.
func (a Attr) Fg() Color { return Color(a & 0xf) }

// Bg returns the background color of the attribute.
func (a Attr) Bg() Color { return Color(a >> 4) }

// MakeCell packs a character and its attribute into a framebuffer cell.
func MakeCell(ch byte, attr Attr) uint16 {
	return uint16(ch) | uint16(attr)<<8
}

// ScrollDir defines a scroll direction.
type ScrollDir uint8

// The supported list of scroll directions for the console Scroll() calls.
const (
	ScrollDirUp ScrollDir = iota
	ScrollDirDown
)

// The Device interface is implemented by objects that can function as
// system consoles. All coordinates are 0-based (top-left corner is 0,0).
type Device interface {
	// Dimensions returns the console width and height in characters.
	Dimensions() (uint32, uint32)

	// Write a char with the given attribute to the specified location.
	// Callers must keep x and y inside the console dimensions; no bounds
	// checking is performed.
	Write(ch byte, attr Attr, x, y uint32)

	// Fill sets the contents of the specified rectangular region to
	// blank characters using the requested attribute.
	Fill(x, y, width, height uint32, attr Attr)

	// Scroll the console contents to the specified direction. The caller
	// is responsible for updating (e.g. clear or replace) the contents of
	// the region that was scrolled.
	Scroll(dir ScrollDir, lines uint32)

	// SetCursor moves the blinking hardware cursor to the linear offset
	// row*width+column.
	SetCursor(offset uint32)
}

// Palette contains the RGB values of the EGA colors, indexed by Color.
var Palette = color.Palette{
	color.RGBA{R: 0, G: 0, B: 0, A: 255},       /* black */
	color.RGBA{R: 0, G: 0, B: 170, A: 255},     /* blue */
	color.RGBA{R: 0, G: 170, B: 0, A: 255},     /* green */
	color.RGBA{R: 0, G: 170, B: 170, A: 255},   /* cyan */
	color.RGBA{R: 170, G: 0, B: 0, A: 255},     /* red */
	color.RGBA{R: 170, G: 0, B: 170, A: 255},   /* magenta */
	color.RGBA{R: 170, G: 85, B: 0, A: 255},    /* brown */
	color.RGBA{R: 170, G: 170, B: 170, A: 255}, /* light grey */
	color.RGBA{R: 85, G: 85, B: 85, A: 255},    /* dark grey */
	color.RGBA{R: 85, G: 85, B: 255, A: 255},   /* light blue */
	color.RGBA{R: 85, G: 255, B: 85, A: 255},   /* light green */
	color.RGBA{R: 85, G: 255, B: 255, A: 255},  /* light cyan */
	color.RGBA{R: 255, G: 85, B: 85, A: 255},   /* light red */
	color.RGBA{R: 255, G: 85, B: 255, A: 255},  /* light magenta */
	color.RGBA{R: 255, G: 255, B: 85, A: 255},  /* yellow */
	color.RGBA{R: 255, G: 255, B: 255, A: 255}, /* white */
}
