// Package hosted emulates the hardware touched by the kernel drivers so that
// the kernel can run as a regular process.
//
// A PortBus stands in for the CPU I/O port space and routes port accesses to
// the attached devices: a CRT controller that tracks the hardware cursor and
// an AT keyboard controller fed with set 1 scancodes. The text framebuffer is
// a Go slice mirrored to a tcell screen by Display.
//
// Only one Machine may run at a time since the kernel keeps its output sink
// in package-level state.
package hosted
