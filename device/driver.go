package device

import (
	"io"

	"github.com/Duchemil/Kfs-1/kernel"
)

// Driver is an interface implemented by all drivers.
type Driver interface {
	// DriverName returns the name of the driver.
	DriverName() string

	// DriverVersion returns the driver version.
	DriverVersion() (major uint16, minor uint16, patch uint16)

	// DriverInit initializes the device driver. If the driver init code
	// needs to log some output, it can use the supplied io.Writer in
	// conjunction with a call to kfmt.Fprintf.
	DriverInit(io.Writer) *kernel.Error
}

// PortIO provides byte-wide access to an I/O port space. It is implemented
// by the CPU for real hardware and by emulated buses on the host.
type PortIO interface {
	// PortReadByte reads a uint8 value from the requested port.
	PortReadByte(port uint16) uint8

	// PortWriteByte writes a uint8 value to the requested port.
	PortWriteByte(port uint16, val uint8)
}
