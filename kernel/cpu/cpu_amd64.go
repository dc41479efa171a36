package cpu

// Halt stops instruction execution.
func Halt()

// PortWriteByte writes a uint8 value to the requested port.
func PortWriteByte(port uint16, val uint8)

// PortReadByte reads a uint8 value from the requested port.
func PortReadByte(port uint16) uint8

// Ports exposes the CPU I/O port space through the device.PortIO interface.
var Ports PortBus

// PortBus implements device.PortIO using the in/out instructions.
type PortBus struct{}

// PortReadByte reads a uint8 value from the requested port.
func (PortBus) PortReadByte(port uint16) uint8 {
	return PortReadByte(port)
}

// PortWriteByte writes a uint8 value to the requested port.
func (PortBus) PortWriteByte(port uint16, val uint8) {
	PortWriteByte(port, val)
}
