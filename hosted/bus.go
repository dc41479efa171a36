package hosted

import (
	"log/slog"

	"github.com/Duchemil/Kfs-1/device"
)

// floatingBus is returned by reads from ports without an attached device.
const floatingBus uint8 = 0xff

// PortDevice is implemented by emulated devices that respond to port I/O.
type PortDevice interface {
	// In handles a read from port.
	In(port uint16) uint8

	// Out handles a write of val to port.
	Out(port uint16, val uint8)
}

// PortBus routes port accesses to attached devices. Devices must be attached
// before the bus is handed to a driver.
type PortBus struct {
	ports map[uint16]PortDevice
	log   *slog.Logger
}

var _ device.PortIO = (*PortBus)(nil)

// NewPortBus creates an empty bus logging unmapped accesses to logger.
func NewPortBus(logger *slog.Logger) *PortBus {
	return &PortBus{
		ports: make(map[uint16]PortDevice),
		log:   logger,
	}
}

// Attach registers dev as the handler for the listed ports. A port that is
// already attached is taken over by dev.
func (b *PortBus) Attach(dev PortDevice, ports ...uint16) {
	for _, port := range ports {
		if prev, ok := b.ports[port]; ok {
			b.log.Warn("port already attached", "port", port, "previous", prev, "device", dev)
		}
		b.ports[port] = dev
	}
}

// PortReadByte implements device.PortIO.
func (b *PortBus) PortReadByte(port uint16) uint8 {
	dev, ok := b.ports[port]
	if !ok {
		b.log.Debug("read from unmapped port", "port", port)
		return floatingBus
	}

	return dev.In(port)
}

// PortWriteByte implements device.PortIO.
func (b *PortBus) PortWriteByte(port uint16, val uint8) {
	dev, ok := b.ports[port]
	if !ok {
		b.log.Debug("write to unmapped port", "port", port, "value", val)
		return
	}

	dev.Out(port, val)
}
