// Package hal brings up the device drivers used by the kernel.
package hal

import (
	"bytes"
	"io"

	"github.com/Duchemil/Kfs-1/device"
	"github.com/Duchemil/Kfs-1/kernel"
	"github.com/Duchemil/Kfs-1/kernel/kfmt"
)

var strBuf bytes.Buffer

// InitDrivers initializes the supplied drivers in order. Driver output is
// written to sink with a "[hal] name(major.minor.patch): " prefix on every
// line. Initialization stops at the first driver that fails and its error is
// returned.
func InitDrivers(sink io.Writer, drivers ...device.Driver) *kernel.Error {
	var w = kfmt.PrefixWriter{Sink: sink}

	for _, drv := range drivers {
		strBuf.Reset()
		major, minor, patch := drv.DriverVersion()
		kfmt.Fprintf(&strBuf, "[hal] %s(%d.%d.%d): ", drv.DriverName(), major, minor, patch)
		w.Prefix = strBuf.Bytes()

		if err := drv.DriverInit(&w); err != nil {
			kfmt.Fprintf(&w, "init failed: %s\n", err.Message)
			return err
		}

		kfmt.Fprintf(&w, "initialized\n")
	}

	return nil
}
