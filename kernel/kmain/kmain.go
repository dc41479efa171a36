package kmain

import (
	"github.com/Duchemil/Kfs-1/device"
	"github.com/Duchemil/Kfs-1/device/keyboard"
	"github.com/Duchemil/Kfs-1/device/tty"
	"github.com/Duchemil/Kfs-1/device/video/console"
	"github.com/Duchemil/Kfs-1/kernel"
	"github.com/Duchemil/Kfs-1/kernel/cpu"
	"github.com/Duchemil/Kfs-1/kernel/hal"
	"github.com/Duchemil/Kfs-1/kernel/kfmt"
)

var (
	errKmainReturned = &kernel.Error{Module: "kmain", Message: "Kmain returned"}
)

// Console is a console device that can be brought up by the hal.
type Console interface {
	console.Device
	device.Driver
}

// earlyWriter routes driver init output through kfmt so it lands in the
// early print buffer until a terminal becomes the output sink.
type earlyWriter struct{}

func (earlyWriter) Write(p []byte) (int, error) {
	kfmt.Printf("%s", p)
	return len(p), nil
}

// Boot initializes the console, a terminal on top of it and the keyboard
// decoder. Once the drivers are up, keyboard input is echoed to the terminal,
// kfmt output is redirected to it and the boot banner is printed. Boot returns
// the active terminal.
func Boot(cons Console, kbd *keyboard.Decoder) (*tty.VT, *kernel.Error) {
	vt := tty.NewVT(cons)
	if err := hal.InitDrivers(earlyWriter{}, cons, vt, kbd); err != nil {
		return nil, err
	}

	kbd.AttachTo(vt)
	kfmt.SetOutputSink(vt)
	printBanner(vt)

	return vt, nil
}

// Run boots the system and then services the keyboard forever. Run only
// returns if bring-up fails.
func Run(cons Console, kbd *keyboard.Decoder) *kernel.Error {
	if _, err := Boot(cons, kbd); err != nil {
		return err
	}

	for {
		kbd.Poll()
	}
}

// Kmain is the only Go symbol that is visible (exported) from the rt0
// initialization code. It binds the drivers to the VGA text framebuffer and
// the CPU I/O ports and hands control to Run.
//
// Kmain is not expected to return. If it does, the rt0 code will halt the CPU.
//
//go:noinline
func Kmain() {
	cons := console.NewVgaTextConsole(console.Width, console.Height, console.FramebufferPhysAddr, cpu.Ports)
	kbd := keyboard.NewDecoder(cpu.Ports)

	err := Run(cons, kbd)
	if err == nil {
		err = errKmainReturned
	}

	// Use kfmt.Panic instead of panic to prevent the compiler from
	// treating kfmt.Panic as dead-code and eliminating it.
	kfmt.Panic(err)
}
