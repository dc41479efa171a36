package hosted

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/Duchemil/Kfs-1/device/keyboard"
	"github.com/Duchemil/Kfs-1/device/tty"
	"github.com/Duchemil/Kfs-1/device/video/console"
	"github.com/Duchemil/Kfs-1/kernel/kfmt"
	"github.com/Duchemil/Kfs-1/kernel/kmain"
)

// Machine wires the kernel drivers to emulated hardware.
type Machine struct {
	bus      *PortBus
	crtc     *CRTC
	kbc      *KeyboardController
	display  *Display
	decoder  *keyboard.Decoder
	keymap   *Keymap
	terminal *tty.VT

	log *slog.Logger
}

// NewMachine creates a machine drawing to screen.
func NewMachine(screen tcell.Screen, logger *slog.Logger) *Machine {
	m := &Machine{
		bus:    NewPortBus(logger),
		kbc:    NewKeyboardController(logger),
		keymap: NewKeymap(),
		log:    logger,
	}

	m.display = NewDisplay(screen, m.bus)
	m.crtc = NewCRTC(m.display.MoveCursor)
	m.decoder = keyboard.NewDecoder(m.bus)

	m.bus.Attach(m.crtc, console.CRTCIndexPort, console.CRTCDataPort)
	m.bus.Attach(m.kbc, keyboard.DataPort, keyboard.StatusPort)

	return m
}

// Display returns the machine display.
func (m *Machine) Display() *Display {
	return m.display
}

// Terminal returns the kernel terminal. It is nil until the machine boots.
func (m *Machine) Terminal() *tty.VT {
	return m.terminal
}

// Type queues the keystrokes for text.
func (m *Machine) Type(text []byte) {
	m.kbc.Push(m.keymap.Encode(text)...)
}

// Key queues the keystrokes for a host key event. It returns false if the key
// cannot be typed on the emulated keyboard.
func (m *Machine) Key(ev *tcell.EventKey) bool {
	scancodes := m.keymap.KeyEvent(ev)
	if len(scancodes) == 0 {
		return false
	}

	m.kbc.Push(scancodes...)
	return true
}

// Drained returns a channel that is closed once the keyboard is closed and
// every queued keystroke has been delivered to the kernel.
func (m *Machine) Drained() <-chan struct{} {
	return m.kbc.Drained()
}

// Run boots the kernel and services the keyboard until ctx is cancelled or
// the keyboard is closed with Close. Keystrokes queued before that point are
// still processed.
func (m *Machine) Run(ctx context.Context) error {
	defer kfmt.SetOutputSink(nil)

	vt, err := kmain.Boot(m.display, m.decoder)
	if err != nil {
		return fmt.Errorf("boot: %w", err)
	}
	m.terminal = vt
	m.log.Debug("kernel booted")

	go func() {
		select {
		case <-ctx.Done():
			m.kbc.Close()
		case <-m.kbc.Drained():
		}
	}()

	for !m.kbc.Done() {
		m.decoder.Poll()
	}

	m.log.Debug("keyboard drained")
	return nil
}

// Close stops accepting keystrokes. Run returns once the pending ones are
// processed.
func (m *Machine) Close() {
	m.kbc.Close()
}
