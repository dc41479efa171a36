package hosted

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Duchemil/Kfs-1/device/keyboard"
)

// emptyBackoff is how long a status read waits when no scancode is pending.
const emptyBackoff = time.Millisecond

// KeyboardController emulates the output side of an AT keyboard controller.
// Scancodes pushed by the host are queued and handed out one per data port
// read.
//
// Once closed and drained, the controller keeps reporting a full output
// buffer and yields 0, a code the decoder ignores, so a polling loop never
// stalls on a controller that will not receive any more input.
type KeyboardController struct {
	mu     sync.Mutex
	queue  []uint8
	closed bool

	drained     chan struct{}
	drainedOnce sync.Once

	log *slog.Logger
}

// NewKeyboardController creates a controller with an empty queue.
func NewKeyboardController(logger *slog.Logger) *KeyboardController {
	return &KeyboardController{
		drained: make(chan struct{}),
		log:     logger,
	}
}

// Push queues scancodes for the kernel. Scancodes pushed after Close are
// dropped.
func (c *KeyboardController) Push(scancodes ...uint8) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		c.log.Debug("dropping scancodes pushed after close", "count", len(scancodes))
		return
	}

	c.queue = append(c.queue, scancodes...)
}

// Close stops accepting scancodes. Drained is signalled once every queued
// scancode has been read.
func (c *KeyboardController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if len(c.queue) == 0 {
		c.signalDrained()
	}
}

// Drained returns a channel that is closed once the controller is closed and
// its queue is empty.
func (c *KeyboardController) Drained() <-chan struct{} {
	return c.drained
}

// Done returns true once the controller is closed and its queue is empty.
func (c *KeyboardController) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.closed && len(c.queue) == 0
}

// In implements PortDevice.
func (c *KeyboardController) In(port uint16) uint8 {
	switch port {
	case keyboard.StatusPort:
		return c.status()
	case keyboard.DataPort:
		return c.data()
	}

	return floatingBus
}

// Out implements PortDevice. Commands to the controller are not supported.
func (c *KeyboardController) Out(port uint16, val uint8) {
	c.log.Debug("ignoring keyboard controller write", "port", port, "value", val)
}

func (c *KeyboardController) status() uint8 {
	c.mu.Lock()
	ready := len(c.queue) > 0 || c.closed
	c.mu.Unlock()

	if ready {
		return keyboard.StatusOutputFull
	}

	time.Sleep(emptyBackoff)
	return 0
}

func (c *KeyboardController) data() uint8 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.queue) == 0 {
		return 0
	}

	sc := c.queue[0]
	c.queue = c.queue[1:]
	if c.closed && len(c.queue) == 0 {
		c.signalDrained()
	}

	return sc
}

func (c *KeyboardController) signalDrained() {
	c.drainedOnce.Do(func() { close(c.drained) })
}
