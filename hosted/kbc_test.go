package hosted

import (
	"testing"
	"time"

	"github.com/Duchemil/Kfs-1/device/keyboard"
)

func TestKeyboardController(t *testing.T) {
	kbc := NewKeyboardController(discardLogger())

	if got := kbc.In(keyboard.StatusPort); got&keyboard.StatusOutputFull != 0 {
		t.Fatal("expected empty controller to report an empty output buffer")
	}

	kbc.Push(0x1e, 0x9e)
	for i, exp := range []uint8{0x1e, 0x9e} {
		if got := kbc.In(keyboard.StatusPort); got&keyboard.StatusOutputFull == 0 {
			t.Fatalf("[read %d] expected a pending scancode", i)
		}

		if got := kbc.In(keyboard.DataPort); got != exp {
			t.Fatalf("[read %d] expected scancode 0x%x; got 0x%x", i, exp, got)
		}
	}

	if kbc.Done() {
		t.Fatal("expected controller not to be done before Close")
	}

	kbc.Push(0x10)
	kbc.Close()
	kbc.Push(0x11)

	select {
	case <-kbc.Drained():
		t.Fatal("expected Drained to block while scancodes are pending")
	default:
	}

	if got := kbc.In(keyboard.DataPort); got != 0x10 {
		t.Fatalf("expected scancode queued before Close; got 0x%x", got)
	}

	select {
	case <-kbc.Drained():
	case <-time.After(time.Second):
		t.Fatal("expected Drained to be signalled once the queue is empty")
	}

	if !kbc.Done() {
		t.Fatal("expected controller to be done")
	}

	// a drained controller never stalls a poll
	if got := kbc.In(keyboard.StatusPort); got&keyboard.StatusOutputFull == 0 {
		t.Fatal("expected drained controller to report a full output buffer")
	}

	if got := kbc.In(keyboard.DataPort); got != 0 {
		t.Fatalf("expected drained controller to yield 0; got 0x%x", got)
	}
}

func TestKeyboardControllerCloseEmpty(t *testing.T) {
	kbc := NewKeyboardController(discardLogger())
	kbc.Close()
	kbc.Close()

	select {
	case <-kbc.Drained():
	default:
		t.Fatal("expected closing an empty controller to signal Drained")
	}
}
