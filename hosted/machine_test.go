package hosted

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Duchemil/Kfs-1/device/video/console"
)

func TestMachineScript(t *testing.T) {
	m := NewMachine(newTestScreen(t), discardLogger())
	m.Type([]byte("hi\b!\nLine two"))
	m.Close()

	runMachine(t, m, context.Background())

	lines := strings.Split(m.Display().Text(), "\n")
	if len(lines) < 3 {
		t.Fatalf("expected banner and typed lines; got %q", lines)
	}

	exp := []string{"It's yo boi CarlOS!", "h!", "Line two"}
	if got := lines[len(lines)-3:]; strings.Join(got, "|") != strings.Join(exp, "|") {
		t.Fatalf("expected screen to end with %q; got %q", exp, got)
	}

	if !strings.HasPrefix(lines[0], "[hal] vga_text_console(0.0.1): using 80x25 buffered framebuffer") {
		t.Fatalf("expected driver bring-up log on the first row; got %q", lines[0])
	}

	if col, row := m.Terminal().CursorPosition(); col != 8 || row != uint32(len(lines)-1) {
		t.Fatalf("expected cursor after the typed text; got (%d, %d)", col, row)
	}

	if _, attr := m.Display().Cell(0, uint32(len(lines)-1)); attr != console.MakeAttr(console.White, console.Black) {
		t.Fatalf("expected typed text in white on black; got attr 0x%x", attr)
	}
}

func TestMachineKeyEvents(t *testing.T) {
	screen := newTestScreen(t)
	m := NewMachine(screen, discardLogger())

	if m.Key(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)) {
		t.Fatal("expected F5 to be rejected")
	}

	for _, r := range "ok" {
		if !m.Key(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)) {
			t.Fatalf("expected %q to be accepted", r)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runMachine(t, m, ctx)

	lines := strings.Split(m.Display().Text(), "\n")
	if got := lines[len(lines)-1]; got != "ok" {
		t.Fatalf("expected typed keys on the last row; got %q", got)
	}

	x, y, _ := screen.GetCursor()
	if x != 2 || y != len(lines)-1 {
		t.Fatalf("expected screen cursor at (2, %d); got (%d, %d)", len(lines)-1, x, y)
	}
}

func TestMachineScrolls(t *testing.T) {
	m := NewMachine(newTestScreen(t), discardLogger())
	for i := 0; i < console.Height; i++ {
		m.Type([]byte("x\n"))
	}
	m.Type([]byte("last"))
	m.Close()

	runMachine(t, m, context.Background())

	text := m.Display().Text()
	if strings.Contains(text, "[hal]") {
		t.Fatalf("expected boot log to be scrolled off the screen; got %q", text)
	}

	if !strings.HasSuffix(text, "x\nx\nlast") {
		t.Fatalf("expected screen to end with the typed lines; got %q", text)
	}

	if _, row := m.Terminal().CursorPosition(); row != console.Height-1 {
		t.Fatalf("expected cursor on the last row; got %d", row)
	}
}

func runMachine(t *testing.T, m *Machine, ctx context.Context) {
	t.Helper()

	errCh := make(chan error, 1)
	go func() { errCh <- m.Run(ctx) }()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the machine to drain its keyboard")
	}
}
