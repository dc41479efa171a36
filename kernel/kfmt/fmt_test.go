package kfmt

import (
	"bytes"
	"math"
	"testing"
)

func TestPrintf(t *testing.T) {
	defer func() {
		outputSink = nil
	}()

	// mute vet warnings about malformed printf formatting strings
	printfn := Printf

	var nilBytes []byte

	specs := []struct {
		fn        func()
		expOutput string
	}{
		{
			func() { printfn("no args") },
			"no args",
		},
		// chars
		{
			func() { printfn("char: %c", 'A') },
			"char: A",
		},
		{
			func() { printfn("%c%c", byte('o'), 107) },
			"ok",
		},
		// strings and byte slices
		{
			func() { printfn("%s arg", "STRING") },
			"STRING arg",
		},
		{
			func() { printfn("%s arg", []byte("BYTE SLICE")) },
			"BYTE SLICE arg",
		},
		{
			func() { printfn("%s", nil) },
			"(null)",
		},
		{
			func() { printfn("%s", nilBytes) },
			"(null)",
		},
		// signed decimal
		{
			func() { printfn("int arg: %d", 42) },
			"int arg: 42",
		},
		{
			func() { printfn("int arg: %d", int8(-10)) },
			"int arg: -10",
		},
		{
			func() { printfn("%d", 0) },
			"0",
		},
		{
			func() { printfn("%d", int64(math.MinInt64)) },
			"-9223372036854775808",
		},
		{
			func() { printfn("%d", uint8(200)) },
			"200",
		},
		// unsigned decimal
		{
			func() { printfn("Unsigned: %u", uint32(123456)) },
			"Unsigned: 123456",
		},
		{
			func() { printfn("%u", 0) },
			"0",
		},
		{
			func() { printfn("%u", int32(-1)) },
			"4294967295",
		},
		{
			func() { printfn("%u", uint64(math.MaxUint64)) },
			"18446744073709551615",
		},
		// hex
		{
			func() { printfn("%x", 0) },
			"0",
		},
		{
			func() { printfn("%x", 42) },
			"0x2a",
		},
		{
			func() { printfn("Hex: %x", uint32(0xbadf00d)) },
			"Hex: 0xbadf00d",
		},
		{
			func() { printfn("uintptr %x", uintptr(0xb8000)) },
			"uintptr 0xb8000",
		},
		{
			func() { printfn("%x", int8(-1)) },
			"0xff",
		},
		// escapes and unknown directives
		{
			func() { printfn("100%%") },
			"100%",
		},
		{
			func() { printfn("%q", 1) },
			"%q",
		},
		{
			func() { printfn("%10d", 5) },
			"%10d",
		},
		{
			func() { printfn("trailing %") },
			"trailing %",
		},
		// multiple arguments
		{
			func() { printfn("%%%s%d%c%u%x", "foo", -123, 'z', uint(7), 255) },
			`%foo-123z70xff`,
		},
		// errors
		{
			func() { printfn("more args", "foo", "bar", "baz") },
			`more args`,
		},
		{
			func() { printfn("missing args %s|%d") },
			`missing args (MISSING)|(MISSING)`,
		},
		{
			func() { printfn("not int %d", "foo") },
			`not int %!(WRONGTYPE)`,
		},
		{
			func() { printfn("not string %s", 123) },
			`not string %!(WRONGTYPE)`,
		},
		{
			func() { printfn("not char %c|%s", "foo", "bar") },
			`not char %!(WRONGTYPE)|bar`,
		},
	}

	var buf bytes.Buffer
	SetOutputSink(&buf)

	for specIndex, spec := range specs {
		buf.Reset()
		spec.fn()

		if got := buf.String(); got != spec.expOutput {
			t.Errorf("[spec %d] expected to get\n%q\ngot:\n%q", specIndex, spec.expOutput, got)
		}
	}
}

func TestPrintfPiecewise(t *testing.T) {
	var w recordingWriter
	Fprintf(&w, "a%db", 12)

	exp := []string{"a", "12", "b"}
	if len(w.writes) != len(exp) {
		t.Fatalf("expected %d writes; got %d: %q", len(exp), len(w.writes), w.writes)
	}

	for i, piece := range exp {
		if w.writes[i] != piece {
			t.Errorf("[write %d] expected %q; got %q", i, piece, w.writes[i])
		}
	}
}

func TestPrintfToRingBuffer(t *testing.T) {
	defer func() {
		outputSink = nil
	}()

	SetOutputSink(nil)
	earlyPrintBuffer.rIndex, earlyPrintBuffer.wIndex = 0, 0

	exp := "hello world"
	Printf(exp)

	var buf bytes.Buffer
	SetOutputSink(&buf)

	if got := buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}

	if GetOutputSink() != &buf {
		t.Fatal("expected GetOutputSink to return the active sink")
	}
}

func TestFprintf(t *testing.T) {
	var buf bytes.Buffer

	exp := "hello world"
	Fprintf(&buf, exp)

	if got := buf.String(); got != exp {
		t.Fatalf("expected to get:\n%q\ngot:\n%q", exp, got)
	}
}

type recordingWriter struct {
	writes []string
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, string(p))
	return len(p), nil
}
