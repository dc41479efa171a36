package kfmt

import (
	"io"
	"unsafe"
)

// maxBufSize defines the buffer size for formatting numbers. It fits the
// decimal representation of any 64-bit value.
const maxBufSize = 20

var (
	errMissingArg   = []byte("(MISSING)")
	errWrongArgType = []byte("%!(WRONGTYPE)")
	nullValue       = []byte("(null)")
	hexPrefix       = []byte("0x")

	numFmtBuf = make([]byte, maxBufSize)

	// singleByte is used as a shared buffer for passing single characters
	// to doWrite.
	singleByte = []byte(" ")

	// earlyPrintBuffer is a ring buffer that stores Printf output before the
	// console and TTYs are initialized.
	earlyPrintBuffer ringBuffer

	// outputSink is a io.Writer where Printf will send its output. If set
	// to nil, then the output will be redirected to the earlyPrintBuffer.
	outputSink io.Writer
)

// SetOutputSink sets the default target for calls to Printf to w and replays
// any output accumulated in the earlyPrintBuffer into it.
func SetOutputSink(w io.Writer) {
	outputSink = w
	if w != nil {
		io.Copy(w, &earlyPrintBuffer)
	}
}

// GetOutputSink returns the default target for calls to Printf.
func GetOutputSink() io.Writer {
	return outputSink
}

// Printf provides a minimal Printf implementation that can be safely used
// before the Go runtime has been properly initialized. This implementation
// does not allocate any memory.
//
// The format string is scanned left to right. The following verbs are
// supported:
//
//	%c  a single character (byte, rune or any integer type)
//	%s  a string or byte slice; a nil argument prints "(null)"
//	%d  a signed decimal integer with a leading '-' for negative values
//	%u  an unsigned decimal integer
//	%x  an unsigned integer in lower-case hex prefixed with 0x; zero is
//	    printed as a bare 0
//	%%  a literal '%'
//
// Width, precision and length modifiers are not parsed. A '%' followed by
// any other character is printed verbatim, together with that character.
//
// Every converted piece is written to the output as soon as it is produced,
// so partial output remains visible. Arguments of the wrong type print
// %!(WRONGTYPE), missing arguments print (MISSING) and surplus arguments are
// ignored.
//
// The output of Printf is written to the active output sink. If no sink is
// available, the output is buffered into a ring buffer which is replayed by
// SetOutputSink.
func Printf(format string, args ...interface{}) {
	Fprintf(outputSink, format, args...)
}

// Fprintf behaves exactly like Printf but it writes the formatted output to
// the specified io.Writer.
func Fprintf(w io.Writer, format string, args ...interface{}) {
	var (
		nextCh       byte
		nextArgIndex int
		fmtLen       = len(format)
	)

	for i := 0; i < fmtLen; i++ {
		nextCh = format[i]
		if nextCh != '%' {
			// passing format[i:j] to doWrite triggers a memory
			// allocation so we need to do this one byte at a time.
			writeByte(w, nextCh)
			continue
		}

		// A lone '%' at the end of the format string
		if i++; i == fmtLen {
			writeByte(w, '%')
			break
		}

		switch nextCh = format[i]; nextCh {
		case '%':
			writeByte(w, '%')
		case 'c', 's', 'd', 'u', 'x':
			if nextArgIndex >= len(args) {
				doWrite(w, errMissingArg)
				continue
			}

			switch nextCh {
			case 'c':
				fmtChar(w, args[nextArgIndex])
			case 's':
				fmtString(w, args[nextArgIndex])
			case 'd':
				fmtSigned(w, args[nextArgIndex])
			case 'u':
				fmtUnsigned(w, args[nextArgIndex], 10)
			case 'x':
				fmtUnsigned(w, args[nextArgIndex], 16)
			}
			nextArgIndex++
		default:
			writeByte(w, '%')
			writeByte(w, nextCh)
		}
	}
}

// fmtChar prints v as a single character. Runes outside the ASCII range
// are truncated to their low byte.
func fmtChar(w io.Writer, v interface{}) {
	uval, ok := toUnsigned(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	writeByte(w, byte(uval))
}

// fmtString prints a string or []byte value v. A nil value (or a nil byte
// slice) prints (null).
func fmtString(w io.Writer, v interface{}) {
	switch castedVal := v.(type) {
	case nil:
		doWrite(w, nullValue)
	case string:
		// converting the string to a byte slice triggers a memory allocation
		// so we need to do this one byte at a time.
		for i := 0; i < len(castedVal); i++ {
			writeByte(w, castedVal[i])
		}
	case []byte:
		if castedVal == nil {
			doWrite(w, nullValue)
			return
		}
		doWrite(w, castedVal)
	default:
		doWrite(w, errWrongArgType)
	}
}

// fmtSigned prints v in base 10. Negative values get a leading '-'.
func fmtSigned(w io.Writer, v interface{}) {
	uval, negative, ok := toInt(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	if negative {
		writeByte(w, '-')
		// two's complement negation also handles the minimum value
		uval = -uval
	}

	fmtNumber(w, uval, 10)
}

// fmtUnsigned prints v in the requested base. Signed values are
// reinterpreted as unsigned values of the same width. Non-zero base-16
// values get a 0x prefix; zero is always printed as a single 0.
func fmtUnsigned(w io.Writer, v interface{}, base uint64) {
	uval, ok := toUnsigned(v)
	if !ok {
		doWrite(w, errWrongArgType)
		return
	}

	if base == 16 && uval != 0 {
		doWrite(w, hexPrefix)
	}

	fmtNumber(w, uval, base)
}

// fmtNumber writes the digits of uval in the requested base.
func fmtNumber(w io.Writer, uval, base uint64) {
	var (
		remainder uint64
		right     = maxBufSize
	)

	for {
		remainder = uval % base
		right--
		if remainder < 10 {
			numFmtBuf[right] = byte(remainder) + '0'
		} else {
			// map values from 10 to 15 -> a-f
			numFmtBuf[right] = byte(remainder-10) + 'a'
		}

		uval /= base
		if uval == 0 {
			break
		}
	}

	doWrite(w, numFmtBuf[right:])
}

// toInt converts any built-in integer type into its magnitude bits and sign.
// For negative values, the returned bits hold the two's complement
// representation of the value.
func toInt(v interface{}) (uint64, bool, bool) {
	switch v.(type) {
	case int8:
		sval := int64(v.(int8))
		return uint64(sval), sval < 0, true
	case int16:
		sval := int64(v.(int16))
		return uint64(sval), sval < 0, true
	case int32:
		sval := int64(v.(int32))
		return uint64(sval), sval < 0, true
	case int64:
		sval := v.(int64)
		return uint64(sval), sval < 0, true
	case int:
		sval := int64(v.(int))
		return uint64(sval), sval < 0, true
	}

	uval, ok := toUnsigned(v)
	return uval, false, ok
}

// toUnsigned converts any built-in integer type into an unsigned value of
// the same width.
func toUnsigned(v interface{}) (uint64, bool) {
	switch v.(type) {
	case uint8:
		return uint64(v.(uint8)), true
	case uint16:
		return uint64(v.(uint16)), true
	case uint32:
		return uint64(v.(uint32)), true
	case uint64:
		return v.(uint64), true
	case uint:
		return uint64(v.(uint)), true
	case uintptr:
		return uint64(v.(uintptr)), true
	case int8:
		return uint64(uint8(v.(int8))), true
	case int16:
		return uint64(uint16(v.(int16))), true
	case int32:
		return uint64(uint32(v.(int32))), true
	case int64:
		return uint64(v.(int64)), true
	case int:
		return uint64(uint(v.(int))), true
	}

	return 0, false
}

// writeByte sends a single character to w using the shared singleByte
// buffer.
func writeByte(w io.Writer, b byte) {
	singleByte[0] = b
	doWrite(w, singleByte)
}

// doWrite is a proxy that uses the runtime.noescape hack to hide p from the
// compiler's escape analysis. Without this hack, the compiler cannot properly
// detect that p does not escape (due to the call to the yet unknown outputSink
// io.Writer) and plays it safe by flagging it as escaping. This causes all
// calls to Printf to call runtime.convT2E which triggers a memory allocation
// causing the kernel to crash if a call to Printf is made before the Go
// allocator is initialized.
func doWrite(w io.Writer, p []byte) {
	doRealWrite(w, noEscape(unsafe.Pointer(&p)))
}

func doRealWrite(w io.Writer, bufPtr unsafe.Pointer) {
	p := *(*[]byte)(bufPtr)
	if w != nil {
		w.Write(p)
	} else {
		earlyPrintBuffer.Write(p)
	}
}

// noEscape hides a pointer from escape analysis. This function is copied over
// from runtime/stubs.go
//
//go:nosplit
func noEscape(p unsafe.Pointer) unsafe.Pointer {
	x := uintptr(p)
	return unsafe.Pointer(x ^ 0)
}
