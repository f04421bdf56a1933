package hw

import (
	"io"
	"strconv"
)

// TraceState is the CPU register file as sampled at an opcode fetch,
// before the instruction runs.
type TraceState struct {
	PC      uint16
	A, X, Y uint8
	SP      uint8
	P       P
	Clock   int64
}

// A Tracer receives one TraceState per instruction, at the fetch cycle.
type Tracer interface {
	Trace(TraceState)
}

// LineTracer writes one line per instruction in the nestest log register
// format:
//
//	PC:C000 A:00 X:00 Y:00 P:24 SP:FD CYC:0
type LineTracer struct {
	W io.Writer

	buf []byte
}

func NewLineTracer(w io.Writer) *LineTracer {
	return &LineTracer{W: w}
}

const hexdigits = "0123456789ABCDEF"

func appendHex8(buf []byte, v uint8) []byte {
	return append(buf, hexdigits[v>>4], hexdigits[v&0xF])
}

func appendHex16(buf []byte, v uint16) []byte {
	buf = appendHex8(buf, hibyte(v))
	return appendHex8(buf, lobyte(v))
}

func (t *LineTracer) Trace(s TraceState) {
	buf := t.buf[:0]

	buf = append(buf, "PC:"...)
	buf = appendHex16(buf, s.PC)
	buf = append(buf, " A:"...)
	buf = appendHex8(buf, s.A)
	buf = append(buf, " X:"...)
	buf = appendHex8(buf, s.X)
	buf = append(buf, " Y:"...)
	buf = appendHex8(buf, s.Y)
	buf = append(buf, " P:"...)
	buf = appendHex8(buf, uint8(s.P))
	buf = append(buf, " SP:"...)
	buf = appendHex8(buf, s.SP)
	buf = append(buf, " CYC:"...)
	buf = strconv.AppendInt(buf, s.Clock, 10)
	buf = append(buf, '\n')

	t.buf = buf
	t.W.Write(buf)
}
