package frame

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	in := protocol.Message{
		Type:      protocol.MsgStatsRecord,
		Sequence:  42,
		ProcessID: 31337,
		ThreadID:  7,
		StartTime: 1700000000.000125,
		Payload:   []byte{0x01, 0x02, 0x03},
	}
	buf, err := Encode(in, wire.Float64Width)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, n, err := Decode(buf, wire.Float64Width)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if n != len(buf) {
		t.Fatalf("decode consumed %d of %d bytes", n, len(buf))
	}
	if out.Type != in.Type || out.Sequence != in.Sequence || out.ProcessID != in.ProcessID || out.ThreadID != in.ThreadID {
		t.Fatalf("header mismatch: got=%+v want=%+v", out, in)
	}
	if out.StartTime != in.StartTime {
		t.Fatalf("start time mismatch: got=%v want=%v", out.StartTime, in.StartTime)
	}
	if !bytes.Equal(out.Payload, in.Payload) {
		t.Fatalf("payload mismatch")
	}
}

func TestEncodeSelfDescription(t *testing.T) {
	msg := protocol.Message{
		Type:      protocol.MsgViewRegister,
		Sequence:  300,
		ProcessID: 1,
		ThreadID:  0,
		StartTime: 2.5,
		Payload:   bytes.Repeat([]byte{0xAB}, 200),
	}
	buf, err := Encode(msg, wire.Float64Width)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(buf[:4], []byte{0, 0, 0, 0}) {
		t.Fatalf("frame must start with four zero bytes: %x", buf[:8])
	}
	if buf[4] != byte(protocol.MsgViewRegister) {
		t.Fatalf("type byte: got %#x", buf[4])
	}
	want := 4 + 1 +
		wire.UvarintLen(300) + wire.UvarintLen(1) + wire.UvarintLen(0) +
		wire.FloatFieldLen +
		wire.UvarintLen(200) + 200
	if len(buf) != want {
		t.Fatalf("frame length: got %d want %d", len(buf), want)
	}
}

func TestEncodeEmptyPayload(t *testing.T) {
	msg := protocol.Message{Type: protocol.MsgReqShutdown, Sequence: 9, ProcessID: 4, StartTime: 1.0}
	buf, err := Encode(msg, wire.Float64Width)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, _, err := Decode(buf, wire.Float64Width)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Payload) != 0 {
		t.Fatalf("expected empty payload, got %d bytes", len(out.Payload))
	}
}

func TestDecodeRejectsBadSentinel(t *testing.T) {
	msg := protocol.Message{Type: protocol.MsgReqInit, Sequence: 1, StartTime: 1.0}
	buf, _ := Encode(msg, wire.Float64Width)
	buf[2] = 0xFF
	_, _, err := Decode(buf, wire.Float64Width)
	if !errors.Is(err, ErrBadSentinel) {
		t.Fatalf("expected ErrBadSentinel, got %v", err)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	msg := protocol.Message{Type: protocol.MsgReqInit, Sequence: 1, StartTime: 1.0}
	buf, _ := Encode(msg, wire.Float64Width)
	buf[4] = 0x7E
	_, _, err := Decode(buf, wire.Float64Width)
	if !errors.Is(err, ErrBadType) {
		t.Fatalf("expected ErrBadType, got %v", err)
	}
}

func TestDecodeTruncatedPayload(t *testing.T) {
	msg := protocol.Message{Type: protocol.MsgTraceExport, Sequence: 1, StartTime: 1.0, Payload: []byte("abcdef")}
	buf, _ := Encode(msg, wire.Float64Width)
	_, _, err := Decode(buf[:len(buf)-2], wire.Float64Width)
	if !errors.Is(err, ErrShortFrame) {
		t.Fatalf("expected ErrShortFrame, got %v", err)
	}
}

func TestScannerResyncsAfterGarbage(t *testing.T) {
	first, _ := Encode(protocol.Message{Type: protocol.MsgMeasureCreate, Sequence: 1, ProcessID: 2, StartTime: 1.5, Payload: []byte("m")}, wire.Float64Width)
	second, _ := Encode(protocol.Message{Type: protocol.MsgStatsRecord, Sequence: 2, ProcessID: 2, StartTime: 2.5, Payload: []byte("s")}, wire.Float64Width)

	var stream bytes.Buffer
	stream.Write([]byte{0xDE, 0xAD, 0xBE}) // junk before the first frame
	stream.Write(first)
	stream.Write(second[:3]) // a send that missed its deadline inside the sentinel
	stream.Write(second)

	sc := NewScanner(&stream, wire.Float64Width)

	got, err := sc.Next()
	if err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if got.Type != protocol.MsgMeasureCreate || got.Sequence != 1 {
		t.Fatalf("first frame: %+v", got)
	}

	// The orphaned sentinel bytes merge into the next frame's leading
	// zeros; the scanner lands on the complete second frame.
	got, err = sc.Next()
	if err != nil {
		t.Fatalf("resync: %v", err)
	}
	if got.Type != protocol.MsgStatsRecord || got.Sequence != 2 {
		t.Fatalf("resync frame: %+v", got)
	}
	if !bytes.Equal(got.Payload, []byte("s")) {
		t.Fatalf("resync payload: %q", got.Payload)
	}
}

func TestScannerCleanStream(t *testing.T) {
	var stream bytes.Buffer
	for seq := uint64(1); seq <= 3; seq++ {
		buf, _ := Encode(protocol.Message{Type: protocol.MsgStatsRecord, Sequence: seq, ProcessID: 10, StartTime: float64(seq)}, wire.Float64Width)
		stream.Write(buf)
	}
	sc := NewScanner(&stream, wire.Float64Width)
	for seq := uint64(1); seq <= 3; seq++ {
		msg, err := sc.Next()
		if err != nil {
			t.Fatalf("frame %d: %v", seq, err)
		}
		if msg.Sequence != seq {
			t.Fatalf("frame %d: sequence=%d", seq, msg.Sequence)
		}
	}
	if _, err := sc.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF at stream end, got %v", err)
	}
}
