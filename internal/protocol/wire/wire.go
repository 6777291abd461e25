// Package wire holds the primitive codecs shared by every frame: unsigned
// base-128 varints, length-prefixed strings, and little-endian IEEE-754
// floats at the session's negotiated width.
package wire

import (
	"encoding/binary"
	"errors"
	"math"
	"unsafe"
)

var (
	ErrNegative       = errors.New("wire: negative varint input")
	ErrShortVarint    = errors.New("wire: truncated varint")
	ErrVarintOverflow = errors.New("wire: varint overflows uint64")
	ErrShortString    = errors.New("wire: truncated string")
	ErrShortFloat     = errors.New("wire: truncated float")
	ErrFloatPadding   = errors.New("wire: missing float padding sentinel")
	ErrBadWidth       = errors.New("wire: unsupported float width")
)

// FloatWidth is the per-session float encoding width in bytes.
type FloatWidth int

const (
	Float32Width FloatWidth = 4
	Float64Width FloatWidth = 8
)

// FloatFieldLen is the on-wire size of every float field regardless of
// width: 32-bit floats are padded with two zero bytes on each side.
const FloatFieldLen = 8

// ProbeFloatWidth encodes 1.0 in the platform's native double
// representation and measures it. The daemon expects the session to pick
// its width once, up front, and never change it.
func ProbeFloatWidth() FloatWidth {
	if unsafe.Sizeof(float64(1.0)) == 4 {
		return Float32Width
	}
	return Float64Width
}

// AppendUvarint appends v as a little-endian base-128 varint. Encoders
// append rather than allocate because varints are interleaved with other
// fields during frame assembly.
func AppendUvarint(buf []byte, v uint64) []byte {
	for v >= 0x80 {
		buf = append(buf, byte(v)|0x80)
		v >>= 7
	}
	return append(buf, byte(v))
}

// AppendVarint appends a non-negative signed value, rejecting negatives.
func AppendVarint(buf []byte, v int64) ([]byte, error) {
	if v < 0 {
		return buf, ErrNegative
	}
	return AppendUvarint(buf, uint64(v)), nil
}

// Uvarint decodes one varint from the front of buf, returning the value
// and the number of bytes consumed.
func Uvarint(buf []byte) (uint64, int, error) {
	var v uint64
	var shift uint
	for i, b := range buf {
		if shift >= 64 {
			return 0, 0, ErrVarintOverflow
		}
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, i + 1, nil
		}
		shift += 7
	}
	return 0, 0, ErrShortVarint
}

// UvarintLen reports the encoded size of v in bytes.
func UvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}

// AppendString appends the varint byte length of s followed by its raw
// bytes. No terminator, no character-set conversion.
func AppendString(buf []byte, s string) []byte {
	buf = AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// String decodes one length-prefixed string from the front of buf.
func String(buf []byte) (string, int, error) {
	n, consumed, err := Uvarint(buf)
	if err != nil {
		return "", 0, err
	}
	if n > uint64(len(buf)-consumed) {
		return "", 0, ErrShortString
	}
	end := consumed + int(n)
	return string(buf[consumed:end]), end, nil
}

// AppendFloat appends v at the given width. In 32-bit mode the value is
// bracketed by two zero bytes on each side so the field stays 8 bytes and
// the receiver can detect the width from the sentinel positions.
func AppendFloat(buf []byte, v float64, width FloatWidth) ([]byte, error) {
	switch width {
	case Float64Width:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(v))
		return append(buf, b[:]...), nil
	case Float32Width:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], math.Float32bits(float32(v)))
		buf = append(buf, 0x00, 0x00)
		buf = append(buf, b[:]...)
		return append(buf, 0x00, 0x00), nil
	default:
		return buf, ErrBadWidth
	}
}

// Float decodes one 8-byte float field from the front of buf, detecting
// 32-bit padding by the zero sentinels.
func Float(buf []byte, width FloatWidth) (float64, int, error) {
	if len(buf) < FloatFieldLen {
		return 0, 0, ErrShortFloat
	}
	switch width {
	case Float64Width:
		return math.Float64frombits(binary.LittleEndian.Uint64(buf[:8])), FloatFieldLen, nil
	case Float32Width:
		if buf[0] != 0 || buf[1] != 0 || buf[6] != 0 || buf[7] != 0 {
			return 0, 0, ErrFloatPadding
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[2:6]))), FloatFieldLen, nil
	default:
		return 0, 0, ErrBadWidth
	}
}
