// Package frame assembles and parses complete wire frames and owns the
// deadline-bounded send loop.
//
// Frame layout:
//
//	START_OF_MSG  4 bytes, all zero (resync sentinel)
//	TYPE          1 byte
//	SEQUENCE_NR   varint
//	PROCESS_ID    varint
//	THREAD_ID     varint
//	START_TIME    float, 8 bytes on the wire at either width
//	MSG_LEN       varint
//	PAYLOAD       MSG_LEN bytes
package frame

import (
	"errors"

	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
)

var startOfMessage = [4]byte{0x00, 0x00, 0x00, 0x00}

var (
	ErrShortFrame  = errors.New("frame: truncated frame")
	ErrBadSentinel = errors.New("frame: missing start-of-message sentinel")
	ErrBadType     = errors.New("frame: unknown message type")
)

// Encode assembles one contiguous frame for msg at the session's float
// width. The payload is copied into the returned buffer.
func Encode(msg protocol.Message, width wire.FloatWidth) ([]byte, error) {
	size := len(startOfMessage) + 1 +
		wire.UvarintLen(msg.Sequence) +
		wire.UvarintLen(msg.ProcessID) +
		wire.UvarintLen(msg.ThreadID) +
		wire.FloatFieldLen +
		wire.UvarintLen(uint64(len(msg.Payload))) +
		len(msg.Payload)

	buf := make([]byte, 0, size)
	buf = append(buf, startOfMessage[:]...)
	buf = append(buf, byte(msg.Type))
	buf = wire.AppendUvarint(buf, msg.Sequence)
	buf = wire.AppendUvarint(buf, msg.ProcessID)
	buf = wire.AppendUvarint(buf, msg.ThreadID)
	buf, err := wire.AppendFloat(buf, msg.StartTime, width)
	if err != nil {
		return nil, err
	}
	buf = wire.AppendUvarint(buf, uint64(len(msg.Payload)))
	return append(buf, msg.Payload...), nil
}

// Decode parses one frame from the front of buf, returning the message
// and the number of bytes consumed. buf must begin at a frame boundary.
func Decode(buf []byte, width wire.FloatWidth) (protocol.Message, int, error) {
	if len(buf) < len(startOfMessage)+1 {
		return protocol.Message{}, 0, ErrShortFrame
	}
	for i := range startOfMessage {
		if buf[i] != 0x00 {
			return protocol.Message{}, 0, ErrBadSentinel
		}
	}
	offset := len(startOfMessage)

	typ := buf[offset]
	if !protocol.KnownMessageType(typ) {
		return protocol.Message{}, 0, ErrBadType
	}
	offset++

	msg := protocol.Message{Type: protocol.MessageType(typ)}

	var err error
	if msg.Sequence, offset, err = decodeUvarintAt(buf, offset); err != nil {
		return protocol.Message{}, 0, err
	}
	if msg.ProcessID, offset, err = decodeUvarintAt(buf, offset); err != nil {
		return protocol.Message{}, 0, err
	}
	if msg.ThreadID, offset, err = decodeUvarintAt(buf, offset); err != nil {
		return protocol.Message{}, 0, err
	}

	start, n, err := wire.Float(buf[offset:], width)
	if err != nil {
		return protocol.Message{}, 0, err
	}
	msg.StartTime = start
	offset += n

	payloadLen, offset, err := decodeUvarintAt(buf, offset)
	if err != nil {
		return protocol.Message{}, 0, err
	}
	if payloadLen > uint64(len(buf)-offset) {
		return protocol.Message{}, 0, ErrShortFrame
	}
	if payloadLen > 0 {
		msg.Payload = make([]byte, payloadLen)
		copy(msg.Payload, buf[offset:offset+int(payloadLen)])
		offset += int(payloadLen)
	}
	return msg, offset, nil
}

func decodeUvarintAt(buf []byte, offset int) (uint64, int, error) {
	v, n, err := wire.Uvarint(buf[offset:])
	if err != nil {
		return 0, 0, err
	}
	return v, offset + n, nil
}
