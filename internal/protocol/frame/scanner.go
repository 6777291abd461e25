package frame

import (
	"bufio"
	"io"

	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
)

// Scanner reads frames from a byte stream, resynchronizing after damage
// by scanning forward for four consecutive zero bytes followed by a
// plausible type byte. Senders that miss their deadline leave partial
// frames on the wire; this is the recovery path the sentinel exists for.
type Scanner struct {
	r     *bufio.Reader
	width wire.FloatWidth
}

func NewScanner(r io.Reader, width wire.FloatWidth) *Scanner {
	return &Scanner{r: bufio.NewReader(r), width: width}
}

// Next returns the next complete frame, skipping garbage between frames.
// It returns io.EOF when the stream ends cleanly and io.ErrUnexpectedEOF
// when it ends inside a frame.
func (s *Scanner) Next() (protocol.Message, error) {
	typ, err := s.sync()
	if err != nil {
		return protocol.Message{}, err
	}

	msg := protocol.Message{Type: protocol.MessageType(typ)}
	if msg.Sequence, err = s.readUvarint(); err != nil {
		return protocol.Message{}, err
	}
	if msg.ProcessID, err = s.readUvarint(); err != nil {
		return protocol.Message{}, err
	}
	if msg.ThreadID, err = s.readUvarint(); err != nil {
		return protocol.Message{}, err
	}

	var floatField [wire.FloatFieldLen]byte
	if _, err := io.ReadFull(s.r, floatField[:]); err != nil {
		return protocol.Message{}, eof(err)
	}
	start, _, err := wire.Float(floatField[:], s.width)
	if err != nil {
		return protocol.Message{}, err
	}
	msg.StartTime = start

	payloadLen, err := s.readUvarint()
	if err != nil {
		return protocol.Message{}, err
	}
	if payloadLen > 0 {
		msg.Payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(s.r, msg.Payload); err != nil {
			return protocol.Message{}, eof(err)
		}
	}
	return msg, nil
}

// sync consumes bytes until it has seen the zero sentinel immediately
// followed by a known type byte, and returns that type byte.
func (s *Scanner) sync() (byte, error) {
	zeros := 0
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			if zeros > 0 && err == io.EOF {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if b == 0x00 {
			if zeros < len(startOfMessage) {
				zeros++
			}
			continue
		}
		if zeros >= len(startOfMessage) && protocol.KnownMessageType(b) {
			return b, nil
		}
		zeros = 0
	}
}

func (s *Scanner) readUvarint() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := s.r.ReadByte()
		if err != nil {
			return 0, eof(err)
		}
		if shift >= 64 {
			return 0, wire.ErrVarintOverflow
		}
		v |= uint64(b&0x7F) << shift
		if b < 0x80 {
			return v, nil
		}
		shift += 7
	}
}

func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
