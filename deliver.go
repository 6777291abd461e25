package ocdaemon

import (
	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/frame"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
)

// Deliverer is the bypass delegate. When installed via WithDeliverer it
// receives each dispatched message's type byte and payload in place of
// the frame writer and reports whether delivery succeeded.
type Deliverer interface {
	Deliver(msgType byte, payload []byte) bool
}

// deliverer is the internal seam between dispatch and the wire: either
// the framing transport path or the bypass delegate. Dispatchers make
// one call and never branch on the mode.
type deliverer interface {
	deliver(msg protocol.Message) bool
}

type frameDeliverer struct {
	writer *frame.Writer
	width  wire.FloatWidth
}

func (d *frameDeliverer) deliver(msg protocol.Message) bool {
	buf, err := frame.Encode(msg, d.width)
	if err != nil {
		return false
	}
	return d.writer.Send(buf) == nil
}

type bypassDeliverer struct {
	delegate Deliverer
}

func (d bypassDeliverer) deliver(msg protocol.Message) bool {
	return d.delegate.Deliver(byte(msg.Type), msg.Payload)
}
