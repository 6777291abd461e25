// Package ocdaemon is a client for the local observability daemon. It
// ships tracing spans and stats measurements over a unix domain socket
// (named pipe on Windows) using a length-delimited binary framing with a
// resync sentinel. Sends are synchronous, non-blocking at the transport,
// and bounded by a wall-clock budget; a send that misses its deadline
// reports failure and the daemon resyncs on the next frame.
package ocdaemon

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/ocdaemon/internal/config"
	"github.com/danmuck/ocdaemon/internal/logging"
	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/frame"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
	"github.com/danmuck/ocdaemon/internal/transport"
)

// Client is the process-wide daemon session. All sends share one mutex:
// the sequence number, frame assembly, and the transport write form a
// single critical section so frames hit the wire in sequence order.
type Client struct {
	mu         sync.Mutex
	seq        uint64
	pid        uint64
	hasThreads bool
	width      wire.FloatWidth
	deliver    deliverer
	endpoint   transport.Endpoint
	closed     bool
	log        zerolog.Logger
	now        func() time.Time
}

var (
	initMu sync.Mutex
	active *Client
)

// Init opens the daemon session, performs the REQ_INIT handshake, and
// returns the process-wide client. Init is idempotent: once a session
// exists, later calls return it and ignore their options, even after
// Shutdown (closed is terminal). A failed Init leaves no session behind,
// so the next call retries from scratch.
func Init(opts ...Option) (*Client, error) {
	initMu.Lock()
	defer initMu.Unlock()

	if active != nil {
		return active, nil
	}

	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}

	cfg, err := config.Load(s.configFile)
	if err != nil {
		return nil, err
	}
	s.merge(cfg)

	c := &Client{
		pid:        uint64(os.Getpid()),
		hasThreads: threadIDAvailable(),
		width:      wire.ProbeFloatWidth(),
		log:        logging.ConfigureLibrary(),
		now:        time.Now,
	}

	if s.deliverer != nil {
		c.deliver = bypassDeliverer{delegate: s.deliverer}
	} else {
		ep, err := transport.Open(transport.SelectPath(s.socketPath, s.namedPipePath))
		if err != nil {
			return nil, err
		}
		c.endpoint = ep
		c.deliver = &frameDeliverer{
			writer: frame.NewWriter(ep, s.maxSendTime),
			width:  c.width,
		}
	}

	if !c.send(protocol.MsgReqInit, initPayload()) {
		if c.endpoint != nil {
			c.endpoint.Close()
		}
		return nil, fmt.Errorf("ocdaemon: init handshake send failed")
	}

	active = c
	return c, nil
}

// initPayload is the REQ_INIT handshake body: the protocol version byte
// followed by the host runtime version and an extended runtime string.
func initPayload() []byte {
	buf := []byte{protocol.ProtocolVersion}
	buf = wire.AppendString(buf, runtime.Version())
	extended := fmt.Sprintf("%s %s/%s", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	return wire.AppendString(buf, extended)
}

// Shutdown sends REQ_SHUTDOWN best-effort, closes the transport, and
// marks the session terminal. Safe to call more than once; operations
// after Shutdown report failure.
func (c *Client) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.sendLocked(protocol.MsgReqShutdown, nil)
	c.closed = true
	if c.endpoint != nil {
		c.endpoint.Close()
	}
}

// send assembles and delivers one frame under the session lock. The
// sequence number is incremented before the send, so the first frame of
// a session carries sequence 1.
func (c *Client) send(t protocol.MessageType, payload []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sendLocked(t, payload)
}

func (c *Client) sendLocked(t protocol.MessageType, payload []byte) bool {
	if c.closed {
		return false
	}
	c.seq++
	msg := protocol.Message{
		Type:      t,
		Sequence:  c.seq,
		ProcessID: c.pid,
		StartTime: wallclock(c.now()),
		Payload:   payload,
	}
	if c.hasThreads {
		msg.ThreadID = currentThreadID()
	}
	if !c.deliver.deliver(msg) {
		c.log.Debug().
			Str("type", t.String()).
			Uint64("seq", msg.Sequence).
			Int("payload_bytes", len(payload)).
			Msg("frame send failed")
		return false
	}
	return true
}

// wallclock converts t to seconds with fractional microseconds, the
// frame header's start-time representation.
func wallclock(t time.Time) float64 {
	return float64(t.UnixMicro()) / 1e6
}
