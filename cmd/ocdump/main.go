// ocdump decodes a stream of daemon frames and prints one log event per
// frame. It either listens on a unix socket (standing in for the daemon,
// useful when pointing a client at it) or replays a captured byte stream
// from a file.
package main

import (
	"errors"
	"io"
	"net"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/danmuck/ocdaemon/internal/logging"
	"github.com/danmuck/ocdaemon/internal/protocol"
	"github.com/danmuck/ocdaemon/internal/protocol/frame"
	"github.com/danmuck/ocdaemon/internal/protocol/wire"
)

func main() {
	var (
		listen = pflag.String("listen", "", "unix socket path to accept client connections on")
		file   = pflag.String("file", "", "captured frame stream to replay")
		f32    = pflag.Bool("float32", false, "decode floats as padded 32-bit values")
		raw    = pflag.Bool("raw", false, "include hex payloads in output")
	)
	pflag.Parse()

	log := logging.ConfigureTool()

	width := wire.Float64Width
	if *f32 {
		width = wire.Float32Width
	}

	switch {
	case *listen != "":
		if err := serve(log, *listen, width, *raw); err != nil {
			log.Fatal().Err(err).Msg("listen failed")
		}
	case *file != "":
		f, err := os.Open(*file)
		if err != nil {
			log.Fatal().Err(err).Msg("open failed")
		}
		defer f.Close()
		dump(log, f, width, *raw)
	default:
		pflag.Usage()
		os.Exit(2)
	}
}

func serve(log zerolog.Logger, path string, width wire.FloatWidth, raw bool) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	ln, err := net.Listen("unix", path)
	if err != nil {
		return err
	}
	defer ln.Close()
	log.Info().Str("path", path).Msg("listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		log.Info().Msg("client connected")
		dump(log, conn, width, raw)
		conn.Close()
		log.Info().Msg("client disconnected")
	}
}

// dump reads frames until EOF, resyncing across garbage, and logs each
// decoded message.
func dump(log zerolog.Logger, r io.Reader, width wire.FloatWidth, raw bool) {
	sc := frame.NewScanner(r, width)
	for {
		msg, err := sc.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Warn().Err(err).Msg("stream ended mid-frame")
			}
			return
		}
		ev := log.Info().
			Str("type", msg.Type.String()).
			Uint64("seq", msg.Sequence).
			Uint64("pid", msg.ProcessID).
			Uint64("tid", msg.ThreadID).
			Float64("start", msg.StartTime).
			Int("payload_bytes", len(msg.Payload))
		if raw {
			ev = ev.Hex("payload", msg.Payload)
		}
		switch msg.Type {
		case protocol.MsgTraceExport:
			ev = ev.RawJSON("spans", msg.Payload)
		case protocol.MsgReqInit:
			if len(msg.Payload) > 0 {
				ev = ev.Uint8("protocol_version", msg.Payload[0])
				if v, n, err := wire.String(msg.Payload[1:]); err == nil {
					ev = ev.Str("runtime", v)
					if ext, _, err := wire.String(msg.Payload[1+n:]); err == nil {
						ev = ev.Str("runtime_extended", ext)
					}
				}
			}
		}
		ev.Msg("frame")
	}
}
