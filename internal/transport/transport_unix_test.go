//go:build !windows

package transport

import (
	"errors"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/danmuck/ocdaemon/internal/testutil/testlog"
)

func TestOpenWriteAgainstListener(t *testing.T) {
	testlog.Start(t)
	sock := filepath.Join(t.TempDir(), "oc-daemon.sock")
	ln, err := net.Listen("unix", sock)
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	received := make(chan []byte, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		buf, _ := io.ReadAll(conn)
		received <- buf
	}()

	ep, err := Open(sock)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := ep.Write([]byte{0x00, 0x00, 0x00, 0x00, 0x2C}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := ep.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case buf := <-received:
		if len(buf) != 5 || buf[4] != 0x2C {
			t.Fatalf("daemon side saw %x", buf)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("daemon side never received bytes")
	}
}

func TestOpenNoDaemon(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.sock"))
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestSelectPathPrefersConfigured(t *testing.T) {
	if got := SelectPath("/run/oc.sock", `\\.\pipe\other`); got != "/run/oc.sock" {
		t.Fatalf("got %q", got)
	}
	if got := SelectPath("", ""); got != DefaultPath {
		t.Fatalf("got %q", got)
	}
}
