//go:build !windows

package transport

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// DefaultPath is the daemon's default unix socket endpoint.
const DefaultPath = "/tmp/oc-daemon.sock"

// SelectPath picks the platform's endpoint path from the configured pair.
func SelectPath(socketPath, namedPipePath string) string {
	if socketPath != "" {
		return socketPath
	}
	return DefaultPath
}

type socket struct {
	fd int
}

// Open connects a stream socket to the daemon at path and switches it to
// non-blocking mode. The connection survives until Close; the kernel
// keeps the stream alive across the short-lived host process's requests.
func Open(path string) (Endpoint, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: socket: %v", ErrUnavailable, err)
	}
	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: connect %s: %v", ErrUnavailable, path, err)
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("%w: set nonblock: %v", ErrUnavailable, err)
	}
	return &socket{fd: fd}, nil
}

func (s *socket) Write(p []byte) (int, error) {
	return unix.Write(s.fd, p)
}

func (s *socket) Close() error {
	return unix.Close(s.fd)
}
