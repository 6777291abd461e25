//go:build windows

package transport

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// DefaultPath is the daemon's default named pipe endpoint.
const DefaultPath = `\\.\pipe\oc-daemon`

// SelectPath picks the platform's endpoint path from the configured pair.
func SelectPath(socketPath, namedPipePath string) string {
	if namedPipePath != "" {
		return namedPipePath
	}
	return DefaultPath
}

type pipe struct {
	handle windows.Handle
}

// Open opens the daemon's named pipe for writing. Named pipe writes on
// this path complete or fail quickly; the upstream deadline still bounds
// the send.
func Open(path string) (Endpoint, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, fmt.Errorf("%w: pipe name %s: %v", ErrUnavailable, path, err)
	}
	handle, err := windows.CreateFile(
		name,
		windows.GENERIC_WRITE,
		0,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	return &pipe{handle: handle}, nil
}

func (p *pipe) Write(b []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(p.handle, b, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func (p *pipe) Close() error {
	return windows.CloseHandle(p.handle)
}
