//go:build linux

package ocdaemon

import "golang.org/x/sys/unix"

func threadIDAvailable() bool { return true }

// currentThreadID reports the kernel thread the calling goroutine is
// scheduled on at this instant. Goroutines migrate between threads, so
// the value identifies the sending thread only for the duration of the
// frame write it labels.
func currentThreadID() uint64 { return uint64(unix.Gettid()) }
