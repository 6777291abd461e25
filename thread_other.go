//go:build !linux

package ocdaemon

func threadIDAvailable() bool { return false }

func currentThreadID() uint64 { return 0 }
