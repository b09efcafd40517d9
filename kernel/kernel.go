// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package kernel is the syscall surface a fault-proof program has inside the VM:
// read, write and exit on raw file descriptors. It does not retry anything.
package kernel

import (
	"errors"
	"fmt"
)

// ErrWouldBlock is returned when a descriptor has no data or space yet.
var ErrWouldBlock = errors.New("resource temporarily unavailable")

type Interface interface {
	// Read issues a single read syscall and returns how many bytes were read.
	Read(fd uintptr, p []byte) (int, error)
	// Write issues a single write syscall and returns how many bytes were written.
	Write(fd uintptr, p []byte) (int, error)
	// Exit terminates the program with the given code. It never returns.
	Exit(code int)
}

// Error is a fatal syscall failure.
type Error struct {
	Op    string
	Fd    uintptr
	Errno uintptr
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s fd %d: errno %d", e.Op, e.Fd, e.Errno)
}
