// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build linux

package kernel

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// Linux talks to the kernel (or the VM emulating one) through raw syscalls.
type Linux struct{}

var _ Interface = Linux{}

func (Linux) Read(fd uintptr, p []byte) (int, error) {
	n, errno := ioSyscall(sysRead, fd, p)
	if errno != 0 {
		return 0, toError("read", fd, errno)
	}
	return int(n), nil
}

func (Linux) Write(fd uintptr, p []byte) (int, error) {
	n, errno := ioSyscall(sysWrite, fd, p)
	if errno != 0 {
		return 0, toError("write", fd, errno)
	}
	return int(n), nil
}

func (Linux) Exit(code int) {
	// #nosec G115
	_, _, _ = unix.RawSyscall(sysExitGroup, uintptr(code), 0, 0)
	panic("exit_group returned")
}

func ioSyscall(trap uintptr, fd uintptr, p []byte) (uintptr, unix.Errno) {
	var ptr unsafe.Pointer
	if len(p) > 0 {
		ptr = unsafe.Pointer(&p[0])
	}
	r1, _, errno := unix.Syscall(trap, fd, uintptr(ptr), uintptr(len(p)))
	return r1, errno
}

// Unwrap exposes the errno, so callers can match it with errors.Is.
func (e *Error) Unwrap() error {
	return unix.Errno(e.Errno)
}

func toError(op string, fd uintptr, errno unix.Errno) error {
	if errno == unix.EAGAIN || errno == unix.EWOULDBLOCK {
		return ErrWouldBlock
	}
	return &Error{Op: op, Fd: fd, Errno: uintptr(errno)}
}
