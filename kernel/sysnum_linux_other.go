// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build linux && !mips64 && !mips64le && !riscv64 && !arm64 && !amd64

package kernel

import "golang.org/x/sys/unix"

const (
	sysRead      = unix.SYS_READ
	sysWrite     = unix.SYS_WRITE
	sysExitGroup = unix.SYS_EXIT_GROUP
)
