// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build linux && riscv64

package kernel

const (
	sysRead      = 63
	sysWrite     = 64
	sysExitGroup = 94
)
