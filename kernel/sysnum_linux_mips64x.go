// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build linux && (mips64 || mips64le)

package kernel

// n64 ABI, as emulated by the MIPS64 fault-proof VM.
const (
	sysRead      = 5000
	sysWrite     = 5001
	sysExitGroup = 5205
)
