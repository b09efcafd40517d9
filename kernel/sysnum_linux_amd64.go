// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build linux && amd64

package kernel

const (
	sysRead      = 0
	sysWrite     = 1
	sysExitGroup = 231
)
