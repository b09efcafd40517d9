// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build !(linux && (mips64 || mips64le || riscv64))

package main

func setupGarbageCollector() {}
