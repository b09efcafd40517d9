// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

//go:build !linux

package kernel

type Linux struct{}

var _ Interface = Linux{}

func (Linux) Read(fd uintptr, p []byte) (int, error) {
	panic("not on fpvm platform")
}

func (Linux) Write(fd uintptr, p []byte) (int, error) {
	panic("not on fpvm platform")
}

func (Linux) Exit(code int) {
	panic("not on fpvm platform")
}
