// Copyright 2022-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package testhelpers

import (
	"encoding/binary"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PseudoRandomDataSource yields the same sequence of hashes on every run for a given
// salt, so scripted host responses are reproducible.
type PseudoRandomDataSource struct {
	salt  common.Hash
	index uint64
}

// The testing.T parameter keeps it out of non-test code.
func NewPseudoRandomDataSource(_ *testing.T, saltParam int) *PseudoRandomDataSource {
	return &PseudoRandomDataSource{
		salt: crypto.Keccak256Hash([]byte("pseudorandom"), binary.BigEndian.AppendUint64(nil, uint64(saltParam))),
	}
}

func (r *PseudoRandomDataSource) GetHash() common.Hash {
	r.index++
	return crypto.Keccak256Hash(r.salt[:], binary.BigEndian.AppendUint64(nil, r.index))
}

// GetData returns size bytes, e.g. for a fake preimage.
func (r *PseudoRandomDataSource) GetData(size int) []byte {
	data := make([]byte, 0, size+common.HashLength)
	for len(data) < size {
		data = append(data, r.GetHash().Bytes()...)
	}
	return data[:size]
}
