// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"

	"github.com/offchainlabs/nitro-preimage/hint"
	"github.com/offchainlabs/nitro-preimage/preimage"
)

// PreimageDb is a read-only key-value view over keccak256 preimages. Every lookup
// first hints the host with hintType.
type PreimageDb struct {
	oracle   preimage.CommsClient
	hintType hint.HintType
}

var _ ethdb.KeyValueReader = PreimageDb{}

func NewPreimageDb(oracle preimage.CommsClient, hintType hint.HintType) PreimageDb {
	return PreimageDb{oracle: oracle, hintType: hintType}
}

func (db PreimageDb) Has(key []byte) (bool, error) {
	if len(key) != 32 {
		return false, nil
	}
	return false, errors.New("preimage db doesn't support Has")
}

func (db PreimageDb) Get(key []byte) ([]byte, error) {
	if len(key) != 32 {
		return nil, errors.New("preimage db keys must be 32 bytes long")
	}
	hash := common.BytesToHash(key)
	data, err := db.hintType.GetPreimage(db.oracle, hash, preimage.Keccak256KeyType)
	if err != nil {
		return nil, err
	}
	if got := crypto.Keccak256Hash(data); got != hash {
		return nil, fmt.Errorf("%w: preimage of %v hashes to %v", errInvalidPreimage, hash, got)
	}
	return data, nil
}
