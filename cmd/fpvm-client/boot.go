// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/offchainlabs/nitro-preimage/hint"
	"github.com/offchainlabs/nitro-preimage/preimage"
)

var errInvalidPreimage = errors.New("invalid preimage")

const outputRootPreimageSize = 4 * common.HashLength

type BootInfo struct {
	L1Head           common.Hash
	AgreedOutputRoot common.Hash
}

func LoadBootInfo(oracle preimage.Oracle, config *BootConfig) (*BootInfo, error) {
	var info BootInfo
	if err := oracle.GetExact(preimage.LocalIndexKey(config.L1HeadIndex), info.L1Head[:]); err != nil {
		return nil, fmt.Errorf("reading L1 head: %w", err)
	}
	if err := oracle.GetExact(preimage.LocalIndexKey(config.L2OutputRootIndex), info.AgreedOutputRoot[:]); err != nil {
		return nil, fmt.Errorf("reading agreed output root: %w", err)
	}
	return &info, nil
}

// OutputRoot is the version 0 output root preimage.
type OutputRoot struct {
	StateRoot                common.Hash
	MessagePasserStorageRoot common.Hash
	BlockHash                common.Hash
}

func FetchOutputRoot(oracle preimage.CommsClient, root common.Hash) (*OutputRoot, error) {
	var buf [outputRootPreimageSize]byte
	if err := hint.StartingL2Output.GetExactPreimage(oracle, root, preimage.Keccak256KeyType, buf[:]); err != nil {
		return nil, err
	}
	if got := crypto.Keccak256Hash(buf[:]); got != root {
		return nil, fmt.Errorf("%w: output root preimage hashes to %v, expected %v", errInvalidPreimage, got, root)
	}
	if version := common.BytesToHash(buf[:32]); version != (common.Hash{}) {
		return nil, fmt.Errorf("%w: unsupported output root version %v", errInvalidPreimage, version)
	}
	return &OutputRoot{
		StateRoot:                common.BytesToHash(buf[32:64]),
		MessagePasserStorageRoot: common.BytesToHash(buf[64:96]),
		BlockHash:                common.BytesToHash(buf[96:128]),
	}, nil
}

func FetchL2Header(oracle preimage.CommsClient, hash common.Hash) (*types.Header, error) {
	enc, err := NewPreimageDb(oracle, hint.L2BlockHeader).Get(hash[:])
	if err != nil {
		return nil, err
	}
	header := &types.Header{}
	if err := rlp.DecodeBytes(enc, header); err != nil {
		return nil, fmt.Errorf("%w: error parsing resolved block header: %v", errInvalidPreimage, err)
	}
	return header, nil
}

// StartingState is what the program learns about the agreed L2 block.
type StartingState struct {
	Boot          *BootInfo
	Output        *OutputRoot
	Header        *types.Header
	StateRootNode []byte
}

func LoadStartingState(oracle preimage.CommsClient, config *BootConfig) (*StartingState, error) {
	boot, err := LoadBootInfo(oracle, config)
	if err != nil {
		return nil, err
	}
	output, err := FetchOutputRoot(oracle, boot.AgreedOutputRoot)
	if err != nil {
		return nil, err
	}
	header, err := FetchL2Header(oracle, output.BlockHash)
	if err != nil {
		return nil, err
	}
	if header.Root != output.StateRoot {
		return nil, fmt.Errorf("%w: header state root %v does not match output root state root %v", errInvalidPreimage, header.Root, output.StateRoot)
	}
	node, err := NewPreimageDb(oracle, hint.L2StateNode).Get(header.Root[:])
	if err != nil {
		return nil, fmt.Errorf("reading state root node: %w", err)
	}
	return &StartingState{
		Boot:          boot,
		Output:        output,
		Header:        header,
		StateRootNode: node,
	}, nil
}
