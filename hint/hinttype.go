// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package hint

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/offchainlabs/nitro-preimage/preimage"
)

// HintType is the hint vocabulary of the combined L1/L2 program.
type HintType uint8

const (
	// L1BlockHeader asks for the header of an L1 block.
	L1BlockHeader HintType = iota
	// L1Transactions asks for the transactions of an L1 block.
	L1Transactions
	// L1Receipts asks for the receipts of an L1 block.
	L1Receipts
	// L1Blob asks for a blob from the L1 beacon chain.
	L1Blob
	// L1Precompile asks for the result of a precompile call on L1.
	L1Precompile
	// L2BlockHeader asks for the header of an L2 block.
	L2BlockHeader
	// L2Transactions asks for the transactions of an L2 block.
	L2Transactions
	// L2Code asks for the code of an L2 contract.
	L2Code
	// StartingL2Output asks for the preimage of the starting L2 output root.
	StartingL2Output
	// L2StateNode asks for a node of the L2 state trie.
	L2StateNode
	// L2AccountProof asks for the proof on the path to an account in the L2 state trie.
	L2AccountProof
	// L2AccountStorageProof asks for the proof on the path to a storage slot of an
	// account in the L2 state trie.
	L2AccountStorageProof
	// L2PayloadWitness asks for all code, state and keys touched by executing a payload.
	L2PayloadWitness
)

var hintTypeTags = [...]string{
	L1BlockHeader:         "l1-block-header",
	L1Transactions:        "l1-transactions",
	L1Receipts:            "l1-receipts",
	L1Blob:                "l1-blob",
	L1Precompile:          "l1-precompile",
	L2BlockHeader:         "l2-block-header",
	L2Transactions:        "l2-transactions",
	L2Code:                "l2-code",
	StartingL2Output:      "starting-l2-output",
	L2StateNode:           "l2-state-node",
	L2AccountProof:        "l2-account-proof",
	L2AccountStorageProof: "l2-account-storage-proof",
	L2PayloadWitness:      "l2-payload-witness",
}

var hintTypesByTag = func() map[string]HintType {
	m := make(map[string]HintType, len(hintTypeTags))
	for i, tag := range hintTypeTags {
		m[tag] = HintType(i)
	}
	return m
}()

// AllHintTypes lists every variant in declaration order.
func AllHintTypes() []HintType {
	all := make([]HintType, len(hintTypeTags))
	for i := range hintTypeTags {
		all[i] = HintType(i)
	}
	return all
}

func (t HintType) String() string {
	if int(t) < len(hintTypeTags) {
		return hintTypeTags[t]
	}
	return fmt.Sprintf("HintType(%d)", uint8(t))
}

// ParseHintType matches s exactly against the tag table.
func ParseHintType(s string) (HintType, error) {
	if t, ok := hintTypesByTag[s]; ok {
		return t, nil
	}
	return 0, &ParsingError{Input: s, Reason: "unknown hint type"}
}

func (t HintType) MarshalText() ([]byte, error) {
	if int(t) >= len(hintTypeTags) {
		return nil, fmt.Errorf("cannot marshal %v", t)
	}
	return []byte(t.String()), nil
}

func (t *HintType) UnmarshalText(text []byte) error {
	parsed, err := ParseHintType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// EncodeWith builds the wire form of a hint of this type whose payload is the
// concatenation of data.
func (t HintType) EncodeWith(data ...[]byte) string {
	return t.String() + " " + hex.EncodeToString(bytes.Join(data, nil))
}

// GetPreimage hints digest to the host and then fetches the preimage keyed by it.
func (t HintType) GetPreimage(oracle preimage.CommsClient, digest common.Hash, keyType preimage.KeyType) ([]byte, error) {
	if err := oracle.WriteHint(t.EncodeWith(digest[:])); err != nil {
		return nil, &OracleProviderError{Stage: StageHintWrite, Err: err}
	}
	value, err := oracle.Get(preimage.NewKey(digest, keyType))
	if err != nil {
		return nil, &OracleProviderError{Stage: requestStage(err), Err: err}
	}
	return value, nil
}

// GetExactPreimage is GetPreimage into a caller provided buffer of the committed size.
func (t HintType) GetExactPreimage(oracle preimage.CommsClient, digest common.Hash, keyType preimage.KeyType, buf []byte) error {
	if err := oracle.WriteHint(t.EncodeWith(digest[:])); err != nil {
		return &OracleProviderError{Stage: StageHintWrite, Err: err}
	}
	if err := oracle.GetExact(preimage.NewKey(digest, keyType), buf); err != nil {
		return &OracleProviderError{Stage: requestStage(err), Err: err}
	}
	return nil
}

func requestStage(err error) Stage {
	if errors.Is(err, preimage.ErrProtocolViolation) {
		return StageResponse
	}
	return StagePreimageRequest
}
