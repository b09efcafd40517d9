// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package preimage

import (
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// KeyType is the discriminant telling the host how a key's digest commits to its preimage.
type KeyType uint8

// These values must be kept in sync with the host.
const (
	// The zero key type is illegal to use, ensuring all keys are non-zero.
	_ KeyType = iota
	LocalKeyType
	Keccak256KeyType
	GlobalGenericKeyType
	Sha256KeyType
	BlobKeyType
	PrecompileKeyType
)

func (t KeyType) String() string {
	switch t {
	case LocalKeyType:
		return "local"
	case Keccak256KeyType:
		return "keccak256"
	case GlobalGenericKeyType:
		return "global-generic"
	case Sha256KeyType:
		return "sha256"
	case BlobKeyType:
		return "blob"
	case PrecompileKeyType:
		return "precompile"
	default:
		return fmt.Sprintf("unknown-%d", uint8(t))
	}
}

func ParseKeyType(s string) (KeyType, error) {
	for t := LocalKeyType; t <= PrecompileKeyType; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown preimage key type %q", s)
}

// KeySize is the size of a key on the preimage channel: the digest followed by the type.
const KeySize = common.HashLength + 1

// Key addresses one preimage the host must serve.
type Key struct {
	Digest common.Hash
	Type   KeyType
}

func NewKey(digest common.Hash, keyType KeyType) Key {
	return Key{Digest: digest, Type: keyType}
}

// LocalIndexKey is a key local to the program, indexing a special program input.
func LocalIndexKey(index uint64) Key {
	var digest common.Hash
	binary.BigEndian.PutUint64(digest[common.HashLength-8:], index)
	return Key{Digest: digest, Type: LocalKeyType}
}

// Keccak256Key wraps a keccak256 hash to use it as a typed preimage key.
func Keccak256Key(hash common.Hash) Key {
	return Key{Digest: hash, Type: Keccak256KeyType}
}

func (k Key) Bytes() [KeySize]byte {
	var out [KeySize]byte
	copy(out[:], k.Digest[:])
	out[common.HashLength] = byte(k.Type)
	return out
}

func (k Key) String() string {
	return fmt.Sprintf("%v:%v", k.Type, k.Digest)
}
