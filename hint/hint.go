// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package hint encodes and parses the hints a fault-proof program sends its host ahead
// of preimage requests. A hint is "<type> <hex data>".
package hint

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/offchainlabs/nitro-preimage/preimage"
)

// Kind is a closed vocabulary of hint types. Programs with different needs plug in
// their own enumerations.
type Kind interface {
	comparable
	fmt.Stringer
}

type Hint[HT Kind] struct {
	Type HT
	Data []byte
}

// New concatenates data into the payload of a hint.
func New[HT Kind](hintType HT, data ...[]byte) Hint[HT] {
	return Hint[HT]{Type: hintType, Data: bytes.Join(data, nil)}
}

// Split returns the components of the hint.
func (h Hint[HT]) Split() (HT, []byte) {
	return h.Type, h.Data
}

// String returns the wire form of the hint.
func (h Hint[HT]) String() string {
	return h.Type.String() + " " + hex.EncodeToString(h.Data)
}

// Write sends the hint to the host.
func (h Hint[HT]) Write(hinter preimage.Hinter) error {
	return hinter.WriteHint(h.String())
}

// Parse is the inverse of Hint.String. The input must be exactly two tokens separated
// by a single space, the second one even length hex.
func Parse[HT Kind](s string, parseType func(string) (HT, error)) (Hint[HT], error) {
	parts := strings.Split(s, " ")
	if len(parts) != 2 {
		return Hint[HT]{}, &ParsingError{Input: s, Reason: fmt.Sprintf("expected 2 tokens, got %d", len(parts))}
	}
	hintType, err := parseType(parts[0])
	var typeErr *ParsingError
	if errors.As(err, &typeErr) {
		return Hint[HT]{}, &ParsingError{Input: s, Reason: fmt.Sprintf("%s %q", typeErr.Reason, typeErr.Input), Err: typeErr.Err}
	}
	if err != nil {
		return Hint[HT]{}, &ParsingError{Input: s, Reason: "bad hint type", Err: err}
	}
	data, err := hex.DecodeString(parts[1])
	if err != nil {
		return Hint[HT]{}, &ParsingError{Input: s, Reason: "bad hint data", Err: err}
	}
	return Hint[HT]{Type: hintType, Data: data}, nil
}

// ParseHint parses a hint of the built-in HintType vocabulary.
func ParseHint(s string) (Hint[HintType], error) {
	return Parse(s, ParseHintType)
}
