// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package preimage

import (
	"errors"
	"fmt"
)

// ErrProtocolViolation marks responses that break the preimage protocol contract, as
// opposed to a broken channel.
var ErrProtocolViolation = errors.New("preimage protocol violation")

// LengthMismatchError is returned by GetExact when the host declares a length other
// than the size of the caller's buffer.
type LengthMismatchError struct {
	Key      Key
	Expected uint64
	Declared uint64
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%v: host declared %d bytes for key %v, expected %d", ErrProtocolViolation, e.Declared, e.Key, e.Expected)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrProtocolViolation
}

// PreimageTooLargeError is returned when the declared length exceeds the configured limit.
type PreimageTooLargeError struct {
	Key      Key
	Limit    uint64
	Declared uint64
}

func (e *PreimageTooLargeError) Error() string {
	return fmt.Sprintf("%v: host declared %d bytes for key %v, limit is %d", ErrProtocolViolation, e.Declared, e.Key, e.Limit)
}

func (e *PreimageTooLargeError) Is(target error) bool {
	return target == ErrProtocolViolation
}
