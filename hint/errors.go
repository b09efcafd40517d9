// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package hint

import (
	"fmt"
)

// ParsingError reports malformed hint text. It always points at a local encoding bug,
// never at the host.
type ParsingError struct {
	Input  string
	Reason string
	Err    error
}

func (e *ParsingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid hint %q: %s: %v", e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid hint %q: %s", e.Input, e.Reason)
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

// Stage names the step of a hinted preimage lookup that failed.
type Stage uint8

const (
	StageHintWrite Stage = iota
	StagePreimageRequest
	StageResponse
)

func (s Stage) String() string {
	switch s {
	case StageHintWrite:
		return "hint write"
	case StagePreimageRequest:
		return "preimage request"
	case StageResponse:
		return "preimage response"
	default:
		return fmt.Sprintf("stage %d", uint8(s))
	}
}

// OracleProviderError is returned by GetPreimage and GetExactPreimage.
type OracleProviderError struct {
	Stage Stage
	Err   error
}

func (e *OracleProviderError) Error() string {
	return fmt.Sprintf("%v failed: %v", e.Stage, e.Err)
}

func (e *OracleProviderError) Unwrap() error {
	return e.Err
}
