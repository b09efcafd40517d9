// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package preimage

import (
	"encoding/binary"
	"fmt"
	"math"
	"slices"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
)

var (
	hintsWrittenCounter     = metrics.NewRegisteredCounterForced("preimage/hints/written", nil)
	preimageRequestsCounter = metrics.NewRegisteredCounterForced("preimage/oracle/requests", nil)
	preimageBytesCounter    = metrics.NewRegisteredCounterForced("preimage/oracle/bytes", nil)
)

// lengthPrefixSize is the width of the big-endian length in front of every frame.
const lengthPrefixSize = 8

// readChunkSize bounds how far Get allocates ahead of the bytes it has read.
const readChunkSize = 1 << 20

// Channel is a blocking byte stream with full-buffer semantics, see fpvm.ChannelPair.
type Channel interface {
	ReadExact(p []byte) error
	WriteAll(p []byte) error
}

type Oracle interface {
	// Get the full preimage of a given key.
	Get(key Key) ([]byte, error)
	// GetExact fills buf with the preimage of key, which must be exactly len(buf) bytes.
	GetExact(key Key, buf []byte) error
}

// Hinter tells the host which data to prepare before it is requested.
type Hinter interface {
	WriteHint(hint string) error
}

// CommsClient is everything a fault-proof program needs from its host.
type CommsClient interface {
	Oracle
	Hinter
}

// OracleClient implements the Oracle by writing the preimage key to the given stream,
// and reading back a length-prefixed value.
type OracleClient struct {
	ch      Channel
	maxSize uint64
}

var _ Oracle = (*OracleClient)(nil)

func NewOracleClient(ch Channel, config *ClientConfig) *OracleClient {
	return &OracleClient{ch: ch, maxSize: config.MaxPreimageSize}
}

func (o *OracleClient) Get(key Key) ([]byte, error) {
	length, err := o.request(key)
	if err != nil {
		return nil, err
	}
	// Grow with the data actually received, so a forged length cannot allocate up front.
	payload := make([]byte, 0, min(length, readChunkSize))
	for uint64(len(payload)) < length {
		start := len(payload)
		n := int(min(length-uint64(start), readChunkSize))
		payload = slices.Grow(payload, n)[:start+n]
		if err := o.ch.ReadExact(payload[start:]); err != nil {
			return nil, fmt.Errorf("failed to read preimage payload (%d of %d bytes) of key %v: %w", start, length, key, err)
		}
	}
	preimageBytesCounter.Inc(int64(length))
	log.Trace("Resolved preimage", "key", key, "length", length)
	return payload, nil
}

func (o *OracleClient) GetExact(key Key, buf []byte) error {
	length, err := o.request(key)
	if err != nil {
		return err
	}
	if length != uint64(len(buf)) {
		return &LengthMismatchError{Key: key, Expected: uint64(len(buf)), Declared: length}
	}
	if err := o.ch.ReadExact(buf); err != nil {
		return fmt.Errorf("failed to read preimage payload (length %d) of key %v: %w", length, key, err)
	}
	preimageBytesCounter.Inc(int64(length))
	log.Trace("Resolved preimage", "key", key, "length", length)
	return nil
}

// request writes the key and returns the length the host declares for it.
func (o *OracleClient) request(key Key) (uint64, error) {
	preimageRequestsCounter.Inc(1)
	req := key.Bytes()
	if err := o.ch.WriteAll(req[:]); err != nil {
		return 0, fmt.Errorf("failed to write key %v to preimage oracle: %w", key, err)
	}
	var prefix [lengthPrefixSize]byte
	if err := o.ch.ReadExact(prefix[:]); err != nil {
		return 0, fmt.Errorf("failed to read preimage length of key %v from preimage oracle: %w", key, err)
	}
	length := binary.BigEndian.Uint64(prefix[:])
	limit := uint64(math.MaxInt)
	if o.maxSize != 0 && o.maxSize < limit {
		limit = o.maxSize
	}
	if length > limit {
		return 0, &PreimageTooLargeError{Key: key, Limit: limit, Declared: length}
	}
	return length, nil
}

// HintWriter writes length-prefixed hints and waits for the host to acknowledge each one.
type HintWriter struct {
	ch Channel
}

var _ Hinter = (*HintWriter)(nil)

func NewHintWriter(ch Channel) *HintWriter {
	return &HintWriter{ch: ch}
}

func (hw *HintWriter) WriteHint(hint string) error {
	frame := make([]byte, lengthPrefixSize, lengthPrefixSize+len(hint))
	binary.BigEndian.PutUint64(frame, uint64(len(hint)))
	frame = append(frame, hint...)
	if err := hw.ch.WriteAll(frame); err != nil {
		return fmt.Errorf("failed to write preimage hint: %w", err)
	}
	var ack [1]byte
	if err := hw.ch.ReadExact(ack[:]); err != nil {
		return fmt.Errorf("failed to read preimage hint ack: %w", err)
	}
	hintsWrittenCounter.Inc(1)
	log.Trace("Wrote hint", "hint", hint)
	return nil
}
