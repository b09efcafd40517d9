// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package preimage

import (
	"bytes"

	"github.com/ethereum/go-ethereum/metrics"

	"github.com/offchainlabs/nitro-preimage/util/containers"
)

var (
	cacheHitCounter  = metrics.NewRegisteredCounterForced("preimage/cache/hit", nil)
	cacheMissCounter = metrics.NewRegisteredCounterForced("preimage/cache/miss", nil)
)

// CachingOracle keeps recently fetched preimages so repeated lookups skip the host.
// Hints are always forwarded.
type CachingOracle struct {
	inner CommsClient
	cache *containers.LruCache[Key, []byte]
}

var _ CommsClient = (*CachingOracle)(nil)

func NewCachingOracle(inner CommsClient, size int) *CachingOracle {
	return &CachingOracle{
		inner: inner,
		cache: containers.NewLruCache[Key, []byte](size),
	}
}

func (c *CachingOracle) WriteHint(hint string) error {
	return c.inner.WriteHint(hint)
}

func (c *CachingOracle) Get(key Key) ([]byte, error) {
	if cached, ok := c.cache.Get(key); ok {
		cacheHitCounter.Inc(1)
		return bytes.Clone(cached), nil
	}
	cacheMissCounter.Inc(1)
	value, err := c.inner.Get(key)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, bytes.Clone(value))
	return value, nil
}

func (c *CachingOracle) GetExact(key Key, buf []byte) error {
	if cached, ok := c.cache.Get(key); ok {
		cacheHitCounter.Inc(1)
		if len(cached) != len(buf) {
			return &LengthMismatchError{Key: key, Expected: uint64(len(buf)), Declared: uint64(len(cached))}
		}
		copy(buf, cached)
		return nil
	}
	cacheMissCounter.Inc(1)
	if err := c.inner.GetExact(key, buf); err != nil {
		return err
	}
	c.cache.Add(key, bytes.Clone(buf))
	return nil
}

func (c *CachingOracle) Len() int {
	return c.cache.Len()
}
