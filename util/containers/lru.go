// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package containers

import (
	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Not thread safe!
// A zero or negative size means it has no capacity instead of unlimited.
type LruCache[K comparable, V any] struct {
	inner *simplelru.LRU[K, V]
}

func NewLruCache[K comparable, V any](size int) *LruCache[K, V] {
	var inner *simplelru.LRU[K, V]
	if size > 0 {
		// Can't fail because size > 0
		inner, _ = simplelru.NewLRU[K, V](size, nil)
	}
	return &LruCache[K, V]{inner: inner}
}

func (c *LruCache[K, V]) Add(key K, value V) {
	if c.inner == nil {
		return
	}
	c.inner.Add(key, value)
}

func (c *LruCache[K, V]) Get(key K) (V, bool) {
	if c.inner == nil {
		var empty V
		return empty, false
	}
	return c.inner.Get(key)
}

func (c *LruCache[K, V]) Len() int {
	if c.inner == nil {
		return 0
	}
	return c.inner.Len()
}
