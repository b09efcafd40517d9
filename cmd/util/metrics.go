// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package util

import (
	"sort"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"github.com/ethereum/go-ethereum/metrics"
)

// Counters snapshots the registered counters whose name starts with prefix.
func Counters(prefix string) map[string]int64 {
	counts := make(map[string]int64)
	metrics.DefaultRegistry.Each(func(name string, metric interface{}) {
		if !strings.HasPrefix(name, prefix) {
			return
		}
		if counter, ok := metric.(metrics.Counter); ok {
			counts[name] = counter.Snapshot().Count()
		}
	})
	return counts
}

// LogCounters logs Counters(prefix) sorted by name. A VM run has no metrics server, so
// this is how its counters get out.
func LogCounters(prefix string) {
	counts := Counters(prefix)
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Info("Counter", "name", name, "count", counts[name])
	}
}
