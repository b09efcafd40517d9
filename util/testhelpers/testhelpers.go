// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package testhelpers

import (
	"context"
	"log/slog"
	"math/rand"
	"regexp"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/log"

	"github.com/offchainlabs/nitro-preimage/util/colors"
)

// Fail a test should an error occur
func RequireImpl(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	if err != nil {
		t.Fatal(colors.Red, printables, err, colors.Clear)
	}
}

func FailImpl(t *testing.T, printables ...interface{}) {
	t.Helper()
	t.Fatal(colors.Red, printables, colors.Clear)
}

func RandomizeSlice(slice []byte) []byte {
	_, err := rand.Read(slice)
	if err != nil {
		panic(err)
	}
	return slice
}

func RandomSlice(size uint64) []byte {
	return RandomizeSlice(make([]byte, size))
}

func RandomHash() common.Hash {
	var hash common.Hash
	RandomizeSlice(hash[:])
	return hash
}

// LogHandler records every message it sees so tests can assert on them.
type LogHandler struct {
	mutex   *sync.Mutex
	t       *testing.T
	records *[]slog.Record
	inner   slog.Handler
}

func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *LogHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mutex.Lock()
	*h.records = append(*h.records, record.Clone())
	h.mutex.Unlock()
	return h.inner.Handle(ctx, record)
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.inner = h.inner.WithAttrs(attrs)
	return &c
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	c := *h
	c.inner = h.inner.WithGroup(name)
	return &c
}

func (h *LogHandler) WasLogged(pattern string) bool {
	re, err := regexp.Compile(pattern)
	RequireImpl(h.t, err)
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for _, record := range *h.records {
		if re.MatchString(record.Message) {
			return true
		}
	}
	return false
}

func InitTestLog(t *testing.T, level slog.Level) *LogHandler {
	handler := &LogHandler{
		mutex:   &sync.Mutex{},
		t:       t,
		records: &[]slog.Record{},
		inner:   log.NewTerminalHandler(testWriter{t}, false),
	}
	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(level)
	log.SetDefault(log.NewLogger(glogger))
	return handler
}

type testWriter struct {
	t *testing.T
}

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}
