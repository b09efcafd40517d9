// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package fpvm

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/offchainlabs/nitro-preimage/fpvm/fpvmtest"
	"github.com/offchainlabs/nitro-preimage/kernel"
	"github.com/offchainlabs/nitro-preimage/util/testhelpers"
)

func TestReadExactAssemblesPartialReads(t *testing.T) {
	k := fpvmtest.NewKernel()
	fd := uintptr(PreimageRead)
	k.QueueRead(fd,
		fpvmtest.Chunk(1, 2, 3),
		fpvmtest.Chunk(4, 5, 6, 7, 8),
		fpvmtest.WouldBlock(),
		fpvmtest.Chunk(9, 10),
	)
	ch := NewFileChannel(PreimageRead, k, &DefaultChannelConfig)
	buf := make([]byte, 10)
	Require(t, ch.ReadExact(buf))
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, buf); diff != "" {
		t.Errorf("unexpected bytes (-want +got):\n%s", diff)
	}
	if k.ReadCalls(fd) != 4 {
		t.Errorf("expected 4 read syscalls, got %d", k.ReadCalls(fd))
	}
}

func TestReadExactLeavesExtraBytesQueued(t *testing.T) {
	k := fpvmtest.NewKernel()
	k.QueueRead(uintptr(PreimageRead), fpvmtest.Chunk(1, 2, 3, 4, 5, 6))
	ch := NewFileChannel(PreimageRead, k, &DefaultChannelConfig)
	first := make([]byte, 4)
	Require(t, ch.ReadExact(first))
	second := make([]byte, 2)
	Require(t, ch.ReadExact(second))
	if !bytes.Equal(second, []byte{5, 6}) {
		Fail(t, "unexpected second read", second)
	}
}

func TestReadExactClosedMidway(t *testing.T) {
	k := fpvmtest.NewKernel()
	k.QueueRead(uintptr(PreimageRead), fpvmtest.Chunk(1, 2, 3, 4), fpvmtest.Closed())
	ch := NewFileChannel(PreimageRead, k, &DefaultChannelConfig)
	err := ch.ReadExact(make([]byte, 10))
	if !errors.Is(err, ErrChannelClosed) {
		Fail(t, "expected closed channel, got", err)
	}
}

func TestReadExactEmptyBuffer(t *testing.T) {
	k := fpvmtest.NewKernel()
	ch := NewFileChannel(PreimageRead, k, &DefaultChannelConfig)
	Require(t, ch.ReadExact(nil))
	if k.ReadCalls(uintptr(PreimageRead)) != 0 {
		Fail(t, "empty read should not reach the kernel")
	}
}

func TestReadExactPropagatesKernelError(t *testing.T) {
	k := fpvmtest.NewKernel()
	kerr := &kernel.Error{Op: "read", Fd: uintptr(HintRead), Errno: 9}
	k.QueueRead(uintptr(HintRead), fpvmtest.Chunk(1), fpvmtest.Failure(kerr), fpvmtest.Chunk(2))
	ch := NewFileChannel(HintRead, k, &DefaultChannelConfig)
	err := ch.ReadExact(make([]byte, 2))
	if err != kerr {
		Fail(t, "expected kernel error unchanged, got", err)
	}
	if !k.Pending(uintptr(HintRead)) {
		Fail(t, "channel must not keep reading after a fatal error")
	}
}

func TestWriteAllRetriesPartialWrites(t *testing.T) {
	k := fpvmtest.NewKernel()
	fd := uintptr(HintWrite)
	k.QueueWrite(fd,
		fpvmtest.WriteStep{Accept: 3},
		fpvmtest.WriteStep{Err: kernel.ErrWouldBlock},
		fpvmtest.WriteStep{Accept: 2},
	)
	ch := NewFileChannel(HintWrite, k, &DefaultChannelConfig)
	payload := []byte("abcdefgh")
	Require(t, ch.WriteAll(payload))
	if !bytes.Equal(k.Written(fd), payload) {
		Fail(t, "unexpected written bytes", k.Written(fd))
	}
	if k.WriteCalls(fd) != 3 {
		Fail(t, "expected 3 productive writes, got", k.WriteCalls(fd))
	}
}

func TestWriteAllZeroProgress(t *testing.T) {
	k := fpvmtest.NewKernel()
	k.QueueWrite(uintptr(HintWrite), fpvmtest.WriteStep{Accept: 1}, fpvmtest.WriteStep{Accept: 0})
	ch := NewFileChannel(HintWrite, k, &DefaultChannelConfig)
	err := ch.WriteAll([]byte{1, 2, 3})
	if !errors.Is(err, ErrShortWrite) {
		Fail(t, "expected short write, got", err)
	}
}

func TestBoundedRetryMode(t *testing.T) {
	k := fpvmtest.NewKernel()
	fd := uintptr(PreimageRead)
	k.QueueRead(fd, fpvmtest.WouldBlock(), fpvmtest.WouldBlock(), fpvmtest.Chunk(7), fpvmtest.WouldBlock(), fpvmtest.WouldBlock(), fpvmtest.WouldBlock())
	ch := NewFileChannel(PreimageRead, k, &ChannelConfig{MaxWouldBlockRetries: 2})
	err := ch.ReadExact(make([]byte, 2))
	if !errors.Is(err, ErrRetryBudgetExhausted) {
		Fail(t, "expected exhausted retry budget, got", err)
	}
	// progress resets the budget, so the failure is on the sixth call
	if k.ReadCalls(fd) != 6 {
		Fail(t, "unexpected read calls", k.ReadCalls(fd))
	}
}

func TestUnboundedRetryIsDefault(t *testing.T) {
	k := fpvmtest.NewKernel()
	fd := uintptr(PreimageRead)
	for i := 0; i < 1000; i++ {
		k.QueueRead(fd, fpvmtest.WouldBlock())
	}
	k.QueueRead(fd, fpvmtest.Chunk(42))
	ch := NewFileChannel(PreimageRead, k, &DefaultChannelConfig)
	buf := make([]byte, 1)
	Require(t, ch.ReadExact(buf))
	if buf[0] != 42 {
		Fail(t, "unexpected byte", buf[0])
	}
}

func TestChannelAsReader(t *testing.T) {
	k := fpvmtest.NewKernel()
	k.QueueRead(uintptr(PreimageRead), fpvmtest.Chunk('a', 'b'), fpvmtest.WouldBlock(), fpvmtest.Chunk('c'))
	pair := ClientPreimageChannel(&DefaultDescriptorTable, k, &DefaultChannelConfig)
	got, err := io.ReadAll(pair)
	Require(t, err)
	if string(got) != "abc" {
		Fail(t, "unexpected contents", string(got))
	}
	n, err := pair.Write([]byte("xyz"))
	Require(t, err)
	if n != 3 || string(k.Written(uintptr(PreimageWrite))) != "xyz" {
		Fail(t, "write went to the wrong descriptor")
	}
}

func TestDescriptorTableValidate(t *testing.T) {
	valid := DefaultDescriptorTable
	Require(t, valid.Validate())

	dup := DefaultDescriptorTable
	dup.PreimageRead = dup.HintRead
	if dup.Validate() == nil {
		Fail(t, "duplicate descriptors should be rejected")
	}

	std := DefaultDescriptorTable
	std.HintWrite = uint(StdOut)
	if std.Validate() == nil {
		Fail(t, "standard streams should be rejected")
	}
}

func TestFileDescriptorString(t *testing.T) {
	for fd, want := range map[FileDescriptor]string{
		StdIn:             "stdin",
		HintRead:          "hint-read",
		HintWrite:         "hint-write",
		PreimageRead:      "preimage-read",
		PreimageWrite:     "preimage-write",
		FileDescriptor(9): "fd-9",
	} {
		if fd.String() != want {
			t.Errorf("%d: got %q want %q", uintptr(fd), fd.String(), want)
		}
	}
}

func Require(t *testing.T, err error, printables ...interface{}) {
	t.Helper()
	testhelpers.RequireImpl(t, err, printables...)
}

func Fail(t *testing.T, printables ...interface{}) {
	t.Helper()
	testhelpers.FailImpl(t, printables...)
}
