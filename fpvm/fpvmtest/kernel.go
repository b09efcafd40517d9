// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// Package fpvmtest provides a scripted kernel for exercising channels and the
// preimage protocol without a VM or a host process.
package fpvmtest

import (
	"bytes"
	"fmt"

	"github.com/offchainlabs/nitro-preimage/kernel"
)

// ReadStep is one scripted outcome of a read syscall.
type ReadStep struct {
	Data   []byte
	Err    error
	Closed bool
}

func Chunk(data ...byte) ReadStep {
	return ReadStep{Data: data}
}

func Bytes(data []byte) ReadStep {
	return ReadStep{Data: data}
}

func WouldBlock() ReadStep {
	return ReadStep{Err: kernel.ErrWouldBlock}
}

func Closed() ReadStep {
	return ReadStep{Closed: true}
}

func Failure(err error) ReadStep {
	return ReadStep{Err: err}
}

// WriteStep is one scripted outcome of a write syscall. Accept caps how many bytes
// the call takes; a negative Accept takes everything.
type WriteStep struct {
	Accept int
	Err    error
}

// ExitPanic is what Exit panics with, since a real exit never returns.
type ExitPanic struct {
	Code int
}

func (e ExitPanic) String() string {
	return fmt.Sprintf("exit(%d)", e.Code)
}

// Kernel is not thread safe. Reads on a descriptor with nothing scripted report
// end of stream.
type Kernel struct {
	reads      map[uintptr][]ReadStep
	writeSteps map[uintptr][]WriteStep
	writes     map[uintptr][][]byte
	readCalls  map[uintptr]int
	events     []string
}

var _ kernel.Interface = (*Kernel)(nil)

func NewKernel() *Kernel {
	return &Kernel{
		reads:      make(map[uintptr][]ReadStep),
		writeSteps: make(map[uintptr][]WriteStep),
		writes:     make(map[uintptr][][]byte),
		readCalls:  make(map[uintptr]int),
	}
}

func (k *Kernel) QueueRead(fd uintptr, steps ...ReadStep) {
	k.reads[fd] = append(k.reads[fd], steps...)
}

func (k *Kernel) QueueWrite(fd uintptr, steps ...WriteStep) {
	k.writeSteps[fd] = append(k.writeSteps[fd], steps...)
}

func (k *Kernel) Read(fd uintptr, p []byte) (int, error) {
	k.readCalls[fd]++
	queue := k.reads[fd]
	if len(queue) == 0 {
		return 0, nil
	}
	step := queue[0]
	k.reads[fd] = queue[1:]
	if step.Err != nil {
		return 0, step.Err
	}
	if step.Closed {
		return 0, nil
	}
	n := copy(p, step.Data)
	if n < len(step.Data) {
		rest := ReadStep{Data: step.Data[n:]}
		k.reads[fd] = append([]ReadStep{rest}, k.reads[fd]...)
	}
	k.events = append(k.events, fmt.Sprintf("read %d", fd))
	return n, nil
}

func (k *Kernel) Write(fd uintptr, p []byte) (int, error) {
	n := len(p)
	if queue := k.writeSteps[fd]; len(queue) > 0 {
		step := queue[0]
		k.writeSteps[fd] = queue[1:]
		if step.Err != nil {
			return 0, step.Err
		}
		if step.Accept >= 0 && step.Accept < n {
			n = step.Accept
		}
	}
	if n > 0 {
		k.writes[fd] = append(k.writes[fd], bytes.Clone(p[:n]))
		k.events = append(k.events, fmt.Sprintf("write %d", fd))
	}
	return n, nil
}

func (k *Kernel) Exit(code int) {
	panic(ExitPanic{Code: code})
}

// Written returns everything written to fd, in order.
func (k *Kernel) Written(fd uintptr) []byte {
	return bytes.Join(k.writes[fd], nil)
}

// WriteCalls counts the write syscalls on fd that moved at least one byte.
func (k *Kernel) WriteCalls(fd uintptr) int {
	return len(k.writes[fd])
}

func (k *Kernel) ReadCalls(fd uintptr) int {
	return k.readCalls[fd]
}

// Pending reports whether scripted read data on fd has not been consumed.
func (k *Kernel) Pending(fd uintptr) bool {
	return len(k.reads[fd]) > 0
}

// Events lists successful reads and writes as "read <fd>" / "write <fd>", in order.
func (k *Kernel) Events() []string {
	return k.events
}
