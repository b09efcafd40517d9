// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package fpvm

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/nitro-preimage/kernel"
)

var (
	ErrChannelClosed        = errors.New("channel closed by host")
	ErrShortWrite           = errors.New("channel accepted no bytes")
	ErrRetryBudgetExhausted = errors.New("would-block retry budget exhausted")
)

type ChannelConfig struct {
	// Zero retries would-block forever, which is what a proof run needs.
	MaxWouldBlockRetries uint64 `koanf:"max-would-block-retries"`
}

var DefaultChannelConfig = ChannelConfig{
	MaxWouldBlockRetries: 0,
}

func ChannelConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint64(prefix+".max-would-block-retries", DefaultChannelConfig.MaxWouldBlockRetries, "give up after this many consecutive would-block results (0 = retry forever, required inside a fault-proof VM)")
}

// FileChannel turns partial, possibly would-block syscalls on one descriptor into
// full-buffer reads and writes.
type FileChannel struct {
	fd         FileDescriptor
	kernel     kernel.Interface
	maxRetries uint64
}

var _ io.ReadWriter = (*FileChannel)(nil)

func NewFileChannel(fd FileDescriptor, k kernel.Interface, config *ChannelConfig) *FileChannel {
	return &FileChannel{
		fd:         fd,
		kernel:     k,
		maxRetries: config.MaxWouldBlockRetries,
	}
}

func (c *FileChannel) Descriptor() FileDescriptor {
	return c.fd
}

// ReadExact fills p completely or fails. Kernel errors other than would-block are
// returned as is.
func (c *FileChannel) ReadExact(p []byte) error {
	var retries uint64
	for filled := 0; filled < len(p); {
		n, err := c.kernel.Read(uintptr(c.fd), p[filled:])
		if errors.Is(err, kernel.ErrWouldBlock) {
			if err := c.retry(&retries); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %v after %d of %d bytes", ErrChannelClosed, c.fd, filled, len(p))
		}
		if n < 0 || n > len(p)-filled {
			return fmt.Errorf("read on %v reported %d bytes for a %d byte buffer", c.fd, n, len(p)-filled)
		}
		filled += n
		retries = 0
	}
	return nil
}

// WriteAll writes all of p or fails.
func (c *FileChannel) WriteAll(p []byte) error {
	var retries uint64
	for written := 0; written < len(p); {
		n, err := c.kernel.Write(uintptr(c.fd), p[written:])
		if errors.Is(err, kernel.ErrWouldBlock) {
			if err := c.retry(&retries); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%w: %v after %d of %d bytes", ErrShortWrite, c.fd, written, len(p))
		}
		if n < 0 || n > len(p)-written {
			return fmt.Errorf("write on %v reported %d bytes for a %d byte buffer", c.fd, n, len(p)-written)
		}
		written += n
		retries = 0
	}
	return nil
}

// Read performs a single read, retrying only would-block.
func (c *FileChannel) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	var retries uint64
	for {
		n, err := c.kernel.Read(uintptr(c.fd), p)
		if errors.Is(err, kernel.ErrWouldBlock) {
			if err := c.retry(&retries); err != nil {
				return 0, err
			}
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

func (c *FileChannel) Write(p []byte) (int, error) {
	if err := c.WriteAll(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *FileChannel) retry(retries *uint64) error {
	*retries++
	if c.maxRetries != 0 && *retries > c.maxRetries {
		return fmt.Errorf("%w: %v after %d attempts", ErrRetryBudgetExhausted, c.fd, *retries-1)
	}
	return nil
}

// ChannelPair is a bidirectional channel made of two unidirectional descriptors.
type ChannelPair struct {
	Reader *FileChannel
	Writer *FileChannel
}

func NewChannelPair(r, w FileDescriptor, k kernel.Interface, config *ChannelConfig) ChannelPair {
	return ChannelPair{
		Reader: NewFileChannel(r, k, config),
		Writer: NewFileChannel(w, k, config),
	}
}

func (p ChannelPair) ReadExact(b []byte) error {
	return p.Reader.ReadExact(b)
}

func (p ChannelPair) WriteAll(b []byte) error {
	return p.Writer.WriteAll(b)
}

func (p ChannelPair) Read(b []byte) (int, error) {
	return p.Reader.Read(b)
}

func (p ChannelPair) Write(b []byte) (int, error) {
	return p.Writer.Write(b)
}

// ClientHintChannel is the client end of the hint channel.
func ClientHintChannel(table *DescriptorTable, k kernel.Interface, config *ChannelConfig) ChannelPair {
	return NewChannelPair(FileDescriptor(table.HintRead), FileDescriptor(table.HintWrite), k, config)
}

// ClientPreimageChannel is the client end of the preimage channel.
func ClientPreimageChannel(table *DescriptorTable, k kernel.Interface, config *ChannelConfig) ChannelPair {
	return NewChannelPair(FileDescriptor(table.PreimageRead), FileDescriptor(table.PreimageWrite), k, config)
}
