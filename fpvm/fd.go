// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package fpvm

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// FileDescriptor is one of the fixed descriptors the host sets up before the program starts.
type FileDescriptor uintptr

const (
	StdIn FileDescriptor = iota
	StdOut
	StdErr
	HintRead
	HintWrite
	PreimageRead
	PreimageWrite
)

func (fd FileDescriptor) String() string {
	switch fd {
	case StdIn:
		return "stdin"
	case StdOut:
		return "stdout"
	case StdErr:
		return "stderr"
	case HintRead:
		return "hint-read"
	case HintWrite:
		return "hint-write"
	case PreimageRead:
		return "preimage-read"
	case PreimageWrite:
		return "preimage-write"
	default:
		return fmt.Sprintf("fd-%d", uintptr(fd))
	}
}

// DescriptorTable maps the four protocol channels to the descriptor numbers agreed with
// the host out of band.
type DescriptorTable struct {
	HintRead      uint `koanf:"hint-read"`
	HintWrite     uint `koanf:"hint-write"`
	PreimageRead  uint `koanf:"preimage-read"`
	PreimageWrite uint `koanf:"preimage-write"`
}

var DefaultDescriptorTable = DescriptorTable{
	HintRead:      uint(HintRead),
	HintWrite:     uint(HintWrite),
	PreimageRead:  uint(PreimageRead),
	PreimageWrite: uint(PreimageWrite),
}

func DescriptorTableAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint(prefix+".hint-read", DefaultDescriptorTable.HintRead, "descriptor the host acknowledges hints on")
	f.Uint(prefix+".hint-write", DefaultDescriptorTable.HintWrite, "descriptor hints are written to")
	f.Uint(prefix+".preimage-read", DefaultDescriptorTable.PreimageRead, "descriptor preimages are read from")
	f.Uint(prefix+".preimage-write", DefaultDescriptorTable.PreimageWrite, "descriptor preimage requests are written to")
}

func (t *DescriptorTable) Validate() error {
	fds := []uint{t.HintRead, t.HintWrite, t.PreimageRead, t.PreimageWrite}
	seen := make(map[uint]bool, len(fds))
	for _, fd := range fds {
		if fd <= uint(StdErr) {
			return fmt.Errorf("descriptor %d collides with a standard stream", fd)
		}
		if seen[fd] {
			return fmt.Errorf("descriptor %d assigned to more than one channel", fd)
		}
		seen[fd] = true
	}
	return nil
}
