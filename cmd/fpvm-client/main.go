// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

// fpvm-client runs inside the fault-proof VM. It reads its boot values and the
// starting L2 block from the host through the preimage oracle.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/nitro-preimage/cmd/genericconf"
	"github.com/offchainlabs/nitro-preimage/cmd/util"
	"github.com/offchainlabs/nitro-preimage/cmd/util/confighelpers"
	"github.com/offchainlabs/nitro-preimage/fpvm"
	"github.com/offchainlabs/nitro-preimage/hint"
	"github.com/offchainlabs/nitro-preimage/kernel"
	"github.com/offchainlabs/nitro-preimage/preimage"
)

const (
	exitSuccess     = 0
	exitFailure     = 1
	exitInvalidHint = 2
	exitChannel     = 3
	exitProtocol    = 4
	exitConfig      = 5
)

func main() {
	setupGarbageCollector()
	run(kernel.Linux{}, os.Args[1:])
}

// run never returns: the exit code goes to the host through the kernel.
func run(k kernel.Interface, args []string) {
	k.Exit(mainImpl(k, args))
}

func mainImpl(k kernel.Interface, args []string) int {
	stderr := fpvm.NewFileChannel(fpvm.StdErr, k, &fpvm.DefaultChannelConfig)

	config, err := ParseClient(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitSuccess
	}
	if err != nil {
		confighelpers.PrintError(stderr, err, printSampleUsage)
		return exitConfig
	}

	err = genericconf.InitLog(config.LogType, config.LogLevel, stderr, &config.FileLogging, genericconf.DefaultPathResolver(""))
	if err != nil {
		fmt.Fprintf(stderr, "Error initializing logging: %v\n", err)
		return exitConfig
	}
	defer func() {
		if err := genericconf.CloseFileLogger(); err != nil {
			fmt.Fprintf(stderr, "Error closing file logger: %v\n", err)
		}
	}()

	oracle := preimage.NewClientFromDescriptors(&config.Descriptors, k, &config.Preimage)
	state, err := LoadStartingState(oracle, &config.Boot)
	if config.Metrics {
		util.LogCounters("preimage/")
	}
	if err != nil {
		log.Error("Failed to load starting state", "err", err)
		return exitCode(err)
	}

	log.Info("Boot", "l1Head", state.Boot.L1Head, "agreedOutputRoot", state.Boot.AgreedOutputRoot)
	log.Info(
		"Starting L2 block",
		"number", state.Header.Number,
		"hash", state.Output.BlockHash,
		"stateRoot", state.Header.Root,
		"messagePasserStorageRoot", state.Output.MessagePasserStorageRoot,
		"stateRootNodeSize", len(state.StateRootNode),
	)
	return exitSuccess
}

// exitCode tells the host which side of the protocol broke.
func exitCode(err error) int {
	var parsingErr *hint.ParsingError
	var kernelErr *kernel.Error
	switch {
	case errors.As(err, &parsingErr):
		return exitInvalidHint
	case errors.Is(err, preimage.ErrProtocolViolation), errors.Is(err, errInvalidPreimage):
		return exitProtocol
	case errors.As(err, &kernelErr),
		errors.Is(err, kernel.ErrWouldBlock),
		errors.Is(err, fpvm.ErrChannelClosed),
		errors.Is(err, fpvm.ErrShortWrite),
		errors.Is(err, fpvm.ErrRetryBudgetExhausted):
		return exitChannel
	default:
		return exitFailure
	}
}
