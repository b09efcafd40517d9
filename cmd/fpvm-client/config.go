// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/nitro-preimage/cmd/genericconf"
	"github.com/offchainlabs/nitro-preimage/cmd/util/confighelpers"
	"github.com/offchainlabs/nitro-preimage/fpvm"
	"github.com/offchainlabs/nitro-preimage/preimage"
)

type ClientConfig struct {
	Descriptors fpvm.DescriptorTable          `koanf:"descriptors"`
	Preimage    preimage.ClientConfig         `koanf:"preimage"`
	Boot        BootConfig                    `koanf:"boot"`
	Conf        genericconf.ConfConfig        `koanf:"conf"`
	LogLevel    string                        `koanf:"log-level"`
	LogType     string                        `koanf:"log-type"`
	FileLogging genericconf.FileLoggingConfig `koanf:"file-logging"`
	Metrics     bool                          `koanf:"metrics"`
}

var ClientConfigDefault = ClientConfig{
	Descriptors: fpvm.DefaultDescriptorTable,
	Preimage:    preimage.DefaultClientConfig,
	Boot:        BootConfigDefault,
	Conf:        genericconf.ConfConfigDefault,
	LogLevel:    "INFO",
	LogType:     "plaintext",
	FileLogging: genericconf.DefaultFileLoggingConfig,
	Metrics:     false,
}

func ClientConfigAddOptions(f *flag.FlagSet) {
	fpvm.DescriptorTableAddOptions("descriptors", f)
	preimage.ClientConfigAddOptions("preimage", f)
	BootConfigAddOptions("boot", f)
	genericconf.ConfConfigAddOptions("conf", f)
	f.String("log-level", ClientConfigDefault.LogLevel, "log level, valid values are CRIT, ERROR, WARN, INFO, DEBUG, TRACE")
	f.String("log-type", ClientConfigDefault.LogType, "log type (plaintext or json)")
	genericconf.FileLoggingConfigAddOptions("file-logging", f)
	f.Bool("metrics", ClientConfigDefault.Metrics, "log preimage counters before exiting")
}

func (c *ClientConfig) Validate() error {
	if err := c.Descriptors.Validate(); err != nil {
		return err
	}
	return c.Boot.Validate()
}

// BootConfig locates the boot values among the local preimages.
type BootConfig struct {
	L1HeadIndex       uint64 `koanf:"l1-head-index"`
	L2OutputRootIndex uint64 `koanf:"l2-output-root-index"`
}

var BootConfigDefault = BootConfig{
	L1HeadIndex:       1,
	L2OutputRootIndex: 2,
}

func BootConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint64(prefix+".l1-head-index", BootConfigDefault.L1HeadIndex, "local key index of the L1 head block hash")
	f.Uint64(prefix+".l2-output-root-index", BootConfigDefault.L2OutputRootIndex, "local key index of the agreed L2 output root")
}

func (c *BootConfig) Validate() error {
	if c.L1HeadIndex == c.L2OutputRootIndex {
		return errors.New("boot.l1-head-index and boot.l2-output-root-index must differ")
	}
	return nil
}

// ParseClient parses args into a validated config. A requested dump goes to dumpOut.
func ParseClient(args []string, dumpOut io.Writer) (*ClientConfig, error) {
	f := flag.NewFlagSet("fpvm-client", flag.ContinueOnError)
	f.SetOutput(dumpOut)
	ClientConfigAddOptions(f)

	k, err := confighelpers.BeginCommonParse(f, args)
	if err != nil {
		return nil, err
	}

	var config ClientConfig
	if err := confighelpers.EndCommonParse(k, &config); err != nil {
		return nil, err
	}

	if config.Conf.Dump {
		if err := confighelpers.DumpConfig(k, nil, dumpOut); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

func printSampleUsage(w io.Writer) {
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "Sample usage: fpvm-client --log-level DEBUG --preimage.cache-size 1024\n")
}
