// Copyright 2021-2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package confighelpers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/mitchellh/mapstructure"
	flag "github.com/spf13/pflag"
)

var ErrHelp = flag.ErrHelp

// BeginCommonParse loads, in increasing priority: flag defaults, config files, the
// JSON config string, environment variables and explicitly set flags.
func BeginCommonParse(f *flag.FlagSet, args []string) (*koanf.Koanf, error) {
	if err := f.Parse(args); err != nil {
		return nil, err
	}
	if f.NArg() != 0 {
		// Unexpected number of parameters
		return nil, fmt.Errorf("unexpected parameter: %s", f.Arg(0))
	}

	var k = koanf.New(".")

	// Initial application of command line parameters and defaults
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("error loading command line parameters: %w", err)
	}

	for _, configFile := range k.Strings("conf.file") {
		if err := k.Load(file.Provider(configFile), json.Parser()); err != nil {
			return nil, fmt.Errorf("error loading local config file %s: %w", configFile, err)
		}
	}

	if configString := k.String("conf.string"); configString != "" {
		if err := k.Load(rawbytes.Provider([]byte(configString)), json.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config string: %w", err)
		}
	}

	if envPrefix := k.String("conf.env-prefix"); envPrefix != "" {
		if err := loadEnvironmentVariables(k, envPrefix); err != nil {
			return nil, fmt.Errorf("error loading environment variables: %w", err)
		}
	}

	// Command line overrides everything else
	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("error loading command line parameters: %w", err)
	}

	return k, nil
}

// loadEnvironmentVariables maps PREFIX_SECTION_SOME__KEY to section.some-key.
func loadEnvironmentVariables(k *koanf.Koanf, envPrefix string) error {
	prefix := strings.ToUpper(envPrefix) + "_"
	return k.Load(env.Provider(prefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, prefix))
		key = strings.ReplaceAll(key, "__", "-")
		return strings.ReplaceAll(key, "_", ".")
	}), nil)
}

// EndCommonParse decodes the loaded values into config, rejecting unknown keys.
func EndCommonParse(k *koanf.Koanf, config interface{}) error {
	decoderConfig := mapstructure.DecoderConfig{
		ErrorUnused: true,

		// Default values
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(",")),
		Metadata:         nil,
		Result:           config,
		WeaklyTypedInput: true,
	}
	err := k.UnmarshalWithConf("", config, koanf.UnmarshalConf{DecoderConfig: &decoderConfig})
	if err != nil {
		return err
	}

	return nil
}

// DumpConfig writes the active configuration as JSON, with the given keys overridden.
func DumpConfig(k *koanf.Koanf, overrides map[string]interface{}, w io.Writer) error {
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return fmt.Errorf("error removing extra parameters before dump: %w", err)
		}
	}
	c, err := k.Marshal(json.Parser())
	if err != nil {
		return fmt.Errorf("unable to marshal config file to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(c))
	return err
}

// PrintError reports a parse failure and the usage text. The caller picks the exit code,
// since inside the VM exiting goes through the kernel.
func PrintError(w io.Writer, err error, sampleUsage func(io.Writer)) {
	if errors.Is(err, ErrHelp) {
		return
	}
	fmt.Fprintf(w, "%s\n", err.Error())
	if sampleUsage != nil {
		sampleUsage(w)
	}
}
