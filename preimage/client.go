// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package preimage

import (
	flag "github.com/spf13/pflag"

	"github.com/offchainlabs/nitro-preimage/fpvm"
	"github.com/offchainlabs/nitro-preimage/kernel"
)

type ClientConfig struct {
	MaxPreimageSize uint64             `koanf:"max-preimage-size"`
	CacheSize       int                `koanf:"cache-size"`
	Channel         fpvm.ChannelConfig `koanf:"channel"`
}

var DefaultClientConfig = ClientConfig{
	MaxPreimageSize: 0,
	CacheSize:       0,
	Channel:         fpvm.DefaultChannelConfig,
}

func ClientConfigAddOptions(prefix string, f *flag.FlagSet) {
	f.Uint64(prefix+".max-preimage-size", DefaultClientConfig.MaxPreimageSize, "reject preimages the host declares larger than this many bytes (0 = no limit)")
	f.Int(prefix+".cache-size", DefaultClientConfig.CacheSize, "number of preimages to keep in memory (0 = disable cache)")
	fpvm.ChannelConfigAddOptions(prefix+".channel", f)
}

// Client talks to the host over a hint channel and a preimage channel. The two are
// independent; ordering between a hint and its request comes from program order alone.
type Client struct {
	*HintWriter
	*OracleClient
}

var _ CommsClient = (*Client)(nil)

func NewClient(hints Channel, preimages Channel, config *ClientConfig) *Client {
	return &Client{
		HintWriter:   NewHintWriter(hints),
		OracleClient: NewOracleClient(preimages, config),
	}
}

// NewClientFromDescriptors wires a client to the fixed protocol descriptors, adding a
// cache in front of it when one is configured.
func NewClientFromDescriptors(table *fpvm.DescriptorTable, k kernel.Interface, config *ClientConfig) CommsClient {
	hints := fpvm.ClientHintChannel(table, k, &config.Channel)
	preimages := fpvm.ClientPreimageChannel(table, k, &config.Channel)
	client := NewClient(hints, preimages, config)
	if config.CacheSize > 0 {
		return NewCachingOracle(client, config.CacheSize)
	}
	return client
}
