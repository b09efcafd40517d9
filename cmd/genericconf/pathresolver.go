// Copyright 2026, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE.md

package genericconf

import (
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
)

// DefaultPathResolver resolves relative paths against workdir. An empty workdir means
// the current directory, looked up only once a relative path needs it.
func DefaultPathResolver(workdir string) func(string) string {
	return func(path string) string {
		if filepath.IsAbs(path) {
			return path
		}
		if workdir == "" {
			var err error
			workdir, err = os.Getwd()
			if err != nil {
				log.Warn("Failed to get workdir", "err", err)
			}
		}
		return filepath.Join(workdir, path)
	}
}
