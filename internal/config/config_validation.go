// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.SelfAddress != "" && !common.IsHexAddress(cfg.App.SelfAddress) {
		return fmt.Errorf("%w: self address %q is not a hex address", ErrInvalidAppConfigs, cfg.App.SelfAddress)
	}

	switch cfg.Storage.Backend {
	case "", BackendMemory:
	case BackendBadger:
		if cfg.Storage.Badger.Dir == "" {
			return fmt.Errorf("%w: badger backend requires a data directory", ErrInvalidStorageConfigs)
		}
	case BackendSQLite:
		if cfg.Storage.SQLite.Path == "" {
			return fmt.Errorf("%w: sqlite backend requires a database file path", ErrInvalidStorageConfigs)
		}
	case BackendPostgres:
		if cfg.Storage.DB.DSN == "" {
			return fmt.Errorf("%w: postgres backend requires a DSN", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidStorageConfigs, cfg.Storage.Backend)
	}

	return nil
}
