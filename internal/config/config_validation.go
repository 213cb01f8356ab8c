// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks the merged configuration before it is used at startup.
// Every failure wraps one of the ErrInvalid* sentinels.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.ProfileSecret == "" {
		return fmt.Errorf("%w: profile secret is required", ErrInvalidAppConfigs)
	}

	if cfg.Adapter.Address == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	// tokens must survive restarts
	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, ":memory:") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Console.PageSize <= 0 || cfg.Console.LowStockThreshold < 0 {
		return ErrInvalidConsoleConfigs
	}

	return nil
}
