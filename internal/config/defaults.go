package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	defaultAdapterAddress    = "http://localhost:8080"
	defaultRequestTimeout    = 15 * time.Second
	defaultRefreshInterval   = 30 * time.Second
	defaultPageSize          = 10
	defaultLowStockThreshold = 10
	defaultLogLevel          = "info"

	profileDirName = "commerce-console"
	dbFileName     = "console.db"
)

func defaultConfig(profileDir string) (*StructuredConfig, error) {
	if profileDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("error resolving user config dir: %w", err)
		}
		profileDir = filepath.Join(base, profileDirName)
	}

	return &StructuredConfig{
		App: App{
			ProfileDir: profileDir,
			LogLevel:   defaultLogLevel,
		},
		Adapter: Adapter{
			Address:        defaultAdapterAddress,
			RequestTimeout: defaultRequestTimeout,
		},
		Storage: Storage{
			DB: DB{DSN: filepath.Join(profileDir, dbFileName)},
		},
		Workers: Workers{RefreshInterval: defaultRefreshInterval},
		Console: Console{
			PageSize:          defaultPageSize,
			LowStockThreshold: defaultLowStockThreshold,
		},
	}, nil
}
