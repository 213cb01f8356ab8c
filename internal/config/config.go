// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// commerce console. It is populated by merging values from environment
// variables, command-line flags and an optional JSON file, with defaults
// filled in last.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds operator profile settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the address and timeout of the API gateway.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the location of the local profile database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds polling settings for background refresh jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// Console holds list and dashboard presentation settings.
	Console Console `envPrefix:"CONSOLE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds settings of the operator's local profile.
type App struct {
	// ProfileDir is the directory holding the profile database and the log
	// file.
	// Env: APP_PROFILE_DIR
	ProfileDir string `env:"PROFILE_DIR"`

	// ProfileSecret is the passphrase that seals tokens at rest in the
	// profile database. Must be kept confidential.
	// Env: APP_PROFILE_SECRET
	ProfileSecret string `env:"PROFILE_SECRET"`

	// LogLevel is a zerolog level name ("debug", "info", ...).
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Adapter holds settings of the outbound HTTP transport.
type Adapter struct {
	// Address is the base URL of the API gateway
	// (e.g. "http://localhost:8080"). A scheme-less "host:port" is accepted.
	// Env: ADAPTER_ADDRESS
	Address string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups local persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite connection settings of the token store.
type DB struct {
	// DSN is the SQLite file name or URI.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds background job settings.
type Workers struct {
	// RefreshInterval defines how often dashboards and lists are refetched.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Console holds list presentation settings.
type Console struct {
	// PageSize is the number of rows requested per page.
	// Env: CONSOLE_PAGE_SIZE
	PageSize int `env:"PAGE_SIZE"`

	// LowStockThreshold is the quantity below which a product is flagged as
	// low on stock.
	// Env: CONSOLE_LOW_STOCK_THRESHOLD
	LowStockThreshold int `env:"LOW_STOCK_THRESHOLD"`
}

// GetStructuredConfig loads, merges, defaults and validates the console
// configuration from all available sources in the following priority order
// (first non-zero value wins):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
