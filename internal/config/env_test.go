// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_PROFILE_DIR":    "/home/op/.config/commerce-console",
		"APP_PROFILE_SECRET": "profile_secret",
		"APP_LOG_LEVEL":      "debug",

		"ADAPTER_ADDRESS":         "http://localhost:8080",
		"ADAPTER_REQUEST_TIMEOUT": "5s",

		"STORAGE_DB_DSN": "/tmp/console.db",

		"WORKERS_REFRESH_INTERVAL": "1m",

		"CONSOLE_PAGE_SIZE":           "25",
		"CONSOLE_LOW_STOCK_THRESHOLD": "3",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
	assert.Equal(t, "/home/op/.config/commerce-console", cfg.App.ProfileDir)
	assert.Equal(t, "profile_secret", cfg.App.ProfileSecret)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.Address)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "/tmp/console.db", cfg.Storage.DB.DSN)
	assert.Equal(t, time.Minute, cfg.Workers.RefreshInterval)
	assert.Equal(t, 25, cfg.Console.PageSize)
	assert.Equal(t, 3, cfg.Console.LowStockThreshold)
}

func TestParseEnv_PartialFields(t *testing.T) {
	setEnvVars(t, map[string]string{
		"ADAPTER_ADDRESS": "gateway:8080",
	})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Equal(t, "gateway:8080", cfg.Adapter.Address)
	assert.Zero(t, cfg.Adapter.RequestTimeout)
	assert.Empty(t, cfg.App.ProfileSecret)
	assert.Zero(t, cfg.Console.PageSize)
}

func TestParseEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "bad timeout", key: "ADAPTER_REQUEST_TIMEOUT", val: "fast"},
		{name: "bad page size", key: "CONSOLE_PAGE_SIZE", val: "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)

			err := parseEnv(&StructuredConfig{})
			assert.Error(t, err)
		})
	}
}

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}
