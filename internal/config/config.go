// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from defaults,
// environment variables, command-line flags, and an optional config file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds process-level settings such as the log destination.
	App App `envPrefix:"APP_"`
	// Adapter holds the REST gateway address and request timeout.
	Adapter Adapter `envPrefix:"ADAPTER_"`
	// Push holds the realtime channel address and reconnection policy.
	Push Push `envPrefix:"PUSH_"`
	// Storage holds the durable session store settings.
	Storage Storage `envPrefix:"STORAGE_"`
	// Sync holds pull sizes and the periodic refresh interval.
	Sync Sync `envPrefix:"SYNC_"`
	// Metrics holds the optional Prometheus listener.
	Metrics Metrics `envPrefix:"METRICS_"`
	// ConfigFilePath is the optional path to a JSON or YAML configuration
	// file. When non-empty, the file is parsed and merged on top of the
	// values already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	ConfigFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// LogPath is the file the client appends its JSON log to. Empty means
	// a "logs" file next to the executable.
	// Env: APP_LOG_PATH
	LogPath string `env:"LOG_PATH"`
}

// Adapter holds settings of the REST gateway.
type Adapter struct {
	// HTTPAddress is the base URL of the API server (e.g.
	// "http://localhost:5000"). A missing scheme defaults to http.
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`
	// RequestTimeout bounds every outbound REST call.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Push holds settings of the realtime channel.
type Push struct {
	// Address is the base WebSocket URL (e.g. "ws://localhost:5000").
	// When empty it is derived from Adapter.HTTPAddress.
	// Env: PUSH_ADDRESS
	Address string `env:"ADDRESS"`
	// ReconnectInterval is the delay before a reconnection attempt, and the
	// base delay when Exponential is set.
	// Env: PUSH_RECONNECT_INTERVAL
	ReconnectInterval time.Duration `env:"RECONNECT_INTERVAL"`
	// Exponential switches from a fixed delay to exponential backoff.
	// Env: PUSH_EXPONENTIAL
	Exponential bool `env:"EXPONENTIAL"`
	// BackoffMax caps the exponential delay.
	// Env: PUSH_BACKOFF_MAX
	BackoffMax time.Duration `env:"BACKOFF_MAX"`
	// Jitter is the maximum random duration added to each delay.
	// Env: PUSH_JITTER
	Jitter time.Duration `env:"JITTER"`
	// MaxAttempts is the number of consecutive failed reconnections after
	// which the channel gives up. Zero retries forever.
	// Env: PUSH_MAX_ATTEMPTS
	MaxAttempts uint64 `env:"MAX_ATTEMPTS"`
	// HandshakeTimeout bounds the WebSocket opening handshake.
	// Env: PUSH_HANDSHAKE_TIMEOUT
	HandshakeTimeout time.Duration `env:"HANDSHAKE_TIMEOUT"`
}

// Storage groups the configuration of the local storage backends.
type Storage struct {
	// DB holds the SQLite session database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local session database.
type DB struct {
	// DSN is the SQLite file path. ":memory:" keeps the session for the
	// lifetime of the process only.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds settings of the sync coordinator.
type Sync struct {
	// MessagesLimit is the page size requested when pulling messages.
	// Env: SYNC_MESSAGES_LIMIT
	MessagesLimit int `env:"MESSAGES_LIMIT"`
	// RefreshInterval enables the periodic chats refresh job when positive.
	// Env: SYNC_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Metrics holds the Prometheus exposition settings.
type Metrics struct {
	// Address is the host:port of the /metrics listener. Empty disables it.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Defaults
//  2. Environment variables
//  3. Command-line flags (flags may be nil)
//  4. Config file (path resolved from sources 2 and 3)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig(flags *StructuredConfig) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags(flags).
		withFile().
		build()
}
