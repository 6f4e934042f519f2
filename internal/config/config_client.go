// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
	"time"
)

// ClientApp holds process-level client settings.
type ClientApp struct {
	// LogPath is the client log file; empty selects the default location.
	LogPath string
}

// ClientAdapter holds network settings used by the REST gateway.
type ClientAdapter struct {
	// HTTPAddress is the API base URL, always carrying a scheme.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// ClientPush holds the realtime channel address and reconnection policy.
type ClientPush struct {
	// Address is the realtime base URL (ws:// or wss://).
	Address           string
	ReconnectInterval time.Duration
	Exponential       bool
	BackoffMax        time.Duration
	Jitter            time.Duration
	MaxAttempts       uint64
	HandshakeTimeout  time.Duration
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the session store.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientSync holds sync coordinator settings.
type ClientSync struct {
	MessagesLimit   int
	RefreshInterval time.Duration
}

// ClientMetrics holds Prometheus exposition settings.
type ClientMetrics struct {
	Address string
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Push    ClientPush
	Storage ClientStorage
	Sync    ClientSync
	Metrics ClientMetrics
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], normalizes addresses
// (adding a missing http scheme and deriving the realtime URL from the API
// URL when none is configured), and validates the resulting [ClientConfig].
func GetClientConfig(flags *StructuredConfig) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(flags)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	return NewClientConfig(cfg)
}

// NewClientConfig projects cfg onto a validated [ClientConfig].
func NewClientConfig(cfg *StructuredConfig) (*ClientConfig, error) {
	httpAddress := withHTTPScheme(cfg.Adapter.HTTPAddress)

	pushAddress := cfg.Push.Address
	if pushAddress == "" {
		pushAddress = deriveWSAddress(httpAddress)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			LogPath: cfg.App.LogPath,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    httpAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Push: ClientPush{
			Address:           strings.TrimRight(pushAddress, "/"),
			ReconnectInterval: cfg.Push.ReconnectInterval,
			Exponential:       cfg.Push.Exponential,
			BackoffMax:        cfg.Push.BackoffMax,
			Jitter:            cfg.Push.Jitter,
			MaxAttempts:       cfg.Push.MaxAttempts,
			HandshakeTimeout:  cfg.Push.HandshakeTimeout,
		},
		Storage: ClientStorage{
			DB: ClientDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Sync: ClientSync{
			MessagesLimit:   cfg.Sync.MessagesLimit,
			RefreshInterval: cfg.Sync.RefreshInterval,
		},
		Metrics: ClientMetrics{Address: cfg.Metrics.Address},
	}

	return clientCfg, clientCfg.validate()
}

func withHTTPScheme(address string) string {
	address = strings.TrimRight(address, "/")
	if address == "" || strings.Contains(address, "://") {
		return address
	}
	return "http://" + address
}

// deriveWSAddress maps http to ws and https to wss.
func deriveWSAddress(httpAddress string) string {
	switch {
	case strings.HasPrefix(httpAddress, "https://"):
		return "wss://" + strings.TrimPrefix(httpAddress, "https://")
	case strings.HasPrefix(httpAddress, "http://"):
		return "ws://" + strings.TrimPrefix(httpAddress, "http://")
	default:
		return httpAddress
	}
}
