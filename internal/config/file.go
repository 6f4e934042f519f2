// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// StructuredFileConfig mirrors [StructuredConfig] for file sources. Field
// names are shared by the JSON and YAML decoders.
type StructuredFileConfig struct {
	App struct {
		LogPath string `json:"log_path" yaml:"log_path"`
	} `json:"app,omitempty" yaml:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address" yaml:"http_address"`
		RequestTimeout Duration `json:"request_timeout" yaml:"request_timeout"`
	} `json:"adapter,omitempty" yaml:"adapter,omitempty"`

	Push struct {
		Address           string   `json:"address" yaml:"address"`
		ReconnectInterval Duration `json:"reconnect_interval" yaml:"reconnect_interval"`
		Exponential       bool     `json:"exponential" yaml:"exponential"`
		BackoffMax        Duration `json:"backoff_max" yaml:"backoff_max"`
		Jitter            Duration `json:"jitter" yaml:"jitter"`
		MaxAttempts       uint64   `json:"max_attempts" yaml:"max_attempts"`
		HandshakeTimeout  Duration `json:"handshake_timeout" yaml:"handshake_timeout"`
	} `json:"push,omitempty" yaml:"push,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn" yaml:"dsn"`
		} `json:"db,omitempty" yaml:"db,omitempty"`
	} `json:"storage,omitempty" yaml:"storage,omitempty"`

	Sync struct {
		MessagesLimit   int      `json:"messages_limit" yaml:"messages_limit"`
		RefreshInterval Duration `json:"refresh_interval" yaml:"refresh_interval"`
	} `json:"sync,omitempty" yaml:"sync,omitempty"`

	Metrics struct {
		Address string `json:"address" yaml:"address"`
	} `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// parseFile picks the decoder by file extension: .yaml and .yml go to
// [parseYAML], everything else to [parseJSON].
func parseFile(path string) (*StructuredConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(path)
	default:
		return parseJSON(path)
	}
}

func (f *StructuredFileConfig) toStructured() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			LogPath: f.App.LogPath,
		},
		Adapter: Adapter{
			HTTPAddress:    f.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(f.Adapter.RequestTimeout),
		},
		Push: Push{
			Address:           f.Push.Address,
			ReconnectInterval: time.Duration(f.Push.ReconnectInterval),
			Exponential:       f.Push.Exponential,
			BackoffMax:        time.Duration(f.Push.BackoffMax),
			Jitter:            time.Duration(f.Push.Jitter),
			MaxAttempts:       f.Push.MaxAttempts,
			HandshakeTimeout:  time.Duration(f.Push.HandshakeTimeout),
		},
		Storage: Storage{
			DB: DB{DSN: f.Storage.DB.DSN},
		},
		Sync: Sync{
			MessagesLimit:   f.Sync.MessagesLimit,
			RefreshInterval: time.Duration(f.Sync.RefreshInterval),
		},
		Metrics: Metrics{
			Address: f.Metrics.Address,
		},
		ConfigFilePath: "",
	}
}

// Duration is a wrapper around time.Duration that supports JSON and YAML
// unmarshaling from strings like "1h", "30s".
type Duration time.Duration

// parseDuration reads "90s" style values; a plain integer counts
// nanoseconds.
func parseDuration(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Duration(n), nil
	}
	return time.ParseDuration(raw)
}
