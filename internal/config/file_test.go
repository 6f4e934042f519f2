// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSON_Success(t *testing.T) {
	// Arrange
	p := writeTempConfig(t, "config.json", `{
		"app": { "log_path": "/var/log/cm.log" },
		"adapter": { "http_address": "https://api.example.com", "request_timeout": "20s" },
		"push": {
			"address": "wss://push.example.com",
			"reconnect_interval": "2s",
			"exponential": true,
			"backoff_max": "1m",
			"jitter": "500ms",
			"max_attempts": 8
		},
		"storage": { "db": { "dsn": "/tmp/session.db" } },
		"sync": { "messages_limit": 25, "refresh_interval": "1m" },
		"metrics": { "address": ":9100" }
	}`)

	// Act
	cfg, err := parseJSON(p)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "/var/log/cm.log", cfg.App.LogPath)
	assert.Equal(t, "https://api.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 20*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, "wss://push.example.com", cfg.Push.Address)
	assert.Equal(t, 2*time.Second, cfg.Push.ReconnectInterval)
	assert.True(t, cfg.Push.Exponential)
	assert.Equal(t, time.Minute, cfg.Push.BackoffMax)
	assert.Equal(t, 500*time.Millisecond, cfg.Push.Jitter)
	assert.Equal(t, uint64(8), cfg.Push.MaxAttempts)
	assert.Equal(t, "/tmp/session.db", cfg.Storage.DB.DSN)
	assert.Equal(t, 25, cfg.Sync.MessagesLimit)
	assert.Equal(t, time.Minute, cfg.Sync.RefreshInterval)
	assert.Equal(t, ":9100", cfg.Metrics.Address)
	assert.Empty(t, cfg.ConfigFilePath)
}

func TestParseJSON_FileNotFound(t *testing.T) {
	cfg, err := parseJSON("definitely-does-not-exist.json")

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error reading a json file")
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	p := writeTempConfig(t, "bad.json", `{ this is not json }`)

	cfg, err := parseJSON(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding json configs")
}

func TestParseYAML_Success(t *testing.T) {
	p := writeTempConfig(t, "config.yaml", `
adapter:
  http_address: http://localhost:5000
  request_timeout: 5s
push:
  reconnect_interval: 3000000000
  max_attempts: 3
storage:
  db:
    dsn: ":memory:"
`)

	cfg, err := parseYAML(p)

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 5*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 3*time.Second, cfg.Push.ReconnectInterval)
	assert.Equal(t, uint64(3), cfg.Push.MaxAttempts)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
}

func TestParseYAML_InvalidDuration(t *testing.T) {
	p := writeTempConfig(t, "config.yaml", "push:\n  jitter: later\n")

	cfg, err := parseYAML(p)

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "error decoding yaml configs")
}

func TestParseFile_DispatchesByExtension(t *testing.T) {
	yml := writeTempConfig(t, "c.YML", "metrics:\n  address: \":9000\"\n")
	js := writeTempConfig(t, "c.conf", `{"metrics":{"address":":9001"}}`)

	cfg, err := parseFile(yml)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Metrics.Address)

	cfg, err = parseFile(js)
	require.NoError(t, err)
	assert.Equal(t, ":9001", cfg.Metrics.Address)
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `"1m30s"`, string(b))

	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, "1m30s\n", string(out))
}

func TestDuration_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr bool
	}{
		{name: "string", input: `"250ms"`, want: 250 * time.Millisecond},
		{name: "nanoseconds", input: `3000000000`, want: 3 * time.Second},
		{name: "garbage", input: `"soon"`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, time.Duration(d))
		})
	}
}
