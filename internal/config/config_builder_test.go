// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempConfig(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceOverridesNonZeroFields verifies the priority order:
// a later config replaces non-zero fields and keeps the rest.
func TestBuild_LaterSourceOverridesNonZeroFields(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "http://first", RequestTimeout: time.Second},
		},
		&StructuredConfig{
			Adapter: Adapter{HTTPAddress: "http://second"},
		},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "http://second", cfg.Adapter.HTTPAddress)
	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
}

func TestBuild_RejectsNegativeMessagesLimit(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{Sync: Sync{MessagesLimit: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

func TestWithDefaults_BaseReconnectPolicy(t *testing.T) {
	cfg, err := newConfigBuilder().withDefaults().build()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Push.ReconnectInterval)
	assert.False(t, cfg.Push.Exponential)
	assert.Zero(t, cfg.Push.Jitter)
	assert.Zero(t, cfg.Push.MaxAttempts)
	assert.Equal(t, 50, cfg.Sync.MessagesLimit)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env:5000")
	t.Setenv("PUSH_RECONNECT_INTERVAL", "7s")
	t.Setenv("PUSH_MAX_ATTEMPTS", "4")
	t.Setenv("STORAGE_DB_DSN", "/tmp/env.db")
	t.Setenv("SYNC_MESSAGES_LIMIT", "20")

	b := newConfigBuilder()
	b.withEnv()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 1)
	assert.Equal(t, "http://env:5000", b.configs[0].Adapter.HTTPAddress)
	assert.Equal(t, 7*time.Second, b.configs[0].Push.ReconnectInterval)
	assert.Equal(t, uint64(4), b.configs[0].Push.MaxAttempts)
	assert.Equal(t, "/tmp/env.db", b.configs[0].Storage.DB.DSN)
	assert.Equal(t, 20, b.configs[0].Sync.MessagesLimit)
}

func TestWithEnv_SetsErrorOnBadDuration(t *testing.T) {
	t.Setenv("PUSH_RECONNECT_INTERVAL", "soon")

	b := newConfigBuilder()
	b.withEnv()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

func TestWithFlags_NilIsIgnored(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withFlags(nil))
	assert.Empty(t, b.configs)
}

func TestWithFlags_OverridesEnv(t *testing.T) {
	t.Setenv("ADAPTER_ADDRESS", "http://env:5000")

	cfg, err := newConfigBuilder().
		withEnv().
		withFlags(&StructuredConfig{Adapter: Adapter{HTTPAddress: "http://flag:5000"}}).
		build()

	require.NoError(t, err)
	assert.Equal(t, "http://flag:5000", cfg.Adapter.HTTPAddress)
}

// ── withFile ──────────────────────────────────────────────────────────────────

func TestWithFile_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withFile()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

func TestWithFile_AppendsJSONConfig(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"adapter":{"http_address":"http://json:5000"}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "http://json:5000", b.configs[1].Adapter.HTTPAddress)
}

func TestWithFile_AppendsYAMLConfig(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", "push:\n  reconnect_interval: 5s\n")

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: path})
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, 5*time.Second, b.configs[1].Push.ReconnectInterval)
}

func TestWithFile_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{ConfigFilePath: "/nonexistent/config.json"})
	b.withFile()

	assert.Error(t, b.err)
}

func TestWithFile_UsesLastPath(t *testing.T) {
	first := writeTempConfig(t, "first.json", `{"storage":{"db":{"dsn":"first.db"}}}`)
	last := writeTempConfig(t, "last.json", `{"storage":{"db":{"dsn":"last.db"}}}`)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{ConfigFilePath: first},
		&StructuredConfig{ConfigFilePath: last},
	)
	b.withFile()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last.db", b.configs[2].Storage.DB.DSN)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

func TestGetStructuredConfig_FileOverridesFlagsAndEnv(t *testing.T) {
	path := writeTempConfig(t, "cfg.yml", "sync:\n  messages_limit: 10\n")
	t.Setenv("SYNC_MESSAGES_LIMIT", "30")

	cfg, err := GetStructuredConfig(&StructuredConfig{
		ConfigFilePath: path,
		Sync:           Sync{MessagesLimit: 40},
	})

	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Sync.MessagesLimit)
	assert.Equal(t, DefaultHTTPAddress, cfg.Adapter.HTTPAddress)
}
