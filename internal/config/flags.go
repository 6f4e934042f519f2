// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/spf13/pflag"
)

// RegisterFlags binds the configuration flags to fs and returns the
// *StructuredConfig they are written into once fs is parsed. Unset flags
// leave zero values, which the builder ignores when merging.
//
// Flags:
//
//	-a/--address          API base URL
//	--ws-address          realtime base URL
//	-d/--db               session database DSN
//	-c/--config           JSON or YAML config file path
//	--request-timeout     REST request timeout (e.g. "15s")
//	--reconnect-interval  realtime reconnection delay (e.g. "3s")
//	--reconnect-max       give up after this many failed reconnections
//	--exponential-backoff use exponential reconnection backoff
//	--messages-limit      messages page size
//	--refresh-interval    periodic chats refresh interval
//	--log-path            client log file
//	--metrics-address     Prometheus listener host:port
func RegisterFlags(fs *pflag.FlagSet) *StructuredConfig {
	cfg := &StructuredConfig{}

	fs.StringVarP(&cfg.Adapter.HTTPAddress, "address", "a", "", "API base URL")
	fs.StringVar(&cfg.Push.Address, "ws-address", "", "Realtime base URL (derived from --address when empty)")
	fs.StringVarP(&cfg.Storage.DB.DSN, "db", "d", "", "Session database DSN")
	fs.StringVarP(&cfg.ConfigFilePath, "config", "c", "", "JSON or YAML config file path")
	fs.DurationVar(&cfg.Adapter.RequestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	fs.DurationVar(&cfg.Push.ReconnectInterval, "reconnect-interval", 0, "Realtime reconnection delay (e.g., 3s)")
	fs.Uint64Var(&cfg.Push.MaxAttempts, "reconnect-max", 0, "Failed reconnections before giving up (0 = never)")
	fs.BoolVar(&cfg.Push.Exponential, "exponential-backoff", false, "Use exponential reconnection backoff")
	fs.IntVar(&cfg.Sync.MessagesLimit, "messages-limit", 0, "Messages page size")
	fs.DurationVar(&cfg.Sync.RefreshInterval, "refresh-interval", 0, "Periodic chats refresh interval (0 = off)")
	fs.StringVar(&cfg.App.LogPath, "log-path", "", "Client log file")
	fs.StringVar(&cfg.Metrics.Address, "metrics-address", "", "Prometheus listener host:port")

	return cfg
}
