// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "time"

const (
	DefaultHTTPAddress       = "http://localhost:5000"
	DefaultRequestTimeout    = 15 * time.Second
	DefaultReconnectInterval = 3 * time.Second
	DefaultBackoffMax        = 30 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
	DefaultSessionDSN        = "session.db"
	DefaultMessagesLimit     = 50
)

// Defaults returns the built-in configuration. It reproduces the base
// reconnection policy: a fixed 3 second delay without cap or jitter.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		Adapter: Adapter{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Push: Push{
			ReconnectInterval: DefaultReconnectInterval,
			BackoffMax:        DefaultBackoffMax,
			HandshakeTimeout:  DefaultHandshakeTimeout,
		},
		Storage: Storage{DB: DB{DSN: DefaultSessionDSN}},
		Sync:    Sync{MessagesLimit: DefaultMessagesLimit},
	}
}
