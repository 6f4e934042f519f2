// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned by [ClientConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid REST gateway settings
	// (for example, missing or unparsable address, zero request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidPushConfigs indicates invalid realtime channel settings
	// (for example, non-websocket scheme or zero reconnect interval).
	ErrInvalidPushConfigs = errors.New("invalid push configuration")
	// ErrInvalidStorageConfigs indicates invalid session storage settings
	// (for example, empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid sync coordinator settings
	// (for example, non-positive messages limit).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
)
