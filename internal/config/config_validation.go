// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks that the merged [StructuredConfig] can be decoded at all.
// Completeness is enforced later by [ClientConfig.validate].
func (cfg *StructuredConfig) validate() error {
	if cfg.Sync.MessagesLimit < 0 {
		return fmt.Errorf("%w: messages limit %d", ErrInvalidSyncConfigs, cfg.Sync.MessagesLimit)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}
	if u, err := url.Parse(cfg.Adapter.HTTPAddress); err != nil || u.Host == "" {
		return ErrInvalidAdapterConfigs
	}

	u, err := url.Parse(cfg.Push.Address)
	if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") || u.Host == "" {
		return ErrInvalidPushConfigs
	}
	if cfg.Push.ReconnectInterval <= 0 {
		return ErrInvalidPushConfigs
	}
	if cfg.Push.Exponential && cfg.Push.BackoffMax < cfg.Push.ReconnectInterval {
		return ErrInvalidPushConfigs
	}

	if cfg.Sync.MessagesLimit <= 0 || cfg.Sync.RefreshInterval < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
