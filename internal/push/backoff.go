// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

import (
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-cross-messenger/internal/config"
)

// BackoffFactory returns a fresh reconnect schedule. A new schedule is
// started after every successful connection.
type BackoffFactory func() retry.Backoff

// NewBackoffFactory builds the reconnect policy from cfg. The default is a
// fixed interval with no cap and no attempt limit. With Exponential set the
// delay doubles from ReconnectInterval up to BackoffMax. Jitter and
// MaxAttempts apply to both modes when non-zero.
func NewBackoffFactory(cfg config.ClientPush) BackoffFactory {
	interval := cfg.ReconnectInterval
	if interval <= 0 {
		interval = config.DefaultReconnectInterval
	}

	return func() retry.Backoff {
		var b retry.Backoff
		if cfg.Exponential {
			b = retry.NewExponential(interval)
			if cfg.BackoffMax > 0 {
				b = retry.WithCappedDuration(cfg.BackoffMax, b)
			}
		} else {
			b = retry.NewConstant(interval)
		}

		if cfg.Jitter > 0 {
			b = retry.WithJitter(cfg.Jitter, b)
		}
		if cfg.MaxAttempts > 0 {
			b = retry.WithMaxRetries(cfg.MaxAttempts, b)
		}
		return b
	}
}

// FixedBackoff returns a factory producing an unlimited constant delay.
func FixedBackoff(d time.Duration) BackoffFactory {
	return func() retry.Backoff {
		return retry.NewConstant(d)
	}
}
