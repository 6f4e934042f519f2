// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/push"
	"github.com/MKhiriev/go-cross-messenger/models"
)

var (
	errNetwork      = &wrapped{adapter.ErrNetwork}
	errUnauthorized = &adapter.ServerError{Status: 401, Detail: "Invalid token"}
)

// wrapped hides the sentinel's identity so that errors.Is is exercised.
type wrapped struct{ err error }

func (w *wrapped) Error() string { return "dial tcp: " + w.err.Error() }
func (w *wrapped) Unwrap() error { return w.err }

// metricValue reads one counter or gauge sample from m's registry.
func metricValue(t *testing.T, m *metrics.Metrics, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, sample := range family.GetMetric() {
			for _, pair := range sample.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue next
				}
			}
			if c := sample.GetCounter(); c != nil {
				return c.GetValue()
			}
			return sample.GetGauge().GetValue()
		}
	}
	return 0
}

// spyNotifier counts AccountsLinked calls.
type spyNotifier struct {
	calls atomic.Int64
}

func (s *spyNotifier) AccountsLinked(context.Context) {
	s.calls.Add(1)
}

// spyOpener records opened URLs.
type spyOpener struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (s *spyOpener) Open(_ context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urls = append(s.urls, url)
	return s.err
}

func (s *spyOpener) opened() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.urls...)
}

// spyPush is a PushChannel that keeps the registered handler.
type spyPush struct {
	mu       sync.Mutex
	handler  push.Handler
	connects int
	closes   int
}

func (s *spyPush) Connect(_ context.Context, handler push.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = handler
	s.connects++
}

func (s *spyPush) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handler = nil
	s.closes++
}

func (s *spyPush) deliver(event models.PushEvent) bool {
	s.mu.Lock()
	handler := s.handler
	s.mu.Unlock()
	if handler == nil {
		return false
	}
	handler(event)
	return true
}

func (s *spyPush) counts() (connects, closes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connects, s.closes
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}
