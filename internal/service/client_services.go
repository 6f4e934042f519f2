// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/store"
	"github.com/MKhiriev/go-cross-messenger/models"
)

// ClientServices bundles the client services and ties them to the session
// lifecycle: StartSession after authentication, Logout to tear down.
type ClientServices struct {
	AuthService     AuthService
	SyncCoordinator SyncCoordinator
	Linking         LinkingWorkflow
	SyncJob         ClientSyncJob

	push            PushChannel
	refreshInterval time.Duration
	logger          *logger.Logger

	mu        sync.Mutex
	cancel    context.CancelFunc
	onExpired func()
}

func NewClientServices(gateway adapter.Gateway, session store.SessionStore, push PushChannel, opener URLOpener,
	cfg config.ClientSync, m *metrics.Metrics, log *logger.Logger, opts ...LinkingOption) *ClientServices {
	coordinator := NewSyncCoordinator(gateway, cfg.MessagesLimit, m, log.Component("sync"))
	linking := NewLinkingWorkflow(gateway, coordinator, opener, m, log.Component("linking"), opts...)

	s := &ClientServices{
		AuthService:     NewClientAuthService(gateway, session, log.Component("auth")),
		SyncCoordinator: coordinator,
		Linking:         linking,
		SyncJob:         NewClientSyncJob(coordinator),
		push:            push,
		refreshInterval: cfg.RefreshInterval,
		logger:          log,
	}

	coordinator.OnUnauthorized(s.expire)
	linking.OnUnauthorized(s.expire)

	return s
}

// OnSessionExpired registers the callback run after a 401 forced a logout.
func (s *ClientServices) OnSessionExpired(callback func()) {
	s.mu.Lock()
	s.onExpired = callback
	s.mu.Unlock()
}

// StartSession subscribes to push events, starts the periodic refresh and
// performs the initial pulls of accounts and chats. Both pulls are attempted;
// their failures are joined.
func (s *ClientServices) StartSession(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	sessionCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.mu.Unlock()

	s.push.Connect(sessionCtx, func(event models.PushEvent) {
		s.SyncCoordinator.HandlePushEvent(sessionCtx, event)
	})
	s.SyncJob.Start(sessionCtx, s.refreshInterval)

	return errors.Join(
		s.SyncCoordinator.RefreshAccounts(ctx),
		s.SyncCoordinator.RefreshChats(ctx),
	)
}

// Logout closes the push channel, stops background work, drops the cached
// inbox and any linking attempt, then clears the stored credential.
func (s *ClientServices) Logout(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.push.Close()
	s.SyncJob.Stop()
	s.SyncCoordinator.Reset()
	s.Linking.Cancel()

	return s.AuthService.Logout(ctx)
}

// expire is the 401 hook. It may run on the push reader or the refresh job
// goroutine, both of which Logout waits for or closes, so the logout runs
// on its own goroutine.
func (s *ClientServices) expire() {
	go func() {
		s.logger.Warn().Msg("credential rejected, logging out")
		if err := s.Logout(context.Background()); err != nil {
			s.logger.Err(err).Msg("logout after expiry failed")
		}

		s.mu.Lock()
		callback := s.onExpired
		s.mu.Unlock()
		if callback != nil {
			callback()
		}
	}()
}
