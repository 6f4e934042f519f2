// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/app"
	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/push"
	"github.com/MKhiriev/go-cross-messenger/internal/service"
	"github.com/MKhiriev/go-cross-messenger/internal/store"
	"github.com/MKhiriev/go-cross-messenger/internal/workers"
	"github.com/MKhiriev/go-cross-messenger/models"
)

// App owns every long-lived client component for one process.
type App struct {
	services *service.ClientServices
	push     *push.Channel
	metrics  *metrics.Metrics
	workers  *workers.Workers
	storages *store.ClientStorages

	out    io.Writer
	logger *logger.Logger

	closeOnce sync.Once
}

type appOptions struct {
	session     store.SessionStore
	out         io.Writer
	opener      service.URLOpener
	pushOptions []push.Option
	linking     []service.LinkingOption
}

// Option customises NewApp.
type Option func(*appOptions)

// WithSessionStore replaces the SQLite session store.
func WithSessionStore(s store.SessionStore) Option {
	return func(o *appOptions) { o.session = s }
}

// WithOutput sets where the app prints. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *appOptions) { o.out = w }
}

// WithURLOpener replaces the clipboard opener used by platform-B linking.
func WithURLOpener(opener service.URLOpener) Option {
	return func(o *appOptions) { o.opener = opener }
}

// WithPushOptions is passed through to push.NewChannel.
func WithPushOptions(opts ...push.Option) Option {
	return func(o *appOptions) { o.pushOptions = append(o.pushOptions, opts...) }
}

// WithLinkingOptions is passed through to the linking workflow.
func WithLinkingOptions(opts ...service.LinkingOption) Option {
	return func(o *appOptions) { o.linking = append(o.linking, opts...) }
}

// NewApp builds the client from cfg. The caller must Close the app.
func NewApp(ctx context.Context, cfg *config.ClientConfig, log *logger.Logger, opts ...Option) (*App, error) {
	o := &appOptions{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{
		metrics: metrics.New(),
		workers: workers.New(),
		out:     o.out,
		logger:  log,
	}

	session := o.session
	if session == nil {
		storages, err := store.NewClientStorages(ctx, cfg.Storage, log.Component("store"))
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}
		a.storages = storages
		session = storages.Session
	}

	gateway, err := adapter.NewHTTPGateway(cfg.Adapter, session, a.metrics, log.Component("gateway"))
	if err != nil {
		_ = a.storages.Close()
		return nil, fmt.Errorf("create gateway: %w", err)
	}

	a.push = push.NewChannel(cfg.Push, session, a.metrics, log.Component("push"), o.pushOptions...)

	opener := o.opener
	if opener == nil {
		opener = newClipboardOpener(a.out, log.Component("opener"))
	}
	a.services = service.NewClientServices(gateway, session, a.push, opener, cfg.Sync, a.metrics, log, o.linking...)

	if cfg.Metrics.Address != "" {
		server, err := metrics.NewServer(a.metrics, cfg.Metrics.Address, log.Component("metrics"))
		if err != nil {
			_ = a.storages.Close()
			return nil, err
		}
		a.workers.Add(server)
	}
	a.workers.Run()

	return a, nil
}

// Services exposes the client services.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// PushState reports the realtime channel state.
func (a *App) PushState() push.State {
	return a.push.State()
}

// RequireSession probes the stored credential. ErrNotLoggedIn is returned
// when there is none or the server rejected it; an unreachable server is
// tolerated.
func (a *App) RequireSession(ctx context.Context) error {
	ok, err := a.services.AuthService.CheckAuth(ctx)
	if !ok {
		if err != nil {
			return err
		}
		return ErrNotLoggedIn
	}
	if err != nil {
		a.logger.Warn().Err(err).Msg("cannot verify session, continuing offline")
	}
	return nil
}

// Watch starts the session and prints the inbox on every change until ctx
// is cancelled or the server rejects the credential.
func (a *App) Watch(ctx context.Context) error {
	if err := a.RequireSession(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	var printMu sync.Mutex
	show := func(s string) {
		printMu.Lock()
		fmt.Fprintln(a.out, s)
		printMu.Unlock()
	}

	a.services.OnSessionExpired(func() { cancel(ErrSessionExpired) })
	a.services.SyncCoordinator.OnChange(func(view models.InboxView) { show(renderInbox(view)) })
	a.push.OnStateChange(func(state push.State) {
		a.logger.Info().Stringer("state", state).Msg("push channel state changed")
		show(renderPushState(state))
	})
	defer func() {
		a.push.OnStateChange(nil)
		a.services.SyncCoordinator.OnChange(nil)
		a.services.OnSessionExpired(nil)
	}()

	if err := a.services.StartSession(ctx); err != nil {
		show(renderError(service.UserMessage(err, app.MsgFailedToLoad)))
	}

	<-ctx.Done()
	if cause := context.Cause(ctx); errors.Is(cause, ErrSessionExpired) {
		return ErrSessionExpired
	}
	return nil
}

// Close stops the push channel, background jobs and workers and releases
// the database. It is safe to call more than once.
func (a *App) Close(ctx context.Context) error {
	var err error
	a.closeOnce.Do(func() {
		a.push.Close()
		a.services.SyncJob.Stop()
		err = errors.Join(
			a.workers.Shutdown(ctx),
			a.storages.Close(),
		)
	})
	return err
}
