// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/MKhiriev/go-cross-messenger/internal/config"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/metrics"
	"github.com/MKhiriev/go-cross-messenger/internal/store"
	"github.com/MKhiriev/go-cross-messenger/internal/utils"
)

const (
	writeWait = 10 * time.Second

	skipReasonActive    = "already_active"
	skipReasonNoCred    = "no_credential"
	skipReasonBadCred   = "malformed_credential"
	skipReasonStoreFail = "store_error"
)

// Channel is the client side of the realtime connection.
//
// All state lives behind mu. generation is bumped by Close so that dials,
// readers and timers started before it recognise themselves as stale and
// exit without touching the new state.
type Channel struct {
	address          string
	handshakeTimeout time.Duration
	session          store.SessionStore
	dialer           Dialer
	newBackoff       BackoffFactory

	metrics *metrics.Metrics
	logger  *logger.Logger

	mu         sync.Mutex
	state      State
	generation uint64
	handler    Handler
	listener   StateListener
	conn       *websocket.Conn
	timer      *time.Timer
	backoff    retry.Backoff
	runCtx     context.Context
	cancelRun  context.CancelFunc

	writeMu sync.Mutex
}

// Option customises a Channel.
type Option func(*Channel)

// WithDialer replaces the default gorilla dialer.
func WithDialer(d Dialer) Option {
	return func(c *Channel) {
		c.dialer = d
	}
}

// WithBackoff replaces the reconnect policy derived from the config.
func WithBackoff(f BackoffFactory) Option {
	return func(c *Channel) {
		c.newBackoff = f
	}
}

// NewChannel creates an idle Channel targeting cfg.Address. m may be nil.
func NewChannel(cfg config.ClientPush, session store.SessionStore, m *metrics.Metrics, log *logger.Logger, opts ...Option) *Channel {
	c := &Channel{
		address:          strings.TrimRight(cfg.Address, "/"),
		handshakeTimeout: cfg.HandshakeTimeout,
		session:          session,
		newBackoff:       NewBackoffFactory(cfg),
		metrics:          m,
		logger:           log,
		state:            StateDisconnected,
	}
	if c.handshakeTimeout <= 0 {
		c.handshakeTimeout = config.DefaultHandshakeTimeout
	}
	c.dialer = &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: c.handshakeTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	m.SetPushState(int(StateDisconnected))
	return c
}

// State returns the current state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnStateChange registers the single state listener, replacing any previous
// one. Pass nil to remove it.
func (c *Channel) OnStateChange(listener StateListener) {
	c.mu.Lock()
	c.listener = listener
	c.mu.Unlock()
}

// Connect registers handler and opens the connection in the background.
//
// Without a stored credential, or with one whose user identity cannot be
// read, Connect does nothing. When a socket is live, being dialled, or a
// reconnect is already scheduled, only the handler is replaced.
func (c *Channel) Connect(ctx context.Context, handler Handler) {
	if handler == nil {
		return
	}

	target, err := c.target(ctx)
	if err != nil {
		c.logSkipped(err)
		return
	}

	c.mu.Lock()
	c.handler = handler
	if c.state.active() || c.timer != nil {
		c.mu.Unlock()
		c.metrics.IncPushConnectSkipped(skipReasonActive)
		return
	}

	if c.cancelRun == nil {
		c.runCtx, c.cancelRun = context.WithCancel(context.Background())
	}
	c.backoff = nil
	start := c.dialLocked(target)
	c.mu.Unlock()

	start()
}

// Close tears the channel down: the live socket is closed, the handler is
// dropped and any pending reconnect is cancelled. It is the only way to stop
// reconnection.
func (c *Channel) Close() {
	c.mu.Lock()
	c.generation++
	c.handler = nil
	c.backoff = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancelRun != nil {
		c.cancelRun()
		c.cancelRun = nil
	}
	conn := c.conn
	c.conn = nil
	notify := c.setStateLocked(StateClosed)
	c.mu.Unlock()

	if conn != nil {
		c.writeMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		c.writeMu.Unlock()
		_ = conn.Close()
	}

	notify()
	c.logger.Debug().Msg("push channel closed")
}

// Send writes payload as a JSON text frame. The frame is dropped with
// ErrNotConnected unless the channel is connected; nothing is queued.
func (c *Channel) Send(payload any) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.state == StateConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err = conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("%w: %w", ErrNotConnected, err)
	}
	return nil
}

// target derives ws(s)://<address>/ws/{userID} from the stored credential.
func (c *Channel) target(ctx context.Context) (string, error) {
	token, ok, err := c.session.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("read credential: %w", err)
	}
	if !ok {
		return "", ErrNoCredential
	}

	userID, err := utils.ParseUserIDFromJWT(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMalformedCredential, err)
	}

	return c.address + "/ws/" + url.PathEscape(userID.String()), nil
}

func (c *Channel) logSkipped(err error) {
	switch {
	case errors.Is(err, ErrNoCredential):
		c.metrics.IncPushConnectSkipped(skipReasonNoCred)
		c.logger.Debug().Msg("push connect skipped: no credential")
	case errors.Is(err, ErrMalformedCredential):
		c.metrics.IncPushConnectSkipped(skipReasonBadCred)
		c.logger.Warn().Err(err).Msg("push connect abandoned")
	default:
		c.metrics.IncPushConnectSkipped(skipReasonStoreFail)
		c.logger.Err(err).Msg("push connect abandoned")
	}
}

// dialLocked moves to Connecting. The returned func, called once mu is
// released, notifies the listener and then starts the dial goroutine.
func (c *Channel) dialLocked(target string) func() {
	notify := c.setStateLocked(StateConnecting)
	ctx, generation := c.runCtx, c.generation
	return func() {
		notify()
		go c.run(ctx, generation, target)
	}
}

// run dials target and, on success, becomes the connection's reader.
func (c *Channel) run(ctx context.Context, generation uint64, target string) {
	dialCtx, cancel := context.WithTimeout(ctx, c.handshakeTimeout)
	conn, resp, err := c.dialer.DialContext(dialCtx, target, nil)
	cancel()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
		return
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("target", target).Msg("push dial failed")
		notify := c.disconnectedLocked()
		c.mu.Unlock()
		notify()
		return
	}

	c.conn = conn
	c.backoff = nil
	notify := c.setStateLocked(StateConnected)
	c.mu.Unlock()

	notify()
	c.logger.Info().Str("target", target).Msg("push channel connected")

	c.read(generation, conn)
}

// read delivers frames until the connection fails, then schedules a
// reconnect unless the channel was closed in the meantime.
func (c *Channel) read(generation uint64, conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.mu.Lock()
			if generation != c.generation || c.conn != conn {
				c.mu.Unlock()
				return
			}
			c.conn = nil
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Info().Msg("push channel closed by server")
			} else {
				c.logger.Warn().Err(err).Msg("push channel read failed")
			}
			notify := c.disconnectedLocked()
			c.mu.Unlock()
			notify()
			return
		}

		event, detailErr, err := decodeEvent(data)
		if err != nil {
			c.metrics.IncPushMalformed()
			c.logger.Warn().Err(err).Int("size", len(data)).Msg("dropping push frame")
			continue
		}
		if detailErr != nil {
			c.logger.Debug().Err(detailErr).Str("type", string(event.Type)).Msg("push frame has unreadable fields")
		}

		c.mu.Lock()
		handler := c.handler
		live := generation == c.generation
		c.mu.Unlock()
		if !live {
			return
		}
		if handler != nil {
			c.metrics.IncPushEvent(string(event.Type))
			handler(event)
		}
	}
}

// disconnectedLocked moves to Disconnected and schedules exactly one
// reconnect. When the policy is exhausted the channel moves to Failed.
func (c *Channel) disconnectedLocked() func() {
	notify := c.setStateLocked(StateDisconnected)
	if c.handler == nil || c.timer != nil {
		return notify
	}

	if c.backoff == nil {
		c.backoff = c.newBackoff()
	}
	delay, stop := c.backoff.Next()
	if stop {
		c.logger.Error().Msg("push reconnect attempts exhausted")
		failed := c.setStateLocked(StateFailed)
		return func() {
			notify()
			failed()
		}
	}

	c.metrics.IncPushReconnect()
	c.logger.Debug().Dur("delay", delay).Msg("push reconnect scheduled")

	generation := c.generation
	c.timer = time.AfterFunc(delay, func() {
		c.reconnect(generation)
	})
	return notify
}

func (c *Channel) reconnect(generation uint64) {
	c.mu.Lock()
	if generation != c.generation {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	ctx := c.runCtx
	c.mu.Unlock()

	// The credential is read again: it may have been replaced or cleared
	// since the previous connection.
	target, err := c.target(ctx)

	c.mu.Lock()
	if generation != c.generation || c.state != StateDisconnected || c.timer != nil {
		c.mu.Unlock()
		return
	}
	if err != nil {
		c.mu.Unlock()
		c.logSkipped(err)
		return
	}
	start := c.dialLocked(target)
	c.mu.Unlock()

	start()
}

// setStateLocked records the transition and returns the listener call to run
// once mu is released.
func (c *Channel) setStateLocked(state State) func() {
	if c.state == state {
		return func() {}
	}
	c.state = state
	c.metrics.SetPushState(int(state))

	listener := c.listener
	if listener == nil {
		return func() {}
	}
	return func() {
		listener(state)
	}
}
