// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package push maintains the realtime connection between the client and the
// server. A Channel holds at most one WebSocket per user, decodes inbound
// frames into models.PushEvent and reconnects on its own until Close is
// called.
package push

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-cross-messenger/models"
)

// Handler receives decoded push events. Calls are made from the connection's
// reader goroutine one at a time, in the order frames were received.
type Handler func(event models.PushEvent)

// StateListener is notified after every state transition. It is invoked
// outside the channel's lock and may call back into the Channel.
type StateListener func(state State)

// Dialer opens WebSocket connections. *websocket.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, urlStr string, requestHeader http.Header) (*websocket.Conn, *http.Response, error)
}
