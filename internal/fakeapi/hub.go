// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const writeWait = time.Second

// hub keeps the realtime connections of every user. Writes are serialised
// by mu.
type hub struct {
	upgrader websocket.Upgrader
	logger   *logger.Logger

	mu    sync.Mutex
	conns map[models.ID]map[*websocket.Conn]struct{}
	dials int
}

func newHub(log *logger.Logger) *hub {
	return &hub{
		logger: log,
		conns:  make(map[models.ID]map[*websocket.Conn]struct{}),
	}
}

func (h *hub) serve(w http.ResponseWriter, r *http.Request) {
	userID := models.ID(chi.URLParam(r, "userID"))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Err(err).Msg("websocket upgrade failed")
		return
	}

	h.mu.Lock()
	if h.conns[userID] == nil {
		h.conns[userID] = make(map[*websocket.Conn]struct{})
	}
	h.conns[userID][conn] = struct{}{}
	h.dials++
	h.mu.Unlock()

	h.logger.Debug().Str("user_id", userID.String()).Msg("realtime client connected")

	// the client never sends anything meaningful; read until it goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns[userID], conn)
	h.mu.Unlock()
	_ = conn.Close()
}

// publish writes event to every connection of userID and returns how many
// received it.
func (h *hub) publish(userID models.ID, event any) int {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Err(err).Msg("cannot encode realtime event")
		return 0
	}
	return h.publishRaw(userID, payload)
}

func (h *hub) publishRaw(userID models.ID, payload []byte) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for conn := range h.conns[userID] {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			h.logger.Debug().Err(err).Msg("realtime write failed")
			continue
		}
		delivered++
	}
	return delivered
}

func (h *hub) connections(userID models.ID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns[userID])
}

func (h *hub) totalDials() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.dials
}

// drop closes the user's connections without a close handshake.
func (h *hub) drop(userID models.ID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns[userID] {
		_ = conn.Close()
	}
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, conns := range h.conns {
		for conn := range conns {
			_ = conn.Close()
		}
	}
}
