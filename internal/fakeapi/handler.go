// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/utils"
	"github.com/MKhiriev/go-cross-messenger/models"
)

const tokenDuration = time.Hour

// Handler serves the fake API. Use Init to obtain the router.
type Handler struct {
	state *state
	hub   *hub

	logger *logger.Logger

	mu         sync.Mutex
	key        string
	failures   map[string][]injectedFailure
	requestIDs []string
}

// NewHandler creates a handler signing tokens with signKey.
func NewHandler(signKey string, log *logger.Logger) *Handler {
	return &Handler{
		state:    newState(),
		hub:      newHub(log.Component("hub")),
		logger:   log,
		key:      signKey,
		failures: make(map[string][]injectedFailure),
	}
}

func (h *Handler) signKey() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.key
}

// RevokeTokens rotates the signing key so that every issued token is
// rejected with 401.
func (h *Handler) RevokeTokens() {
	h.mu.Lock()
	h.key = uuid.NewString()
	h.mu.Unlock()
}

// Fail makes the next request to method and path answer with status and
// detail. An empty detail produces an empty body.
func (h *Handler) Fail(method, path string, status int, detail string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	k := method + " " + path
	h.failures[k] = append(h.failures[k], injectedFailure{status: status, detail: detail})
}

func (h *Handler) takeFailure(method, path string) (injectedFailure, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	k := method + " " + path
	queue := h.failures[k]
	if len(queue) == 0 {
		return injectedFailure{}, false
	}
	h.failures[k] = queue[1:]
	return queue[0], true
}

func (h *Handler) recordRequestID(id string) {
	h.mu.Lock()
	h.requestIDs = append(h.requestIDs, id)
	h.mu.Unlock()
}

// RequestIDs returns the X-Request-ID of every API request seen so far.
func (h *Handler) RequestIDs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.requestIDs)
}

// IssueToken returns a valid token for userID.
func (h *Handler) IssueToken(userID models.ID) (string, error) {
	return utils.GenerateJWTToken(userID, tokenDuration, h.signKey())
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, detail := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
	}
	writeDetail(w, status, detail)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, data any, status int) {
	if err := writeJSON(w, status, data); err != nil {
		logger.FromRequest(r).Err(err).Msg("cannot write response")
	}
}
