// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.state.register)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	h.authenticate(w, r, h.state.login)
}

func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request, resolve func(email, password string) (models.ID, error)) {
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.Err(err).Msg("invalid credentials body")
		h.writeError(w, r, ErrInvalidBody)
		return
	}

	userID, err := resolve(credentials.Email, credentials.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	token, err := h.IssueToken(userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.respond(w, r, models.AuthResponse{AccessToken: token, TokenType: "bearer"}, http.StatusOK)
}
