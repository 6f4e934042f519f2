// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/MKhiriev/go-cross-messenger/models"
)

const instagramAuthorizeURL = "https://www.instagram.com/oauth/authorize"

func (h *Handler) startTelegram(w http.ResponseWriter, r *http.Request) {
	var req models.TelegramStartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, ErrInvalidBody)
		return
	}

	if err := h.state.startPhoneLink(userIDFromRequest(r), req.Phone); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, models.TelegramStartResponse{Message: "Code sent", PhoneCodeHash: "hash"}, http.StatusOK)
}

func (h *Handler) verifyTelegram(w http.ResponseWriter, r *http.Request) {
	var req models.TelegramVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, ErrInvalidBody)
		return
	}

	account, err := h.state.verifyPhoneLink(userIDFromRequest(r), req.Phone, req.Code)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, models.TelegramVerifyResponse{Message: "Account linked", AccountID: account.ID}, http.StatusOK)
}

func (h *Handler) instagramURL(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set("client_id", "fake")
	q.Set("state", userIDFromRequest(r).String())
	h.respond(w, r, models.InstagramAuthURLResponse{AuthURL: instagramAuthorizeURL + "?" + q.Encode()}, http.StatusOK)
}
