// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-cross-messenger/models"
)

const ownSenderName = "You"

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.state.listAccounts(userIDFromRequest(r))
	h.respond(w, r, models.AccountsResponse{Accounts: accounts}, http.StatusOK)
}

func (h *Handler) disconnectAccount(w http.ResponseWriter, r *http.Request) {
	accountID := models.ID(chi.URLParam(r, "accountID"))
	if err := h.state.removeAccount(userIDFromRequest(r), accountID); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, models.AckResponse{Message: "Account disconnected"}, http.StatusOK)
}

func (h *Handler) listChats(w http.ResponseWriter, r *http.Request) {
	chats := h.state.listChats(userIDFromRequest(r))
	h.respond(w, r, models.ChatsResponse{Chats: chats}, http.StatusOK)
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.writeError(w, r, ErrInvalidBody)
			return
		}
		limit = n
	}

	chatID := models.ID(chi.URLParam(r, "chatID"))
	messages, err := h.state.listMessages(userIDFromRequest(r), chatID, limit)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respond(w, r, models.MessagesResponse{Messages: messages}, http.StatusOK)
}

// sendMessage stores the message and announces it on the realtime channel
// like any other new message.
func (h *Handler) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, ErrInvalidBody)
		return
	}
	if !req.Platform.Valid() {
		h.writeError(w, r, ErrUnknownPlatform)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		h.writeError(w, r, ErrEmptyText)
		return
	}

	userID := userIDFromRequest(r)
	message, _, err := h.state.appendMessage(userID, models.ID(req.ChatID), ownSenderName, req.Text)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.hub.publish(userID, newMessageEvent(message))

	h.respond(w, r, models.SendMessageResponse{MessageID: message.ID}, http.StatusOK)
}

func newMessageEvent(m models.Message) models.PushEvent {
	return models.PushEvent{
		Type:       models.PushEventMessageNew,
		Platform:   m.Platform,
		ChatID:     m.ChatID,
		SenderName: m.SenderName,
		Text:       m.Text,
		Timestamp:  m.Timestamp,
	}
}
