// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"fmt"
	"net/http/httptest"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/models"
)

// Server is a running fake API on a loopback port.
type Server struct {
	*Handler
	srv *httptest.Server
}

// NewServer starts a fake API. Close it when done.
func NewServer(log *logger.Logger) *Server {
	h := NewHandler("fake-sign-key", log)
	return &Server{Handler: h, srv: httptest.NewServer(h.Init())}
}

// URL is the http base address, e.g. http://127.0.0.1:1234.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close drops realtime connections and stops the listener.
func (s *Server) Close() {
	s.hub.close()
	s.srv.Close()
}

// AddUser registers a user and returns its id.
func (s *Server) AddUser(email, password string) (models.ID, error) {
	return s.state.register(email, password)
}

// AddAccount links an account of platform to the user directly.
func (s *Server) AddAccount(userID models.ID, platform models.Platform, externalID string) models.Account {
	return s.state.addAccount(userID, platform, externalID)
}

// AddChat adds a chat to the user's inbox.
func (s *Server) AddChat(userID models.ID, chat models.Chat) models.Chat {
	return s.state.addChat(userID, chat)
}

// SetMessages replaces the history of chatID.
func (s *Server) SetMessages(chatID models.ID, messages []models.Message) {
	s.state.setMessages(chatID, messages)
}

// ReceiveMessage simulates an incoming message: it is stored and announced
// on the user's realtime connections. It returns how many connections got
// the event.
func (s *Server) ReceiveMessage(userID, chatID models.ID, sender, text string) (int, error) {
	message, _, err := s.state.appendMessage(userID, chatID, sender, text)
	if err != nil {
		return 0, fmt.Errorf("receive message: %w", err)
	}
	return s.hub.publish(userID, newMessageEvent(message)), nil
}

// PublishRaw writes payload as is to the user's realtime connections.
func (s *Server) PublishRaw(userID models.ID, payload []byte) int {
	return s.hub.publishRaw(userID, payload)
}

// CompleteInstagram simulates the user finishing the external
// authorization: an instagram account appears on the user's list.
func (s *Server) CompleteInstagram(userID models.ID, externalID string) models.Account {
	return s.state.addAccount(userID, models.PlatformInstagram, externalID)
}

// Connections counts the user's open realtime connections.
func (s *Server) Connections(userID models.ID) int {
	return s.hub.connections(userID)
}

// Dials counts realtime connections accepted since start.
func (s *Server) Dials() int {
	return s.hub.totalDials()
}

// DropConnections closes the user's realtime connections abruptly.
func (s *Server) DropConnections(userID models.ID) {
	s.hub.drop(userID)
}
