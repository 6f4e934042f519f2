// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Message is a single immutable message of a chat. The client never edits a
// message, it only replaces the tail it observes.
type Message struct {
	ID         ID        `json:"id"`
	ChatID     ID        `json:"chat_id,omitempty"`
	Platform   Platform  `json:"platform"`
	SenderID   ID        `json:"sender_id,omitempty"`
	SenderName string    `json:"sender_name"`
	Text       string    `json:"text"`
	Timestamp  Timestamp `json:"timestamp"`
	Status     string    `json:"status,omitempty"`
}

// MessagesResponse is the body of GET /api/chats/{chatId}/messages.
type MessagesResponse struct {
	Messages []Message `json:"messages"`
}

// SendMessageRequest is the body of POST /api/messages/send.
type SendMessageRequest struct {
	Platform  Platform `json:"platform"`
	AccountID string   `json:"account_id"`
	ChatID    string   `json:"chat_id"`
	Text      string   `json:"text"`
}

// SendMessageResponse acknowledges a sent message.
type SendMessageResponse struct {
	MessageID ID `json:"message_id"`
}
