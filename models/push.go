// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "encoding/json"

// PushEventType is the "type" field of a realtime frame.
type PushEventType string

// PushEventMessageNew announces a message stored by the server for one of
// the user's chats.
const PushEventMessageNew PushEventType = "message:new"

// PushEvent is one server-initiated realtime notification. Only Type and
// ChatID are interpreted; the remaining fields are informational.
type PushEvent struct {
	Type       PushEventType `json:"type"`
	Platform   Platform      `json:"platform,omitempty"`
	ChatID     ID            `json:"chat_id,omitempty"`
	SenderName string        `json:"sender_name,omitempty"`
	Text       string        `json:"text,omitempty"`
	Timestamp  Timestamp     `json:"timestamp"`

	// Raw keeps the original frame for handlers interested in fields the
	// client does not model.
	Raw json.RawMessage `json:"-"`
}
