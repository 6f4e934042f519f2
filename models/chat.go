// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "sort"

// ChatKey is the identity of a chat. ChatID alone is not unique because two
// platforms may reuse the same identifier space.
type ChatKey struct {
	Platform Platform
	ChatID   string
}

// Chat is one conversation on one platform.
type Chat struct {
	ID            ID        `json:"id,omitempty"`
	AccountID     ID        `json:"account_id,omitempty"`
	Platform      Platform  `json:"platform"`
	ChatID        ID        `json:"chat_id"`
	Title         string    `json:"title"`
	LastMessageAt Timestamp `json:"last_message_at"`
}

// Key returns the identity of the chat.
func (c Chat) Key() ChatKey {
	return ChatKey{Platform: c.Platform, ChatID: c.ChatID.String()}
}

// ChatsResponse is the body of GET /api/chats.
type ChatsResponse struct {
	Chats []Chat `json:"chats"`
}

// SortChatsByRecency orders chats by LastMessageAt, newest first. Ties keep
// their relative order.
func SortChatsByRecency(chats []Chat) {
	sort.SliceStable(chats, func(i, j int) bool {
		return chats[i].LastMessageAt.After(chats[j].LastMessageAt.Time)
	})
}
