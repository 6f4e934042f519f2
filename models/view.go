// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// InboxView is a point-in-time copy of the synchronised state handed to the
// presentation layer. Mutating it does not affect the coordinator.
type InboxView struct {
	Accounts     []Account
	Chats        []Chat
	SelectedChat *Chat
	Messages     []Message
}
