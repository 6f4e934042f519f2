// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Account is an external platform account linked to the aggregated inbox.
// It is created by the server when linking completes and destroyed when the
// user disconnects it. Uniqueness of (platform, external identity) is
// enforced server-side.
type Account struct {
	ID                ID        `json:"id"`
	Platform          Platform  `json:"platform"`
	Status            string    `json:"status,omitempty"`
	PlatformAccountID string    `json:"platform_account_id,omitempty"`
	CreatedAt         Timestamp `json:"created_at"`
}

// AccountsResponse is the body of GET /api/accounts.
type AccountsResponse struct {
	Accounts []Account `json:"accounts"`
}
