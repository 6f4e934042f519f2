// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the claims the server embeds in the access token. Only
// UserID is read by the client; it is used to build the push channel target
// and is never treated as proof of identity.
type SessionClaims struct {
	// UserID is the "user_id" claim. It is an ID so that both numeric and
	// string encodings are accepted.
	UserID ID `json:"user_id"`

	jwt.RegisteredClaims
}
