// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SessionStore holds the current access credential. At most one value is
// live at a time; absence means logged out.
//
// Implementations are pure state holders. Clearing the credential does not
// tear down realtime connections; that is the caller's job.
type SessionStore interface {
	// Get returns the stored credential and true, or "" and false when none
	// is stored.
	Get(ctx context.Context) (string, bool, error)
	// Set replaces the stored credential.
	Set(ctx context.Context, credential string) error
	// Clear removes the stored credential. Clearing an empty store is not an
	// error.
	Clear(ctx context.Context) error
}
