// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package push

import "errors"

var (
	// ErrMalformedPayload marks an inbound frame that is not a JSON object.
	// Such frames are logged and dropped; it never reaches callers.
	ErrMalformedPayload = errors.New("malformed push payload")
	// ErrNotConnected is returned by Send when the frame was dropped.
	ErrNotConnected = errors.New("push channel is not connected")
	// ErrNoCredential is reported when no session credential is stored.
	ErrNoCredential = errors.New("no session credential")
	// ErrMalformedCredential is reported when the user identity cannot be
	// read from the credential.
	ErrMalformedCredential = errors.New("malformed session credential")
)
