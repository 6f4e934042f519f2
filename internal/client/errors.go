// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import "errors"

var (
	// ErrNotLoggedIn is returned by commands that need a session when none
	// is stored or the stored one was rejected.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrSessionExpired is returned by a watch interrupted by a 401.
	ErrSessionExpired = errors.New("session expired")
	// ErrInputAborted is returned when the user leaves a prompt with esc or
	// ctrl+c.
	ErrInputAborted = errors.New("input aborted")
)
