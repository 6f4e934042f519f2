// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-cross-messenger/models"
)

var (
	ErrEmptyCredentials = errors.New("email and password are required")
	ErrLoginOnServer    = errors.New("login on server failed")
	ErrRegisterOnServer = errors.New("registration on server failed")
	ErrEmptyToken       = errors.New("server returned an empty access token")

	ErrEmptyMessage    = errors.New("message text is empty")
	ErrInvalidPlatform = errors.New("invalid platform")

	// ErrInvalidTransition is returned when a linking command does not apply
	// to the current step.
	ErrInvalidTransition = errors.New("invalid linking transition")
	// ErrStepInProgress is returned while the current linking step waits for
	// the server.
	ErrStepInProgress = errors.New("linking step in progress")
	// ErrAttemptDiscarded is returned to a caller whose linking response
	// arrived after the attempt was cancelled, restarted or moved on.
	ErrAttemptDiscarded = errors.New("linking attempt discarded")
	// ErrOpenURL is returned when the authorization URL could not be opened.
	ErrOpenURL = errors.New("cannot open authorization url")

	errAwaitingAuthorization = errors.New("authorization not completed yet")
)

// WorkflowStepFailedError reports a linking step rejected by the server or
// by local validation. The workflow stays at Step.
type WorkflowStepFailedError struct {
	Step   models.LinkingStep
	Detail string
	Err    error
}

func (e *WorkflowStepFailedError) Error() string {
	return fmt.Sprintf("linking step %q failed: %s", e.Step, e.Detail)
}

func (e *WorkflowStepFailedError) Unwrap() error {
	return e.Err
}
