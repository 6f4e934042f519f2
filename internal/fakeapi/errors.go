// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"errors"
	"net/http"
)

// apiError is a failure with the status and detail text the API answers
// with.
type apiError struct {
	status int
	detail string
}

func (e *apiError) Error() string {
	return e.detail
}

var (
	ErrInvalidCredentials = &apiError{http.StatusUnauthorized, "Incorrect email or password"}
	ErrEmailTaken         = &apiError{http.StatusBadRequest, "Email already registered"}
	ErrInvalidBody        = &apiError{http.StatusUnprocessableEntity, "Invalid request body"}
	ErrAccountNotFound    = &apiError{http.StatusNotFound, "Account not found"}
	ErrChatNotFound       = &apiError{http.StatusNotFound, "Chat not found"}
	ErrInvalidPhone       = &apiError{http.StatusBadRequest, "Invalid phone number"}
	ErrInvalidCode        = &apiError{http.StatusBadRequest, "Invalid code"}
	ErrUnknownPlatform    = &apiError{http.StatusBadRequest, "Unsupported platform"}
	ErrEmptyText          = &apiError{http.StatusBadRequest, "Message text is required"}

	errMissingToken = &apiError{http.StatusUnauthorized, "Not authenticated"}
	errInvalidToken = &apiError{http.StatusUnauthorized, "Invalid token"}
)

// statusFromError maps err to its response status and detail. Unknown
// errors are internal.
func statusFromError(err error) (int, string) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr.status, apiErr.detail
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}
