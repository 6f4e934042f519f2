// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork is wrapped around every failure where no HTTP response was
	// received (dial, TLS, timeout, cancelled context).
	ErrNetwork = errors.New("network error")
	// ErrUnauthorized matches any *ServerError with status 401.
	ErrUnauthorized = errors.New("client unauthorized")
	// ErrDecodeResponse is returned when a 2xx body cannot be decoded.
	ErrDecodeResponse = errors.New("error decoding response")
)

// ServerError is a non-2xx response.
type ServerError struct {
	// Status is the HTTP status code.
	Status int
	// Detail is the server-provided reason, or the status text when the body
	// carried none.
	Detail string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Detail)
}

// Is reports ErrUnauthorized for 401 responses.
func (e *ServerError) Is(target error) bool {
	return target == ErrUnauthorized && e.Status == http.StatusUnauthorized
}

// IsUnauthorized reports whether err is, or wraps, a 401 response.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}
