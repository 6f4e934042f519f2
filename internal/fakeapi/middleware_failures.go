// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"net/http"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
)

// injectedFailure is a canned error response for one request.
type injectedFailure struct {
	status int
	detail string
}

// withInjectedFailures answers with a failure registered through Fail
// instead of running the handler. Each registered failure is used once.
func (h *Handler) withInjectedFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failure, ok := h.takeFailure(r.Method, r.URL.Path); ok {
			logger.FromRequest(r).Debug().Int("status", failure.status).Msg("injected failure")
			if failure.detail == "" {
				w.WriteHeader(failure.status)
				return
			}
			writeDetail(w, failure.status, failure.detail)
			return
		}
		next.ServeHTTP(w, r)
	})
}
