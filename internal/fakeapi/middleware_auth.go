// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package fakeapi

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/utils"
	"github.com/MKhiriev/go-cross-messenger/models"
)

type userIDKey struct{}

// auth rejects requests without a valid bearer token with 401 and stores
// the token's user id in the request context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().Msg("request without authorization header")
			h.writeError(w, r, errMissingToken)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			h.writeError(w, r, errInvalidToken)
			return
		}

		claims, err := utils.ValidateJWTToken(tokenString, h.signKey())
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			h.writeError(w, r, errInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey{}, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func userIDFromRequest(r *http.Request) models.ID {
	id, _ := r.Context().Value(userIDKey{}).(models.ID)
	return id
}
