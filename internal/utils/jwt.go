// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-cross-messenger/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUserID is returned when a token carries no "user_id" claim.
var ErrNoUserID = errors.New("token has no user_id claim")

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token carrying the
// "user_id" claim the messaging server issues.
//
// The token includes the following claims:
//   - user_id: the account owner identifier
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("42", time.Hour, "secret")
func GenerateJWTToken(userID models.ID, tokenDuration time.Duration, signKey string) (string, error) {
	if userID == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateJWTToken verifies the HMAC signature and expiry of tokenString and
// returns its claims.
func ValidateJWTToken(tokenString, signKey string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}
	if claims.UserID == "" {
		return nil, ErrNoUserID
	}

	return claims, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <t>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// ParseUserIDFromJWT reads the "user_id" claim without verifying the
// signature. The client cannot verify the token; the value only addresses
// the push channel and is never used as proof of identity.
func ParseUserIDFromJWT(tokenString string) (models.ID, error) {
	claims := &models.SessionClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return "", err
	}

	if claims.UserID == "" {
		return "", ErrNoUserID
	}
	return claims.UserID, nil
}
