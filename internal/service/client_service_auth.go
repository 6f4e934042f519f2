// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/logger"
	"github.com/MKhiriev/go-cross-messenger/internal/store"
	"github.com/MKhiriev/go-cross-messenger/models"
)

type clientAuthService struct {
	gateway adapter.Gateway
	session store.SessionStore

	logger *logger.Logger
}

func NewClientAuthService(gateway adapter.Gateway, session store.SessionStore, log *logger.Logger) AuthService {
	return &clientAuthService{gateway: gateway, session: session, logger: log}
}

func (a *clientAuthService) Login(ctx context.Context, credentials models.Credentials) error {
	credentials, err := normalizeCredentials(credentials)
	if err != nil {
		return err
	}

	resp, err := a.gateway.Login(ctx, credentials)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoginOnServer, err)
	}

	return a.persist(ctx, resp)
}

func (a *clientAuthService) Register(ctx context.Context, credentials models.Credentials) error {
	credentials, err := normalizeCredentials(credentials)
	if err != nil {
		return err
	}

	resp, err := a.gateway.Register(ctx, credentials)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRegisterOnServer, err)
	}

	return a.persist(ctx, resp)
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	if err := a.session.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	a.logger.Info().Msg("session cleared")
	return nil
}

func (a *clientAuthService) CheckAuth(ctx context.Context) (bool, error) {
	_, ok, err := a.session.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("read session: %w", err)
	}
	if !ok {
		return false, nil
	}

	_, err = a.gateway.ListAccounts(ctx)
	switch {
	case err == nil:
		return true, nil
	case adapter.IsUnauthorized(err):
		a.logger.Info().Msg("stored credential rejected by server")
		if clearErr := a.session.Clear(ctx); clearErr != nil {
			return false, fmt.Errorf("clear session: %w", clearErr)
		}
		return false, nil
	default:
		// unreachable server or 5xx: keep the credential
		return true, err
	}
}

func (a *clientAuthService) persist(ctx context.Context, resp models.AuthResponse) error {
	if resp.AccessToken == "" {
		return ErrEmptyToken
	}
	if err := a.session.Set(ctx, resp.AccessToken); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func normalizeCredentials(credentials models.Credentials) (models.Credentials, error) {
	credentials.Email = strings.TrimSpace(credentials.Email)
	if credentials.Email == "" || credentials.Password == "" {
		return credentials, ErrEmptyCredentials
	}
	return credentials, nil
}
