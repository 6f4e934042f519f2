// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the typed gateway to the messaging API.
//
// The primary abstraction is [Gateway], which decouples the service layer
// from the REST transport. The package ships a resty-based implementation
// ([NewHTTPGateway]) that attaches the stored credential to every call.
//
// Failures are reported with three kinds of error so that callers can use
// [errors.Is] and [errors.As]:
//   - [ErrNetwork] when no response was received;
//   - [*ServerError] for any non-2xx response, carrying status and detail;
//   - [ErrUnauthorized], matched by a 401 [*ServerError].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-cross-messenger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/gateway_mock.go -package=mock

// DefaultMessagesLimit is the page size used when ListMessages is called
// with a non-positive limit.
const DefaultMessagesLimit = 50

// Gateway is the typed request/response wrapper around the remote API.
// Implementations read the credential from the session store on every call
// and never modify it.
type Gateway interface {
	// Login exchanges credentials for an access token.
	Login(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)
	// Register creates a user and returns its first access token.
	Register(ctx context.Context, credentials models.Credentials) (models.AuthResponse, error)

	// ListAccounts returns every linked account of the user.
	ListAccounts(ctx context.Context) ([]models.Account, error)
	// ListChats returns every chat across all linked accounts.
	ListChats(ctx context.Context) ([]models.Chat, error)
	// ListMessages returns the tail of a conversation, at most limit items.
	ListMessages(ctx context.Context, chatID models.ID, limit int) ([]models.Message, error)
	// SendMessage asks the server to deliver a message.
	SendMessage(ctx context.Context, req models.SendMessageRequest) (models.SendMessageResponse, error)

	// StartTelegramLink requests a login code for phone.
	StartTelegramLink(ctx context.Context, phone string) (models.TelegramStartResponse, error)
	// VerifyTelegramLink submits the code received on phone.
	VerifyTelegramLink(ctx context.Context, phone, code string) (models.TelegramVerifyResponse, error)
	// InstagramAuthURL returns the external authorization URL.
	InstagramAuthURL(ctx context.Context) (string, error)
	// DisconnectAccount unlinks an account.
	DisconnectAccount(ctx context.Context, accountID models.ID) error
}
