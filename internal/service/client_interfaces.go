// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-cross-messenger/internal/push"
	"github.com/MKhiriev/go-cross-messenger/models"
)

// AuthService defines the client-side contract for obtaining and dropping the
// session credential.
type AuthService interface {
	// Login exchanges credentials for an access token and persists it.
	Login(ctx context.Context, credentials models.Credentials) error

	// Register creates a server account and persists the returned token.
	Register(ctx context.Context, credentials models.Credentials) error

	// Logout clears the stored credential.
	Logout(ctx context.Context) error

	// CheckAuth probes a stored credential with an authenticated call. A
	// credential rejected with 401 is cleared and false is returned. When the
	// server cannot be reached the credential is kept, true is returned and
	// the network error is reported alongside.
	CheckAuth(ctx context.Context) (bool, error)
}

// SyncCoordinator owns the cached inbox: linked accounts, chats, the selected
// chat and its messages. Every pull replaces a whole collection; failures
// leave the previous collection in place.
type SyncCoordinator interface {
	// RefreshAccounts replaces the account list with the server's.
	RefreshAccounts(ctx context.Context) error

	// RefreshChats replaces the chat list with the server's.
	RefreshChats(ctx context.Context) error

	// SelectChat makes chat the selected chat and pulls its messages.
	SelectChat(ctx context.Context, chat models.Chat) error

	// RefreshMessages pulls the messages of chatID. The result is dropped
	// when chatID is no longer the selected chat at completion time.
	RefreshMessages(ctx context.Context, chatID models.ID) error

	// HandlePushEvent reconciles the cache with one realtime event. Failed
	// pulls are logged and counted, never returned.
	HandlePushEvent(ctx context.Context, event models.PushEvent)

	// SendMessage sends text and, on success, refreshes the chat's messages.
	SendMessage(ctx context.Context, platform models.Platform, accountID, chatID, text string) (models.ID, error)

	// DisconnectAccount unlinks an account and refreshes accounts and chats.
	DisconnectAccount(ctx context.Context, accountID models.ID) error

	// AccountsLinked refreshes accounts and chats after a linking workflow
	// completed.
	AccountsLinked(ctx context.Context)

	// BackgroundRefresh refreshes chats and the selected chat's messages on
	// behalf of a non-interactive trigger.
	BackgroundRefresh(ctx context.Context, trigger string)

	// Snapshot returns a copy of the cached state.
	Snapshot() models.InboxView

	// OnChange registers the single listener called with a fresh snapshot
	// after every applied change.
	OnChange(listener func(models.InboxView))

	// OnUnauthorized registers the hook run when a pull is rejected with 401.
	OnUnauthorized(hook func())

	// Reset drops every collection and the selection. Pulls started before
	// the reset are discarded when they complete.
	Reset()
}

// LinkCompletionNotifier is told when a linking workflow reached Done.
type LinkCompletionNotifier interface {
	AccountsLinked(ctx context.Context)
}

// URLOpener hands an authorization URL to an external user agent.
type URLOpener interface {
	Open(ctx context.Context, url string) error
}

// LinkingWorkflow drives one account connection attempt at a time.
type LinkingWorkflow interface {
	// Begin starts a new attempt at the Select step, discarding any attempt
	// in progress.
	Begin() models.LinkingSession

	// Session returns a copy of the current attempt.
	Session() models.LinkingSession

	// Choose picks the platform at the Select step.
	Choose(platform models.Platform) error

	// SubmitPhone requests a verification code for phone.
	SubmitPhone(ctx context.Context, phone string) error

	// SubmitCode verifies code for the pending phone number.
	SubmitCode(ctx context.Context, code string) error

	// Back returns from the code step to the phone step.
	Back() error

	// Initiate fetches the redirect authorization URL and opens it.
	Initiate(ctx context.Context) error

	// AwaitRedirectCompletion polls the account list until a new redirect
	// platform account appears, then completes the attempt.
	AwaitRedirectCompletion(ctx context.Context) error

	// Cancel abandons the attempt. No collaborator is notified.
	Cancel()

	// OnClose registers the callback run after an attempt reached Done.
	OnClose(callback func())

	// OnUnauthorized registers the hook run when a step is rejected with 401.
	OnUnauthorized(hook func())
}

// PushChannel is the realtime subscription used by the services.
type PushChannel interface {
	Connect(ctx context.Context, handler push.Handler)
	Close()
}

// BackgroundRefresher is the work done by the periodic refresh job.
type BackgroundRefresher interface {
	BackgroundRefresh(ctx context.Context, trigger string)
}

// ClientSyncJob defines the contract for a background worker that refreshes
// the inbox on a fixed interval while the push channel may be down.
type ClientSyncJob interface {
	// Start launches the background goroutine. A non-positive interval
	// leaves the job stopped. Any previously running job is stopped first.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}
