// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains the human-readable strings shown to the user by the
// cross-messenger client.
//
// Every user-initiated action (login, send, linking step) reports its
// failure with one of these messages, or with the reason supplied by the
// server when it sent one. Keeping them in one place keeps the wording
// consistent between the services and the command line.
package app

const (
	// MsgUnexpectedError is the last-resort text for failures that carry no
	// server-provided reason.
	MsgUnexpectedError = "something went wrong, please try again"

	// MsgServerUnreachable is shown when no response reached the client.
	MsgServerUnreachable = "cannot reach the server, check your connection"

	// MsgSessionExpired is shown after the server rejected the stored
	// credential and the client logged out.
	MsgSessionExpired = "session expired, please log in again"

	// MsgNotLoggedIn is shown when a command needs a session and none is
	// stored.
	MsgNotLoggedIn = "not logged in"

	// MsgEmptyCredentials is shown when email or password is missing.
	MsgEmptyCredentials = "email and password are required"

	// MsgLoginFailed is the fallback when login fails without a reason.
	MsgLoginFailed = "login failed"

	// MsgRegistrationFailed is the fallback when registration fails without
	// a reason.
	MsgRegistrationFailed = "registration failed"

	// MsgEmptyMessage is shown when the user tries to send blank text.
	MsgEmptyMessage = "message text is required"

	// MsgInvalidPlatform is shown for a platform the server does not accept.
	MsgInvalidPlatform = "invalid platform"

	// MsgFailedToSendMessage is the fallback when sending fails.
	MsgFailedToSendMessage = "failed to send message"

	// MsgFailedToDisconnect is the fallback when an account cannot be
	// disconnected.
	MsgFailedToDisconnect = "failed to disconnect account"

	// MsgFailedToLoad is the fallback when a user-requested refresh fails.
	MsgFailedToLoad = "failed to load data"

	// MsgPhoneRequired is shown when the phone step is submitted empty.
	MsgPhoneRequired = "phone number is required"

	// MsgCodeRequired is shown when the code step is submitted empty.
	MsgCodeRequired = "verification code is required"

	// MsgFailedToSendCode is the fallback when the server rejects the phone
	// number without a reason.
	MsgFailedToSendCode = "failed to send code"

	// MsgInvalidCode is the fallback when code verification fails.
	MsgInvalidCode = "invalid code"

	// MsgInstagramAuthURLFailed is the fallback when the authorization URL
	// cannot be fetched.
	MsgInstagramAuthURLFailed = "failed to get Instagram auth URL"

	// MsgCompleteInstagramAuthorization tells the user to finish the
	// external authorization and re-synchronise manually.
	MsgCompleteInstagramAuthorization = "complete the Instagram authorization in your browser, then refresh"

	// MsgOpenBrowserFailed is shown when the authorization URL could not be
	// handed to the browser; the URL is printed instead.
	MsgOpenBrowserFailed = "could not open the browser, open the link manually"

	// MsgLinkingNotActive is shown when a linking command arrives in a step
	// that does not accept it.
	MsgLinkingNotActive = "this linking step is not active"

	// MsgLinkingBusy is shown while the previous linking step is still
	// waiting for the server.
	MsgLinkingBusy = "please wait for the previous step to finish"
)
