// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-cross-messenger/internal/adapter"
	"github.com/MKhiriev/go-cross-messenger/internal/app"
)

// UserMessage translates err into the text shown for a user-initiated action.
// A server-provided reason wins over fallback for client errors; transport
// failures and 5xx responses use fixed wording. nil yields "".
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if fallback == "" {
		fallback = app.MsgUnexpectedError
	}

	var stepErr *WorkflowStepFailedError
	if errors.As(err, &stepErr) && stepErr.Detail != "" {
		return stepErr.Detail
	}

	switch {
	case errors.Is(err, ErrEmptyCredentials):
		return app.MsgEmptyCredentials
	case errors.Is(err, ErrEmptyMessage):
		return app.MsgEmptyMessage
	case errors.Is(err, ErrInvalidPlatform):
		return app.MsgInvalidPlatform
	case errors.Is(err, ErrInvalidTransition):
		return app.MsgLinkingNotActive
	case errors.Is(err, ErrStepInProgress):
		return app.MsgLinkingBusy
	case errors.Is(err, ErrOpenURL):
		return app.MsgOpenBrowserFailed
	case errors.Is(err, context.DeadlineExceeded):
		return app.MsgServerUnreachable
	}

	return detailOr(err, fallback)
}

// detailOr returns the server's reason for a 4xx response, or fallback.
func detailOr(err error, fallback string) string {
	var serverErr *adapter.ServerError
	if errors.As(err, &serverErr) && serverErr.Status < http.StatusInternalServerError &&
		serverErr.Detail != "" && serverErr.Detail != http.StatusText(serverErr.Status) {
		return serverErr.Detail
	}
	if errors.Is(err, adapter.ErrNetwork) {
		return app.MsgServerUnreachable
	}
	return fallback
}
