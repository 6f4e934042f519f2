// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// LinkingStep is one state of the account linking workflow.
type LinkingStep string

const (
	LinkingStepSelect            LinkingStep = "select"
	LinkingStepPhoneEntry        LinkingStep = "phone"
	LinkingStepCodeEntry         LinkingStep = "code"
	LinkingStepPlatformBRedirect LinkingStep = "instagram"
	LinkingStepDone              LinkingStep = "done"
	LinkingStepCancelled         LinkingStep = "cancelled"
)

// Terminal reports whether no further transition is possible from s.
func (s LinkingStep) Terminal() bool {
	return s == LinkingStepDone || s == LinkingStepCancelled
}

// LinkingSession is the transient state of one in-progress account
// connection attempt. It only lives for the duration of the flow.
type LinkingSession struct {
	// ID distinguishes attempts so that responses of a discarded attempt
	// can be recognised and ignored.
	ID string
	// Platform is empty until a platform is chosen.
	Platform Platform
	Step     LinkingStep
	// PendingIdentifier is the phone number a code was requested for.
	PendingIdentifier string
	// AuthURL is the last authorization URL fetched for the redirect flow.
	AuthURL string
	// Notice is an informational message for the user, e.g. the
	// instruction to re-synchronise after an external authorization.
	Notice string
	// Err is the human readable failure of the last rejected step.
	Err string
}

// TelegramStartRequest is the body of POST /api/auth/telegram/start.
type TelegramStartRequest struct {
	Phone string `json:"phone"`
}

// TelegramStartResponse acknowledges that a code was sent.
type TelegramStartResponse struct {
	Message       string `json:"message"`
	PhoneCodeHash string `json:"phone_code_hash,omitempty"`
}

// TelegramVerifyRequest is the body of POST /api/auth/telegram/verify.
type TelegramVerifyRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
}

// TelegramVerifyResponse acknowledges a linked account.
type TelegramVerifyResponse struct {
	Message   string `json:"message"`
	AccountID ID     `json:"account_id"`
}

// InstagramAuthURLResponse is the body of GET /api/auth/instagram/url.
type InstagramAuthURLResponse struct {
	AuthURL string `json:"auth_url"`
}

// AckResponse is the generic acknowledgement body.
type AckResponse struct {
	Message string `json:"message"`
}
